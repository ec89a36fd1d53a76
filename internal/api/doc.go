// Package api is the HTTP transport of the service. It routes requests,
// validates their bodies, calls the services and maps their errors to
// status codes and client safe messages.
package api
