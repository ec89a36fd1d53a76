// Package store defines the persistence interfaces for terms, sets, set
// linkages and users. The interfaces keep the services independent of the
// SQL dialect in use; implementations live in internal/platform/sqlstore.
package store
