// Package domain contains the core entities of the language sets service:
// terms, sets, the linkage between them, and the folder hierarchy derived
// from sets. It is independent of any storage or delivery mechanism.
package domain
