// Package service contains the use cases of the language sets API. It
// coordinates the stores defined in internal/store and owns transaction
// boundaries: every check-then-mutate sequence runs inside one transaction
// so that the unique constraint on set linkages, not in-process locks,
// decides concurrent races.
//
// Validation failures are returned as domain validation errors. Store
// failures are wrapped in ServiceError. Conflicts such as duplicate or
// unknown terms are reported in result values rather than as errors.
package service
