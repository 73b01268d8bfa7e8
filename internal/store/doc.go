// Package store defines the persistence contracts for users and their
// exercise logs. Implementations live under internal/platform; services
// depend only on these interfaces and on the sentinel errors in errors.go.
package store
