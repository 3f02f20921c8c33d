// Package store defines interfaces for data persistence operations.
// These interfaces keep the application's core logic independent of the
// underlying storage technology; concrete implementations live in
// internal/platform/postgres.
package store
