// Package mocks provides centralized mock implementations for testing.
//
// This package contains mock implementations of the store and service
// interfaces used throughout the application, so handler, middleware, and
// router tests can share one set of mocks instead of redefining them
// inline.
//
// Each mock follows the same pattern: a function field per interface
// method for per-test behavior, backed by a simple in-memory default
// implementation when no function is supplied. The defaults are complete
// enough to drive whole request flows (signup, login, todo CRUD) through
// httptest without a database.
//
// Usage:
//
//	codec := &mocks.MockTokenCodec{
//		DecodeFn: func(ctx context.Context, tokenString string) (*auth.Claims, error) {
//			return &auth.Claims{UserID: 7}, nil
//		},
//	}
package mocks
