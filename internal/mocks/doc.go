// Package mocks provides centralized mock implementations for testing.
//
// Two styles live here. Function-field mocks (MockJWTService,
// MockPasswordHasher and the service mocks) let a test swap in behavior per
// case. Testify mocks (TestifyMockUserStore, TestifyMockTaskStore) record
// calls for assertion with mock.Mock. MockUserStore is a small in-memory
// store for tests that need register-then-login style round trips.
//
// Usage:
//
//	jwtSvc := &mocks.MockJWTService{
//	    GenerateTokenFn: func(ctx context.Context, userID int64) (string, error) {
//	        return "mocked-token", nil
//	    },
//	}
//
// When adding a new mock to this package, name the file after the
// interface being mocked and add a compile-time interface assertion.
package mocks
