// Package utils provides general-purpose helper utilities used across
// different parts of the application: type-safe context keys and JWT token
// generation and validation.
package utils

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// CallerCtxKey is the key used to store the authenticated caller address in
// the context. Used together with GetCallerFromContext for type-safe
// retrieval.
//
// Example of writing a value to the context:
//
//	ctx := context.WithValue(ctx, utils.CallerCtxKey, addr)
var CallerCtxKey = contextKey("caller")

// GetCallerFromContext retrieves the caller address from the context.
//
// Returns the address and an ok flag:
//   - ok == true  — value is found and has the correct type
//   - ok == false — value is missing or has an unexpected type
func GetCallerFromContext(ctx context.Context) (common.Address, bool) {
	caller, ok := ctx.Value(CallerCtxKey).(common.Address)
	return caller, ok
}
