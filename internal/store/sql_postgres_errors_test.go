// SPDX-License-Identifier: Apache-2.0

package store

import (
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestClassifyPgError(t *testing.T) {
	tests := []struct {
		name string
		code string
		want ErrorClassification
	}{
		{name: "connection exception", code: pgerrcode.ConnectionException, want: Retryable},
		{name: "connection does not exist", code: pgerrcode.ConnectionDoesNotExist, want: Retryable},
		{name: "connection failure", code: pgerrcode.ConnectionFailure, want: Retryable},
		{name: "serialization failure", code: pgerrcode.SerializationFailure, want: Retryable},
		{name: "deadlock detected", code: pgerrcode.DeadlockDetected, want: Retryable},
		{name: "cannot connect now", code: pgerrcode.CannotConnectNow, want: Retryable},
		{name: "unique violation", code: pgerrcode.UniqueViolation, want: NonRetryable},
		{name: "syntax error", code: pgerrcode.SyntaxError, want: NonRetryable},
		{name: "undefined table", code: pgerrcode.UndefinedTable, want: NonRetryable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyPgError(&pgconn.PgError{Code: tt.code})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPostgresErrorClassifier_Classify(t *testing.T) {
	c := NewPostgresErrorClassifier()

	assert.Equal(t, NonRetryable, c.Classify(nil))
	assert.Equal(t, NonRetryable, c.Classify(errors.New("not a pg error")))
	assert.Equal(t, Retryable, c.Classify(&pgconn.PgError{Code: pgerrcode.DeadlockDetected}))

	// wrapped driver errors still classify
	wrapped := errors.Join(errors.New("query failed"), &pgconn.PgError{Code: pgerrcode.ConnectionFailure})
	assert.Equal(t, Retryable, c.Classify(wrapped))
}

func TestNoopClassifier(t *testing.T) {
	assert.Equal(t, NonRetryable, noopClassifier{}.Classify(errors.New("anything")))
	assert.Equal(t, NonRetryable, noopClassifier{}.Classify(nil))
}
