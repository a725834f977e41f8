package utils

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
)

func TestGetCallerFromContext(t *testing.T) {
	addr := common.HexToAddress("0x1234567890123456789012345678901234567890")
	ctx := context.WithValue(context.Background(), CallerCtxKey, addr)

	got, ok := GetCallerFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, addr, got)
}

func TestGetCallerFromContext_Missing(t *testing.T) {
	_, ok := GetCallerFromContext(context.Background())
	assert.False(t, ok)
}

func TestGetCallerFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), CallerCtxKey, "0x1234")

	_, ok := GetCallerFromContext(ctx)
	assert.False(t, ok)
}

func TestGetCallerFromContext_StringKeyDoesNotCollide(t *testing.T) {
	addr := common.HexToAddress("0x1234567890123456789012345678901234567890")
	ctx := context.WithValue(context.Background(), "caller", addr) //nolint:staticcheck

	_, ok := GetCallerFromContext(ctx)
	assert.False(t, ok)
}
