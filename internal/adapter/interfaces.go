// SPDX-License-Identifier: Apache-2.0

// Package adapter provides transport-layer abstractions for communicating with
// the go-secure-notes server.
//
// The primary abstraction is [ServerAdapter], which decouples callers from the
// underlying protocol. The package currently ships an HTTP/REST implementation
// ([NewHTTPServerAdapter]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/notekeep/go-secure-notes/models"
)

// ServerAdapter defines transport-agnostic communication with the
// go-secure-notes server. Implementations are responsible for serialisation,
// authentication header management, and mapping transport-level errors to the
// sentinel values defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all subsequent
	// authenticated requests. It should be called immediately after a
	// successful IssueToken.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// IssueToken exchanges the account address for a bearer token and stores
	// it via SetToken.
	IssueToken(ctx context.Context, address common.Address) (string, error)

	// Register registers the caller with an optional encryption key and
	// returns the registered address.
	Register(ctx context.Context, key []byte) (common.Address, error)

	// UpdateEncryptionKey unconditionally replaces the caller's key.
	UpdateEncryptionKey(ctx context.Context, key []byte) error

	// CreateNote stores a new note and returns its id.
	CreateNote(ctx context.Context, title, content string) (*uint256.Int, error)

	// GetNote reads one note. Absent notes come back as the server's
	// sentinel tuple, not as an error.
	GetNote(ctx context.Context, id *uint256.Int) (models.NoteResponse, error)

	// UpdateNote replaces the title and content of an existing note.
	UpdateNote(ctx context.Context, id *uint256.Int, title, content string) error

	// DeleteNote removes a note. Deleting an absent id is a silent no-op
	// server-side.
	DeleteNote(ctx context.Context, id *uint256.Int) error

	// GetNoteCount returns the caller's live note count.
	GetNoteCount(ctx context.Context) (*uint256.Int, error)

	// GetNotesList returns ids, titles and timestamps of all live notes.
	GetNotesList(ctx context.Context) (models.NoteListResponse, error)

	// Encrypt runs the raw cipher engine over content for the caller.
	Encrypt(ctx context.Context, content string) ([]byte, error)

	// Decrypt runs the raw cipher engine over data. Refusals arrive as the
	// server's sentinel strings inside the response, never as errors.
	Decrypt(ctx context.Context, data []byte) (string, error)

	// ContractAddress returns the note store's own address.
	ContractAddress(ctx context.Context) (common.Address, error)

	// Version returns the server's version string.
	Version(ctx context.Context) (string, error)
}
