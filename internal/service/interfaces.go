package service

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/notekeep/go-secure-notes/internal/host"
	"github.com/notekeep/go-secure-notes/models"
)

// NotesService is the public operation surface of the note store. Every
// method takes the host-supplied [host.CallContext] as its acting identity;
// a caller can only ever address its own notes, so no method accepts a
// target account.
//
// Ordinary misuse never produces an error: absent notes read back as the
// sentinel tuple, absent targets of update/delete are silent no-ops, and
// decrypt refusals come back as descriptive string values. A returned
// non-nil error always means a storage-level fault, which the transport
// layer reports as an invocation failure.
type NotesService interface {
	// RegisterUser stores key as the caller's encryption key when non-empty
	// and always emits UserRegistered. It may be called repeatedly; each
	// call with a non-empty key overwrites the previous one.
	RegisterUser(ctx context.Context, call host.CallContext, key []byte) error

	// CreateNote encrypts content for the caller, appends the note at
	// id = count, increments the count and returns the new id.
	// Auto-registers the caller first.
	CreateNote(ctx context.Context, call host.CallContext, title, content string) (*uint256.Int, error)

	// GetNote returns (title, plaintext, timestamp). When the note does not
	// exist or is not the caller's, the sentinel tuple
	// ("", "Note does not exist", 0) is returned instead.
	GetNote(ctx context.Context, call host.CallContext, id *uint256.Int) (string, string, *uint256.Int, error)

	// UpdateNote re-encrypts content and replaces content, title and
	// timestamp in place. Silent no-op when the note is absent.
	// Auto-registers the caller first.
	UpdateNote(ctx context.Context, call host.CallContext, id *uint256.Int, title, content string) error

	// DeleteNote removes the note by swap-compaction: the then-last note is
	// relabeled into the freed slot and the count shrinks by one. Silent
	// no-op when the note is absent. Auto-registers the caller first.
	DeleteNote(ctx context.Context, call host.CallContext, id *uint256.Int) error

	// GetNoteCount returns the caller's live note count.
	GetNoteCount(ctx context.Context, call host.CallContext) (*uint256.Int, error)

	// GetNotesList returns ids, titles and timestamps of all live notes in
	// ascending id order. Contents are not decrypted here.
	GetNotesList(ctx context.Context, call host.CallContext) (models.NoteList, error)

	// UpdateEncryptionKey unconditionally overwrites the caller's key,
	// including with an empty value. No event is emitted.
	UpdateEncryptionKey(ctx context.Context, call host.CallContext, key []byte) error

	// EncryptNote exposes the raw cipher engine: returns the framed
	// ciphertext of content for the caller.
	EncryptNote(ctx context.Context, call host.CallContext, content string) ([]byte, error)

	// DecryptNote exposes the raw cipher engine. Refusals are reported as
	// the sentinel strings of the reference surface, never as errors.
	DecryptNote(ctx context.Context, call host.CallContext, data []byte) (string, error)

	// EncryptionContractAddress returns this unit's own address. Legacy
	// compatibility stub from the two-contract architecture.
	EncryptionContractAddress(call host.CallContext) common.Address
}
