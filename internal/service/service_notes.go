// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/notekeep/go-secure-notes/internal/crypto"
	"github.com/notekeep/go-secure-notes/internal/events"
	"github.com/notekeep/go-secure-notes/internal/host"
	"github.com/notekeep/go-secure-notes/internal/logger"
	"github.com/notekeep/go-secure-notes/internal/store"
	"github.com/notekeep/go-secure-notes/models"
)

// Sentinel string values of the public surface. These travel as ordinary
// return values: in the execution environment this engine targets, a thrown
// error reverts the whole invocation, so routine "not found" and decrypt
// refusals must stay value-shaped.
const (
	// MsgNoteDoesNotExist fills the content slot of the GetNote sentinel
	// tuple.
	MsgNoteDoesNotExist = "Note does not exist"

	// MsgInvalidDataFormat is returned by DecryptNote for blobs shorter
	// than the owner prefix.
	MsgInvalidDataFormat = "Error: Invalid data format"

	// MsgPermissionDenied is returned by DecryptNote when the owner prefix
	// is not the caller.
	MsgPermissionDenied = "Error: You don't have permission to decrypt this note"

	// MsgDecryptionFailed is returned by DecryptNote when the decrypted
	// bytes are not valid UTF-8.
	MsgDecryptionFailed = "Error: Decryption failed"
)

// notesService is the private implementation of [NotesService]. It holds no
// mutable state: every operation reads and writes through the injected
// field accessors, so the service is trivially testable with the in-memory
// store.
type notesService struct {
	fields  *store.Fields
	engine  crypto.Engine
	emitter *events.Emitter

	logger *logger.Logger
}

// NewNotesService constructs a [NotesService] over the given storage
// accessors, cipher engine and event emitter.
func NewNotesService(fields *store.Fields, engine crypto.Engine, emitter *events.Emitter, logger *logger.Logger) NotesService {
	return &notesService{
		fields:  fields,
		engine:  engine,
		emitter: emitter,
		logger:  logger,
	}
}

// ensureRegistered stores the explicit empty key marker and emits
// UserRegistered on the caller's first-ever mutating call. The marker makes
// "registered" synonymous with "has performed at least one mutating call";
// a stored empty key reads back exactly like no key at all, so existence of
// the record is what keeps the event a one-time side effect.
func (s *notesService) ensureRegistered(ctx context.Context, caller common.Address) error {
	registered, err := s.fields.HasKey(ctx, caller)
	if err != nil {
		return err
	}
	if registered {
		return nil
	}

	if err = s.fields.SetKey(ctx, caller, []byte{}); err != nil {
		return err
	}

	logger.FromContext(ctx).Debug().
		Str("func", "notesService.ensureRegistered").
		Str("caller", caller.Hex()).
		Msg("auto-registered caller")

	s.emitter.UserRegistered(caller)
	return nil
}

// loadNote returns the caller's note at id, or ok=false when id is beyond
// the live range or the stored owner is not the caller. The ownership check
// is the central isolation invariant: ids are meaningless across accounts.
func (s *notesService) loadNote(ctx context.Context, caller common.Address, id *uint256.Int) (models.Note, bool, error) {
	count, err := s.fields.Count(ctx, caller)
	if err != nil {
		return models.Note{}, false, err
	}
	if !id.Lt(count) {
		return models.Note{}, false, nil
	}

	owner, err := s.fields.Owner(ctx, caller, id)
	if err != nil {
		return models.Note{}, false, err
	}
	if owner == (common.Address{}) || owner != caller {
		return models.Note{}, false, nil
	}

	title, err := s.fields.Title(ctx, caller, id)
	if err != nil {
		return models.Note{}, false, err
	}
	content, err := s.fields.Content(ctx, caller, id)
	if err != nil {
		return models.Note{}, false, err
	}
	timestamp, err := s.fields.Timestamp(ctx, caller, id)
	if err != nil {
		return models.Note{}, false, err
	}

	return models.Note{
		ID:               id.Clone(),
		Owner:            owner,
		EncryptedContent: content,
		Timestamp:        timestamp,
		Title:            title,
	}, true, nil
}

// storeNote writes all per-note fields of the slot at note.ID.
func (s *notesService) storeNote(ctx context.Context, note models.Note) error {
	if err := s.fields.SetOwner(ctx, note.Owner, note.ID, note.Owner); err != nil {
		return err
	}
	if err := s.fields.SetContent(ctx, note.Owner, note.ID, note.EncryptedContent); err != nil {
		return err
	}
	if err := s.fields.SetTimestamp(ctx, note.Owner, note.ID, note.Timestamp); err != nil {
		return err
	}
	return s.fields.SetTitle(ctx, note.Owner, note.ID, note.Title)
}

// RegisterUser implements [NotesService].
func (s *notesService) RegisterUser(ctx context.Context, call host.CallContext, key []byte) error {
	if len(key) > 0 {
		if err := s.fields.SetKey(ctx, call.Caller, key); err != nil {
			return err
		}
	}

	s.emitter.UserRegistered(call.Caller)

	logger.FromContext(ctx).Info().
		Str("func", "notesService.RegisterUser").
		Str("caller", call.Caller.Hex()).
		Bool("key_provided", len(key) > 0).
		Msg("user registered")

	return nil
}

// CreateNote implements [NotesService].
func (s *notesService) CreateNote(ctx context.Context, call host.CallContext, title, content string) (*uint256.Int, error) {
	caller := call.Caller

	if err := s.ensureRegistered(ctx, caller); err != nil {
		return nil, err
	}

	ciphertext, err := s.engine.Encrypt(ctx, caller, content)
	if err != nil {
		return nil, err
	}

	count, err := s.fields.Count(ctx, caller)
	if err != nil {
		return nil, err
	}
	id := count.Clone()

	note := models.Note{
		ID:               id,
		Owner:            caller,
		EncryptedContent: ciphertext,
		Timestamp:        call.Timestamp(),
		Title:            title,
	}

	if err = s.storeNote(ctx, note); err != nil {
		return nil, err
	}
	if err = s.fields.SetCount(ctx, caller, new(uint256.Int).AddUint64(count, 1)); err != nil {
		return nil, err
	}

	s.emitter.NoteCreated(caller, id, title)

	logger.FromContext(ctx).Info().
		Str("func", "notesService.CreateNote").
		Str("caller", caller.Hex()).
		Str("note_id", id.Dec()).
		Msg("note created")

	return id, nil
}

// GetNote implements [NotesService].
func (s *notesService) GetNote(ctx context.Context, call host.CallContext, id *uint256.Int) (string, string, *uint256.Int, error) {
	note, ok, err := s.loadNote(ctx, call.Caller, id)
	if err != nil {
		return "", "", nil, err
	}
	if !ok {
		return "", MsgNoteDoesNotExist, uint256.NewInt(0), nil
	}

	plaintext, err := s.DecryptNote(ctx, call, note.EncryptedContent)
	if err != nil {
		return "", "", nil, err
	}

	return note.Title, plaintext, note.Timestamp, nil
}

// UpdateNote implements [NotesService].
func (s *notesService) UpdateNote(ctx context.Context, call host.CallContext, id *uint256.Int, title, content string) error {
	caller := call.Caller

	if err := s.ensureRegistered(ctx, caller); err != nil {
		return err
	}

	note, ok, err := s.loadNote(ctx, caller, id)
	if err != nil {
		return err
	}
	if !ok {
		// absent target is a silent no-op, observable only by the missing
		// NoteUpdated event
		return nil
	}

	note.EncryptedContent, err = s.engine.Encrypt(ctx, caller, content)
	if err != nil {
		return err
	}
	note.Title = title
	note.Timestamp = call.Timestamp()

	if err = s.storeNote(ctx, note); err != nil {
		return err
	}

	s.emitter.NoteUpdated(caller, id)

	logger.FromContext(ctx).Info().
		Str("func", "notesService.UpdateNote").
		Str("caller", caller.Hex()).
		Str("note_id", id.Dec()).
		Msg("note updated")

	return nil
}

// DeleteNote implements [NotesService]. Deletion is O(1): when the target
// is not the last note, the last note's fields are copied into the freed
// slot under the deleted id, then the count shrinks. The stale slot beyond
// the new count is left in place; it is unreachable once the count excludes
// it.
func (s *notesService) DeleteNote(ctx context.Context, call host.CallContext, id *uint256.Int) error {
	caller := call.Caller

	if err := s.ensureRegistered(ctx, caller); err != nil {
		return err
	}

	count, err := s.fields.Count(ctx, caller)
	if err != nil {
		return err
	}

	_, ok, err := s.loadNote(ctx, caller, id)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	last := new(uint256.Int).SubUint64(count, 1)

	if !id.Eq(last) {
		lastNote, lastOK, loadErr := s.loadNote(ctx, caller, last)
		if loadErr != nil {
			return loadErr
		}
		if lastOK {
			// relabel: same fields, id overwritten to the freed slot;
			// owner is necessarily the caller for both ids
			lastNote.ID = id.Clone()
			if err = s.storeNote(ctx, lastNote); err != nil {
				return err
			}
		}
	}

	if err = s.fields.SetCount(ctx, caller, last); err != nil {
		return err
	}

	s.emitter.NoteDeleted(caller, id)

	logger.FromContext(ctx).Info().
		Str("func", "notesService.DeleteNote").
		Str("caller", caller.Hex()).
		Str("note_id", id.Dec()).
		Msg("note deleted")

	return nil
}

// GetNoteCount implements [NotesService].
func (s *notesService) GetNoteCount(ctx context.Context, call host.CallContext) (*uint256.Int, error) {
	return s.fields.Count(ctx, call.Caller)
}

// GetNotesList implements [NotesService]. Cost is linear in the caller's
// live note count; there is no pagination.
func (s *notesService) GetNotesList(ctx context.Context, call host.CallContext) (models.NoteList, error) {
	caller := call.Caller

	count, err := s.fields.Count(ctx, caller)
	if err != nil {
		return models.NoteList{}, err
	}

	n := count.Uint64()
	list := models.NoteList{
		IDs:        make([]*uint256.Int, 0, n),
		Titles:     make([]string, 0, n),
		Timestamps: make([]*uint256.Int, 0, n),
	}

	for i := uint64(0); i < n; i++ {
		id := uint256.NewInt(i)
		note, ok, loadErr := s.loadNote(ctx, caller, id)
		if loadErr != nil {
			return models.NoteList{}, loadErr
		}
		if !ok {
			continue
		}

		list.IDs = append(list.IDs, note.ID)
		list.Titles = append(list.Titles, note.Title)
		list.Timestamps = append(list.Timestamps, note.Timestamp)
	}

	return list, nil
}

// UpdateEncryptionKey implements [NotesService]. Note the latent property:
// notes encrypted under the previous key will decrypt to garbage from now
// on, silently unless the UTF-8 check trips. Documented behavior, not
// fixed.
func (s *notesService) UpdateEncryptionKey(ctx context.Context, call host.CallContext, key []byte) error {
	return s.fields.SetKey(ctx, call.Caller, key)
}

// EncryptNote implements [NotesService].
func (s *notesService) EncryptNote(ctx context.Context, call host.CallContext, content string) ([]byte, error) {
	return s.engine.Encrypt(ctx, call.Caller, content)
}

// DecryptNote implements [NotesService]. Engine refusals are translated to
// the sentinel strings of the reference surface; only storage faults
// surface as errors.
func (s *notesService) DecryptNote(ctx context.Context, call host.CallContext, data []byte) (string, error) {
	plaintext, err := s.engine.Decrypt(ctx, call.Caller, data)
	switch {
	case err == nil:
		return plaintext, nil
	case errors.Is(err, crypto.ErrInvalidFormat):
		return MsgInvalidDataFormat, nil
	case errors.Is(err, crypto.ErrPermissionDenied):
		return MsgPermissionDenied, nil
	case errors.Is(err, crypto.ErrDecryptionFailed):
		return MsgDecryptionFailed, nil
	default:
		return "", err
	}
}

// EncryptionContractAddress implements [NotesService].
func (s *notesService) EncryptionContractAddress(call host.CallContext) common.Address {
	return call.Self
}
