// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notekeep/go-secure-notes/internal/crypto"
	"github.com/notekeep/go-secure-notes/internal/events"
	"github.com/notekeep/go-secure-notes/internal/host"
	"github.com/notekeep/go-secure-notes/internal/logger"
	"github.com/notekeep/go-secure-notes/internal/store"
)

var (
	alice = common.HexToAddress("0x1111111111111111111111111111111111111111")
	bob   = common.HexToAddress("0x2222222222222222222222222222222222222222")
	self  = common.HexToAddress("0x000000000000000000000000000000000000c0de")
)

type fixture struct {
	svc    NotesService
	fields *store.Fields
	sink   *events.RecordingSink
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	fields := store.NewFields(store.NewMemory())
	engine := crypto.NewEngine(fields, logger.Nop())
	sink := events.NewRecordingSink()

	return &fixture{
		svc:    NewNotesService(fields, engine, events.NewEmitter(sink), logger.Nop()),
		fields: fields,
		sink:   sink,
	}
}

func callAs(caller common.Address, blockTime uint64) host.CallContext {
	return host.CallContext{Caller: caller, BlockTime: blockTime, Self: self}
}

func TestCreateNote_AssignsSequentialIDs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	call := callAs(alice, 1000)

	for i := uint64(0); i < 3; i++ {
		id, err := f.svc.CreateNote(ctx, call, "title", "content")
		require.NoError(t, err)
		assert.Equal(t, i, id.Uint64())
	}

	count, err := f.svc.GetNoteCount(ctx, call)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), count.Uint64())
}

func TestCreateThenGet_RoundTrips(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	call := callAs(alice, 1234)

	id, err := f.svc.CreateNote(ctx, call, "groceries", "milk, eggs")
	require.NoError(t, err)

	title, content, timestamp, err := f.svc.GetNote(ctx, call, id)
	require.NoError(t, err)
	assert.Equal(t, "groceries", title)
	assert.Equal(t, "milk, eggs", content)
	assert.Equal(t, uint64(1234), timestamp.Uint64())
}

func TestGetNote_AbsentReturnsSentinelTuple(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	call := callAs(alice, 1000)

	title, content, timestamp, err := f.svc.GetNote(ctx, call, uint256.NewInt(0))
	require.NoError(t, err)
	assert.Equal(t, "", title)
	assert.Equal(t, MsgNoteDoesNotExist, content)
	assert.True(t, timestamp.IsZero())
}

func TestGetNote_BeyondCountReturnsSentinelTuple(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	call := callAs(alice, 1000)

	_, err := f.svc.CreateNote(ctx, call, "only", "note")
	require.NoError(t, err)

	_, content, _, err := f.svc.GetNote(ctx, call, uint256.NewInt(1))
	require.NoError(t, err)
	assert.Equal(t, MsgNoteDoesNotExist, content)
}

// TestAccountIsolation verifies that ids are scoped to the caller: bob
// cannot see alice's notes under any id, and his own id space is
// independent.
func TestAccountIsolation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	idAlice, err := f.svc.CreateNote(ctx, callAs(alice, 1000), "alice note", "alice secret")
	require.NoError(t, err)

	_, content, _, err := f.svc.GetNote(ctx, callAs(bob, 1001), idAlice)
	require.NoError(t, err)
	assert.Equal(t, MsgNoteDoesNotExist, content)

	idBob, err := f.svc.CreateNote(ctx, callAs(bob, 1002), "bob note", "bob secret")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), idBob.Uint64())

	_, bobContent, _, err := f.svc.GetNote(ctx, callAs(bob, 1003), idBob)
	require.NoError(t, err)
	assert.Equal(t, "bob secret", bobContent)

	count, err := f.svc.GetNoteCount(ctx, callAs(alice, 1004))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count.Uint64())
}

func TestUpdateNote_ReplacesInPlace(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	id, err := f.svc.CreateNote(ctx, callAs(alice, 1000), "old title", "old content")
	require.NoError(t, err)

	require.NoError(t, f.svc.UpdateNote(ctx, callAs(alice, 2000), id, "new title", "new content"))

	title, content, timestamp, err := f.svc.GetNote(ctx, callAs(alice, 3000), id)
	require.NoError(t, err)
	assert.Equal(t, "new title", title)
	assert.Equal(t, "new content", content)
	assert.Equal(t, uint64(2000), timestamp.Uint64())

	count, err := f.svc.GetNoteCount(ctx, callAs(alice, 3000))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count.Uint64())
}

func TestUpdateNote_AbsentIsSilentNoOp(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.svc.UpdateNote(ctx, callAs(alice, 1000), uint256.NewInt(9), "t", "c")
	require.NoError(t, err)
	assert.Equal(t, 0, f.sink.CountSig(events.SigNoteUpdated))
}

// TestDeleteNote_SwapCompaction is the canonical compaction scenario:
// with notes [N0, N1, N2], deleting id 0 must leave N2 readable at id 0,
// N1 untouched at id 1, and the count at 2.
func TestDeleteNote_SwapCompaction(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, n := range []string{"N0", "N1", "N2"} {
		_, err := f.svc.CreateNote(ctx, callAs(alice, 1000), n, "content of "+n)
		require.NoError(t, err)
	}

	require.NoError(t, f.svc.DeleteNote(ctx, callAs(alice, 2000), uint256.NewInt(0)))

	count, err := f.svc.GetNoteCount(ctx, callAs(alice, 3000))
	require.NoError(t, err)
	assert.Equal(t, uint64(2), count.Uint64())

	title0, content0, _, err := f.svc.GetNote(ctx, callAs(alice, 3000), uint256.NewInt(0))
	require.NoError(t, err)
	assert.Equal(t, "N2", title0)
	assert.Equal(t, "content of N2", content0)

	title1, _, _, err := f.svc.GetNote(ctx, callAs(alice, 3000), uint256.NewInt(1))
	require.NoError(t, err)
	assert.Equal(t, "N1", title1)

	// the freed slot at the old top is out of range now
	_, content2, _, err := f.svc.GetNote(ctx, callAs(alice, 3000), uint256.NewInt(2))
	require.NoError(t, err)
	assert.Equal(t, MsgNoteDoesNotExist, content2)
}

func TestDeleteNote_LastIDNeedsNoCopy(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateNote(ctx, callAs(alice, 1000), "keep", "kept")
	require.NoError(t, err)
	last, err := f.svc.CreateNote(ctx, callAs(alice, 1000), "drop", "dropped")
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteNote(ctx, callAs(alice, 2000), last))

	count, err := f.svc.GetNoteCount(ctx, callAs(alice, 3000))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count.Uint64())

	title, _, _, err := f.svc.GetNote(ctx, callAs(alice, 3000), uint256.NewInt(0))
	require.NoError(t, err)
	assert.Equal(t, "keep", title)
}

func TestDeleteNote_AbsentIsSilentNoOp(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateNote(ctx, callAs(alice, 1000), "only", "note")
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteNote(ctx, callAs(alice, 2000), uint256.NewInt(5)))

	count, err := f.svc.GetNoteCount(ctx, callAs(alice, 3000))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count.Uint64())
	assert.Equal(t, 0, f.sink.CountSig(events.SigNoteDeleted))
}

// TestIDsStayDense exercises a longer create/delete interleaving and checks
// the density invariant: all ids in [0, count) resolve, everything at or
// beyond count does not.
func TestIDsStayDense(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	call := callAs(alice, 1000)

	for i := 0; i < 5; i++ {
		_, err := f.svc.CreateNote(ctx, call, "note", "content")
		require.NoError(t, err)
	}
	require.NoError(t, f.svc.DeleteNote(ctx, call, uint256.NewInt(1)))
	require.NoError(t, f.svc.DeleteNote(ctx, call, uint256.NewInt(3)))
	_, err := f.svc.CreateNote(ctx, call, "note", "content")
	require.NoError(t, err)

	count, err := f.svc.GetNoteCount(ctx, call)
	require.NoError(t, err)
	require.Equal(t, uint64(4), count.Uint64())

	for i := uint64(0); i < count.Uint64(); i++ {
		_, content, _, getErr := f.svc.GetNote(ctx, call, uint256.NewInt(i))
		require.NoError(t, getErr)
		assert.NotEqual(t, MsgNoteDoesNotExist, content, "id %d should resolve", i)
	}

	_, content, _, err := f.svc.GetNote(ctx, call, count)
	require.NoError(t, err)
	assert.Equal(t, MsgNoteDoesNotExist, content)
}

func TestGetNotesList_AscendingOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i, title := range []string{"first", "second", "third"} {
		_, err := f.svc.CreateNote(ctx, callAs(alice, 1000+uint64(i)), title, "c")
		require.NoError(t, err)
	}

	list, err := f.svc.GetNotesList(ctx, callAs(alice, 2000))
	require.NoError(t, err)
	require.Equal(t, 3, list.Len())

	assert.Equal(t, []string{"first", "second", "third"}, list.Titles)
	for i, id := range list.IDs {
		assert.Equal(t, uint64(i), id.Uint64())
	}
	assert.Equal(t, uint64(1000), list.Timestamps[0].Uint64())
	assert.Equal(t, uint64(1002), list.Timestamps[2].Uint64())
}

func TestGetNotesList_EmptyAccount(t *testing.T) {
	f := newFixture(t)

	list, err := f.svc.GetNotesList(context.Background(), callAs(alice, 1000))
	require.NoError(t, err)
	assert.Equal(t, 0, list.Len())
}

// TestAutoRegistration_EmitsOnce covers the first-touch behavior: the first
// mutating call from a fresh account emits UserRegistered exactly once, and
// later mutating calls never re-emit.
func TestAutoRegistration_EmitsOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	call := callAs(alice, 1000)

	id, err := f.svc.CreateNote(ctx, call, "first", "note")
	require.NoError(t, err)
	assert.Equal(t, 1, f.sink.CountSig(events.SigUserRegistered))

	_, err = f.svc.CreateNote(ctx, call, "second", "note")
	require.NoError(t, err)
	require.NoError(t, f.svc.UpdateNote(ctx, call, id, "first", "edited"))
	require.NoError(t, f.svc.DeleteNote(ctx, call, id))

	assert.Equal(t, 1, f.sink.CountSig(events.SigUserRegistered))
}

func TestAutoRegistration_LeavesDefaultKeyInUse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	call := callAs(alice, 1000)

	id, err := f.svc.CreateNote(ctx, call, "t", "readable content")
	require.NoError(t, err)

	// the marker is an empty key record, so the address-derived default
	// still decrypts
	key, err := f.fields.Key(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, key)

	_, content, _, err := f.svc.GetNote(ctx, call, id)
	require.NoError(t, err)
	assert.Equal(t, "readable content", content)
}

// TestRegisterUser_AlwaysEmits pins the explicit-registration surface:
// every call emits, regardless of prior state, and an empty key payload
// does not clobber a stored key.
func TestRegisterUser_AlwaysEmits(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	call := callAs(alice, 1000)

	require.NoError(t, f.svc.RegisterUser(ctx, call, []byte("my key")))
	require.NoError(t, f.svc.RegisterUser(ctx, call, nil))
	require.NoError(t, f.svc.RegisterUser(ctx, call, []byte("newer key")))

	assert.Equal(t, 3, f.sink.CountSig(events.SigUserRegistered))

	key, err := f.fields.Key(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, []byte("newer key"), key)
}

func TestRegisterUser_EmptyKeyDoesNotOverwrite(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	call := callAs(alice, 1000)

	require.NoError(t, f.svc.RegisterUser(ctx, call, []byte("keep me")))
	require.NoError(t, f.svc.RegisterUser(ctx, call, []byte{}))

	key, err := f.fields.Key(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, []byte("keep me"), key)
}

func TestUpdateEncryptionKey_OverwritesUnconditionally(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	call := callAs(alice, 1000)

	require.NoError(t, f.svc.UpdateEncryptionKey(ctx, call, []byte("the key")))
	key, err := f.fields.Key(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, []byte("the key"), key)

	// unlike registerUser, an empty value does clobber
	require.NoError(t, f.svc.UpdateEncryptionKey(ctx, call, nil))
	key, err = f.fields.Key(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, key)

	// and no event of any kind is emitted
	assert.Empty(t, f.sink.Logs())
}

// TestKeyRotation_OldNotesDecryptToGarbage pins the documented latent
// property: rotating the key silently breaks previously stored notes.
func TestKeyRotation_OldNotesDecryptToGarbage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	call := callAs(alice, 1000)

	require.NoError(t, f.svc.UpdateEncryptionKey(ctx, call, []byte("first key")))
	id, err := f.svc.CreateNote(ctx, call, "t", "original plaintext")
	require.NoError(t, err)

	require.NoError(t, f.svc.UpdateEncryptionKey(ctx, call, []byte("second key")))

	_, content, _, err := f.svc.GetNote(ctx, call, id)
	require.NoError(t, err)
	assert.NotEqual(t, "original plaintext", content)
}

func TestEncryptDecrypt_RawSurface(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	call := callAs(alice, 1000)

	data, err := f.svc.EncryptNote(ctx, call, "hello")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(data), 20)

	content, err := f.svc.DecryptNote(ctx, call, data)
	require.NoError(t, err)
	assert.Equal(t, "hello", content)
}

// TestDecryptNote_SentinelStrings verifies that engine refusals surface as
// descriptive strings with a nil error, never as call failures.
func TestDecryptNote_SentinelStrings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	aliceBlob, err := f.svc.EncryptNote(ctx, callAs(alice, 1000), "for alice")
	require.NoError(t, err)

	tests := []struct {
		name   string
		caller common.Address
		data   []byte
		want   string
	}{
		{name: "too short", caller: alice, data: []byte{1, 2, 3}, want: MsgInvalidDataFormat},
		{name: "nil data", caller: alice, data: nil, want: MsgInvalidDataFormat},
		{name: "foreign owner", caller: bob, data: aliceBlob, want: MsgPermissionDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content, decErr := f.svc.DecryptNote(ctx, callAs(tt.caller, 2000), tt.data)
			require.NoError(t, decErr)
			assert.Equal(t, tt.want, content)
		})
	}
}

func TestEncryptionContractAddress_ReturnsSelf(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, self, f.svc.EncryptionContractAddress(callAs(alice, 1000)))
}

// TestLifecycle_EventTrail walks one full lifecycle and checks the emitted
// event sequence end to end.
func TestLifecycle_EventTrail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	call := callAs(alice, 1000)

	id, err := f.svc.CreateNote(ctx, call, "note", "v1")
	require.NoError(t, err)
	require.NoError(t, f.svc.UpdateNote(ctx, call, id, "note", "v2"))
	require.NoError(t, f.svc.DeleteNote(ctx, call, id))

	logs := f.sink.Logs()
	require.Len(t, logs, 4)
	assert.Equal(t, events.SigUserRegistered, logs[0].Topics[0])
	assert.Equal(t, events.SigNoteCreated, logs[1].Topics[0])
	assert.Equal(t, events.SigNoteUpdated, logs[2].Topics[0])
	assert.Equal(t, events.SigNoteDeleted, logs[3].Topics[0])

	// note topics carry the caller and the id
	assert.Equal(t, events.AddressTopic(alice), logs[1].Topics[1])
	assert.Equal(t, events.IDTopic(id), logs[1].Topics[2])
	assert.Equal(t, []byte("note"), logs[1].Data)
}
