// Package events formats and dispatches the notifications describing state
// transitions of the note store: user registration, note creation, update
// and deletion.
//
// Every emitted log carries a fixed 32-byte signature constant as its first
// topic, followed by identifying topics (the caller, and for note events the
// note id). The constants are carried over byte-for-byte from the reference
// deployment so that emitted topics stay wire-compatible with existing
// consumers.
package events

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/notekeep/go-secure-notes/models"
)

// Pre-computed event signature hashes, first topic of every emitted log.
var (
	SigUserRegistered = common.HexToHash("0x877a155368c1f0de44cfba7a7da905cbaeeb31943d839b7c67103acaa53009f5")
	SigNoteCreated    = common.HexToHash("0xa56376160d28d2b90a0746c49caba732b47670e9d51bc39e431f4a6d861a0f9d")
	SigNoteUpdated    = common.HexToHash("0x9b8718329ee8d934e3cb45c98518ea81c6ec5ea3b11dd77b3253e59e67c05c8a")
	SigNoteDeleted    = common.HexToHash("0x95a323c3169ce1b212d95454f314a7ef7dd48dc5748be2c66b0a52d102f280c4")
)

// Sink receives fully formatted logs. The production sink forwards them to
// the host log mechanism; tests use a recording sink.
type Sink interface {
	EmitLog(data []byte, topics []common.Hash)
}

// AddressTopic right-aligns a 20-byte account identifier into a 32-byte
// topic slot, left-padded with zero bytes.
func AddressTopic(addr common.Address) common.Hash {
	var topic common.Hash
	copy(topic[common.HashLength-models.AddressLength:], addr.Bytes())
	return topic
}

// IDTopic encodes a 256-bit integer big-endian into a 32-byte topic slot.
func IDTopic(id *uint256.Int) common.Hash {
	return common.Hash(id.Bytes32())
}

// Emitter formats the four event kinds and dispatches them to a sink.
type Emitter struct {
	sink Sink
}

// NewEmitter constructs an [Emitter] over sink.
func NewEmitter(sink Sink) *Emitter {
	return &Emitter{sink: sink}
}

// emit prepends the signature topic and dispatches.
func (e *Emitter) emit(sig common.Hash, data []byte, topics ...common.Hash) {
	all := make([]common.Hash, 0, 1+len(topics))
	all = append(all, sig)
	all = append(all, topics...)
	e.sink.EmitLog(data, all)
}

// UserRegistered emits the registration event: no data, one topic (caller).
func (e *Emitter) UserRegistered(caller common.Address) {
	e.emit(SigUserRegistered, nil, AddressTopic(caller))
}

// NoteCreated emits the creation event: data is the UTF-8 title bytes,
// topics are the caller and the new note id.
func (e *Emitter) NoteCreated(caller common.Address, id *uint256.Int, title string) {
	e.emit(SigNoteCreated, []byte(title), AddressTopic(caller), IDTopic(id))
}

// NoteUpdated emits the update event: no data, topics caller and id.
func (e *Emitter) NoteUpdated(caller common.Address, id *uint256.Int) {
	e.emit(SigNoteUpdated, nil, AddressTopic(caller), IDTopic(id))
}

// NoteDeleted emits the deletion event: no data, topics caller and the
// deleted id.
func (e *Emitter) NoteDeleted(caller common.Address, id *uint256.Int) {
	e.emit(SigNoteDeleted, nil, AddressTopic(caller), IDTopic(id))
}
