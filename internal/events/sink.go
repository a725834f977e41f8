package events

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/notekeep/go-secure-notes/internal/logger"
)

// LogSink forwards every emitted event to the structured log, which is the
// host log mechanism of this deployment. Topics are rendered as hex.
type LogSink struct {
	logger *logger.Logger
}

// NewLogSink constructs a [LogSink] over log.
func NewLogSink(log *logger.Logger) *LogSink {
	return &LogSink{logger: log}
}

// EmitLog implements [Sink].
func (s *LogSink) EmitLog(data []byte, topics []common.Hash) {
	hexTopics := make([]string, len(topics))
	for i, t := range topics {
		hexTopics[i] = t.Hex()
	}

	s.logger.Info().
		Strs("topics", hexTopics).
		Int("data_len", len(data)).
		Str("data", string(data)).
		Msg("event emitted")
}

// Log is one recorded event: the data payload and the full topic list,
// signature topic first.
type Log struct {
	Data   []byte
	Topics []common.Hash
}

// RecordingSink retains every emitted event in order. It backs tests and
// any consumer that needs to inspect the transition history of a call.
type RecordingSink struct {
	mu   sync.Mutex
	logs []Log
}

// NewRecordingSink constructs an empty [RecordingSink].
func NewRecordingSink() *RecordingSink {
	return &RecordingSink{}
}

// EmitLog implements [Sink].
func (s *RecordingSink) EmitLog(data []byte, topics []common.Hash) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = append(s.logs, Log{Data: data, Topics: topics})
}

// Logs returns a copy of the recorded events in emission order.
func (s *RecordingSink) Logs() []Log {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Log, len(s.logs))
	copy(out, s.logs)
	return out
}

// CountSig returns how many recorded events carry sig as their first topic.
func (s *RecordingSink) CountSig(sig common.Hash) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, l := range s.logs {
		if len(l.Topics) > 0 && l.Topics[0] == sig {
			n++
		}
	}
	return n
}
