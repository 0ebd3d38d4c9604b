package battlelog

import (
	"strings"
	"sync"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/text/width"
)

// Stabilizer holds messages back until the same text has been read on
// consecutive frames. Messages are read mid-animation and on frames with no
// log at all, so a single reading proves nothing. Once a message has been
// released it stays suppressed until a different message shows up.
type Stabilizer struct {
	bufferSize int

	mu          sync.Mutex
	alreadyRead bool
	buffer      []*Log
}

func NewStabilizer() *Stabilizer {
	return &Stabilizer{bufferSize: 1}
}

// Handle folds one reading into the stabilizer and returns the log once it
// is judged stable, nil otherwise.
func (s *Stabilizer) Handle(log *Log) *Log {
	s.mu.Lock()
	defer s.mu.Unlock()

	if log == nil {
		s.push(nil)
		return nil
	}

	normalized := &Log{Type: log.Type, Lines: make([]string, len(log.Lines))}
	for i, line := range log.Lines {
		normalized.Lines[i] = normalize(line)
	}

	stable := len(s.buffer) > 0
	for _, prev := range s.buffer {
		if !match(prev, normalized) {
			stable = false
			break
		}
	}
	s.push(normalized)

	if !stable {
		s.alreadyRead = false
		return nil
	}
	if s.alreadyRead {
		return nil
	}
	s.alreadyRead = true
	return log
}

func (s *Stabilizer) push(log *Log) {
	if len(s.buffer) == s.bufferSize {
		copy(s.buffer, s.buffer[1:])
		s.buffer = s.buffer[:s.bufferSize-1]
	}
	s.buffer = append(s.buffer, log)
}

var confusionReplacer = strings.NewReplacer("ﾞ", "", "ﾟ", "", "八", "ﾊ", "ｱ", "ｵ")

// normalize folds each line to half-width katakana and strips the marks the
// OCR backend most often misreads, so near-identical readings compare equal.
func normalize(value string) string {
	runes := []rune(value)
	for i, r := range runes {
		if r >= 'ぁ' && r <= 'ゖ' {
			runes[i] = r + ('ァ' - 'ぁ')
		}
	}
	value = width.Narrow.String(string(runes))
	return confusionReplacer.Replace(value)
}

// match fuzzily compares two normalized readings of the same shape.
func match(lhs, rhs *Log) bool {
	if lhs == nil || rhs == nil {
		return false
	}
	if lhs.Type != rhs.Type {
		return false
	}
	if len(lhs.Lines) == 0 || len(lhs.Lines) != len(rhs.Lines) {
		return false
	}
	m := difflib.NewMatcher(
		strings.Split(strings.Join(lhs.Lines, ""), ""),
		strings.Split(strings.Join(rhs.Lines, ""), ""),
	)
	return m.Ratio() > 0.5
}
