// Package transcript holds the ordered record of a chat screen.
package transcript

import (
	"sync"
	"time"
)

// Kind tags a transcript record with its variant
type Kind int

const (
	// KindUserText is a prompt typed by the user
	KindUserText Kind = iota
	// KindAssistantText is a completed model reply
	KindAssistantText
	// KindImage is a user prompt carrying an attached image
	KindImage
)

// String returns the kind's display name
func (k Kind) String() string {
	switch k {
	case KindUserText:
		return "user"
	case KindAssistantText:
		return "assistant"
	case KindImage:
		return "image"
	default:
		return "unknown"
	}
}

// Record is one immutable transcript entry. Exactly one variant applies:
// user text, assistant text, or user text with an attached image.
type Record struct {
	Kind  Kind
	Text  string
	Image []byte // Only set for KindImage
	MIME  string // Only set for KindImage
	At    time.Time
}

// UserText builds a user prompt record
func UserText(text string) Record {
	return Record{Kind: KindUserText, Text: text, At: time.Now()}
}

// AssistantText builds an assistant reply record
func AssistantText(text string) Record {
	return Record{Kind: KindAssistantText, Text: text, At: time.Now()}
}

// UserImage builds a user record carrying an attached image
func UserImage(text string, image []byte, mime string) Record {
	return Record{Kind: KindImage, Text: text, Image: image, MIME: mime, At: time.Now()}
}

// Store is an append-only ordered sequence of records. Insertion order is
// display order. Records are never mutated, removed, or reordered.
type Store struct {
	mu      sync.Mutex
	records []Record
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{}
}

// Append adds a record at the tail
func (s *Store) Append(r Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, r)
}

// Len returns the number of records
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Snapshot returns a copy of the records in insertion order
func (s *Store) Snapshot() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// Last returns the most recent record and true, or a zero record and
// false when the store is empty
func (s *Store) Last() (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.records) == 0 {
		return Record{}, false
	}
	return s.records[len(s.records)-1], true
}

// LastAssistantText returns the text of the most recent assistant record,
// or "" when there is none
func (s *Store) LastAssistantText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.records) - 1; i >= 0; i-- {
		if s.records[i].Kind == KindAssistantText {
			return s.records[i].Text
		}
	}
	return ""
}
