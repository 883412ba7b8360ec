package fact

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// Status is the lifecycle state of a fact.
type Status string

const (
	StatusPending   Status = "pending"
	StatusSaved     Status = "saved"
	StatusDiscarded Status = "discarded"
)

// Fact is a single saved text snippet.
// The store only ever holds facts with StatusSaved; the other states exist
// for wire-format compatibility with clients that track proposals.
type Fact struct {
	// ID is an opaque unique identifier, stable for the fact's lifetime
	ID string `json:"id"`

	// Text is the trimmed, non-empty snippet content
	Text string `json:"text"`

	// Status is the lifecycle state
	Status Status `json:"status"`

	// CreatedAt is set once at creation and never mutated
	CreatedAt time.Time `json:"createdAt"`
}

// New creates a saved fact from an id and already-normalized text.
func New(id, text string) Fact {
	return Fact{
		ID:        id,
		Text:      text,
		Status:    StatusSaved,
		CreatedAt: time.Now().UTC(),
	}
}

// Normalize trims surrounding whitespace from fact text.
// Trimming and non-emptiness are the only validation facts get.
func Normalize(text string) string {
	return strings.TrimSpace(text)
}

// CountChars returns the rune count of text (not bytes).
func CountChars(text string) int {
	return len([]rune(text))
}

// NewID generates a new ULID for facts created without a caller-supplied id.
func NewID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
