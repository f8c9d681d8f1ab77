package domain

import (
	"fmt"
	"strings"
)

// Metadata attribute names attached to every uploaded document.
const (
	AttrManufacturer = "Manufacturer"
	AttrProduct      = "Product"
)

// Mode selects how a session resolves its corpus.
type Mode string

const (
	// ModeRecreate deletes every corpus with the configured name and creates a fresh one.
	ModeRecreate Mode = "recreate"
	// ModeLookup finds the single existing corpus with the configured name.
	ModeLookup Mode = "lookup"
)

// IsValid checks if the mode is supported.
func (m Mode) IsValid() bool {
	return m == ModeRecreate || m == ModeLookup
}

// ParseMode converts user input into a Mode.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if !m.IsValid() {
		return "", fmt.Errorf("%w: %q (want recreate or lookup)", ErrInvalidMode, s)
	}
	return m, nil
}

// Session is the resolved corpus a caller syncs into and queries against.
// It is produced once by corpus initialization and passed explicitly afterwards.
type Session struct {
	CorpusKey string
	Mode      Mode
}

// Valid reports whether the session carries a resolved corpus key.
func (s Session) Valid() bool { return s.CorpusKey != "" }
