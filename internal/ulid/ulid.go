// Package ulid provides prefixed, lexicographically sortable identifiers on top
// of github.com/oklog/ulid/v2.
//
// Run identifiers look like "run-01HZX3J5Q9K3T4B0V7E1N2M6PQ": sorting them as
// strings sorts runs by creation time.
package ulid

import (
	"crypto/rand"
	"database/sql/driver"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

const (
	// PrefixRun marks check run identifiers
	PrefixRun = "run"

	// PrefixSeparator is used to separate the prefix from the ULID
	PrefixSeparator = "-"
)

var (
	entropy     = ulid.Monotonic(rand.Reader, 0)
	entropyLock sync.Mutex
)

// ULID wraps ulid.ULID with an optional prefix
type ULID struct {
	ulid.ULID
	prefix string
}

// GenerateWithPrefix creates a new ULID with the current timestamp and a prefix
func GenerateWithPrefix(prefix string) ULID {
	id := NewWithTime(time.Now())
	id.prefix = prefix
	return id
}

// NewWithTime creates a new ULID with a specific timestamp
func NewWithTime(t time.Time) ULID {
	entropyLock.Lock()
	id := ulid.MustNew(ulid.Timestamp(t), entropy)
	entropyLock.Unlock()
	return ULID{id, ""}
}

// Parse parses a plain or prefixed ULID string
func Parse(id string) (ULID, error) {
	prefix, rawID, found := strings.Cut(id, PrefixSeparator)
	if !found {
		rawID, prefix = id, ""
	}

	parsed, err := ulid.Parse(rawID)
	if err != nil {
		return ULID{}, err
	}

	return ULID{parsed, prefix}, nil
}

// Validate reports whether id is a valid plain or prefixed ULID
func Validate(id string) bool {
	_, err := Parse(id)
	return err == nil
}

// IsZero returns true if the ULID is the zero value
func (u ULID) IsZero() bool {
	return u.ULID == ulid.ULID{}
}

// Prefix returns the prefix of the ULID
func (u ULID) Prefix() string {
	return u.prefix
}

// String returns "prefix-ulid", or the bare ULID without a prefix
func (u ULID) String() string {
	if u.prefix != "" {
		return u.prefix + PrefixSeparator + u.ULID.String()
	}
	return u.ULID.String()
}

// Value implements the driver.Valuer interface
func (u ULID) Value() (driver.Value, error) {
	return u.String(), nil
}

// Scan implements the sql.Scanner interface
func (u *ULID) Scan(src interface{}) error {
	switch src := src.(type) {
	case nil:
		return nil
	case string:
		parsed, err := Parse(src)
		if err != nil {
			return err
		}
		*u = parsed
		return nil
	case []byte:
		parsed, err := Parse(string(src))
		if err != nil {
			return err
		}
		*u = parsed
		return nil
	}
	return fmt.Errorf("cannot scan %T into ULID", src)
}

// RunID generates a new ULID with the run prefix
func RunID() string {
	return GenerateWithPrefix(PrefixRun).String()
}
