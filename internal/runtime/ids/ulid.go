// Package ids generates identifiers for owned native resources.
package ids

import (
	"crypto/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// CreateULID returns a time-sortable ULID encoded as a 26-character string.
func CreateULID() string {
	return newULID().String()
}

// ResourceID returns "<kind>-<ulid>", for example "topic-01J...". The kind
// prefix is lower-cased so log fields sort and grep consistently.
func ResourceID(kind string) string {
	id := CreateULID()
	if kind == "" {
		return id
	}
	return strings.ToLower(kind) + "-" + id
}

// CreatedAt extracts the creation time embedded in an ID produced by
// CreateULID or ResourceID.
func CreatedAt(id string) (time.Time, error) {
	if i := strings.LastIndexByte(id, '-'); i >= 0 {
		id = id[i+1:]
	}
	parsed, err := ulid.Parse(id)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(parsed.Time()), nil
}

func newULID() ulid.ULID {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy)
}
