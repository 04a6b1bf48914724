// Package msgid generates prefixed ULID identifiers for messaging records.
package msgid

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

const (
	PrefixConversation = "conv_"
	PrefixMessage      = "msg_"
	PrefixAttachment   = "att_"
)

var (
	entropyOnce sync.Once
	entropyMu   sync.Mutex
	entropy     *ulid.MonotonicEntropy
)

func newEntropy() *ulid.MonotonicEntropy {
	entropyOnce.Do(func() {
		source := rand.NewSource(time.Now().UnixNano())
		entropy = ulid.Monotonic(rand.New(source), 0)
	})
	return entropy
}

func newID(prefix string) string {
	entropyMu.Lock()
	id := ulid.MustNew(ulid.Timestamp(time.Now()), newEntropy())
	entropyMu.Unlock()
	return prefix + strings.ToLower(id.String())
}

// NewConversation returns a conv_* ULID string.
func NewConversation() string {
	return newID(PrefixConversation)
}

// NewMessage returns a msg_* ULID string.
func NewMessage() string {
	return newID(PrefixMessage)
}

// NewAttachment returns an att_* ULID string.
func NewAttachment() string {
	return newID(PrefixAttachment)
}

// IsValid reports whether the string is a ULID carrying the given prefix.
func IsValid(value, prefix string) bool {
	if !strings.HasPrefix(value, prefix) {
		return false
	}
	_, err := Parse(value, prefix)
	return err == nil
}

// Parse strips the prefix and returns the ULID.
func Parse(value, prefix string) (ulid.ULID, error) {
	value = strings.TrimSpace(value)
	value = strings.TrimPrefix(value, prefix)
	return ulid.Parse(value)
}
