package msgid

import (
	"strings"
	"testing"
)

func TestNewIDsCarryPrefixes(t *testing.T) {
	tests := []struct {
		name   string
		gen    func() string
		prefix string
	}{
		{"conversation", NewConversation, PrefixConversation},
		{"message", NewMessage, PrefixMessage},
		{"attachment", NewAttachment, PrefixAttachment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := tt.gen()
			if !strings.HasPrefix(id, tt.prefix) {
				t.Fatalf("id %q missing prefix %q", id, tt.prefix)
			}
			if !IsValid(id, tt.prefix) {
				t.Fatalf("IsValid(%q, %q) = false", id, tt.prefix)
			}
		})
	}
}

func TestNewIDsAreUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := NewMessage()
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id generated: %s", id)
		}
		seen[id] = struct{}{}
	}
}

func TestIsValidRejectsWrongPrefix(t *testing.T) {
	id := NewConversation()
	if IsValid(id, PrefixMessage) {
		t.Fatalf("conversation id validated with message prefix")
	}
	if IsValid("conv_not-a-ulid", PrefixConversation) {
		t.Fatalf("malformed ulid accepted")
	}
}
