package moderation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hola", Truncate("hola", 120))
	assert.Equal(t, strings.Repeat("a", 120), Truncate(strings.Repeat("a", 500), 120))
	// rune-aware: multi-byte characters are never split
	assert.Equal(t, "ññ", Truncate("ñññ", 2))
	// non-positive limit disables truncation
	assert.Equal(t, "hola", Truncate("hola", 0))
}

func TestNewEvent_SnapshotsVerdict(t *testing.T) {
	v := Block(CategoryViolence, SeverityHigh, "threat detected")
	event := NewEvent("user-1", "target-1", SurfaceChat, strings.Repeat("x", 500), v, 120)

	assert.Equal(t, "user-1", event.UserID)
	assert.Equal(t, "target-1", event.TargetUserID)
	assert.False(t, event.Allowed)
	assert.Equal(t, []string{CategoryViolence}, event.Categories)
	assert.Len(t, event.Snippet, 120)
	assert.False(t, event.CreatedAt.IsZero())
}
