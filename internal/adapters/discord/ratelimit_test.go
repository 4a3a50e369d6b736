package discord

import (
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserLimiter(t *testing.T) {
	l := newUserLimiter(30 * time.Millisecond)

	assert.True(t, l.Allow("u1"))
	assert.False(t, l.Allow("u1"))
	assert.True(t, l.Allow("u2"))

	require.Eventually(t, func() bool { return l.Allow("u1") }, time.Second, 5*time.Millisecond)
}

func TestUserLimiterSweep(t *testing.T) {
	l := newUserLimiter(time.Millisecond)
	old := time.Now().Add(-time.Minute)
	for i := 0; i < 10; i++ {
		l.Allow(string(rune('a' + i)))
	}
	for _, b := range l.users {
		b.seen = old
	}

	l.sweep(time.Now())
	assert.Empty(t, l.users)
}

func TestHasVoicePerms(t *testing.T) {
	assert.True(t, hasVoicePerms(voicePerms))
	assert.False(t, hasVoicePerms(voicePerms&^int64(discordgo.PermissionVoiceSpeak)))
	assert.False(t, hasVoicePerms(0))
}
