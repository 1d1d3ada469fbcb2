package approval

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WorkshopServices01/workshop-api/internal/models"
)

func TestNewTokenIsURLSafeAndUnique(t *testing.T) {
	seen := map[string]bool{}

	for i := 0; i < 100; i++ {
		tok, err := NewToken()
		require.NoError(t, err)

		// 32 bytes -> 43 chars of raw URL-safe base64.
		assert.Len(t, tok, 43)
		assert.False(t, strings.ContainsAny(tok, "+/="), "token %q is not URL-safe", tok)
		assert.False(t, seen[tok], "duplicate token")
		seen[tok] = true
	}
}

func TestCanDecide(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("fresh token", func(t *testing.T) {
		ar := &models.ApprovalRequest{ExpiresAt: now.Add(24 * time.Hour)}
		assert.NoError(t, CanDecide(ar, now))
	})

	t.Run("expired", func(t *testing.T) {
		ar := &models.ApprovalRequest{ExpiresAt: now.Add(-time.Minute)}
		assert.ErrorIs(t, CanDecide(ar, now), ErrTokenExpired)
	})

	t.Run("expired and used reads as expired", func(t *testing.T) {
		ar := &models.ApprovalRequest{ExpiresAt: now.Add(-time.Minute), IsUsed: true}
		assert.ErrorIs(t, CanDecide(ar, now), ErrTokenExpired)
	})

	t.Run("used", func(t *testing.T) {
		ar := &models.ApprovalRequest{ExpiresAt: now.Add(time.Hour), IsUsed: true}
		assert.ErrorIs(t, CanDecide(ar, now), ErrTokenAlreadyUsed)
	})
}

func TestCanViewMediaOutlivesDecision(t *testing.T) {
	now := time.Now().UTC()

	used := &models.ApprovalRequest{ExpiresAt: now.Add(time.Hour), IsUsed: true}
	assert.NoError(t, CanViewMedia(used, now))

	expired := &models.ApprovalRequest{ExpiresAt: now.Add(-time.Second)}
	assert.ErrorIs(t, CanViewMedia(expired, now), ErrTokenExpired)
}

func TestValidDecisionAndChannel(t *testing.T) {
	assert.True(t, ValidDecision(models.DecisionApprove))
	assert.True(t, ValidDecision(models.DecisionReject))
	assert.False(t, ValidDecision(""))
	assert.False(t, ValidDecision("Approve"))

	assert.True(t, ValidChannel(models.ChannelEmail))
	assert.True(t, ValidChannel(models.ChannelWhatsApp))
	assert.False(t, ValidChannel("sms"))
}
