package approval

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/WorkshopServices01/workshop-api/internal/models"
)

// Approval tokens are the only credential an unauthenticated customer holds.
// 32 random bytes, URL-safe, no padding: 256 bits of entropy in 43 chars.
const tokenBytes = 32

var (
	ErrTokenNotFound    = errors.New("approval token not found")
	ErrTokenExpired     = errors.New("approval token expired")
	ErrTokenAlreadyUsed = errors.New("approval token already used")
	ErrInvalidDecision  = errors.New("decision must be approve or reject")
)

func NewToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func ValidChannel(channel string) bool {
	return channel == models.ChannelEmail || channel == models.ChannelWhatsApp
}

func ValidDecision(decision string) bool {
	return decision == models.DecisionApprove || decision == models.DecisionReject
}

func IsExpired(ar *models.ApprovalRequest, now time.Time) bool {
	return now.After(ar.ExpiresAt)
}

// CanDecide checks the token grants a decision right now. Expiry is checked
// before usage so a stale link reads as expired, not as replayed.
func CanDecide(ar *models.ApprovalRequest, now time.Time) error {
	if IsExpired(ar, now) {
		return ErrTokenExpired
	}
	if ar.IsUsed {
		return ErrTokenAlreadyUsed
	}
	return nil
}

// CanViewMedia is a narrower capability than deciding: viewing the "before"
// photos stays allowed after the decision, but never after expiry.
func CanViewMedia(ar *models.ApprovalRequest, now time.Time) error {
	if IsExpired(ar, now) {
		return ErrTokenExpired
	}
	return nil
}
