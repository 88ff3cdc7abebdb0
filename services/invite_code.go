package services

import (
	"context"
	"crypto/rand"
	"fmt"

	"github.com/funkypants5/wedding-backend/models"
)

const (
	inviteCodeLength = 8
	inviteCodeChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// maxCodeAttempts caps the redraw loop. At 36^8 codes a collision streak
	// this long will not happen in practice; the cap keeps the loop from
	// being a liveness hazard if it somehow does.
	maxCodeAttempts = 10
)

// InviteCodeGenerator issues 8-character [A-Z0-9] codes, unique across all
// events ever created. Called exactly once per event, before first
// persistence; an assigned code is never regenerated.
type InviteCodeGenerator struct {
	exists func(ctx context.Context, code string) (bool, error)
}

// NewInviteCodeGenerator takes the uniqueness probe, normally
// EventStore.InviteCodeExists.
func NewInviteCodeGenerator(exists func(ctx context.Context, code string) (bool, error)) *InviteCodeGenerator {
	return &InviteCodeGenerator{exists: exists}
}

// Generate draws random candidates until one is unused, up to
// maxCodeAttempts draws, then fails with models.ErrCodeSpaceExhausted
// (wrapped).
func (g *InviteCodeGenerator) Generate(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := randomInviteCode()
		if err != nil {
			return "", err
		}
		taken, err := g.exists(ctx, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", fmt.Errorf("%d attempts: %w", maxCodeAttempts, models.ErrCodeSpaceExhausted)
}

func randomInviteCode() (string, error) {
	// Bytes at or above the largest multiple of the alphabet size are
	// rejected and redrawn, so each character is uniform over the alphabet.
	maxByte := byte(256 - 256%len(inviteCodeChars))
	out := make([]byte, 0, inviteCodeLength)
	buf := make([]byte, inviteCodeLength)
	for len(out) < inviteCodeLength {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("read random bytes: %w", err)
		}
		for _, b := range buf {
			if b >= maxByte {
				continue
			}
			out = append(out, inviteCodeChars[int(b)%len(inviteCodeChars)])
			if len(out) == inviteCodeLength {
				break
			}
		}
	}
	return string(out), nil
}
