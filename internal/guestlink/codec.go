// Package guestlink implements the encrypted guest link token: an AES-256-GCM
// sealed "{guestID}-{eventID}" pair, URL-safe base64 encoded. The token is the
// sole credential of an anonymous guest, so it must be opaque without the key
// and any tampering must surface as a decode failure rather than a different
// valid pair. GCM gives both properties.
package guestlink

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	"sportteammanager/internal/domain"
)

// Codec encrypts and decrypts guest link tokens with a fixed process-wide key.
type Codec struct {
	aead cipher.AEAD
}

// NewCodec creates a Codec from a hex-encoded 32-byte key.
func NewCodec(hexKey string) (*Codec, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("decoding hex key: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("key must be 32 bytes, got %d", len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("creating AES cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("creating GCM: %w", err)
	}

	return &Codec{aead: aead}, nil
}

// Ids are rendered fixed-width so every token has the same length regardless
// of id magnitude.
const idWidth = 19

// Encode seals (guestID, eventID) into an opaque URL-safe token with a fresh
// random nonce prepended.
func (c *Codec) Encode(guestID, eventID int64) (string, error) {
	if guestID < 0 || eventID < 0 {
		return "", fmt.Errorf("ids must be non-negative")
	}
	plaintext := fmt.Sprintf("%0*d-%0*d", idWidth, guestID, idWidth, eventID)

	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generating nonce: %w", err)
	}

	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Decode opens a token and returns the embedded (guestID, eventID). Any
// failure, base64, authentication, or plaintext shape, collapses to
// domain.ErrInvalidToken so callers cannot distinguish tampering from
// garbage.
func (c *Codec) Decode(token string) (int64, int64, error) {
	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return 0, 0, domain.ErrInvalidToken
	}

	nonceSize := c.aead.NonceSize()
	if len(data) < nonceSize {
		return 0, 0, domain.ErrInvalidToken
	}

	nonce, sealed := data[:nonceSize], data[nonceSize:]
	plaintext, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return 0, 0, domain.ErrInvalidToken
	}

	left, right, ok := strings.Cut(string(plaintext), "-")
	if !ok {
		return 0, 0, domain.ErrInvalidToken
	}
	guestID, err := strconv.ParseInt(left, 10, 64)
	if err != nil {
		return 0, 0, domain.ErrInvalidToken
	}
	eventID, err := strconv.ParseInt(right, 10, 64)
	if err != nil {
		return 0, 0, domain.ErrInvalidToken
	}
	return guestID, eventID, nil
}
