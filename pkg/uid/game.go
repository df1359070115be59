package uid

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

func randomHex(n int) (string, error) {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// GenerateGameID returns a random 128-bit game ID in hex.
func GenerateGameID() string {
	id, err := randomHex(16)
	if err != nil {
		return fmt.Sprintf("%032x", time.Now().UnixNano())
	}
	return id
}

// GenerateSpectatorID identifies one spectator connection.
func GenerateSpectatorID() (string, error) {
	id, err := randomHex(8)
	if err != nil {
		return "", fmt.Errorf("failed to generate spectator ID: %w", err)
	}
	return id, nil
}
