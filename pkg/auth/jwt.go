package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrWrongGame    = errors.New("token was issued for another game")
)

// WatchClaims authorise one spectator connection to one game.
type WatchClaims struct {
	GameID string `json:"game_id"`
	jwt.RegisteredClaims
}

// Signer issues and checks watch tokens with an HMAC secret.
type Signer struct {
	secret []byte
	ttl    time.Duration
}

func NewSigner(secret string, ttl time.Duration) *Signer {
	return &Signer{secret: []byte(secret), ttl: ttl}
}

// GenerateWatchToken creates a token that lets its holder follow gameID
func (s *Signer) GenerateWatchToken(gameID string) (string, error) {
	now := time.Now()
	claims := &WatchClaims{
		GameID: gameID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   gameID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateWatchToken validates a watch token and returns its claims
func (s *Signer) ValidateWatchToken(tokenString string) (*WatchClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &WatchClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return s.secret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*WatchClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

// Authorize checks the token and that it was issued for gameID.
func (s *Signer) Authorize(tokenString, gameID string) (*WatchClaims, error) {
	claims, err := s.ValidateWatchToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.GameID != gameID {
		return nil, ErrWrongGame
	}
	return claims, nil
}
