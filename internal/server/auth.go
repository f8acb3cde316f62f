package server

import (
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"

	apperrors "github.com/erikjuhani/droll/internal/errors"
	"github.com/golang-jwt/jwt/v5"
)

// tokenVerifier validates HS256 bearer tokens minted with the shared
// HMAC key (see cmd/hmac-key).
type tokenVerifier struct {
	key      []byte
	issuer   string
	audience string
}

func newTokenVerifier(hexKey, issuer, audience string) (*tokenVerifier, error) {
	key, err := hex.DecodeString(strings.TrimSpace(hexKey))
	if err != nil {
		return nil, fmt.Errorf("decode API HMAC key: %w", err)
	}
	if len(key) == 0 {
		return nil, fmt.Errorf("API HMAC key is empty")
	}
	if strings.TrimSpace(issuer) == "" {
		return nil, fmt.Errorf("API token issuer is required")
	}
	if strings.TrimSpace(audience) == "" {
		return nil, fmt.Errorf("API token audience is required")
	}
	return &tokenVerifier{key: key, issuer: issuer, audience: audience}, nil
}

func (v *tokenVerifier) verify(tokenString string) error {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (any, error) {
		return v.key, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return apperrors.Wrap(apperrors.CodeAuthTokenExpired, "API token is expired", err)
		}
		return apperrors.Wrap(apperrors.CodeAuthTokenInvalid, "API token is invalid", err)
	}
	return nil
}

// requireAuth enforces bearer-token auth when a verifier is configured.
// Without a configured HMAC key the handler passes through untouched.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	if s.verifier == nil {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			writeError(w, apperrors.New(apperrors.CodeAuthTokenMissing, "API token is required"))
			return
		}
		if err := s.verifier.verify(strings.TrimSpace(token)); err != nil {
			writeError(w, err)
			return
		}
		next(w, r)
	}
}
