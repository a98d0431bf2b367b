package service

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/noah-isme/fileflow-portal-api/internal/models"
	appErrors "github.com/noah-isme/fileflow-portal-api/pkg/errors"
)

// IdentityService verifies access tokens issued by the identity service.
// Tokens are only checked, never issued.
type IdentityService struct {
	secret []byte
}

// NewIdentityService returns a verifier for HS256 tokens signed with secret.
func NewIdentityService(secret string) *IdentityService {
	return &IdentityService{secret: []byte(secret)}
}

// Enabled reports whether a signing secret is configured.
func (s *IdentityService) Enabled() bool {
	return s != nil && len(s.secret) > 0
}

// Verify validates token and returns its claims. The subject must be set.
func (s *IdentityService) Verify(token string) (*models.IdentityClaims, error) {
	if !s.Enabled() {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "token verification is not configured")
	}
	parsed, err := jwt.ParseWithClaims(token, &models.IdentityClaims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}
	claims, ok := parsed.Claims.(*models.IdentityClaims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}
	return claims, nil
}
