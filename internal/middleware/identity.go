package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/fileflow-portal-api/internal/models"
	appErrors "github.com/noah-isme/fileflow-portal-api/pkg/errors"
	"github.com/noah-isme/fileflow-portal-api/pkg/logger"
	"github.com/noah-isme/fileflow-portal-api/pkg/response"
)

// ContextUserIDKey stores the submitting user's id on the gin context.
const ContextUserIDKey = logger.UserIDKey

type tokenVerifier interface {
	Enabled() bool
	Verify(token string) (*models.IdentityClaims, error)
}

// Identity resolves the submitting user. The x-user-id header is used as is;
// when a verifier is enabled a bearer token's subject takes precedence. With
// requireToken set, requests without a valid token are rejected.
func Identity(verifier tokenVerifier, requireToken bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader(logger.UserHeader))

		if verifier != nil && verifier.Enabled() {
			token, present := bearerToken(c.GetHeader("Authorization"))
			switch {
			case present:
				claims, err := verifier.Verify(token)
				if err != nil {
					response.Error(c, err)
					c.Abort()
					return
				}
				userID = claims.Subject
			case requireToken:
				response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "missing bearer token"))
				c.Abort()
				return
			}
		}

		if userID != "" {
			c.Set(ContextUserIDKey, userID)
		}
		c.Next()
	}
}

// UserID returns the resolved submitting user, or "".
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserIDKey)
}

func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}
