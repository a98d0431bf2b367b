package models

import "github.com/golang-jwt/jwt/v5"

// IdentityClaims are the claims of an access token issued by the hosted
// identity service. Subject is the user id.
type IdentityClaims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}
