package auth

import "github.com/golang-jwt/jwt/v5"

// Role distinguishes storefront shoppers from dashboard admins.
type Role string

const (
	RoleShopper Role = "shopper"
	RoleAdmin   Role = "admin"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleShopper, RoleAdmin:
		return true
	}
	return false
}

// AccessTokenPayload is the input for minting an access token.
type AccessTokenPayload struct {
	Email string
	Role  Role
	JTI   string
}

// AccessTokenClaims is the JWT claim set carried by access tokens.
type AccessTokenClaims struct {
	Email string `json:"email"`
	Role  Role   `json:"role"`
	jwt.RegisteredClaims
}
