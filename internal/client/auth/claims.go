package auth

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// PartialIdentity is what an access token's payload says about its holder.
// Obtained WITHOUT signature verification: display fallback only,
// never an authorization input.
type PartialIdentity struct {
	Username  string
	Email     string
	UserID    int64
	HasUserID bool
}

// DecodeUnverifiedClaims reads the payload of a JWT without verifying it
func DecodeUnverifiedClaims(token string) (*PartialIdentity, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("failed to decode token claims: %w", err)
	}

	identity := &PartialIdentity{}
	identity.Username, _ = claims["username"].(string)
	identity.Email, _ = claims["email"].(string)

	switch v := claims["user_id"].(type) {
	case float64:
		identity.UserID, identity.HasUserID = int64(v), true
	case json.Number:
		if id, err := v.Int64(); err == nil {
			identity.UserID, identity.HasUserID = id, true
		}
	case string:
		// simplejwt с USER_ID_CLAIM для не-числовых ключей
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			identity.UserID, identity.HasUserID = id, true
		}
	}

	return identity, nil
}
