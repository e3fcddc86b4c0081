package services

import (
	"context"

	"firebase.google.com/go/v4/auth"
)

// FirebaseClaims mirrors the admin role into Firebase custom claims so
// clients can gate admin screens without a round trip.
type FirebaseClaims struct {
	client *auth.Client
}

func NewFirebaseClaims(client *auth.Client) *FirebaseClaims {
	return &FirebaseClaims{client: client}
}

// SetAdminClaim merges the admin flag into the user's existing claims.
func (c *FirebaseClaims) SetAdminClaim(ctx context.Context, uid string, admin bool) error {
	u, err := c.client.GetUser(ctx, uid)
	if err != nil {
		return err
	}
	claims := make(map[string]interface{}, len(u.CustomClaims)+1)
	for k, v := range u.CustomClaims {
		claims[k] = v
	}
	claims["admin"] = admin
	return c.client.SetCustomUserClaims(ctx, uid, claims)
}
