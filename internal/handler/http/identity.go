package http

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/vams-io/vams-backend-go/internal/domain/user"
)

// identity is the caller as described by the access token claims.
type identity struct {
	UserID   string
	VendorID string
	SiteID   string
	Role     user.Role
}

func identityFromRequest(r *http.Request) identity {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return identity{}
	}

	var id identity
	if v, ok := claims["user_id"].(string); ok {
		id.UserID = v
	}
	if v, ok := claims["vendor_id"].(string); ok {
		id.VendorID = v
	}
	if v, ok := claims["site_id"].(string); ok {
		id.SiteID = v
	}
	if v, ok := claims["role"].(string); ok {
		id.Role = user.Role(v)
	}
	return id
}
