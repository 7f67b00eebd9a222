// Package provider holds tenant account records for the admin surface.
package provider

import (
	"time"

	"github.com/Smartstaychur/smartstaychur-website/internal/domain/identity"
)

// Account is a provider login. PasswordHash is a bcrypt hash and never
// leaves the auth path.
type Account struct {
	ID                 int64         `json:"id"`
	PublicID           string        `json:"publicId"`
	Username           string        `json:"username"`
	PasswordHash       string        `json:"passwordHash"`
	DisplayName        string        `json:"displayName,omitempty"`
	Email              string        `json:"email,omitempty"`
	Role               identity.Role `json:"role"`
	LinkedHotelID      *int64        `json:"linkedHotelId,omitempty"`
	LinkedRestaurantID *int64        `json:"linkedRestaurantId,omitempty"`
	IsActive           bool          `json:"isActive"`
	CreatedAt          time.Time     `json:"createdAt"`
	LastSignedIn       time.Time     `json:"lastSignedIn,omitempty"`
}

// Identity builds the caller identity for an account. Linked ids are only
// carried over for the role that uses them.
func (a *Account) Identity() *identity.Identity {
	id := &identity.Identity{
		ID:          a.ID,
		Username:    a.Username,
		DisplayName: a.DisplayName,
		Role:        a.Role,
	}
	switch a.Role {
	case identity.RoleHotelier:
		id.LinkedHotelID = a.LinkedHotelID
	case identity.RoleGastronom:
		id.LinkedRestaurantID = a.LinkedRestaurantID
	}
	return id
}
