// Package identity models the caller identity resolved from a session
// token and the authorization vocabulary built on top of it.
package identity

// Role is the closed provider role set.
type Role string

const (
	// RoleAdmin has full read/write access over all records.
	RoleAdmin Role = "admin"
	// RoleHotelier may write the single hotel it is linked to.
	RoleHotelier Role = "hotelier"
	// RoleGastronom may write the single restaurant it is linked to.
	RoleGastronom Role = "gastronom"
)

// IsValid checks if the role is one of the known values.
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleHotelier || r == RoleGastronom
}

// Identity is an authenticated provider. The linked ids are only set for
// the role that uses them; an admin carries neither. A nil linked id
// grants zero write access, never wildcard access.
type Identity struct {
	ID                 int64
	Username           string
	DisplayName        string
	Role               Role
	LinkedHotelID      *int64
	LinkedRestaurantID *int64
}

// NewAdmin creates an admin identity. Admins carry no linked entity ids.
func NewAdmin(id int64, username, displayName string) *Identity {
	return &Identity{ID: id, Username: username, DisplayName: displayName, Role: RoleAdmin}
}

// NewHotelier creates a hotelier identity linked to one hotel.
func NewHotelier(id int64, username, displayName string, hotelID int64) *Identity {
	return &Identity{
		ID: id, Username: username, DisplayName: displayName,
		Role: RoleHotelier, LinkedHotelID: &hotelID,
	}
}

// NewGastronom creates a gastronom identity linked to one restaurant.
func NewGastronom(id int64, username, displayName string, restaurantID int64) *Identity {
	return &Identity{
		ID: id, Username: username, DisplayName: displayName,
		Role: RoleGastronom, LinkedRestaurantID: &restaurantID,
	}
}

// ActionKind names a guarded mutation class.
type ActionKind string

const (
	// WriteHotel covers create/update of a specific hotel.
	WriteHotel ActionKind = "write-hotel"
	// WriteRestaurant covers create/update of a specific restaurant and
	// its daily specials.
	WriteRestaurant ActionKind = "write-restaurant"
	// WriteExperience covers create/update of experiences. No provider
	// role is linked to experiences, so only admins pass.
	WriteExperience ActionKind = "write-experience"
	// ManageProviders covers provider account administration.
	ManageProviders ActionKind = "manage-providers"
)

// Action is a requested mutation target. TargetID is zero for
// ManageProviders.
type Action struct {
	Kind     ActionKind
	TargetID int64
}

// DenyReason is the machine-readable authorization failure taxonomy.
type DenyReason string

const (
	ReasonUnauthenticated DenyReason = "UNAUTHENTICATED"
	ReasonNotOwner        DenyReason = "FORBIDDEN_NOT_OWNER"
	ReasonUnknownRole     DenyReason = "FORBIDDEN_UNKNOWN_ROLE"
)

// Decision is the outcome of an authorization check.
type Decision struct {
	allowed bool
	reason  DenyReason
}

// Allow creates a permitting decision.
func Allow() Decision { return Decision{allowed: true} }

// Deny creates a refusing decision with a reason.
func Deny(reason DenyReason) Decision { return Decision{reason: reason} }

// Allowed reports whether the action may proceed.
func (d Decision) Allowed() bool { return d.allowed }

// Reason returns the deny reason; empty when allowed.
func (d Decision) Reason() DenyReason { return d.reason }
