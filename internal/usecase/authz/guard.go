// Package authz implements the tenant-scoped authorization guard: a pure
// decision function with no side effects. The caller translates Deny into
// the externally visible error and performs the write only after Allow.
package authz

import (
	"github.com/Smartstaychur/smartstaychur-website/internal/domain"
	"github.com/Smartstaychur/smartstaychur-website/internal/domain/identity"
	"github.com/Smartstaychur/smartstaychur-website/internal/metrics"
)

// Authorize decides whether the identity may perform the action.
//
// Rules, in order: no identity denies UNAUTHENTICATED; admin is always
// allowed; a role outside the known set denies FORBIDDEN_UNKNOWN_ROLE;
// otherwise the caller must hold the matching role and be linked to
// exactly the target record. A nil linked id grants nothing.
func Authorize(id *identity.Identity, action identity.Action) identity.Decision {
	if id == nil {
		return deny(identity.ReasonUnauthenticated)
	}
	if id.Role == identity.RoleAdmin {
		return identity.Allow()
	}
	if !id.Role.IsValid() {
		return deny(identity.ReasonUnknownRole)
	}

	switch action.Kind {
	case identity.WriteHotel:
		if id.Role == identity.RoleHotelier &&
			id.LinkedHotelID != nil && *id.LinkedHotelID == action.TargetID {
			return identity.Allow()
		}
	case identity.WriteRestaurant:
		if id.Role == identity.RoleGastronom &&
			id.LinkedRestaurantID != nil && *id.LinkedRestaurantID == action.TargetID {
			return identity.Allow()
		}
	case identity.WriteExperience, identity.ManageProviders:
		// Admin-only; admins were allowed above.
	}
	return deny(identity.ReasonNotOwner)
}

// DecisionError maps a deny decision to its domain error. Returns nil for
// an allowing decision.
func DecisionError(d identity.Decision) error {
	if d.Allowed() {
		return nil
	}
	switch d.Reason() {
	case identity.ReasonUnauthenticated:
		return domain.ErrUnauthenticated
	case identity.ReasonUnknownRole:
		return domain.ErrUnknownRole
	default:
		return domain.ErrNotOwner
	}
}

func deny(reason identity.DenyReason) identity.Decision {
	metrics.AuthDenialsTotal.WithLabelValues(string(reason)).Inc()
	return identity.Deny(reason)
}
