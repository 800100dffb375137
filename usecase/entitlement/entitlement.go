// Package entitlement derives feature flags from an identity's plan tier. It is
// the only place tier comparisons happen; screens and the session store ask it
// instead of switching on tiers themselves.
package entitlement

import "github.com/fastygo/cardfolio/domain"

// Feature names a capability a screen may gate on.
type Feature string

const (
	FeatureAvatar         Feature = "avatar"
	FeatureAnalytics      Feature = "analytics"
	FeatureNFCRequest     Feature = "nfc_request"
	FeatureTeamManagement Feature = "team_management"
	FeatureCRMIntegration Feature = "crm_integration"
)

// Features lists every known feature in display order.
var Features = []Feature{
	FeatureAvatar,
	FeatureAnalytics,
	FeatureNFCRequest,
	FeatureTeamManagement,
	FeatureCRMIntegration,
}

// Set is the resolved flag set for one tier.
type Set struct {
	AvatarAccess     bool `json:"avatarAccess"`
	AnalyticsAccess  bool `json:"analyticsAccess"`
	NFCRequestAccess bool `json:"nfcRequestAccess"`
	TeamManagement   bool `json:"teamManagement"`
	CRMIntegration   bool `json:"crmIntegration"`
}

// Resolve maps a tier to its flags. Unknown tiers get the free set.
func Resolve(tier domain.PlanTier) Set {
	set := Set{
		// every tier may request at least one physical card
		NFCRequestAccess: true,
	}
	switch tier {
	case domain.PlanPremium:
		set.AvatarAccess = true
		set.AnalyticsAccess = true
	case domain.PlanBusiness:
		set.AvatarAccess = true
		set.AnalyticsAccess = true
		set.TeamManagement = true
	}
	return set
}

// ForIdentity resolves from the identity's tier and narrows team management to
// owners and admins of the organization.
func ForIdentity(identity domain.Identity) Set {
	set := Resolve(identity.PlanTier)
	if set.TeamManagement {
		switch identity.OrganizationRole {
		case domain.RoleOwner, domain.RoleAdmin:
		default:
			set.TeamManagement = false
		}
	}
	return set
}

// Allows reports whether f is enabled in the set.
func (s Set) Allows(f Feature) bool {
	switch f {
	case FeatureAvatar:
		return s.AvatarAccess
	case FeatureAnalytics:
		return s.AnalyticsAccess
	case FeatureNFCRequest:
		return s.NFCRequestAccess
	case FeatureTeamManagement:
		return s.TeamManagement
	case FeatureCRMIntegration:
		return s.CRMIntegration
	}
	return false
}

// Apply overwrites the cached flags on identity with freshly resolved values.
func Apply(identity *domain.Identity) {
	if identity == nil {
		return
	}
	set := Resolve(identity.PlanTier)
	identity.AvatarEnabled = set.AvatarAccess
	identity.AnalyticsEnabled = set.AnalyticsAccess
	identity.NFCCardRequested = set.NFCRequestAccess
}

// Consistent reports whether the cached flags on identity agree with its tier.
func Consistent(identity domain.Identity) bool {
	set := Resolve(identity.PlanTier)
	return identity.AvatarEnabled == set.AvatarAccess &&
		identity.AnalyticsEnabled == set.AnalyticsAccess &&
		identity.NFCCardRequested == set.NFCRequestAccess
}
