package entitlement_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fastygo/cardfolio/domain"
	"github.com/fastygo/cardfolio/usecase/entitlement"
)

func TestResolveByTier(t *testing.T) {
	for _, tier := range []domain.PlanTier{domain.PlanFree, domain.PlanPremium, domain.PlanBusiness} {
		t.Run(tier.String(), func(t *testing.T) {
			set := entitlement.Resolve(tier)
			require.Equal(t, tier != domain.PlanFree, set.AvatarAccess)
			require.Equal(t, tier != domain.PlanFree, set.AnalyticsAccess)
			require.Equal(t, tier == domain.PlanBusiness, set.TeamManagement)
			require.True(t, set.NFCRequestAccess)
			require.False(t, set.CRMIntegration)
		})
	}
}

func TestResolveUnknownTierDegradesToFree(t *testing.T) {
	require.Equal(t, entitlement.Resolve(domain.PlanFree), entitlement.Resolve("enterprise"))
	require.Equal(t, entitlement.Resolve(domain.PlanFree), entitlement.Resolve(""))
}

func TestForIdentityNarrowsTeamManagementByRole(t *testing.T) {
	identity := domain.Identity{PlanTier: domain.PlanBusiness}

	for role, want := range map[domain.OrgRole]bool{
		domain.RoleOwner:  true,
		domain.RoleAdmin:  true,
		domain.RoleMember: false,
		"":                false,
	} {
		identity.OrganizationRole = role
		set := entitlement.ForIdentity(identity)
		require.Equal(t, want, set.TeamManagement, "role %q", role)
		require.True(t, set.AvatarAccess)
	}
}

func TestSetAllows(t *testing.T) {
	set := entitlement.Resolve(domain.PlanPremium)
	require.True(t, set.Allows(entitlement.FeatureAvatar))
	require.True(t, set.Allows(entitlement.FeatureAnalytics))
	require.True(t, set.Allows(entitlement.FeatureNFCRequest))
	require.False(t, set.Allows(entitlement.FeatureTeamManagement))
	require.False(t, set.Allows(entitlement.FeatureCRMIntegration))
	require.False(t, set.Allows("teleport"))
	require.Len(t, entitlement.Features, 5)
}

func TestApplyAndConsistent(t *testing.T) {
	identity := domain.Identity{PlanTier: domain.PlanPremium}
	require.False(t, entitlement.Consistent(identity))

	entitlement.Apply(&identity)
	require.True(t, identity.AvatarEnabled)
	require.True(t, identity.AnalyticsEnabled)
	require.True(t, identity.NFCCardRequested)
	require.True(t, entitlement.Consistent(identity))

	identity.PlanTier = domain.PlanFree
	require.False(t, entitlement.Consistent(identity))
	entitlement.Apply(&identity)
	require.False(t, identity.AvatarEnabled)
	require.False(t, identity.AnalyticsEnabled)

	entitlement.Apply(nil)
}
