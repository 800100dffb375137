package domain

import (
	"fmt"
	"strings"
)

// PlanTier is the subscription level of an identity.
type PlanTier string

const (
	PlanFree     PlanTier = "free"
	PlanPremium  PlanTier = "premium"
	PlanBusiness PlanTier = "business"
)

// Valid reports whether t is one of the known tiers.
func (t PlanTier) Valid() bool {
	switch t {
	case PlanFree, PlanPremium, PlanBusiness:
		return true
	}
	return false
}

func (t PlanTier) String() string {
	return string(t)
}

// ParsePlanTier accepts tier names case-insensitively.
func ParsePlanTier(raw string) (PlanTier, error) {
	tier := PlanTier(strings.ToLower(strings.TrimSpace(raw)))
	if !tier.Valid() {
		return "", WrapError(ErrCodeInvalidTier, "unknown plan tier", fmt.Errorf("%q", raw))
	}
	return tier, nil
}

// OrgRole is the identity's role inside its business organization.
type OrgRole string

const (
	RoleOwner  OrgRole = "owner"
	RoleAdmin  OrgRole = "admin"
	RoleMember OrgRole = "member"
)

func (r OrgRole) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember:
		return true
	}
	return false
}

// VerificationState tracks email verification.
type VerificationState string

const (
	Unverified VerificationState = "unverified"
	Verified   VerificationState = "verified"
)

// CompletionState tracks onboarding profile completion.
type CompletionState string

const (
	ProfileIncomplete CompletionState = "incomplete"
	ProfileComplete   CompletionState = "complete"
)
