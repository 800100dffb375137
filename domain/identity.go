package domain

import (
	"fmt"
	"strings"
	"time"
)

// Identity is the single record representing the current user of the client.
// It is persisted as a flat JSON object.
type Identity struct {
	ID                     string            `json:"id"`
	Name                   string            `json:"name"`
	Email                  string            `json:"email"`
	VerificationState      VerificationState `json:"verificationState"`
	ProfileCompletionState CompletionState   `json:"profileCompletionState"`
	PlanTier               PlanTier          `json:"planTier"`
	OrganizationRole       OrgRole           `json:"organizationRole,omitempty"`
	OrganizationID         string            `json:"organizationId,omitempty"`
	OrganizationName       string            `json:"organizationName,omitempty"`

	JobTitle  string `json:"jobTitle,omitempty"`
	Company   string `json:"company,omitempty"`
	Website   string `json:"website,omitempty"`
	UniqueURL string `json:"uniqueUrl,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Bio       string `json:"bio,omitempty"`

	// Cached entitlement outputs. Always recomputable from PlanTier.
	AvatarEnabled    bool `json:"avatarEnabled"`
	AnalyticsEnabled bool `json:"analyticsEnabled"`
	NFCCardRequested bool `json:"nfcCardRequested"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (i *Identity) IsVerified() bool {
	return i != nil && i.VerificationState == Verified
}

func (i *Identity) IsComplete() bool {
	return i != nil && i.ProfileCompletionState == ProfileComplete
}

// Touch bumps UpdatedAt, filling CreatedAt on first use.
func (i *Identity) Touch(now time.Time) {
	if i == nil {
		return
	}
	i.UpdatedAt = now
	if i.CreatedAt.IsZero() {
		i.CreatedAt = now
	}
}

// Validate checks the structural invariants of the record. Cached entitlement
// flags are not checked here; they belong to the entitlement resolver.
func (i *Identity) Validate() error {
	if i == nil {
		return ErrNoIdentity
	}
	if strings.TrimSpace(i.ID) == "" {
		return WrapError(ErrCodeInvalid, "invalid identity", fmt.Errorf("missing id"))
	}
	switch i.VerificationState {
	case Unverified, Verified:
	default:
		return WrapError(ErrCodeInvalid, "invalid identity", fmt.Errorf("verification state %q", i.VerificationState))
	}
	switch i.ProfileCompletionState {
	case ProfileIncomplete, ProfileComplete:
	default:
		return WrapError(ErrCodeInvalid, "invalid identity", fmt.Errorf("completion state %q", i.ProfileCompletionState))
	}
	if i.IsComplete() && !i.IsVerified() {
		return WrapError(ErrCodeInvalid, "invalid identity", fmt.Errorf("complete profile on unverified identity"))
	}
	hasRole := i.OrganizationRole != ""
	if hasRole != (i.PlanTier == PlanBusiness) {
		return WrapError(ErrCodeInvalid, "invalid identity", fmt.Errorf("role %q with plan %q", i.OrganizationRole, i.PlanTier))
	}
	if hasRole && !i.OrganizationRole.Valid() {
		return WrapError(ErrCodeInvalid, "invalid identity", fmt.Errorf("unknown role %q", i.OrganizationRole))
	}
	return nil
}

// ProfilePatch carries the user-editable fields of an Identity. Nil fields are
// left untouched. Plan, verification, completion and role have dedicated
// operations and cannot be expressed here.
type ProfilePatch struct {
	Name             *string `json:"name,omitempty"`
	Email            *string `json:"email,omitempty"`
	JobTitle         *string `json:"jobTitle,omitempty"`
	Company          *string `json:"company,omitempty"`
	Website          *string `json:"website,omitempty"`
	UniqueURL        *string `json:"uniqueUrl,omitempty"`
	Phone            *string `json:"phone,omitempty"`
	Bio              *string `json:"bio,omitempty"`
	OrganizationName *string `json:"organizationName,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p ProfilePatch) IsEmpty() bool {
	for _, f := range p.fields() {
		if f.src != nil {
			return false
		}
	}
	return true
}

// Apply merges the patch into identity and reports whether any field changed.
func (p ProfilePatch) Apply(identity *Identity) bool {
	if identity == nil {
		return false
	}
	changed := false
	for _, f := range p.fields() {
		if f.src == nil {
			continue
		}
		dst := f.dst(identity)
		if *dst != *f.src {
			*dst = *f.src
			changed = true
		}
	}
	return changed
}

type patchField struct {
	src *string
	dst func(*Identity) *string
}

func (p ProfilePatch) fields() []patchField {
	return []patchField{
		{p.Name, func(i *Identity) *string { return &i.Name }},
		{p.Email, func(i *Identity) *string { return &i.Email }},
		{p.JobTitle, func(i *Identity) *string { return &i.JobTitle }},
		{p.Company, func(i *Identity) *string { return &i.Company }},
		{p.Website, func(i *Identity) *string { return &i.Website }},
		{p.UniqueURL, func(i *Identity) *string { return &i.UniqueURL }},
		{p.Phone, func(i *Identity) *string { return &i.Phone }},
		{p.Bio, func(i *Identity) *string { return &i.Bio }},
		{p.OrganizationName, func(i *Identity) *string { return &i.OrganizationName }},
	}
}
