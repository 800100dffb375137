// Package session owns the current identity: its creation at signup, email
// verification, profile completion, plan changes and logout. All mutations and
// all persistence of the identity go through UseCase.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fastygo/cardfolio/domain"
	"github.com/fastygo/cardfolio/repository"
	"github.com/fastygo/cardfolio/usecase"
	"github.com/fastygo/cardfolio/usecase/entitlement"
)

// DefaultVerificationCode is accepted by Verify when no code is configured.
const DefaultVerificationCode = "123456"

// Options tunes a UseCase. Zero values select production defaults.
type Options struct {
	VerificationCode string
	Delay            Delay
	Availability     usecase.URLAvailability
	Now              func() time.Time
	NewID            func() string
}

// OrganizationInput is the organization data collected by a business signup.
type OrganizationInput struct {
	CompanyName string `json:"companyName"`
}

// SignupInput is what the signup form submits. Password is accepted and
// discarded; no credential is stored.
type SignupInput struct {
	Name         string
	Email        string
	Password     string
	Tier         domain.PlanTier
	Organization *OrganizationInput
}

// UseCase is the session store. It is safe for concurrent use; operations are
// serialized on the single in-memory identity.
type UseCase struct {
	identities repository.IdentityRepository
	logger     *zap.Logger

	code         string
	delay        Delay
	availability usecase.URLAvailability
	now          func() time.Time
	newID        func() string

	mu      sync.Mutex
	current *domain.Identity
}

func New(identities repository.IdentityRepository, opts Options, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.VerificationCode == "" {
		opts.VerificationCode = DefaultVerificationCode
	}
	if opts.Delay == nil {
		opts.Delay = NoDelay
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Now().UTC() }
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	return &UseCase{
		identities:   identities,
		logger:       logger,
		code:         opts.VerificationCode,
		delay:        opts.Delay,
		availability: opts.Availability,
		now:          opts.Now,
		newID:        opts.NewID,
	}
}

// Init restores the persisted identity, if any. It is the "page load" step and
// should run once before serving.
func (uc *UseCase) Init(ctx context.Context) error {
	identity, err := uc.identities.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNoIdentity) {
			uc.setCurrent(nil)
			return nil
		}
		return domain.WrapError(domain.ErrCodeInternal, "load identity", err)
	}
	dirty := false
	if err := identity.Validate(); err != nil {
		uc.logger.Warn("persisted identity violates invariants, repairing", zap.String("identity_id", identity.ID), zap.Error(err))
		uc.repair(identity)
		if err := identity.Validate(); err != nil {
			uc.logger.Warn("discarding unrecoverable identity", zap.String("identity_id", identity.ID), zap.Error(err))
			if err := uc.identities.Clear(ctx); err != nil {
				return domain.WrapError(domain.ErrCodeInternal, "clear identity", err)
			}
			uc.setCurrent(nil)
			return nil
		}
		dirty = true
	}
	if !entitlement.Consistent(*identity) {
		uc.logger.Info("refreshing stale entitlement cache", zap.String("identity_id", identity.ID))
		entitlement.Apply(identity)
		dirty = true
	}
	if dirty {
		if err := uc.identities.Save(ctx, identity); err != nil {
			return domain.WrapError(domain.ErrCodeInternal, "persist identity", err)
		}
	}
	uc.setCurrent(identity)
	uc.logger.Info("session restored", zap.String("identity_id", identity.ID), zap.String("plan", identity.PlanTier.String()))
	return nil
}

// Create registers a new identity in the unverified/incomplete state,
// replacing any existing one.
func (uc *UseCase) Create(ctx context.Context, in SignupInput) (domain.Identity, error) {
	if err := uc.delay.Wait(ctx); err != nil {
		return domain.Identity{}, err
	}

	tier := in.Tier
	switch {
	case tier == "":
		tier = domain.PlanFree
	case !tier.Valid():
		uc.logger.Warn("unknown signup tier, falling back to free", zap.String("tier", string(tier)))
		tier = domain.PlanFree
	}

	now := uc.now()
	identity := domain.Identity{
		ID:                     uc.newID(),
		Name:                   strings.TrimSpace(in.Name),
		Email:                  strings.TrimSpace(in.Email),
		VerificationState:      domain.Unverified,
		ProfileCompletionState: domain.ProfileIncomplete,
		PlanTier:               tier,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	if tier == domain.PlanBusiness {
		identity.OrganizationRole = domain.RoleOwner
		identity.OrganizationID = uc.newID()
		if in.Organization != nil {
			identity.OrganizationName = strings.TrimSpace(in.Organization.CompanyName)
		}
	}
	entitlement.Apply(&identity)

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if err := uc.identities.Save(ctx, &identity); err != nil {
		return domain.Identity{}, domain.WrapError(domain.ErrCodeInternal, "persist identity", err)
	}
	stored := identity
	uc.current = &stored

	uc.logger.Info("identity created",
		zap.String("identity_id", identity.ID),
		zap.String("plan", tier.String()),
		zap.String("organization_id", identity.OrganizationID))
	return identity, nil
}

// Verify confirms the email step. A wrong code changes nothing; verifying an
// already verified identity is a successful no-op.
func (uc *UseCase) Verify(ctx context.Context, code string) error {
	return uc.mutate(ctx, "verify", func(identity *domain.Identity) (bool, error) {
		if strings.TrimSpace(code) != uc.code {
			return false, domain.ErrInvalidCode
		}
		if identity.IsVerified() {
			return false, nil
		}
		identity.VerificationState = domain.Verified
		return true, nil
	})
}

// CompleteProfile merges the onboarding fields and marks the profile complete.
func (uc *UseCase) CompleteProfile(ctx context.Context, fields domain.ProfilePatch) error {
	return uc.mutate(ctx, "complete_profile", func(identity *domain.Identity) (bool, error) {
		if !identity.IsVerified() {
			return false, domain.ErrNotVerified
		}
		changed := fields.Apply(identity)
		if !identity.IsComplete() {
			identity.ProfileCompletionState = domain.ProfileComplete
			changed = true
		}
		return changed, nil
	})
}

// Update merges profile fields. Plan, verification and completion are never
// touched here.
func (uc *UseCase) Update(ctx context.Context, fields domain.ProfilePatch) error {
	return uc.mutate(ctx, "update", func(identity *domain.Identity) (bool, error) {
		return fields.Apply(identity), nil
	})
}

// Upgrade moves the identity to tier. Entering business grants the owner role
// when no role is set; leaving business clears the role.
func (uc *UseCase) Upgrade(ctx context.Context, tier domain.PlanTier) error {
	return uc.mutate(ctx, "change_plan", func(identity *domain.Identity) (bool, error) {
		if !tier.Valid() {
			return false, domain.WrapError(domain.ErrCodeInvalidTier, "unknown plan tier", errors.New(string(tier)))
		}
		return uc.changeTier(identity, tier), nil
	})
}

// Downgrade returns the identity to the free tier.
func (uc *UseCase) Downgrade(ctx context.Context) error {
	return uc.Upgrade(ctx, domain.PlanFree)
}

// Logout clears storage and drops the in-memory identity. It succeeds when no
// identity exists, and an interrupted delay does not stop it.
func (uc *UseCase) Logout(ctx context.Context) error {
	if err := uc.delay.Wait(ctx); err != nil {
		uc.logger.Debug("logout delay interrupted", zap.Error(err))
		ctx = context.WithoutCancel(ctx)
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	var id string
	if uc.current != nil {
		id = uc.current.ID
	}
	uc.current = nil

	if err := uc.identities.Clear(ctx); err != nil {
		uc.logger.Error("failed to clear persisted identity", zap.String("identity_id", id), zap.Error(err))
		return domain.WrapError(domain.ErrCodeInternal, "clear identity", err)
	}
	uc.logger.Info("session ended", zap.String("identity_id", id))
	return nil
}

// Current returns a copy of the identity with its entitlement cache re-derived.
func (uc *UseCase) Current() (domain.Identity, bool) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.current == nil {
		return domain.Identity{}, false
	}
	identity := *uc.current
	entitlement.Apply(&identity)
	return identity, true
}

// Entitlements resolves the live flag set for the current identity, or the
// free set when there is none.
func (uc *UseCase) Entitlements() entitlement.Set {
	identity, ok := uc.Current()
	if !ok {
		return entitlement.Resolve(domain.PlanFree)
	}
	return entitlement.ForIdentity(identity)
}

// CheckURL asks the availability collaborator about a candidate unique URL.
func (uc *UseCase) CheckURL(ctx context.Context, slug string) (bool, error) {
	if uc.availability == nil {
		return false, domain.NewError(domain.ErrCodeInternal, "url availability checker not configured")
	}
	if err := uc.delay.Wait(ctx); err != nil {
		return false, err
	}
	return uc.availability.IsAvailable(ctx, slug)
}

// mutate applies fn to a copy of the current identity and commits it only
// after it has been persisted.
func (uc *UseCase) mutate(ctx context.Context, op string, fn func(*domain.Identity) (bool, error)) error {
	if err := uc.delay.Wait(ctx); err != nil {
		return err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.current == nil {
		return domain.ErrNoIdentity
	}

	next := *uc.current
	changed, err := fn(&next)
	if err != nil {
		uc.logger.Debug("session operation refused",
			zap.String("op", op),
			zap.String("identity_id", next.ID),
			zap.Error(err))
		return err
	}
	if !changed {
		return nil
	}

	next.Touch(uc.now())
	entitlement.Apply(&next)

	if err := uc.identities.Save(ctx, &next); err != nil {
		uc.logger.Error("failed to persist identity", zap.String("op", op), zap.String("identity_id", next.ID), zap.Error(err))
		return domain.WrapError(domain.ErrCodeInternal, "persist identity", err)
	}
	uc.current = &next

	uc.logger.Info("identity updated",
		zap.String("op", op),
		zap.String("identity_id", next.ID),
		zap.String("plan", next.PlanTier.String()),
		zap.String("verification", string(next.VerificationState)),
		zap.String("profile", string(next.ProfileCompletionState)))
	return nil
}

func (uc *UseCase) changeTier(identity *domain.Identity, tier domain.PlanTier) bool {
	before := *identity
	identity.PlanTier = tier
	if tier == domain.PlanBusiness {
		if identity.OrganizationRole == "" {
			identity.OrganizationRole = domain.RoleOwner
		}
		if identity.OrganizationID == "" {
			identity.OrganizationID = uc.newID()
		}
	} else {
		identity.OrganizationRole = ""
	}
	return *identity != before
}

// repair brings a persisted record back within the invariants: the role follows
// the tier and an unverified profile cannot be complete. A missing id is not
// repairable.
func (uc *UseCase) repair(identity *domain.Identity) {
	if identity.VerificationState != domain.Verified {
		identity.VerificationState = domain.Unverified
	}
	if identity.ProfileCompletionState != domain.ProfileComplete || !identity.IsVerified() {
		identity.ProfileCompletionState = domain.ProfileIncomplete
	}
	if !identity.PlanTier.Valid() {
		identity.PlanTier = domain.PlanFree
	}
	if identity.PlanTier != domain.PlanBusiness {
		identity.OrganizationRole = ""
		return
	}
	if !identity.OrganizationRole.Valid() {
		identity.OrganizationRole = domain.RoleOwner
	}
	if identity.OrganizationID == "" {
		identity.OrganizationID = uc.newID()
	}
}

func (uc *UseCase) setCurrent(identity *domain.Identity) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.current = identity
}
