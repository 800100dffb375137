package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/cardfolio/api/transport"
	"github.com/fastygo/cardfolio/domain"
	"github.com/fastygo/cardfolio/pkg/httpcontext"
	"github.com/fastygo/cardfolio/usecase/entitlement"
	sessionUC "github.com/fastygo/cardfolio/usecase/session"
)

type SessionHandler struct {
	baseHandler
	uc *sessionUC.UseCase
}

func NewSessionHandler(uc *sessionUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Sign up a new identity
// @Tags session
// @Router /api/v1/session/signup [post]
func (h *SessionHandler) Signup(ctx *fasthttp.RequestCtx) {
	var req transport.SignupRequest
	if !h.decode(ctx, &req) {
		return
	}

	input := sessionUC.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Tier:     domain.PlanTier(strings.ToLower(strings.TrimSpace(req.Tier))),
	}
	if req.Organization != nil {
		input.Organization = &sessionUC.OrganizationInput{CompanyName: req.Organization.CompanyName}
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if _, err := h.uc.Create(stdCtx, input); err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondView(stdCtx, ctx, http.StatusCreated)
}

// @Summary Submit the email verification code
// @Tags session
// @Router /api/v1/session/verify [post]
func (h *SessionHandler) Verify(ctx *fasthttp.RequestCtx) {
	var req transport.VerifyRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Verify(stdCtx, req.Code); err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondView(stdCtx, ctx, http.StatusOK)
}

// @Summary Complete the onboarding profile
// @Tags session
// @Router /api/v1/session/profile [post]
func (h *SessionHandler) CompleteProfile(ctx *fasthttp.RequestCtx) {
	var patch domain.ProfilePatch
	if !h.decode(ctx, &patch) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.CompleteProfile(stdCtx, patch); err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondView(stdCtx, ctx, http.StatusOK)
}

// @Summary Update profile fields
// @Tags session
// @Router /api/v1/session/profile [patch]
func (h *SessionHandler) UpdateProfile(ctx *fasthttp.RequestCtx) {
	var patch domain.ProfilePatch
	if !h.decode(ctx, &patch) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Update(stdCtx, patch); err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondView(stdCtx, ctx, http.StatusOK)
}

// @Summary Change plan tier
// @Tags session
// @Router /api/v1/session/plan [post]
func (h *SessionHandler) ChangePlan(ctx *fasthttp.RequestCtx) {
	var req transport.PlanRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tier, err := domain.ParsePlanTier(req.Tier)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	if err := h.uc.Upgrade(stdCtx, tier); err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondView(stdCtx, ctx, http.StatusOK)
}

// @Summary Downgrade to the free plan
// @Tags session
// @Router /api/v1/session/plan [delete]
func (h *SessionHandler) Downgrade(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Downgrade(stdCtx); err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondView(stdCtx, ctx, http.StatusOK)
}

// @Summary End the session
// @Tags session
// @Router /api/v1/session [delete]
func (h *SessionHandler) Logout(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Logout(stdCtx); err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	ctx.SetStatusCode(http.StatusNoContent)
}

// @Summary Current identity
// @Tags session
// @Router /api/v1/session [get]
func (h *SessionHandler) Current(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	h.respondView(stdCtx, ctx, http.StatusOK)
}

// @Summary Check unique URL availability
// @Tags session
// @Router /api/v1/urls/{slug}/availability [get]
func (h *SessionHandler) URLAvailability(ctx *fasthttp.RequestCtx) {
	slug, _ := ctx.UserValue("slug").(string)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	available, err := h.uc.CheckURL(stdCtx, slug)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, transport.AvailabilityView{Slug: slug, Available: available})
}

func (h *SessionHandler) respondView(stdCtx context.Context, ctx *fasthttp.RequestCtx, status int) {
	identity, ok := h.uc.Current()
	if !ok {
		h.respondError(stdCtx, ctx, domain.ErrNoIdentity)
		return
	}
	h.respondSuccess(ctx, status, transport.SessionView{
		Identity:     identity,
		Entitlements: entitlement.ForIdentity(identity),
	})
}
