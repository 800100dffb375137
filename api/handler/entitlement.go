package handler

import (
	"net/http"
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/cardfolio/domain"
	"github.com/fastygo/cardfolio/pkg/httpcontext"
	"github.com/fastygo/cardfolio/usecase/entitlement"
	sessionUC "github.com/fastygo/cardfolio/usecase/session"
)

type EntitlementHandler struct {
	baseHandler
	uc *sessionUC.UseCase
}

func NewEntitlementHandler(uc *sessionUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *EntitlementHandler {
	return &EntitlementHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Resolve entitlements for the current identity or an explicit tier
// @Tags entitlements
// @Param tier query string false "plan tier"
// @Router /api/v1/entitlements [get]
func (h *EntitlementHandler) Resolve(ctx *fasthttp.RequestCtx) {
	if raw := string(ctx.QueryArgs().Peek("tier")); raw != "" {
		// unknown tiers degrade to the free set
		tier := domain.PlanTier(strings.ToLower(strings.TrimSpace(raw)))
		h.respondSuccess(ctx, http.StatusOK, entitlement.Resolve(tier))
		return
	}
	h.respondSuccess(ctx, http.StatusOK, h.uc.Entitlements())
}
