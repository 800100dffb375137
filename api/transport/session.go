package transport

import (
	"github.com/fastygo/cardfolio/domain"
	"github.com/fastygo/cardfolio/usecase/entitlement"
)

// SessionView is what screens receive after every session call.
type SessionView struct {
	Identity     domain.Identity `json:"identity"`
	Entitlements entitlement.Set `json:"entitlements"`
}

type AvailabilityView struct {
	Slug      string `json:"slug"`
	Available bool   `json:"available"`
}
