package availability

import (
	"context"
	"strings"

	"github.com/fastygo/cardfolio/usecase"
)

// DefaultReserved are slugs that collide with product routes.
var DefaultReserved = []string{"admin", "api", "dashboard", "login", "signup", "settings", "verify"}

// Reserved reports a unique URL as available unless it is blank or reserved.
type Reserved struct {
	taken map[string]struct{}
}

func NewReserved(slugs []string) *Reserved {
	taken := make(map[string]struct{}, len(slugs))
	for _, slug := range slugs {
		if s := Normalize(slug); s != "" {
			taken[s] = struct{}{}
		}
	}
	return &Reserved{taken: taken}
}

func (r *Reserved) IsAvailable(ctx context.Context, slug string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s := Normalize(slug)
	if s == "" {
		return false, nil
	}
	_, taken := r.taken[s]
	return !taken, nil
}

// Normalize lower-cases and trims a candidate slug.
func Normalize(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}

var _ usecase.URLAvailability = (*Reserved)(nil)
