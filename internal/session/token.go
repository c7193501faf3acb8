package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/poultrypro/poultryctl/pkg/domain"
)

// HasRole reports whether an authenticated user carries the given role.
func (c *Controller) HasRole(role domain.Role) bool {
	s := c.State()
	return s.Authenticated && s.User != nil && s.User.Role == role
}

// IsFarmer reports whether the session belongs to a farmer.
func (c *Controller) IsFarmer() bool { return c.HasRole(domain.RoleFarmer) }

// IsVeterinarian reports whether the session belongs to a veterinarian.
func (c *Controller) IsVeterinarian() bool { return c.HasRole(domain.RoleVeterinarian) }

// IsSupplier reports whether the session belongs to a feed supplier.
func (c *Controller) IsSupplier() bool { return c.HasRole(domain.RoleSupplier) }

// TokenExpiringSoon reports whether the session token expires within the
// given window. The token is decoded without signature verification, which
// is all a client holding someone else's signature can do. Opaque tokens and
// tokens without an exp claim never report as expiring.
func (c *Controller) TokenExpiringSoon(window time.Duration) bool {
	c.stateMu.RLock()
	token := c.token
	c.stateMu.RUnlock()
	if token == "" {
		return false
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return time.Until(claims.ExpiresAt.Time) < window
}
