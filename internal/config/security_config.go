// config/security_config.go
package config

type SecurityLevel int

const (
	SecurityPublic SecurityLevel = iota // No authentication
	SecurityAdmin                       // Admin access token required
)

// EndpointSecurityConfig maps HTTP route names to their required security level
var EndpointSecurityConfig = map[string]SecurityLevel{
	// Health
	"health": SecurityPublic,

	// Auth
	"auth.login": SecurityPublic,
	"auth.me":    SecurityAdmin,

	// Catalog - Public
	"tools.list":              SecurityPublic,
	"tools.categories":        SecurityPublic,
	"tools.get":               SecurityPublic,
	"tools.unavailable-dates": SecurityPublic,
	"tools.calendar":          SecurityPublic,

	// Catalog - Admin
	"tools.create":       SecurityAdmin,
	"tools.update":       SecurityAdmin,
	"tools.delete":       SecurityAdmin,
	"tools.availability": SecurityAdmin,

	// Bookings - Public
	"bookings.create":             SecurityPublic,
	"bookings.check-availability": SecurityPublic,
	"bookings.by-tool":            SecurityPublic,
	"bookings.by-customer":        SecurityPublic,

	// Bookings - Admin
	"bookings.confirm": SecurityAdmin,
	"bookings.cancel":  SecurityAdmin,
	"bookings.get":     SecurityAdmin,

	// Customers
	"customers.create": SecurityPublic,

	// Back office
	"orders.list":           SecurityAdmin,
	"orders.get":            SecurityAdmin,
	"orders.payment-status": SecurityAdmin,
	"admin.stats":           SecurityAdmin,
}

// GetSecurityLevel returns the security level for a given route name
func GetSecurityLevel(route string) SecurityLevel {
	if level, exists := EndpointSecurityConfig[route]; exists {
		return level
	}
	// Default to highest security for unknown endpoints
	return SecurityAdmin
}
