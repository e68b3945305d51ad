package domain

import "time"

const (
	// RoleAdmin is the platform-level role; it sees every tenant.
	RoleAdmin = "admin"
	// RoleCompanyAdmin manages one company's areas, games and configs.
	RoleCompanyAdmin = "company_admin"
	// RoleOperator sells tickets for one company.
	RoleOperator = "operator"
)

type User struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CompanyID *uint     `json:"company_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsPlatformAdmin reports whether the user sees all tenants.
func (u User) IsPlatformAdmin() bool {
	return u.Role == RoleAdmin
}

// Tenant returns the company filter for this user: nil means unscoped.
func (u User) Tenant() *uint {
	if u.IsPlatformAdmin() {
		return nil
	}

	return u.CompanyID
}
