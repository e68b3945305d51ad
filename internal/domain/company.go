package domain

import "time"

// Company is the tenant unit. Every area, game and ticket belongs to exactly
// one company; cross-company reads are only available to platform admins.
type Company struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Document  string    `json:"document"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
