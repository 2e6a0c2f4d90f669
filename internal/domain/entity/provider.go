package entity

import "time"

// Provider representa un proveedor de mercancía.
type Provider struct {
	ID        string
	Name      string
	NIT       string
	Email     string
	Phone     string
	Activo    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
