package models

import "time"

// AdminEmail is one entry of the admin allow-list. Deactivating a row
// invalidates every outstanding token for that email.
type AdminEmail struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	AddedBy   string    `json:"added_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AdminLoginLog struct {
	ID      int       `json:"id"`
	Email   string    `json:"email"`
	LoginAt time.Time `json:"login_at"`
}

// LoginLogRetention caps the audit log at the most recent N rows.
const LoginLogRetention = 50
