package models

import "time"

// UserRole represents the available roles for the RBAC system.
type UserRole string

const (
	RoleMahasiswa UserRole = "mahasiswa"
	RoleDosen     UserRole = "dosen"
	RoleAdmin     UserRole = "admin"
)

// User represents an application user stored in the users table. Mahasiswa
// accounts carry an NPM and a concentration; dosen and admin accounts do not.
type User struct {
	ID           string     `db:"id" json:"id"`
	Nama         string     `db:"nama" json:"nama"`
	Email        string     `db:"email" json:"email"`
	Username     string     `db:"username" json:"username"`
	PasswordHash string     `db:"password_hash" json:"-"`
	Role         UserRole   `db:"role" json:"role"`
	NPM          *string    `db:"npm" json:"npm,omitempty"`
	Konsentrasi  *string    `db:"konsentrasi" json:"konsentrasi,omitempty"`
	Active       bool       `db:"active" json:"active"`
	LastLogin    *time.Time `db:"last_login" json:"last_login,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// DosenInfo is the reviewer-picker projection of a lecturer account.
type DosenInfo struct {
	ID          string  `db:"id" json:"id"`
	Nama        string  `db:"nama" json:"nama"`
	Konsentrasi *string `db:"konsentrasi" json:"konsentrasi,omitempty"`
}

// UserFilter captures filtering criteria for listing users.
type UserFilter struct {
	Role      *UserRole
	Active    *bool
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// RoleCounts tallies users per role for the admin dashboard.
type RoleCounts struct {
	Total     int `db:"total" json:"total"`
	Mahasiswa int `db:"mahasiswa" json:"mahasiswa"`
	Dosen     int `db:"dosen" json:"dosen"`
	Admin     int `db:"admin" json:"admin"`
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
