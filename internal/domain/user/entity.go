package user

import "time"

type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN" // Platform operator, not bound to an entreprise
	RoleAdmin      Role = "ADMIN"       // Manages one entreprise
	RoleCashier    Role = "CAISSIER"    // Records payments
	RoleGuard      Role = "VIGILE"      // Records attendance
)

func (r Role) IsValid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleCashier, RoleGuard:
		return true
	}
	return false
}

type User struct {
	ID           int64
	EntrepriseID *int64
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsSuperAdmin checks if user operates across all entreprises
func (u *User) IsSuperAdmin() bool {
	return u.Role == RoleSuperAdmin
}

// BelongsTo checks tenant membership. A super admin belongs to every entreprise.
func (u *User) BelongsTo(entrepriseID int64) bool {
	if u.IsSuperAdmin() {
		return true
	}
	return u.EntrepriseID != nil && *u.EntrepriseID == entrepriseID
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
