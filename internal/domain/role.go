package domain

import "time"

type Role string

const (
	RoleGuest      Role = "guest"
	RoleHost       Role = "host"
	RoleSupervisor Role = "supervisor"
	RoleAdmin      Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleGuest, RoleHost, RoleSupervisor, RoleAdmin:
		return true
	}
	return false
}

type RoleAssignment struct {
	UserID    int32     `json:"user_id"`
	Role      Role      `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ActiveRoles filters assignments down to the roles currently in effect.
func ActiveRoles(assignments []RoleAssignment) []Role {
	roles := make([]Role, 0, len(assignments))
	for _, a := range assignments {
		if a.Active {
			roles = append(roles, a.Role)
		}
	}
	return roles
}
