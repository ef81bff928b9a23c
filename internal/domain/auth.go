package domain

// AuthContext identifies the caller of an engine operation. It is built by the
// transport layer from the bearer token and the caller's active roles.
type AuthContext struct {
	SubjectID int32
	Roles     []Role
}

func (a AuthContext) HasRole(role Role) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (a AuthContext) IsAdmin() bool {
	return a.HasRole(RoleAdmin)
}
