package auth

const (
	RoleStudent      = "student"
	RoleProfessor    = "professor"
	RoleInstitution  = "institution"
	RoleOrganization = "organization"
)

func ValidRole(role string) bool {
	switch role {
	case RoleStudent, RoleProfessor, RoleInstitution, RoleOrganization:
		return true
	}
	return false
}
