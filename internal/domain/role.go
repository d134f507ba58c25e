package domain

// Role represents a League of Legends position
type Role string

const (
	RoleTop     Role = "top"
	RoleMid     Role = "mid"
	RoleBot     Role = "bot"
	RoleSupport Role = "sup"
	RoleJungle  Role = "jungle"
)

// AllRoles contains all valid roles in their canonical order
var AllRoles = []Role{RoleTop, RoleMid, RoleBot, RoleSupport, RoleJungle}

// IsValid checks if a role is valid
func (r Role) IsValid() bool {
	switch r {
	case RoleTop, RoleMid, RoleBot, RoleSupport, RoleJungle:
		return true
	}
	return false
}

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a user-friendly display name for the role
func (r Role) DisplayName() string {
	switch r {
	case RoleTop:
		return "Top"
	case RoleMid:
		return "Mid"
	case RoleBot:
		return "Bot"
	case RoleSupport:
		return "Support"
	case RoleJungle:
		return "Jungle"
	default:
		return string(r)
	}
}
