package domain

type Side string

const (
	SideRed  Side = "red"
	SideBlue Side = "blue"
)

// Assignment is a player placed on a roster. It marshals as the player's own
// fields plus current_role.
type Assignment struct {
	*Player
	CurrentRole Role `json:"current_role"`
}

// Roster is one side's role assignments in the order they were made
type Roster []Assignment

// With returns a copy of the roster with the player appended at role.
// The receiver is left untouched so trial rosters never alias.
func (r Roster) With(p *Player, role Role) Roster {
	next := make(Roster, len(r), len(r)+1)
	copy(next, r)
	return append(next, Assignment{Player: p, CurrentRole: role})
}

// HasRole reports whether the roster already holds someone at role
func (r Roster) HasRole(role Role) bool {
	for _, a := range r {
		if a.CurrentRole == role {
			return true
		}
	}
	return false
}

// AverageMMR returns the mean rating, 0 for an empty roster
func (r Roster) AverageMMR() float64 {
	if len(r) == 0 {
		return 0
	}
	var total float64
	for _, a := range r {
		total += a.MMR
	}
	return total / float64(len(r))
}

// Teams holds both rosters of a match
type Teams struct {
	Red  Roster
	Blue Roster
}

// MissingRoles lists the roles that at least one side could not fill
func (t *Teams) MissingRoles() []Role {
	var missing []Role
	for _, role := range AllRoles {
		if !t.Red.HasRole(role) || !t.Blue.HasRole(role) {
			missing = append(missing, role)
		}
	}
	return missing
}

// IsComplete reports whether both sides have every role filled
func (t *Teams) IsComplete() bool {
	return len(t.MissingRoles()) == 0
}

// TeamEntry is one side of a match as exposed over the wire
type TeamEntry struct {
	Side Side   `json:"side"`
	User Roster `json:"user"`
}

// MatchResult is a built match together with the caller's test metadata
type MatchResult struct {
	TestName    string      `json:"test_name"`
	LastEpochID string      `json:"last_epoch_id"`
	Match       []TeamEntry `json:"match"`
}
