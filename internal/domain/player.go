package domain

// Player is a waiting user as handed to the matchmaker. It is never mutated
// while a match is being built.
type Player struct {
	ID          string  `json:"id"`
	Roles       []Role  `json:"roles"`
	MMR         float64 `json:"mmr"`
	WaitingTime float64 `json:"waitingTime"`
}

// CanPlay reports whether the player declared the role
func (p *Player) CanPlay(role Role) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// RoleBucket maps a role to the players eligible for it, longest waiting first
type RoleBucket map[Role][]*Player

// UsedSet tracks the player ids already placed on a roster
type UsedSet map[string]struct{}

func (u UsedSet) Add(id string) {
	u[id] = struct{}{}
}

func (u UsedSet) Has(id string) bool {
	_, ok := u[id]
	return ok
}
