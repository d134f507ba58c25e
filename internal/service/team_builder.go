package service

import (
	"fmt"
	"math"
	"sort"

	"github.com/dom/league-matchmaker/internal/domain"
	"github.com/samber/lo"
)

// EmptyRosterSpread is the spread of a roster with nobody on it. It is large
// enough that leaving a side empty never scores as balanced.
const EmptyRosterSpread = 1e6

// BuildMatch splits the candidates into a red and a blue roster, one player
// per role per side, processing roles in the given order. A nil order means
// domain.AllRoles. Roles nobody can fill are left empty on both sides; that is
// reported by Teams.MissingRoles, not as an error.
func BuildMatch(candidates []*domain.Player, order []domain.Role) (*domain.Teams, error) {
	if err := validatePool(candidates); err != nil {
		return nil, err
	}
	if order == nil {
		order = domain.AllRoles
	}
	if err := validateRoleOrder(order); err != nil {
		return nil, err
	}

	teams := AssignTeams(BucketByRole(candidates), order)
	return &teams, nil
}

func validatePool(candidates []*domain.Player) error {
	if len(candidates) == 0 {
		return domain.ErrEmptyPool
	}
	for i, p := range candidates {
		if p == nil {
			return fmt.Errorf("%w: candidate %d is nil", domain.ErrInvalidInput, i)
		}
		if len(p.Roles) == 0 {
			return fmt.Errorf("%w (id=%s)", domain.ErrPlayerWithoutRoles, p.ID)
		}
	}

	dupes := lo.FindDuplicatesBy(candidates, func(p *domain.Player) string { return p.ID })
	if len(dupes) > 0 {
		return fmt.Errorf("%w (id=%s)", domain.ErrDuplicatePlayer, dupes[0].ID)
	}
	return nil
}

func validateRoleOrder(order []domain.Role) error {
	known := lo.EveryBy(order, func(r domain.Role) bool { return r.IsValid() })
	if !known || len(lo.Uniq(order)) != len(order) {
		return domain.ErrInvalidRoleOrder
	}
	return nil
}

// BucketByRole groups the pool by declared role, longest waiting first.
// Ties keep the pool order. The pool itself is not reordered.
func BucketByRole(pool []*domain.Player) domain.RoleBucket {
	sorted := make([]*domain.Player, len(pool))
	copy(sorted, pool)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].WaitingTime > sorted[j].WaitingTime
	})

	bucket := make(domain.RoleBucket)
	for _, p := range sorted {
		for _, role := range p.Roles {
			bucket[role] = append(bucket[role], p)
		}
	}
	return bucket
}

// BalanceMetric scores how even two rosters are. Lower is better.
func BalanceMetric(a, b domain.Roster) float64 {
	return math.Abs(a.AverageMMR()-b.AverageMMR()) + spread(a) + spread(b)
}

func spread(r domain.Roster) float64 {
	if len(r) == 0 {
		return EmptyRosterSpread
	}
	lowest, highest := r[0].MMR, r[0].MMR
	for _, a := range r[1:] {
		lowest = math.Min(lowest, a.MMR)
		highest = math.Max(highest, a.MMR)
	}
	return highest - lowest
}

// teamState is the working state of one BuildMatch call
type teamState struct {
	red  domain.Roster
	blue domain.Roster
	used domain.UsedSet
}

// AssignTeams runs the greedy per-role assignment over an already bucketed pool
func AssignTeams(bucket domain.RoleBucket, order []domain.Role) domain.Teams {
	state := teamState{used: make(domain.UsedSet)}
	for _, role := range order {
		state = assignRole(state, bucket[role], role)
	}
	return domain.Teams{Red: state.red, Blue: state.blue}
}

// assignRole places the two longest waiting unused candidates for role,
// trying both side arrangements and keeping the better one. Ties go to the
// arrangement that puts the longer waiting player on red.
func assignRole(state teamState, candidates []*domain.Player, role domain.Role) teamState {
	first, second := pickCandidates(candidates, state.used)

	switch {
	case first == nil:
		return state

	case second == nil:
		toRed := BalanceMetric(state.red.With(first, role), state.blue)
		toBlue := BalanceMetric(state.red, state.blue.With(first, role))
		if toRed <= toBlue {
			state.red = state.red.With(first, role)
		} else {
			state.blue = state.blue.With(first, role)
		}
		state.used.Add(first.ID)

	default:
		redA, blueA := state.red.With(first, role), state.blue.With(second, role)
		redB, blueB := state.red.With(second, role), state.blue.With(first, role)
		if BalanceMetric(redA, blueA) <= BalanceMetric(redB, blueB) {
			state.red, state.blue = redA, blueA
		} else {
			state.red, state.blue = redB, blueB
		}
		state.used.Add(first.ID)
		state.used.Add(second.ID)
	}

	return state
}

func pickCandidates(candidates []*domain.Player, used domain.UsedSet) (first, second *domain.Player) {
	for _, p := range candidates {
		if used.Has(p.ID) {
			continue
		}
		if first == nil {
			first = p
			continue
		}
		if p.ID != first.ID {
			return first, p
		}
	}
	return first, nil
}

// AssembleMatch wraps built teams into the wire shape, red first
func AssembleMatch(testName, epoch string, teams *domain.Teams) *domain.MatchResult {
	red, blue := teams.Red, teams.Blue
	if red == nil {
		red = domain.Roster{}
	}
	if blue == nil {
		blue = domain.Roster{}
	}
	return &domain.MatchResult{
		TestName:    testName,
		LastEpochID: epoch,
		Match: []domain.TeamEntry{
			{Side: domain.SideRed, User: red},
			{Side: domain.SideBlue, User: blue},
		},
	}
}
