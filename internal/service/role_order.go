package service

import (
	"math/rand"
	"slices"
	"sync"

	"github.com/dom/league-matchmaker/internal/domain"
	"github.com/samber/lo"
)

// RoleOrderFunc supplies the role processing order of one match
type RoleOrderFunc func() []domain.Role

// FixedRoleOrder always returns a copy of order
func FixedRoleOrder(order ...domain.Role) RoleOrderFunc {
	return func() []domain.Role {
		return slices.Clone(order)
	}
}

// RandomRoleOrder shuffles the role set for every match. A zero seed uses the
// global source; any other seed gives a reproducible sequence of orders.
func RandomRoleOrder(seed int64) RoleOrderFunc {
	if seed == 0 {
		return func() []domain.Role {
			return lo.Shuffle(slices.Clone(domain.AllRoles))
		}
	}

	var mu sync.Mutex
	rng := rand.New(rand.NewSource(seed))
	return func() []domain.Role {
		roles := slices.Clone(domain.AllRoles)
		mu.Lock()
		rng.Shuffle(len(roles), func(i, j int) {
			roles[i], roles[j] = roles[j], roles[i]
		})
		mu.Unlock()
		return roles
	}
}
