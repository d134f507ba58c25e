package service_test

import (
	"testing"

	"github.com/dom/league-matchmaker/internal/domain"
	"github.com/dom/league-matchmaker/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestFixedRoleOrder_ReturnsCopies(t *testing.T) {
	order := service.FixedRoleOrder(domain.RoleMid, domain.RoleTop)

	first := order()
	first[0] = domain.RoleJungle

	assert.Equal(t, []domain.Role{domain.RoleMid, domain.RoleTop}, order())
}

func TestRandomRoleOrder_IsPermutation(t *testing.T) {
	for _, seed := range []int64{0, 1, 99} {
		order := service.RandomRoleOrder(seed)
		for i := 0; i < 20; i++ {
			assert.ElementsMatch(t, domain.AllRoles, order())
		}
	}
}

func TestRandomRoleOrder_SeedIsReproducible(t *testing.T) {
	a := service.RandomRoleOrder(5)
	b := service.RandomRoleOrder(5)

	for i := 0; i < 10; i++ {
		assert.Equal(t, a(), b())
	}
}

func TestRandomRoleOrder_DoesNotTouchAllRoles(t *testing.T) {
	before := append([]domain.Role(nil), domain.AllRoles...)

	order := service.RandomRoleOrder(0)
	for i := 0; i < 10; i++ {
		order()
	}

	assert.Equal(t, before, domain.AllRoles)
}
