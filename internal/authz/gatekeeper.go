package authz

import (
	"sort"
)

// Gatekeeper отвечает на вопрос "есть ли у роли право". Матрица неизменяема
// после создания, поэтому Gatekeeper можно разделять между горутинами.
type Gatekeeper struct {
	roles map[string]map[string]bool
}

func NewGatekeeper(matrix map[string][]string) *Gatekeeper {
	g := &Gatekeeper{roles: make(map[string]map[string]bool, len(matrix))}
	for role, perms := range matrix {
		set := make(map[string]bool, len(perms))
		for _, p := range perms {
			set[p] = true
		}
		g.roles[role] = set
	}
	return g
}

// NewDefaultGatekeeper — матрица, зашитая в код.
func NewDefaultGatekeeper() *Gatekeeper {
	return NewGatekeeper(defaultRolePermissions)
}

// Can — проверка членства. Неизвестная роль не получает ничего, superuser — всё.
func (g *Gatekeeper) Can(role, permission string) bool {
	perms, ok := g.roles[role]
	if !ok {
		return false
	}
	return perms[Superuser] || perms[permission]
}

// Permissions возвращает отсортированный список прав роли. Для superuser
// список раскрывается в полный перечень.
func (g *Gatekeeper) Permissions(role string) []string {
	perms, ok := g.roles[role]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(perms))
	if perms[Superuser] {
		out = append(out, All...)
	} else {
		for p := range perms {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}

// Set — набор прав роли для шаблонов: {{if index .Perms "users:create"}}.
func (g *Gatekeeper) Set(role string) map[string]bool {
	out := make(map[string]bool)
	for _, p := range g.Permissions(role) {
		out[p] = true
	}
	return out
}
