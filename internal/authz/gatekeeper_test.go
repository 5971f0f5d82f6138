package authz

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatekeeper_DefaultMatrix(t *testing.T) {
	g := NewDefaultGatekeeper()

	assert.True(t, g.Can(RoleAdmin, UsersDelete), "администратор может всё")
	assert.True(t, g.Can(RoleAdmin, "anything:else"))

	assert.True(t, g.Can(RoleModerator, BulletinsDelete))
	assert.False(t, g.Can(RoleModerator, UsersDelete))

	assert.True(t, g.Can(RoleOperator, BulletinsStructure))
	assert.False(t, g.Can(RoleOperator, BulletinsCreate))

	assert.True(t, g.Can(RoleViewer, BulletinsView))
	assert.False(t, g.Can(RoleViewer, BulletinsUpdate))
	assert.False(t, g.Can(RoleViewer, LogsView))
}

func TestGatekeeper_UnknownRoleHasNothing(t *testing.T) {
	g := NewDefaultGatekeeper()

	assert.False(t, g.Can("", BulletinsView))
	assert.False(t, g.Can("intruder", BulletinsView))
	assert.Nil(t, g.Permissions("intruder"))
	assert.Empty(t, g.Set("intruder"))
}

func TestGatekeeper_PermissionsSortedAndExpanded(t *testing.T) {
	g := NewDefaultGatekeeper()

	viewer := g.Permissions(RoleViewer)
	assert.IsIncreasing(t, viewer)
	assert.Contains(t, viewer, DelayReportsView)

	admin := g.Permissions(RoleAdmin)
	assert.Len(t, admin, len(All))
	assert.True(t, g.Set(RoleAdmin)[AuditView])
}

func TestPermission(t *testing.T) {
	assert.Equal(t, UsersCreate, Permission("users", "create"))
}

func TestParseGatekeeper_OverridesRoleWholesale(t *testing.T) {
	g, err := ParseGatekeeper([]byte(`
roles:
  viewer: [logs:view]
`))
	require.NoError(t, err)

	assert.True(t, g.Can(RoleViewer, LogsView))
	assert.False(t, g.Can(RoleViewer, BulletinsView), "роль из файла заменяет набор полностью")
	assert.True(t, g.Can(RoleOperator, BulletinsStructure), "остальные роли не тронуты")
}

func TestParseGatekeeper_RejectsUnknownNames(t *testing.T) {
	_, err := ParseGatekeeper([]byte("roles:\n  root: [logs:view]\n"))
	assert.Error(t, err)

	_, err = ParseGatekeeper([]byte("roles:\n  viewer: [logs:destroy]\n"))
	assert.Error(t, err)

	_, err = ParseGatekeeper([]byte("roles: [broken"))
	assert.Error(t, err)
}

func TestLoadGatekeeper(t *testing.T) {
	g, err := LoadGatekeeper("")
	require.NoError(t, err)
	assert.True(t, g.Can(RoleViewer, BulletinsView))

	path := filepath.Join(t.TempDir(), "perms.yaml")
	require.NoError(t, os.WriteFile(path, []byte("roles:\n  operator: [audit:view]\n"), 0o600))
	g, err = LoadGatekeeper(path)
	require.NoError(t, err)
	assert.True(t, g.Can(RoleOperator, AuditView))

	_, err = LoadGatekeeper(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
