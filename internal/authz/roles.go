package authz

// Роли, которые выдаёт API системы отчётности.
const (
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
	RoleOperator  = "operator"
	RoleViewer    = "viewer"
)

var Roles = []string{RoleAdmin, RoleModerator, RoleOperator, RoleViewer}

var RoleTitles = map[string]string{
	RoleAdmin:     "Администратор",
	RoleModerator: "Модератор",
	RoleOperator:  "Оператор",
	RoleViewer:    "Наблюдатель",
}

// defaultRolePermissions — статическая матрица "роль → разрешённые права".
var defaultRolePermissions = map[string][]string{
	RoleAdmin: {Superuser},
	RoleModerator: {
		BulletinsView, BulletinsCreate, BulletinsUpdate, BulletinsDelete, BulletinsStructure,
		ClassificatorsView, ClassificatorsCreate, ClassificatorsUpdate, ClassificatorsDelete,
		DepartmentsView, DepartmentsCreate, DepartmentsUpdate,
		OrganizationsView, OrganizationsCreate, OrganizationsUpdate,
		UsersView,
		LogsView, DelayReportsView, DelayReportsExport,
	},
	RoleOperator: {
		BulletinsView, BulletinsUpdate, BulletinsStructure,
		ClassificatorsView,
		DepartmentsView,
		OrganizationsView,
		DelayReportsView,
	},
	RoleViewer: {
		BulletinsView,
		ClassificatorsView,
		DepartmentsView,
		OrganizationsView,
		DelayReportsView,
	},
}

func IsKnownRole(role string) bool {
	_, ok := RoleTitles[role]
	return ok
}

func RoleTitle(role string) string {
	if title, ok := RoleTitles[role]; ok {
		return title
	}
	return role
}
