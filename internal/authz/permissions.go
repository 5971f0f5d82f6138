// internal/authz/permissions.go
package authz

// --- СПИСОК ВСЕХ ПЕРМИШЕНОВ ПАНЕЛИ ---

const (
	// Глобальные
	Superuser = "superuser"

	// Бюллетени
	BulletinsView      = "bulletins:view"
	BulletinsCreate    = "bulletins:create"
	BulletinsUpdate    = "bulletins:update"
	BulletinsDelete    = "bulletins:delete"
	BulletinsStructure = "bulletins:structure"

	// Классификаторы
	ClassificatorsView   = "classificators:view"
	ClassificatorsCreate = "classificators:create"
	ClassificatorsUpdate = "classificators:update"
	ClassificatorsDelete = "classificators:delete"

	// Подразделения
	DepartmentsView   = "departments:view"
	DepartmentsCreate = "departments:create"
	DepartmentsUpdate = "departments:update"
	DepartmentsDelete = "departments:delete"

	// Организации
	OrganizationsView   = "organizations:view"
	OrganizationsCreate = "organizations:create"
	OrganizationsUpdate = "organizations:update"
	OrganizationsDelete = "organizations:delete"

	// Пользователи
	UsersView   = "users:view"
	UsersCreate = "users:create"
	UsersUpdate = "users:update"
	UsersDelete = "users:delete"

	// Журналы
	LogsView           = "logs:view"
	LogsExport         = "logs:export"
	DelayReportsView   = "delay_reports:view"
	DelayReportsExport = "delay_reports:export"
	AuditView          = "audit:view"
)

// Permission собирает имя права вида "resource:action".
func Permission(resource, action string) string {
	return resource + ":" + action
}

// All — полный перечень, используется для проверки файла переопределений.
var All = []string{
	Superuser,
	BulletinsView, BulletinsCreate, BulletinsUpdate, BulletinsDelete, BulletinsStructure,
	ClassificatorsView, ClassificatorsCreate, ClassificatorsUpdate, ClassificatorsDelete,
	DepartmentsView, DepartmentsCreate, DepartmentsUpdate, DepartmentsDelete,
	OrganizationsView, OrganizationsCreate, OrganizationsUpdate, OrganizationsDelete,
	UsersView, UsersCreate, UsersUpdate, UsersDelete,
	LogsView, LogsExport, DelayReportsView, DelayReportsExport, AuditView,
}
