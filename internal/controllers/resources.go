package controllers

import (
	"context"
	"fmt"
	"strconv"

	"ereport-admin/internal/authz"
	"ereport-admin/internal/dto"
	"ereport-admin/internal/entities"
	"ereport-admin/pkg/types"
	"ereport-admin/pkg/utils"
)

// Sources - справочники, из которых формы и фильтры берут варианты выбора.
type Sources struct {
	Organizations  OptionSource
	Classificators OptionSource
	Departments    OptionSource
	Bulletins      OptionSource
	Users          OptionSource
}

func staticOptions(options []types.Option) OptionSource {
	return func(context.Context) ([]types.Option, error) { return options, nil }
}

var roleOptions = func() []types.Option {
	out := make([]types.Option, 0, len(authz.Roles))
	for _, r := range authz.Roles {
		out = append(out, types.Option{Value: r, Label: authz.RoleTitle(r)})
	}
	return out
}()

var activeOptions = []types.Option{
	{Value: "true", Label: "Активные"},
	{Value: "false", Label: "Отключённые"},
}

func listOptions(cfg utils.ListOptions, filters []string, ordering ...string) utils.ListOptions {
	cfg.Filters = filters
	cfg.Ordering = ordering
	return cfg
}

func activeCell(active bool) string {
	if active {
		return "Активен"
	}
	return "Отключён"
}

func idValue(id uint64) string {
	return strconv.FormatUint(id, 10)
}

func BulletinConfig(list utils.ListOptions, src Sources) ResourceConfig[entities.Bulletin, *dto.BulletinForm] {
	return ResourceConfig[entities.Bulletin, *dto.BulletinForm]{
		Resource:    "bulletins",
		BasePath:    "/bulletins",
		Title:       "Бюллетени",
		NewTitle:    "Новый бюллетень",
		EditTitle:   "Редактирование бюллетеня",
		ListOptions: listOptions(list, []string{"periodicity", "organization", "is_active"}, "name", "code", "periodicity"),
		Search:      true,
		Columns: []Column[entities.Bulletin]{
			{Title: "Код", Sort: "code", Value: func(b entities.Bulletin, _ Lookups) string { return b.Code }},
			{Title: "Название", Sort: "name", Value: func(b entities.Bulletin, _ Lookups) string { return b.Name }},
			{Title: "Периодичность", Sort: "periodicity", Value: func(b entities.Bulletin, l Lookups) string { return l.Label("periodicity", b.Periodicity) }},
			{Title: "Организация", Value: func(b entities.Bulletin, l Lookups) string { return l.LabelID("organization", b.Organization) }},
			{Title: "Статус", Value: func(b entities.Bulletin, _ Lookups) string { return activeCell(b.IsActive) }},
		},
		Filters: []FilterSpec{
			{Name: "periodicity", Label: "Периодичность", Type: "select", Lookup: "periodicity"},
			{Name: "organization", Label: "Организация", Type: "select", Lookup: "organization"},
			{Name: "is_active", Label: "Статус", Type: "select", Options: activeOptions},
		},
		Lookups: map[string]OptionSource{
			"organization": src.Organizations,
			"periodicity":  staticOptions(dto.Periodicities),
		},
		NewForm:    dto.NewBulletinForm,
		FromEntity: dto.BulletinFormFromEntity,
		Fields: func(f *dto.BulletinForm, l Lookups) []FormField {
			return []FormField{
				textField("name", "Название", f.Name, true),
				textField("code", "Код", f.Code, true),
				textareaField("description", "Описание", f.Description),
				selectField("periodicity", "Периодичность", f.Periodicity, dto.Periodicities, true),
				numberField("deadline_day", "День сдачи", f.DeadlineDay, "Число месяца, до которого нужно сдать отчёт"),
				selectField("organization", "Организация", f.Organization.FormValue(), l["organization"], false),
				checkboxField("is_active", "Активен", f.IsActive),
			}
		},
		RowLinks: func(b entities.Bulletin, perms map[string]bool) []Link {
			if !perms[authz.BulletinsStructure] {
				return nil
			}
			return []Link{{Title: "Структура", URL: fmt.Sprintf("/bulletins/%d/structure", b.ID)}}
		},
	}
}

func ClassificatorConfig(list utils.ListOptions, src Sources) ResourceConfig[entities.Classificator, *dto.ClassificatorForm] {
	return ResourceConfig[entities.Classificator, *dto.ClassificatorForm]{
		Resource:    "classificators",
		BasePath:    "/classificators",
		Title:       "Классификаторы",
		NewTitle:    "Новый классификатор",
		EditTitle:   "Редактирование классификатора",
		ListOptions: listOptions(list, []string{"parent", "is_active"}, "name", "code"),
		Search:      true,
		Columns: []Column[entities.Classificator]{
			{Title: "Код", Sort: "code", Value: func(c entities.Classificator, _ Lookups) string { return c.Code }},
			{Title: "Название", Sort: "name", Value: func(c entities.Classificator, _ Lookups) string { return c.Name }},
			{Title: "Родитель", Value: func(c entities.Classificator, l Lookups) string { return l.LabelID("classificator", c.Parent) }},
			{Title: "Статус", Value: func(c entities.Classificator, _ Lookups) string { return activeCell(c.IsActive) }},
		},
		Filters: []FilterSpec{
			{Name: "parent", Label: "Родитель", Type: "select", Lookup: "classificator"},
			{Name: "is_active", Label: "Статус", Type: "select", Options: activeOptions},
		},
		Lookups: map[string]OptionSource{
			"classificator": src.Classificators,
		},
		NewForm:    dto.NewClassificatorForm,
		FromEntity: dto.ClassificatorFormFromEntity,
		Fields: func(f *dto.ClassificatorForm, l Lookups) []FormField {
			return []FormField{
				textField("name", "Название", f.Name, true),
				textField("code", "Код", f.Code, true),
				selectField("parent", "Родитель", f.Parent.FormValue(), l["classificator"], false),
				textareaField("description", "Описание", f.Description),
				checkboxField("is_active", "Активен", f.IsActive),
			}
		},
	}
}

func DepartmentConfig(list utils.ListOptions, src Sources) ResourceConfig[entities.Department, *dto.DepartmentForm] {
	return ResourceConfig[entities.Department, *dto.DepartmentForm]{
		Resource:    "departments",
		BasePath:    "/departments",
		Title:       "Подразделения",
		NewTitle:    "Новое подразделение",
		EditTitle:   "Редактирование подразделения",
		ListOptions: listOptions(list, []string{"organization", "is_active"}, "name"),
		Search:      true,
		Columns: []Column[entities.Department]{
			{Title: "Название", Sort: "name", Value: func(d entities.Department, _ Lookups) string { return d.Name }},
			{Title: "Организация", Value: func(d entities.Department, l Lookups) string {
				return l.Label("organization", idValue(d.Organization))
			}},
			{Title: "Вышестоящее", Value: func(d entities.Department, l Lookups) string { return l.LabelID("department", d.Parent) }},
			{Title: "Статус", Value: func(d entities.Department, _ Lookups) string { return activeCell(d.IsActive) }},
		},
		Filters: []FilterSpec{
			{Name: "organization", Label: "Организация", Type: "select", Lookup: "organization"},
			{Name: "is_active", Label: "Статус", Type: "select", Options: activeOptions},
		},
		Lookups: map[string]OptionSource{
			"organization": src.Organizations,
			"department":   src.Departments,
		},
		NewForm:    dto.NewDepartmentForm,
		FromEntity: dto.DepartmentFormFromEntity,
		Fields: func(f *dto.DepartmentForm, l Lookups) []FormField {
			return []FormField{
				textField("name", "Название", f.Name, true),
				selectField("organization", "Организация", f.Organization.FormValue(), l["organization"], true),
				selectField("parent", "Вышестоящее подразделение", f.Parent.FormValue(), l["department"], false),
				checkboxField("is_active", "Активно", f.IsActive),
			}
		},
	}
}

func OrganizationConfig(list utils.ListOptions) ResourceConfig[entities.Organization, *dto.OrganizationForm] {
	return ResourceConfig[entities.Organization, *dto.OrganizationForm]{
		Resource:    "organizations",
		BasePath:    "/organizations",
		Title:       "Организации",
		NewTitle:    "Новая организация",
		EditTitle:   "Редактирование организации",
		ListOptions: listOptions(list, []string{"is_active"}, "name", "short_name", "tax_id"),
		Search:      true,
		Columns: []Column[entities.Organization]{
			{Title: "Название", Sort: "name", Value: func(o entities.Organization, _ Lookups) string { return o.Name }},
			{Title: "Краткое название", Sort: "short_name", Value: func(o entities.Organization, _ Lookups) string { return o.ShortName }},
			{Title: "ИНН", Sort: "tax_id", Value: func(o entities.Organization, _ Lookups) string { return o.TaxID }},
			{Title: "Телефон", Value: func(o entities.Organization, _ Lookups) string { return o.Phone }},
			{Title: "Статус", Value: func(o entities.Organization, _ Lookups) string { return activeCell(o.IsActive) }},
		},
		Filters: []FilterSpec{
			{Name: "is_active", Label: "Статус", Type: "select", Options: activeOptions},
		},
		NewForm:    dto.NewOrganizationForm,
		FromEntity: dto.OrganizationFormFromEntity,
		Fields: func(f *dto.OrganizationForm, _ Lookups) []FormField {
			return []FormField{
				textField("name", "Полное название", f.Name, true),
				textField("short_name", "Краткое название", f.ShortName, false),
				textField("tax_id", "ИНН", f.TaxID, false),
				textareaField("address", "Адрес", f.Address),
				textField("phone", "Телефон", f.Phone.FormValue(), false),
				checkboxField("is_active", "Активна", f.IsActive),
			}
		},
	}
}

func UserConfig(list utils.ListOptions, src Sources) ResourceConfig[entities.User, *dto.UserForm] {
	return ResourceConfig[entities.User, *dto.UserForm]{
		Resource:    "users",
		BasePath:    "/users",
		Title:       "Пользователи",
		NewTitle:    "Новый пользователь",
		EditTitle:   "Редактирование пользователя",
		ListOptions: listOptions(list, []string{"role", "organization", "is_active"}, "username", "last_name", "last_login"),
		Search:      true,
		Columns: []Column[entities.User]{
			{Title: "Логин", Sort: "username", Value: func(u entities.User, _ Lookups) string { return u.Username }},
			{Title: "ФИО", Sort: "last_name", Value: func(u entities.User, _ Lookups) string { return u.DisplayName() }},
			{Title: "Роль", Value: func(u entities.User, _ Lookups) string { return authz.RoleTitle(u.Role) }},
			{Title: "Организация", Value: func(u entities.User, l Lookups) string { return l.LabelID("organization", u.Organization) }},
			{Title: "Статус", Value: func(u entities.User, _ Lookups) string { return activeCell(u.IsActive) }},
		},
		Filters: []FilterSpec{
			{Name: "role", Label: "Роль", Type: "select", Options: roleOptions},
			{Name: "organization", Label: "Организация", Type: "select", Lookup: "organization"},
			{Name: "is_active", Label: "Статус", Type: "select", Options: activeOptions},
		},
		Lookups: map[string]OptionSource{
			"organization": src.Organizations,
			"department":   src.Departments,
		},
		NewForm:    dto.NewUserForm,
		FromEntity: dto.UserFormFromEntity,
		Prepare:    func(f *dto.UserForm, isNew bool) { f.IsNew = isNew },
		Fields: func(f *dto.UserForm, l Lookups) []FormField {
			password := passwordField("password", "Пароль", f.IsNew, "Оставьте пустым, чтобы не менять")
			if f.IsNew {
				password.Help = "Не короче 8 символов"
			}
			return []FormField{
				textField("username", "Логин", f.Username, true),
				textField("last_name", "Фамилия", f.LastName, false),
				textField("first_name", "Имя", f.FirstName, false),
				emailField("email", "Эл. почта", f.Email),
				selectField("role", "Роль", f.Role, roleOptions, true),
				selectField("organization", "Организация", f.Organization.FormValue(), l["organization"], false),
				selectField("department", "Подразделение", f.Department.FormValue(), l["department"], false),
				password,
				checkboxField("is_active", "Активен", f.IsActive),
			}
		},
	}
}
