package controllers

import (
	"context"
	"fmt"
	"net/url"

	"ereport-admin/internal/authz"
	"ereport-admin/internal/entities"
	"ereport-admin/pkg/flash"
	"ereport-admin/pkg/types"
	"ereport-admin/pkg/utils"
)

type NavItem struct {
	Title      string
	URL        string
	Permission string
}

var navigation = []NavItem{
	{Title: "Бюллетени", URL: "/bulletins", Permission: authz.BulletinsView},
	{Title: "Классификаторы", URL: "/classificators", Permission: authz.ClassificatorsView},
	{Title: "Организации", URL: "/organizations", Permission: authz.OrganizationsView},
	{Title: "Подразделения", URL: "/departments", Permission: authz.DepartmentsView},
	{Title: "Пользователи", URL: "/users", Permission: authz.UsersView},
	{Title: "Просрочки", URL: "/delay-reports", Permission: authz.DelayReportsView},
	{Title: "Журнал действий", URL: "/logs", Permission: authz.LogsView},
	{Title: "Аудит панели", URL: "/audit", Permission: authz.AuditView},
}

// Page - данные, общие для всех страниц, и содержимое конкретной страницы.
type Page struct {
	Title   string
	Active  string
	User    *entities.User
	Perms   map[string]bool
	Nav     []NavItem
	Flashes []flash.Message
	Content interface{}
}

// OptionSource отдаёт варианты для select; ключ источника совпадает с именем поля.
type OptionSource func(ctx context.Context) ([]types.Option, error)

type Lookups map[string][]types.Option

// Label - подпись значения value из источника key; неизвестное значение
// показывается как есть.
func (l Lookups) Label(key, value string) string {
	for _, o := range l[key] {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}

// LabelID - то же для необязательного идентификатора.
func (l Lookups) LabelID(key string, id *uint64) string {
	if id == nil {
		return "—"
	}
	return l.Label(key, fmt.Sprint(*id))
}

type Column[E any] struct {
	Title string
	Sort  string
	Value func(E, Lookups) string
}

type HeaderCell struct {
	Title   string
	SortURL string
	Sorted  string
}

type Link struct {
	Title  string
	URL    string
	Danger bool
}

type TableRow struct {
	ID    uint64
	Cells []string
	Links []Link
}

// FilterSpec описывает фильтр списка; Lookup — имя источника вариантов.
type FilterSpec struct {
	Name    string
	Label   string
	Type    string
	Lookup  string
	Options []types.Option
}

type FilterField struct {
	Name    string
	Label   string
	Type    string
	Options []types.Option
	Value   string
}

type PageLink struct {
	Number  int
	URL     string
	Current bool
}

type ListView struct {
	Title      string
	BasePath   string
	CreateURL  string
	ExportURL  string
	Search     bool
	Notice     string
	Headers    []HeaderCell
	Rows       []TableRow
	Filters    []FilterField
	Params     utils.ListParams
	Paginator  utils.Paginator
	PageLinks  []PageLink
	PrevURL    string
	NextURL    string
	HasActions bool
}

type FormField struct {
	Name     string
	Label    string
	Type     string
	Value    string
	Checked  bool
	Options  []types.Option
	Required bool
	Help     string
	Error    string
}

type FormView struct {
	Title     string
	Action    string
	CancelURL string
	Return    string
	Submit    string
	Fields    []FormField
	Error     string
}

type ConfirmView struct {
	Title     string
	Message   string
	Action    string
	CancelURL string
	Return    string
}

func buildHeaders[E any](columns []Column[E], params utils.ListParams, basePath string) []HeaderCell {
	out := make([]HeaderCell, 0, len(columns))
	for _, col := range columns {
		h := HeaderCell{Title: col.Title}
		if col.Sort != "" {
			h.SortURL = params.WithOrdering(col.Sort).URL(basePath)
			switch params.Ordering {
			case col.Sort:
				h.Sorted = "asc"
			case "-" + col.Sort:
				h.Sorted = "desc"
			}
		}
		out = append(out, h)
	}
	return out
}

func buildCells[E any](columns []Column[E], item E, lookups Lookups) []string {
	cells := make([]string, len(columns))
	for i, col := range columns {
		cells[i] = col.Value(item, lookups)
	}
	return cells
}

func buildFilters(specs []FilterSpec, params utils.ListParams, lookups Lookups) []FilterField {
	out := make([]FilterField, 0, len(specs))
	for _, s := range specs {
		f := FilterField{Name: s.Name, Label: s.Label, Type: s.Type, Options: s.Options, Value: params.Filter(s.Name)}
		if s.Lookup != "" {
			f.Options = lookups[s.Lookup]
		}
		out = append(out, f)
	}
	return out
}

// fillPagination добавляет ссылки пагинатора; адреса строятся из состояния списка.
func fillPagination(v *ListView) {
	p := v.Paginator
	for _, n := range p.Pages {
		v.PageLinks = append(v.PageLinks, PageLink{Number: n, URL: v.Params.WithPage(n).URL(v.BasePath), Current: n == p.Page})
	}
	if p.HasPrev {
		v.PrevURL = v.Params.WithPage(p.PrevPage).URL(v.BasePath)
	}
	if p.HasNext {
		v.NextURL = v.Params.WithPage(p.NextPage).URL(v.BasePath)
	}
}

// returnQuery - состояние списка, к которому вернуться после формы.
// Берём только query-часть, поэтому уйти за пределы раздела нельзя.
func returnQuery(raw string) string {
	values, err := url.ParseQuery(raw)
	if err != nil {
		return ""
	}
	return values.Encode()
}

func withQuery(path, query string) string {
	if query == "" {
		return path
	}
	return path + "?" + query
}

func withReturn(path, query string) string {
	if query == "" {
		return path
	}
	return path + "?return=" + url.QueryEscape(query)
}
