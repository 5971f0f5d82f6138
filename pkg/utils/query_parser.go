package utils

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ListOptions задаёт, какие параметры списка страница понимает.
type ListOptions struct {
	DefaultPageSize int
	MaxPageSize     int
	Filters         []string
	Ordering        []string
}

// ListParams - состояние списка, синхронизированное с query-параметрами URL.
// Значения неизменяемы: методы With* возвращают копию.
type ListParams struct {
	Page     int
	PageSize int
	Search   string
	Ordering string
	Filters  map[string]string

	defaultPageSize int
}

func ParseListParams(query url.Values, opts ListOptions) ListParams {
	def := opts.DefaultPageSize
	if def <= 0 {
		def = DefaultPageSize
	}
	maxSize := opts.MaxPageSize
	if maxSize <= 0 {
		maxSize = MaxPageSize
	}
	if def > maxSize {
		def = maxSize
	}

	params := ListParams{
		Page:            1,
		PageSize:        def,
		Filters:         make(map[string]string),
		defaultPageSize: def,
	}

	if p, err := strconv.Atoi(query.Get("page")); err == nil && p > 0 {
		params.Page = p
	}
	if s, err := strconv.Atoi(query.Get("page_size")); err == nil && s > 0 {
		if s > maxSize {
			s = maxSize
		}
		params.PageSize = s
	}
	if params.Page > maxPage(params.PageSize) {
		params.Page = maxPage(params.PageSize)
	}

	params.Search = strings.TrimSpace(query.Get("search"))

	if ordering := query.Get("ordering"); ordering != "" {
		field := strings.TrimPrefix(ordering, "-")
		for _, allowed := range opts.Ordering {
			if field == allowed {
				params.Ordering = ordering
				break
			}
		}
	}

	for _, key := range opts.Filters {
		if value := strings.TrimSpace(query.Get(key)); value != "" {
			params.Filters[key] = value
		}
	}

	return params
}

func (p ListParams) clone() ListParams {
	c := p
	c.Filters = make(map[string]string, len(p.Filters))
	for k, v := range p.Filters {
		c.Filters[k] = v
	}
	return c
}

func (p ListParams) WithPage(page int) ListParams {
	c := p.clone()
	if page < 1 {
		page = 1
	}
	c.Page = page
	return c
}

// WithFilter меняет фильтр и сбрасывает страницу. Пустое значение удаляет фильтр.
func (p ListParams) WithFilter(key, value string) ListParams {
	c := p.clone()
	if value == "" {
		delete(c.Filters, key)
	} else {
		c.Filters[key] = value
	}
	c.Page = 1
	return c
}

func (p ListParams) WithSearch(search string) ListParams {
	c := p.clone()
	c.Search = strings.TrimSpace(search)
	c.Page = 1
	return c
}

// WithOrdering переключает направление, если поле уже выбрано.
func (p ListParams) WithOrdering(field string) ListParams {
	c := p.clone()
	switch p.Ordering {
	case field:
		c.Ordering = "-" + field
	default:
		c.Ordering = field
	}
	c.Page = 1
	return c
}

func (p ListParams) Filter(key string) string {
	return p.Filters[key]
}

// Values - каноническое представление для URL; значения по умолчанию опускаются.
func (p ListParams) Values() url.Values {
	v := url.Values{}
	if p.Page > 1 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 && p.PageSize != p.defaultPageSize {
		v.Set("page_size", strconv.Itoa(p.PageSize))
	}
	if p.Search != "" {
		v.Set("search", p.Search)
	}
	if p.Ordering != "" {
		v.Set("ordering", p.Ordering)
	}
	for k, val := range p.Filters {
		v.Set(k, val)
	}
	return v
}

func (p ListParams) Encode() string {
	return p.Values().Encode()
}

func (p ListParams) URL(path string) string {
	if q := p.Encode(); q != "" {
		return path + "?" + q
	}
	return path
}

func (p ListParams) Offset() int {
	if p.Page < 1 || p.PageSize < 1 {
		return 0
	}
	page := p.Page
	if page > maxPage(p.PageSize) {
		page = maxPage(p.PageSize)
	}
	return (page - 1) * p.PageSize
}

// maxPage - последняя страница, смещение которой ещё помещается в int32.
// Дальше всё равно пусто: такой номер уводит на последнюю страницу списка.
func maxPage(pageSize int) int {
	if pageSize < 1 {
		pageSize = 1
	}
	return math.MaxInt32/pageSize + 1
}

// APIQuery переводит состояние списка в параметры limit/offset удалённого API.
func (p ListParams) APIQuery() url.Values {
	v := url.Values{}
	v.Set("limit", strconv.Itoa(p.PageSize))
	v.Set("offset", strconv.Itoa(p.Offset()))
	if p.Search != "" {
		v.Set("search", p.Search)
	}
	if p.Ordering != "" {
		v.Set("ordering", p.Ordering)
	}
	for k, val := range p.Filters {
		v.Set(k, val)
	}
	return v
}
