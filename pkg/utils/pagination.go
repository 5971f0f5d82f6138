package utils

const pageWindow = 7

type Paginator struct {
	Count      int
	Page       int
	PageSize   int
	TotalPages int
	HasPrev    bool
	HasNext    bool
	PrevPage   int
	NextPage   int
	Pages      []int
	From       int
	To         int
}

func NewPaginator(count int, params ListParams) Paginator {
	size := params.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	total := (count + size - 1) / size
	if total < 1 {
		total = 1
	}
	page := params.Page
	if page < 1 {
		page = 1
	}

	p := Paginator{
		Count:      count,
		Page:       page,
		PageSize:   size,
		TotalPages: total,
		HasPrev:    page > 1,
		HasNext:    page < total,
		PrevPage:   page - 1,
		NextPage:   page + 1,
	}

	if count > 0 && page <= total {
		p.From = (page-1)*size + 1
		p.To = p.From + size - 1
		if p.To > count {
			p.To = count
		}
	}

	start, end := 1, total
	if total > pageWindow {
		start = page - pageWindow/2
		if start < 1 {
			start = 1
		}
		if start > total-pageWindow+1 {
			start = total - pageWindow + 1
		}
		end = start + pageWindow - 1
	}
	for i := start; i <= end; i++ {
		p.Pages = append(p.Pages, i)
	}
	return p
}

// OutOfRange - страница за пределами списка, например после удаления последней записи.
func (p Paginator) OutOfRange() bool {
	return p.Count > 0 && p.Page > p.TotalPages
}
