package entities

type Department struct {
	ID           uint64  `json:"id"`
	Name         string  `json:"name"`
	Organization uint64  `json:"organization"`
	Parent       *uint64 `json:"parent"`
	IsActive     bool    `json:"is_active"`
}

func (d Department) GetID() uint64       { return d.ID }
func (d Department) DisplayName() string { return d.Name }
