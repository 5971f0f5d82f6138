package entities

type Classificator struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	Code        string  `json:"code"`
	Parent      *uint64 `json:"parent"`
	Description string  `json:"description"`
	IsActive    bool    `json:"is_active"`
}

func (c Classificator) GetID() uint64       { return c.ID }
func (c Classificator) DisplayName() string { return c.Name }
