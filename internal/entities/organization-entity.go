package entities

type Organization struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
	TaxID     string `json:"tax_id"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	IsActive  bool   `json:"is_active"`
}

func (o Organization) GetID() uint64 { return o.ID }

func (o Organization) DisplayName() string {
	if o.ShortName != "" {
		return o.ShortName
	}
	return o.Name
}
