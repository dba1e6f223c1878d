package stock

import "github.com/nbelhadj/maintenance-management/internal"

type ItemDTO struct {
	Reference string `json:"reference"`
	Element   string `json:"element"`
	Quantity  int64  `json:"quantite"`
}

func (d ItemDTO) Validate() error {
	if d.Reference == "" {
		return internal.NewValidationError("la référence est obligatoire", internal.ErrCodeValidationFailed)
	}
	if d.Element == "" {
		return internal.NewValidationError("l'élément est obligatoire", internal.ErrCodeValidationFailed)
	}
	if d.Quantity < 0 {
		return internal.NewValidationError("la quantité ne peut pas être négative", internal.ErrCodeNegativeQuantity)
	}
	return nil
}

func (d ItemDTO) apply(item *Item) {
	item.Reference = d.Reference
	item.Element = d.Element
	item.Quantity = d.Quantity
}
