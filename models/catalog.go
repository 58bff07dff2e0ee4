package models

// CatalogItemType discriminates the two catalog variants explicitly.
type CatalogItemType string

const (
	CatalogMenu    CatalogItemType = "menu"
	CatalogService CatalogItemType = "service"
)

// CatalogItem is the shared read surface over MenuItem and Service. The
// variant is carried in Type; DurationMinutes is meaningful for the
// service variant only.
type CatalogItem struct {
	Type            CatalogItemType `json:"type"`
	ID              uint            `json:"id"`
	BuildingID      *uint           `json:"building_id,omitempty"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	Price           float64         `json:"price"`
	Category        string          `json:"category"`
	IsAvailable     bool            `json:"is_available"`
	DurationMinutes int             `json:"duration_minutes,omitempty"`
}

func (m MenuItem) Catalog() CatalogItem {
	return CatalogItem{
		Type:        CatalogMenu,
		ID:          m.ID,
		BuildingID:  m.BuildingID,
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		Category:    m.Category,
		IsAvailable: m.IsAvailable,
	}
}

func (s Service) Catalog() CatalogItem {
	return CatalogItem{
		Type:            CatalogService,
		ID:              s.ID,
		BuildingID:      s.BuildingID,
		Name:            s.Name,
		Description:     s.Description,
		Price:           s.Price,
		Category:        s.Category,
		IsAvailable:     s.IsAvailable,
		DurationMinutes: s.DurationMinutes,
	}
}
