package models

type ServiceStatus string

const (
	ServiceActive       ServiceStatus = "active"
	ServiceDiscontinued ServiceStatus = "discontinued"
)

// CatalogueService is one recommendable item in the service catalogue.
type CatalogueService struct {
	ID                 string        `json:"id"`
	Name               string        `json:"name"`
	Price              float64       `json:"price"`
	Category           string        `json:"category"`
	Status             ServiceStatus `json:"status"`
	ApplicablePersonas []Persona     `json:"applicable_personas"`
}

// Catalogue is read-only reference data, loaded once per evaluation.
type Catalogue []CatalogueService

// Lookup finds a service by id.
func (c Catalogue) Lookup(id string) (CatalogueService, bool) {
	for _, svc := range c {
		if svc.ID == id {
			return svc, true
		}
	}
	return CatalogueService{}, false
}
