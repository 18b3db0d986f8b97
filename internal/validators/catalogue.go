package validators

import (
	"fmt"
	"math"
	"strings"

	"github.com/reportgate/backend/internal/models"
)

// CatalogueReferenceValidator checks every service id in the report against
// the catalogue. Unknown or discontinued ids are errors; stale names or prices
// are warnings.
type CatalogueReferenceValidator struct{}

func NewCatalogueReference() *CatalogueReferenceValidator {
	return &CatalogueReferenceValidator{}
}

func (v *CatalogueReferenceValidator) Name() string { return "catalogue_reference" }

type serviceRef struct {
	id       string
	location string
}

func (v *CatalogueReferenceValidator) Validate(in Input) models.ValidationResult {
	var f findings
	r := in.Report
	if r == nil {
		return f.result()
	}

	seen := make(map[string]bool)
	for _, ref := range referencedServices(r) {
		if seen[ref.id] {
			continue
		}
		seen[ref.id] = true

		entry, ok := in.Catalogue.Lookup(ref.id)
		switch {
		case !ok:
			f.errorf("Unknown service_id %q referenced in %s", ref.id, ref.location)
		case entry.Status != models.ServiceActive:
			f.errorf("Service %q is %s and cannot be recommended", ref.id, entry.Status)
		}
	}

	for _, svc := range r.Recommendations.Services {
		entry, ok := in.Catalogue.Lookup(strings.TrimSpace(svc.ServiceID))
		if !ok {
			continue
		}
		if svc.Name != "" && !strings.EqualFold(strings.TrimSpace(svc.Name), strings.TrimSpace(entry.Name)) {
			f.warnf("Service %q name %q differs from catalogue name %q", svc.ServiceID, svc.Name, entry.Name)
		}
		if math.Abs(svc.Price-entry.Price) > 0.01 {
			f.warnf("Service %q price %s differs from catalogue price %s", svc.ServiceID, formatNumber(svc.Price), formatNumber(entry.Price))
		}
	}

	return f.result()
}

// referencedServices lists every service id the report mentions, in document order.
func referencedServices(r *models.Report) []serviceRef {
	var refs []serviceRef
	add := func(id, location string) {
		if id = strings.TrimSpace(id); id != "" {
			refs = append(refs, serviceRef{id: id, location: location})
		}
	}
	for i, svc := range r.Recommendations.Services {
		add(svc.ServiceID, fmt.Sprintf("recommendations.services[%d]", i))
	}
	if pkg := r.Recommendations.Package; pkg != nil {
		for _, id := range pkg.ServiceIDs {
			add(id, "recommendations.package")
		}
	}
	if sp := r.Sections.NextStep.SupportedPath; sp != nil {
		add(sp.ServiceID, "next_step.supported_path")
	}
	for _, p := range r.Sections.JourneyMap.Phases {
		for _, t := range p.Tasks {
			add(t.ServiceID, fmt.Sprintf("journey_map phase %d", p.Number))
		}
	}
	return refs
}
