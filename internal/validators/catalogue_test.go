package validators

import (
	"testing"

	"github.com/reportgate/backend/internal/models"
)

func TestCatalogueReference_DiscontinuedReportedOnce(t *testing.T) {
	in := cleanInput()
	in.Report.Recommendations.Services = append(in.Report.Recommendations.Services,
		models.RecommendedService{ServiceID: "svc-legacy", Name: "Legacy Website Audit", Price: 200})
	in.Report.Sections.JourneyMap.Phases[1].Tasks[0].ServiceID = "svc-legacy"
	in.Report.Recommendations.Package = &models.Package{Name: "Bundle", Price: 600, ServiceIDs: []string{"svc-ordering", "svc-legacy"}}

	res := NewCatalogueReference().Validate(in)
	if len(res.Errors) != 1 {
		t.Fatalf("expected exactly one error, got %v", res.Errors)
	}
	if res.Errors[0] != `Service "svc-legacy" is discontinued and cannot be recommended` {
		t.Errorf("unexpected error: %q", res.Errors[0])
	}
}

func TestCatalogueReference_UnknownID(t *testing.T) {
	in := cleanInput()
	in.Report.Sections.NextStep.SupportedPath.ServiceID = "svc-ghost"

	res := NewCatalogueReference().Validate(in)
	if len(res.Errors) != 1 || res.Errors[0] != `Unknown service_id "svc-ghost" referenced in next_step.supported_path` {
		t.Errorf("unexpected errors: %v", res.Errors)
	}
}

func TestCatalogueReference_StaleNameAndPrice(t *testing.T) {
	in := cleanInput()
	in.Report.Recommendations.Services[0].Name = "Ordering Website"
	in.Report.Recommendations.Services[0].Price = 399

	res := NewCatalogueReference().Validate(in)
	if !res.Valid {
		t.Fatalf("stale copy is a warning, got errors %v", res.Errors)
	}
	if len(res.Warnings) != 2 {
		t.Errorf("expected name and price warnings, got %v", res.Warnings)
	}
}

func TestCatalogueReference_EmptyCatalogue(t *testing.T) {
	in := cleanInput()
	in.Catalogue = nil

	res := NewCatalogueReference().Validate(in)
	if len(res.Errors) != 1 {
		t.Errorf("expected one unknown-id error, got %v", res.Errors)
	}
}
