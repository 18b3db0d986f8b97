package reviews

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/reportgate/backend/internal/confidence"
	"github.com/reportgate/backend/internal/logger"
	"github.com/reportgate/backend/internal/models"
	"github.com/reportgate/backend/internal/report"
	"github.com/reportgate/backend/internal/rules"
)

// memRepo is an in-memory Repository.
type memRepo struct {
	mu          sync.Mutex
	submissions map[string]*models.Submission
	catalogue   map[string]models.CatalogueService
	reports     map[int64]*models.StoredReport
	evaluations map[string]*models.Evaluation
	order       []string
	nextReport  int64

	// set to make the matching call fail
	catalogueErr error
	writeErr     error
}

func newMemRepo() *memRepo {
	return &memRepo{
		submissions: map[string]*models.Submission{},
		catalogue:   map[string]models.CatalogueService{},
		reports:     map[int64]*models.StoredReport{},
		evaluations: map[string]*models.Evaluation{},
	}
}

func (m *memRepo) SaveSubmission(_ context.Context, sub *models.Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submissions[sub.ID] = sub
	return nil
}

func (m *memRepo) GetSubmission(_ context.Context, id string) (*models.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sub, ok := m.submissions[id]
	if !ok {
		return nil, fmt.Errorf("submission %s: %w", id, ErrNotFound)
	}
	return sub, nil
}

func (m *memRepo) UpsertService(_ context.Context, svc models.CatalogueService) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.catalogue[svc.ID] = svc
	return nil
}

func (m *memRepo) ListCatalogue(context.Context) (models.Catalogue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.catalogueErr != nil {
		return nil, m.catalogueErr
	}
	var cat models.Catalogue
	for _, svc := range m.catalogue {
		cat = append(cat, svc)
	}
	sort.Slice(cat, func(i, j int) bool { return cat[i].ID < cat[j].ID })
	return cat, nil
}

func (m *memRepo) CreateReportEvaluation(_ context.Context, submissionID string, doc *models.Report, ev *models.Evaluation, status models.ReportStatus) (*models.StoredReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeErr != nil {
		return nil, m.writeErr
	}
	m.nextReport++
	stored := &models.StoredReport{ID: m.nextReport, SubmissionID: submissionID, Document: *doc, Status: status, CreatedAt: time.Now()}
	m.reports[stored.ID] = stored
	ev.ReportID = stored.ID
	m.addEvaluation(ev)
	cp := *stored
	return &cp, nil
}

func (m *memRepo) GetReport(_ context.Context, id int64) (*models.StoredReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reports[id]
	if !ok {
		return nil, fmt.Errorf("report %d: %w", id, ErrNotFound)
	}
	return r, nil
}

func (m *memRepo) RecordEvaluation(_ context.Context, ev *models.Evaluation, status models.ReportStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeErr != nil {
		return m.writeErr
	}
	r, ok := m.reports[ev.ReportID]
	if !ok {
		return fmt.Errorf("report %d: %w", ev.ReportID, ErrNotFound)
	}
	r.Status = status
	m.addEvaluation(ev)
	return nil
}

func (m *memRepo) addEvaluation(ev *models.Evaluation) {
	ev.CreatedAt = time.Now()
	cp := *ev
	m.evaluations[ev.ID] = &cp
	m.order = append(m.order, ev.ID)
}

func (m *memRepo) GetEvaluation(_ context.Context, id string) (*models.Evaluation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ev, ok := m.evaluations[id]
	if !ok {
		return nil, fmt.Errorf("evaluation %s: %w", id, ErrNotFound)
	}
	cp := *ev
	return &cp, nil
}

func (m *memRepo) LatestEvaluation(_ context.Context, reportID int64) (*models.Evaluation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.order) - 1; i >= 0; i-- {
		if ev := m.evaluations[m.order[i]]; ev.ReportID == reportID {
			cp := *ev
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("evaluation for report %d: %w", reportID, ErrNotFound)
}

func (m *memRepo) OpenReviews(_ context.Context, limit, offset int) ([]models.Evaluation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Evaluation{}
	skipped := 0
	for _, id := range m.order {
		ev := m.evaluations[id]
		if ev.ReviewStatus != models.ReviewOpen {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		if len(out) == limit {
			break
		}
		out = append(out, *ev)
	}
	return out, nil
}

func (m *memRepo) ResolveReview(_ context.Context, ev *models.Evaluation, status models.ReviewStatus, reviewerID int64, note string, reportStatus models.ReportStatus, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := m.evaluations[ev.ID]
	if stored.ReviewStatus != models.ReviewOpen {
		return ErrNotReviewable
	}
	stored.ReviewStatus = status
	stored.ReviewedBy = &reviewerID
	stored.ReviewedAt = &at
	if note != "" {
		stored.ReviewNote = &note
	}
	m.reports[ev.ReportID].Status = reportStatus
	return nil
}

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "confidence", "testdata", name))
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	return data
}

// seededService returns a service over a repo holding the fixture submission
// and catalogue.
func seededService(t *testing.T) (*Service, *memRepo) {
	t.Helper()
	repo := newMemRepo()

	sub, err := report.DecodeSubmission(readFixture(t, "submission.json"))
	if err != nil {
		t.Fatalf("decode submission: %v", err)
	}
	cat, err := report.DecodeCatalogue(readFixture(t, "catalogue.json"))
	if err != nil {
		t.Fatalf("decode catalogue: %v", err)
	}
	repo.submissions[sub.ID] = sub
	for _, svc := range cat {
		repo.catalogue[svc.ID] = svc
	}

	svc := NewService(repo, confidence.NewEngine(rules.MustDefault()), 90, logger.Nop())
	svc.now = func() time.Time { return time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC) }
	return svc, repo
}
