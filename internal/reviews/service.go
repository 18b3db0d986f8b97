package reviews

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/reportgate/backend/internal/confidence"
	"github.com/reportgate/backend/internal/logger"
	"github.com/reportgate/backend/internal/models"
	"github.com/reportgate/backend/internal/report"
	"golang.org/x/sync/errgroup"
)

const (
	defaultQueueLimit = 20
	maxQueueLimit     = 100
)

// Repository is the persistence the service needs. *Store implements it.
type Repository interface {
	SaveSubmission(ctx context.Context, sub *models.Submission) error
	GetSubmission(ctx context.Context, id string) (*models.Submission, error)
	UpsertService(ctx context.Context, svc models.CatalogueService) error
	ListCatalogue(ctx context.Context) (models.Catalogue, error)
	CreateReportEvaluation(ctx context.Context, submissionID string, doc *models.Report, ev *models.Evaluation, status models.ReportStatus) (*models.StoredReport, error)
	GetReport(ctx context.Context, id int64) (*models.StoredReport, error)
	RecordEvaluation(ctx context.Context, ev *models.Evaluation, status models.ReportStatus) error
	GetEvaluation(ctx context.Context, id string) (*models.Evaluation, error)
	LatestEvaluation(ctx context.Context, reportID int64) (*models.Evaluation, error)
	OpenReviews(ctx context.Context, limit, offset int) ([]models.Evaluation, error)
	ResolveReview(ctx context.Context, ev *models.Evaluation, status models.ReviewStatus, reviewerID int64, note string, reportStatus models.ReportStatus, at time.Time) error
}

// Service evaluates stored reports and routes them to publication or the
// human review queue.
type Service struct {
	repo      Repository
	engine    *confidence.Engine
	threshold int
	log       *logger.Logger
	now       func() time.Time
}

func NewService(repo Repository, engine *confidence.Engine, threshold int, log *logger.Logger) *Service {
	return &Service{
		repo:      repo,
		engine:    engine,
		threshold: threshold,
		log:       log,
		now:       time.Now,
	}
}

// Route decides where an evaluated report goes: straight to publication
// only when the engine auto-approves it and the score clears the
// deployment's threshold.
func Route(res models.ConfidenceResult, threshold int) models.Decision {
	if res.AutoApprove && res.Score >= threshold {
		return models.DecisionPublish
	}
	return models.DecisionReview
}

// ── Intake ──────────────────────────────────────────────

func (s *Service) SaveSubmission(ctx context.Context, sub *models.Submission) error {
	if sub.ID == "" {
		return &report.DecodeError{Errors: []string{"submission id is required"}}
	}
	if !models.ValidPersonas[sub.Persona] {
		return &report.DecodeError{Errors: []string{fmt.Sprintf("invalid persona %q (expected A, B or C)", sub.Persona)}}
	}
	return s.repo.SaveSubmission(ctx, sub)
}

func (s *Service) UpsertService(ctx context.Context, svc models.CatalogueService) error {
	var errs []string
	if svc.ID == "" {
		errs = append(errs, "service id is required")
	}
	if svc.Name == "" {
		errs = append(errs, "service name is required")
	}
	if svc.Status == "" {
		svc.Status = models.ServiceActive
	}
	if svc.Status != models.ServiceActive && svc.Status != models.ServiceDiscontinued {
		errs = append(errs, fmt.Sprintf("invalid status %q", svc.Status))
	}
	if len(errs) > 0 {
		return &report.DecodeError{Errors: errs}
	}
	return s.repo.UpsertService(ctx, svc)
}

// ── Evaluation ──────────────────────────────────────────

// SubmitReport decodes raw generator output for a stored submission,
// evaluates it, and stores the report with its evaluation. Nothing is
// written unless every step succeeds.
func (s *Service) SubmitReport(ctx context.Context, submissionID, raw string) (*models.Evaluation, error) {
	doc, err := report.Decode(raw)
	if err != nil {
		return nil, err
	}

	sub, cat, err := s.inputs(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	ev, status := s.score(doc, sub, cat)
	ev.SubmissionID = submissionID
	if _, err := s.repo.CreateReportEvaluation(ctx, submissionID, doc, ev, status); err != nil {
		return nil, err
	}
	s.logEvaluation(ev)
	return ev, nil
}

// Reevaluate scores a stored report again, typically after a catalogue or
// rules change.
func (s *Service) Reevaluate(ctx context.Context, reportID int64) (*models.Evaluation, error) {
	stored, err := s.repo.GetReport(ctx, reportID)
	if err != nil {
		return nil, err
	}
	sub, cat, err := s.inputs(ctx, stored.SubmissionID)
	if err != nil {
		return nil, err
	}

	ev, status := s.score(&stored.Document, sub, cat)
	ev.ReportID = stored.ID
	ev.SubmissionID = stored.SubmissionID
	if err := s.repo.RecordEvaluation(ctx, ev, status); err != nil {
		return nil, err
	}
	s.logEvaluation(ev)
	return ev, nil
}

// inputs loads the submission and the whole catalogue. Discontinued
// services are included so references to them are reported as such.
func (s *Service) inputs(ctx context.Context, submissionID string) (*models.Submission, models.Catalogue, error) {
	var sub *models.Submission
	var cat models.Catalogue

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sub, err = s.repo.GetSubmission(gctx, submissionID)
		return err
	})
	g.Go(func() error {
		var err error
		cat, err = s.repo.ListCatalogue(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return sub, cat, nil
}

// score runs the engine and builds the evaluation and the report status it
// implies. It does not touch storage.
func (s *Service) score(doc *models.Report, sub *models.Submission, cat models.Catalogue) (*models.Evaluation, models.ReportStatus) {
	res := s.engine.Evaluate(doc, sub, cat)
	decision := Route(res, s.threshold)

	ev := &models.Evaluation{
		ID:           uuid.NewString(),
		Score:        res.Score,
		AutoApprove:  res.AutoApprove,
		Flags:        res.Flags,
		Decision:     decision,
		ReviewStatus: models.ReviewNone,
	}
	status := models.ReportPublished
	if decision == models.DecisionReview {
		ev.ReviewStatus = models.ReviewOpen
		status = models.ReportInReview
	}
	return ev, status
}

func (s *Service) logEvaluation(ev *models.Evaluation) {
	s.log.Info("report evaluated",
		"report_id", ev.ReportID,
		"submission_id", ev.SubmissionID,
		"evaluation_id", ev.ID,
		"score", ev.Score,
		"auto_approve", ev.AutoApprove,
		"flag_count", len(ev.Flags),
		"decision", ev.Decision,
	)
}

// Evaluation returns the latest evaluation of a report.
func (s *Service) Evaluation(ctx context.Context, reportID int64) (*models.Evaluation, error) {
	return s.repo.LatestEvaluation(ctx, reportID)
}

// Assess runs the engine on a posted triple without touching storage.
func (s *Service) Assess(doc *models.Report, sub *models.Submission, cat models.Catalogue) (confidence.Assessment, models.Decision) {
	a := s.engine.Assess(doc, sub, cat)
	return a, Route(a.Result, s.threshold)
}

// ── Review queue ────────────────────────────────────────

func (s *Service) ReviewQueue(ctx context.Context, limit, offset int) ([]models.Evaluation, error) {
	if limit <= 0 {
		limit = defaultQueueLimit
	}
	if limit > maxQueueLimit {
		limit = maxQueueLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.OpenReviews(ctx, limit, offset)
}

// Resolve records a reviewer's decision on an open review. Approval
// publishes the report; rejection marks it rejected.
func (s *Service) Resolve(ctx context.Context, evaluationID string, reviewerID int64, approve bool, note string) (*models.Evaluation, error) {
	ev, err := s.repo.GetEvaluation(ctx, evaluationID)
	if err != nil {
		return nil, err
	}
	if ev.ReviewStatus != models.ReviewOpen {
		return nil, ErrNotReviewable
	}

	status, reportStatus := models.ReviewRejected, models.ReportRejected
	if approve {
		status, reportStatus = models.ReviewApproved, models.ReportPublished
	}

	at := s.now()
	if err := s.repo.ResolveReview(ctx, ev, status, reviewerID, note, reportStatus, at); err != nil {
		if errors.Is(err, ErrNotReviewable) {
			return nil, err
		}
		return nil, fmt.Errorf("resolve evaluation %s: %w", evaluationID, err)
	}

	ev.ReviewStatus = status
	ev.ReviewedBy = &reviewerID
	ev.ReviewedAt = &at
	if note != "" {
		ev.ReviewNote = &note
	}

	s.log.Info("review resolved",
		"evaluation_id", ev.ID,
		"report_id", ev.ReportID,
		"reviewer_id", reviewerID,
		"review_status", status,
	)
	return ev, nil
}
