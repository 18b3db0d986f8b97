package reviews

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/reportgate/backend/internal/models"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrNotReviewable = errors.New("evaluation is not awaiting review")
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ── Submissions ─────────────────────────────────────────

func (s *Store) SaveSubmission(ctx context.Context, sub *models.Submission) error {
	answers, err := json.Marshal(sub.Answers)
	if err != nil {
		return fmt.Errorf("encode answers: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO submissions (id, persona, email, answers)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE SET persona = EXCLUDED.persona, email = EXCLUDED.email, answers = EXCLUDED.answers`,
		sub.ID, sub.Persona, sub.Email, answers,
	)
	if err != nil {
		return fmt.Errorf("save submission: %w", err)
	}
	return nil
}

func (s *Store) GetSubmission(ctx context.Context, id string) (*models.Submission, error) {
	var sub models.Submission
	var answers []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT id, persona, email, answers, created_at FROM submissions WHERE id = $1`, id,
	).Scan(&sub.ID, &sub.Persona, &sub.Email, &answers, &sub.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("submission %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get submission: %w", err)
	}
	if err := json.Unmarshal(answers, &sub.Answers); err != nil {
		return nil, fmt.Errorf("decode answers for submission %s: %w", id, err)
	}
	return &sub, nil
}

// ── Catalogue ───────────────────────────────────────────

func (s *Store) UpsertService(ctx context.Context, svc models.CatalogueService) error {
	personas := make([]string, len(svc.ApplicablePersonas))
	for i, p := range svc.ApplicablePersonas {
		personas[i] = string(p)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO catalogue_services (id, name, price, category, status, applicable_personas, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, NOW())
		 ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, price = EXCLUDED.price,
		     category = EXCLUDED.category, status = EXCLUDED.status,
		     applicable_personas = EXCLUDED.applicable_personas, updated_at = NOW()`,
		svc.ID, svc.Name, svc.Price, svc.Category, svc.Status, pq.Array(personas),
	)
	if err != nil {
		return fmt.Errorf("upsert service %s: %w", svc.ID, err)
	}
	return nil
}

// ListCatalogue returns every service, discontinued ones included.
func (s *Store) ListCatalogue(ctx context.Context) (models.Catalogue, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, price, category, status, applicable_personas FROM catalogue_services ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list catalogue: %w", err)
	}
	defer rows.Close()

	var cat models.Catalogue
	for rows.Next() {
		var svc models.CatalogueService
		var personas []string
		if err := rows.Scan(&svc.ID, &svc.Name, &svc.Price, &svc.Category, &svc.Status, pq.Array(&personas)); err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		for _, p := range personas {
			svc.ApplicablePersonas = append(svc.ApplicablePersonas, models.Persona(p))
		}
		cat = append(cat, svc)
	}
	return cat, rows.Err()
}

// ── Reports ─────────────────────────────────────────────

// CreateReportEvaluation stores a new report together with its first
// evaluation. The report is written with its routed status, so a report is
// never visible without the evaluation that placed it.
func (s *Store) CreateReportEvaluation(ctx context.Context, submissionID string, doc *models.Report, ev *models.Evaluation, status models.ReportStatus) (*models.StoredReport, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stored := models.StoredReport{Document: *doc}
	err = tx.QueryRowContext(ctx,
		`INSERT INTO reports (submission_id, document, status)
		 VALUES ($1, $2, $3)
		 RETURNING id, submission_id, status, created_at`,
		submissionID, body, status,
	).Scan(&stored.ID, &stored.SubmissionID, &stored.Status, &stored.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create report: %w", err)
	}

	ev.ReportID = stored.ID
	if err := insertEvaluation(ctx, tx, ev); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit report: %w", err)
	}
	return &stored, nil
}

func (s *Store) GetReport(ctx context.Context, id int64) (*models.StoredReport, error) {
	var stored models.StoredReport
	var body []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT id, submission_id, document, status, created_at FROM reports WHERE id = $1`, id,
	).Scan(&stored.ID, &stored.SubmissionID, &body, &stored.Status, &stored.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("report %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get report: %w", err)
	}
	if err := json.Unmarshal(body, &stored.Document); err != nil {
		return nil, fmt.Errorf("decode report %d: %w", id, err)
	}
	return &stored, nil
}

// ── Evaluations ─────────────────────────────────────────

const evaluationColumns = `id, report_id, submission_id, score, auto_approve, flags, decision,
	review_status, reviewed_by, review_note, reviewed_at, created_at`

// RecordEvaluation adds an evaluation of an existing report and moves the
// report to status in one transaction.
func (s *Store) RecordEvaluation(ctx context.Context, ev *models.Evaluation, status models.ReportStatus) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := insertEvaluation(ctx, tx, ev); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `UPDATE reports SET status = $1 WHERE id = $2`, status, ev.ReportID)
	if err != nil {
		return fmt.Errorf("set report status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("report %d: %w", ev.ReportID, ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit evaluation: %w", err)
	}
	return nil
}

func insertEvaluation(ctx context.Context, tx *sql.Tx, ev *models.Evaluation) error {
	err := tx.QueryRowContext(ctx,
		`INSERT INTO evaluations (id, report_id, submission_id, score, auto_approve, flags, decision, review_status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING created_at`,
		ev.ID, ev.ReportID, ev.SubmissionID, ev.Score, ev.AutoApprove, pq.Array(ev.Flags), ev.Decision, ev.ReviewStatus,
	).Scan(&ev.CreatedAt)
	if err != nil {
		return fmt.Errorf("create evaluation: %w", err)
	}
	return nil
}

func (s *Store) GetEvaluation(ctx context.Context, id string) (*models.Evaluation, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+evaluationColumns+` FROM evaluations WHERE id = $1`, id)
	ev, err := scanEvaluation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("evaluation %s: %w", id, ErrNotFound)
	}
	return ev, err
}

// LatestEvaluation returns the most recent evaluation of a report.
func (s *Store) LatestEvaluation(ctx context.Context, reportID int64) (*models.Evaluation, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+evaluationColumns+` FROM evaluations WHERE report_id = $1 ORDER BY created_at DESC LIMIT 1`, reportID)
	ev, err := scanEvaluation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("evaluation for report %d: %w", reportID, ErrNotFound)
	}
	return ev, err
}

// OpenReviews lists evaluations awaiting a reviewer, oldest first.
func (s *Store) OpenReviews(ctx context.Context, limit, offset int) ([]models.Evaluation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+evaluationColumns+` FROM evaluations
		 WHERE review_status = $1
		 ORDER BY created_at ASC
		 LIMIT $2 OFFSET $3`,
		models.ReviewOpen, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list open reviews: %w", err)
	}
	defer rows.Close()

	evals := []models.Evaluation{}
	for rows.Next() {
		ev, err := scanEvaluation(rows)
		if err != nil {
			return nil, err
		}
		evals = append(evals, *ev)
	}
	return evals, rows.Err()
}

// ResolveReview closes an open review and moves its report to reportStatus
// in one transaction. It fails with ErrNotReviewable if the review is no
// longer open.
func (s *Store) ResolveReview(ctx context.Context, ev *models.Evaluation, status models.ReviewStatus, reviewerID int64, note string, reportStatus models.ReportStatus, at time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var notePtr *string
	if note != "" {
		notePtr = &note
	}
	res, err := tx.ExecContext(ctx,
		`UPDATE evaluations
		 SET review_status = $1, reviewed_by = $2, review_note = $3, reviewed_at = $4
		 WHERE id = $5 AND review_status = $6`,
		status, reviewerID, notePtr, at, ev.ID, models.ReviewOpen,
	)
	if err != nil {
		return fmt.Errorf("resolve review: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotReviewable
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE reports SET status = $1 WHERE id = $2`, reportStatus, ev.ReportID,
	); err != nil {
		return fmt.Errorf("update report status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit review: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEvaluation(row scanner) (*models.Evaluation, error) {
	var ev models.Evaluation
	var flags []string
	var reviewedBy sql.NullInt64
	var note sql.NullString
	var reviewedAt sql.NullTime
	err := row.Scan(&ev.ID, &ev.ReportID, &ev.SubmissionID, &ev.Score, &ev.AutoApprove, pq.Array(&flags),
		&ev.Decision, &ev.ReviewStatus, &reviewedBy, &note, &reviewedAt, &ev.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan evaluation: %w", err)
	}
	ev.Flags = flags
	if ev.Flags == nil {
		ev.Flags = []string{}
	}
	if reviewedBy.Valid {
		ev.ReviewedBy = &reviewedBy.Int64
	}
	if note.Valid {
		ev.ReviewNote = &note.String
	}
	if reviewedAt.Valid {
		ev.ReviewedAt = &reviewedAt.Time
	}
	return &ev, nil
}
