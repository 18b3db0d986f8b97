package models

import (
	"encoding/json"
	"time"
)

type ReportStatus string

const (
	ReportPending   ReportStatus = "pending"
	ReportPublished ReportStatus = "published"
	ReportInReview  ReportStatus = "in_review"
	ReportRejected  ReportStatus = "rejected"
)

type Decision string

const (
	DecisionPublish Decision = "publish"
	DecisionReview  Decision = "review"
)

type ReviewStatus string

const (
	ReviewOpen     ReviewStatus = "open"
	ReviewApproved ReviewStatus = "approved"
	ReviewRejected ReviewStatus = "rejected"
	ReviewNone     ReviewStatus = "none"
)

// StoredReport is a generated report as persisted alongside its submission.
type StoredReport struct {
	ID           int64        `json:"id"`
	SubmissionID string       `json:"submission_id"`
	Document     Report       `json:"document"`
	Status       ReportStatus `json:"status"`
	CreatedAt    time.Time    `json:"created_at"`
}

// Evaluation is a persisted ConfidenceResult plus its routing and review state.
type Evaluation struct {
	ID           string       `json:"id"`
	ReportID     int64        `json:"report_id"`
	SubmissionID string       `json:"submission_id"`
	Score        int          `json:"score"`
	AutoApprove  bool         `json:"auto_approve"`
	Flags        []string     `json:"flags"`
	Decision     Decision     `json:"decision"`
	ReviewStatus ReviewStatus `json:"review_status"`
	ReviewedBy   *int64       `json:"reviewed_by,omitempty"`
	ReviewNote   *string      `json:"review_note,omitempty"`
	ReviewedAt   *time.Time   `json:"reviewed_at,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}

// SubmitReportRequest carries raw generator output for a stored submission.
type SubmitReportRequest struct {
	SubmissionID string          `json:"submission_id"`
	Document     json.RawMessage `json:"document"`
}

// EvaluateRequest is a stateless evaluation of a full triple.
type EvaluateRequest struct {
	Report     json.RawMessage `json:"report"`
	Submission Submission      `json:"submission"`
	Catalogue  Catalogue       `json:"catalogue"`
}

type ResolveReviewRequest struct {
	Note string `json:"note"`
}
