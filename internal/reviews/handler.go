package reviews

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/reportgate/backend/internal/confidence"
	"github.com/reportgate/backend/internal/logger"
	"github.com/reportgate/backend/internal/middleware"
	"github.com/reportgate/backend/internal/models"
	"github.com/reportgate/backend/internal/report"
	"github.com/spf13/cast"
)

type Handler struct {
	service *Service
	log     *logger.Logger
}

func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{service: service, log: log}
}

type evaluateResponse struct {
	confidence.Assessment
	Decision models.Decision `json:"decision"`
}

type decodeErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details"`
}

// Evaluate scores a posted report/submission/catalogue triple without
// storing anything.
func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req models.EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	raw, err := rawDocument(req.Report)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "report must be a JSON object or string"})
		return
	}
	doc, err := report.Decode(raw)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if req.Submission.Answers == nil {
		req.Submission.Answers = map[string]models.Answer{}
	}

	a, decision := h.service.Assess(doc, &req.Submission, req.Catalogue)
	writeJSON(w, http.StatusOK, evaluateResponse{Assessment: a, Decision: decision})
}

func (h *Handler) SaveSubmission(w http.ResponseWriter, r *http.Request) {
	var sub models.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if sub.Answers == nil {
		sub.Answers = map[string]models.Answer{}
	}
	if err := h.service.SaveSubmission(r.Context(), &sub); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sub)
}

func (h *Handler) UpsertService(w http.ResponseWriter, r *http.Request) {
	var svc models.CatalogueService
	if err := json.NewDecoder(r.Body).Decode(&svc); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	svc.ID = mux.Vars(r)["id"]
	if err := h.service.UpsertService(r.Context(), svc); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, svc)
}

func (h *Handler) SubmitReport(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.SubmissionID == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "submission_id is required"})
		return
	}
	raw, err := rawDocument(req.Document)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "document must be a JSON object or string"})
		return
	}

	ev, err := h.service.SubmitReport(r.Context(), req.SubmissionID, raw)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ev)
}

func (h *Handler) Reevaluate(w http.ResponseWriter, r *http.Request) {
	id, ok := reportID(w, r)
	if !ok {
		return
	}
	ev, err := h.service.Reevaluate(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ev)
}

func (h *Handler) GetEvaluation(w http.ResponseWriter, r *http.Request) {
	id, ok := reportID(w, r)
	if !ok {
		return
	}
	ev, err := h.service.Evaluation(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

func (h *Handler) ReviewQueue(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit := cast.ToInt(query.Get("limit"))
	offset := cast.ToInt(query.Get("offset"))

	evals, err := h.service.ReviewQueue(r.Context(), limit, offset)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, evals)
}

func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, true)
}

func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, false)
}

func (h *Handler) resolve(w http.ResponseWriter, r *http.Request, approve bool) {
	reviewerID, ok := middleware.UserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req models.ResolveReviewRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
			return
		}
	}

	ev, err := h.service.Resolve(r.Context(), mux.Vars(r)["id"], reviewerID, approve, req.Note)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

// rawDocument accepts a report either as a JSON object or as a string of
// raw generator output (possibly fenced).
func rawDocument(msg json.RawMessage) (string, error) {
	if len(msg) == 0 {
		return "", nil
	}
	if msg[0] == '"' {
		var s string
		if err := json.Unmarshal(msg, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	return string(msg), nil
}

func reportID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid report ID"})
		return 0, false
	}
	return id, true
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var de *report.DecodeError
	switch {
	case errors.As(err, &de):
		writeJSON(w, http.StatusUnprocessableEntity, decodeErrorResponse{Error: "Invalid document", Details: de.Errors})
	case errors.Is(err, ErrNotFound):
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ErrNotReviewable):
		writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: err.Error()})
	default:
		h.log.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
