package auth

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/reportgate/backend/internal/middleware"
	"github.com/reportgate/backend/internal/models"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 72 * time.Hour

// Handler registers and logs in reviewers, the staff who work the review queue.
type Handler struct {
	db     *sql.DB
	secret []byte
}

func NewHandler(db *sql.DB, secret []byte) *Handler {
	return &Handler{db: db, secret: secret}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.Name = strings.TrimSpace(req.Name)

	if msg := validateRegistration(req); msg != "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: msg})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		return
	}

	var reviewer models.Reviewer
	now := time.Now()
	err = h.db.QueryRow(
		`INSERT INTO reviewers (email, name, password, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, email, name, created_at, updated_at`,
		req.Email, req.Name, string(hashedPassword), now, now,
	).Scan(&reviewer.ID, &reviewer.Email, &reviewer.Name, &reviewer.CreatedAt, &reviewer.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "A reviewer with this email already exists"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to create reviewer"})
		return
	}

	token, err := GenerateToken(h.secret, reviewer.ID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to generate token"})
		return
	}

	writeJSON(w, http.StatusCreated, models.AuthResponse{Token: token, Reviewer: reviewer})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	if req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Email and password are required"})
		return
	}

	var reviewer models.Reviewer
	var hashedPassword string
	err := h.db.QueryRow(
		`SELECT id, email, name, password, created_at, updated_at FROM reviewers WHERE email = $1`,
		req.Email,
	).Scan(&reviewer.ID, &reviewer.Email, &reviewer.Name, &hashedPassword, &reviewer.CreatedAt, &reviewer.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Invalid email or password"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(req.Password)); err != nil {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Invalid email or password"})
		return
	}

	token, err := GenerateToken(h.secret, reviewer.ID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to generate token"})
		return
	}

	writeJSON(w, http.StatusOK, models.AuthResponse{Token: token, Reviewer: reviewer})
}

func (h *Handler) GetCurrentReviewer(w http.ResponseWriter, r *http.Request) {
	reviewerID, ok := middleware.UserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var reviewer models.Reviewer
	err := h.db.QueryRow(
		`SELECT id, email, name, created_at, updated_at FROM reviewers WHERE id = $1`,
		reviewerID,
	).Scan(&reviewer.ID, &reviewer.Email, &reviewer.Name, &reviewer.CreatedAt, &reviewer.UpdatedAt)

	if err != nil {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Reviewer not found"})
		return
	}

	writeJSON(w, http.StatusOK, reviewer)
}

func validateRegistration(req models.RegisterRequest) string {
	if req.Email == "" || req.Name == "" || req.Password == "" {
		return "Email, name, and password are required"
	}
	if !strings.Contains(req.Email, "@") {
		return "Email address is invalid"
	}
	if len(req.Password) < 8 {
		return "Password must be at least 8 characters"
	}
	return ""
}

// GenerateToken signs an HS256 token carrying the reviewer id.
func GenerateToken(secret []byte, reviewerID int64) (string, error) {
	claims := jwt.MapClaims{
		middleware.ClaimUserID: reviewerID,
		"exp":                  time.Now().Add(tokenTTL).Unix(),
		"iat":                  time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
