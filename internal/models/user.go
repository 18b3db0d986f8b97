package models

import (
	"strings"
	"time"
)

// Reviewer is a staff member who works the human review queue.
type Reviewer struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FirstName returns the first whitespace-separated token of a name.
func FirstName(name string) string {
	parts := SplitName(name)
	if len(parts) == 0 {
		return ""
	}
	return parts[0]
}

func SplitName(name string) []string {
	return strings.Fields(strings.TrimSpace(name))
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token    string   `json:"token"`
	Reviewer Reviewer `json:"reviewer"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
