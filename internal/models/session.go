package models

import (
	"slices"
	"strings"
)

// AdminUsername is the well-known administrator login used by the degraded identity fallback
const AdminUsername = "admin"

// Session представляет вошедшего в систему пользователя
type Session struct {
	Username string   `json:"username"`
	Email    string   `json:"email,omitempty"`
	Groups   []string `json:"groups,omitempty"`
	UserID   int64    `json:"userId,omitempty"`
	IsAdmin  bool     `json:"isAdmin"`
	IsCaixa  bool     `json:"isCaixa"`
	// Degraded is set when the identity was not confirmed by GET /user/
	// and was assembled from unverified token claims or the submitted username.
	Degraded bool `json:"degraded,omitempty"`
}

// Clone returns a copy that callers may keep without sharing the groups slice
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	c.Groups = slices.Clone(s.Groups)
	return &c
}

// Role returns a short label for display
func (s *Session) Role() string {
	switch {
	case s == nil:
		return ""
	case s.IsAdmin:
		return "admin"
	case s.IsCaixa:
		return "caixa"
	default:
		return "sem papel"
	}
}

// LooksLikeAdmin is the degraded-mode heuristic: the first provisioned account
// or the well-known administrator username. Display only, never an authorization rule.
func LooksLikeAdmin(userID int64, username string) bool {
	return userID == 1 || strings.EqualFold(username, AdminUsername)
}
