package handler

import (
	"time"

	"github.com/homeharbor/harbor-api/internal/core/domain"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupRequest struct {
	Name            string `json:"name"             validate:"required"`
	Email           string `json:"email"            validate:"required,email"`
	Password        string `json:"password"         validate:"required"`
	ApartmentNumber string `json:"apartment_number"`
	Role            string `json:"role"             validate:"required"`
}

type loginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *domain.User `json:"user"`
	Role      domain.Role  `json:"role"`
}

type signupResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type pendingUsersResponse struct {
	Items []domain.PendingUser `json:"items"`
	Count int                  `json:"count"`
}

type approvedUsersResponse struct {
	Items []domain.User `json:"items"`
	Count int           `json:"count"`
}

type errorResponse struct {
	Error string `json:"error"`
}
