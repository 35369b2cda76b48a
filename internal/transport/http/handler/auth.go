package handler

import (
	"net/http"

	"github.com/go-catalog-nosql/internal/application/auth"
	"github.com/go-catalog-nosql/internal/domain"
	"github.com/go-catalog-nosql/internal/pkg/validate"
)

// AuthHandler handles registration, login and password reset endpoints.
type AuthHandler struct {
	svc auth.Service
}

func NewAuthHandler(svc auth.Service) *AuthHandler { return &AuthHandler{svc: svc} }

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	ch, err := h.svc.RequestRegistration(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, "verification code sent", ch)
}

func (h *AuthHandler) VerifyOtp(w http.ResponseWriter, r *http.Request) {
	var req domain.ConfirmCodeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validate.Struct(req); err != nil {
		httpError(w, err)
		return
	}
	p, err := h.svc.ConfirmRegistration(r.Context(), req.ChallengeID, req.OTP)
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusCreated, "user registered", p)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	p, err := h.svc.Login(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, "login successful", p)
}

func (h *AuthHandler) SendResetOtp(w http.ResponseWriter, r *http.Request) {
	var req domain.PasswordResetRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	ch, err := h.svc.RequestPasswordReset(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, "verification code sent", ch)
}

func (h *AuthHandler) VerifyResetOtp(w http.ResponseWriter, r *http.Request) {
	var req domain.ConfirmCodeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validate.Struct(req); err != nil {
		httpError(w, err)
		return
	}
	if err := h.svc.ConfirmPasswordResetOtp(r.Context(), req.ChallengeID, req.OTP); err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, "code verified", nil)
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req domain.CompletePasswordResetRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.svc.CompletePasswordReset(r.Context(), req); err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, "password updated", nil)
}
