package handler

import (
	"errors"
	"net/http"

	"github.com/yndnr/tokgate/internal/core/domain"
)

// handleRegister handles POST /v1/auth/register.
func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !h.decode(w, r, &req) {
		return
	}

	res, err := h.sessions.Register(r.Context(), req.Email)
	if err != nil {
		if res != nil && errors.Is(err, domain.ErrDeliveryFailed) {
			h.writeErrorData(w, r, err, RegisterResponse{
				Email:     res.Email,
				ExpiresAt: res.ExpiresAt,
				Delivered: false,
			})
			return
		}
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, RegisterResponse{
		Email:     res.Email,
		ExpiresAt: res.ExpiresAt,
		Delivered: res.Delivered,
	})
}

// handleLogin handles POST /v1/auth/login.
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req VerifyTokenRequest
	if !h.decode(w, r, &req) {
		return
	}

	p, err := h.sessions.Login(r.Context(), req.Token)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, LoginResponse{
		Email:     p.Email,
		ExpiresAt: p.ExpiresAt,
	})
}

// handleLogout handles POST /v1/auth/logout.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Logout(r.Context())
	h.writeJSON(w, r, http.StatusOK, StatusResponse{LoggedIn: false})
}

// handleStatus handles GET /v1/auth/status.
func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	resp := StatusResponse{LoggedIn: h.sessions.IsLoggedIn()}
	if resp.LoggedIn {
		if p, ok := h.sessions.CurrentUser(); ok {
			exp := p.ExpiresAt
			resp.Email = p.Email
			resp.ExpiresAt = &exp
		}
	}
	h.writeJSON(w, r, http.StatusOK, resp)
}
