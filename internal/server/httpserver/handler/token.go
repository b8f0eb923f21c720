package handler

import (
	"net/http"
)

// handleIssueToken handles POST /v1/tokens.
func (h *Handler) handleIssueToken(w http.ResponseWriter, r *http.Request) {
	var req IssueTokenRequest
	if !h.decode(w, r, &req) {
		return
	}

	tok, err := h.tokens.Issue(req.Identifier)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	expiresAt, _ := h.tokens.ExpiresAt(tok)
	h.writeJSON(w, r, http.StatusCreated, IssueTokenResponse{
		Token:     tok,
		ExpiresAt: expiresAt,
	})
}

// handleVerifyToken handles POST /v1/tokens/verify. It answers 200 for
// any token, including an unparsable body field.
func (h *Handler) handleVerifyToken(w http.ResponseWriter, r *http.Request) {
	var req VerifyTokenRequest
	if !h.decode(w, r, &req) {
		return
	}

	res := h.tokens.Verify(req.Token)
	resp := VerifyTokenResponse{Valid: res.Valid()}
	if resp.Valid {
		exp := res.ExpiresAt
		resp.Identifier = res.Identifier
		resp.ExpiresAt = &exp
	}
	h.writeJSON(w, r, http.StatusOK, resp)
}
