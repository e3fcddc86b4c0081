package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"

	"github.com/nada/admin/internal/middleware"
	"github.com/nada/admin/internal/models"
	"github.com/nada/admin/internal/services"
)

// TokenVerifier checks Firebase ID tokens.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

type SessionHandler struct {
	verifier TokenVerifier
	admins   middleware.AdminChecker
	issuer   *middleware.SessionIssuer
	revoked  middleware.RevocationList
}

// NewSessionHandler wires session exchange; revoked may be nil, in which
// case sign-out only discards the token client-side.
func NewSessionHandler(verifier TokenVerifier, admins middleware.AdminChecker, issuer *middleware.SessionIssuer, revoked middleware.RevocationList) *SessionHandler {
	return &SessionHandler{verifier: verifier, admins: admins, issuer: issuer, revoked: revoked}
}

type createSessionRequest struct {
	IDToken string `json:"id_token"`
}

type sessionResponse struct {
	Token   string              `json:"token"`
	Session *middleware.Session `json:"session"`
}

// Create exchanges a Firebase ID token for an admin session token.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.IDToken) == "" {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(map[string]string{
			"id_token": "ID token is required",
		}))
		return
	}
	if h.verifier == nil {
		writeJSON(w, http.StatusServiceUnavailable, models.NewErrorResponse("Authentication is not configured"))
		return
	}

	ctx, cancel := contextWithTimeout(r.Context(), requestTimeout)
	defer cancel()

	tok, err := h.verifier.VerifyIDToken(ctx, req.IDToken)
	if err != nil {
		log.Printf("[CreateSession] token verification failed: %v", err)
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Invalid ID token"))
		return
	}

	isAdmin, err := h.admins.IsAdmin(ctx, tok.UID)
	if err != nil && !errors.Is(err, services.ErrUserNotFound) {
		writeServiceError(w, "CreateSession", "Failed to create session", err)
		return
	}
	if !isAdmin {
		log.Printf("[CreateSession] non-admin sign-in refused uid=%s", tok.UID)
		writeJSON(w, http.StatusForbidden, models.NewErrorResponse("Admin role required"))
		return
	}

	email, _ := tok.Claims["email"].(string)
	token, sess, err := h.issuer.Issue(tok.UID, email)
	if err != nil {
		writeServiceError(w, "CreateSession", "Failed to create session", err)
		return
	}

	log.Printf("[CreateSession] admin signed in uid=%s session=%s", tok.UID, sess.ID)
	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(sessionResponse{Token: token, Session: sess}))
}

// Delete signs the current session out.
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	if sess == nil {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}
	if h.revoked != nil {
		if err := h.revoked.Revoke(r.Context(), sess.ID, sess.ExpiresAt); err != nil {
			writeServiceError(w, "DeleteSession", "Failed to sign out", err)
			return
		}
	}
	log.Printf("[DeleteSession] session=%s user=%s", sess.ID, sess.UserID)
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(nil))
}
