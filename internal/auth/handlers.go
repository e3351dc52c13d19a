package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/thecodedeck/cookie-server/internal/httputil"
	"github.com/thecodedeck/cookie-server/internal/logger"
	"github.com/thecodedeck/cookie-server/internal/session"
	"github.com/thecodedeck/cookie-server/internal/utils"
)

// Handler binds the auth service to the HTTP surface. Cookie parameters live
// here because they are transport concerns, not service logic.
type Handler struct {
	svc          *Service
	secret       string
	cookieSecure bool
}

func NewHandler(svc *Service, secret string, cookieSecure bool) *Handler {
	return &Handler{
		svc:          svc,
		secret:       secret,
		cookieSecure: cookieSecure,
	}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SignUpHandler handles POST /sign-up.
func (h *Handler) SignUpHandler(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Message(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	err := h.svc.SignUp(r.Context(), req.Username, req.Password)
	switch {
	case err == nil:
		httputil.Message(w, http.StatusCreated, "User created successfully")
	case errors.Is(err, ErrMissingFields):
		httputil.Message(w, http.StatusBadRequest, "Username and password are required")
	case errors.Is(err, ErrUsernameTaken):
		httputil.Message(w, http.StatusBadRequest, "Username already taken.")
	default:
		logger.FromRequest(r).Err(err).Msg("sign-up failed")
		httputil.Error(w, http.StatusBadRequest, err)
	}
}

// SignInHandler handles POST /sign-in. A successful sign-in sets the signed
// session cookie; unknown usernames and wrong passwords produce identical
// responses.
func (h *Handler) SignInHandler(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Message(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	sess, err := h.svc.SignIn(r.Context(), req.Username, req.Password)
	switch {
	case err == nil:
		signed := session.SignSessionID(sess.SessionID, h.secret)
		http.SetCookie(w, session.NewSessionCookie(signed, h.svc.SessionTTL(), h.cookieSecure))
		httputil.Message(w, http.StatusOK, "Login successful")
	case errors.Is(err, ErrInvalidCredentials):
		httputil.Message(w, http.StatusUnauthorized, "Authentication failed")
	default:
		logger.FromRequest(r).Err(err).Msg("sign-in failed")
		httputil.Error(w, http.StatusInternalServerError, err)
	}
}

// LogoutHandler handles POST /logout. It sits behind the session resolver
// but not the auth gate: a request with no usable session gets a 400, not
// the guard's 401.
func (h *Handler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	data, ok := utils.GetSessionFromContext(r.Context())
	if !ok {
		httputil.Message(w, http.StatusBadRequest, "You are not logged in.")
		return
	}

	if err := h.svc.Logout(r.Context(), data.SessionID); err != nil {
		logger.FromRequest(r).Err(err).Str("session_id", data.SessionID).Msg("logout failed")
		httputil.Message(w, http.StatusInternalServerError, "Could not log out, please try again.")
		return
	}

	http.SetCookie(w, session.ExpiredSessionCookie(h.cookieSecure))
	httputil.Message(w, http.StatusOK, "Logout successful")
}

// DeleteUserHandler handles DELETE /user/{id}. The auth gate has already
// proven who the actor is; the service re-reads their record to prove they
// may delete users.
func (h *Handler) DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	data, _ := utils.GetSessionFromContext(r.Context())
	targetID := chi.URLParam(r, "id")

	err := h.svc.DeleteUser(r.Context(), data.UserID, targetID)
	switch {
	case err == nil:
		httputil.Message(w, http.StatusOK, "User deleted successfully.")
	case errors.Is(err, ErrSessionInvalid), errors.Is(err, ErrNotAdmin):
		httputil.Message(w, http.StatusUnauthorized, "Unauthorized.")
	case errors.Is(err, ErrUserNotFound):
		httputil.Message(w, http.StatusNotFound, "User not found.")
	default:
		logger.FromRequest(r).Err(err).Str("target_id", targetID).Msg("delete user failed")
		httputil.Error(w, http.StatusInternalServerError, err)
	}
}

// IsAuthenticatedHandler handles GET /is-authenticated. The gate in front of
// it does all the work; reaching this handler means the probe passed.
func (h *Handler) IsAuthenticatedHandler(w http.ResponseWriter, r *http.Request) {
	httputil.Message(w, http.StatusOK, "You are logged in")
}

type meResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// MeHandler handles GET /me, dereferencing the session's user. A session
// whose user was deleted gets a 404 rather than a fault.
func (h *Handler) MeHandler(w http.ResponseWriter, r *http.Request) {
	data, _ := utils.GetSessionFromContext(r.Context())

	user, err := h.svc.CurrentUser(r.Context(), data.UserID)
	switch {
	case err == nil:
		httputil.JSON(w, http.StatusOK, meResponse{
			UserID:   user.UserID,
			Username: user.Username,
			Role:     user.Role,
		})
	case errors.Is(err, ErrSessionInvalid):
		httputil.Message(w, http.StatusNotFound, "User not found.")
	default:
		logger.FromRequest(r).Err(err).Msg("me lookup failed")
		httputil.Error(w, http.StatusInternalServerError, err)
	}
}
