package auth

import (
	"net/http"

	internal "github.com/tracksure/tracksure/internal"
	"github.com/tracksure/tracksure/internal/transport"
)

type Handler struct {
	transport.BaseHandler
	service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	return &Handler{service: service}
}

// Signup godoc
// @Summary Register a new brand tenant with its admin user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupDTO true "Signup payload"
// @Success 201 {object} SignupResult
// @Router /api/v1/auth/signup [post]
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var dto SignupDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteError(w, err)
		return
	}

	result, err := h.service.Signup(dto)
	if err != nil {
		h.WriteError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, result)
}

// Login godoc
// @Summary Exchange credentials for an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginDTO true "Login payload"
// @Success 200 {object} AuthResult
// @Router /api/v1/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteError(w, err)
		return
	}

	result, err := h.service.Authenticate(dto)
	if err != nil {
		h.WriteError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

// Me godoc
// @Summary Return the authenticated user with role and permissions
// @Tags auth
// @Produce json
// @Success 200 {object} User
// @Router /api/v1/auth/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	sess, ok := internal.SessionFromContext(r.Context())
	if !ok {
		h.WriteError(w, internal.ErrInvalidToken)
		return
	}

	user, err := h.service.CurrentUser(sess.UserID)
	if err != nil {
		h.WriteError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, user)
}

// Middleware authenticates requests via the X-Jwt-Bearer header and attaches
// the session to the request context.
func (h *Handler) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := r.Header.Get(HeaderJWT)
		if tokenString == "" {
			h.WriteError(w, internal.NewUnauthorizedError("Missing authentication token", internal.ErrCodeInvalidToken))
			return
		}

		claims, err := h.service.ValidateAccessToken(tokenString)
		if err != nil {
			h.WriteError(w, err)
			return
		}

		ctx := internal.ContextWithSession(r.Context(), internal.Session{
			UserID:        claims.UserID,
			TenantID:      claims.TenantID,
			Email:         claims.Email,
			EmailVerified: claims.EmailVerified,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
