package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/tomasen/realip"

	"github.com/nbelhadj/maintenance-management/internal"
	"github.com/nbelhadj/maintenance-management/internal/transport"
	"github.com/nbelhadj/maintenance-management/pkg/logger"
)

type ServiceAPI interface {
	Login(dto LoginDTO, ip, userAgent string) (*LoginResponse, error)
	Logout(accountID int64)
	Authenticate(accountID int64) *User
	Me(u *User) (*MeResponse, error)
	ChangeOwnPassword(u *User, dto ChangePasswordDTO) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	resp, err := h.Service.Login(dto, realip.FromRequest(r), r.UserAgent())
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	u, ok := UserFrom(r.Context())
	if !ok {
		h.WriteDomainError(w, internal.ErrInvalidSession)
		return
	}
	h.Service.Logout(u.ID)
	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "déconnecté"})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	u, ok := UserFrom(r.Context())
	if !ok {
		h.WriteDomainError(w, internal.ErrInvalidSession)
		return
	}
	resp, err := h.Service.Me(u)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) MeChangePassword(w http.ResponseWriter, r *http.Request) {
	u, ok := UserFrom(r.Context())
	if !ok {
		h.WriteDomainError(w, internal.ErrInvalidSession)
		return
	}
	var dto ChangePasswordDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.Service.ChangeOwnPassword(u, dto); err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "mot de passe modifié"})
}

// SessionMiddleware resolves the session header and attaches the identity to
// the context when it names a live account. A malformed or unknown session
// passes through unauthenticated; policy middleware decides whether that is
// acceptable.
func (h *Handler) SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := h.ExtractSessionID(r); ok {
			if u := h.Service.Authenticate(id); u != nil {
				r = r.WithContext(WithUser(r.Context(), u))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAuth rejects requests with no authenticated identity.
func RequireAuth(next http.Handler) http.Handler {
	return policy(next, func(u *User) bool { return true })
}

// RequireAdmin rejects requests unless the identity carries the admin role.
func RequireAdmin(next http.Handler) http.Handler {
	return policy(next, (*User).IsAdmin)
}

func policy(next http.Handler, allowed func(*User) bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := UserFrom(r.Context())
		if !ok {
			writeAppError(w, internal.ErrInvalidSession)
			return
		}
		if !allowed(u) {
			writeAppError(w, internal.ErrAdminRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeAppError(w http.ResponseWriter, appErr *internal.AppError) {
	status, body := appErr.ToHTTPResponse()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
