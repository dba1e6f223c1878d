package account

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/nbelhadj/maintenance-management/internal/transport"
	"github.com/nbelhadj/maintenance-management/pkg/logger"
)

type ServiceAPI interface {
	List() ([]*AccountResponse, error)
	GetByID(id int64) (*AccountResponse, error)
	Create(dto CreateAccountDTO) (*AccountResponse, error)
	Update(id int64, dto UpdateAccountDTO) (*AccountResponse, error)
	Delete(id int64) error
	ChangePassword(accountID int64, newPassword string) error
	ResetPassword(accountID int64) (*ResetPasswordResponse, error)
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

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.Service.List()
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, accounts)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := h.URLParamID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid account id")
		return
	}

	acc, err := h.Service.GetByID(id)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, acc)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreateAccountDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	acc, err := h.Service.Create(dto)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, acc)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := h.URLParamID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid account id")
		return
	}

	var dto UpdateAccountDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	acc, err := h.Service.Update(id, dto)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, acc)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := h.URLParamID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid account id")
		return
	}

	if err := h.Service.Delete(id); err != nil {
		h.WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ChangePassword handles POST /connexusers/{id}/change-password/ (admin only).
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	id, err := h.URLParamID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid account id")
		return
	}

	var dto ChangePasswordDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.ChangePassword(id, dto.Password); err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "mot de passe modifié avec succès"})
}

// ResetPassword handles POST /connexusers/{id}/reset-password/ (admin only).
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	id, err := h.URLParamID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid account id")
		return
	}

	resp, err := h.Service.ResetPassword(id)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, resp)
}
