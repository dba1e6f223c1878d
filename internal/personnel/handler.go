package personnel

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/nbelhadj/maintenance-management/internal/transport"
	"github.com/nbelhadj/maintenance-management/pkg/logger"
)

type ServiceAPI interface {
	CreateTechnician(dto PersonDTO) (*PersonResponse, error)
	GetTechnician(id int64) (*PersonResponse, error)
	ListTechnicians() ([]*PersonResponse, error)
	UpdateTechnician(id int64, dto PersonDTO) (*PersonResponse, error)
	DeleteTechnician(id int64) error

	CreateAdmin(dto PersonDTO) (*PersonResponse, error)
	GetAdmin(id int64) (*PersonResponse, error)
	ListAdmins() ([]*PersonResponse, error)
	UpdateAdmin(id int64, dto PersonDTO) (*PersonResponse, error)
	DeleteAdmin(id int64) error
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

func (h *Handler) ListTechnicians(w http.ResponseWriter, r *http.Request) {
	techs, err := h.Service.ListTechnicians()
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, techs)
}

func (h *Handler) CreateTechnician(w http.ResponseWriter, r *http.Request) {
	dto, ok := h.decodePerson(w, r)
	if !ok {
		return
	}
	resp, err := h.Service.CreateTechnician(dto)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, resp)
}

func (h *Handler) GetTechnician(w http.ResponseWriter, r *http.Request) {
	id, err := h.URLParamID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid id")
		return
	}
	resp, err := h.Service.GetTechnician(id)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) UpdateTechnician(w http.ResponseWriter, r *http.Request) {
	id, err := h.URLParamID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid id")
		return
	}
	dto, ok := h.decodePerson(w, r)
	if !ok {
		return
	}
	resp, err := h.Service.UpdateTechnician(id, dto)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) DeleteTechnician(w http.ResponseWriter, r *http.Request) {
	id, err := h.URLParamID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.Service.DeleteTechnician(id); err != nil {
		h.WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListAdmins(w http.ResponseWriter, r *http.Request) {
	admins, err := h.Service.ListAdmins()
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, admins)
}

func (h *Handler) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	dto, ok := h.decodePerson(w, r)
	if !ok {
		return
	}
	resp, err := h.Service.CreateAdmin(dto)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, resp)
}

func (h *Handler) GetAdmin(w http.ResponseWriter, r *http.Request) {
	id, err := h.URLParamID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid id")
		return
	}
	resp, err := h.Service.GetAdmin(id)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) UpdateAdmin(w http.ResponseWriter, r *http.Request) {
	id, err := h.URLParamID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid id")
		return
	}
	dto, ok := h.decodePerson(w, r)
	if !ok {
		return
	}
	resp, err := h.Service.UpdateAdmin(id, dto)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) DeleteAdmin(w http.ResponseWriter, r *http.Request) {
	id, err := h.URLParamID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.Service.DeleteAdmin(id); err != nil {
		h.WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) decodePerson(w http.ResponseWriter, r *http.Request) (PersonDTO, bool) {
	var dto PersonDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return dto, false
	}
	return dto, true
}
