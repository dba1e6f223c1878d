package connlog

import (
	"log/slog"
	"net/http"

	"github.com/nbelhadj/maintenance-management/internal/transport"
	"github.com/nbelhadj/maintenance-management/pkg/logger"
)

type ServiceAPI interface {
	List() ([]*LogResponse, error)
	GetByID(id int64) (*LogResponse, error)
	Disconnect(id int64) (*LogResponse, error)
	Delete(id int64) error
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
	logs, err := h.Service.List()
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, logs)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := h.URLParamID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid log id")
		return
	}
	log, err := h.Service.GetByID(id)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, log)
}

// Disconnect handles POST /connexionlogs/{id}/disconnect/
func (h *Handler) Disconnect(w http.ResponseWriter, r *http.Request) {
	id, err := h.URLParamID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid log id")
		return
	}
	log, err := h.Service.Disconnect(id)
	if err != nil {
		h.WriteDomainError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, log)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := h.URLParamID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid log id")
		return
	}
	if err := h.Service.Delete(id); err != nil {
		h.WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
