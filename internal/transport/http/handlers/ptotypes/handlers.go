package ptotypeshandler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"ptotracker/internal/domain/auth"
	"ptotracker/internal/domain/pto"
	"ptotracker/internal/transport/http/api"
	"ptotracker/internal/transport/http/middleware"
	"ptotracker/internal/transport/http/shared"
)

type Handler struct {
	Service *pto.Service
}

func NewHandler(service *pto.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/pto-types", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Post("/", h.handleCreate)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Put("/{typeID}", h.handleUpdate)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Post("/{typeID}/toggle", h.handleToggle)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Delete("/{typeID}", h.handleDelete)
	})
}

func typeIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "typeID"), 10, 64)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	manager, ok := middleware.GetManager(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	// Admins see retired types too; everyone else only selectable ones.
	includeInactive := manager.Role == auth.RoleAdmin
	types, err := h.Service.ListTypes(r.Context(), includeInactive)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "type_list_failed", "failed to list PTO types", requestID)
		return
	}
	api.Success(w, types, requestID)
}

type createTypePayload struct {
	Code         string  `json:"code"`
	DisplayName  string  `json:"displayName"`
	DefaultHours float64 `json:"defaultHours"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	manager, ok := middleware.GetManager(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	var payload createTypePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	created, err := h.Service.CreateType(r.Context(), shared.ActorFrom(manager), pto.CreateTypeCommand{
		Code:         payload.Code,
		DisplayName:  payload.DisplayName,
		DefaultHours: payload.DefaultHours,
	})
	if err != nil {
		shared.RespondDomainError(w, err, requestID, "type_create_failed", "failed to create PTO type")
		return
	}
	api.Created(w, created, requestID)
}

type updateTypePayload struct {
	DisplayName  string   `json:"displayName"`
	DefaultHours *float64 `json:"defaultHours"`
	Propagate    bool     `json:"propagate"`
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	manager, ok := middleware.GetManager(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}
	typeID, err := typeIDParam(r)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid PTO type id", requestID)
		return
	}

	var payload updateTypePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	updated, err := h.Service.UpdateType(r.Context(), shared.ActorFrom(manager), pto.UpdateTypeCommand{
		ID:           typeID,
		DisplayName:  payload.DisplayName,
		DefaultHours: payload.DefaultHours,
		Propagate:    payload.Propagate,
	})
	if err != nil {
		shared.RespondDomainError(w, err, requestID, "type_update_failed", "failed to update PTO type")
		return
	}
	api.Success(w, updated, requestID)
}

type togglePayload struct {
	Active bool `json:"active"`
}

func (h *Handler) handleToggle(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	manager, ok := middleware.GetManager(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}
	typeID, err := typeIDParam(r)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid PTO type id", requestID)
		return
	}

	var payload togglePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	if err := h.Service.SetTypeActive(r.Context(), shared.ActorFrom(manager), typeID, payload.Active); err != nil {
		shared.RespondDomainError(w, err, requestID, "type_toggle_failed", "failed to toggle PTO type")
		return
	}
	api.Success(w, map[string]any{"id": typeID, "isActive": payload.Active}, requestID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	manager, ok := middleware.GetManager(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}
	typeID, err := typeIDParam(r)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid PTO type id", requestID)
		return
	}

	if err := h.Service.DeleteType(r.Context(), shared.ActorFrom(manager), typeID); err != nil {
		shared.RespondDomainError(w, err, requestID, "type_delete_failed", "failed to delete PTO type")
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, requestID)
}
