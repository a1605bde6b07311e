package employeeshandler

import (
	"encoding/json"
	"fmt"
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
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/{employeeID}", h.handleDetail)
		r.Get("/{employeeID}/entries", h.handleListEntries)
		r.Post("/{employeeID}/entries", h.handleLogEntry)
		r.Get("/{employeeID}/balances", h.handleBalances)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Put("/{employeeID}/balances", h.handleSetAllotments)
		r.Get("/{employeeID}/balances/export.pdf", h.handleBalancesPDF)
	})
}

func employeeIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "employeeID"), 10, 64)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	if _, ok := middleware.GetManager(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	employees, err := h.Service.ListEmployees(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_list_failed", "failed to list employees", requestID)
		return
	}
	api.Success(w, employees, requestID)
}

type createEmployeePayload struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	EmploymentType string `json:"employmentType"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	manager, ok := middleware.GetManager(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	var payload createEmployeePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	employee, err := h.Service.AddEmployee(r.Context(), shared.ActorFrom(manager), pto.AddEmployeeCommand{
		FirstName:      payload.FirstName,
		LastName:       payload.LastName,
		EmploymentType: payload.EmploymentType,
		Phone:          payload.Phone,
		Email:          payload.Email,
	})
	if err != nil {
		shared.RespondDomainError(w, err, requestID, "employee_create_failed", "failed to create employee")
		return
	}
	api.Created(w, employee, requestID)
}

func (h *Handler) handleDetail(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	if _, ok := middleware.GetManager(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}
	employeeID, err := employeeIDParam(r)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid employee id", requestID)
		return
	}

	employee, err := h.Service.GetEmployee(r.Context(), employeeID)
	if err != nil {
		shared.RespondDomainError(w, err, requestID, "employee_detail_failed", "failed to load employee")
		return
	}
	balances, err := h.Service.BalanceSummary(r.Context(), employeeID)
	if err != nil {
		shared.RespondDomainError(w, err, requestID, "employee_detail_failed", "failed to load balances")
		return
	}
	entries, err := h.Service.EmployeeEntries(r.Context(), employeeID)
	if err != nil {
		shared.RespondDomainError(w, err, requestID, "employee_detail_failed", "failed to load entries")
		return
	}

	api.Success(w, map[string]any{
		"employee": employee,
		"balances": balances,
		"entries":  entries,
	}, requestID)
}

func (h *Handler) handleListEntries(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	if _, ok := middleware.GetManager(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}
	employeeID, err := employeeIDParam(r)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid employee id", requestID)
		return
	}

	entries, err := h.Service.EmployeeEntries(r.Context(), employeeID)
	if err != nil {
		shared.RespondDomainError(w, err, requestID, "entry_list_failed", "failed to list entries")
		return
	}
	api.Success(w, entries, requestID)
}

type logEntryPayload struct {
	PTOTypeID int64   `json:"ptoTypeId"`
	StartDate string  `json:"startDate"`
	EndDate   string  `json:"endDate"`
	Hours     float64 `json:"hours"`
	Notes     string  `json:"notes"`
}

func (h *Handler) handleLogEntry(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	manager, ok := middleware.GetManager(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}
	employeeID, err := employeeIDParam(r)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid employee id", requestID)
		return
	}

	var payload logEntryPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	cmd := pto.LogEntryCommand{
		EmployeeID: employeeID,
		PTOTypeID:  payload.PTOTypeID,
		Hours:      payload.Hours,
		Notes:      payload.Notes,
	}
	// Malformed dates are rejected here; absent dates pass through as zero
	// values so the ledger can report them alongside its other checks.
	v := shared.NewValidator()
	if payload.StartDate != "" {
		if parsed, ok := v.Date("startDate", payload.StartDate); ok {
			cmd.StartDate = pto.NewDate(parsed)
		}
	}
	if payload.EndDate != "" {
		if parsed, ok := v.Date("endDate", payload.EndDate); ok {
			cmd.EndDate = pto.NewDate(parsed)
		}
	}
	if v.Reject(w, requestID) {
		return
	}

	entry, err := h.Service.LogEntry(r.Context(), shared.ActorFrom(manager), cmd)
	if err != nil {
		shared.RespondDomainError(w, err, requestID, "entry_create_failed", "failed to log PTO entry")
		return
	}
	api.Created(w, entry, requestID)
}

func (h *Handler) handleBalances(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	if _, ok := middleware.GetManager(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}
	employeeID, err := employeeIDParam(r)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid employee id", requestID)
		return
	}

	balances, err := h.Service.BalanceSummary(r.Context(), employeeID)
	if err != nil {
		shared.RespondDomainError(w, err, requestID, "balance_list_failed", "failed to load balances")
		return
	}
	api.Success(w, balances, requestID)
}

type allotmentChangePayload struct {
	PTOTypeID     int64   `json:"ptoTypeId"`
	HoursAllotted float64 `json:"hoursAllotted"`
}

type setAllotmentsPayload struct {
	Changes []allotmentChangePayload `json:"changes"`
}

func (h *Handler) handleSetAllotments(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	manager, ok := middleware.GetManager(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}
	employeeID, err := employeeIDParam(r)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid employee id", requestID)
		return
	}

	var payload setAllotmentsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	changes := make([]pto.AllotmentChange, 0, len(payload.Changes))
	for _, change := range payload.Changes {
		changes = append(changes, pto.AllotmentChange{
			PTOTypeID:     change.PTOTypeID,
			HoursAllotted: change.HoursAllotted,
		})
	}

	if err := h.Service.SetAllotments(r.Context(), shared.ActorFrom(manager), employeeID, changes); err != nil {
		shared.RespondDomainError(w, err, requestID, "allotment_update_failed", "failed to update allotments")
		return
	}

	balances, err := h.Service.BalanceSummary(r.Context(), employeeID)
	if err != nil {
		shared.RespondDomainError(w, err, requestID, "allotment_update_failed", "failed to reload balances")
		return
	}
	api.Success(w, balances, requestID)
}

func (h *Handler) handleBalancesPDF(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	if _, ok := middleware.GetManager(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}
	employeeID, err := employeeIDParam(r)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid employee id", requestID)
		return
	}

	data, err := h.Service.BalanceSummaryPDF(r.Context(), employeeID)
	if err != nil {
		shared.RespondDomainError(w, err, requestID, "balance_export_failed", "failed to export balances")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=balances_%d.pdf", employeeID))
	_, _ = w.Write(data)
}
