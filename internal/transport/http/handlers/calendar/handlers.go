package calendarhandler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"ptotracker/internal/domain/pto"
	"ptotracker/internal/transport/http/api"
	"ptotracker/internal/transport/http/middleware"
)

type Handler struct {
	Service *pto.Service
}

func NewHandler(service *pto.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/calendar", h.handleCalendar)
	r.Get("/calendar/export.xlsx", h.handleCalendarExport)
}

// parseQuery resolves the month selector (defaulting to the current month)
// and the optional employee filter.
func parseQuery(r *http.Request) (month string, q pto.CalendarQuery, err error) {
	month = strings.TrimSpace(r.URL.Query().Get("month"))
	if month == "" {
		month = pto.CurrentMonth(time.Now())
	}
	start, end, err := pto.ParseMonth(month)
	if err != nil {
		return "", pto.CalendarQuery{}, err
	}
	q = pto.CalendarQuery{MonthStart: start, MonthEnd: end}

	if raw := strings.TrimSpace(r.URL.Query().Get("employeeId")); raw != "" && raw != "all" {
		employeeID, parseErr := strconv.ParseInt(raw, 10, 64)
		if parseErr != nil {
			return "", pto.CalendarQuery{}, fmt.Errorf("invalid employeeId %q", raw)
		}
		q.EmployeeID = employeeID
	}
	return month, q, nil
}

func (h *Handler) handleCalendar(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	if _, ok := middleware.GetManager(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	month, q, err := parseQuery(r)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_query", err.Error(), requestID)
		return
	}

	entries, err := h.Service.CalendarEntries(r.Context(), q)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "calendar_failed", "failed to load calendar", requestID)
		return
	}

	api.Success(w, map[string]any{
		"month":      month,
		"monthStart": q.MonthStart.String(),
		"monthEnd":   q.MonthEnd.String(),
		"entries":    entries,
	}, requestID)
}

func (h *Handler) handleCalendarExport(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	if _, ok := middleware.GetManager(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	month, q, err := parseQuery(r)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_query", err.Error(), requestID)
		return
	}

	data, err := h.Service.CalendarXLSX(r.Context(), month, q)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "calendar_export_failed", "failed to export calendar", requestID)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=pto_calendar_%s.xlsx", month))
	_, _ = w.Write(data)
}
