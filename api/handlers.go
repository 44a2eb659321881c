/*
handlers.go - HTTP API handlers for the tip engine

PURPOSE:
  Exposes the tip-allocation and ledger engine via REST API. Handles
  HTTP request/response, JSON serialization, and delegates to domain
  logic.

ENDPOINTS:
  Auth:
    POST   /api/auth/login             Manager password -> session token

  Staff:
    GET    /api/staff                  List staff (canonical order)
    POST   /api/staff                  Add staff (manager)
    DELETE /api/staff                  Batch-remove staff (manager)
    PUT    /api/staff/{id}/points      Update weight (manager)

  Days:
    GET    /api/days/{date}            Stored snapshot for a date
    POST   /api/days/{date}            Save & calculate (overwrites)
    PUT    /api/days/{date}            Edit (same path as save)
    DELETE /api/days/{date}            Delete snapshot (no-op if absent)

  Summaries:
    GET    /api/summary?from=&to=      Per-staff + cut totals in range
    GET    /api/summary/daily?from=&to= Per-day totals in range
    GET    /api/summary/week?date=     Monday-Sunday week of the date
    GET    /api/summary/month?date=    Calendar month of the date

  Reports (manager):
    GET    /api/reports/daily?from=&to= Per-day report table
    GET    /api/reports/staff?from=&to= Staff-breakdown report table

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Invalid input (amount, weight, date, empty selection)
  - 401: Missing/invalid manager session
  - 404: Snapshot or staff member not found
  - 409: Duplicate staff name
  - 422: Corrupt snapshot (summary row missing)
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - auth.go: Manager session tokens
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mnemes/tip-engine/tips"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Registry   *tips.Registry
	Ledger     *tips.Ledger
	Summarizer *tips.Summarizer
	Auth       *Auth
	Log        *slog.Logger
}

// NewHandler creates a handler over one store implementing both
// storage interfaces.
func NewHandler(staff tips.StaffStore, rows tips.RowStore, auth *Auth, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{
		Registry:   tips.NewRegistry(staff),
		Ledger:     tips.NewLedger(rows),
		Summarizer: tips.NewSummarizer(rows),
		Auth:       auth,
		Log:        log,
	}
}

// =============================================================================
// AUTH HANDLERS
// =============================================================================

// Login exchanges the manager password for a session token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	token, exp, err := h.Auth.Login(req.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Wrong password", nil)
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{Token: token, ExpiresAt: exp.UTC().Format("2006-01-02T15:04:05Z07:00")})
}

// =============================================================================
// STAFF HANDLERS
// =============================================================================

// ListStaff returns all staff in canonical order (points desc, name asc).
func (h *Handler) ListStaff(w http.ResponseWriter, r *http.Request) {
	members, err := h.Registry.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list staff", err)
		return
	}

	dtos := make([]StaffDTO, 0, len(members))
	for _, m := range members {
		dtos = append(dtos, staffDTO(m))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// AddStaff creates a new staff member.
func (h *Handler) AddStaff(w http.ResponseWriter, r *http.Request) {
	var req AddStaffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	points, err := tips.ParsePoints(req.Points)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid points", err)
		return
	}

	member, err := h.Registry.Add(r.Context(), req.Name, points)
	if err != nil {
		writeDomainError(w, "Failed to add staff", err)
		return
	}

	h.Log.Info("staff added", "name", member.Name, "points", member.Points.String())
	writeJSON(w, http.StatusCreated, staffDTO(member))
}

// RemoveStaff batch-removes staff by name. Missing names are no-ops.
func (h *Handler) RemoveStaff(w http.ResponseWriter, r *http.Request) {
	var req RemoveStaffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.Registry.Remove(r.Context(), req.Names); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to remove staff", err)
		return
	}

	h.Log.Info("staff removed", "count", len(req.Names))
	writeJSON(w, http.StatusOK, map[string]any{"removed": req.Names})
}

// UpdatePoints sets a member's current weight.
func (h *Handler) UpdatePoints(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid staff id", err)
		return
	}

	var req UpdatePointsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	points, err := tips.ParsePoints(req.Points)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid points", err)
		return
	}

	if err := h.Registry.UpdatePoints(r.Context(), id, points); err != nil {
		writeDomainError(w, "Failed to update points", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"id": id, "points": points.String()})
}

// =============================================================================
// DAY HANDLERS
// =============================================================================

// GetDay returns the stored snapshot for a date.
func (h *Handler) GetDay(w http.ResponseWriter, r *http.Request) {
	date, ok := h.pathDate(w, r)
	if !ok {
		return
	}

	snap, err := h.Ledger.Day(r.Context(), date)
	if err != nil {
		writeDomainError(w, "Failed to load snapshot", err)
		return
	}
	if snap == nil {
		writeError(w, http.StatusNotFound, "No snapshot for date", nil)
		return
	}

	writeJSON(w, http.StatusOK, dayDTO(snap))
}

// SaveDay computes the allocation for a date and overwrites any
// existing snapshot. PUT (edit) routes here too: edit and save share
// one code path.
func (h *Handler) SaveDay(w http.ResponseWriter, r *http.Request) {
	date, ok := h.pathDate(w, r)
	if !ok {
		return
	}

	var req SaveDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	total, err := tips.ParseAmount(req.TotalTips)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid tip total", err)
		return
	}

	participants, err := h.Registry.Resolve(r.Context(), req.Staff)
	if err != nil {
		writeDomainError(w, "Failed to resolve staff", err)
		return
	}

	alloc, err := h.Ledger.SaveDay(r.Context(), date, total, participants)
	if err != nil {
		writeDomainError(w, "Failed to save day", err)
		return
	}

	h.Log.Info("day saved", "date", date.String(), "total", alloc.Total.StringFixed(2), "staff", len(alloc.Shares))
	writeJSON(w, http.StatusOK, allocationDTO(date, alloc))
}

// DeleteDay removes a date's snapshot. Deleting a date with no
// snapshot succeeds (no-op).
func (h *Handler) DeleteDay(w http.ResponseWriter, r *http.Request) {
	date, ok := h.pathDate(w, r)
	if !ok {
		return
	}

	if err := h.Ledger.DeleteDay(r.Context(), date); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete day", err)
		return
	}

	h.Log.Info("day deleted", "date", date.String())
	writeJSON(w, http.StatusOK, map[string]any{"deleted": date.String()})
}

// =============================================================================
// SUMMARY HANDLERS
// =============================================================================

// GetSummary returns per-staff and cut totals for ?from=&to=.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	from, to, ok := h.queryRange(w, r)
	if !ok {
		return
	}
	h.writeRangeSummary(w, r, from, to)
}

// GetDailyTotals returns per-day totals for ?from=&to=.
func (h *Handler) GetDailyTotals(w http.ResponseWriter, r *http.Request) {
	from, to, ok := h.queryRange(w, r)
	if !ok {
		return
	}

	totals, err := h.Summarizer.DailyTotals(r.Context(), from, to)
	if err != nil {
		writeDomainError(w, "Failed to summarize range", err)
		return
	}
	writeJSON(w, http.StatusOK, dailyTotalDTOs(totals))
}

// GetWeekSummary returns the Monday-Sunday week containing ?date=.
func (h *Handler) GetWeekSummary(w http.ResponseWriter, r *http.Request) {
	date, ok := h.queryDate(w, r)
	if !ok {
		return
	}
	period := tips.WeekBounds(date)
	h.writeRangeSummary(w, r, period.Start, period.End)
}

// GetMonthSummary returns the calendar month containing ?date=.
func (h *Handler) GetMonthSummary(w http.ResponseWriter, r *http.Request) {
	date, ok := h.queryDate(w, r)
	if !ok {
		return
	}
	period := tips.MonthBounds(date)
	h.writeRangeSummary(w, r, period.Start, period.End)
}

func (h *Handler) writeRangeSummary(w http.ResponseWriter, r *http.Request, from, to tips.Date) {
	summary, err := h.Summarizer.SummarizeRange(r.Context(), from, to)
	if err != nil {
		writeDomainError(w, "Failed to summarize range", err)
		return
	}
	writeJSON(w, http.StatusOK, rangeSummaryDTO(summary))
}

// =============================================================================
// REPORT HANDLERS
// =============================================================================

// GetDailyReport returns the per-day report table for the renderer.
func (h *Handler) GetDailyReport(w http.ResponseWriter, r *http.Request) {
	from, to, ok := h.queryRange(w, r)
	if !ok {
		return
	}

	totals, err := h.Summarizer.DailyTotals(r.Context(), from, to)
	if err != nil {
		writeDomainError(w, "Failed to build report", err)
		return
	}
	writeJSON(w, http.StatusOK, reportTableDTO(tips.DailyReportTable(totals)))
}

// GetStaffReport returns the staff-breakdown report table.
func (h *Handler) GetStaffReport(w http.ResponseWriter, r *http.Request) {
	from, to, ok := h.queryRange(w, r)
	if !ok {
		return
	}

	totals, grand, err := h.Summarizer.PerStaffRange(r.Context(), from, to)
	if err != nil {
		writeDomainError(w, "Failed to build report", err)
		return
	}
	writeJSON(w, http.StatusOK, reportTableDTO(tips.StaffReportTable(totals, grand)))
}

// =============================================================================
// REQUEST PARSING HELPERS
// =============================================================================

func (h *Handler) pathDate(w http.ResponseWriter, r *http.Request) (tips.Date, bool) {
	date, err := tips.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date (use YYYY-MM-DD)", err)
		return tips.Date{}, false
	}
	return date, true
}

func (h *Handler) queryDate(w http.ResponseWriter, r *http.Request) (tips.Date, bool) {
	date, err := tips.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date (use YYYY-MM-DD)", err)
		return tips.Date{}, false
	}
	return date, true
}

func (h *Handler) queryRange(w http.ResponseWriter, r *http.Request) (tips.Date, tips.Date, bool) {
	from, err := tips.ParseDate(r.URL.Query().Get("from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid 'from' date (use YYYY-MM-DD)", err)
		return tips.Date{}, tips.Date{}, false
	}
	to, err := tips.ParseDate(r.URL.Query().Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid 'to' date (use YYYY-MM-DD)", err)
		return tips.Date{}, tips.Date{}, false
	}
	return from, to, true
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	body := map[string]any{"error": message}
	if err != nil {
		body["detail"] = err.Error()
	}
	writeJSON(w, status, body)
}

// writeDomainError maps domain errors onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, message string, err error) {
	switch {
	case tips.IsClientError(err):
		writeError(w, http.StatusBadRequest, message, err)
	case tips.IsConflict(err):
		writeError(w, http.StatusConflict, message, err)
	case tips.IsNotFound(err):
		writeError(w, http.StatusNotFound, message, err)
	case errors.Is(err, tips.ErrCorruptSnapshot):
		writeError(w, http.StatusUnprocessableEntity, message, err)
	default:
		writeError(w, http.StatusInternalServerError, message, err)
	}
}
