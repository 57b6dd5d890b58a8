/*
handlers.go - HTTP API handlers for the earnings engine

PURPOSE:
  Exposes the earnings engine via REST API. Handles HTTP request/response,
  JSON serialization and validation, and delegates to the Ledger, the
  Estimator and the pure calculators.

ENDPOINTS:
  Breakdown:
    POST   /api/breakdown                 Price an entry without storing it

  Entries:
    GET    /api/entries?from=&to=         Breakdowns of stored entries
    GET    /api/entries/{date}            Entry with its breakdown
    PUT    /api/entries/{date}            Save (replace) the entry of a day
    DELETE /api/entries/{date}            Delete the entry of a day

  Summaries:
    GET    /api/summary/{year}            Yearly summary, one row per month
    GET    /api/summary/{year}/{month}    Monthly summary

  Calendar:
    GET    /api/holidays/{year}           National and local holidays

  Settings:
    GET    /api/settings                  Active settings
    PUT    /api/settings                  Replace the active settings
    GET    /api/settings/revisions        Every stored revision

  Net income:
    POST   /api/net/estimate              Net estimate for a gross or a month
    GET    /api/net/history               Recorded payslips
    POST   /api/net/history               Record a payslip

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Store: Database access
  - Ledger: Breakdowns and summaries over stored entries
  - Estimator: Net estimates over stored history
  - Factory: JSON settings conversion and the shared validator

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Entry not found
  - 500: Internal errors (logged)

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/warp/earnings-engine/earnings"
	"github.com/warp/earnings-engine/factory"
	"github.com/warp/earnings-engine/generic"
	"github.com/warp/earnings-engine/netincome"
	"github.com/warp/earnings-engine/store/sqlite"
)

// errBadRequest marks input errors detected by the handlers themselves.
var errBadRequest = errors.New("bad request")

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store     *sqlite.Store
	Ledger    *earnings.Ledger
	Estimator *netincome.Estimator
	Factory   *factory.ConfigFactory

	logger *slog.Logger
}

// NewHandler creates a new handler with the given store.
func NewHandler(store *sqlite.Store, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		Store:     store,
		Ledger:    earnings.NewLedger(store),
		Estimator: netincome.NewEstimator(store, netincome.TaxParams{}),
		Factory:   factory.NewConfigFactory(),
		logger:    logger,
	}
}

// =============================================================================
// BREAKDOWN HANDLERS
// =============================================================================

// CalculateBreakdown prices an entry under the active settings, or under the
// settings sent with the request.
func (h *Handler) CalculateBreakdown(w http.ResponseWriter, r *http.Request) {
	var req BreakdownRequest
	if err := h.decode(r, &req); err != nil {
		h.fail(w, r, "Invalid breakdown request", err)
		return
	}
	if req.Entry.Date.IsZero() {
		h.fail(w, r, "Invalid breakdown request", fmt.Errorf("%w: entry.date is required", errBadRequest))
		return
	}

	cfg, err := h.Ledger.ActiveConfig(r.Context())
	if req.Settings != nil {
		cfg, err = h.Factory.FromJSON(*req.Settings)
	}
	if err != nil {
		h.fail(w, r, "Failed to load settings", err)
		return
	}

	writeJSON(w, http.StatusOK, earnings.CalculateDay(req.Entry, cfg))
}

// =============================================================================
// ENTRY HANDLERS
// =============================================================================

// ListEntries returns the breakdowns of stored entries in [from, to].
func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	from, err := generic.ParseDate(r.URL.Query().Get("from"))
	if err != nil {
		h.fail(w, r, "Invalid from date", badRequest(err))
		return
	}
	to, err := generic.ParseDate(r.URL.Query().Get("to"))
	if err != nil {
		h.fail(w, r, "Invalid to date", badRequest(err))
		return
	}

	days, err := h.Ledger.DailyBreakdowns(r.Context(), generic.Period{Start: from, End: to})
	if err != nil {
		h.fail(w, r, "Failed to list entries", err)
		return
	}
	if days == nil {
		days = []earnings.DailyBreakdown{}
	}
	writeJSON(w, http.StatusOK, days)
}

// GetEntry returns the stored entry of a day with its breakdown.
func (h *Handler) GetEntry(w http.ResponseWriter, r *http.Request) {
	date, ok := h.dateParam(w, r)
	if !ok {
		return
	}

	h.writeEntry(w, r, date)
}

// SaveEntry stores the entry of a day, replacing any previous one.
func (h *Handler) SaveEntry(w http.ResponseWriter, r *http.Request) {
	date, ok := h.dateParam(w, r)
	if !ok {
		return
	}

	var entry earnings.WorkEntry
	if err := h.decode(r, &entry); err != nil {
		h.fail(w, r, "Invalid entry", err)
		return
	}
	if !entry.Date.IsZero() && !entry.Date.Equal(date) {
		h.fail(w, r, "Invalid entry", fmt.Errorf("%w: body date %s does not match %s", errBadRequest, entry.Date, date))
		return
	}
	entry.Date = date

	if err := h.Store.SaveEntry(r.Context(), entry); err != nil {
		h.fail(w, r, "Failed to save entry", err)
		return
	}
	h.logger.Info("entry saved", "date", date.String(), "day_type", entry.EffectiveDayType())
	h.writeEntry(w, r, date)
}

// DeleteEntry removes the entry of a day.
func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	date, ok := h.dateParam(w, r)
	if !ok {
		return
	}

	if err := h.Store.DeleteEntry(r.Context(), date); err != nil {
		h.fail(w, r, "Failed to delete entry", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeEntry responds with the stored entry of date and its breakdown.
func (h *Handler) writeEntry(w http.ResponseWriter, r *http.Request, date generic.Date) {
	entry, breakdown, err := h.Ledger.Day(r.Context(), date)
	if err != nil {
		h.fail(w, r, "Entry not found", err)
		return
	}
	writeJSON(w, http.StatusOK, EntryDTO{Entry: entry, Breakdown: breakdown})
}

// =============================================================================
// SUMMARY HANDLERS
// =============================================================================

// GetMonthlySummary folds the stored entries of one month.
func (h *Handler) GetMonthlySummary(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		h.fail(w, r, "Invalid year", badRequest(err))
		return
	}
	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil {
		h.fail(w, r, "Invalid month", badRequest(err))
		return
	}

	summary, err := h.Ledger.MonthlySummary(r.Context(), year, time.Month(month))
	if err != nil {
		h.fail(w, r, "Failed to build summary", err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// GetYearlySummary folds the stored entries of one year.
func (h *Handler) GetYearlySummary(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		h.fail(w, r, "Invalid year", badRequest(err))
		return
	}

	summary, err := h.Ledger.YearlySummary(r.Context(), year)
	if err != nil {
		h.fail(w, r, "Failed to build summary", err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// =============================================================================
// HOLIDAY ENDPOINTS
// =============================================================================

// ListHolidays returns the holidays of a year, local ones included.
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		h.fail(w, r, "Invalid year", badRequest(err))
		return
	}

	cfg, err := h.Ledger.ActiveConfig(r.Context())
	if err != nil {
		h.fail(w, r, "Failed to load settings", err)
		return
	}
	writeJSON(w, http.StatusOK, cfg.Calendar.Holidays(year))
}

// =============================================================================
// SETTINGS HANDLERS
// =============================================================================

// GetSettings returns the active settings with defaults filled in.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.Ledger.ActiveConfig(r.Context())
	if err != nil {
		h.fail(w, r, "Failed to load settings", err)
		return
	}
	writeJSON(w, http.StatusOK, h.Factory.ToJSON(cfg))
}

// UpdateSettings validates and stores a new settings revision.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var sj factory.SettingsJSON
	if err := json.NewDecoder(r.Body).Decode(&sj); err != nil {
		h.fail(w, r, "Invalid settings", badRequest(err))
		return
	}
	cfg, err := h.Factory.FromJSON(sj)
	if err != nil {
		h.fail(w, r, "Invalid settings", err)
		return
	}

	if err := h.Store.SaveConfig(r.Context(), cfg); err != nil {
		h.fail(w, r, "Failed to save settings", err)
		return
	}
	h.logger.Info("settings updated",
		"travel_policy", cfg.Contract.TravelPolicy,
		"hourly_rate", cfg.Contract.HourlyRate.String())
	writeJSON(w, http.StatusOK, h.Factory.ToJSON(cfg))
}

// ListRevisions returns every stored settings revision, newest first.
func (h *Handler) ListRevisions(w http.ResponseWriter, r *http.Request) {
	revisions, err := h.Store.Revisions(r.Context())
	if err != nil {
		h.fail(w, r, "Failed to list revisions", err)
		return
	}

	dtos := make([]RevisionDTO, len(revisions))
	for i, rev := range revisions {
		dtos[i] = RevisionDTO{
			ID:        rev.ID.String(),
			Settings:  h.Factory.ToJSON(rev.Config.WithDefaults()),
			CreatedAt: rev.CreatedAt.Format(time.RFC3339),
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// NET INCOME HANDLERS
// =============================================================================

// EstimateNet estimates net pay for a gross amount, or for the gross of a
// stored month.
func (h *Handler) EstimateNet(w http.ResponseWriter, r *http.Request) {
	var req NetEstimateRequest
	if err := h.decode(r, &req); err != nil {
		h.fail(w, r, "Invalid estimate request", err)
		return
	}

	var gross decimal.Decimal
	switch {
	case req.Gross != nil:
		gross = decimal.NewFromFloat(*req.Gross)
	case req.Year != 0 && req.Month != 0:
		summary, err := h.Ledger.MonthlySummary(r.Context(), req.Year, time.Month(req.Month))
		if err != nil {
			h.fail(w, r, "Failed to build summary", err)
			return
		}
		gross = summary.TotalEarnings
	default:
		h.fail(w, r, "Invalid estimate request", fmt.Errorf("%w: gross or year and month are required", errBadRequest))
		return
	}

	res, err := h.Estimator.Estimate(r.Context(), gross, netincome.Method(req.Method))
	if err != nil {
		h.fail(w, r, "Failed to estimate net income", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// ListNetHistory returns every recorded payslip.
func (h *Handler) ListNetHistory(w http.ResponseWriter, r *http.Request) {
	records, err := h.Estimator.History(r.Context())
	if err != nil {
		h.fail(w, r, "Failed to list net history", err)
		return
	}
	if records == nil {
		records = []netincome.Record{}
	}
	writeJSON(w, http.StatusOK, records)
}

// RecordNet stores an observed gross/net pair.
func (h *Handler) RecordNet(w http.ResponseWriter, r *http.Request) {
	var req NetRecordRequest
	if err := h.decode(r, &req); err != nil {
		h.fail(w, r, "Invalid payslip", err)
		return
	}
	month, err := time.Parse("2006-01", req.Month)
	if err != nil {
		h.fail(w, r, "Invalid payslip", badRequest(err))
		return
	}

	rec, err := h.Estimator.Record(r.Context(), generic.DateOf(month),
		decimal.NewFromFloat(req.Gross), decimal.NewFromFloat(req.Net))
	if err != nil {
		h.fail(w, r, "Failed to record payslip", err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// =============================================================================
// HELPERS
// =============================================================================

// decode reads a JSON body into dst and validates its struct tags.
func (h *Handler) decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return badRequest(err)
	}
	return h.Factory.Validator().Struct(dst)
}

func (h *Handler) dateParam(w http.ResponseWriter, r *http.Request) (generic.Date, bool) {
	date, err := generic.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		h.fail(w, r, "Invalid date", badRequest(err))
		return generic.Date{}, false
	}
	return date, true
}

// fail writes err with the status it maps to. Server errors are logged.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, message string, err error) {
	status := errorStatus(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(message, "path", r.URL.Path, "error", err)
	}
	writeError(w, status, message, err)
}

func errorStatus(err error) int {
	var (
		fieldErrs    validator.ValidationErrors
		settingsErrs *factory.ValidationError
	)
	switch {
	case generic.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, errBadRequest),
		generic.IsClientError(err),
		errors.As(err, &fieldErrs),
		errors.As(err, &settingsErrs):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func badRequest(err error) error {
	return fmt.Errorf("%w: %v", errBadRequest, err)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
