/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the database with realistic
	data for demos. Each scenario stores a settings revision, a set of work
	entries and, optionally, payslips for the net estimate.

AVAILABLE SCENARIOS:

	office-month:      Standard 8h weekdays for a month, default contract
	field-technician:  Travel-heavy week, rate_all policy, CCNL allowance
	standby-weekend:   On-call weekend with a night call-out

HOW SCENARIOS WORK:
 1. Reset database (clear all data)
 2. Parse settings JSON via factory
 3. Save entries
 4. Optionally record payslips

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "standby-weekend"}

NOTE:

	Scenarios reset the database. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: Handler dependencies
  - factory/config.go: Settings JSON definitions
*/
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/earnings-engine/earnings"
	"github.com/warp/earnings-engine/generic"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "office-month",
		Name:        "Office Month",
		Description: "Standard 8h weekdays in March 2025 with two recorded payslips",
	},
	{
		ID:          "field-technician",
		Name:        "Field Technician",
		Description: "Long travel days paid at the travel rate with a proportional allowance",
	},
	{
		ID:          "standby-weekend",
		Name:        "Standby Weekend",
		Description: "24h on-call weekend with a night call-out on Sunday",
	},
}

const fieldTechnicianSettings = `{
	"contract": {"travel_time_policy": "rate_all", "travel_compensation_rate": 0.9},
	"travel_allowance": {
		"enabled": true,
		"rules": ["with_travel", "proportional_ccnl"]
	},
	"meal_allowance": {"enabled": true}
}`

const standbyWeekendSettings = `{
	"travel_allowance": {"enabled": true, "rules": ["also_on_standby"]},
	"standby": {
		"enabled": true,
		"allowance_type": "24h",
		"days": ["2025-03-15", "2025-03-16"]
	}
}`

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// LoadScenario loads a predefined scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := h.decode(r, &req); err != nil {
		h.fail(w, r, "Invalid request body", err)
		return
	}

	var load func(ctx context.Context) error
	switch req.ScenarioID {
	case "office-month":
		load = h.loadOfficeMonthScenario
	case "field-technician":
		load = h.loadFieldTechnicianScenario
	case "standby-weekend":
		load = h.loadStandbyWeekendScenario
	default:
		h.fail(w, r, "Unknown scenario", fmt.Errorf("%w: %q", errBadRequest, req.ScenarioID))
		return
	}

	ctx := r.Context()
	if err := h.Store.Reset(ctx); err != nil {
		h.fail(w, r, "Failed to reset database", err)
		return
	}
	if err := load(ctx); err != nil {
		h.fail(w, r, "Failed to load scenario", err)
		return
	}

	h.logger.Info("scenario loaded", "scenario", req.ScenarioID)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "scenario": req.ScenarioID})
}

// ResetDatabase deletes every entry, settings revision and payslip.
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		h.fail(w, r, "Failed to reset database", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

func (h *Handler) loadOfficeMonthScenario(ctx context.Context) error {
	if err := h.Store.SaveConfig(ctx, earnings.DefaultConfig()); err != nil {
		return err
	}

	for _, d := range generic.MonthPeriod(2025, time.March).Days() {
		if d.IsSaturday() || d.IsSunday() {
			continue
		}
		entry := earnings.WorkEntry{
			Date: d,
			OrdinaryShifts: []earnings.TimePair{
				{Start: "08:30", End: "12:30"},
				{Start: "13:30", End: "17:30"},
			},
			Meals: earnings.MealFlags{LunchVoucher: true},
		}
		if err := h.Store.SaveEntry(ctx, entry); err != nil {
			return err
		}
	}

	payslips := []struct {
		month      time.Month
		gross, net int64
	}{
		{time.January, 2890, 2195},
		{time.February, 2750, 2102},
	}
	for _, p := range payslips {
		_, err := h.Estimator.Record(ctx, generic.NewDate(2025, p.month, 1),
			decimal.NewFromInt(p.gross), decimal.NewFromInt(p.net))
		if err != nil {
			return err
		}
	}
	return nil
}

func (h *Handler) loadFieldTechnicianScenario(ctx context.Context) error {
	cfg, err := h.Factory.ParseConfig(fieldTechnicianSettings)
	if err != nil {
		return err
	}
	if err := h.Store.SaveConfig(ctx, cfg); err != nil {
		return err
	}

	start := generic.NewDate(2025, time.March, 10)
	for i := 0; i < 5; i++ {
		entry := earnings.WorkEntry{
			Date: start.AddDays(i),
			OrdinaryShifts: []earnings.TimePair{
				{Start: "08:00", End: "12:00"},
				{Start: "13:00", End: "17:00"},
			},
			Travel: earnings.Travel{
				Outbound: earnings.TimePair{Start: "06:30", End: "08:00"},
				Return:   earnings.TimePair{Start: "17:00", End: "18:30"},
			},
			Meals: earnings.MealFlags{LunchVoucher: true, DinnerCash: decimal.RequireFromString("15.00")},
		}
		// Friday is a half day on site.
		if i == 4 {
			entry.OrdinaryShifts = entry.OrdinaryShifts[:1]
			entry.Travel.Return = earnings.TimePair{Start: "12:00", End: "13:30"}
			entry.Meals = earnings.MealFlags{}
		}
		if err := h.Store.SaveEntry(ctx, entry); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handler) loadStandbyWeekendScenario(ctx context.Context) error {
	cfg, err := h.Factory.ParseConfig(standbyWeekendSettings)
	if err != nil {
		return err
	}
	if err := h.Store.SaveConfig(ctx, cfg); err != nil {
		return err
	}

	entries := []earnings.WorkEntry{
		{Date: generic.NewDate(2025, time.March, 15)},
		{
			Date: generic.NewDate(2025, time.March, 16),
			Interventions: []earnings.Intervention{{
				Travel: earnings.Travel{
					Outbound: earnings.TimePair{Start: "22:30", End: "23:00"},
					Return:   earnings.TimePair{Start: "01:00", End: "01:30"},
				},
				Work: []earnings.TimePair{{Start: "23:00", End: "01:00"}},
			}},
		},
	}
	for _, e := range entries {
		if err := h.Store.SaveEntry(ctx, e); err != nil {
			return err
		}
	}
	return nil
}
