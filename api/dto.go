/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. Domain values
  (WorkEntry, DailyBreakdown, summaries, net Result) already carry JSON tags
  and are returned as-is; the types here wrap them or describe request
  bodies.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

TYPES:
  Entries:
    EntryDTO, BreakdownRequest

  Net income:
    NetEstimateRequest, NetRecordRequest

  Settings:
    RevisionDTO (wraps factory.SettingsJSON)

  Scenarios:
    ScenarioDTO, LoadScenarioRequest

VALIDATION:
  Request types carry go-playground/validator tags, checked in decode().

SEE ALSO:
  - handlers.go: Uses these types
  - factory/config.go: SettingsJSON type
*/
package api

import (
	"github.com/warp/earnings-engine/earnings"
	"github.com/warp/earnings-engine/factory"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// EntryDTO is a stored entry with its breakdown under the active settings.
type EntryDTO struct {
	Entry     earnings.WorkEntry      `json:"entry"`
	Breakdown earnings.DailyBreakdown `json:"breakdown"`
}

// BreakdownRequest prices an entry without storing it. Settings, when set,
// replace the active configuration for this call only.
type BreakdownRequest struct {
	Entry    earnings.WorkEntry    `json:"entry"`
	Settings *factory.SettingsJSON `json:"settings,omitempty"`
}

// NetEstimateRequest asks for a net estimate. Without gross, the gross of
// the given month is used.
type NetEstimateRequest struct {
	Gross  *float64 `json:"gross,omitempty" validate:"omitempty,gte=0"`
	Year   int      `json:"year,omitempty" validate:"omitempty,gte=1900,lte=2200"`
	Month  int      `json:"month,omitempty" validate:"omitempty,gte=1,lte=12"`
	Method string   `json:"method,omitempty" validate:"omitempty,oneof=empirical theoretical heuristic"`
}

// NetRecordRequest records an observed payslip.
type NetRecordRequest struct {
	Month string  `json:"month" validate:"required,datetime=2006-01"`
	Gross float64 `json:"gross" validate:"gt=0"`
	Net   float64 `json:"net" validate:"gte=0,ltefield=Gross"`
}

// RevisionDTO is one stored settings revision.
type RevisionDTO struct {
	ID        string               `json:"id"`
	Settings  factory.SettingsJSON `json:"settings"`
	CreatedAt string               `json:"created_at"`
}

// ScenarioDTO represents a demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// LoadScenarioRequest is the request to load a scenario.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id" validate:"required"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
