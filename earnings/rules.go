package earnings

import (
	"fmt"
	"strings"
)

// =============================================================================
// TRAVEL TIME POLICY - How commute minutes are paid
// =============================================================================

// TravelTimePolicy is the single axis along which ordinary pay varies.
//
//	AsWork:         work+travel summed and paid as work
//	RateExcess:     daily rate covers the first 8h, all excess at travel rate
//	RateAll:        travel always at travel rate, work over 8h is overtime
//	OvertimeExcess: daily rate covers the first 8h, all excess is overtime
type TravelTimePolicy string

const (
	AsWork         TravelTimePolicy = "as_work"
	RateExcess     TravelTimePolicy = "rate_excess"
	RateAll        TravelTimePolicy = "rate_all"
	OvertimeExcess TravelTimePolicy = "overtime_excess"
)

// Valid reports whether p is one of the four policies.
func (p TravelTimePolicy) Valid() bool {
	switch p {
	case AsWork, RateExcess, RateAll, OvertimeExcess:
		return true
	default:
		return false
	}
}

// ParseTravelTimePolicy accepts the policy names case-insensitively, with
// dashes or underscores.
func ParseTravelTimePolicy(s string) (TravelTimePolicy, error) {
	p := TravelTimePolicy(normalizeName(s))
	if !p.Valid() {
		return "", fmt.Errorf("unknown travel time policy %q", s)
	}
	return p, nil
}

// =============================================================================
// TRAVEL ALLOWANCE RULES - A closed vocabulary with a total priority order
// =============================================================================

// TravelRule is one option of the travel allowance configuration. Activation
// rules decide whether the allowance applies; amount rules decide how much.
type TravelRule uint8

const (
	// Activation rules, highest priority first.
	RuleAlways TravelRule = iota + 1
	RuleFullDayOnly
	RuleWithTravel
	RuleAlsoOnStandby

	// Amount rules, highest priority first.
	RuleProportionalCcnl
	RuleHalfAllowanceHalfDay
	RuleFullAllowanceHalfDay
)

var travelRuleNames = map[TravelRule]string{
	RuleAlways:               "always",
	RuleFullDayOnly:          "full_day_only",
	RuleWithTravel:           "with_travel",
	RuleAlsoOnStandby:        "also_on_standby",
	RuleProportionalCcnl:     "proportional_ccnl",
	RuleHalfAllowanceHalfDay: "half_allowance_half_day",
	RuleFullAllowanceHalfDay: "full_allowance_half_day",
}

// ActivationRules lists activation rules in evaluation order.
var ActivationRules = []TravelRule{RuleAlways, RuleFullDayOnly, RuleWithTravel, RuleAlsoOnStandby}

func (r TravelRule) String() string {
	if n, ok := travelRuleNames[r]; ok {
		return n
	}
	return fmt.Sprintf("travel_rule(%d)", uint8(r))
}

// ParseTravelRule parses a rule name. Upper-case legacy names such as
// "WITH_TRAVEL" and "PROPORTIONAL_CCNL" are accepted.
func ParseTravelRule(s string) (TravelRule, error) {
	n := normalizeName(s)
	for r, name := range travelRuleNames {
		if name == n {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown travel allowance rule %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (r TravelRule) MarshalText() ([]byte, error) {
	if _, ok := travelRuleNames[r]; !ok {
		return nil, fmt.Errorf("invalid travel allowance rule %d", uint8(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *TravelRule) UnmarshalText(b []byte) error {
	parsed, err := ParseTravelRule(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// TravelRuleSet is a set of rules. Duplicates collapse; order is irrelevant.
type TravelRuleSet uint16

// NewTravelRuleSet builds a set, ignoring unknown values.
func NewTravelRuleSet(rules ...TravelRule) TravelRuleSet {
	var s TravelRuleSet
	for _, r := range rules {
		if _, ok := travelRuleNames[r]; ok {
			s |= 1 << r
		}
	}
	return s
}

// Has reports membership.
func (s TravelRuleSet) Has(r TravelRule) bool { return s&(1<<r) != 0 }

// HasActivation reports whether any activation rule is present.
func (s TravelRuleSet) HasActivation() bool {
	for _, r := range ActivationRules {
		if s.Has(r) {
			return true
		}
	}
	return false
}

func normalizeName(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
}
