package tools

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/castlebay/agentlab"
)

const timeLayout = "2006-01-02 15:04:05"

// TimeResponder answers timezone-code queries with the current local time
// for that zone, derived from a single UTC instant. Offsets are whole
// hours from a fixed table; there is no timezone database and no DST
// arithmetic beyond the static entries.
type TimeResponder struct {
	// now supplies the current instant; injected for deterministic tests.
	now func() time.Time
	// keyed by uppercased timezone code
	offsets map[string]int
}

// NewTimeResponder creates a TimeResponder with the built-in offset
// table. A nil clock falls back to time.Now.
func NewTimeResponder(now func() time.Time) *TimeResponder {
	if now == nil {
		now = time.Now
	}
	return &TimeResponder{
		now: now,
		offsets: map[string]int{
			"UTC":  0,
			"GMT":  0,
			"PST":  -8,
			"PDT":  -7,
			"EST":  -5,
			"EDT":  -4,
			"CST":  -6,
			"CDT":  -5,
			"MST":  -7,
			"MDT":  -6,
			"JST":  9,
			"CET":  1,
			"CEST": 2,
			"AEST": 10,
			"AEDT": 11,
		},
	}
}

// Report returns a one-line current-time description for the timezone
// code, matched case-insensitively. Unknown codes fall back to UTC, with
// the original input echoed in a parenthetical note.
func (t *TimeResponder) Report(timezone string) string {
	utcNow := t.now().UTC()
	code := strings.ToUpper(timezone)
	if offset, ok := t.offsets[code]; ok {
		local := utcNow.Add(time.Duration(offset) * time.Hour)
		return fmt.Sprintf("Current time in %s: %s", code, local.Format(timeLayout))
	}
	return fmt.Sprintf("Current time in UTC: %s (timezone '%s' not recognized, showing UTC)", utcNow.Format(timeLayout), timezone)
}

// NewTimeTool wraps a TimeResponder as an agent tool named getTime. A nil
// clock falls back to time.Now.
func NewTimeTool(now func() time.Time) agentlab.AgentFunction {
	responder := NewTimeResponder(now)
	return agentlab.NewAgentFunction(
		"getTime",
		"Get the current local time for a given timezone code.",
		func(args map[string]interface{}) (interface{}, error) {
			timezone, ok := args["timezone"].(string)
			if !ok {
				return nil, fmt.Errorf("timezone not provided")
			}
			return responder.Report(timezone), nil
		},
		[]agentlab.Parameter{
			{Name: "timezone", Description: "The timezone code to get the time for, e.g. PST or JST.", Type: reflect.TypeOf(""), Required: true},
		},
	)
}
