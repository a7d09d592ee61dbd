// Package tools provides the structured tool responders exposed to
// agents: a simulated weather lookup and a simulated local-time lookup.
// Both are total functions: any input, including empty or nonsensical
// text, produces a formatted answer rather than an error.
package tools

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/castlebay/agentlab"
)

type weatherEntry struct {
	condition string
	tempC     int
}

// WeatherResponder answers free-text location queries with a one-line
// simulated weather report. Lookup is case-insensitive over a fixed city
// table; the table is built once and never mutated, so the responder is
// safe for concurrent use.
type WeatherResponder struct {
	// keyed by lowercased city name
	entries map[string]weatherEntry
}

// NewWeatherResponder creates a WeatherResponder with the built-in city
// table.
func NewWeatherResponder() *WeatherResponder {
	known := map[string]weatherEntry{
		"Seattle":  {"Rainy", 12},
		"London":   {"Cloudy", 15},
		"Paris":    {"Partly cloudy", 18},
		"Tokyo":    {"Sunny", 22},
		"New York": {"Clear", 25},
		"Sydney":   {"Sunny", 26},
	}

	entries := make(map[string]weatherEntry, len(known))
	for city, e := range known {
		entries[strings.ToLower(city)] = e
	}
	return &WeatherResponder{entries: entries}
}

// Report returns a one-line weather description for the location. The
// location must match a known city exactly apart from letter case; no
// whitespace trimming is applied. Unknown locations fall through to a
// mild-conditions default. The input is echoed back as supplied in both
// branches.
func (w *WeatherResponder) Report(location string) string {
	if e, ok := w.entries[strings.ToLower(location)]; ok {
		return fmt.Sprintf("Weather in %s: %s, %d°C (%d°F)", location, e.condition, e.tempC, celsiusToFahrenheit(e.tempC))
	}
	return fmt.Sprintf("Weather in %s: Mild conditions, approximately 18°C (64°F)", location)
}

// celsiusToFahrenheit converts with integer arithmetic, truncating toward
// zero before the offset. 12°C yields 53°F, not the 54°F of round-to-nearest.
func celsiusToFahrenheit(c int) int {
	return c*9/5 + 32
}

// NewWeatherTool wraps a WeatherResponder as an agent tool named
// getWeather.
func NewWeatherTool() agentlab.AgentFunction {
	responder := NewWeatherResponder()
	return agentlab.NewAgentFunction(
		"getWeather",
		"Get the current weather for a given location.",
		func(args map[string]interface{}) (interface{}, error) {
			location, ok := args["location"].(string)
			if !ok {
				return nil, fmt.Errorf("location not provided")
			}
			return responder.Report(location), nil
		},
		[]agentlab.Parameter{
			{Name: "location", Description: "The city to get the weather for, e.g. Seattle.", Type: reflect.TypeOf(""), Required: true},
		},
	)
}
