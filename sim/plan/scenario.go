// Package plan evaluates whole trips: it assembles a RiskQuery from a trip
// scenario (airport, departure and gate-close times, weather) and searches
// the departure timeline for safe windows.
package plan

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/flightrisk/flightrisk/sim"
)

// TrafficSpec parameterizes the road delay (Normal distribution).
type TrafficSpec struct {
	Mean   float64 `yaml:"mean"`
	StdDev float64 `yaml:"std_dev"`
}

// Scenario is the top-level trip configuration. Loaded from YAML via
// LoadScenario(path).
type Scenario struct {
	Seed      int64       `yaml:"seed"`
	Airport   string      `yaml:"airport"`
	Departure time.Time   `yaml:"departure"`
	GateClose time.Time   `yaml:"gate_close"`
	HasBags   bool        `yaml:"has_bags"`
	Precheck  bool        `yaml:"precheck"`
	Weather   string      `yaml:"weather,omitempty"`
	Traffic   TrafficSpec `yaml:"traffic"`
	Trials    int         `yaml:"trials,omitempty"`  // 0 = sim.DefaultTrialCount
	Workers   int         `yaml:"workers,omitempty"` // 0 = single-threaded
}

// weatherMultipliers maps a weather condition to its traffic impact
// (based on general Dept of Transportation stats). Unknown conditions
// fall back to 1.0.
var weatherMultipliers = map[string]float64{
	"Clear":        1.0,
	"Clouds":       1.05,
	"Mist":         1.10,
	"Drizzle":      1.15,
	"Fog":          1.20,
	"Rain":         1.25,
	"Thunderstorm": 1.40,
	"Snow":         1.50,
}

// WeatherMultiplier returns the traffic impact factor for a condition.
func WeatherMultiplier(condition string) float64 {
	if m, ok := weatherMultipliers[condition]; ok {
		return m
	}
	return 1.0
}

// LoadScenario reads and validates a Scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if s.Trials == 0 {
		s.Trials = sim.DefaultTrialCount
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the scenario's structural constraints. Distribution-level
// constraints are re-checked by the estimator itself.
func (s *Scenario) Validate() error {
	if s.Airport == "" {
		return fmt.Errorf("airport code is required")
	}
	if s.GateClose.IsZero() {
		return fmt.Errorf("gate_close is required")
	}
	if s.Departure.IsZero() {
		return fmt.Errorf("departure is required")
	}
	if !s.GateClose.After(s.Departure) {
		return fmt.Errorf("gate_close %s must be after departure %s", s.GateClose, s.Departure)
	}
	if s.Traffic.Mean <= 0 {
		return fmt.Errorf("traffic.mean must be positive, got %f", s.Traffic.Mean)
	}
	if s.Trials < 1 {
		return fmt.Errorf("trials must be >= 1, got %d", s.Trials)
	}
	if s.Weather != "" {
		if _, ok := weatherMultipliers[s.Weather]; !ok {
			return fmt.Errorf("unknown weather condition %q", s.Weather)
		}
	}
	return nil
}
