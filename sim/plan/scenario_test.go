package plan

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flightrisk/flightrisk/sim"
)

func writeScenarioFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenario_Valid(t *testing.T) {
	path := writeScenarioFile(t, `
seed: 42
airport: JFK
departure: 2026-03-10T12:00:00Z
gate_close: 2026-03-10T15:00:00Z
has_bags: true
precheck: false
weather: Rain
traffic:
  mean: 45
  std_dev: 10
trials: 5000
`)
	s, err := LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, int64(42), s.Seed)
	assert.Equal(t, "JFK", s.Airport)
	assert.True(t, s.HasBags)
	assert.Equal(t, "Rain", s.Weather)
	assert.Equal(t, 45.0, s.Traffic.Mean)
	assert.Equal(t, 5000, s.Trials)
}

func TestLoadScenario_DefaultTrials(t *testing.T) {
	path := writeScenarioFile(t, `
airport: ISP
departure: 2026-03-10T12:00:00Z
gate_close: 2026-03-10T15:00:00Z
traffic:
  mean: 30
  std_dev: 5
`)
	s, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, sim.DefaultTrialCount, s.Trials)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario("/nonexistent/scenario.yaml")
	assert.Error(t, err)
}

func TestLoadScenario_MalformedYAML(t *testing.T) {
	path := writeScenarioFile(t, "airport: [unclosed")
	_, err := LoadScenario(path)
	assert.Error(t, err)
}

func TestScenario_Validate(t *testing.T) {
	valid := func() Scenario {
		return Scenario{
			Airport:   "JFK",
			Departure: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
			GateClose: time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC),
			Traffic:   TrafficSpec{Mean: 45, StdDev: 10},
			Trials:    1000,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Scenario)
		wantErr bool
	}{
		{"valid", func(s *Scenario) {}, false},
		{"missing airport", func(s *Scenario) { s.Airport = "" }, true},
		{"zero gate close", func(s *Scenario) { s.GateClose = time.Time{} }, true},
		{"zero departure", func(s *Scenario) { s.Departure = time.Time{} }, true},
		{"gate close before departure", func(s *Scenario) { s.GateClose = s.Departure.Add(-time.Hour) }, true},
		{"non-positive traffic mean", func(s *Scenario) { s.Traffic.Mean = 0 }, true},
		{"zero trials", func(s *Scenario) { s.Trials = 0 }, true},
		{"unknown weather", func(s *Scenario) { s.Weather = "Sharknado" }, true},
		{"known weather", func(s *Scenario) { s.Weather = "Snow" }, false},
		{"empty weather ok", func(s *Scenario) { s.Weather = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.mutate(&s)
			err := s.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWeatherMultiplier(t *testing.T) {
	assert.Equal(t, 1.0, WeatherMultiplier("Clear"))
	assert.Equal(t, 1.25, WeatherMultiplier("Rain"))
	assert.Equal(t, 1.5, WeatherMultiplier("Snow"))
	assert.Equal(t, 1.0, WeatherMultiplier("NotACondition"))
	assert.Equal(t, 1.0, WeatherMultiplier(""))
}
