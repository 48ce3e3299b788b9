package config

import (
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Athlete.RestingHR != 60 {
		t.Errorf("Athlete.RestingHR = %v, want 60", cfg.Athlete.RestingHR)
	}
	if cfg.Athlete.MaxHR != 185 {
		t.Errorf("Athlete.MaxHR = %v, want 185", cfg.Athlete.MaxHR)
	}
	if cfg.Athlete.Sex != "male" {
		t.Errorf("Athlete.Sex = %q, want %q", cfg.Athlete.Sex, "male")
	}

	if cfg.Display.DistanceUnit != "km" {
		t.Errorf("Display.DistanceUnit = %q, want %q", cfg.Display.DistanceUnit, "km")
	}
	if cfg.Display.PaceUnit != "min/km" {
		t.Errorf("Display.PaceUnit = %q, want %q", cfg.Display.PaceUnit, "min/km")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		expectError bool
		errContains string
	}{
		{
			name:        "zero config is valid",
			config:      Config{},
			expectError: false,
		},
		{
			name:        "default config is valid",
			config:      DefaultConfig(),
			expectError: false,
		},
		{
			name: "invalid sex",
			config: Config{
				Athlete: AthleteConfig{Sex: "other"},
			},
			expectError: true,
			errContains: "sex",
		},
		{
			name: "resting HR above max HR",
			config: Config{
				Athlete: AthleteConfig{RestingHR: 190, MaxHR: 185},
			},
			expectError: true,
			errContains: "resting_hr",
		},
		{
			name: "bad distance unit",
			config: Config{
				Display: DisplayConfig{DistanceUnit: "furlongs"},
			},
			expectError: true,
			errContains: "distance_unit",
		},
		{
			name: "bad pace unit",
			config: Config{
				Display: DisplayConfig{PaceUnit: "min/furlong"},
			},
			expectError: true,
			errContains: "pace_unit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.expectError {
				if err == nil {
					t.Fatal("Validate() error = nil, want error")
				}
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("Validate() error = %q, want mention of %q", err, tt.errContains)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() error = %v, want nil", err)
			}
		})
	}
}
