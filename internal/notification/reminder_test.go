package notification

import (
	"errors"
	"testing"
)

func enabledSettings(interval, start, end int) *ReminderSettings {
	return &ReminderSettings{
		Enabled:       true,
		IntervalHours: interval,
		StartHour:     start,
		EndHour:       end,
	}
}

func TestShouldRemindAt_Disabled(t *testing.T) {
	settings := enabledSettings(2, 8, 20)
	settings.Enabled = false
	for hour := 0; hour < 24; hour++ {
		if ShouldRemindAt(settings, hour) {
			t.Fatalf("disabled settings reminded at hour %d", hour)
		}
	}
}

func TestShouldRemindAt_IntervalWithinWindow(t *testing.T) {
	settings := enabledSettings(2, 8, 20)
	tests := []struct {
		hour int
		want bool
	}{
		{7, false},  // before window
		{8, true},   // window start
		{9, false},  // off the interval
		{10, true},
		{19, false},
		{20, true}, // window end is inclusive
		{21, false},
		{0, false},
		{23, false},
	}
	for _, tt := range tests {
		if got := ShouldRemindAt(settings, tt.hour); got != tt.want {
			t.Errorf("ShouldRemindAt(hour=%d) = %v, want %v", tt.hour, got, tt.want)
		}
	}
}

func TestShouldRemindAt_HourlyInterval(t *testing.T) {
	settings := enabledSettings(1, 9, 11)
	for hour := 9; hour <= 11; hour++ {
		if !ShouldRemindAt(settings, hour) {
			t.Errorf("hourly interval should remind at %d", hour)
		}
	}
	if ShouldRemindAt(settings, 12) {
		t.Error("should not remind after the window ends")
	}
}

func TestShouldRemindAt_NonPositiveInterval(t *testing.T) {
	if ShouldRemindAt(enabledSettings(0, 8, 20), 8) {
		t.Error("zero interval must never remind")
	}
}

func TestDefaultReminderSettings(t *testing.T) {
	settings := DefaultReminderSettings("some-user")
	if settings.Enabled {
		t.Error("reminders should default to disabled")
	}
	if settings.IntervalHours != DefaultIntervalHours {
		t.Errorf("IntervalHours = %d, want %d", settings.IntervalHours, DefaultIntervalHours)
	}
	if settings.StartHour != DefaultStartHour || settings.EndHour != DefaultEndHour {
		t.Errorf("window = [%d, %d], want [%d, %d]",
			settings.StartHour, settings.EndHour, DefaultStartHour, DefaultEndHour)
	}
}

func TestValidateReminderSettings(t *testing.T) {
	tests := []struct {
		name     string
		settings *ReminderSettings
		wantErr  bool
	}{
		{"valid defaults", enabledSettings(2, 8, 20), false},
		{"whole day", enabledSettings(1, 0, 23), false},
		{"zero interval", enabledSettings(0, 8, 20), true},
		{"interval too large", enabledSettings(25, 8, 20), true},
		{"negative start", enabledSettings(2, -1, 20), true},
		{"end past midnight", enabledSettings(2, 8, 24), true},
		{"start after end", enabledSettings(2, 20, 8), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateReminderSettings(tt.settings)
			if tt.wantErr && !errors.Is(err, ErrInvalidSettings) {
				t.Errorf("err = %v, want ErrInvalidSettings", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
