package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"care-tracker/internal/careday"
)

// Config keeps runtime settings for the tracker.
type Config struct {
	DatabaseURL string

	// Care-day rules.
	Timezone     string
	DayResetHour int

	// Reconciliation schedule.
	TimerCheckInterval  time.Duration
	NightlyReminderTime string // HH:MM local

	// Twilio SMS notifier. Empty credentials disable SMS.
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string

	// Optional Telegram notifier (household group chat broadcast).
	TelegramToken  string
	TelegramChatID int64

	// Home Assistant LED indicator. Empty token disables it.
	HassURL          string
	HassToken        string
	LEDExpiredScript string
	LEDActiveScript  string
	LEDClearScript   string
}

// Load reads configuration from environment variables with sane defaults.
func Load() (Config, error) {
	cfg := Config{
		DatabaseURL:         strings.TrimSpace(os.Getenv("DATABASE_URL")),
		Timezone:            strings.TrimSpace(os.Getenv("TIMEZONE")),
		DayResetHour:        parseHour(strings.TrimSpace(os.Getenv("DAY_RESET_HOUR"))),
		TimerCheckInterval:  parseMinutes(strings.TrimSpace(os.Getenv("TIMER_CHECK_MINUTES"))),
		NightlyReminderTime: strings.TrimSpace(os.Getenv("NIGHTLY_REMINDER_TIME")),
		TwilioAccountSID:    strings.TrimSpace(os.Getenv("TWILIO_ACCOUNT_SID")),
		TwilioAuthToken:     strings.TrimSpace(os.Getenv("TWILIO_AUTH_TOKEN")),
		TwilioFromNumber:    strings.TrimSpace(os.Getenv("TWILIO_PHONE_NUMBER")),
		TelegramToken:       strings.TrimSpace(os.Getenv("TELEGRAM_TOKEN")),
		HassURL:             strings.TrimSpace(os.Getenv("HASS_URL")),
		HassToken:           strings.TrimSpace(os.Getenv("HASS_TOKEN")),
		LEDExpiredScript:    strings.TrimSpace(os.Getenv("LED_EXPIRED_SCRIPT")),
		LEDActiveScript:     strings.TrimSpace(os.Getenv("LED_ACTIVE_SCRIPT")),
		LEDClearScript:      strings.TrimSpace(os.Getenv("LED_CLEAR_SCRIPT")),
	}

	if raw := strings.TrimSpace(os.Getenv("TELEGRAM_CHAT_ID")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("TELEGRAM_CHAT_ID: %w", err)
		}
		cfg.TelegramChatID = id
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "care_tracker.db"
	}
	if cfg.Timezone == "" {
		cfg.Timezone = careday.DefaultTimezone
	}
	if cfg.TimerCheckInterval == 0 {
		cfg.TimerCheckInterval = time.Minute
	}
	if cfg.NightlyReminderTime == "" {
		cfg.NightlyReminderTime = "21:00"
	}
	if cfg.HassURL == "" {
		cfg.HassURL = "http://192.168.1.50:8123"
	}
	if cfg.LEDExpiredScript == "" {
		cfg.LEDExpiredScript = "downstairs_spotlight_led_green_pulse"
	}
	if cfg.LEDActiveScript == "" {
		cfg.LEDActiveScript = "downstairs_spotlight_led_yellow_solid"
	}
	if cfg.LEDClearScript == "" {
		cfg.LEDClearScript = "downstairs_spotlight_led_clear"
	}

	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return cfg, fmt.Errorf("TIMEZONE %q: %w", cfg.Timezone, err)
	}

	return cfg, nil
}

// Location resolves the configured timezone. Load has already validated it.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func parseHour(raw string) int {
	if raw == "" {
		return careday.DefaultResetHour
	}
	hour, err := strconv.Atoi(raw)
	if err != nil || hour < 0 || hour > 23 {
		return careday.DefaultResetHour
	}
	return hour
}

func parseMinutes(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	minutes, err := strconv.Atoi(raw)
	if err != nil || minutes <= 0 {
		return 0
	}
	return time.Duration(minutes) * time.Minute
}
