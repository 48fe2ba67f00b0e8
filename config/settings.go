package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// RetentionWindow reads RETENTION_DAYS (default 5) as a duration.
func RetentionWindow() time.Duration {
	days := 5
	if raw := os.Getenv("RETENTION_DAYS"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			log.Printf("Invalid RETENTION_DAYS %q, using default %d", raw, days)
		} else {
			days = parsed
		}
	}
	return time.Duration(days) * 24 * time.Hour
}

// CleanupSchedule reads CLEANUP_CRON, defaulting to daily at 02:00.
func CleanupSchedule() string {
	if spec := os.Getenv("CLEANUP_CRON"); spec != "" {
		return spec
	}
	return "0 2 * * *"
}

// CleanupLocation reads CLEANUP_TZ, defaulting to Asia/Kolkata.
func CleanupLocation() *time.Location {
	name := os.Getenv("CLEANUP_TZ")
	if name == "" {
		name = "Asia/Kolkata"
	}
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("Invalid CLEANUP_TZ %q, using local time: %v", name, err)
		return time.Local
	}
	return location
}

// DefaultRadiusMeters reads DEFAULT_RADIUS_METERS (default 5000).
func DefaultRadiusMeters() float64 {
	if raw := os.Getenv("DEFAULT_RADIUS_METERS"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err == nil && parsed > 0 {
			return parsed
		}
		log.Printf("Invalid DEFAULT_RADIUS_METERS %q, using default", raw)
	}
	return 5000
}
