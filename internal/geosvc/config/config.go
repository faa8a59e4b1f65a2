package config

import (
	"os"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
)

// Config is everything the geo service reads from the environment. The
// schedule times are wall-clock in Timezone.
type Config struct {
	DBPath        string
	ProviderToken string
	Timezone      string

	CreateHour int
	CreateMin  int
	FetchHour  int
	FetchMin   int
	PostHour   int
	PostMin    int
	FetchDelay time.Duration
}

func Load() Config {
	return Config{
		DBPath:        envOr("GEO_DB_PATH", "geodaily.db"),
		ProviderToken: os.Getenv("GEOGUESSR_NCFA"),
		Timezone:      envOr("GEO_TIMEZONE", "Europe/Stockholm"),

		CreateHour: envIntOr("GEO_CREATE_HOUR", 7),
		CreateMin:  envIntOr("GEO_CREATE_MIN", 0),
		FetchHour:  envIntOr("GEO_FETCH_HOUR", 23),
		FetchMin:   envIntOr("GEO_FETCH_MIN", 30),
		PostHour:   envIntOr("GEO_POST_HOUR", 23),
		PostMin:    envIntOr("GEO_POST_MIN", 45),
		FetchDelay: time.Duration(envIntOr("GEO_FETCH_DELAY_SECS", 10)) * time.Second,
	}
}

// Location resolves the configured timezone, falling back to UTC.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Warnf("invalid timezone %q, using UTC: %s", c.Timezone, err)
		return time.UTC
	}
	return loc
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warnf("invalid %s value %q, using %d", key, v, def)
		return def
	}
	return n
}
