package world

import (
	"strconv"
	"strings"
	"time"

	"lifeworld/internal/core"
)

// Config controls the world dimensions, rule selection and pacing.
type Config struct {
	Width  int
	Height int

	// Algorithm is the rule tag; unknown tags fall back to NORMAL.
	Algorithm string
	// AlgorithmParams holds flag-style overrides for the selected rule.
	AlgorithmParams map[string]string

	Seed     int64
	Interval time.Duration
	Workers  int
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:     160,
		Height:    120,
		Algorithm: core.TagNormal,
		Seed:      1,
		Interval:  50 * time.Millisecond,
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Keys that are not world settings are kept as algorithm overrides.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	for k, v := range cfg {
		switch k {
		case "w":
			if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
				c.Width = parsed
			}
		case "h":
			if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
				c.Height = parsed
			}
		case "algo":
			c.Algorithm = strings.ToUpper(v)
		case "seed":
			if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
				c.Seed = parsed
			}
		case "interval":
			if parsed, err := time.ParseDuration(v); err == nil && parsed >= 0 {
				c.Interval = parsed
			}
		case "workers":
			if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
				c.Workers = parsed
			}
		default:
			if c.AlgorithmParams == nil {
				c.AlgorithmParams = make(map[string]string)
			}
			c.AlgorithmParams[k] = v
		}
	}
	return c
}
