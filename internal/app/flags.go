package app

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"lifeworld/internal/core"
	"lifeworld/internal/world"
)

// KVList collects repeatable key=value flags.
type KVList []string

func (l *KVList) String() string {
	return strings.Join(*l, ",")
}

// Set appends one key=value pair.
func (l *KVList) Set(value string) error {
	if !strings.Contains(value, "=") {
		return fmt.Errorf("expected key=value, got %q", value)
	}
	*l = append(*l, value)
	return nil
}

// Map returns the pairs as a map; later duplicates win.
func (l KVList) Map() map[string]string {
	out := make(map[string]string, len(l))
	for _, kv := range l {
		parts := strings.SplitN(kv, "=", 2)
		out[parts[0]] = parts[1]
	}
	return out
}

// Config represents the command-line parameters for the application.
type Config struct {
	Algorithm string
	Width     int
	Height    int
	Scale     int
	TPS       int
	Seed      int64
	Interval  time.Duration
	Density   float64
	Workers   int
	Set       KVList
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	def := world.DefaultConfig()
	return &Config{
		Algorithm: core.TagNormal,
		Width:     def.Width,
		Height:    def.Height,
		Scale:     4,
		TPS:       60,
		Seed:      def.Seed,
		Interval:  def.Interval,
		Density:   0.3,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Algorithm, "algo", c.Algorithm, "rule: "+strings.Join(core.Tags(), ", "))
	fs.IntVar(&c.Width, "w", c.Width, "grid width in cells")
	fs.IntVar(&c.Height, "h", c.Height, "grid height in cells")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for random seeding and rule randomness")
	fs.DurationVar(&c.Interval, "interval", c.Interval, "pause between generations")
	fs.Float64Var(&c.Density, "density", c.Density, "probability of life when seeding")
	fs.IntVar(&c.Workers, "workers", c.Workers, "goroutines per generation (0 = GOMAXPROCS)")
	fs.Var(&c.Set, "set", "rule parameter override in key=value form (repeatable)")
}

// World converts the flags into a world configuration.
func (c *Config) World() world.Config {
	cfg := world.DefaultConfig()
	cfg.Width = c.Width
	cfg.Height = c.Height
	cfg.Algorithm = strings.ToUpper(c.Algorithm)
	cfg.AlgorithmParams = c.Set.Map()
	cfg.Seed = c.Seed
	cfg.Interval = c.Interval
	cfg.Workers = c.Workers
	return cfg
}
