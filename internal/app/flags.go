package app

import (
	"flag"
	"strconv"
)

// Config represents the command-line parameters shared by the frontends.
type Config struct {
	Sim   string
	Scene string
	Scale int
	TPS   int
	Seed  int64
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Sim: "hourglass", Scale: 4, TPS: 60, Seed: 42}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "built-in scene to run")
	fs.StringVar(&c.Scene, "scene", c.Scene, "scene YAML file, overrides -sim")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for grain placement")
}

// SimConfig returns the factory configuration map for the selected sim.
func (c *Config) SimConfig() map[string]string {
	m := map[string]string{"seed": strconv.FormatInt(c.Seed, 10)}
	if c.Scene != "" {
		m["file"] = c.Scene
	}
	return m
}
