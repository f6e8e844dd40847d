package sand

import "strconv"

// Config selects a scene and optional overrides of its physics settings.
// Zero Grains and Scale, negative Elasticity and nil Sort keep the scene's
// own values.
type Config struct {
	Scene string
	File  string
	Seed  int64

	Grains     int
	Scale      int
	Elasticity int
	Sort       *bool
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Scene:      "snow",
		Seed:       1,
		Elasticity: -1,
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["scene"]; ok && v != "" {
		c.Scene = v
	}
	if v, ok := cfg["file"]; ok {
		c.File = v
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["grains"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Grains = parsed
		}
	}
	if v, ok := cfg["scale"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Scale = parsed
		}
	}
	if v, ok := cfg["elasticity"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Elasticity = parsed
		}
	}
	if v, ok := cfg["sort"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Sort = &parsed
		}
	}
	return c
}
