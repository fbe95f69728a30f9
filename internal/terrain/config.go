package terrain

import "strconv"

// Config holds the shift tunables.
type Config struct {
	// SlopeLimit is the largest height difference allowed between settled
	// neighbours, and the size of one cascade and one interactive edit step.
	SlopeLimit float32
	// Rate is the animation speed in height units per second.
	Rate float32
}

// DefaultConfig returns the standard tunables.
func DefaultConfig() Config {
	return Config{SlopeLimit: 0.5, Rate: 8.4}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["slope_limit"]; ok {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil && parsed > 0 {
			c.SlopeLimit = float32(parsed)
		}
	}
	if v, ok := cfg["shift_rate"]; ok {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil && parsed > 0 {
			c.Rate = float32(parsed)
		}
	}
	return c
}
