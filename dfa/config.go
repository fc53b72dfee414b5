package dfa

// Config configures DFA construction.
//
// The zero value is valid: no state limit and no acceleration. Use
// DefaultConfig for the settings Compile uses.
type Config struct {
	// MaxStates is the maximum number of DFA states subset construction may
	// create before giving up with ErrStateLimitExceeded.
	//
	// Default: 0 (unlimited)
	//
	// Subset construction can be exponential in the NFA size for patterns
	// like (a|b)*a(a|b)(a|b)(a|b). Callers that compile untrusted patterns
	// should set a limit.
	MaxStates int

	// Accelerate enables accelerated states: states that loop back to
	// themselves on all but at most three bytes skip ahead with memchr
	// instead of stepping one byte at a time.
	//
	// Default: true
	Accelerate bool
}

// DefaultConfig returns a configuration with no state limit and
// acceleration enabled.
func DefaultConfig() Config {
	return Config{
		MaxStates:  0,
		Accelerate: true,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.MaxStates < 0 {
		return &DFAError{
			Kind:    InvalidConfig,
			Message: "MaxStates must be >= 0",
		}
	}
	return nil
}

// WithMaxStates returns a new config with the specified state limit
func (c Config) WithMaxStates(maxStates int) Config {
	c.MaxStates = maxStates
	return c
}

// WithAcceleration returns a new config with acceleration enabled/disabled
func (c Config) WithAcceleration(enabled bool) Config {
	c.Accelerate = enabled
	return c
}
