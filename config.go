package tinydfa

// Config controls compilation.
//
// Example:
//
//	config := tinydfa.DefaultConfig()
//	config.Minimize = false // keep the subset-construction DFA
//	p, err := tinydfa.CompileWithConfig("(a|b)*", config)
type Config struct {
	// Minimize runs partition refinement after subset construction.
	// Default: true
	Minimize bool

	// MaxStates caps the number of states subset construction may create.
	// Zero means no limit.
	// Default: 0
	MaxStates int

	// UsePrefilter enables literal-based rejection before the DFA runs.
	// Default: true
	UsePrefilter bool

	// MinPrefilterLen is the minimum literal length for substring
	// prefilters. Sets of up to three single bytes are always used.
	// Default: 3
	MinPrefilterLen int

	// Accelerate lets the matcher skip over self-looping states with
	// memchr.
	// Default: true
	Accelerate bool
}

// DefaultConfig returns the configuration used by Compile and MustCompile.
func DefaultConfig() Config {
	return Config{
		Minimize:        true,
		MaxStates:       0,
		UsePrefilter:    true,
		MinPrefilterLen: 3,
		Accelerate:      true,
	}
}

// Validate checks if the configuration is valid.
//
// Valid ranges:
//   - MaxStates: >= 0
//   - MinPrefilterLen: >= 1 when UsePrefilter is set
func (c Config) Validate() error {
	if c.MaxStates < 0 {
		return &ConfigError{
			Field:   "MaxStates",
			Message: "must be >= 0",
		}
	}
	if c.UsePrefilter && c.MinPrefilterLen < 1 {
		return &ConfigError{
			Field:   "MinPrefilterLen",
			Message: "must be >= 1",
		}
	}
	return nil
}

// WithMinimize returns a new config with minimization enabled/disabled
func (c Config) WithMinimize(enabled bool) Config {
	c.Minimize = enabled
	return c
}

// WithMaxStates returns a new config with the specified state limit
func (c Config) WithMaxStates(maxStates int) Config {
	c.MaxStates = maxStates
	return c
}

// WithPrefilter returns a new config with prefiltering enabled/disabled
func (c Config) WithPrefilter(enabled bool) Config {
	c.UsePrefilter = enabled
	return c
}

// WithMinPrefilterLen returns a new config with the specified minimum
// prefilter literal length
func (c Config) WithMinPrefilterLen(n int) Config {
	c.MinPrefilterLen = n
	return c
}

// WithAcceleration returns a new config with acceleration enabled/disabled
func (c Config) WithAcceleration(enabled bool) Config {
	c.Accelerate = enabled
	return c
}
