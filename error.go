package tinydfa

// CompileError reports why a pattern could not be compiled. Err is a
// *syntax.LexError, *syntax.ParseError, *ConfigError or *dfa.DFAError;
// use errors.As or errors.Is to inspect it.
type CompileError struct {
	Pattern string
	Err     error
}

// Error implements the error interface.
// Format: "tinydfa: Compile(`pattern`): cause"
func (e *CompileError) Error() string {
	return "tinydfa: Compile(`" + e.Pattern + "`): " + e.Err.Error()
}

// Unwrap returns the underlying error
func (e *CompileError) Unwrap() error {
	return e.Err
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "invalid config: " + e.Field + ": " + e.Message
}
