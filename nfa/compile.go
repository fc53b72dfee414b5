package nfa

import (
	"fmt"

	"github.com/coregx/tinydfa/syntax"
)

// CompilerConfig configures NFA compilation behavior
type CompilerConfig struct {
	// MaxRecursionDepth limits how deeply nested a syntax tree may be.
	// Zero means no limit, which keeps compilation total for any tree.
	MaxRecursionDepth int
}

// DefaultCompilerConfig returns a compiler configuration with sensible defaults
func DefaultCompilerConfig() CompilerConfig {
	return CompilerConfig{}
}

// Compiler compiles syntax trees into Thompson NFAs
type Compiler struct {
	config  CompilerConfig
	builder *Builder
	depth   int
}

// NewCompiler creates a new NFA compiler with the given configuration
func NewCompiler(config CompilerConfig) *Compiler {
	return &Compiler{config: config}
}

// NewDefaultCompiler creates a new NFA compiler with default configuration
func NewDefaultCompiler() *Compiler {
	return NewCompiler(DefaultCompilerConfig())
}

// Compile parses pattern and compiles it into an NFA
func (c *Compiler) Compile(pattern string) (*NFA, error) {
	node, err := syntax.Parse(pattern)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}
	return c.CompileNode(node)
}

// CompileNode compiles a parsed syntax tree into an NFA.
//
// With the default configuration this never fails for a tree produced by
// syntax.Parse or the syntax constructors.
func (c *Compiler) CompileNode(node *syntax.Node) (*NFA, error) {
	if node == nil {
		return nil, &CompileError{Err: fmt.Errorf("nil syntax tree")}
	}
	c.builder = NewBuilder()
	c.depth = 0

	frag, err := c.compile(node)
	if err != nil {
		return nil, err
	}
	return c.builder.Build(frag), nil
}

func (c *Compiler) compile(node *syntax.Node) (*Fragment, error) {
	c.depth++
	if c.config.MaxRecursionDepth > 0 && c.depth > c.config.MaxRecursionDepth {
		return nil, &CompileError{Err: ErrTooComplex}
	}
	defer func() { c.depth-- }()

	switch node.Op {
	case syntax.OpLiteral:
		return c.builder.Literal(node.Byte), nil
	case syntax.OpAnyByte:
		return c.builder.AnyByte(), nil
	case syntax.OpConcat, syntax.OpAlternate:
		left, err := c.compile(node.Sub[0])
		if err != nil {
			return nil, err
		}
		right, err := c.compile(node.Sub[1])
		if err != nil {
			return nil, err
		}
		if node.Op == syntax.OpConcat {
			return c.builder.Concat(left, right), nil
		}
		return c.builder.Alternate(left, right), nil
	case syntax.OpStar, syntax.OpPlus, syntax.OpQuest:
		inner, err := c.compile(node.Sub[0])
		if err != nil {
			return nil, err
		}
		switch node.Op {
		case syntax.OpStar:
			return c.builder.Star(inner), nil
		case syntax.OpPlus:
			return c.builder.Plus(inner), nil
		default:
			return c.builder.Quest(inner), nil
		}
	default:
		return nil, &CompileError{Err: fmt.Errorf("unsupported syntax op %v", node.Op)}
	}
}

// Compile is a convenience wrapper around NewDefaultCompiler().CompileNode.
func Compile(node *syntax.Node) (*NFA, error) {
	return NewDefaultCompiler().CompileNode(node)
}
