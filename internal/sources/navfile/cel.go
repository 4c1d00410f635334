package navfile

import (
	"fmt"

	"github.com/google/cel-go/cel"
	celext "github.com/google/cel-go/ext"
)

// celMatcher evaluates a compiled CEL expression against the location,
// bound to the string variable `url`.
type celMatcher struct {
	expr string
	prg  cel.Program
}

// Match is total: an evaluation error or a non-boolean result is not active.
func (m *celMatcher) Match(location string) bool {
	out, _, err := m.prg.Eval(map[string]interface{}{"url": location})
	if err != nil {
		return false
	}
	b, ok := out.Value().(bool)
	return ok && b
}

func (m *celMatcher) String() string {
	return "cel(" + m.expr + ")"
}

// celCompiler owns the CEL environment shared by every expression of a document.
type celCompiler struct {
	env *cel.Env
}

func newCELCompiler() (*celCompiler, error) {
	env, err := cel.NewEnv(
		cel.Variable("url", cel.StringType),
		celext.Strings(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	return &celCompiler{env: env}, nil
}

// compile parses and type-checks expr; it must evaluate to a bool.
func (c *celCompiler) compile(expr string) (*celMatcher, error) {
	ast, issues := c.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("cel %q: compilation error: %w", expr, issues.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("cel %q: must evaluate to bool, got %s", expr, ast.OutputType())
	}
	prg, err := c.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("cel %q: program error: %w", expr, err)
	}
	return &celMatcher{expr: expr, prg: prg}, nil
}
