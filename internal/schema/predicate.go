package schema

import (
	"fmt"
	"math"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Predicate decides a field's visibility from the live configuration.
// Implementations must not mutate config.
type Predicate interface {
	Eval(config map[string]any) bool
}

// PredicateFunc adapts a plain function to Predicate.
type PredicateFunc func(config map[string]any) bool

// Eval implements Predicate.
func (f PredicateFunc) Eval(config map[string]any) bool {
	return f(config)
}

// ExprPredicate is a Predicate backed by a compiled expr-lang program. The
// configuration object is the expression's environment, so any field key can
// be referenced by name. Keys that are absent evaluate to nil.
type ExprPredicate struct {
	expression string
	program    *vm.Program
}

// Compile compiles expression into an ExprPredicate.
func Compile(expression string) (*ExprPredicate, error) {
	if expression == "" {
		return nil, fmt.Errorf("expression cannot be empty")
	}
	program, err := expr.Compile(expression,
		expr.Env(map[string]any{}),
		expr.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compile visibility expression %q: %w", expression, err)
	}
	return &ExprPredicate{expression: expression, program: program}, nil
}

// When is like Compile but panics on error. It is intended for static schema
// declarations.
func When(expression string) *ExprPredicate {
	p, err := Compile(expression)
	if err != nil {
		panic("schema.When: " + err.Error())
	}
	return p
}

// String returns the source expression.
func (p *ExprPredicate) String() string {
	return p.expression
}

// Eval runs the program against config. The result follows truthiness rules
// (nil, false, zero and "" are falsy). Evaluation errors hide the field; use
// Check to observe them.
func (p *ExprPredicate) Eval(config map[string]any) bool {
	ok, _ := p.Check(config)
	return ok
}

// Check is Eval with the evaluation error reported.
func (p *ExprPredicate) Check(config map[string]any) (bool, error) {
	if p == nil || p.program == nil {
		return false, nil
	}
	if config == nil {
		config = map[string]any{}
	}
	result, err := expr.Run(p.program, config)
	if err != nil {
		return false, fmt.Errorf("failed to evaluate visibility expression %q: %w", p.expression, err)
	}
	return Truthy(result), nil
}

// Truthy reports whether v counts as true for visibility purposes.
func Truthy(v any) bool {
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case float64:
		return v != 0 && !math.IsNaN(v)
	case float32:
		return v != 0 && !math.IsNaN(float64(v))
	case int:
		return v != 0
	case int64:
		return v != 0
	case int32:
		return v != 0
	case uint:
		return v != 0
	case uint64:
		return v != 0
	default:
		return true
	}
}

// checker is implemented by predicates whose evaluation can fail.
type checker interface {
	Check(config map[string]any) (bool, error)
}

var (
	_ Predicate = PredicateFunc(nil)
	_ Predicate = (*ExprPredicate)(nil)
	_ checker   = (*ExprPredicate)(nil)
)
