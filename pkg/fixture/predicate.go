package fixture

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/getmockd/clientmock/pkg/clientmock"
	"github.com/getmockd/clientmock/pkg/request"
)

// env is what a "that" expression sees.
type env struct {
	Request *request.Request `expr:"request"`
}

// CompilePredicate compiles a "that" expression. The predicate rejects a
// request only when the expression yields false or fails to evaluate.
func CompilePredicate(expression string) (clientmock.RequestPredicate, error) {
	program, err := expr.Compile(expression, expr.Env(env{}))
	if err != nil {
		return nil, fmt.Errorf("%w: compile %q: %v", ErrInvalidFixture, expression, err)
	}
	return func(r *request.Request) bool {
		return evaluate(program, r)
	}, nil
}

func evaluate(program *vm.Program, r *request.Request) bool {
	result, err := expr.Run(program, env{Request: r})
	if err != nil {
		return false
	}
	if b, ok := result.(bool); ok {
		return b
	}
	return true
}
