package rewrite

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

const (
	evalOpen  = "<EVAL:"
	evalClose = '>'
	evalTimes = "x"
)

var errUnterminated = errors.New("missing closing '>'")

// EvalError reports an eval marker whose expression is not a product of unsigned integers.
type EvalError struct {
	Expr string
	Err  error
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("malformed eval expression %q: %v", e.Expr, e.Err)
}

func (e *EvalError) Unwrap() error {
	return e.Err
}

// Eval computes the product of an expression such as "32x4". Factors are
// unbounded unsigned integers. A single number evaluates to itself.
func Eval(expr string) (*big.Int, error) {
	product := big.NewInt(1)
	for _, field := range strings.Split(strings.TrimSpace(expr), evalTimes) {
		if !isDigits(field) {
			return nil, &EvalError{Expr: expr, Err: fmt.Errorf("invalid factor %q", field)}
		}
		n, ok := new(big.Int).SetString(field, 10)
		if !ok {
			return nil, &EvalError{Expr: expr, Err: fmt.Errorf("invalid factor %q", field)}
		}
		product.Mul(product, n)
	}
	return product, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Expand replaces every <EVAL:...> span in s with the decimal value of its
// expression, leftmost first, until no marker remains.
func Expand(s string) (string, error) {
	for {
		start := strings.Index(s, evalOpen)
		if start < 0 {
			return s, nil
		}
		end := strings.IndexByte(s[start:], evalClose)
		if end < 0 {
			return "", &EvalError{Expr: s[start:], Err: errUnterminated}
		}
		end += start

		value, err := Eval(s[start+len(evalOpen) : end])
		if err != nil {
			return "", err
		}
		s = s[:start] + value.String() + s[end+1:]
	}
}

// checkTemplate validates the eval markers of a replacement template that do
// not depend on capture groups. Markers referencing a group are only known
// after substitution.
func checkTemplate(template string) error {
	rest := template
	for {
		start := strings.Index(rest, evalOpen)
		if start < 0 {
			return nil
		}
		end := strings.IndexByte(rest[start:], evalClose)
		if end < 0 {
			return &EvalError{Expr: rest[start:], Err: errUnterminated}
		}
		end += start
		expr := rest[start+len(evalOpen) : end]
		if !strings.Contains(expr, "$") {
			if _, err := Eval(expr); err != nil {
				return err
			}
		}
		rest = rest[end+1:]
	}
}
