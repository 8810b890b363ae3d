package eval

import "fmt"

// Operator is one of the six comparison operators.
type Operator int

const (
	OpEquals Operator = iota
	OpNotEquals
	OpLessThan
	OpGreaterThan
	OpLessOrEqual
	OpGreaterOrEqual
)

// If you add a new operator here, update Compare and String as well.

func (op Operator) String() string {
	switch op {
	case OpEquals:
		return "=="
	case OpNotEquals:
		return "!="
	case OpLessThan:
		return "<"
	case OpGreaterThan:
		return ">"
	case OpLessOrEqual:
		return "<="
	case OpGreaterOrEqual:
		return ">="
	default:
		return fmt.Sprintf("unknown_operator_%d", int(op))
	}
}

// opName prefers the operator spelling actually used in the source, falling
// back to the canonical spelling.
func opName(op Operator, opSource string) string {
	if opSource != "" {
		return opSource
	}
	return op.String()
}
