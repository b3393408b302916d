package lower

import (
	"fmt"

	"github.com/roach88/choc/internal/ast"
)

// InternalError reports a lowering-contract violation: the pass was
// handed input that the upstream checker is required to make
// impossible, or the pass itself broke a block invariant. It is a
// defect report, not a source diagnostic.
type InternalError struct {
	Op      string
	Pos     ast.Position
	Message string
}

func (e *InternalError) Error() string {
	if e.Pos.Line > 0 {
		return fmt.Sprintf("internal: %s: %s (near line %d col %d)", e.Op, e.Message, e.Pos.Line, e.Pos.Col)
	}
	return fmt.Sprintf("internal: %s: %s", e.Op, e.Message)
}

// ice aborts the current Lower call with an InternalError. The panic
// is recovered at the Lower boundary so callers see a plain error.
func ice(op string, node ast.Node, format string, args ...any) {
	var pos ast.Position
	if node != nil {
		pos = node.Pos()
	}
	panic(&InternalError{Op: op, Pos: pos, Message: fmt.Sprintf(format, args...)})
}
