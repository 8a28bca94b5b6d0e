package numeric

import "errors"

// ErrShapeMismatch is returned when operand dimensions are inconsistent, e.g.
// a non-matrix score tensor, a target vector of the wrong length or a target
// index outside the class range.
var ErrShapeMismatch = errors.New("numeric: shape mismatch")
