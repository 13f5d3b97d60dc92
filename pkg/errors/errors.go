package errors

import "errors"

// ErrOptimisticLock signals that a row was modified by another operation
// between read and write. Surfaces to clients as a 409.
var ErrOptimisticLock = errors.New("record was modified by another operation")
