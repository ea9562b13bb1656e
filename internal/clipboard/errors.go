package clipboard

import "errors"

// ErrHostAlreadyExists reports that a concurrent creator won the host
// creation race. Callers treat it as success: the host they wanted exists.
// Typed so callers never have to substring-match error text.
var ErrHostAlreadyExists = errors.New("clipboard host already exists")
