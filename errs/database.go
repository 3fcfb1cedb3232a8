package errs

import (
	"fmt"
	"net/http"
)

// NewDatabaseError wraps a storage failure. The message stays generic so no
// driver internals leak to the caller; the cause is kept for logging.
func NewDatabaseError(operation, entity string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        fmt.Errorf("failed to %s %s", operation, entity),
		Cause:      cause,
	}
}

// NewOwnershipError reports a scoped mutation that affected zero rows. The
// target either does not exist or is not owned by the caller; the two cases
// are deliberately not distinguished.
func NewOwnershipError(action, entity string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusForbidden,
		err:        fmt.Errorf("not allowed to %s this %s", action, entity),
	}
}
