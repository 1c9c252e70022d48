package schedule

import "github.com/BruksfildServices01/care-scheduler/internal/httperr"

// ErrInvalidInterval marks malformed intervals: start >= end, out of day
// bounds, or unparsable clock values.
var ErrInvalidInterval = httperr.ErrBusiness(httperr.CodeInvalidInterval)
