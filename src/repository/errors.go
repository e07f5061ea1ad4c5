package repository

import "errors"

// ErrInvalidTransition is returned when a caller attempts a lifecycle
// transition the state machine does not allow, e.g. approving an
// already-rejected proposal or closing a closed trade. The persisted state is
// left unchanged.
var ErrInvalidTransition = errors.New("invalid lifecycle transition")
