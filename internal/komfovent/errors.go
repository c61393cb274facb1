package komfovent

import "errors"

// Error kinds surfaced by the client, parser and codec. Callers classify
// with errors.Is; every returned error wraps exactly one kind, except parse
// failures at the GetState boundary which wrap both ErrConnection and ErrParse.
var (
	// ErrAuth means the panel rejected the credentials.
	ErrAuth = errors.New("komfovent: authentication failed")
	// ErrConnection means the panel could not be reached or answered with
	// something unusable.
	ErrConnection = errors.New("komfovent: connection error")
	// ErrValidation means a caller-supplied value is outside the accepted domain.
	ErrValidation = errors.New("komfovent: invalid value")
	// ErrParse means a panel document could not be decoded.
	ErrParse = errors.New("komfovent: parse error")
)

// errUnexpectedStatus marks non-2xx answers other than 401 so Authenticate
// can tell them apart from transport failures.
var errUnexpectedStatus = errors.New("unexpected status")
