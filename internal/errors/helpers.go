package errors

import "errors"

func asError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// GetCode returns the code of err: OK for nil, Internal for a foreign error
func GetCode(err error) Code {
	if err == nil {
		return CodeOK
	}
	if e, ok := asError(err); ok {
		return e.Code
	}
	return CodeInternal
}

// GetMeta returns the metadata of the outermost *Error in the chain
func GetMeta(err error) map[string]any {
	if e, ok := asError(err); ok {
		return e.Meta
	}
	return nil
}

// GetMessage returns the caller-facing message, or err.Error() for a foreign error
func GetMessage(err error) string {
	if err == nil {
		return ""
	}
	if e, ok := asError(err); ok {
		return e.Message
	}
	return err.Error()
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return GetCode(err) == CodeNotFound
}

// IsInvalidArgument checks if an error is an invalid argument error
func IsInvalidArgument(err error) bool {
	return GetCode(err) == CodeInvalidArgument
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return GetCode(err) == CodeAlreadyExists
}

// IsPermissionDenied checks if an error is a permission denied error
func IsPermissionDenied(err error) bool {
	return GetCode(err) == CodePermissionDenied
}

// IsInternal checks if an error is an internal error
func IsInternal(err error) bool {
	return GetCode(err) == CodeInternal
}

// IsUnavailable checks if an error is an unavailable error
func IsUnavailable(err error) bool {
	return GetCode(err) == CodeUnavailable
}

// IsResourceExhausted checks if an error is a resource exhausted error
func IsResourceExhausted(err error) bool {
	return GetCode(err) == CodeResourceExhausted
}

// IsCanceled checks if an error is a canceled error
func IsCanceled(err error) bool {
	return GetCode(err) == CodeCanceled
}
