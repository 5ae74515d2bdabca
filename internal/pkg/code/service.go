package code

// Service: reconciler / service-API domain errors (C7).
// Code must start with 1xxxxx.
const (
	// ErrServiceInvalidKey - 400: a supplied public key was not valid base64 or not 32 bytes.
	ErrServiceInvalidKey int = iota + 120201

	// ErrServiceIPPoolExhausted - 409: the configured CIDR has no address left to allocate.
	ErrServiceIPPoolExhausted

	// ErrServiceClientAlreadyExists - 409: a config with this public key already exists.
	ErrServiceClientAlreadyExists

	// ErrServiceNotFound - 404: the requested user/config/key/integration does not exist.
	ErrServiceNotFound

	// ErrServiceAccessDenied - 403: the caller is neither the owner nor an admin.
	ErrServiceAccessDenied

	// ErrServiceInvalidJWTSecret - 500: the configured HMAC secret could not be used.
	ErrServiceInvalidJWTSecret

	// ErrServiceInvalidJWT - 401: a pair token failed verification.
	ErrServiceInvalidJWT
)
