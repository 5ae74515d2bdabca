package code

func init() {
	register(ErrSuccess, 200, "OK")
	register(ErrUnknown, 500, "Server error: Unknown server error")
	register(ErrBind, 400, "Error occurred while binding the request body to the struct")
	register(ErrValidation, 400, "Validation failed")
	register(ErrTokenInvalid, 401, "Token invalid")
	register(ErrSignatureInvalid, 401, "Signature is invalid")
	register(ErrExpired, 401, "Token expired")
	register(ErrInvalidAuthHeader, 401, "Invalid authorization header")
	register(ErrMissingHeader, 401, "The `Authorization` header was empty")
	register(ErrPasswordIncorrect, 401, "Password was incorrect")
	register(ErrPermissionDenied, 403, "Permission denied")
	register(ErrStoreNotInitialized, 500, "Server error: Store not initialized")

	register(ErrNetlinkAlreadyExists, 409, "Kernel object already exists")
	register(ErrNetlinkNotFound, 404, "Kernel object not found")
	register(ErrNetlinkUnknown, 500, "Unclassified kernel netlink error")
	register(ErrNetlinkIO, 500, "Netlink transport I/O error")
	register(ErrNetlinkDecode, 500, "Netlink message decode error")
	register(ErrNetlinkUnexpectedResponse, 500, "Unexpected netlink response")

	register(ErrDatabaseMigration, 500, "Database schema migration failed")
	register(ErrDatabaseDriver, 500, "Database driver error")
	register(ErrDatabaseInvalidPubkeyData, 500, "Stored public key data is invalid")
	register(ErrDatabaseInvalidUUIDData, 500, "Stored identifier data is invalid")

	register(ErrServiceInvalidKey, 400, "Invalid WireGuard public key")
	register(ErrServiceIPPoolExhausted, 409, "IP address pool is exhausted")
	register(ErrServiceClientAlreadyExists, 409, "A config with this public key already exists")
	register(ErrServiceNotFound, 404, "Resource not found")
	register(ErrServiceAccessDenied, 403, "Access denied")
	register(ErrServiceInvalidJWTSecret, 500, "Invalid HMAC secret configuration")
	register(ErrServiceInvalidJWT, 401, "Invalid or tampered pair token")
}
