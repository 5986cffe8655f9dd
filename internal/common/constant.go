package common

const (
	// AuthorizationHeaderName carries the bearer credential on protected requests.
	AuthorizationHeaderName = "Authorization"

	// BearerScheme is the auth scheme prefix and the token_type returned by login.
	BearerScheme = "bearer"
)
