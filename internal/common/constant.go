package common

// AuthorizationHeaderName is the HTTP header carrying the bearer token.
const AuthorizationHeaderName = "Authorization"

// BearerScheme is the only accepted authorization scheme.
const BearerScheme = "Bearer"

// Default statuses stamped on newly created records when the client omits one.
const (
	DefaultJobStatus  = "wishlist"
	DefaultTaskStatus = "todo"
)
