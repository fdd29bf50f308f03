package common

// AuthorizationHeaderName is the HTTP header and gRPC metadata key carrying
// the access token as "Bearer <token>".
const AuthorizationHeaderName = "authorization"

// BearerScheme is the only accepted authorization scheme.
const BearerScheme = "Bearer"

// Client-facing messages. They are part of the wire contract.
const (
	MessageRegistered         = "User registered successfully"
	MessageLoggedIn           = "Logged in successfully"
	MessageEmailTaken         = "Email already in use"
	MessageInvalidCredentials = "Invalid email or password"
)
