package common

// AuthorizationHeaderName is the HTTP header carrying the bearer access
// token on outbound requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix prefixes the access token in the Authorization header.
const BearerPrefix = "Bearer "
