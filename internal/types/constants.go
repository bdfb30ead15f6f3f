package types

const ContextUserKey = "user"

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "token"
