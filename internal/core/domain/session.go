package domain

// SessionData is the identity bound to one opaque session token. The token
// itself lives only in the session store and the client cookie.
type SessionData struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
