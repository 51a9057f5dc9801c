package handler

// Auth requests arrive form-encoded from the site's forms or as JSON from
// script callers; the tags cover both.

type registerRequest struct {
	Username string `json:"username" form:"username"`
	Email    string `json:"email"    form:"email"`
	Password string `json:"password" form:"password"`
	Position string `json:"position" form:"position"`
	Role     string `json:"role"     form:"role"`
}

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// authResponse is the envelope every auth endpoint renders. Errors always
// travel as a list so the client can show each violation inline.
type authResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Role    string   `json:"role,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

type sessionResponse struct {
	LoggedIn bool   `json:"logged_in"`
	UserID   uint   `json:"user_id,omitempty"`
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
}

type userSummary struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Position  string `json:"position"`
	Role      string `json:"role"`
	LastLogin string `json:"last_login,omitempty"`
}

type listUsersResponse struct {
	Users []userSummary `json:"users"`
}
