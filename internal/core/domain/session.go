package domain

// Session pairs an authenticated user with the bearer token that proved it.
// The zero value means "logged out". User is non-nil exactly when Token is
// non-empty: NewSession is the only constructor handlers use, and logout
// writes the zero value back.
type Session struct {
	User  *User  `json:"user"`
	Token string `json:"token,omitempty"`
}

// NewSession builds a live session. Both arguments must be set; passing a
// nil user or empty token yields the zero (logged out) session instead of a
// torn one.
func NewSession(user *User, token string) Session {
	if user == nil || token == "" {
		return Session{}
	}
	return Session{User: user, Token: token}
}

// Active reports whether the session represents a logged-in user.
func (s Session) Active() bool {
	return s.User != nil && s.Token != ""
}
