package models

// Session is a snapshot of the client authentication state.
//
// Loading is true from process start until initialization settles and while a
// login or register call is in flight. User is nil when nobody is signed in.
type Session struct {
	User    *User
	Loading bool

	// Expired is set when the session ended because the tokens could no
	// longer be refreshed, as opposed to an explicit logout.
	Expired bool
}

// Authenticated reports whether a user is present.
func (s Session) Authenticated() bool {
	return s.User != nil
}
