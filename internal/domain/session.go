package domain

// Session identifies the authenticated caller for the lifetime of one
// request. It is a value threaded through handlers, never shared state.
type Session struct {
	Username string
	Role     Role
}
