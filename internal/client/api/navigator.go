package api

// Pseudo-routes of the client
const (
	RouteLogin  = "/login"
	RouteSignup = "/signup"
)

// Navigator is the view layer the pipeline redirects when a session ends
type Navigator interface {
	// Location returns the current route
	Location() string
	// Redirect switches to another route
	Redirect(path string)
}
