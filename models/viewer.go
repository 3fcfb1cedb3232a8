package models

// Viewer is the identity a request is made with: either an authenticated
// user id or anonymous. The zero value is anonymous.
type Viewer struct {
	userID        string
	authenticated bool
}

// Authenticated returns a viewer carrying the given user id.
func Authenticated(userID string) Viewer {
	return Viewer{userID: userID, authenticated: true}
}

// Anonymous returns the logged-out viewer.
func Anonymous() Viewer {
	return Viewer{}
}

// UserID returns the viewer's user id and whether the viewer is
// authenticated.
func (v Viewer) UserID() (string, bool) {
	return v.userID, v.authenticated
}
