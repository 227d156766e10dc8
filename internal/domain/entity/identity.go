package entity

// The identity of an authenticated caller, decoded from the ID token issued
// by the authentication service.
type Identity struct {
	UID     string
	Email   string
	Name    string
	Picture string
}
