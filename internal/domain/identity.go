package domain

// Identity is what the external identity provider asserts about a signed-in
// user. The service's only obligation toward it is the sign-in upsert.
type Identity struct {
	AccountID string
	Email     string
	Name      string
	PhotoURL  string
}
