package core

// Principal represents the identity of the caller for a single request.
// It is either anonymous or authenticated; the zero value is anonymous.
// Constructing an authenticated principal requires a login and a credential,
// so components that demand authentication (like the membership verifier)
// never see a half-built identity.
type Principal struct {
	authenticated bool
	login         string
	credential    string
}

// Anonymous returns the principal for unauthenticated requests.
func Anonymous() Principal {
	return Principal{}
}

// Authenticated returns a principal verified by the upstream identity layer.
// The credential is the caller's GitHub access token and is threaded into
// upstream calls made on the caller's behalf. It is never logged or cached.
func Authenticated(login, credential string) Principal {
	return Principal{
		authenticated: true,
		login:         login,
		credential:    credential,
	}
}

// IsAuthenticated reports whether the principal carries a verified identity.
func (p Principal) IsAuthenticated() bool {
	return p.authenticated
}

// Login returns the principal's login. It is empty for anonymous principals.
func (p Principal) Login() string {
	return p.login
}

// Credential returns the bearer credential for upstream calls, or the empty
// string for anonymous principals.
func (p Principal) Credential() string {
	return p.credential
}
