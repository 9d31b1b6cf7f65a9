package shared

// Principal is the signed-in user as reported by the auth provider.
type Principal struct {
	ID        string
	Email     string
	Name      string
	AvatarURL string
	Metadata  map[string]any
}

// DisplayName falls back to the email when the provider has no full name.
func (p Principal) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Email
}

// Session is passed explicitly to every gateway call.
type Session struct {
	Principal *Principal
	RequestID string
}

// Authenticated reports whether a principal with an id is present.
func (s Session) Authenticated() bool {
	return s.Principal != nil && s.Principal.ID != ""
}

// UserID returns the acting principal id, or "" when anonymous.
func (s Session) UserID() string {
	if s.Principal == nil {
		return ""
	}
	return s.Principal.ID
}
