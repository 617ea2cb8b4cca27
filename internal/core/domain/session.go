package domain

// Identity is the denormalised account snapshot captured at login time. It
// may drift from upstream truth until the next login or profile edit.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
	Image string `json:"image,omitempty"`
}

// Session pairs the upstream bearer token with the identity it was issued
// for. The two are written and cleared together; a store never holds one
// without the other.
type Session struct {
	ID       string
	Token    string
	Identity Identity
}
