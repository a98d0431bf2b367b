package models

// PortalUser is the portal's own profile for an identity-service account.
type PortalUser struct {
	ID    string `db:"id" json:"id"`
	Name  string `db:"nome" json:"nome"`
	Email string `db:"email" json:"email"`
}

// IdentityUser is an account known to the hosted identity service.
type IdentityUser struct {
	ID    string `db:"id" json:"id"`
	Email string `db:"email" json:"email"`
}
