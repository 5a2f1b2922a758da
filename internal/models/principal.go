package models

// Principal is the identity resolved from a verified token.
type Principal struct {
	ID   int64
	Type string
}

// IsOrganizer reports whether the principal acts as an organizer.
func (p Principal) IsOrganizer() bool {
	return p.Type == PrincipalOrganizer
}
