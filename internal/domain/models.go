package domain

// Member is a record-shaped option used by the multiple-select demo
type Member struct {
	Name string `toml:"name"`
}

// String returns the member's display name
func (m Member) String() string {
	return m.Name
}
