package model

// Identity is the authenticated caller a submission is attributed to.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Anonymous reports whether no user is attached.
func (i Identity) Anonymous() bool {
	return i.ID == ""
}
