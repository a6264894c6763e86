package domain

// StaffMember is an immutable catalog entry for a salon specialist.
type StaffMember struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Specialty  string `json:"specialty"`
	Experience string `json:"experience"`
	Bio        string `json:"bio"`
}
