package domain

// Contact is owned by the contact directory; ResidentID is serialized as "id"
// to stay compatible with the directory's wire format.
type Contact struct {
	ResidentID int64  `json:"id"`
	Surname    string `json:"surname"`
	Name       string `json:"name"`
	Number     string `json:"number"`
	Email      string `json:"email"`
}
