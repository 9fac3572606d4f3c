package models

type Hostel struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Location    string  `json:"location" yaml:"location"`
	Price       float64 `json:"price" yaml:"price"`
	Type        string  `json:"type" yaml:"type"`
	OwnerEmail  string  `json:"ownerEmail" yaml:"owner_email"`
	Description string  `json:"description" yaml:"description"`
}

// Listed reports whether the hostel has enough data to show up in search results.
func (h Hostel) Listed() bool {
	return h.Name != "" || h.Location != ""
}
