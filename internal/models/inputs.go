package models

// SignUpInput holds the raw signup form fields.
type SignUpInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginResult struct {
	Session     Session     `json:"session"`
	Destination Destination `json:"destination"`
}

// SearchQuery filters hostels. MaxPrice <= 0 disables the price filter.
type SearchQuery struct {
	Location string  `json:"location"`
	MaxPrice float64 `json:"max_price"`
}

type AddHostelInput struct {
	Name        string  `json:"name"`
	Location    string  `json:"location"`
	Rooms       float64 `json:"rooms"`
	Type        string  `json:"type"`
	Description string  `json:"description"`
}

type BookingInput struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	HostelName string `json:"hostel_name"`
	RoomType   string `json:"room_type"`
	From       string `json:"from"`
	To         string `json:"to"`
}
