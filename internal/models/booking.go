package models

import "time"

type Booking struct {
	ID         string    `json:"id"`
	UserName   string    `json:"userName"`
	UserEmail  string    `json:"userEmail"`
	HostelName string    `json:"hostelName"` // copy of the hostel name at booking time
	RoomType   string    `json:"roomType"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	Created    time.Time `json:"created"`
}
