package model

// Stylist is a read-only profile entry from the stylist catalog.
type Stylist struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Followers   int      `json:"followers"`
	Rating      int      `json:"rating"`
	ReviewCount int      `json:"review_count"`
	Avatar      string   `json:"avatar"`
	Specialties []string `json:"specialties"`
	Location    string   `json:"location"`
}

// Service is an immutable catalog entry offered by a stylist.
// Price is in minor currency units (cents); Duration is in minutes.
type Service struct {
	ID          string `json:"id"`
	StylistID   string `json:"stylist_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"`
	Duration    int    `json:"duration"`
	Category    string `json:"category"`
}
