package model

// TimeSlot is one bookable interval for a stylist on a calendar date.
// Date is "YYYY-MM-DD"; StartTime and EndTime are 24-hour "HH:MM".
// IsAvailable flips true->false when a booking claims the slot and is
// never flipped back in this version (no release on cancellation).
type TimeSlot struct {
	ID          string `json:"id"`
	StylistID   string `json:"stylist_id"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	IsAvailable bool   `json:"is_available"`
}
