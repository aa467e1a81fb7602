package models

// Company represents an assessed business
type Company struct {
	ID           int64  `json:"id"`
	UserID       int64  `json:"user_id"`
	LegalName    string `json:"legal_name"`
	ContactEmail string `json:"contact_email,omitempty"`
}

// Notification is a user-facing risk message
type Notification struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Date     string `json:"date"`
	Priority string `json:"priority"`
	Message  string `json:"message"`
}
