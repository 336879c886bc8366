package models

import "time"

type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
)

type UsedPart struct {
	ID        string `json:"id" db:"id"`
	Component string `json:"component" db:"component"`
	Grade     Grade  `json:"grade" db:"grade"`
	Condition string `json:"condition" db:"condition"`
	Price     int    `json:"price" db:"price"`
	ImageURL  string `json:"imageUrl" db:"image_url"`
	Details   string `json:"details" db:"details"`
}

type InquiryStatus string

const (
	InquiryStatusReceived InquiryStatus = "received"
	InquiryStatusNotified InquiryStatus = "notified"
)

// Inquiry is an in-store pickup request for a used part.
type Inquiry struct {
	ID           string        `json:"id" db:"id"`
	PartID       string        `json:"partId" db:"part_id"`
	CustomerName string        `json:"customerName" db:"customer_name"`
	Phone        string        `json:"phone" db:"phone"`
	Email        string        `json:"email,omitempty" db:"email"`
	Message      string        `json:"message,omitempty" db:"message"`
	Status       InquiryStatus `json:"status" db:"status"`
	CreatedAt    time.Time     `json:"createdAt" db:"created_at"`
}
