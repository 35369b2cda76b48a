package domain

import "time"

// DueDate is a promo that stops being shown once DueDate has passed.
type DueDate struct {
	DueDateID string    `json:"id" dynamodbav:"due_date_id"`
	Title     string    `json:"title" dynamodbav:"title"`
	ImageURL  string    `json:"imageUrl" dynamodbav:"image_url"`
	ImageKey  string    `json:"-" dynamodbav:"image_key"`
	DueDate   time.Time `json:"dueDate" dynamodbav:"due_date"`
	CreatedAt time.Time `json:"createdAt" dynamodbav:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" dynamodbav:"updated_at"`
}

type DueDateInput struct {
	Title   string `validate:"required"`
	DueDate string `validate:"required"` // RFC 3339 or YYYY-MM-DD
}
