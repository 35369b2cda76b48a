package domain

import "time"

const (
	NotificationTypeInfo   = "info"
	NotificationTypeUpdate = "update"
)

type Notification struct {
	NotificationID string    `json:"id" dynamodbav:"notification_id"`
	Message        string    `json:"message" dynamodbav:"message"`
	Type           string    `json:"type" dynamodbav:"type"`
	Read           bool      `json:"read" dynamodbav:"read"`
	CreatedAt      time.Time `json:"createdAt" dynamodbav:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" dynamodbav:"updated_at"`
}

type NotificationInput struct {
	Message string `json:"message" validate:"required"`
	Type    string `json:"type" validate:"omitempty,oneof=update info"`
}
