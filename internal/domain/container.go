package domain

import "time"

// Container is a promotional tile linking out of the app.
type Container struct {
	ContainerID string    `json:"id" dynamodbav:"container_id"`
	Name        string    `json:"name" dynamodbav:"name"`
	Link        string    `json:"link" dynamodbav:"link"`
	ImageURL    string    `json:"imageUrl" dynamodbav:"image_url"`
	ImageKey    string    `json:"-" dynamodbav:"image_key"`
	CreatedAt   time.Time `json:"createdAt" dynamodbav:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" dynamodbav:"updated_at"`
}

type ContainerInput struct {
	Name string `validate:"required"`
	Link string `validate:"required,url"`
}
