package domain

import "time"

type Category struct {
	CategoryID   string    `json:"id" dynamodbav:"category_id"`
	CategoryName string    `json:"categoryName" dynamodbav:"category_name"`
	ImageURL     string    `json:"imageUrl" dynamodbav:"image_url"`
	ImageKey     string    `json:"-" dynamodbav:"image_key"`
	CreatedAt    time.Time `json:"createdAt" dynamodbav:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" dynamodbav:"updated_at"`
}

type CategoryInput struct {
	CategoryName string `validate:"required"`
}
