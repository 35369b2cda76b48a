package domain

import "time"

type Logo struct {
	LogoID       string    `json:"id" dynamodbav:"logo_id"`
	CategoryName string    `json:"categoryName" dynamodbav:"category_name"`
	LogoName     string    `json:"logoName" dynamodbav:"logo_name"`
	LogoImage    string    `json:"logoImage" dynamodbav:"logo_image"`
	ImageKey     string    `json:"-" dynamodbav:"image_key"`
	CreatedAt    time.Time `json:"createdAt" dynamodbav:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" dynamodbav:"updated_at"`
}

type LogoInput struct {
	CategoryName string `validate:"required"`
	LogoName     string `validate:"required"`
}
