package domain

import "time"

type Banner struct {
	BannerID    string    `json:"id" dynamodbav:"banner_id"`
	BannerImage string    `json:"bannerImage" dynamodbav:"banner_image"`
	ImageKey    string    `json:"-" dynamodbav:"image_key"`
	CreatedAt   time.Time `json:"createdAt" dynamodbav:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" dynamodbav:"updated_at"`
}
