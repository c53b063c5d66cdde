package model

type TrainType struct {
	DTO
	Name string `gorm:"size:255;not null" json:"name"`
}

type TrainTypes []TrainType

type TrainTypeInput struct {
	Name *string `json:"name" validate:"required,min=1,max=255"`
}
