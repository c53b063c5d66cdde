package model

type Crew struct {
	DTO
	FirstName string `gorm:"size:255;not null" json:"first_name"`
	LastName  string `gorm:"size:255;not null" json:"last_name"`
}

type Crews []Crew

type CrewInput struct {
	FirstName *string `json:"first_name" validate:"required,min=1,max=255"`
	LastName  *string `json:"last_name" validate:"required,min=1,max=255"`
}

type FilterCrew struct {
	Pagination
	FirstName string `query:"first_name"`
	LastName  string `query:"last_name"`
}
