package model

type User struct {
	DTO
	Email     string `gorm:"uniqueIndex;size:254;not null" json:"email"`
	Password  string `gorm:"not null" json:"-"`
	FirstName string `gorm:"size:150" json:"first_name"`
	LastName  string `gorm:"size:150" json:"last_name"`
	IsStaff   bool   `gorm:"not null" json:"is_staff"`
	IsActive  bool   `gorm:"not null" json:"is_active"`
}

type Users []User

type RegisterUserInput struct {
	Email     string `json:"email" validate:"required,email,max=254"`
	Password  string `json:"password" validate:"required,min=5,max=128"`
	FirstName string `json:"first_name" validate:"max=150"`
	LastName  string `json:"last_name" validate:"max=150"`
}

type UpdateUserInput struct {
	Password  *string `json:"password" validate:"omitempty,min=5,max=128"`
	FirstName *string `json:"first_name" validate:"omitempty,max=150"`
	LastName  *string `json:"last_name" validate:"omitempty,max=150"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshInput struct {
	Refresh string `json:"refresh" validate:"required"`
}

type VerifyInput struct {
	Token string `json:"token" validate:"required"`
}
