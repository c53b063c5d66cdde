package model

type Train struct {
	DTO
	Name          string    `gorm:"size:255;not null" json:"name"`
	CargoNum      int       `gorm:"not null" json:"cargo_num"`
	PlacesInCargo int       `gorm:"not null" json:"places_in_cargo"`
	TrainTypeID   uint      `gorm:"not null;index" json:"train_type"`
	TrainType     TrainType `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Image         *string   `gorm:"size:512" json:"image"`
}

type Trains []Train

// TrainInput is bound from JSON or multipart form data. The image file itself
// is read separately from the form.
type TrainInput struct {
	Name          *string `json:"name" form:"name" validate:"required,min=1,max=255"`
	CargoNum      *int    `json:"cargo_num" form:"cargo_num" validate:"required,gte=0"`
	PlacesInCargo *int    `json:"places_in_cargo" form:"places_in_cargo" validate:"required,gte=0"`
	TrainType     *uint   `json:"train_type" form:"train_type" validate:"required"`
}

func (t Train) Capacity() int {
	return t.CargoNum * t.PlacesInCargo
}

type TrainList struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	CargoNum      int     `json:"cargo_num"`
	PlacesInCargo int     `json:"places_in_cargo"`
	Capacity      int     `json:"capacity"`
	TrainType     string  `json:"train_type"`
	Image         *string `json:"image"`
}

type TrainDetail struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	CargoNum      int       `json:"cargo_num"`
	PlacesInCargo int       `json:"places_in_cargo"`
	Capacity      int       `json:"capacity"`
	TrainType     TrainType `json:"train_type"`
	Image         *string   `json:"image"`
}

type TrainWrite struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	CargoNum      int     `json:"cargo_num"`
	PlacesInCargo int     `json:"places_in_cargo"`
	TrainType     uint    `json:"train_type"`
	Image         *string `json:"image"`
}

func (t Train) ListShape() TrainList {
	return TrainList{
		ID:            t.ID,
		Name:          t.Name,
		CargoNum:      t.CargoNum,
		PlacesInCargo: t.PlacesInCargo,
		Capacity:      t.Capacity(),
		TrainType:     t.TrainType.Name,
		Image:         t.Image,
	}
}

func (t Train) DetailShape() TrainDetail {
	return TrainDetail{
		ID:            t.ID,
		Name:          t.Name,
		CargoNum:      t.CargoNum,
		PlacesInCargo: t.PlacesInCargo,
		Capacity:      t.Capacity(),
		TrainType:     t.TrainType,
		Image:         t.Image,
	}
}

func (t Train) WriteShape() TrainWrite {
	return TrainWrite{
		ID:            t.ID,
		Name:          t.Name,
		CargoNum:      t.CargoNum,
		PlacesInCargo: t.PlacesInCargo,
		TrainType:     t.TrainTypeID,
		Image:         t.Image,
	}
}
