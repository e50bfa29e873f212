package models

import "time"

type CarModel struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Manufacturer string `gorm:"size:50;not null" json:"manufacturer"`
	Model        string `gorm:"size:50;not null" json:"model"`
	Type         string `gorm:"size:20;not null" json:"type"` // COMPACT | SEDAN | SUV
}

type Car struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CompanyID uint `json:"company_id"`

	ModelID uint     `json:"model_id"`
	Model   CarModel `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"model"`

	CarNumber         string `gorm:"size:20;uniqueIndex;not null" json:"car_number"`
	ManufacturingYear int    `json:"manufacturing_year"`
	Mileage           int    `json:"mileage"`
	Price             int    `json:"price"`

	Status string `gorm:"size:30;default:'possession'" json:"status"`

	ImageURL    string `gorm:"size:255" json:"image_url"`
	Accident    bool   `json:"accident"`
	Explanation string `gorm:"size:500" json:"explanation"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
