package models

import "time"

// Walk-in customer, no login, scoped to one dealership company.
type Customer struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CompanyID uint `json:"company_id"`

	Name     string `gorm:"size:100;not null" json:"name"`
	Gender   string `gorm:"size:10" json:"gender"`
	Phone    string `gorm:"size:20" json:"phone"`
	AgeGroup string `gorm:"size:20" json:"age_group"`
	Email    string `gorm:"size:100" json:"email"`
	Region   string `gorm:"size:50" json:"region"`
	Memo     string `gorm:"size:255" json:"memo"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
