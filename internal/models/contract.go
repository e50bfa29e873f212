package models

import "time"

type Contract struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CompanyID uint    `json:"company_id"`
	Company   Company `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"company"`

	// Owning salesperson. Only this user may mutate or delete the contract.
	UserID uint `json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user"`

	CustomerID uint     `json:"customer_id"`
	Customer   Customer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"customer"`

	CarID uint `json:"car_id"`
	Car   Car  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"car"`

	Status         string     `gorm:"size:30;default:'carInspection'" json:"status"`
	ResolutionDate *time.Time `json:"resolution_date"`
	ContractPrice  int        `json:"contract_price"`
	ContractName   string     `gorm:"size:150" json:"contract_name"`

	Meetings  []Meeting          `json:"meetings"`
	Documents []ContractDocument `json:"documents"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Meeting struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	ContractID uint `gorm:"index" json:"contract_id"`

	Date time.Time `json:"date"`

	Alarms []Alarm `json:"alarms"`

	CreatedAt time.Time `json:"created_at"`
}

type Alarm struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	MeetingID uint `gorm:"index" json:"meeting_id"`

	AlarmTime time.Time `json:"alarm_time"`

	CreatedAt time.Time `json:"created_at"`
}
