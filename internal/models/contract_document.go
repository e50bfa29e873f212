package models

import "time"

// Uploaded first, linked to a contract later via contract update.
type ContractDocument struct {
	ID         uint  `gorm:"primaryKey" json:"id"`
	CompanyID  uint  `gorm:"index" json:"company_id"`
	ContractID *uint `gorm:"index" json:"contract_id"`

	FileName string `gorm:"size:255;not null" json:"file_name"`
	FileURL  string `gorm:"size:500;not null" json:"file_url"`
	FileSize int64  `json:"file_size"`

	CreatedAt time.Time `json:"created_at"`
}
