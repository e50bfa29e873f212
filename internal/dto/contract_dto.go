package dto

import (
	"time"

	domain "github.com/autoline-kr/dealer-backoffice/internal/domain/contract"
	"github.com/autoline-kr/dealer-backoffice/internal/models"
)

// ===============================
// Response shapes
// ===============================

type UserRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type CustomerRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type CarRef struct {
	ID    uint   `json:"id"`
	Model string `json:"model"`
}

type MeetingResponse struct {
	Date   string   `json:"date"`
	Alarms []string `json:"alarms"`
}

type DocumentResponse struct {
	ID       uint   `json:"id"`
	FileName string `json:"file_name"`
	FileURL  string `json:"file_url"`
}

type ContractDetailResponse struct {
	ID             uint               `json:"id"`
	Status         string             `json:"status"`
	ResolutionDate *string            `json:"resolution_date"`
	ContractPrice  int                `json:"contract_price"`
	ContractName   string             `json:"contract_name"`
	User           UserRef            `json:"user"`
	Customer       CustomerRef        `json:"customer"`
	Car            CarRef             `json:"car"`
	Meetings       []MeetingResponse  `json:"meetings"`
	Documents      []DocumentResponse `json:"documents"`
}

type ContractListItem struct {
	ID             uint              `json:"id"`
	Car            CarRef            `json:"car"`
	Customer       CustomerRef       `json:"customer"`
	User           UserRef           `json:"user"`
	Meetings       []MeetingResponse `json:"meetings"`
	ContractPrice  int               `json:"contract_price"`
	ResolutionDate *string           `json:"resolution_date"`
	Status         string            `json:"status"`
}

type ContractListGroup struct {
	TotalItemCount int                `json:"totalItemCount"`
	Data           []ContractListItem `json:"data"`
}

// GetContractsResponse always carries all five status buckets, empty
// ones included, so callers never probe for bucket existence.
type GetContractsResponse map[string]ContractListGroup

type DeleteContractResponse struct {
	Message string `json:"message"`
}

// ===============================
// Mapping
// ===============================

func toMeetingResponse(m models.Meeting) MeetingResponse {
	alarms := make([]string, 0, len(m.Alarms))
	for _, a := range m.Alarms {
		alarms = append(alarms, a.AlarmTime.UTC().Format(time.RFC3339))
	}
	return MeetingResponse{
		Date:   m.Date.UTC().Format(time.RFC3339),
		Alarms: alarms,
	}
}

func formatResolutionDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}

func ToContractDetail(c *models.Contract) ContractDetailResponse {
	meetings := make([]MeetingResponse, 0, len(c.Meetings))
	for _, m := range c.Meetings {
		meetings = append(meetings, toMeetingResponse(m))
	}

	documents := make([]DocumentResponse, 0, len(c.Documents))
	for _, d := range c.Documents {
		documents = append(documents, DocumentResponse{
			ID:       d.ID,
			FileName: d.FileName,
			FileURL:  d.FileURL,
		})
	}

	return ContractDetailResponse{
		ID:             c.ID,
		Status:         c.Status,
		ResolutionDate: formatResolutionDate(c.ResolutionDate),
		ContractPrice:  c.ContractPrice,
		ContractName:   c.ContractName,
		User:           UserRef{ID: c.User.ID, Name: c.User.Name},
		Customer:       CustomerRef{ID: c.Customer.ID, Name: c.Customer.Name},
		Car:            CarRef{ID: c.Car.ID, Model: c.Car.Model.Model},
		Meetings:       meetings,
		Documents:      documents,
	}
}

func ToContractListItem(c *models.Contract) ContractListItem {
	meetings := make([]MeetingResponse, 0, len(c.Meetings))
	for _, m := range c.Meetings {
		meetings = append(meetings, toMeetingResponse(m))
	}

	return ContractListItem{
		ID:             c.ID,
		Car:            CarRef{ID: c.Car.ID, Model: c.Car.Model.Model},
		Customer:       CustomerRef{ID: c.Customer.ID, Name: c.Customer.Name},
		User:           UserRef{ID: c.User.ID, Name: c.User.Name},
		Meetings:       meetings,
		ContractPrice:  c.ContractPrice,
		ResolutionDate: formatResolutionDate(c.ResolutionDate),
		Status:         c.Status,
	}
}

func GroupContracts(contracts []models.Contract) GetContractsResponse {
	response := make(GetContractsResponse, len(domain.Statuses()))
	for _, status := range domain.Statuses() {
		response[string(status)] = ContractListGroup{
			TotalItemCount: 0,
			Data:           []ContractListItem{},
		}
	}

	for i := range contracts {
		c := &contracts[i]
		group, ok := response[c.Status]
		if !ok {
			group = ContractListGroup{Data: []ContractListItem{}}
		}
		group.Data = append(group.Data, ToContractListItem(c))
		group.TotalItemCount = len(group.Data)
		response[c.Status] = group
	}
	return response
}
