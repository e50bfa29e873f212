package contract

import "fmt"

// ===============================
// Contract Status
// ===============================

type Status string

const (
	StatusCarInspection      Status = "carInspection"
	StatusPriceNegotiation   Status = "priceNegotiation"
	StatusContractDraft      Status = "contractDraft"
	StatusContractSuccessful Status = "contractSuccessful"
	StatusContractFailed     Status = "contractFailed"
)

// Statuses lists every contract status in progression order. The list
// backs the always-present buckets of the grouped contract listing.
func Statuses() []Status {
	return []Status{
		StatusCarInspection,
		StatusPriceNegotiation,
		StatusContractDraft,
		StatusContractSuccessful,
		StatusContractFailed,
	}
}

func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	switch s {
	case StatusCarInspection, StatusPriceNegotiation, StatusContractDraft,
		StatusContractSuccessful, StatusContractFailed:
		return s, nil
	}
	return "", fmt.Errorf("unknown contract status %q", raw)
}

// InitialStatus is the status every new contract starts in.
func InitialStatus() Status {
	return StatusCarInspection
}

func (s Status) Terminal() bool {
	return s == StatusContractSuccessful || s == StatusContractFailed
}

// ===============================
// Car Status Policy
// ===============================

type CarStatus string

const (
	CarStatusPossession CarStatus = "possession"
	CarStatusProceeding CarStatus = "contractProceeding"
	CarStatusCompleted  CarStatus = "contractCompleted"
)

// CarStatusFor maps a contract status to the car status it implies.
// An unknown contract status is an error, never a silent fallback to
// possession.
func CarStatusFor(s Status) (CarStatus, error) {
	switch s {
	case StatusCarInspection, StatusPriceNegotiation, StatusContractDraft:
		return CarStatusProceeding, nil
	case StatusContractSuccessful:
		return CarStatusCompleted, nil
	case StatusContractFailed:
		return CarStatusPossession, nil
	}
	return "", fmt.Errorf("no car status for contract status %q", s)
}
