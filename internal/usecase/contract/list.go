package contract

import (
	"context"

	domain "github.com/autoline-kr/dealer-backoffice/internal/domain/contract"
	"github.com/autoline-kr/dealer-backoffice/internal/dto"
)

type ListContracts struct {
	uow domain.UnitOfWork
}

func NewListContracts(uow domain.UnitOfWork) *ListContracts {
	return &ListContracts{uow: uow}
}

// Execute fetches a company's contracts and groups them into the five
// status buckets. Empty buckets are still present with count zero.
func (uc *ListContracts) Execute(
	ctx context.Context,
	companyID uint,
	searchBy domain.SearchField,
	keyword string,
) (dto.GetContractsResponse, error) {

	contracts, err := uc.uow.ListContractsByCompany(ctx, companyID, searchBy, keyword)
	if err != nil {
		return nil, err
	}

	return dto.GroupContracts(contracts), nil
}
