package contract

import (
	"github.com/autoline-kr/dealer-backoffice/internal/audit"
	"github.com/autoline-kr/dealer-backoffice/internal/notify"
)

// Messages surfaced to the Korean-language back-office frontend.
const (
	msgCarNotFound      = "존재하지 않는 자동차입니다"
	msgCustomerNotFound = "존재하지 않는 고객입니다"
	msgContractNotFound = "존재하지 않는 계약입니다"
	msgUserNotFound     = "존재하지 않는 담당자입니다"
	msgForbiddenUpdate  = "담당자만 수정이 가능합니다"
	msgForbiddenDelete  = "담당자만 삭제가 가능합니다"
)

// AuditTrail and Notifier are the async side channels; both are
// fire-and-forget and must never fail a request.
type AuditTrail interface {
	Dispatch(ev audit.Event)
}

type Notifier interface {
	Dispatch(email notify.Email)
}
