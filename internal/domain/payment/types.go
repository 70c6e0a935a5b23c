package payment

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusSuccess   Status = "SUCCESS"
	StatusFailed    Status = "FAILED"
	StatusCancelled Status = "CANCELLED"
	StatusRefunded  Status = "REFUNDED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusSuccess, StatusFailed, StatusCancelled, StatusRefunded:
		return true
	default:
		return false
	}
}

type Method string

const (
	MethodCard   Method = "CARD"
	MethodUPI    Method = "UPI"
	MethodCash   Method = "CASH"
	MethodWallet Method = "WALLET"
)

func (m Method) String() string {
	return string(m)
}

func (m Method) IsValid() bool {
	switch m {
	case MethodCard, MethodUPI, MethodCash, MethodWallet:
		return true
	default:
		return false
	}
}

func NewMethod(s string) (Method, error) {
	method := Method(s)
	if !method.IsValid() {
		return "", ErrInvalidMethod
	}
	return method, nil
}
