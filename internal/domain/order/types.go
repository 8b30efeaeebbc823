package order

// Status is the order lifecycle state.
//
// received -> in_preparation -> shipped -> delivered, with cancelled
// reachable from any non-terminal state. Transitions are currently accepted
// between any pair of recognized values; only the value itself is validated.
type Status string

const (
	StatusReceived      Status = "received"
	StatusInPreparation Status = "in_preparation"
	StatusShipped       Status = "shipped"
	StatusDelivered     Status = "delivered"
	StatusCancelled     Status = "cancelled"
)

func ParseStatus(value string) (Status, error) {
	switch Status(value) {
	case StatusReceived, StatusInPreparation, StatusShipped, StatusDelivered, StatusCancelled:
		return Status(value), nil
	default:
		return "", ErrInvalidStatus
	}
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}
