package entity

// OrderStatus is the fulfillment state of an order.
type OrderStatus int16

const (
	// OrderStatusUnknown is mean status is not known / not set.
	OrderStatusUnknown OrderStatus = 0

	// OrderStatusPlaced mean order is created and waiting for delivery.
	OrderStatusPlaced OrderStatus = 1

	// OrderStatusDelivered mean handover was confirmed with the consumer's
	// one-time code. Terminal.
	OrderStatusDelivered OrderStatus = 2
)

func (s OrderStatus) String() string {
	switch s {
	case OrderStatusPlaced:
		return "placed"
	case OrderStatusDelivered:
		return "delivered"
	default:
		return "unknown"
	}
}

// PaymentStatus tracks the mock payment flow.
type PaymentStatus int16

const (
	// PaymentStatusUnknown is mean status is not known / not set.
	PaymentStatusUnknown PaymentStatus = 0

	// PaymentStatusPending mean payment has not been confirmed yet.
	PaymentStatusPending PaymentStatus = 1

	// PaymentStatusPaid mean the payment provider reported success.
	PaymentStatusPaid PaymentStatus = 2

	// PaymentStatusFailed mean the payment provider reported failure.
	PaymentStatusFailed PaymentStatus = 3
)

func (s PaymentStatus) String() string {
	switch s {
	case PaymentStatusPending:
		return "pending"
	case PaymentStatusPaid:
		return "paid"
	case PaymentStatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

func (s PaymentStatus) IsUnknown() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed:
		return false
	default:
		return true
	}
}

func PaymentStatusFromString(s string) PaymentStatus {
	switch s {
	case "pending":
		return PaymentStatusPending
	case "paid":
		return PaymentStatusPaid
	case "failed":
		return PaymentStatusFailed
	default:
		return PaymentStatusUnknown
	}
}
