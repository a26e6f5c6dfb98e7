package event

const OrderPlacedDestination string = "order_placed"
const OrderPlacedConsumerNotification string = "order_placed_notification"

type OrderPlacedMessage struct {
	OrderID       int64  `json:"order_id"`
	ConsumerEmail string `json:"consumer_email"`
	ConsumerName  string `json:"consumer_name"`
	ItemCount     int32  `json:"item_count"`
	TotalAmount   int64  `json:"total_amount"`
}
