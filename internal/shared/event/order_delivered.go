package event

const OrderDeliveredDestination string = "order_delivered"
const OrderDeliveredConsumerNotification string = "order_delivered_notification"

type OrderDeliveredMessage struct {
	OrderID       int64  `json:"order_id"`
	ConsumerEmail string `json:"consumer_email"`
	ConsumerName  string `json:"consumer_name"`
}
