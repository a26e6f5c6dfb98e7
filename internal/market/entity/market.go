package entity

import "time"

// Crop is a farmer's planted crop, tracked for harvest planning and advisory
// lookups.
type Crop struct {
	ID              int64
	FarmerID        int64
	Name            string
	SowingDate      time.Time
	ExpectedHarvest time.Time
	Lat             float64
	Lon             float64
	Address         string
	CreatedAt       time.Time
}

// Product is a produce listing. Quantity is remaining stock in kilograms,
// price is in the smallest currency unit per kilogram.
type Product struct {
	ID          int64
	FarmerID    int64
	Name        string
	Category    string
	Description string
	Price       int64
	Quantity    int32
	City        string
	ImageKey    string
	ExpiryDate  time.Time
	CreatedAt   time.Time
}

// ProductFilter narrows product listings. Zero values mean "no filter".
type ProductFilter struct {
	Search   string
	Category string
	City     string
	// LiveOnly keeps only in-stock, unexpired listings.
	LiveOnly bool
	Now      time.Time
	Limit    int32
}

// CartUpsert adds a product to a consumer's cart, bumping quantity when the
// product is already there.
type CartUpsert struct {
	ID         int64
	ConsumerID int64
	ProductID  int64
	Quantity   int32
}

// CartLine is a cart item joined with its product listing.
type CartLine struct {
	ID        int64
	Quantity  int32
	Product   Product
	CreatedAt time.Time
}

// Order is a placed purchase. An order is created from the whole cart.
type Order struct {
	ID              int64
	ConsumerID      int64
	Status          OrderStatus
	PaymentStatus   PaymentStatus
	TotalAmount     int64
	DeliveryAddress string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Items           []OrderItem
}

// OrderItem snapshots name and price at purchase time, so later product edits
// do not rewrite order history.
type OrderItem struct {
	ID          int64
	OrderID     int64
	ProductID   int64
	ProductName string
	Price       int64
	Quantity    int32
}

// OrderConsumer is the owner lookup used by the delivery workflow: the code
// goes to the consumer who placed the order, never to the caller.
type OrderConsumer struct {
	OrderID       int64
	Status        OrderStatus
	ConsumerID    int64
	ConsumerEmail string
	ConsumerName  string
}

// PendingDelivery is the not-yet-confirmed handover state keyed by order id.
// The consumer contact is captured at issuance and stays fixed for the life
// of the record, even if the order's contact changes afterwards.
type PendingDelivery struct {
	OrderID       int64  `json:"order_id"`
	OTP           string `json:"otp"` // hmac digest of the emailed code
	ConsumerEmail string `json:"consumer_email"`
	ConsumerName  string `json:"consumer_name"`
}

// Recommendation groups similar products under the cart product they relate to.
type Recommendation struct {
	ProductID int64
	Similar   []Product
}
