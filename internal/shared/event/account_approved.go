package event

const AccountApprovedDestination string = "account_approved"
const AccountApprovedConsumerNotification string = "account_approved_notification"

type AccountApprovedMessage struct {
	AccountID int64  `json:"account_id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	Role      string `json:"role"`
}
