package entity

import "time"

// Account is a verified marketplace account.
type Account struct {
	ID        int64
	Email     string
	FullName  string
	Mobile    string
	Location  string
	Role      Role
	Status    AccountStatus
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PendingRegistration is the not-yet-an-account state held between the
// register call and OTP verification. It carries everything needed to create
// the account so nothing is written to the database until the email is proven.
type PendingRegistration struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Mobile   string `json:"mobile"`
	Location string `json:"location"`
	Role     Role   `json:"role"`
	Password string `json:"password"` // bcrypt digest, never the plaintext
	OTP      string `json:"otp"`      // hmac digest of the emailed code
}

// PendingPasswordReset is the state held between the forgot-password call and
// the reset confirmation.
type PendingPasswordReset struct {
	Email string `json:"email"`
	OTP   string `json:"otp"` // hmac digest of the emailed code
}

// ProfileUpdate carries the mutable profile fields.
type ProfileUpdate struct {
	AccountID int64
	FullName  string
	Mobile    string
	Location  string
}
