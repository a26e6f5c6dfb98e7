package inbound

import (
	"net/http"
	"time"
)

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Mobile   string `json:"mobile"`
	Location string `json:"location"`
	Role     string `json:"role"`
}

type RegisterResponse struct {
	ContinuationToken string `json:"continuation_token"`
	ExpiresIn         int64  `json:"expires_in"`
}

func (RegisterResponse) Message() string {
	return "We have sent a verification code to your email."
}

type RegisterVerifyRequest struct {
	ContinuationToken string `json:"continuation_token"`
	OTP               string `json:"otp"`
}

type RegisterVerifyResponse struct {
	AccountID       int64  `json:"account_id,string"`
	Email           string `json:"email"`
	FullName        string `json:"full_name"`
	Role            string `json:"role"`
	PendingApproval bool   `json:"pending_approval"`
	AccessToken     string `json:"access_token,omitempty"`
}

func (RegisterVerifyResponse) StatusCode() int {
	return http.StatusCreated
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	AccountID   int64  `json:"account_id,string"`
	FullName    string `json:"full_name"`
	Role        string `json:"role"`
}

type PasswordForgotRequest struct {
	Email string `json:"email"`
}

type PasswordForgotResponse struct {
	ContinuationToken string `json:"continuation_token"`
	ExpiresIn         int64  `json:"expires_in"`
}

func (PasswordForgotResponse) Message() string {
	return "If an account with that email exists, we have sent a reset code."
}

type PasswordResetRequest struct {
	ContinuationToken string `json:"continuation_token"`
	OTP               string `json:"otp"`
	NewPassword       string `json:"new_password"`
}

type PasswordResetResponse struct{}

func (PasswordResetResponse) Message() string {
	return "Your password has been reset. You can log in now."
}

type ProfileResponse struct {
	ID        int64     `json:"id,string"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Mobile    string    `json:"mobile"`
	Location  string    `json:"location"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type ProfileUpdateRequest struct {
	FullName string `json:"full_name"`
	Mobile   string `json:"mobile"`
	Location string `json:"location"`
}

type ProfileUpdateResponse struct{}

func (ProfileUpdateResponse) Message() string {
	return "Your profile has been updated."
}

type UserDetailResponse struct {
	ID       int64  `json:"id,string"`
	FullName string `json:"full_name"`
	Location string `json:"location"`
	Role     string `json:"role"`
}

type AccountVerifyRequest struct {
	AccountID int64 `json:"account_id,string"`
}

type AccountApprovalResponse struct {
	ID        int64     `json:"id,string"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Mobile    string    `json:"mobile"`
	Location  string    `json:"location"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type AccountApproveResponse struct{}

func (AccountApproveResponse) Message() string {
	return "Account approved."
}
