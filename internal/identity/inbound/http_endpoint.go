package inbound

import (
	"github.com/dailyvegies/api/internal/identity/usecase"
	"github.com/dailyvegies/api/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for registration, login, password and
// approval workflows.
type HTTPEndpoint struct {
	uc uc
}

// Register starts the registration flow by emailing a verification code.
// @Summary Register account
// @Description Stores a pending registration and emails a one-time code. No account exists until the code is verified.
// @Tags Identity, Registration
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration payload"
// @Success 200 {object} router.successResponse{data=RegisterResponse} "Continuation token for the verify step"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 409 {object} router.errorResponse "Email already registered"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 502 {object} router.errorResponse "Verification email could not be sent"
// @Router /api/v1/identity/register [post]
func (h *HTTPEndpoint) Register(r *router.Request) (any, error) {
	var req RegisterRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Register(r.Context(), usecase.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Mobile:   req.Mobile,
		Location: req.Location,
		Role:     req.Role,
	})
	if err != nil {
		return nil, err
	}

	return RegisterResponse{
		ContinuationToken: resp.ContinuationToken,
		ExpiresIn:         resp.ExpiresInSeconds,
	}, nil
}

// RegisterVerify confirms the emailed code and creates the account.
// @Summary Verify registration
// @Description Consumes the one-time code. Consumers get an access token right away; farmers and delivery agents wait for admin approval.
// @Tags Identity, Registration
// @Accept json
// @Produce json
// @Param request body RegisterVerifyRequest true "Verification payload"
// @Success 200 {object} router.successResponse{data=RegisterVerifyResponse} "Created account"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Incorrect code or invalid continuation token"
// @Failure 404 {object} router.errorResponse "No pending registration"
// @Failure 410 {object} router.errorResponse "Code expired"
// @Failure 429 {object} router.errorResponse "Too many incorrect codes"
// @Router /api/v1/identity/register/verify [post]
func (h *HTTPEndpoint) RegisterVerify(r *router.Request) (any, error) {
	var req RegisterVerifyRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.RegisterVerify(r.Context(), usecase.RegisterVerifyInput{
		ContinuationToken: req.ContinuationToken,
		OTP:               req.OTP,
	})
	if err != nil {
		return nil, err
	}

	return RegisterVerifyResponse{
		AccountID:       resp.AccountID,
		Email:           resp.Email,
		FullName:        resp.FullName,
		Role:            resp.Role.String(),
		PendingApproval: resp.PendingApproval,
		AccessToken:     resp.AccessToken,
	}, nil
}

// Login authenticates an account and returns an access token.
// @Summary Authenticate account
// @Description Validates credentials and returns an access token. Accounts awaiting approval cannot log in.
// @Tags Identity, Authentication
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login payload"
// @Success 200 {object} router.successResponse{data=LoginResponse} "Authentication result"
// @Failure 401 {object} router.errorResponse "Invalid credentials"
// @Failure 403 {object} router.errorResponse "Account awaiting approval or suspended"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /api/v1/identity/login [post]
func (h *HTTPEndpoint) Login(r *router.Request) (any, error) {
	var req LoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Login(r.Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return nil, err
	}

	return LoginResponse{
		AccessToken: resp.AccessToken,
		AccountID:   resp.AccountID,
		FullName:    resp.FullName,
		Role:        resp.Role.String(),
	}, nil
}

// PasswordForgot starts the password reset flow.
// @Summary Request password reset
// @Description Emails a one-time reset code when the address belongs to an account. The response shape is identical either way.
// @Tags Identity, Password
// @Accept json
// @Produce json
// @Param request body PasswordForgotRequest true "Forgot password payload"
// @Success 200 {object} router.successResponse{data=PasswordForgotResponse} "Continuation token for the reset step"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /api/v1/identity/password/forgot [post]
func (h *HTTPEndpoint) PasswordForgot(r *router.Request) (any, error) {
	var req PasswordForgotRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.PasswordForgot(r.Context(), usecase.PasswordForgotInput{Email: req.Email})
	if err != nil {
		return nil, err
	}

	return PasswordForgotResponse{
		ContinuationToken: resp.ContinuationToken,
		ExpiresIn:         resp.ExpiresInSeconds,
	}, nil
}

// PasswordReset confirms the reset code and sets a new password.
// @Summary Reset password
// @Description Consumes the one-time reset code and replaces the password.
// @Tags Identity, Password
// @Accept json
// @Produce json
// @Param request body PasswordResetRequest true "Reset payload"
// @Success 200 {object} router.successResponse{data=PasswordResetResponse} "Reset confirmation"
// @Failure 401 {object} router.errorResponse "Incorrect code or invalid continuation token"
// @Failure 410 {object} router.errorResponse "Code expired"
// @Failure 429 {object} router.errorResponse "Too many incorrect codes"
// @Router /api/v1/identity/password/reset [post]
func (h *HTTPEndpoint) PasswordReset(r *router.Request) (any, error) {
	var req PasswordResetRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.PasswordReset(r.Context(), usecase.PasswordResetInput{
		ContinuationToken: req.ContinuationToken,
		OTP:               req.OTP,
		NewPassword:       req.NewPassword,
	}); err != nil {
		return nil, err
	}

	return PasswordResetResponse{}, nil
}

// Profile returns the authenticated account.
// @Summary Get profile
// @Tags Identity, Profile
// @Produce json
// @Success 200 {object} router.successResponse{data=ProfileResponse} "Account profile"
// @Failure 401 {object} router.errorResponse "Unauthenticated"
// @Router /api/v1/identity/profile [get]
func (h *HTTPEndpoint) Profile(r *router.Request) (any, error) {
	resp, err := h.uc.Profile(r.Context())
	if err != nil {
		return nil, err
	}

	return ProfileResponse{
		ID:        resp.Account.ID,
		Email:     resp.Account.Email,
		FullName:  resp.Account.FullName,
		Mobile:    resp.Account.Mobile,
		Location:  resp.Account.Location,
		Role:      resp.Account.Role.String(),
		Status:    resp.Account.Status.String(),
		CreatedAt: resp.Account.CreatedAt,
	}, nil
}

// ProfileUpdate updates the mutable profile fields.
// @Summary Update profile
// @Tags Identity, Profile
// @Accept json
// @Produce json
// @Param request body ProfileUpdateRequest true "Profile payload"
// @Success 200 {object} router.successResponse{data=ProfileUpdateResponse} "Update confirmation"
// @Failure 401 {object} router.errorResponse "Unauthenticated"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /api/v1/identity/profile [put]
func (h *HTTPEndpoint) ProfileUpdate(r *router.Request) (any, error) {
	var req ProfileUpdateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.ProfileUpdate(r.Context(), usecase.ProfileUpdateInput{
		FullName: req.FullName,
		Mobile:   req.Mobile,
		Location: req.Location,
	}); err != nil {
		return nil, err
	}

	return ProfileUpdateResponse{}, nil
}

// UserDetail returns another account's public profile.
// @Summary Get user detail
// @Tags Identity, Profile
// @Produce json
// @Param id path int true "Account ID"
// @Success 200 {object} router.successResponse{data=UserDetailResponse} "Public profile"
// @Failure 404 {object} router.errorResponse "Account not found"
// @Router /api/v1/identity/users/{id} [get]
func (h *HTTPEndpoint) UserDetail(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.UserDetail(r.Context(), usecase.UserDetailInput{AccountID: id})
	if err != nil {
		return nil, err
	}

	return UserDetailResponse{
		ID:       resp.Account.ID,
		FullName: resp.Account.FullName,
		Location: resp.Account.Location,
		Role:     resp.Account.Role.String(),
	}, nil
}

// AccountApprovals lists accounts awaiting admin approval.
// @Summary List pending approvals
// @Tags Identity, Approval
// @Produce json
// @Success 200 {object} router.successResponse{data=[]AccountApprovalResponse} "Pending accounts"
// @Failure 403 {object} router.errorResponse "Not an admin"
// @Router /api/v1/identity/admin/approvals [get]
func (h *HTTPEndpoint) AccountApprovals(r *router.Request) (any, error) {
	resp, err := h.uc.AccountApprovals(r.Context())
	if err != nil {
		return nil, err
	}

	out := make([]AccountApprovalResponse, 0, len(resp.Accounts))
	for _, a := range resp.Accounts {
		out = append(out, AccountApprovalResponse{
			ID:        a.ID,
			Email:     a.Email,
			FullName:  a.FullName,
			Mobile:    a.Mobile,
			Location:  a.Location,
			Role:      a.Role.String(),
			CreatedAt: a.CreatedAt,
		})
	}

	return out, nil
}

// AccountApprove activates a pending farmer or delivery-agent account.
// @Summary Approve account
// @Tags Identity, Approval
// @Accept json
// @Produce json
// @Param request body AccountVerifyRequest true "Approval payload"
// @Success 200 {object} router.successResponse{data=AccountApproveResponse} "Approval confirmation"
// @Failure 403 {object} router.errorResponse "Not an admin"
// @Failure 404 {object} router.errorResponse "Account not found"
// @Failure 409 {object} router.errorResponse "Account is not awaiting approval"
// @Router /api/v1/identity/admin/verify [post]
func (h *HTTPEndpoint) AccountApprove(r *router.Request) (any, error) {
	var req AccountVerifyRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.AccountApprove(r.Context(), usecase.AccountApproveInput{AccountID: req.AccountID}); err != nil {
		return nil, err
	}

	return AccountApproveResponse{}, nil
}
