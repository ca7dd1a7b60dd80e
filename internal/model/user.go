package model

// RoleAdmin is the role value that passes the admin guard.
const RoleAdmin = "admin"

// IsAdmin reports whether a user document carries the admin role.
func IsAdmin(user Document) bool {
	return user != nil && user.String(FieldRole) == RoleAdmin
}

// VerificationResult is returned after flipping a user's isVerified flag.
// UpdatedStatus keeps the {"$set": {...}} shape existing clients read.
type VerificationResult struct {
	UpdatedStatus map[string]Document `json:"updatedStatus"`
	IsVerified    bool                `json:"isVerified"`
	PaymentData   Document            `json:"paymentData"`
}

// NewVerificationResult builds the toggle response for the new flag value.
func NewVerificationResult(isVerified bool, payment Document) *VerificationResult {
	return &VerificationResult{
		UpdatedStatus: map[string]Document{"$set": {FieldIsVerified: isVerified}},
		IsVerified:    isVerified,
		PaymentData:   payment,
	}
}

// DeactivationResponse is returned after a user is soft-deactivated.
type DeactivationResponse struct {
	Message string   `json:"message"`
	User    Document `json:"user"`
}
