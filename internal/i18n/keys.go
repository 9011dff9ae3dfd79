// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthRegisterSuccess    = "auth.register_success"
	KeyAccessDenied           = "auth.access_denied"
	KeyAdminAccessDenied      = "admin.access_denied"

	// Commission requests
	KeyRequestCreated   = "request.created"
	KeyRequestNotFound  = "request.not_found"
	KeyRequestCancelled = "request.cancelled"
	KeyRequestAccepted  = "request.accepted"
	KeyRequestCountered = "request.countered"

	// Compliance
	KeyTermsAccepted   = "compliance.terms_accepted"
	KeyAgreementSigned = "compliance.agreement_signed"

	// Escrow
	KeyEscrowFunded   = "escrow.funded"
	KeyEscrowReleased = "escrow.released"
	KeyEscrowFailed   = "escrow.failed"

	// Delivery & review
	KeyContentDelivered  = "delivery.delivered"
	KeyReviewApproved    = "review.approved"
	KeyRevisionRequested = "review.revision_requested"
	KeyDisputeOpened     = "review.dispute_opened"
	KeyDisputeResolved   = "review.dispute_resolved"

	// Validation
	KeyValidationInvalid = "validation.invalid"

	// Throttling
	KeyRateLimited = "rate.limited"
)

var enCatalog = map[string]string{
	KeySuccess: "Success",
	KeyError:   "Error",

	KeyAuthRequired:           "Authentication required",
	KeyAuthInvalidToken:       "Invalid authentication token",
	KeyAuthTokenExpired:       "Authentication token expired",
	KeyAuthInvalidCredentials: "Invalid email or password",
	KeyAuthUserExists:         "User already exists",
	KeyAuthLoginSuccess:       "Logged in successfully",
	KeyAuthRegisterSuccess:    "Account created successfully",
	KeyAccessDenied:           "You do not have access to this resource",
	KeyAdminAccessDenied:      "Administrator access required",

	KeyRequestCreated:   "Commission request submitted",
	KeyRequestNotFound:  "Commission request not found",
	KeyRequestCancelled: "Commission request cancelled",
	KeyRequestAccepted:  "Offer accepted and price finalized",
	KeyRequestCountered: "Counter offer sent",

	KeyTermsAccepted:   "Terms of service accepted",
	KeyAgreementSigned: "No-chargeback agreement signed",

	KeyEscrowFunded:   "Funds secured in escrow; production has started",
	KeyEscrowReleased: "Escrowed funds released to the creator",
	KeyEscrowFailed:   "Escrow funding failed; please retry",

	KeyContentDelivered:  "Content delivered for review",
	KeyReviewApproved:    "Delivery approved",
	KeyRevisionRequested: "Revision requested",
	KeyDisputeOpened:     "Dispute opened; escrowed funds frozen",
	KeyDisputeResolved:   "Dispute resolved",

	KeyValidationInvalid: "Invalid %s",

	KeyRateLimited: "Too many requests, please slow down",
}
