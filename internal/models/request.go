// internal/models/request.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// CustomContentRequest is the aggregate root of the commission workflow. All
// mutations go through the request store's Transition primitive; nothing else
// may change Status or the derived money fields.
type CustomContentRequest struct {
	BaseModel
	// SequenceNumber is a platform-wide, human-readable reference number.
	// Display only; it carries no authorization weight.
	SequenceNumber int64 `json:"sequence_number" gorm:"autoIncrement;uniqueIndex"`

	PlatformID uuid.UUID `json:"platform_id" gorm:"type:uuid;not null;index"`
	FanID      uuid.UUID `json:"fan_id" gorm:"type:uuid;not null;index"`
	CreatorID  uuid.UUID `json:"creator_id" gorm:"type:uuid;not null;index"`

	ContentType         ContentType    `json:"content_type" gorm:"type:varchar(20);not null"`
	Description         string         `json:"description" gorm:"type:text;not null"`
	SpecialRequirements pq.StringArray `json:"special_requirements" gorm:"type:text[]"`
	DueDate             *time.Time     `json:"due_date"`

	ProposedAmount   float64  `json:"proposed_amount" gorm:"type:decimal(10,2);not null"`
	NegotiatedAmount *float64 `json:"negotiated_amount" gorm:"type:decimal(10,2)"`
	// FinalAmount equals the last mutually accepted offer. Set exactly once
	// when the request reaches accepted, never changed afterwards.
	FinalAmount      *float64 `json:"final_amount" gorm:"type:decimal(10,2)"`
	Currency         string   `json:"currency" gorm:"size:3;not null;default:'USD'"`
	PaymentMethodRef string   `json:"payment_method_ref,omitempty" gorm:"size:255"`

	Status RequestStatus `json:"status" gorm:"type:varchar(30);not null;default:'pending_creator_review';index"`

	// Compliance record. Both timestamps must be set before escrow funding.
	TermsAcceptedAt      *time.Time `json:"terms_accepted_at"`
	NoChargebackSignedAt *time.Time `json:"no_chargeback_signed_at"`

	// EscrowTransactionID is the opaque reference handed back by the escrow
	// bridge. Its presence is proof that funds have left the fan's custody.
	EscrowTransactionID string `json:"escrow_transaction_id,omitempty" gorm:"size:255;index"`
	DisputeReference    string `json:"dispute_reference,omitempty" gorm:"size:255"`

	DeliveredContentRef string     `json:"delivered_content_ref,omitempty" gorm:"size:512"`
	DeliveredAt         *time.Time `json:"delivered_at"`
	DeliveryNotes       string     `json:"delivery_notes,omitempty" gorm:"type:text"`

	ReviewOutcome ReviewOutcome `json:"review_outcome,omitempty" gorm:"type:varchar(20)"`
	ReviewNotes   string        `json:"review_notes,omitempty" gorm:"type:text"`
	ReviewedAt    *time.Time    `json:"reviewed_at"`

	CompletedAt        *time.Time `json:"completed_at"`
	CancelledAt        *time.Time `json:"cancelled_at"`
	CancellationReason string     `json:"cancellation_reason,omitempty" gorm:"size:255"`

	// Relationships
	Offers    []NegotiationOffer `json:"offers,omitempty" gorm:"foreignKey:RequestID"`
	Revisions []RevisionRequest  `json:"revisions,omitempty" gorm:"foreignKey:RequestID"`
	Events    []RequestEvent     `json:"events,omitempty" gorm:"foreignKey:RequestID"`
}

// NegotiationOffer is one entry of the append-only negotiation history.
// Entries are never mutated after creation except to resolve their outcome.
type NegotiationOffer struct {
	BaseModel
	RequestID  uuid.UUID    `json:"request_id" gorm:"type:uuid;not null;index"`
	Position   int          `json:"position" gorm:"not null"`
	Origin     OfferOrigin  `json:"origin" gorm:"type:varchar(10);not null"`
	Amount     float64      `json:"amount" gorm:"type:decimal(10,2);not null"`
	Message    string       `json:"message,omitempty" gorm:"type:text"`
	Outcome    OfferOutcome `json:"outcome" gorm:"type:varchar(10);not null;default:'pending'"`
	ExpiresAt  time.Time    `json:"expires_at"`
	ResolvedAt *time.Time   `json:"resolved_at"`
}

func (o *NegotiationOffer) Expired(now time.Time) bool {
	return o.Outcome == OfferOutcomePending && now.After(o.ExpiresAt)
}

// RevisionRequest is a fan-initiated request for rework on delivered content.
type RevisionRequest struct {
	BaseModel
	RequestID   uuid.UUID      `json:"request_id" gorm:"type:uuid;not null;index"`
	Position    int            `json:"position" gorm:"not null"`
	Details     string         `json:"details" gorm:"type:text;not null"`
	Status      RevisionStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	CompletedAt *time.Time     `json:"completed_at"`
}

// CurrentOffer returns the most recent offer still pending the other party's
// response, or nil when no offer is open.
func (r *CustomContentRequest) CurrentOffer() *NegotiationOffer {
	for i := len(r.Offers) - 1; i >= 0; i-- {
		if r.Offers[i].Outcome == OfferOutcomePending {
			return &r.Offers[i]
		}
	}
	return nil
}

// ComplianceSatisfied reports whether both attestations required before any
// money moves have been recorded.
func (r *CustomContentRequest) ComplianceSatisfied() bool {
	return r.TermsAcceptedAt != nil && r.NoChargebackSignedAt != nil
}

// OpenRevision returns the latest revision record not yet completed.
func (r *CustomContentRequest) OpenRevision() *RevisionRequest {
	for i := len(r.Revisions) - 1; i >= 0; i-- {
		if r.Revisions[i].Status != RevisionStatusCompleted {
			return &r.Revisions[i]
		}
	}
	return nil
}

// ParticipantRole returns the role userID plays on this request, or "" when
// the user is not a party to it.
func (r *CustomContentRequest) ParticipantRole(userID uuid.UUID) UserType {
	switch userID {
	case r.FanID:
		return UserTypeFan
	case r.CreatorID:
		return UserTypeCreator
	}
	return ""
}
