// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, j)
}

// Enums
type UserType string

const (
	UserTypeFan     UserType = "fan"
	UserTypeCreator UserType = "creator"
	UserTypeAdmin   UserType = "admin"
)

type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusBanned    UserStatus = "banned"
)

type ContentType string

const (
	ContentTypePhoto    ContentType = "photo"
	ContentTypeVideo    ContentType = "video"
	ContentTypeAudio    ContentType = "audio"
	ContentTypeText     ContentType = "text"
	ContentTypePhotoSet ContentType = "photo_set"
	ContentTypeCustom   ContentType = "custom"
)

func (t ContentType) Valid() bool {
	switch t {
	case ContentTypePhoto, ContentTypeVideo, ContentTypeAudio,
		ContentTypeText, ContentTypePhotoSet, ContentTypeCustom:
		return true
	}
	return false
}

// RequestStatus is the single authority for which actions are legal on a
// commission request at any point in its lifecycle.
type RequestStatus string

const (
	StatusPendingCreatorReview RequestStatus = "pending_creator_review"
	StatusNegotiating          RequestStatus = "negotiating"
	StatusAccepted             RequestStatus = "accepted"
	StatusPaymentProcessing    RequestStatus = "payment_processing"
	StatusInEscrow             RequestStatus = "in_escrow"
	StatusInProduction         RequestStatus = "in_production"
	StatusAwaitingReview       RequestStatus = "awaiting_review"
	StatusDisputed             RequestStatus = "disputed"
	StatusCompleted            RequestStatus = "completed"
	StatusCancelled            RequestStatus = "cancelled"
	StatusExpired              RequestStatus = "expired"
)

func (s RequestStatus) Terminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusExpired:
		return true
	}
	return false
}

// EscrowHeld reports whether funds are expected to be under escrow custody
// for a request in this status.
func (s RequestStatus) EscrowHeld() bool {
	switch s {
	case StatusInEscrow, StatusInProduction, StatusAwaitingReview, StatusDisputed, StatusCompleted:
		return true
	}
	return false
}

type OfferOrigin string

const (
	OfferOriginFan     OfferOrigin = "fan"
	OfferOriginCreator OfferOrigin = "creator"
)

type OfferOutcome string

const (
	OfferOutcomePending   OfferOutcome = "pending"
	OfferOutcomeAccepted  OfferOutcome = "accepted"
	OfferOutcomeCountered OfferOutcome = "countered"
	OfferOutcomeRejected  OfferOutcome = "rejected"
)

type RespondAction string

const (
	RespondActionAccept  RespondAction = "accept"
	RespondActionCounter RespondAction = "counter"
	RespondActionReject  RespondAction = "reject"
)

type ReviewAction string

const (
	ReviewActionApprove         ReviewAction = "approve"
	ReviewActionRequestRevision ReviewAction = "request_revision"
	ReviewActionDispute         ReviewAction = "dispute"
)

type ReviewOutcome string

const (
	ReviewOutcomePending           ReviewOutcome = "pending"
	ReviewOutcomeApproved          ReviewOutcome = "approved"
	ReviewOutcomeRevisionRequested ReviewOutcome = "revision_requested"
	ReviewOutcomeDisputed          ReviewOutcome = "disputed"
)

type RevisionStatus string

const (
	RevisionStatusPending    RevisionStatus = "pending"
	RevisionStatusInProgress RevisionStatus = "in_progress"
	RevisionStatusCompleted  RevisionStatus = "completed"
)

type DisputeOutcome string

const (
	DisputeOutcomeRelease DisputeOutcome = "release"
	DisputeOutcomeRefund  DisputeOutcome = "refund"
)

type EventType string

const (
	EventRequestCreated    EventType = "request_created"
	EventOfferCountered    EventType = "offer_countered"
	EventOfferAccepted     EventType = "offer_accepted"
	EventRequestCancelled  EventType = "request_cancelled"
	EventRequestExpired    EventType = "request_expired"
	EventTermsAccepted     EventType = "terms_accepted"
	EventAgreementSigned   EventType = "agreement_signed"
	EventPaymentProcessing EventType = "payment_processing"
	EventEscrowFunded      EventType = "escrow_funded"
	EventProductionStarted EventType = "production_started"
	EventContentDelivered  EventType = "content_delivered"
	EventReviewApproved    EventType = "review_approved"
	EventEscrowReleased    EventType = "escrow_released"
	EventRevisionRequested EventType = "revision_requested"
	EventDisputeOpened     EventType = "dispute_opened"
	EventDisputeResolved   EventType = "dispute_resolved"
)
