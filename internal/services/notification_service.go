// internal/services/notification_service.go
package services

import (
	"context"
	"fmt"
	"net/smtp"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/fanzlabs/commissions-backend/internal/config"
	"github.com/fanzlabs/commissions-backend/internal/models"
	"github.com/fanzlabs/commissions-backend/internal/store"
	"github.com/fanzlabs/commissions-backend/internal/ws"
)

// NotificationService drains the undispatched event feed and fans each event
// out as in-app notifications, WebSocket pushes and email. It runs strictly
// out of band: a dead dispatcher delays notifications, it never blocks or
// fails a workflow transition.
type NotificationService struct {
	store store.RequestStore
	db    *gorm.DB // nil when running without a database; persistence and email are skipped
	hub   *ws.Hub
	cfg   *config.Config
}

func NewNotificationService(requestStore store.RequestStore, db *gorm.DB, hub *ws.Hub, cfg *config.Config) *NotificationService {
	return &NotificationService{
		store: requestStore,
		db:    db,
		hub:   hub,
		cfg:   cfg,
	}
}

// eventCopy is the human-facing rendering of each event type.
var eventCopy = map[models.EventType]struct {
	Title   string
	Message string
}{
	models.EventRequestCreated:     {"New commission request", "A new commission request has been submitted for your review."},
	models.EventOfferCountered:     {"New counter-offer", "A counter-offer has been made on your commission request."},
	models.EventOfferAccepted:      {"Offer accepted", "An offer on your commission request has been accepted."},
	models.EventRequestCancelled:   {"Request cancelled", "Your commission request has been cancelled."},
	models.EventRequestExpired:     {"Request expired", "Your commission request expired with no response to the pending offer."},
	models.EventTermsAccepted:      {"Terms accepted", "The service terms have been accepted for your commission request."},
	models.EventAgreementSigned:    {"Agreement signed", "The no-chargeback agreement has been signed for your commission request."},
	models.EventPaymentProcessing:  {"Payment started", "Payment for your commission request is being processed."},
	models.EventEscrowFunded:       {"Funds secured", "Payment has been secured in escrow for your commission request."},
	models.EventProductionStarted:  {"Production started", "The creator has started working on your commission."},
	models.EventContentDelivered:   {"Content delivered", "Your commissioned content has been delivered and awaits your review."},
	models.EventReviewApproved:     {"Delivery approved", "The delivered content has been approved."},
	models.EventEscrowReleased:     {"Funds released", "Escrowed funds have been released to the creator."},
	models.EventRevisionRequested:  {"Revision requested", "A revision has been requested on the delivered content."},
	models.EventDisputeOpened:      {"Dispute opened", "A dispute has been opened on your commission request."},
	models.EventDisputeResolved:    {"Dispute resolved", "The dispute on your commission request has been resolved."},
}

// RunDispatcher drains the event feed on a fixed interval until ctx is done.
func (s *NotificationService) RunDispatcher(ctx context.Context) {
	interval := time.Duration(s.cfg.Policy.DispatchInterval) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logrus.WithField("interval", interval).Info("notification dispatcher started")
	for {
		select {
		case <-ctx.Done():
			logrus.Info("notification dispatcher stopped")
			return
		case <-ticker.C:
			if n, err := s.DispatchPending(ctx); err != nil {
				logrus.WithError(err).Error("event dispatch pass failed")
			} else if n > 0 {
				logrus.WithField("dispatched", n).Debug("dispatched events")
			}
		}
	}
}

// DispatchPending processes one batch of undispatched events and returns how
// many were dispatched. A failure on one event leaves it undispatched for the
// next pass and does not stop the batch.
func (s *NotificationService) DispatchPending(ctx context.Context) (int, error) {
	events, err := s.store.UndispatchedEvents(ctx, 100)
	if err != nil {
		return 0, fmt.Errorf("failed to load undispatched events: %w", err)
	}

	dispatched := 0
	for i := range events {
		ev := &events[i]
		if err := s.deliver(ctx, ev); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"event_id":   ev.ID,
				"event_type": ev.Type,
			}).Warn("failed to deliver event, will retry")
			continue
		}
		if err := s.store.MarkEventDispatched(ctx, ev.ID); err != nil {
			logrus.WithError(err).WithField("event_id", ev.ID).Error("failed to mark event dispatched")
			continue
		}
		dispatched++
	}
	return dispatched, nil
}

func (s *NotificationService) deliver(ctx context.Context, ev *models.RequestEvent) error {
	req, err := s.store.Get(ctx, ev.RequestID)
	if err != nil {
		return fmt.Errorf("failed to load request for event: %w", err)
	}

	text, ok := eventCopy[ev.Type]
	if !ok {
		// Unknown types are dispatched silently so they do not jam the feed.
		logrus.WithField("event_type", ev.Type).Warn("no notification copy for event type")
		return nil
	}

	for _, userID := range s.recipients(req, ev) {
		s.notifyUser(ctx, userID, req, ev, text.Title, text.Message)
	}
	return nil
}

// recipients returns the parties to notify: both sides of the request, minus
// whoever performed the action.
func (s *NotificationService) recipients(req *models.CustomContentRequest, ev *models.RequestEvent) []uuid.UUID {
	out := make([]uuid.UUID, 0, 2)
	for _, id := range []uuid.UUID{req.FanID, req.CreatorID} {
		if ev.ActorID != nil && *ev.ActorID == id {
			continue
		}
		out = append(out, id)
	}
	return out
}

func (s *NotificationService) notifyUser(ctx context.Context, userID uuid.UUID, req *models.CustomContentRequest, ev *models.RequestEvent, title, body string) {
	if s.db != nil {
		notification := &models.Notification{
			UserID:           userID,
			Type:             string(ev.Type),
			Title:            title,
			Message:          body,
			RelatedRequestID: &req.ID,
		}
		if err := s.db.WithContext(ctx).Create(notification).Error; err != nil {
			logrus.WithError(err).WithField("user_id", userID).Error("failed to persist notification")
		}
	}

	if s.hub != nil {
		if err := s.hub.PushToUser(userID, string(ev.Type), map[string]any{
			"request_id": req.ID,
			"title":      title,
			"message":    body,
			"data":       ev.Data,
		}); err != nil {
			logrus.WithError(err).WithField("user_id", userID).Warn("failed to push websocket notification")
		}
	}

	if s.db != nil {
		var user models.User
		if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err == nil && user.Email != "" {
			if err := s.sendEmail(user.Email, title, s.renderEmailBody(user.Username, body, req)); err != nil {
				logrus.WithError(err).WithField("user_id", userID).Warn("failed to send notification email")
			}
		}
	}
}

// ListNotifications returns a user's in-app notifications, newest first.
func (s *NotificationService) ListNotifications(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]models.Notification, error) {
	if s.db == nil {
		return []models.Notification{}, nil
	}

	query := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("read_at IS NULL")
	}

	var notifications []models.Notification
	if err := query.Order("created_at DESC").Limit(100).Find(&notifications).Error; err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

// MarkNotificationRead stamps a single notification as read.
func (s *NotificationService) MarkNotificationRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	if s.db == nil {
		return nil
	}

	now := time.Now()
	result := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("read_at", &now)
	if result.Error != nil {
		return fmt.Errorf("failed to mark notification read: %w", result.Error)
	}
	return nil
}

func (s *NotificationService) renderEmailBody(username, body string, req *models.CustomContentRequest) string {
	return fmt.Sprintf(
		"<p>Hi %s,</p><p>%s</p><p><a href=\"%s/requests/%s\">View request #%d</a></p>",
		username, body, s.cfg.Frontend.BaseURL, req.ID, req.SequenceNumber,
	)
}

func (s *NotificationService) sendEmail(to, subject, body string) error {
	if s.cfg.Email.SMTPHost == "" {
		logrus.WithFields(logrus.Fields{"to": to, "subject": subject}).Debug("email not configured, skipping send")
		return nil
	}

	auth := smtp.PlainAuth("", s.cfg.Email.SMTPUsername, s.cfg.Email.SMTPPassword, s.cfg.Email.SMTPHost)
	msg := []byte(fmt.Sprintf("To: %s\r\nSubject: %s\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s", to, subject, body))
	addr := fmt.Sprintf("%s:%s", s.cfg.Email.SMTPHost, s.cfg.Email.SMTPPort)
	return smtp.SendMail(addr, auth, s.cfg.Email.FromEmail, []string{to}, msg)
}
