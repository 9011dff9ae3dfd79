// internal/escrow/stripe.go
package escrow

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/balance"
	"github.com/stripe/stripe-go/v74/paymentintent"
)

// StripeBridge backs the escrow contract with Stripe. A hold is a
// manual-capture PaymentIntent: the charge is authorized but not captured, so
// neither party can touch the funds. Release captures the intent; refund
// cancels it. Disputes are recorded on the intent's metadata and leave the
// funds uncaptured until resolution.
type StripeBridge struct {
	secretKey string
}

func NewStripeBridge(secretKey string) *StripeBridge {
	stripe.Key = secretKey
	return &StripeBridge{secretKey: secretKey}
}

func (b *StripeBridge) HoldFunds(ctx context.Context, params HoldParams) (string, error) {
	amountInCents := int64(params.Amount * 100)

	piParams := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(amountInCents),
		Currency:      stripe.String(params.Currency),
		CaptureMethod: stripe.String(string(stripe.PaymentIntentCaptureMethodManual)),
		Description:   stripe.String(params.Reason),
	}
	piParams.Context = ctx
	if params.IdempotencyKey != "" {
		piParams.SetIdempotencyKey(params.IdempotencyKey)
	}

	piParams.AddMetadata("fan_id", params.From.String())
	piParams.AddMetadata("creator_id", params.To.String())
	piParams.AddMetadata("hold_window_days", fmt.Sprintf("%d", params.HoldWindowDays))
	for k, v := range params.Metadata {
		piParams.AddMetadata(k, v)
	}

	pi, err := paymentintent.New(piParams)
	if err != nil {
		return "", fmt.Errorf("failed to create escrow hold: %w", err)
	}

	return pi.ID, nil
}

func (b *StripeBridge) ReleaseFunds(ctx context.Context, escrowRef, reason string, authorizedBy uuid.UUID) error {
	captureParams := &stripe.PaymentIntentCaptureParams{}
	captureParams.Context = ctx
	captureParams.AddMetadata("release_reason", reason)
	captureParams.AddMetadata("authorized_by", authorizedBy.String())

	if _, err := paymentintent.Capture(escrowRef, captureParams); err != nil {
		return fmt.Errorf("failed to capture escrow hold %s: %w", escrowRef, err)
	}
	return nil
}

func (b *StripeBridge) RefundFunds(ctx context.Context, escrowRef, reason string) error {
	cancelParams := &stripe.PaymentIntentCancelParams{
		CancellationReason: stripe.String("requested_by_customer"),
	}
	cancelParams.Context = ctx

	if _, err := paymentintent.Cancel(escrowRef, cancelParams); err != nil {
		return fmt.Errorf("failed to cancel escrow hold %s: %w", escrowRef, err)
	}
	return nil
}

func (b *StripeBridge) CreateDispute(ctx context.Context, escrowRef string, initiatedBy uuid.UUID, reason string) (string, error) {
	disputeRef := "dp_" + uuid.NewString()

	// Stripe disputes originate from the cardholder side; here the freeze
	// is simply the uncaptured intent, annotated for the adjudicators.
	updateParams := &stripe.PaymentIntentParams{}
	updateParams.Context = ctx
	updateParams.AddMetadata("dispute_ref", disputeRef)
	updateParams.AddMetadata("dispute_initiated_by", initiatedBy.String())
	updateParams.AddMetadata("dispute_reason", reason)

	if _, err := paymentintent.Update(escrowRef, updateParams); err != nil {
		return "", fmt.Errorf("failed to flag escrow hold %s as disputed: %w", escrowRef, err)
	}
	return disputeRef, nil
}

func (b *StripeBridge) Healthy(ctx context.Context) bool {
	params := &stripe.BalanceParams{}
	params.Context = ctx
	_, err := balance.Get(params)
	return err == nil
}
