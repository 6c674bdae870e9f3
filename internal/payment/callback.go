package payment

import (
	"context"
	"encoding/json"
	"net/url"

	"bepaid-gateway/internal/logger"

	"go.uber.org/zap"
)

// CallbackOutcome classifies one webhook interpretation. The HTTP layer
// decides status codes from the variant; no exceptions cross this boundary.
type CallbackOutcome int

const (
	// Settled: the payment was found and the processor confirmed settlement.
	Settled CallbackOutcome = iota

	// NotActionable: authenticated, but not a successful payment event.
	// bePaid sends many notification types; only "payment"/"successful" is
	// handled, the rest are ignored without error.
	NotActionable

	// CorrelationFailure: no tracked payment matches the notification's
	// hash (or the hash itself is missing from the URL).
	CorrelationFailure

	// SettlementError: the lookup or the downstream settlement call failed.
	SettlementError
)

func (o CallbackOutcome) String() string {
	switch o {
	case Settled:
		return "settled"
	case NotActionable:
		return "not_actionable"
	case CorrelationFailure:
		return "correlation_failure"
	default:
		return "settlement_error"
	}
}

// Processor is the external order system owning payment state. Both
// operations must be safe under concurrent and duplicate invocation for the
// same payment: this integration holds no state of its own.
type Processor interface {
	// LoadPaymentByHash returns the payment tracked for hash, or (nil, nil)
	// when no payment matches.
	LoadPaymentByHash(ctx context.Context, hash string) (*PaymentInfo, error)

	// ProcessPayment marks the payment settled for the given major-unit
	// amount and reports whether settlement stands.
	ProcessPayment(ctx context.Context, paymentID uint, amount float64) (bool, error)
}

// CallbackRequest is the inbound notification as handed over by the HTTP
// layer: credentials, the notification URL's query parameters and the raw
// body. Handing it over explicitly keeps interpretation deterministic in
// tests.
type CallbackRequest struct {
	Username string
	Password string
	HasAuth  bool
	Query    url.Values
	Body     []byte
}

// Interpreter authenticates bePaid notifications and decides whether one
// settles a payment.
type Interpreter struct {
	merchant  Merchant
	processor Processor
}

func NewInterpreter(m Merchant, p Processor) *Interpreter {
	return &Interpreter{merchant: m, processor: p}
}

// Authenticate reports whether the notification carries Basic credentials
// exactly equal to the configured shop id and secret key. It runs before any
// body parsing so unauthenticated input never reaches the JSON decoder.
func (i *Interpreter) Authenticate(ctx context.Context, req CallbackRequest) bool {
	if !req.HasAuth ||
		req.Username != i.merchant.ShopID ||
		req.Password != i.merchant.SecretKey {
		logger.FromCtx(ctx).Warn("bepaid notification could not be authorized")
		return false
	}
	return true
}

// Interpret parses an authenticated notification body and, for a successful
// payment event, invokes settlement with the locally tracked amount. The
// notification's own amount is never trusted.
func (i *Interpreter) Interpret(ctx context.Context, req CallbackRequest) CallbackOutcome {
	log := logger.FromCtx(ctx)

	var note Notification
	if err := json.Unmarshal(req.Body, &note); err != nil {
		return NotActionable
	}

	// An absent tracking_id and an empty one are indistinguishable after
	// decoding; both make the event non-actionable.
	tx := note.Transaction
	if tx == nil || tx.Type != transactionTypePayment || tx.TrackingID == "" ||
		tx.Status == "" || tx.Status != statusSuccessful {
		return NotActionable
	}

	hash := paymentHash(req.Query)
	if hash == "" {
		log.Error("bepaid notification carries no payment hash",
			zap.String("tracking_id", tx.TrackingID),
		)
		return CorrelationFailure
	}

	p, err := i.processor.LoadPaymentByHash(ctx, hash)
	if err != nil {
		log.Error("bepaid payment process failed",
			zap.Error(err),
			zap.String("payment_hash", hash),
		)
		return SettlementError
	}
	if p == nil {
		log.Error("bepaid payment not found",
			zap.String("payment_hash", hash),
			zap.String("tracking_id", tx.TrackingID),
		)
		return CorrelationFailure
	}

	ok, err := i.processor.ProcessPayment(ctx, p.ID, p.Amount)
	if err != nil {
		log.Error("bepaid payment process failed",
			zap.Error(err),
			zap.String("payment_hash", hash),
		)
		return SettlementError
	}
	if !ok {
		return SettlementError
	}

	log.Info("bepaid payment settled",
		zap.Uint("payment_id", p.ID),
		zap.Float64("amount", p.Amount),
		zap.String("tracking_id", tx.TrackingID),
	)
	return Settled
}

// paymentHash extracts the correlation hash from the notification URL's
// query parameters. Exactly one non-empty value is accepted; anything else
// means no payment is identified.
func paymentHash(q url.Values) string {
	vals := q[hashParam]
	if len(vals) != 1 || vals[0] == "" {
		return ""
	}
	return vals[0]
}
