package order

import (
	"context"
	"errors"
	"fmt"

	"bepaid-gateway/internal/logger"
	"bepaid-gateway/internal/payment"

	"go.uber.org/zap"
)

// Service owns order/payment state on behalf of the gateway integration. It
// is the Processor side of the callback protocol and the orchestrator of the
// outbound checkout call.
type Service interface {
	payment.Processor

	// CreatePaymentLink opens a checkout attempt for the order and returns
	// the bePaid redirect URL.
	CreatePaymentLink(ctx context.Context, orderID uint) (string, error)
}

type service struct {
	repo    Repository
	gateway payment.Gateway
}

func NewService(repo Repository, gateway payment.Gateway) Service {
	return &service{repo: repo, gateway: gateway}
}

func (s *service) CreatePaymentLink(ctx context.Context, orderID uint) (string, error) {
	o, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return "", err
	}

	p, err := s.repo.CreatePayment(ctx, o.ID, o.Amount)
	if err != nil {
		return "", fmt.Errorf("failed to create payment: %w", err)
	}

	redirect, err := s.gateway.CreateCheckout(ctx,
		payment.OrderInfo{
			ID:       o.ID,
			Currency: o.Currency,
			Email:    o.Email,
			Phone:    o.Phone,
		},
		payment.PaymentInfo{
			ID:     p.ID,
			Hash:   p.Hash,
			Amount: p.Amount,
		},
	)
	if err != nil {
		return "", err
	}

	logger.FromCtx(ctx).Info("checkout session created",
		zap.Uint("order_id", o.ID),
		zap.Uint("payment_id", p.ID),
	)
	return redirect, nil
}

// LoadPaymentByHash implements payment.Processor. A missing payment is
// reported as (nil, nil): the interpreter treats it as a correlation
// failure, not a fault.
func (s *service) LoadPaymentByHash(ctx context.Context, hash string) (*payment.PaymentInfo, error) {
	p, err := s.repo.GetPaymentByHash(ctx, hash)
	if errors.Is(err, ErrPaymentNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &payment.PaymentInfo{
		ID:     p.ID,
		Hash:   p.Hash,
		Amount: p.Amount,
	}, nil
}

// ProcessPayment implements payment.Processor. Safe under duplicate
// invocation: the first call settles, repeats observe the already-paid
// payment and acknowledge without a second settlement.
func (s *service) ProcessPayment(ctx context.Context, paymentID uint, amount float64) (bool, error) {
	settled, err := s.repo.MarkPaymentPaid(ctx, paymentID)
	if err != nil {
		return false, err
	}

	if settled {
		p, err := s.repo.GetPayment(ctx, paymentID)
		if err != nil {
			return false, err
		}
		if err := s.repo.MarkOrderPaid(ctx, p.OrderID); err != nil {
			return false, err
		}

		logger.FromCtx(ctx).Info("payment settled",
			zap.Uint("payment_id", paymentID),
			zap.Float64("amount", amount),
		)
		return true, nil
	}

	// Zero rows affected: either the payment is unknown or it is already
	// in a terminal state. A repeated notification for a paid payment is
	// acknowledged; everything else is refused.
	p, err := s.repo.GetPayment(ctx, paymentID)
	if err != nil {
		return false, err
	}
	return p.Status == StatusPaid, nil
}
