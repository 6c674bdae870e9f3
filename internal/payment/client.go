package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"time"

	"bepaid-gateway/internal/logger"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	checkoutEndpoint = "https://checkout.bepaid.by/ctp/api/checkouts"
	apiVersion       = "2"
	requestTimeout   = 30 * time.Second
)

var (
	// ErrGatewayUnavailable covers transport-level failures: connection
	// errors and the 30 second timeout.
	ErrGatewayUnavailable = errors.New("bepaid: gateway request failed")

	// ErrNoRedirect means bePaid answered but the response carries no
	// redirect URL. The shopper gets a generic failure; gateway particulars
	// never reach the browser.
	ErrNoRedirect = errors.New("bepaid: no redirect url in gateway response")
)

// Gateway is the outbound half of the integration: create a hosted checkout
// session and return the URL the shopper is redirected to.
type Gateway interface {
	CreateCheckout(ctx context.Context, o OrderInfo, p PaymentInfo) (string, error)
}

type bepaidGateway struct {
	merchant Merchant
	client   *resty.Client
	endpoint string
}

func NewGateway(m Merchant) Gateway {
	client := resty.New().
		SetTimeout(requestTimeout).
		SetBasicAuth(m.ShopID, m.SecretKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("Cache-Control", "no-cache").
		SetHeader("X-API-Version", apiVersion)

	return &bepaidGateway{
		merchant: m,
		client:   client,
		endpoint: checkoutEndpoint,
	}
}

// CreateCheckout performs the single synchronous round trip to bePaid. Both
// failure modes resolve to an error value; nothing is raised past this
// boundary.
func (g *bepaidGateway) CreateCheckout(ctx context.Context, o OrderInfo, p PaymentInfo) (string, error) {
	checkout, err := BuildCheckout(g.merchant, o, p)
	if err != nil {
		return "", err
	}

	body, err := encodeCheckout(checkout)
	if err != nil {
		return "", err
	}

	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(body).
		Post(g.endpoint)
	if err != nil {
		if g.merchant.Debug {
			logger.FromCtx(ctx).Error("bepaid request failed",
				zap.ByteString("request", body),
				zap.Error(err),
			)
		}
		return "", ErrGatewayUnavailable
	}

	var parsed checkoutResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err == nil && parsed.Checkout.RedirectURL != "" {
		return parsed.Checkout.RedirectURL, nil
	}

	if g.merchant.Debug {
		logger.FromCtx(ctx).Error("bepaid returned no redirect url",
			zap.ByteString("request", body),
			zap.ByteString("response", resp.Body()),
			zap.Int("status", resp.StatusCode()),
		)
	}
	return "", ErrNoRedirect
}

// encodeCheckout marshals without HTML escaping so customer names and order
// descriptions go over the wire as-is, matching what bePaid displays.
func encodeCheckout(c *CheckoutRequest) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
