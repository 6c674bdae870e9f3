package payment

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const (
	successPath      = "commerce/bepaid/payment-success"
	failedPath       = "commerce/bepaid/payment-failed"
	notificationPath = "commerce/bepaid/payment-process"

	transactionTypePayment = "payment"
	statusSuccessful       = "successful"
	checkoutLanguage       = "ru"

	// hashParam is the query parameter the notification URL carries. It is
	// the only way the callback side can recover which payment a
	// notification reports on.
	hashParam = "paymentHash"
)

// ErrMissingCredentials means neither a shop id nor a secret key is
// configured. The storefront must surface this as an inline configuration
// error instead of attempting checkout.
var ErrMissingCredentials = errors.New("bepaid: shop id and secret key are not configured")

// BuildCheckout maps an order/payment pair onto the checkout-session schema.
// The payment hash ends up both in the tracking id (diagnostics) and in the
// notification URL (correlation).
func BuildCheckout(m Merchant, o OrderInfo, p PaymentInfo) (*CheckoutRequest, error) {
	// Only both-empty is a configuration error; a single missing credential
	// will fail authentication at the gateway instead.
	if m.ShopID == "" && m.SecretKey == "" {
		return nil, ErrMissingCredentials
	}

	base := strings.TrimSuffix(m.SiteURL, "/") + "/"
	successURL := base + successPath
	failedURL := base + failedPath
	notifyURL := base + notificationPath + "?" + hashParam + "=" + url.QueryEscape(p.Hash)

	return &CheckoutRequest{
		Checkout: Checkout{
			TransactionType: transactionTypePayment,
			Test:            m.TestMode,
			Settings: URLSettings{
				ReturnURL:       successURL,
				SuccessURL:      successURL,
				DeclineURL:      failedURL,
				FailURL:         failedURL,
				CancelURL:       failedURL,
				NotificationURL: notifyURL,
				Language:        checkoutLanguage,
			},
			Order: OrderSnapshot{
				Currency:    o.Currency,
				Amount:      MinorUnits(p.Amount),
				Description: fmt.Sprintf("%s %d", m.Description, o.ID),
				TrackingID:  fmt.Sprintf("%d-%s", o.ID, p.Hash),
			},
			Customer: Customer{
				Email: o.Email,
				Phone: o.Phone,
			},
		},
	}, nil
}
