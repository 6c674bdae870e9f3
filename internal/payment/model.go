package payment

// Merchant holds the bePaid settings of one shop, populated from
// configuration at startup.
type Merchant struct {
	ShopID    string
	SecretKey string

	// TestMode is passed to bePaid as-is; it is never inferred from the
	// environment.
	TestMode bool

	// Debug enables recording of outbound request payloads and raw gateway
	// responses when a checkout call fails.
	Debug bool

	// SiteURL is the base the callback and redirect URLs are built from.
	SiteURL string

	// Description prefixes the human-readable order description. Diagnostic
	// only, never used for correlation.
	Description string
}

// OrderInfo is the slice of an order the gateway needs.
type OrderInfo struct {
	ID       uint
	Currency string
	Email    string
	Phone    string
}

// PaymentInfo is the tracked payment record for one checkout attempt. Hash
// is the opaque correlation key generated by the order processor; Amount is
// in major units.
type PaymentInfo struct {
	ID     uint
	Hash   string
	Amount float64
}

// CheckoutRequest is the bePaid checkout-session schema. Built once per
// checkout attempt and never mutated afterwards.
type CheckoutRequest struct {
	Checkout Checkout `json:"checkout"`
}

type Checkout struct {
	TransactionType string        `json:"transaction_type"`
	Test            bool          `json:"test"`
	Settings        URLSettings   `json:"settings"`
	Order           OrderSnapshot `json:"order"`
	Customer        Customer      `json:"customer"`
}

type URLSettings struct {
	ReturnURL       string `json:"return_url"`
	SuccessURL      string `json:"success_url"`
	DeclineURL      string `json:"decline_url"`
	FailURL         string `json:"fail_url"`
	CancelURL       string `json:"cancel_url"`
	NotificationURL string `json:"notification_url"`
	Language        string `json:"language"`
}

type OrderSnapshot struct {
	Currency    string `json:"currency"`
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
	TrackingID  string `json:"tracking_id"`
}

type Customer struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// checkoutResponse is the part of the gateway's answer this integration
// consumes: either a redirect URL is present or the call failed.
type checkoutResponse struct {
	Checkout struct {
		Token       string `json:"token"`
		RedirectURL string `json:"redirect_url"`
	} `json:"checkout"`
}

// Notification is the consumed part of a bePaid webhook body. Everything
// else in the payload is ignored.
type Notification struct {
	Transaction *Transaction `json:"transaction"`
}

type Transaction struct {
	UID        string `json:"uid"`
	Type       string `json:"type"`
	Status     string `json:"status"`
	TrackingID string `json:"tracking_id"`
	Amount     int64  `json:"amount"`
	Currency   string `json:"currency"`
}
