package webhook

import (
	"fmt"
	"io"
	"net/http"

	"bepaid-gateway/internal/payment"
)

// Handler is the HTTP endpoint bePaid posts payment notifications to.
type Handler struct {
	interpreter *payment.Interpreter
}

func NewHandler(i *payment.Interpreter) *Handler {
	return &Handler{interpreter: i}
}

// Notify authenticates the notification, hands it to the interpreter and
// maps the outcome to a status code. bePaid retries until it sees a 2xx, so
// non-actionable events are acknowledged while correlation and settlement
// failures stay retryable.
func (h *Handler) Notify(w http.ResponseWriter, r *http.Request) {
	user, pass, ok := r.BasicAuth()
	req := payment.CallbackRequest{
		Username: user,
		Password: pass,
		HasAuth:  ok,
		Query:    r.URL.Query(),
	}

	if !h.interpreter.Authenticate(r.Context(), req) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()
	req.Body = body

	switch h.interpreter.Interpret(r.Context(), req) {
	case payment.Settled, payment.NotActionable:
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "ok")
	default:
		http.Error(w, "payment process failed", http.StatusBadRequest)
	}
}
