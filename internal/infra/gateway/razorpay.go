package gateway

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"restobook/internal/pkg/config"
	"restobook/internal/pkg/errs"
	"restobook/internal/usecase/commands"
)

var (
	errOrderRequest  = errs.New("gateway order request failed")
	errOrderResponse = errs.New("gateway order response malformed")
)

// RazorpayGateway talks to the Razorpay Orders API and verifies its
// confirmation signatures.
type RazorpayGateway struct {
	baseURL string
	keyID   string
	secret  string
	client  *http.Client
}

func NewRazorpayGateway(cfg config.GatewayConfig) commands.PaymentGateway {
	return &RazorpayGateway{
		baseURL: cfg.BaseURL,
		keyID:   cfg.KeyID,
		secret:  cfg.Secret,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

type createOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type createOrderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

func (g *RazorpayGateway) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*commands.GatewayOrder, error) {
	body, err := json.Marshal(createOrderRequest{
		Amount:   amountMinor,
		Currency: currency,
		Receipt:  receipt,
	})
	if err != nil {
		return nil, errs.Mark(err, errOrderRequest)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, errs.Mark(err, errOrderRequest)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(g.keyID, g.secret)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, errs.Mark(err, errOrderRequest)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, errs.Mark(fmt.Errorf("gateway returned status %d", resp.StatusCode), errOrderRequest)
	}

	var parsed createOrderResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&parsed); err != nil {
		return nil, errs.Mark(err, errOrderResponse)
	}
	if parsed.ID == "" {
		return nil, errOrderResponse
	}

	return &commands.GatewayOrder{
		Ref:         parsed.ID,
		AmountMinor: parsed.Amount,
		Currency:    parsed.Currency,
	}, nil
}

// VerifySignature recomputes the HMAC-SHA256 of "orderRef|paymentRef" with the
// gateway secret and compares it to the presented signature in constant time.
func (g *RazorpayGateway) VerifySignature(orderRef, paymentRef, signature string) bool {
	mac := hmac.New(sha256.New, []byte(g.secret))
	mac.Write([]byte(orderRef + "|" + paymentRef))
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

func (g *RazorpayGateway) KeyID() string {
	return g.keyID
}
