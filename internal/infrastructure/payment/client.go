package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPPaymentClient talks to the payment-processor collaborator over REST.
// Both calls are bounded by the configured timeout; a timeout leaves local
// state untouched so the operation can be retried under the same
// reference/key.
type HTTPPaymentClient struct {
	Address string
	client  *http.Client
}

func NewHTTPPaymentClient(address string, timeout time.Duration) *HTTPPaymentClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPPaymentClient{
		Address: address,
		client:  &http.Client{Timeout: timeout},
	}
}

type captureRequest struct {
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Reference string `json:"reference"`
}

type transferRequest struct {
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	Destination    string `json:"destination"`
	IdempotencyKey string `json:"idempotency_key"`
}

type transferResponse struct {
	TransferReference string `json:"transfer_reference"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (c *HTTPPaymentClient) Capture(ctx context.Context, amount int64, currency, reference string) error {
	body, err := json.Marshal(captureRequest{
		Amount:    amount,
		Currency:  currency,
		Reference: reference,
	})
	if err != nil {
		return err
	}

	_, err = c.post(ctx, fmt.Sprintf("%s/payments/capture", c.Address), body)
	return err
}

func (c *HTTPPaymentClient) Transfer(ctx context.Context, amount int64, currency, destination, idempotencyKey string) (string, error) {
	body, err := json.Marshal(transferRequest{
		Amount:         amount,
		Currency:       currency,
		Destination:    destination,
		IdempotencyKey: idempotencyKey,
	})
	if err != nil {
		return "", err
	}

	respBody, err := c.post(ctx, fmt.Sprintf("%s/payments/transfer", c.Address), body)
	if err != nil {
		return "", err
	}

	var resp transferResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", err
	}
	return resp.TransferReference, nil
}

func (c *HTTPPaymentClient) post(ctx context.Context, url string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	response, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()
	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return responseBodyBytes, nil
	}

	var errResp errorResponse
	if err := json.Unmarshal(responseBodyBytes, &errResp); err != nil {
		return nil, fmt.Errorf("payment service returned status %d", response.StatusCode)
	}
	return nil, errors.New(errResp.Error)
}
