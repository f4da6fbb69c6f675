package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Checkout is the gateway's answer to an initialized transaction.
type Checkout struct {
	AuthorizationURL string
	AccessCode       string
	Reference        string
}

// Verification is the settled state of a transaction reference.
type Verification struct {
	Reference string
	Amount    int64
	Success   bool
}

// Client talks to the payment gateway. Only the two calls the enrollment
// flow needs are modeled; payment mechanics stay on the gateway's side.
type Client interface {
	Initialize(ctx context.Context, email string, amount int64) (*Checkout, error)
	Verify(ctx context.Context, reference string) (*Verification, error)
}

// PaystackClient implements Client against the Paystack REST API.
type PaystackClient struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

func NewPaystackClient(baseURL, secretKey string) *PaystackClient {
	return &PaystackClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		secretKey:  secretKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type paystackEnvelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *PaystackClient) Initialize(ctx context.Context, email string, amount int64) (*Checkout, error) {
	payload := fmt.Sprintf(`{"email":%q,"amount":%d}`, email, amount)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/transaction/initialize", strings.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")

	env, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var data struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, err
	}

	return &Checkout{
		AuthorizationURL: data.AuthorizationURL,
		AccessCode:       data.AccessCode,
		Reference:        data.Reference,
	}, nil
}

func (c *PaystackClient) Verify(ctx context.Context, reference string) (*Verification, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/transaction/verify/"+reference, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	env, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var data struct {
		Status    string `json:"status"`
		Amount    int64  `json:"amount"`
		Reference string `json:"reference"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, err
	}

	return &Verification{
		Reference: data.Reference,
		Amount:    data.Amount,
		Success:   data.Status == "success",
	}, nil
}

func (c *PaystackClient) do(req *http.Request) (*paystackEnvelope, error) {
	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	var env paystackEnvelope
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
		return nil, err
	}
	if res.StatusCode >= http.StatusBadRequest || !env.Status {
		if env.Message == "" {
			env.Message = res.Status
		}
		return nil, errors.New("paystack: " + env.Message)
	}
	return &env, nil
}
