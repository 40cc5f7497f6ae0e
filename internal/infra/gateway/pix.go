package gateway

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"rifa-hub/internal/domain/transaction"
	"rifa-hub/internal/pkg/config"
	"rifa-hub/internal/pkg/errs"
	"rifa-hub/internal/usecase/shared"
)

// Client talks to the PSP's order API. One client serves every credential:
// the account is chosen per call, because organizer-destined charges use the
// organizer's own key.
type Client struct {
	baseURL    string
	httpClient *http.Client
	pixExpiry  int
}

func NewClient(cfg config.GatewayConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		pixExpiry: cfg.PixExpirationSeconds,
	}
}

type chargeRequest struct {
	Code     string          `json:"code"`
	Items    []chargeItem    `json:"items"`
	Customer chargeCustomer  `json:"customer"`
	Payments []chargePayment `json:"payments"`
}

type chargeItem struct {
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
}

type chargeCustomer struct {
	Name   string        `json:"name"`
	Email  string        `json:"email,omitempty"`
	Phones *chargePhones `json:"phones,omitempty"`
}

type chargePhones struct {
	MobilePhone chargePhone `json:"mobile_phone"`
}

type chargePhone struct {
	CountryCode string `json:"country_code"`
	AreaCode    string `json:"area_code"`
	Number      string `json:"number"`
}

type chargePayment struct {
	PaymentMethod string    `json:"payment_method"`
	Pix           chargePix `json:"pix"`
}

type chargePix struct {
	ExpiresIn int `json:"expires_in"`
}

type chargeResponse struct {
	ID      string `json:"id"`
	Status  string `json:"status"`
	Charges []struct {
		ID              string `json:"id"`
		LastTransaction struct {
			QRCode    string `json:"qr_code"`
			QRCodeURL string `json:"qr_code_url"`
		} `json:"last_transaction"`
	} `json:"charges"`
	Message string `json:"message"`
}

func (c *Client) CreateCharge(ctx context.Context, cred shared.GatewayCredential, in shared.CreateChargeInput) (*transaction.PaymentArtifact, error) {
	if in.ExpiresInSeconds <= 0 {
		in.ExpiresInSeconds = c.pixExpiry
	}

	payload := chargeRequest{
		Code: in.ExternalReference,
		Items: []chargeItem{{
			Amount:      in.AmountCents,
			Description: in.Description,
			Quantity:    1,
		}},
		Customer: chargeCustomer{
			Name:   in.BuyerName,
			Phones: phonesFromWhatsApp(in.BuyerWhatsApp),
		},
		Payments: []chargePayment{{
			PaymentMethod: "pix",
			Pix:           chargePix{ExpiresIn: in.ExpiresInSeconds},
		}},
	}
	if in.BuyerEmail != nil {
		payload.Customer.Email = *in.BuyerEmail
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errs.Wrap(err, "failed to encode charge request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, errs.Wrap(err, "failed to build charge request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", basicAuth(cred.APIKey))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errs.Wrap(err, "charge request failed")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, errs.Wrap(err, "failed to read charge response")
	}

	var parsed chargeResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, errs.Wrap(err, "failed to decode charge response")
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, errs.New(fmt.Sprintf("gateway rejected charge: status=%d message=%s", resp.StatusCode, parsed.Message))
	}
	if len(parsed.Charges) == 0 || parsed.Charges[0].LastTransaction.QRCode == "" {
		return nil, errs.New("gateway response missing pix data")
	}

	return &transaction.PaymentArtifact{
		ExternalID: parsed.ID,
		QRCode:     parsed.Charges[0].LastTransaction.QRCode,
		QRCodeURL:  parsed.Charges[0].LastTransaction.QRCodeURL,
	}, nil
}

func basicAuth(apiKey string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(apiKey+":"))
}

// phonesFromWhatsApp splits a normalized BR number (digits only, optional 55
// country prefix) into the gateway's phone fields.
func phonesFromWhatsApp(digits string) *chargePhones {
	if len(digits) > 11 && digits[:2] == "55" {
		digits = digits[2:]
	}
	if len(digits) < 10 {
		return nil
	}
	return &chargePhones{
		MobilePhone: chargePhone{
			CountryCode: "55",
			AreaCode:    digits[:2],
			Number:      digits[2:],
		},
	}
}
