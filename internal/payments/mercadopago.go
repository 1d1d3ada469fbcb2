package payments

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var ErrMissingAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
var ErrGatewayNotConfigured = errors.New("mercado pago gateway not configured")

// MercadoPagoGateway charges card payments through the Mercado Pago SDK.
// With MERCADOPAGO_MOCK enabled it approves every charge locally, which keeps
// development and CI off the real API.
type MercadoPagoGateway struct {
	client   payment.Client
	mockMode bool
}

func NewMercadoPagoGateway(accessToken string) (*MercadoPagoGateway, error) {
	if isMockEnabled() {
		logrus.Info("payment gateway running in mock mode")
		return &MercadoPagoGateway{mockMode: true}, nil
	}

	if accessToken == "" {
		return nil, ErrMissingAccessToken
	}

	cfg, err := config.New(accessToken)
	if err != nil {
		logrus.WithError(err).Error("failed creating mercado pago sdk config")
		return nil, err
	}

	return &MercadoPagoGateway{client: payment.NewClient(cfg)}, nil
}

// Charge submits a card payment and returns the provider's payment reference.
func (g *MercadoPagoGateway) Charge(ctx context.Context, amount decimal.Decimal, description, externalRef string) (string, error) {
	if g != nil && g.mockMode {
		ref := "mock-" + strconv.FormatInt(time.Now().UTC().UnixNano(), 10)
		logrus.WithFields(logrus.Fields{
			"amount":       amount.StringFixed(2),
			"external_ref": externalRef,
			"provider_ref": ref,
		}).Info("mock payment approved")
		return ref, nil
	}

	if g == nil || g.client == nil {
		return "", ErrGatewayNotConfigured
	}

	value, _ := amount.Float64()
	req := payment.Request{
		TransactionAmount: value,
		Description:       description,
		ExternalReference: externalRef,
	}

	resp, err := g.client.Create(ctx, req)
	if err != nil {
		logrus.WithError(err).Error("mercado pago create payment failed")
		return "", err
	}
	if resp.Status != "approved" {
		return "", fmt.Errorf("payment not approved: status %s", resp.Status)
	}

	logrus.WithFields(logrus.Fields{
		"provider_ref": resp.ID,
		"status":       resp.Status,
	}).Info("payment approved")

	return fmt.Sprintf("%d", resp.ID), nil
}

func isMockEnabled() bool {
	for _, key := range []string{"PAYMENT_GATEWAY_MOCK", "MERCADOPAGO_MOCK"} {
		v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
		switch v {
		case "1", "true", "yes", "on", "mock":
			return true
		}
	}
	return false
}
