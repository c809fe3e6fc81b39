package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

// preferenceCreator is the slice of the Mercado Pago client we use.
type preferenceCreator interface {
	Create(ctx context.Context, request preference.Request) (*preference.Response, error)
}

type MercadoPago struct {
	client          preferenceCreator
	notificationURL string
	breaker         *gobreaker.CircuitBreaker[*preference.Response]
	log             *zap.Logger
}

func NewMercadoPago(accessToken, notificationURL string, log *zap.Logger) (*MercadoPago, error) {
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}
	return newMercadoPago(preference.NewClient(cfg), notificationURL, log), nil
}

func newMercadoPago(client preferenceCreator, notificationURL string, log *zap.Logger) *MercadoPago {
	log = log.With(zap.String("component", "mercadopago"))

	breaker := gobreaker.NewCircuitBreaker[*preference.Response](gobreaker.Settings{
		Name:        "mercadopago",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &MercadoPago{
		client:          client,
		notificationURL: notificationURL,
		breaker:         breaker,
		log:             log,
	}
}

func (m *MercadoPago) Name() string { return "mercadopago" }

func (m *MercadoPago) CreateCheckout(ctx context.Context, req CheckoutRequest) (Checkout, error) {
	request := preference.Request{
		Items: []preference.ItemRequest{{
			Title:      req.Title,
			Quantity:   1,
			UnitPrice:  req.Amount,
			CurrencyID: req.Currency,
		}},
		ExternalReference: req.Reference,
		NotificationURL:   m.notificationURL,
	}

	resp, err := m.breaker.Execute(func() (*preference.Response, error) {
		return m.client.Create(ctx, request)
	})
	if err != nil {
		return Checkout{}, fmt.Errorf("mercadopago preference: %w", err)
	}

	return Checkout{ProviderRef: resp.ID, URL: resp.InitPoint}, nil
}
