package collector

import (
	"context"
	"fmt"

	"DormPower/internal/model"

	"github.com/sirupsen/logrus"
)

// MockProvider returns fixed balances for development and testing.
type MockProvider struct {
	Balances map[string]float64
	LoginErr error
	Calls    []string
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) Login(_ context.Context, account, _ string) (*Session, error) {
	m.Calls = append(m.Calls, "login:"+account)
	if m.LoginErr != nil {
		return nil, m.LoginErr
	}
	return &Session{Token: "mock"}, nil
}

func (m *MockProvider) RemainingPower(_ context.Context, _ *Session, room string) (float64, error) {
	m.Calls = append(m.Calls, "power:"+room)
	v, ok := m.Balances[room]
	if !ok {
		return 0, fmt.Errorf("mock: unknown room %q", room)
	}
	return v, nil
}

// Credentials identify the account and the two metered rooms.
type Credentials struct {
	Account         string
	Password        string
	LightingRoom    string
	AirConditioning string
}

// Collector logs in and fetches both room balances.
type Collector struct {
	Provider Provider
	Creds    Credentials
	Log      logrus.FieldLogger
}

// NewCollector creates a new Collector.
func NewCollector(provider Provider, creds Credentials, log logrus.FieldLogger) *Collector {
	return &Collector{Provider: provider, Creds: creds, Log: log}
}

// Collect authenticates and returns the current balances. Any failure is returned
// unchanged in meaning; there is no fallback source.
func (c *Collector) Collect(ctx context.Context) (model.Balances, error) {
	log := c.Log.WithField("provider", c.Provider.Name())

	log.Info("logging in to balance provider")
	sess, err := c.Provider.Login(ctx, c.Creds.Account, c.Creds.Password)
	if err != nil {
		return model.Balances{}, fmt.Errorf("authenticate: %w", err)
	}
	log.Info("login succeeded")

	lt, err := c.Provider.RemainingPower(ctx, sess, c.Creds.LightingRoom)
	if err != nil {
		return model.Balances{}, fmt.Errorf("fetch lighting balance: %w", err)
	}
	ac, err := c.Provider.RemainingPower(ctx, sess, c.Creds.AirConditioning)
	if err != nil {
		return model.Balances{}, fmt.Errorf("fetch air-conditioning balance: %w", err)
	}

	b := model.Balances{Lighting: lt, AirConditioning: ac}
	log.WithFields(logrus.Fields{"lighting": lt, "air_conditioning": ac}).Info("balances fetched")
	return b, nil
}
