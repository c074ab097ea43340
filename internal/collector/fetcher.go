package collector

import "context"

// Session is an authenticated eCard session.
type Session struct {
	Token string
}

// Provider defines the balance provider contract.
type Provider interface {
	Login(ctx context.Context, account, password string) (*Session, error)
	RemainingPower(ctx context.Context, sess *Session, room string) (float64, error)
	Name() string
}
