package notifier

import (
	"context"
	"errors"
	"testing"

	"DormPower/internal/model"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

type fakeChannel struct {
	name  string
	err   error
	calls *[]string
}

func (f *fakeChannel) Name() string   { return f.name }
func (f *fakeChannel) Target() string { return "t" }

func (f *fakeChannel) Send(_ context.Context, title, _ string) error {
	*f.calls = append(*f.calls, f.name+":"+title)
	return f.err
}

type recordingObserver struct {
	seen map[string][]error
}

func (o *recordingObserver) ObserveNotification(channel string, err error) {
	if o.seen == nil {
		o.seen = map[string][]error{}
	}
	o.seen[channel] = append(o.seen[channel], err)
}

func TestDispatch_WarningReachesAllChannels(t *testing.T) {
	logger, _ := test.NewNullLogger()
	var calls []string
	obs := &recordingObserver{}
	d := &Dispatcher{
		Gated:    []Channel{&fakeChannel{name: "sc1", calls: &calls}, &fakeChannel{name: "sc2", calls: &calls}},
		Always:   []Channel{&fakeChannel{name: "tg", calls: &calls}},
		Observer: obs,
		Log:      logger,
	}

	title, content := BuildNotification(model.Balances{Lighting: 120, AirConditioning: 3})
	res := d.Dispatch(context.Background(), title, content)

	assert.Equal(t, Result{Sent: 3}, res)
	assert.Equal(t, []string{"sc1:" + WarningTitle, "sc2:" + WarningTitle, "tg:" + WarningTitle}, calls)
	assert.Len(t, obs.seen["tg"], 1)
}

func TestDispatch_RoutineSkipsGatedChannels(t *testing.T) {
	logger, _ := test.NewNullLogger()
	var calls []string
	d := &Dispatcher{
		Gated:  []Channel{&fakeChannel{name: "sc1", calls: &calls}},
		Always: []Channel{&fakeChannel{name: "tg", calls: &calls}},
		Log:    logger,
	}

	title, content := BuildNotification(model.Balances{Lighting: 120, AirConditioning: 50})
	res := d.Dispatch(context.Background(), title, content)

	assert.Equal(t, Result{Sent: 1}, res)
	assert.Equal(t, []string{"tg:" + RoutineTitle}, calls)
}

func TestDispatch_FailureDoesNotStopOtherKeys(t *testing.T) {
	logger, hook := test.NewNullLogger()
	var calls []string
	d := &Dispatcher{
		Gated: []Channel{
			&fakeChannel{name: "sc1", err: errors.New("boom"), calls: &calls},
			&fakeChannel{name: "sc2", calls: &calls},
		},
		Always: []Channel{&fakeChannel{name: "tg", err: errors.New("down"), calls: &calls}},
		Log:    logger,
	}

	res := d.Dispatch(context.Background(), WarningTitle, "x "+model.WarningLabel)

	assert.Equal(t, Result{Sent: 1, Failed: 2}, res)
	assert.Len(t, calls, 3)

	var errorsLogged int
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.ErrorLevel {
			errorsLogged++
		}
	}
	assert.Equal(t, 2, errorsLogged)
}

func TestNewDispatcher(t *testing.T) {
	logger, _ := test.NewNullLogger()
	sc := NewServerChanNotifiers([]string{"k1", "k2"}, "", "")
	tg := NewTelegramNotifier("t", "c", "", "")

	d := NewDispatcher(sc, tg, nil, logger)
	assert.Len(t, d.Gated, 2)
	assert.Len(t, d.Always, 1)
}
