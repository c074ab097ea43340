package notifier

import (
	"context"
	"strings"

	"DormPower/internal/model"

	"github.com/sirupsen/logrus"
)

// Channel delivers one message to one destination.
type Channel interface {
	Name() string
	Target() string
	Send(ctx context.Context, title, content string) error
}

// Observer is told about every delivery attempt.
type Observer interface {
	ObserveNotification(channel string, err error)
}

// Result counts delivery attempts of one Dispatch call.
type Result struct {
	Sent   int
	Failed int
}

// Dispatcher sends a report through the gated channels when it carries the
// warning label, then through the always-on channels. Each channel gets a
// single attempt; a failure is logged and does not stop the others.
type Dispatcher struct {
	Gated    []Channel
	Always   []Channel
	Observer Observer
	Log      logrus.FieldLogger
}

// NewDispatcher wires ServerChan keys as gated channels and Telegram as always-on.
func NewDispatcher(serverChan []*ServerChanNotifier, telegram Channel, obs Observer, log logrus.FieldLogger) *Dispatcher {
	d := &Dispatcher{Observer: obs, Log: log}
	for _, sc := range serverChan {
		d.Gated = append(d.Gated, sc)
	}
	if telegram != nil {
		d.Always = append(d.Always, telegram)
	}
	return d
}

// Dispatch delivers title and content.
func (d *Dispatcher) Dispatch(ctx context.Context, title, content string) Result {
	var res Result
	d.Log.Info("sending notifications")

	if strings.Contains(content, model.WarningLabel) {
		d.Log.WithField("channels", len(d.Gated)).Info("balance below threshold, sending alert channels")
		for _, ch := range d.Gated {
			d.send(ctx, ch, title, content, &res)
		}
	}
	for _, ch := range d.Always {
		d.send(ctx, ch, title, content, &res)
	}
	return res
}

func (d *Dispatcher) send(ctx context.Context, ch Channel, title, content string, res *Result) {
	log := d.Log.WithFields(logrus.Fields{"channel": ch.Name(), "target": ch.Target()})
	err := ch.Send(ctx, title, content)
	if err != nil {
		res.Failed++
		log.WithError(err).Error("notification failed")
	} else {
		res.Sent++
		log.Info("notification sent")
	}
	if d.Observer != nil {
		d.Observer.ObserveNotification(ch.Name(), err)
	}
}
