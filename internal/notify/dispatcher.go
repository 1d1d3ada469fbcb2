package notify

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Dispatcher sends messages off the request path, after the triggering
// transaction has committed. Delivery is best-effort: failures are logged and
// never roll back or fail the transition that queued them.
type Dispatcher struct {
	senders map[string]Notifier
	queue   chan Message
	done    chan struct{}
}

func NewDispatcher(senders map[string]Notifier) *Dispatcher {
	d := &Dispatcher{
		senders: senders,
		queue:   make(chan Message, 100),
		done:    make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for msg := range d.queue {
		sender, ok := d.senders[msg.Channel]
		if !ok {
			logrus.WithField("channel", msg.Channel).Warn("no sender for channel, dropping message")
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		if err := sender.Send(ctx, msg); err != nil {
			logrus.WithError(err).
				WithFields(logrus.Fields{"channel": msg.Channel, "recipient": msg.Recipient}).
				Warn("notification delivery failed")
		}
		cancel()
	}
}

func (d *Dispatcher) Dispatch(msg Message) {
	select {
	case d.queue <- msg:
	default:
		logrus.WithField("channel", msg.Channel).Warn("notification queue full, dropping message")
	}
}

// Close stops intake and waits for in-flight sends.
func (d *Dispatcher) Close() {
	close(d.queue)
	<-d.done
}
