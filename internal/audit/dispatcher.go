package audit

import "github.com/sirupsen/logrus"

// Dispatcher decouples audit writes from the request path: entries go through
// a buffered channel to a single worker. A full queue drops the entry rather
// than block or fail the API.
type Dispatcher struct {
	sink  Sink
	queue chan Entry
	done  chan struct{}
}

func NewDispatcher(sink Sink) *Dispatcher {
	d := &Dispatcher{
		sink:  sink,
		queue: make(chan Entry, 100),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for e := range d.queue {
		if err := d.sink.Log(e); err != nil {
			logrus.WithError(err).WithField("action", e.Action).Warn("audit write failed")
		}
	}
}

func (d *Dispatcher) Dispatch(e Entry) {
	select {
	case d.queue <- e:
	default:
		logrus.WithField("action", e.Action).Warn("audit queue full, dropping entry")
	}
}

// Close stops intake and waits for queued entries to be written.
func (d *Dispatcher) Close() {
	close(d.queue)
	<-d.done
}
