package notify

import "github.com/rs/zerolog"

// Dispatcher sends mail off the request path. Sends happen after the
// caller's transaction has committed; a failed send is logged and
// swallowed, it never turns a committed mutation into an error.
type Dispatcher struct {
	mailer *Mailer
	log    zerolog.Logger
	queue  chan Email
}

func NewDispatcher(mailer *Mailer, log zerolog.Logger) *Dispatcher {
	d := &Dispatcher{
		mailer: mailer,
		log:    log,
		queue:  make(chan Email, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for email := range d.queue {
		if err := d.mailer.Send(email); err != nil {
			d.log.Error().Err(err).Str("to", email.To).Msg("notification send failed")
			continue
		}
		d.log.Info().Str("to", email.To).Str("subject", email.Subject).Msg("notification sent")
	}
}

func (d *Dispatcher) Dispatch(email Email) {
	select {
	case d.queue <- email:
	default:
		d.log.Warn().Str("to", email.To).Msg("notification queue full, dropping email")
	}
}
