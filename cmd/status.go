package cmd

import (
	"time"

	"github.com/pterm/pterm"
)

// statusRefreshInterval is how often the status line is redrawn.
const statusRefreshInterval = 200 * time.Millisecond

// statusPrinter displays the status line.
type statusPrinter interface {
	UpdateText(text string)
	Stop() error
}

// Status is the status indicator: a background worker which displays the
// latest message it was sent.  It never blocks the compiler: messages sent
// while the worker is busy are dropped.  A disabled status ignores every
// message.
type Status struct {
	messages chan string

	// Closed when the worker exits.
	done chan struct{}
}

// StartStatus starts the status indicator.  If it is disabled or the spinner
// cannot be started, the returned status displays nothing.
func StartStatus(enabled bool) *Status {
	if !enabled {
		return &Status{}
	}

	spinner, err := pterm.DefaultSpinner.WithRemoveWhenDone(true).Start("Starting")
	if err != nil {
		return &Status{}
	}

	return newStatus(spinner, statusRefreshInterval)
}

// newStatus starts the worker of a status indicator.
func newStatus(printer statusPrinter, interval time.Duration) *Status {
	s := &Status{
		messages: make(chan string, 16),
		done:     make(chan struct{}),
	}

	go s.run(printer, interval)
	return s
}

// run is the status worker: it redraws the status line with the latest
// message every interval until the message channel is closed.
func (s *Status) run(printer statusPrinter, interval time.Duration) {
	defer close(s.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var latest string
	changed := false

	for {
		select {
		case msg, ok := <-s.messages:
			if !ok {
				if changed {
					printer.UpdateText(latest)
				}

				printer.Stop()
				return
			}

			latest, changed = msg, true
		case <-ticker.C:
			if changed {
				printer.UpdateText(latest)
				changed = false
			}
		}
	}
}

// Send sends a message to the status indicator.  It never blocks.
func (s *Status) Send(msg string) {
	if s.messages == nil {
		return
	}

	select {
	case s.messages <- msg:
	default:
	}
}

// Stop stops the status indicator and waits for it to clear the status line.
func (s *Status) Stop() {
	if s.messages == nil {
		return
	}

	close(s.messages)
	<-s.done
	s.messages = nil
}
