package storefront

import (
	"sync"
	"time"

	"github.com/MarcGrol/storefront/lib/mytime"
)

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

type Notification struct {
	Severity Severity
	Message  string
}

// Notifier holds at most one visible notification. A new notification replaces the
// visible one, and a dismiss timer only clears the notification it was scheduled for.
type Notifier struct {
	sync.Mutex
	scheduler  mytime.Scheduler
	duration   time.Duration
	current    *Notification
	generation int
}

func NewNotifier(scheduler mytime.Scheduler, duration time.Duration) *Notifier {
	return &Notifier{
		scheduler: scheduler,
		duration:  duration,
	}
}

func (n *Notifier) Notify(severity Severity, message string) {
	n.Lock()
	n.generation++
	generation := n.generation
	n.current = &Notification{Severity: severity, Message: message}
	n.Unlock()

	n.scheduler.AfterFunc(n.duration, func() {
		n.Lock()
		defer n.Unlock()

		if n.generation == generation {
			n.current = nil
		}
	})
}

func (n *Notifier) Current() (Notification, bool) {
	n.Lock()
	defer n.Unlock()

	if n.current == nil {
		return Notification{}, false
	}
	return *n.current, true
}

// Pulse is a flag that switches itself off a while after the last Trigger.
type Pulse struct {
	sync.Mutex
	scheduler  mytime.Scheduler
	duration   time.Duration
	active     bool
	generation int
}

func NewPulse(scheduler mytime.Scheduler, duration time.Duration) *Pulse {
	return &Pulse{
		scheduler: scheduler,
		duration:  duration,
	}
}

func (p *Pulse) Trigger() {
	p.Lock()
	p.generation++
	generation := p.generation
	p.active = true
	p.Unlock()

	p.scheduler.AfterFunc(p.duration, func() {
		p.Lock()
		defer p.Unlock()

		if p.generation == generation {
			p.active = false
		}
	})
}

func (p *Pulse) Active() bool {
	p.Lock()
	defer p.Unlock()

	return p.active
}
