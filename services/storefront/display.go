package storefront

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/MarcGrol/storefront/lib/mytime"
	"github.com/MarcGrol/storefront/services/cart"
)

const (
	notificationDuration = 2 * time.Second
	pulseDuration        = 600 * time.Millisecond
)

type CartLine struct {
	Index     int
	Name      string
	Price     string
	Image     string
	Quantity  int
	LineTotal string
}

type CartView struct {
	Lines      []CartLine
	BadgeCount int
	Total      string
	Empty      bool
}

// Display keeps the rendered state of one cart: the line items, the badge, the
// transient notification and the badge pulse.
type Display struct {
	sync.Mutex
	view     CartView
	notifier *Notifier
	pulse    *Pulse
}

func NewDisplay(scheduler mytime.Scheduler) *Display {
	return &Display{
		view:     CartView{Lines: []CartLine{}, Total: "0.00", Empty: true},
		notifier: NewNotifier(scheduler, notificationDuration),
		pulse:    NewPulse(scheduler, pulseDuration),
	}
}

// Register subscribes the display to every mutation of the store.
func (d *Display) Register(store *cart.Store) {
	store.OnAny(func(c context.Context, event cart.Event) {
		d.Refresh(store)
	})
	store.On(cart.ItemAdded, func(c context.Context, event cart.Event) {
		d.notifier.Notify(SeveritySuccess, event.Entry.Name+" added to cart!")
		d.pulse.Trigger()
	})
	store.On(cart.ItemRemoved, func(c context.Context, event cart.Event) {
		d.notifier.Notify(SeverityInfo, "Item removed from cart")
	})
	store.On(cart.Cleared, func(c context.Context, event cart.Event) {
		d.notifier.Notify(SeverityInfo, "Cart cleared")
	})
}

func (d *Display) Refresh(store *cart.Store) {
	entries := store.Entries()

	lines := make([]CartLine, 0, len(entries))
	currency := ""
	for i, e := range entries {
		if currency == "" {
			currency = currencyPrefix(e.Price)
		}
		lines = append(lines, CartLine{
			Index:     i,
			Name:      e.Name,
			Price:     e.Price,
			Image:     e.Image,
			Quantity:  e.Quantity,
			LineTotal: formatAmount(currencyPrefix(e.Price), e.LineTotal()),
		})
	}

	d.Lock()
	defer d.Unlock()

	d.view = CartView{
		Lines:      lines,
		BadgeCount: store.TotalItemCount(),
		Total:      formatAmount(currency, store.TotalPrice()),
		Empty:      len(lines) == 0,
	}
}

func (d *Display) View() CartView {
	d.Lock()
	defer d.Unlock()

	view := d.view
	view.Lines = append([]CartLine{}, d.view.Lines...)
	return view
}

func (d *Display) Warn(message string) {
	d.notifier.Notify(SeverityWarning, message)
}

func (d *Display) Notification() (Notification, bool) {
	return d.notifier.Current()
}

func (d *Display) BadgePulsing() bool {
	return d.pulse.Active()
}

// currencyPrefix returns the symbol in front of a display price, "R" for "R1999".
func currencyPrefix(price string) string {
	end := strings.IndexFunc(price, func(r rune) bool {
		return unicode.IsDigit(r) || r == '.'
	})
	if end < 0 {
		return ""
	}
	return strings.TrimSpace(price[:end])
}

func formatAmount(currency string, amount decimal.Decimal) string {
	return currency + amount.StringFixed(2)
}
