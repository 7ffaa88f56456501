package cart

import (
	"context"
	"errors"
	"strings"

	"github.com/MarcGrol/storefront/lib/myerrors"
	"github.com/MarcGrol/storefront/lib/mylog"
)

var ErrReentrantMutation = errors.New("cart mutated from within one of its event handlers")

func (s *Store) rejectReentrant(c context.Context, operation string) bool {
	if s.dispatching {
		s.logger.Log(c, s.key, mylog.SeverityError, "Rejected %s on cart %s: %s", operation, s.key, ErrReentrantMutation)
		return true
	}
	return false
}

func (s *Store) inRange(index int) bool {
	return index >= 0 && index < len(s.entries)
}

// AddItem increments the quantity of the entry with the same name and price, or appends
// a new entry with quantity 1. A missing name or price is rejected with an
// invalid-input error and leaves the cart untouched.
func (s *Store) AddItem(c context.Context, name, price, image string) (Entry, error) {
	if s.rejectReentrant(c, "add") {
		return Entry{}, myerrors.NewConflictError(ErrReentrantMutation)
	}
	if strings.TrimSpace(name) == "" {
		return Entry{}, myerrors.NewInvalidInputErrorf("missing product name")
	}
	if strings.TrimSpace(price) == "" {
		return Entry{}, myerrors.NewInvalidInputErrorf("missing price for product %s", name)
	}

	index := -1
	for i, e := range s.entries {
		if e.sameItem(name, price) {
			index = i
			break
		}
	}

	if index >= 0 {
		if s.entries[index].Quantity >= MaxQuantity {
			return Entry{}, myerrors.NewInvalidInputErrorf("maximum quantity of %d reached for product %s", MaxQuantity, name)
		}
		s.entries[index].Quantity++
	} else {
		s.entries = append(s.entries, Entry{
			Name:     name,
			Price:    price,
			Image:    image,
			Quantity: 1,
			ID:       s.uuider.Create(),
		})
		index = len(s.entries) - 1
	}
	entry := s.entries[index]

	s.logger.Log(c, s.key, mylog.SeverityInfo, "Added %s (%s) to cart %s, quantity now %d", name, price, s.key, entry.Quantity)

	s.persist(c)
	s.emit(c, ItemAdded, index, entry)

	return entry, nil
}

// RemoveItem drops the entry at index regardless of its quantity. An index out of
// range is ignored and reported as false.
func (s *Store) RemoveItem(c context.Context, index int) bool {
	if s.rejectReentrant(c, "remove") {
		return false
	}
	if !s.inRange(index) {
		s.logger.Log(c, s.key, mylog.SeverityDebug, "Ignoring removal of index %d from cart %s with %d entries", index, s.key, len(s.entries))
		return false
	}

	removed := s.entries[index]
	s.entries = append(s.entries[:index], s.entries[index+1:]...)

	s.logger.Log(c, s.key, mylog.SeverityInfo, "Removed %s (%s) from cart %s", removed.Name, removed.Price, s.key)

	s.persist(c)
	s.emit(c, ItemRemoved, index, removed)

	return true
}

// SetQuantity adjusts the quantity at index by delta. When the result drops below 1
// the entry is removed instead, and an increase stops at MaxQuantity.
func (s *Store) SetQuantity(c context.Context, index int, delta int) bool {
	if s.rejectReentrant(c, "set-quantity") {
		return false
	}
	if !s.inRange(index) {
		s.logger.Log(c, s.key, mylog.SeverityDebug, "Ignoring quantity change of index %d in cart %s with %d entries", index, s.key, len(s.entries))
		return false
	}

	newQuantity := addQuantity(s.entries[index].Quantity, delta)
	if newQuantity < 1 {
		return s.RemoveItem(c, index)
	}

	s.entries[index].Quantity = newQuantity
	entry := s.entries[index]

	s.logger.Log(c, s.key, mylog.SeverityInfo, "Quantity of %s (%s) in cart %s now %d", entry.Name, entry.Price, s.key, newQuantity)

	s.persist(c)
	s.emit(c, QuantityChanged, index, entry)

	return true
}

func (s *Store) Clear(c context.Context) {
	if s.rejectReentrant(c, "clear") {
		return
	}

	s.entries = []Entry{}

	s.logger.Log(c, s.key, mylog.SeverityInfo, "Cleared cart %s", s.key)

	s.persist(c)
	s.emit(c, Cleared, -1, Entry{})
}

// addQuantity adds delta to a quantity between 1 and MaxQuantity without overflowing.
func addQuantity(quantity int, delta int) int {
	if delta > MaxQuantity-quantity {
		return MaxQuantity
	}
	return quantity + delta
}
