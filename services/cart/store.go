package cart

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/MarcGrol/storefront/lib/mylog"
	"github.com/MarcGrol/storefront/lib/myuuid"
)

const DefaultKey = "cart"

// Store owns the ordered list of cart entries and keeps it in sync with the persisted
// copy under its key. A Store is not safe for concurrent use: all calls, including
// the handlers it dispatches to, are expected to happen on one goroutine at a time.
type Store struct {
	key           string
	storage       Storage
	uuider        myuuid.UUIDer
	logger        mylog.Logger
	entries       []Entry
	subscriptions []subscription
	dispatching   bool
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewStore(key string, storage Storage, uuider myuuid.UUIDer, logger mylog.Logger) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{
		key:     key,
		storage: storage,
		uuider:  uuider,
		logger:  logger,
		entries: []Entry{},
	}
}

func (s *Store) Key() string {
	return s.key
}

// Initialize replaces the in-memory cart with the persisted one. Missing, unreadable
// or malformed data results in an empty cart.
func (s *Store) Initialize(c context.Context) {
	s.entries = []Entry{}

	payload, found, err := s.storage.Get(c, s.key)
	if err != nil {
		s.logger.Log(c, s.key, mylog.SeverityWarn, "Error reading persisted cart %s, starting empty: %s", s.key, err)
		return
	}
	if !found {
		s.logger.Log(c, s.key, mylog.SeverityDebug, "No persisted cart %s, starting empty", s.key)
		return
	}

	entries, err := decodeEntries(payload)
	if err != nil {
		s.logger.Log(c, s.key, mylog.SeverityInfo, "Ignoring malformed persisted cart %s: %s", s.key, err)
		return
	}
	s.entries = entries

	s.logger.Log(c, s.key, mylog.SeverityDebug, "Restored cart %s with %d entries", s.key, len(s.entries))
}

func (s *Store) Entries() []Entry {
	return append([]Entry{}, s.entries...)
}

func (s *Store) Len() int {
	return len(s.entries)
}

func (s *Store) TotalItemCount() int {
	count := 0
	for _, e := range s.entries {
		count += e.Quantity
	}
	return count
}

func (s *Store) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, e := range s.entries {
		total = total.Add(e.LineTotal())
	}
	return total
}

func (s *Store) persist(c context.Context) {
	payload, err := encodeEntries(s.entries)
	if err != nil {
		s.logger.Log(c, s.key, mylog.SeverityError, "Error encoding cart %s: %s", s.key, err)
		return
	}

	err = s.storage.Put(c, s.key, payload)
	if err != nil {
		// the in-memory cart stays authoritative for this session
		s.logger.Log(c, s.key, mylog.SeverityWarn, "Error persisting cart %s: %s", s.key, err)
	}
}
