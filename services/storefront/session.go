package storefront

import (
	"context"
	"net/http"
	"regexp"
	"sync"
	"time"

	"github.com/MarcGrol/storefront/lib/mytime"
	"github.com/MarcGrol/storefront/services/cart"
)

const (
	sessionCookieName = "storefront_session"
	// sessions idle for longer are dropped from memory; their cart stays in storage
	sessionIdleTimeout = 24 * time.Hour
	sweepInterval      = time.Minute
)

var validSessionUID = regexp.MustCompile(`^[A-Za-z0-9-]{1,64}$`)

// session couples a cart with its display. The mutex serializes every request of the
// session, which gives the store the one-at-a-time access it expects.
type session struct {
	sync.Mutex
	store    *cart.Store
	display  *Display
	lastSeen time.Time
}

type sessionRegistry struct {
	sync.Mutex
	sessions    map[string]*session
	create      func(c context.Context, sessionUID string) *session
	nower       mytime.Nower
	idleTimeout time.Duration
	lastSweep   time.Time
}

func newSessionRegistry(create func(c context.Context, sessionUID string) *session, nower mytime.Nower, idleTimeout time.Duration) *sessionRegistry {
	return &sessionRegistry{
		sessions:    map[string]*session{},
		create:      create,
		nower:       nower,
		idleTimeout: idleTimeout,
	}
}

// get returns the session for uid, creating it when needed. Creation loads the cart
// from storage and happens outside the registry lock.
func (r *sessionRegistry) get(c context.Context, sessionUID string) *session {
	now := r.nower.Now()

	r.Lock()
	r.sweep(now)
	s, found := r.sessions[sessionUID]
	if found {
		s.lastSeen = now
	}
	r.Unlock()

	if found {
		return s
	}

	created := r.create(c, sessionUID)

	r.Lock()
	defer r.Unlock()

	s, found = r.sessions[sessionUID]
	if found {
		// a concurrent request for the same session won
		s.lastSeen = now
		return s
	}
	created.lastSeen = now
	r.sessions[sessionUID] = created
	return created
}

// sweep drops idle sessions. Must be called with the registry lock held.
func (r *sessionRegistry) sweep(now time.Time) {
	if now.Sub(r.lastSweep) < sweepInterval {
		return
	}
	r.lastSweep = now

	for uid, s := range r.sessions {
		if now.Sub(s.lastSeen) > r.idleTimeout {
			delete(r.sessions, uid)
		}
	}
}

func (s *webService) sessionUID(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(sessionCookieName)
	if err == nil && validSessionUID.MatchString(cookie.Value) {
		return cookie.Value
	}

	uid := s.uuider.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    uid,
		Path:     "/",
		MaxAge:   int(sessionIdleTimeout.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return uid
}

// withSession runs f while holding the session lock.
func (s *webService) withSession(c context.Context, w http.ResponseWriter, r *http.Request, f func(sess *session)) {
	sess := s.sessions.get(c, s.sessionUID(w, r))

	sess.Lock()
	defer sess.Unlock()

	f(sess)
}
