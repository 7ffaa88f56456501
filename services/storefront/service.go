package storefront

import (
	"context"

	"github.com/go-playground/form/v4"
	"github.com/gorilla/mux"

	"github.com/MarcGrol/storefront/lib/mylog"
	"github.com/MarcGrol/storefront/lib/mytime"
	"github.com/MarcGrol/storefront/lib/myuuid"
	"github.com/MarcGrol/storefront/services/affiliate"
	"github.com/MarcGrol/storefront/services/cart"
	"github.com/MarcGrol/storefront/services/cart/cartevents"
	"github.com/MarcGrol/storefront/services/catalog"
)

type webService struct {
	catalog     *catalog.Catalog
	affiliate   *affiliate.Service
	cartStorage cart.Storage
	forwarder   *cartevents.Forwarder
	uuider      myuuid.UUIDer
	nower       mytime.Nower
	scheduler   mytime.Scheduler
	logger      mylog.Logger
	keyPrefix   string
	formDecoder *form.Decoder
	sessions    *sessionRegistry
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(cat *catalog.Catalog, affiliateService *affiliate.Service, cartStorage cart.Storage, forwarder *cartevents.Forwarder,
	uuider myuuid.UUIDer, nower mytime.Nower, scheduler mytime.Scheduler, logger mylog.Logger, keyPrefix string) *webService {
	if keyPrefix == "" {
		keyPrefix = cart.DefaultKey
	}
	s := &webService{
		catalog:     cat,
		affiliate:   affiliateService,
		cartStorage: cartStorage,
		forwarder:   forwarder,
		uuider:      uuider,
		nower:       nower,
		scheduler:   scheduler,
		logger:      logger,
		keyPrefix:   keyPrefix,
		formDecoder: form.NewDecoder(),
	}
	s.sessions = newSessionRegistry(s.newSession, nower, sessionIdleTimeout)
	return s
}

func (s *webService) newSession(c context.Context, sessionUID string) *session {
	key := s.keyPrefix + "-" + sessionUID

	s.logger.Log(c, key, mylog.SeverityInfo, "Starting session %s with cart %s", sessionUID, key)

	store := cart.NewStore(key, s.cartStorage, s.uuider, s.logger)
	store.Initialize(c)

	display := NewDisplay(s.scheduler)
	display.Register(store)
	if s.forwarder != nil {
		s.forwarder.Register(store)
	}
	display.Refresh(store)

	return &session{
		store:   store,
		display: display,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	if s.forwarder != nil {
		err := s.forwarder.CreateTopic(c)
		if err != nil {
			return err
		}
	}
	err := s.affiliate.CreateTopic(c)
	if err != nil {
		return err
	}

	// Endpoints that compose the userinterface
	router.HandleFunc("/", s.storefrontPage()).Methods("GET")
	router.HandleFunc("/product/{productUID}", s.productDetailPage()).Methods("GET")
	router.HandleFunc("/cart/items", s.addItemPage()).Methods("POST")
	router.HandleFunc("/cart/items/{index}/remove", s.removeItemPage()).Methods("POST")
	router.HandleFunc("/cart/items/{index}/quantity", s.setQuantityPage()).Methods("POST")
	router.HandleFunc("/cart/clear", s.clearCartPage()).Methods("POST")
	router.HandleFunc("/out/{productUID}", s.affiliateRedirect()).Methods("GET")

	// Endpoints for scripts
	router.HandleFunc("/api/cart", s.cartAPI()).Methods("GET")
	router.HandleFunc("/api/affiliate/stats", s.affiliateStatsAPI()).Methods("GET")

	return nil
}
