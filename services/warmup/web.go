package warmup

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/storefront/lib/mycontext"
	"github.com/MarcGrol/storefront/lib/myerrors"
	"github.com/MarcGrol/storefront/lib/myhttp"
	"github.com/MarcGrol/storefront/lib/mylog"
	"github.com/MarcGrol/storefront/services/cart"
)

const probeKey = "warmup-probe"

type webService struct {
	logger      mylog.Logger
	cartStorage cart.Storage
}

// Use dependency injection to isolate the infrastructure and ease testing
func NewService(cartStorage cart.Storage, logger mylog.Logger) *webService {
	return &webService{
		logger:      logger,
		cartStorage: cartStorage,
	}
}

func (s webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/_ah/warmup", s.warmupPage()).Methods("GET")
}

// warmupPage opens the connection to the cart storage before the first shopper arrives.
func (s *webService) warmupPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		_, _, err := s.cartStorage.Get(c, probeKey)
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewUnavailableError(err))
			return
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: "Successfully processed warmup request",
		})
	}
}
