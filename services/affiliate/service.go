package affiliate

import (
	"context"
	"fmt"
	"net/url"

	"github.com/MarcGrol/storefront/lib/myerrors"
	"github.com/MarcGrol/storefront/lib/mylog"
	"github.com/MarcGrol/storefront/lib/mypublisher"
	"github.com/MarcGrol/storefront/lib/mystore"
	"github.com/MarcGrol/storefront/lib/mytime"
	"github.com/MarcGrol/storefront/lib/myuuid"
)

// Service records outbound clicks on affiliate links.
type Service struct {
	clickStore mystore.Store[Click]
	publisher  mypublisher.Publisher
	nower      mytime.Nower
	uuider     myuuid.UUIDer
	logger     mylog.Logger
}

func NewService(store mystore.Store[Click], publisher mypublisher.Publisher, nower mytime.Nower, uuider myuuid.UUIDer, logger mylog.Logger) *Service {
	return &Service{
		clickStore: store,
		publisher:  publisher,
		nower:      nower,
		uuider:     uuider,
		logger:     logger,
	}
}

func (s *Service) CreateTopic(c context.Context) error {
	return s.publisher.CreateTopic(c, TopicName)
}

func (s *Service) RecordClick(c context.Context, productUID string, target string) (Click, error) {
	if productUID == "" {
		return Click{}, myerrors.NewInvalidInputErrorf("missing product uid")
	}
	u, err := url.Parse(target)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return Click{}, myerrors.NewInvalidInputErrorf("invalid affiliate target %q for product %s", target, productUID)
	}

	click := Click{
		UID:        s.uuider.Create(),
		ProductUID: productUID,
		Target:     target,
		ClickedAt:  s.nower.Now(),
	}

	s.logger.Log(c, productUID, mylog.SeverityInfo, "Affiliate click %s on product %s -> %s", click.UID, productUID, target)

	err = s.clickStore.Put(c, click.UID, click)
	if err != nil {
		return Click{}, myerrors.NewInternalError(fmt.Errorf("error storing click %s: %w", click.UID, err))
	}

	err = s.publisher.Publish(c, TopicName, Clicked{
		ClickUID:   click.UID,
		ProductUID: productUID,
		Target:     target,
	})
	if err != nil {
		// the click is stored, losing the notification is acceptable
		s.logger.Log(c, productUID, mylog.SeverityWarn, "Error publishing click %s: %s", click.UID, err)
	}

	return click, nil
}

// Stats returns the number of recorded clicks per product uid.
func (s *Service) Stats(c context.Context) (map[string]int, error) {
	clicks, err := s.clickStore.List(c)
	if err != nil {
		return nil, myerrors.NewInternalError(err)
	}

	stats := map[string]int{}
	for _, click := range clicks {
		stats[click.ProductUID]++
	}
	return stats, nil
}
