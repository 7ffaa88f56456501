package storefront

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/storefront/lib/mycontext"
	"github.com/MarcGrol/storefront/lib/myerrors"
	"github.com/MarcGrol/storefront/lib/myhttp"
	"github.com/MarcGrol/storefront/lib/mylog"
	"github.com/MarcGrol/storefront/services/catalog"
)

//go:embed templates
var templateFolder embed.FS
var (
	storefrontPageTemplate    *template.Template
	productDetailPageTemplate *template.Template
)

func init() {
	storefrontPageTemplate = template.Must(template.ParseFS(templateFolder, "templates/storefront.html", "templates/cart.html"))
	productDetailPageTemplate = template.Must(template.ParseFS(templateFolder, "templates/product_detail.html", "templates/cart.html"))
}

type pageInfo struct {
	Products         []catalog.Product
	Product          catalog.Product
	Categories       []string
	SelectedCategory string
	Query            string
	Cart             CartView
	Notification     *Notification
	BadgePulse       bool
}

type addItemForm struct {
	ProductUID string `form:"product"`
	Name       string `form:"name"`
	Price      string `form:"price"`
	Image      string `form:"image"`
}

type quantityForm struct {
	Delta int `form:"delta"`
}

func (s *webService) fillCartInfo(info *pageInfo, sess *session) {
	info.Cart = sess.display.View()
	if notification, visible := sess.display.Notification(); visible {
		info.Notification = &notification
	}
	info.BadgePulse = sess.display.BadgePulsing()
}

func (s *webService) storefrontPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		category := r.URL.Query().Get("category")
		query := r.URL.Query().Get("q")

		info := pageInfo{
			Products:         s.catalog.Filter(category, query),
			Categories:       append([]string{catalog.AllCategories}, s.catalog.Categories()...),
			SelectedCategory: category,
			Query:            query,
		}
		s.withSession(c, w, r, func(sess *session) {
			s.fillCartInfo(&info, sess)
		})

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		err := storefrontPageTemplate.Execute(w, info)
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInternalError(err))
			return
		}
	}
}

func (s *webService) productDetailPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		productUID := mux.Vars(r)["productUID"]

		product, found := s.catalog.Get(productUID)
		if !found {
			errorWriter.WriteError(c, w, 2, myerrors.NewNotFoundError(fmt.Errorf("product with uid %s not found", productUID)))
			return
		}

		info := pageInfo{Product: product}
		s.withSession(c, w, r, func(sess *session) {
			s.fillCartInfo(&info, sess)
		})

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		err := productDetailPageTemplate.Execute(w, info)
		if err != nil {
			errorWriter.WriteError(c, w, 2, myerrors.NewInternalError(err))
			return
		}
	}
}

func (s *webService) addItemPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		err := r.ParseForm()
		if err != nil {
			errorWriter.WriteError(c, w, 3, myerrors.NewInvalidInputError(err))
			return
		}

		item := addItemForm{}
		err = s.formDecoder.Decode(&item, r.PostForm)
		if err != nil {
			errorWriter.WriteError(c, w, 3, myerrors.NewInvalidInputError(err))
			return
		}

		if item.ProductUID != "" {
			product, found := s.catalog.Get(item.ProductUID)
			if found {
				item.Name, item.Price, item.Image = product.Name, product.Price, product.Image
			}
		}

		s.withSession(c, w, r, func(sess *session) {
			_, err = sess.store.AddItem(c, item.Name, item.Price, item.Image)
			if err != nil {
				s.logger.Log(c, sess.store.Key(), mylog.SeverityInfo, "Rejected add to cart: %s", err)
				sess.display.Warn("Could not add this product to your cart")
			}
		})

		http.Redirect(w, r, returnPath(r), http.StatusSeeOther)
	}
}

// returnPath sends the shopper back to the page the form was posted from, keeping its
// category and search filter. Only same-host referers are followed.
func returnPath(r *http.Request) string {
	referer, err := url.Parse(r.Referer())
	if err != nil || referer.Host != r.Host || !strings.HasPrefix(referer.Path, "/") {
		return "/"
	}
	return (&url.URL{Path: referer.Path, RawQuery: referer.RawQuery}).String()
}

func parseIndex(r *http.Request) (int, error) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		return 0, myerrors.NewInvalidInputErrorf("invalid cart index %q", mux.Vars(r)["index"])
	}
	return index, nil
}

func (s *webService) removeItemPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		index, err := parseIndex(r)
		if err != nil {
			errorWriter.WriteError(c, w, 4, err)
			return
		}

		s.withSession(c, w, r, func(sess *session) {
			sess.store.RemoveItem(c, index)
		})

		http.Redirect(w, r, returnPath(r), http.StatusSeeOther)
	}
}

func (s *webService) setQuantityPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		index, err := parseIndex(r)
		if err != nil {
			errorWriter.WriteError(c, w, 5, err)
			return
		}

		err = r.ParseForm()
		if err != nil {
			errorWriter.WriteError(c, w, 5, myerrors.NewInvalidInputError(err))
			return
		}

		quantity := quantityForm{}
		err = s.formDecoder.Decode(&quantity, r.PostForm)
		if err != nil {
			errorWriter.WriteError(c, w, 5, myerrors.NewInvalidInputError(err))
			return
		}

		s.withSession(c, w, r, func(sess *session) {
			sess.store.SetQuantity(c, index, quantity.Delta)
		})

		http.Redirect(w, r, returnPath(r), http.StatusSeeOther)
	}
}

func (s *webService) clearCartPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)

		s.withSession(c, w, r, func(sess *session) {
			sess.store.Clear(c)
		})

		http.Redirect(w, r, returnPath(r), http.StatusSeeOther)
	}
}

func (s *webService) affiliateRedirect() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		productUID := mux.Vars(r)["productUID"]

		product, found := s.catalog.Get(productUID)
		if !found {
			errorWriter.WriteError(c, w, 6, myerrors.NewNotFoundError(fmt.Errorf("product with uid %s not found", productUID)))
			return
		}

		_, err := s.affiliate.RecordClick(c, product.UID, product.AffiliateURL)
		if err != nil {
			errorWriter.WriteError(c, w, 6, err)
			return
		}

		http.Redirect(w, r, product.AffiliateURL, http.StatusFound)
	}
}

func (s *webService) cartAPI() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		var view CartView
		s.withSession(c, w, r, func(sess *session) {
			view = sess.display.View()
		})

		errorWriter.Write(c, w, http.StatusOK, view)
	}
}

func (s *webService) affiliateStatsAPI() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		stats, err := s.affiliate.Stats(c)
		if err != nil {
			errorWriter.WriteError(c, w, 7, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, stats)
	}
}
