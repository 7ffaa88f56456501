package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/gorilla/mux"
	"github.com/spf13/cobra"

	"github.com/MarcGrol/storefront/lib/mylog"
	"github.com/MarcGrol/storefront/lib/mypublisher"
	"github.com/MarcGrol/storefront/lib/mypubsub"
	"github.com/MarcGrol/storefront/lib/mytime"
	"github.com/MarcGrol/storefront/lib/myuuid"
	"github.com/MarcGrol/storefront/services/affiliate"
	"github.com/MarcGrol/storefront/services/cart"
	"github.com/MarcGrol/storefront/services/cart/cartevents"
	"github.com/MarcGrol/storefront/services/catalog"
	"github.com/MarcGrol/storefront/services/storefront"
	"github.com/MarcGrol/storefront/services/warmup"
)

var cfg = configFromEnvironment()

var rootCmd = &cobra.Command{
	Use:          "storefront",
	Short:        "Product storefront with a persistent shopping cart",
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the storefront webserver",
	Args:  cobra.NoArgs,
	RunE:  serve,
}

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Inspect and modify the persisted cart",
}

var cartShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the cart",
	Args:  cobra.NoArgs,
	RunE: withCart(func(c context.Context, store *cart.Store, args []string) error {
		return nil
	}),
}

var cartAddCmd = &cobra.Command{
	Use:   "add [name] [price] [image]",
	Short: "Add an item, or increase its quantity when it is already in the cart",
	Args:  cobra.RangeArgs(2, 3),
	RunE: withCart(func(c context.Context, store *cart.Store, args []string) error {
		image := ""
		if len(args) == 3 {
			image = args[2]
		}
		_, err := store.AddItem(c, args[0], args[1], image)
		return err
	}),
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove [index]",
	Short: "Remove the item at the given position",
	Args:  cobra.ExactArgs(1),
	RunE: withCart(func(c context.Context, store *cart.Store, args []string) error {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid index %q: %w", args[0], err)
		}
		if !store.RemoveItem(c, index) {
			return fmt.Errorf("no item at index %d", index)
		}
		return nil
	}),
}

var cartQuantityCmd = &cobra.Command{
	Use:   "qty [index] [delta]",
	Short: "Change the quantity of the item at the given position",
	Args:  cobra.ExactArgs(2),
	RunE: withCart(func(c context.Context, store *cart.Store, args []string) error {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid index %q: %w", args[0], err)
		}
		delta, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid delta %q: %w", args[1], err)
		}
		if !store.SetQuantity(c, index, delta) {
			return fmt.Errorf("no item at index %d", index)
		}
		return nil
	}),
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every item",
	Args:  cobra.NoArgs,
	RunE: withCart(func(c context.Context, store *cart.Store, args []string) error {
		store.Clear(c)
		return nil
	}),
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfg.sqlitePath, "db", cfg.sqlitePath, "sqlite file to persist to (or set MYSTORE_SQLITE_PATH env)")
	rootCmd.PersistentFlags().StringVar(&cfg.cartKey, "key", cfg.cartKey, "key the cart is persisted under (or set CART_KEY env)")
	serveCmd.Flags().StringVar(&cfg.port, "port", cfg.port, "port to listen on (or set PORT env)")

	cartCmd.AddCommand(cartShowCmd)
	cartCmd.AddCommand(cartAddCmd)
	cartCmd.AddCommand(cartRemoveCmd)
	cartCmd.AddCommand(cartQuantityCmd)
	cartCmd.AddCommand(cartClearCmd)

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(cartCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serve(cmd *cobra.Command, args []string) error {
	c := context.Background()

	router := mux.NewRouter()

	pubsub, pubsubCleanup, err := mypubsub.New(c)
	if err != nil {
		return fmt.Errorf("error creating pubsub: %w", err)
	}
	defer pubsubCleanup()
	publisher := mypublisher.New(pubsub, mytime.RealNower{})

	cartStore, cartStoreCleanup, err := newStore[cart.StoredCart](c, cfg)
	if err != nil {
		return fmt.Errorf("error creating cart store: %w", err)
	}
	defer cartStoreCleanup()

	clickStore, clickStoreCleanup, err := newStore[affiliate.Click](c, cfg)
	if err != nil {
		return fmt.Errorf("error creating click store: %w", err)
	}
	defer clickStoreCleanup()

	cartStorage := cart.NewStorage(cartStore)

	warmup.NewService(cartStorage, mylog.New("warmup")).RegisterEndpoints(c, router)

	affiliateService := affiliate.NewService(clickStore, publisher, mytime.RealNower{}, myuuid.RealUUIDer{}, mylog.New("affiliate"))

	storefrontService := storefront.NewService(
		catalog.New(catalog.DefaultProducts()),
		affiliateService,
		cartStorage,
		cartevents.NewForwarder(publisher, mylog.New("cartevents")),
		myuuid.RealUUIDer{},
		mytime.RealNower{},
		mytime.RealScheduler{},
		mylog.New("storefront"),
		cfg.cartKey,
	)
	err = storefrontService.RegisterEndpoints(c, router)
	if err != nil {
		return fmt.Errorf("error registering storefront endpoints: %w", err)
	}

	return startWebServerBlocking(cfg.port, router)
}

func startWebServerBlocking(port string, router *mux.Router) error {
	logger := mylog.New("main")
	logger.Log(context.Background(), "", mylog.SeverityInfo, "Starting webserver on port %s (try http://localhost:%s)", port, port)

	err := http.ListenAndServe(fmt.Sprintf(":%s", port), router)
	if err != nil {
		return fmt.Errorf("error starting webserver on port %s: %w", port, err)
	}
	return nil
}

// withCart loads the persisted cart, runs f on it and prints the result. Mutations are
// forwarded on the cart topic just like the ones made through the webserver.
func withCart(f func(c context.Context, store *cart.Store, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		c := context.Background()

		storer, cleanup, err := newStore[cart.StoredCart](c, cfg)
		if err != nil {
			return fmt.Errorf("error creating cart store: %w", err)
		}
		defer cleanup()

		pubsub, pubsubCleanup, err := mypubsub.New(c)
		if err != nil {
			return fmt.Errorf("error creating pubsub: %w", err)
		}
		defer pubsubCleanup()

		forwarder := cartevents.NewForwarder(mypublisher.New(pubsub, mytime.RealNower{}), mylog.New("cartevents"))
		err = forwarder.CreateTopic(c)
		if err != nil {
			return fmt.Errorf("error creating cart topic: %w", err)
		}

		store := cart.NewStore(cfg.cartKey, cart.NewStorage(storer), myuuid.RealUUIDer{}, mylog.New("cart"))
		store.Initialize(c)
		forwarder.Register(store)

		err = f(c, store, args)
		if err != nil {
			return err
		}

		return printCart(cmd.OutOrStdout(), store)
	}
}

func printCart(out io.Writer, store *cart.Store) error {
	entries := store.Entries()
	if len(entries) == 0 {
		_, err := fmt.Fprintln(out, "Your cart is empty")
		return err
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tNAME\tPRICE\tQTY\tLINE TOTAL")
	for i, e := range entries {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n", i, e.Name, e.Price, e.Quantity, e.LineTotal().StringFixed(2))
	}
	fmt.Fprintf(w, "\tTotal Items: %d\t\t\t%s\n", store.TotalItemCount(), store.TotalPrice().StringFixed(2))
	return w.Flush()
}
