// Command storefront runs an interactive storefront session against either a
// local catalog (KV-backed, optimistic stock) or the remote catalog API
// (stock reserved server-side before any cart change). Views re-render on
// change signals; in remote mode a fixed-interval poll bounds staleness for
// edits made by other shoppers.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	ossignal "os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/teltechdev/teltech-backend/internal/storefront/cart"
	"github.com/teltechdev/teltech-backend/internal/storefront/products"
	"github.com/teltechdev/teltech-backend/internal/storefront/reservation"
	"github.com/teltechdev/teltech-backend/internal/storefront/session"
	"github.com/teltechdev/teltech-backend/internal/storefront/signal"
	"github.com/teltechdev/teltech-backend/internal/storefront/views"
	"github.com/teltechdev/teltech-backend/pkg/config"
	"github.com/teltechdev/teltech-backend/pkg/kv"
	"github.com/teltechdev/teltech-backend/pkg/logger"
	"github.com/teltechdev/teltech-backend/pkg/metrics"
	"github.com/teltechdev/teltech-backend/pkg/types"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := ossignal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	syncMetrics := metrics.NewSyncMetrics(registry)
	hub := signal.NewHub(syncMetrics)

	store, cleanup, err := buildKV(ctx, cfg, hub, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap storage", err)
		os.Exit(1)
	}
	defer cleanup()

	cartStore := cart.NewStore(store, logg)
	viewRegistry := views.NewRegistry(logg, syncMetrics)

	var (
		productStore products.Store
		remote       *products.RemoteStore
		coordinator  *reservation.Coordinator
	)
	switch strings.ToLower(cfg.Storefront.Mode) {
	case config.StorefrontModeRemote:
		remote = products.NewRemoteStore(cfg.Storefront.APIBaseURL, nil, logg)
		productStore = remote
		coordinator = reservation.NewPessimistic(remote, cartStore, viewRegistry, logg)
	case config.StorefrontModeLocal:
		productStore = products.NewLocalStore(store, logg)
		coordinator = reservation.NewOptimistic(cartStore, viewRegistry, logg)
	default:
		logg.Error(ctx, "unknown storefront mode", fmt.Errorf("mode %q", cfg.Storefront.Mode))
		os.Exit(1)
	}

	viewRegistry.Register(views.NewProductGrid(productStore, os.Stdout))
	viewRegistry.Register(views.NewAdminTable(productStore, os.Stdout))
	viewRegistry.Register(views.NewCartBadge(cartStore, os.Stdout))

	unsubscribe := hub.Subscribe(func(ctx context.Context, key string) {
		if err := viewRegistry.RefreshAll(ctx); err != nil {
			logg.Error(logg.WithField(ctx, "key", key), "refresh on change signal", err)
		}
	})
	defer unsubscribe()

	if remote != nil {
		poller := signal.NewPoller(cfg.Storefront.PollInterval, viewRegistry, logg, syncMetrics)
		go poller.Run(ctx)
	}

	sess := session.New(store)
	logg.Info(logg.WithField(ctx, "mode", cfg.Storefront.Mode), "storefront ready")
	runShell(ctx, shell{
		products:    productStore,
		remote:      remote,
		cart:        cartStore,
		coordinator: coordinator,
		session:     sess,
		registry:    viewRegistry,
	})
}

func buildKV(ctx context.Context, cfg *config.Config, hub *signal.Hub, logg *logger.Logger) (*kv.Store, func(), error) {
	if cfg.Redis.URL == "" && cfg.Redis.Address == "" {
		return kv.NewStore(kv.NewMemoryBackend(), hub, logg), func() {}, nil
	}

	backend, err := kv.NewRedisBackend(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	listener := signal.NewRedisListener(backend, hub, logg)
	go listener.Run(ctx)
	return kv.NewStore(backend, backend, logg), func() { backend.Close() }, nil
}

type shell struct {
	products    products.Store
	remote      *products.RemoteStore
	cart        *cart.Store
	coordinator *reservation.Coordinator
	session     *session.Session
	registry    *views.Registry
}

func runShell(ctx context.Context, s shell) {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println(`commands: list, buy <id> [qty], drop <id>, cart, add <name> <price> <category> [qty], edit <id> <name> <price> <category> [qty], del <id>, login <email> <password>, logout, quit`)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		select {
		case <-ctx.Done():
			return
		default:
		}

		args := strings.Fields(scanner.Text())
		if len(args) == 0 {
			continue
		}
		if err := s.dispatch(ctx, args); err != nil {
			if err == errQuit {
				return
			}
			fmt.Println("error:", err)
		}
	}
}

var errQuit = fmt.Errorf("quit")

func (s shell) dispatch(ctx context.Context, args []string) error {
	switch args[0] {
	case "quit", "exit":
		return errQuit
	case "list":
		return s.registry.RefreshAll(ctx)
	case "cart":
		for _, line := range s.cart.Items(ctx) {
			fmt.Printf("%s  x%d  $%s\n", line.Name, line.Quantity, line.Price.StringFixed(2))
		}
		return nil
	case "buy":
		if len(args) < 2 {
			return fmt.Errorf("usage: buy <id> [qty]")
		}
		qty := 1
		if len(args) > 2 {
			parsed, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("quantity must be a number")
			}
			qty = parsed
		}
		product, ok := findProduct(s.products.List(ctx), args[1])
		if !ok {
			return fmt.Errorf("no product with id %s", args[1])
		}
		return s.coordinator.AddToCart(ctx, product, qty)
	case "drop":
		if len(args) != 2 {
			return fmt.Errorf("usage: drop <id>")
		}
		return s.coordinator.RemoveFromCart(ctx, args[1])
	case "add":
		input, err := parseInput(args[1:])
		if err != nil {
			return err
		}
		_, err = s.products.Create(ctx, input)
		return err
	case "edit":
		if len(args) < 2 {
			return fmt.Errorf("usage: edit <id> <name> <price> <category> [qty]")
		}
		input, err := parseInput(args[2:])
		if err != nil {
			return err
		}
		_, err = s.products.Update(ctx, args[1], input)
		return err
	case "del":
		if len(args) != 2 {
			return fmt.Errorf("usage: del <id>")
		}
		return s.products.Delete(ctx, args[1])
	case "login":
		if len(args) != 3 {
			return fmt.Errorf("usage: login <email> <password>")
		}
		if s.remote != nil {
			if _, err := s.remote.Login(ctx, args[1], args[2]); err != nil {
				return err
			}
		}
		return s.session.LoginAdmin(ctx)
	case "logout":
		if s.remote != nil {
			s.remote.SetToken("")
		}
		return s.session.LogoutAdmin(ctx)
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func parseInput(args []string) (products.Input, error) {
	if len(args) < 3 {
		return products.Input{}, fmt.Errorf("need <name> <price> <category> [qty]")
	}
	price, err := decimal.NewFromString(args[1])
	if err != nil {
		return products.Input{}, fmt.Errorf("price must be a decimal number")
	}
	input := products.Input{Name: args[0], Price: price, Category: args[2]}
	if len(args) > 3 {
		qty, err := strconv.Atoi(args[3])
		if err != nil {
			return products.Input{}, fmt.Errorf("quantity must be a number")
		}
		input.Quantity = &qty
	}
	return input, nil
}

func findProduct(catalog []types.Product, id string) (types.Product, bool) {
	for _, p := range catalog {
		if p.ID == id {
			return p, true
		}
	}
	return types.Product{}, false
}
