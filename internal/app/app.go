// Package app wires the storefront together for the demo host binary.
package app

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"go.uber.org/zap"

	"github.com/psingh05395/swadhyatra/internal/domain/order"
	"github.com/psingh05395/swadhyatra/internal/domain/session"
	"github.com/psingh05395/swadhyatra/internal/menu"
	"github.com/psingh05395/swadhyatra/internal/storefront"
)

// Run creates all dependencies and drives a scripted storefront session. It
// is the single wiring point for the demo host: a real UI would construct the
// store the same way and call the same operations from its pages.
func Run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config) error {
	pricing, err := cfg.CartPricing()
	if err != nil {
		return err
	}

	var loaded *menu.Menu
	if cfg.MenuFile != "" {
		loaded, err = menu.LoadFile(cfg.MenuFile)
	} else {
		loaded, err = menu.Embedded()
	}
	if err != nil {
		return errors.Wrap(err, "load menu")
	}

	store, err := storefront.New(storefront.Config{
		Pricing:        pricing,
		TracerProvider: m.TracerProvider(),
		MeterProvider:  m.MeterProvider(),
	}, session.StubVerifier{}, storefront.StubAuthorizer{})
	if err != nil {
		return errors.Wrap(err, "create store")
	}
	store.SetMenu(loaded.Items, loaded.Categories)

	lg.Info("Menu loaded",
		zap.Int("items", len(loaded.Items)),
		zap.Int("categories", len(loaded.Categories)),
	)

	return walkthrough(ctx, lg, store)
}

// walkthrough runs one complete customer session against the store: login,
// browse, cart mutations, checkout, and order tracking.
func walkthrough(ctx context.Context, lg *zap.Logger, store *storefront.Store) error {
	user, err := store.Login(ctx, "asha@example.com", "secret")
	if err != nil {
		return errors.Wrap(err, "login")
	}

	store.Search("chicken")
	matches := store.Menu()
	lg.Info("Search results", zap.String("query", "chicken"), zap.Int("matches", len(matches)))
	store.Search("")

	for _, item := range store.Featured(3) {
		if err := store.AddToCart(ctx, item.ID, 1); err != nil {
			return errors.Wrap(err, "add to cart")
		}
		if _, err := store.ToggleFavorite(item.ID); err != nil {
			return errors.Wrap(err, "toggle favorite")
		}
	}

	totals := store.CartTotals()
	lg.Info("Cart ready",
		zap.Int("lines", len(store.CartLines())),
		zap.String("subtotal", totals.Subtotal.StringFixed(2)),
		zap.String("tax", totals.Tax.StringFixed(2)),
		zap.String("total", totals.Total.StringFixed(2)),
	)

	address := user.Address
	if address == "" {
		address = "42 MG Road, Patna"
	}
	placed, err := store.Checkout(ctx, address, "upi")
	if err != nil {
		return errors.Wrap(err, "checkout")
	}

	for _, status := range []order.Status{
		order.StatusPreparing,
		order.StatusOutForDelivery,
		order.StatusDelivered,
	} {
		if err := store.AdvanceOrder(placed.ID, status); err != nil {
			return errors.Wrap(err, "advance order")
		}
		lg.Info("Order status updated",
			zap.String("order_id", placed.ID),
			zap.String("status", string(status)),
		)
	}

	lg.Info("Session complete",
		zap.Int("orders", len(store.Orders())),
		zap.Int("favorites", len(store.Favorites())),
	)
	store.Logout()
	return nil
}
