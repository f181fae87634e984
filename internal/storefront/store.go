// Package storefront composes the catalog, cart, order ledger, favorites,
// and session slices into a single explicitly owned state object. It is the
// entry point a host UI integrates against.
//
// Every user-facing mutation checks authentication here, before delegating
// to the slice that owns the state. The slices themselves trust their caller,
// matching the convention that gating happens at the call site.
package storefront

import (
	"context"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/psingh05395/swadhyatra/internal/domain/cart"
	"github.com/psingh05395/swadhyatra/internal/domain/catalog"
	"github.com/psingh05395/swadhyatra/internal/domain/favorite"
	"github.com/psingh05395/swadhyatra/internal/domain/order"
	"github.com/psingh05395/swadhyatra/internal/domain/session"
)

// instrumentationName identifies this package to OpenTelemetry.
const instrumentationName = "github.com/psingh05395/swadhyatra/internal/storefront"

// PaymentAuthorizer charges the customer for an order total. The storefront
// ships with an accept-all stub; a surrounding system can plug in a real
// payment gateway without touching the core.
type PaymentAuthorizer interface {
	Authorize(ctx context.Context, method string, amount decimal.Decimal) error
}

// StubAuthorizer approves every charge. It preserves the mock payment flow
// of the storefront.
type StubAuthorizer struct{}

var _ PaymentAuthorizer = StubAuthorizer{}

// Authorize always succeeds.
func (StubAuthorizer) Authorize(context.Context, string, decimal.Decimal) error {
	return nil
}

// Config holds the non-dependency configuration for a Store.
type Config struct {
	Pricing cart.Pricing

	// TracerProvider and MeterProvider default to the otel globals when nil.
	TracerProvider trace.TracerProvider
	MeterProvider  metric.MeterProvider
}

// Totals is the cart pricing summary shown at checkout.
type Totals struct {
	Subtotal    decimal.Decimal
	Tax         decimal.Decimal
	DeliveryFee decimal.Decimal
	Total       decimal.Decimal
}

// Store owns all storefront state for one customer session.
// Not safe for concurrent use; all mutations are discrete user actions that
// complete before the next one is processed.
type Store struct {
	catalog   *catalog.Catalog
	cart      *cart.Cart
	orders    *order.Ledger
	favorites *favorite.Set
	session   *session.Session

	verifier session.CredentialVerifier
	payments PaymentAuthorizer

	tracer        trace.Tracer
	cartMutations metric.Int64Counter
	ordersPlaced  metric.Int64Counter
	loginAttempts metric.Int64Counter
}

// New constructs a Store with the given capabilities.
func New(cfg Config, verifier session.CredentialVerifier, payments PaymentAuthorizer) (*Store, error) {
	tp := cfg.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	mp := cfg.MeterProvider
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	meter := mp.Meter(instrumentationName)

	cartMutations, err := meter.Int64Counter("storefront.cart.mutations",
		metric.WithDescription("Number of cart mutations applied"))
	if err != nil {
		return nil, errors.Wrap(err, "create cart mutations counter")
	}
	ordersPlaced, err := meter.Int64Counter("storefront.orders.placed",
		metric.WithDescription("Number of orders placed"))
	if err != nil {
		return nil, errors.Wrap(err, "create orders placed counter")
	}
	loginAttempts, err := meter.Int64Counter("storefront.login.attempts",
		metric.WithDescription("Number of login attempts"))
	if err != nil {
		return nil, errors.Wrap(err, "create login attempts counter")
	}

	return &Store{
		catalog:       catalog.New(),
		cart:          cart.New(cfg.Pricing),
		orders:        order.NewLedger(),
		favorites:     favorite.NewSet(),
		session:       session.New(),
		verifier:      verifier,
		payments:      payments,
		tracer:        tp.Tracer(instrumentationName),
		cartMutations: cartMutations,
		ordersPlaced:  ordersPlaced,
		loginAttempts: loginAttempts,
	}, nil
}

// requireUser is the authentication gate applied to every mutation entry
// point.
func (s *Store) requireUser() error {
	if !s.session.Authenticated() {
		return session.ErrUnauthenticated
	}
	return nil
}

// --- Session ---

// Login verifies the credentials through the configured verifier and starts
// a session for the resulting user.
func (s *Store) Login(ctx context.Context, email, password string) (*session.User, error) {
	s.loginAttempts.Add(ctx, 1)

	user, err := s.verifier.Verify(ctx, email, password)
	if err != nil {
		return nil, errors.Wrap(err, "verify credentials")
	}
	s.session.Login(*user)
	zctx.From(ctx).Info("User logged in", zap.String("user_id", user.ID))
	return user, nil
}

// Signup registers a new user through the configured verifier and starts a
// session for it.
func (s *Store) Signup(ctx context.Context, name, email, password string) (*session.User, error) {
	s.loginAttempts.Add(ctx, 1)

	user, err := s.verifier.Register(ctx, name, email, password)
	if err != nil {
		return nil, errors.Wrap(err, "register user")
	}
	s.session.Login(*user)
	zctx.From(ctx).Info("User signed up", zap.String("user_id", user.ID))
	return user, nil
}

// Logout ends the session. The working cart belongs to the session and is
// dropped with it; placed orders and favorites survive for the process
// lifetime.
func (s *Store) Logout() {
	s.session.Logout()
	s.cart.Clear()
}

// Authenticated reports whether a user is logged in.
func (s *Store) Authenticated() bool {
	return s.session.Authenticated()
}

// Profile returns the logged-in user.
func (s *Store) Profile() (*session.User, error) {
	return s.session.Current()
}

// UpdateProfile merges the given fields into the logged-in user's record.
func (s *Store) UpdateProfile(update session.ProfileUpdate) error {
	return s.session.UpdateProfile(update)
}

// --- Catalog ---

// SetMenu replaces the catalog contents. Called once at startup with the
// loaded seed data.
func (s *Store) SetMenu(items []catalog.Item, categories []catalog.Category) {
	s.catalog.SetItems(items)
	s.catalog.SetCategories(categories)
}

// Search sets the free-text menu filter.
func (s *Store) Search(text string) {
	s.catalog.SetSearchText(text)
}

// FilterByCategory sets the category menu filter. An empty label clears it.
func (s *Store) FilterByCategory(label string) {
	s.catalog.SetCategoryFilter(label)
}

// Menu returns the items matching the active filters.
func (s *Store) Menu() []catalog.Item {
	return s.catalog.Query()
}

// Categories returns all menu sections.
func (s *Store) Categories() []catalog.Category {
	return s.catalog.Categories()
}

// Item returns the catalog item with the given identifier.
func (s *Store) Item(id string) (*catalog.Item, error) {
	return s.catalog.Get(id)
}

// Featured returns up to limit discounted items.
func (s *Store) Featured(limit int) []catalog.Item {
	return s.catalog.Featured(limit)
}

// Popular returns up to limit items rated 4.5 or higher.
func (s *Store) Popular(limit int) []catalog.Item {
	return s.catalog.Popular(4.5, limit)
}

// --- Cart ---

// AddToCart adds quantity units of the identified catalog item to the cart.
func (s *Store) AddToCart(ctx context.Context, itemID string, quantity int, instructions ...string) error {
	if err := s.requireUser(); err != nil {
		return err
	}
	item, err := s.catalog.Get(itemID)
	if err != nil {
		return errors.Wrap(err, "lookup item")
	}
	if err := s.cart.AddItem(*item, quantity, instructions...); err != nil {
		return err
	}
	s.cartMutations.Add(ctx, 1)
	return nil
}

// RemoveFromCart removes the identified item's line from the cart.
func (s *Store) RemoveFromCart(ctx context.Context, itemID string) error {
	if err := s.requireUser(); err != nil {
		return err
	}
	s.cart.RemoveItem(itemID)
	s.cartMutations.Add(ctx, 1)
	return nil
}

// SetCartQuantity sets the identified line's quantity exactly; zero or less
// removes the line.
func (s *Store) SetCartQuantity(ctx context.Context, itemID string, quantity int) error {
	if err := s.requireUser(); err != nil {
		return err
	}
	s.cart.SetQuantity(itemID, quantity)
	s.cartMutations.Add(ctx, 1)
	return nil
}

// ClearCart empties the cart.
func (s *Store) ClearCart(ctx context.Context) error {
	if err := s.requireUser(); err != nil {
		return err
	}
	s.cart.Clear()
	s.cartMutations.Add(ctx, 1)
	return nil
}

// CartLines returns the cart lines in insertion order.
func (s *Store) CartLines() []cart.Line {
	return s.cart.Lines()
}

// CartTotals returns the current pricing summary.
func (s *Store) CartTotals() Totals {
	return Totals{
		Subtotal:    s.cart.Subtotal(),
		Tax:         s.cart.Tax(),
		DeliveryFee: s.cart.Pricing().DeliveryFee,
		Total:       s.cart.Total(),
	}
}

// --- Checkout and orders ---

// Checkout authorizes payment for the cart total and places the order. On
// success the cart is cleared and the created order returned.
func (s *Store) Checkout(ctx context.Context, address, paymentMethod string) (*order.Order, error) {
	ctx, span := s.tracer.Start(ctx, "storefront.Checkout")
	defer span.End()

	if err := s.requireUser(); err != nil {
		return nil, err
	}
	// Placement preconditions come first: nothing is charged for an order
	// the ledger would reject.
	if s.cart.IsEmpty() {
		return nil, order.ErrEmptyCart
	}
	if strings.TrimSpace(address) == "" {
		return nil, order.ErrMissingAddress
	}

	if err := s.payments.Authorize(ctx, paymentMethod, s.cart.Total()); err != nil {
		return nil, errors.Wrap(err, "authorize payment")
	}

	o, err := s.orders.PlaceOrder(s.cart, address, paymentMethod)
	if err != nil {
		return nil, err
	}

	s.ordersPlaced.Add(ctx, 1)
	zctx.From(ctx).Info("Order placed",
		zap.String("order_id", o.ID),
		zap.String("total", o.Total.String()),
	)
	return o, nil
}

// Orders returns all placed orders, most recent first.
func (s *Store) Orders() []order.Order {
	return s.orders.Orders()
}

// Order returns the placed order with the given identifier.
func (s *Store) Order(id string) (*order.Order, error) {
	return s.orders.Get(id)
}

// AdvanceOrder moves a placed order to the given lifecycle status.
func (s *Store) AdvanceOrder(id string, status order.Status) error {
	return s.orders.AdvanceStatus(id, status)
}

// --- Favorites ---

// ToggleFavorite flips the favorite membership of the identified item and
// reports whether it is a favorite afterwards.
func (s *Store) ToggleFavorite(itemID string) (bool, error) {
	if err := s.requireUser(); err != nil {
		return false, err
	}
	item, err := s.catalog.Get(itemID)
	if err != nil {
		return false, errors.Wrap(err, "lookup item")
	}
	return s.favorites.Toggle(*item), nil
}

// IsFavorite reports whether the identified item is a favorite.
func (s *Store) IsFavorite(itemID string) bool {
	return s.favorites.IsFavorite(itemID)
}

// Favorites returns the favorite items in insertion order.
func (s *Store) Favorites() []catalog.Item {
	return s.favorites.Items()
}
