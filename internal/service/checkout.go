package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/spicebloom/storefront/internal/domain"
	"github.com/spicebloom/storefront/internal/event"
	"github.com/spicebloom/storefront/internal/gateway"
	"github.com/spicebloom/storefront/internal/orderclient"
	"github.com/spicebloom/storefront/internal/provider"
	"github.com/spicebloom/storefront/internal/repository"
	apperrors "github.com/spicebloom/storefront/pkg/errors"
)

// checkoutExpiryDuration is how long a checkout session remains valid.
const checkoutExpiryDuration = 30 * time.Minute

// CircuitOpenFallback is the fallback for the downstream circuit breaker.
// When the circuit is open it returns a structured error with a retry hint
// instead of letting the raw ErrCircuitOpen propagate.
func CircuitOpenFallback(_ context.Context, _ error) (*http.Response, error) {
	return nil, apperrors.ServiceUnavailable("downstream service is temporarily unavailable, please retry after 30 seconds")
}

// GatewayClient is the slice of the payment gateway client the checkout
// flow uses.
type GatewayClient interface {
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*gateway.Order, error)
	CheckoutParams(order *gateway.Order) gateway.CheckoutParams
	VerifySignature(proof gateway.PaymentProof) bool
}

// OrderSubmitter is the slice of the order service client the checkout
// flow uses.
type OrderSubmitter interface {
	Create(ctx context.Context, sub *orderclient.Submission) (*orderclient.Order, error)
}

// WalletCharger is the slice of the wallet service the checkout flow uses to
// gate and settle store-wallet payments.
type WalletCharger interface {
	Balance(ctx context.Context, userID string) (*domain.Wallet, error)
	Debit(ctx context.Context, userID string, amount int64, reference string) (*domain.Wallet, error)
	Refund(ctx context.Context, userID string, amount int64, reference string) (*domain.Wallet, error)
}

// CheckoutService orchestrates the three-step checkout wizard: shipping,
// payment, review. Sessions are persisted so the wizard survives reloads;
// totals are always re-derived from the live cart, never trusted from the
// stored snapshot.
type CheckoutService struct {
	repo        repository.CheckoutRepository
	addressRepo repository.AddressRepository
	cart        *CartService
	wallet      WalletCharger
	gateway     GatewayClient
	orders      OrderSubmitter
	charger     provider.Provider
	pricing     domain.PricingConfig
	producer    *event.Producer
	logger      *slog.Logger
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	repo repository.CheckoutRepository,
	addressRepo repository.AddressRepository,
	cart *CartService,
	wallet WalletCharger,
	gw GatewayClient,
	orders OrderSubmitter,
	charger provider.Provider,
	pricing domain.PricingConfig,
	producer *event.Producer,
	logger *slog.Logger,
) *CheckoutService {
	return &CheckoutService{
		repo:        repo,
		addressRepo: addressRepo,
		cart:        cart,
		wallet:      wallet,
		gateway:     gw,
		orders:      orders,
		charger:     charger,
		pricing:     pricing,
		producer:    producer,
		logger:      logger,
	}
}

// SubmitOutput is the result of a checkout submission. For the hosted
// gateway method the session parks in payment_pending and GatewayCheckout
// carries the widget parameters; for every other method the session is
// completed and OrderID is set.
type SubmitOutput struct {
	Session         *domain.CheckoutSession `json:"session"`
	GatewayCheckout *gateway.CheckoutParams `json:"gateway_checkout,omitempty"`
}

// Start opens a new checkout session for the user's current cart.
func (s *CheckoutService) Start(ctx context.Context, userID string) (*domain.CheckoutSession, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}

	cart, err := s.cart.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, apperrors.InvalidInput("cannot start checkout with an empty cart")
	}

	now := time.Now().UTC()
	session := &domain.CheckoutSession{
		ID:            uuid.New().String(),
		UserID:        userID,
		Step:          domain.StepShipping,
		Status:        domain.CheckoutStatusActive,
		Totals:        s.pricing.Quote(cart.Lines),
		SubmissionKey: uuid.New().String(),
		ExpiresAt:     now.Add(checkoutExpiryDuration),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	s.logger.InfoContext(ctx, "checkout session started",
		slog.String("session_id", session.ID),
		slog.String("user_id", userID),
		slog.Int64("grand_total", session.Totals.GrandTotal),
	)

	return session, nil
}

// Get returns a checkout session with totals refreshed from the live cart.
func (s *CheckoutService) Get(ctx context.Context, userID, sessionID string) (*domain.CheckoutSession, error) {
	session, err := s.loadSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	if session.IsTerminal() {
		return session, nil
	}

	if err := s.refreshTotals(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// SelectAddress sets the session's shipping address from the user's address
// book. The address fields are mirrored into the session so the submission
// snapshot survives a later address book edit.
func (s *CheckoutService) SelectAddress(ctx context.Context, userID, sessionID, addressID string) (*domain.CheckoutSession, error) {
	if addressID == "" {
		return nil, apperrors.InvalidInput("address id is required")
	}

	session, err := s.activeSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	address, err := s.addressRepo.GetByID(ctx, addressID)
	if err != nil {
		return nil, fmt.Errorf("get address for selection: %w", err)
	}
	if address.UserID != userID {
		return nil, apperrors.NotFound("address", addressID)
	}

	session.SelectedAddressID = address.ID
	session.ShippingAddress = address

	if err := s.repo.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("update checkout address: %w", err)
	}

	s.logger.InfoContext(ctx, "checkout address selected",
		slog.String("session_id", session.ID),
		slog.String("address_id", address.ID),
	)

	return session, nil
}

// ClearAddressSelection unsets the session's address so the client can force
// its add-new-address form into edit mode.
func (s *CheckoutService) ClearAddressSelection(ctx context.Context, userID, sessionID string) (*domain.CheckoutSession, error) {
	session, err := s.activeSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	session.SelectedAddressID = ""
	session.ShippingAddress = nil

	if err := s.repo.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("clear checkout address: %w", err)
	}

	return session, nil
}

// SelectPaymentMethod sets the session's payment method. Switching methods
// replaces the whole selection, so fields from the previous method never
// leak into the new one. Selecting the store wallet with a balance below the
// grand total is refused outright rather than failing later at submission.
func (s *CheckoutService) SelectPaymentMethod(ctx context.Context, userID, sessionID, method string, details *domain.PaymentDetails) (*domain.CheckoutSession, error) {
	if !domain.IsValidPaymentMethod(method) {
		return nil, apperrors.InvalidInput("unsupported payment method: " + method)
	}
	if details == nil {
		details = &domain.PaymentDetails{}
	}

	session, err := s.activeSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	if err := s.refreshTotals(ctx, session); err != nil {
		return nil, err
	}

	selection, err := buildPaymentSelection(method, details)
	if err != nil {
		return nil, err
	}

	if method == domain.PaymentMethodStoreWallet {
		wallet, err := s.wallet.Balance(ctx, userID)
		if err != nil {
			return nil, err
		}
		if wallet.Balance < session.Totals.GrandTotal {
			return nil, apperrors.InsufficientBalance("wallet balance does not cover the order total")
		}
	}

	session.Payment = selection

	if err := s.repo.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("update checkout payment method: %w", err)
	}

	s.logger.InfoContext(ctx, "checkout payment method selected",
		slog.String("session_id", session.ID),
		slog.String("payment_method", method),
	)

	return session, nil
}

// Advance validates the current step and moves the wizard forward. A
// validation failure keeps the step unchanged.
func (s *CheckoutService) Advance(ctx context.Context, userID, sessionID string) (*domain.CheckoutSession, error) {
	session, err := s.activeSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	if err := s.validateStep(session); err != nil {
		return nil, err
	}

	session.AdvanceStep()

	if err := s.repo.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("advance checkout step: %w", err)
	}

	return session, nil
}

// Back moves the wizard one step backward. Going back always succeeds.
func (s *CheckoutService) Back(ctx context.Context, userID, sessionID string) (*domain.CheckoutSession, error) {
	session, err := s.activeSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	session.RetreatStep()

	if err := s.repo.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("retreat checkout step: %w", err)
	}

	return session, nil
}

// Submit confirms the order from the review step. The cart is cleared only
// after the order service reports success; any failure before that leaves
// the cart and the session intact so the user can retry, and every retry
// reuses the session's submission key so the order service can deduplicate.
func (s *CheckoutService) Submit(ctx context.Context, userID, sessionID string) (*SubmitOutput, error) {
	session, err := s.activeSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	if session.Step != domain.StepReview {
		return nil, apperrors.InvalidInput("checkout can only be submitted from the review step")
	}
	if err := s.validateShipping(session); err != nil {
		return nil, err
	}
	if err := validatePaymentSelection(session.Payment); err != nil {
		return nil, err
	}

	cart, err := s.cart.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, apperrors.InvalidInput("cart is empty")
	}

	// Authoritative totals for the submission.
	session.Totals = s.pricing.Quote(cart.Lines)

	switch session.Payment.Method {
	case domain.PaymentMethodRazorpay:
		return s.parkForGateway(ctx, session)

	case domain.PaymentMethodStoreWallet:
		return s.submitWithWallet(ctx, session, cart)

	default:
		// card, upi, external wallet, cod
		return s.submitDirect(ctx, session, cart)
	}
}

// ConfirmGatewayPayment completes a session parked in payment_pending. The
// proof must reference the session's gateway order and carry an authentic
// signature.
func (s *CheckoutService) ConfirmGatewayPayment(ctx context.Context, userID, sessionID string, proof gateway.PaymentProof) (*domain.CheckoutSession, error) {
	session, err := s.loadSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	if session.Status != domain.CheckoutStatusPaymentPending {
		return nil, apperrors.InvalidInput("checkout is not awaiting a gateway payment")
	}
	if proof.OrderID != session.GatewayOrderID {
		return nil, apperrors.InvalidInput("payment proof does not match the checkout's gateway order")
	}
	if !s.gateway.VerifySignature(proof) {
		// A forged or corrupted proof is terminal for the session; the user
		// must start a fresh checkout to pay again.
		session.Status = domain.CheckoutStatusFailed
		session.FailureReason = "payment signature verification failed"
		if err := s.repo.Update(ctx, session); err != nil {
			s.logger.ErrorContext(ctx, "failed to mark checkout failed",
				slog.String("session_id", session.ID),
				slog.String("error", err.Error()),
			)
		}
		if err := s.producer.PublishCheckoutFailed(ctx, session); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish checkout.failed event",
				slog.String("session_id", session.ID),
				slog.String("error", err.Error()),
			)
		}
		s.logger.WarnContext(ctx, "gateway payment signature verification failed",
			slog.String("session_id", session.ID),
			slog.String("gateway_order_id", proof.OrderID),
		)
		return nil, apperrors.PaymentFailed("payment signature verification failed")
	}

	cart, err := s.cart.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	// The gateway charged the totals parked at submit. The order must ship
	// exactly what was paid for, so a cart edited in between rejects.
	if cart.IsEmpty() {
		return nil, apperrors.Conflict("cart was emptied after the payment was authorized")
	}
	if quote := s.pricing.Quote(cart.Lines); quote.GrandTotal != session.Totals.GrandTotal {
		return nil, apperrors.Conflict("cart changed after the payment was authorized")
	}

	order, err := s.placeOrder(ctx, session, cart, &orderclient.PaymentProofRef{
		GatewayOrderID:   proof.OrderID,
		GatewayPaymentID: proof.PaymentID,
	})
	if err != nil {
		return nil, s.recordSubmissionFailure(ctx, session, err)
	}

	return s.completeSession(ctx, session, order.ID)
}

// parkForGateway registers a gateway order for the session total and moves
// the session to payment_pending until the widget's proof comes back.
func (s *CheckoutService) parkForGateway(ctx context.Context, session *domain.CheckoutSession) (*SubmitOutput, error) {
	order, err := s.gateway.CreateOrder(ctx, session.Totals.GrandTotal, defaultCurrency, session.SubmissionKey)
	if err != nil {
		return nil, fmt.Errorf("create gateway order: %w", err)
	}

	session.GatewayOrderID = order.ID
	session.Status = domain.CheckoutStatusPaymentPending

	if err := s.repo.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("park checkout for gateway payment: %w", err)
	}

	params := s.gateway.CheckoutParams(order)

	s.logger.InfoContext(ctx, "checkout awaiting gateway payment",
		slog.String("session_id", session.ID),
		slog.String("gateway_order_id", order.ID),
	)

	return &SubmitOutput{Session: session, GatewayCheckout: &params}, nil
}

// submitWithWallet debits the store wallet, then places the order. A failed
// order submission refunds the debit before surfacing the error.
func (s *CheckoutService) submitWithWallet(ctx context.Context, session *domain.CheckoutSession, cart *domain.Cart) (*SubmitOutput, error) {
	if _, err := s.wallet.Debit(ctx, session.UserID, session.Totals.GrandTotal, session.SubmissionKey); err != nil {
		return nil, err
	}

	order, err := s.placeOrder(ctx, session, cart, nil)
	if err != nil {
		// Compensate the debit. The refund shares the submission key so the
		// ledger pairs the two entries.
		if _, refundErr := s.wallet.Refund(ctx, session.UserID, session.Totals.GrandTotal, session.SubmissionKey); refundErr != nil {
			s.logger.ErrorContext(ctx, "failed to refund wallet after order submission failure",
				slog.String("session_id", session.ID),
				slog.String("error", refundErr.Error()),
			)
		}
		return nil, s.recordSubmissionFailure(ctx, session, err)
	}

	session, err = s.completeSession(ctx, session, order.ID)
	if err != nil {
		return nil, err
	}
	return &SubmitOutput{Session: session}, nil
}

// submitDirect charges card, UPI and external wallet payments through the
// provider, then places the order. Cash on delivery skips the charge. A
// failed order submission refunds the captured charge before surfacing the
// error, mirroring the store-wallet compensation.
func (s *CheckoutService) submitDirect(ctx context.Context, session *domain.CheckoutSession, cart *domain.Cart) (*SubmitOutput, error) {
	var charge *provider.ChargeResult
	if session.Payment.Method != domain.PaymentMethodCOD {
		result, err := s.charger.Charge(ctx, &provider.ChargeInput{
			Amount:    session.Totals.GrandTotal,
			Currency:  defaultCurrency,
			Method:    session.Payment.Method,
			Reference: session.SubmissionKey,
		})
		if err != nil {
			return nil, fmt.Errorf("charge payment: %w", err)
		}
		if result.Status != provider.ChargeSucceeded {
			return nil, apperrors.PaymentFailed("payment was declined: " + result.FailureReason)
		}
		charge = result
	}

	order, err := s.placeOrder(ctx, session, cart, nil)
	if err != nil {
		if charge != nil {
			// Compensate the captured charge so the customer is not left
			// paid-but-orderless. The refund carries the provider payment id
			// so the acquirer pairs the two.
			if _, refundErr := s.charger.Refund(ctx, &provider.RefundInput{
				ProviderPaymentID: charge.ProviderPaymentID,
				Amount:            session.Totals.GrandTotal,
				Currency:          defaultCurrency,
				Reason:            "order submission failed",
			}); refundErr != nil {
				s.logger.ErrorContext(ctx, "failed to refund charge after order submission failure",
					slog.String("session_id", session.ID),
					slog.String("provider_payment_id", charge.ProviderPaymentID),
					slog.String("error", refundErr.Error()),
				)
			}
		}
		return nil, s.recordSubmissionFailure(ctx, session, err)
	}

	session, err = s.completeSession(ctx, session, order.ID)
	if err != nil {
		return nil, err
	}
	return &SubmitOutput{Session: session}, nil
}

// placeOrder builds the immutable submission from the live cart and the
// session snapshot and sends it to the order service.
func (s *CheckoutService) placeOrder(ctx context.Context, session *domain.CheckoutSession, cart *domain.Cart, proof *orderclient.PaymentProofRef) (*orderclient.Order, error) {
	items := make([]orderclient.SubmissionItem, len(cart.Lines))
	for i, line := range cart.Lines {
		items[i] = orderclient.SubmissionItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
			ImageRef:  line.ImageRef,
		}
	}

	return s.orders.Create(ctx, &orderclient.Submission{
		SubmissionKey:   session.SubmissionKey,
		UserID:          session.UserID,
		Items:           items,
		ShippingAddress: session.ShippingAddress,
		PaymentMethod:   session.Payment.Method,
		Currency:        defaultCurrency,
		Subtotal:        session.Totals.Subtotal,
		ShippingFee:     session.Totals.ShippingFee,
		Tax:             session.Totals.Tax,
		GrandTotal:      session.Totals.GrandTotal,
		PaymentProof:    proof,
	})
}

// completeSession marks the session completed, clears the cart, and
// publishes the completion event.
func (s *CheckoutService) completeSession(ctx context.Context, session *domain.CheckoutSession, orderID string) (*domain.CheckoutSession, error) {
	session.OrderID = orderID
	session.Status = domain.CheckoutStatusCompleted
	session.FailureReason = ""

	if err := s.repo.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("complete checkout session: %w", err)
	}

	if err := s.cart.Clear(ctx, session.UserID); err != nil {
		// The order exists; a stale cart is recoverable. Log and continue.
		s.logger.ErrorContext(ctx, "failed to clear cart after order submission",
			slog.String("session_id", session.ID),
			slog.String("error", err.Error()),
		)
	}

	// Publish event; log but do not fail on error.
	if err := s.producer.PublishCheckoutCompleted(ctx, session); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish checkout.completed event",
			slog.String("session_id", session.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "checkout completed",
		slog.String("session_id", session.ID),
		slog.String("order_id", orderID),
		slog.Int64("grand_total", session.Totals.GrandTotal),
	)

	return session, nil
}

// recordSubmissionFailure notes the failure on the session without touching
// the cart or the wizard step, so the user can retry from where they were.
func (s *CheckoutService) recordSubmissionFailure(ctx context.Context, session *domain.CheckoutSession, cause error) error {
	session.FailureReason = cause.Error()

	if err := s.repo.Update(ctx, session); err != nil {
		s.logger.ErrorContext(ctx, "failed to record checkout submission failure",
			slog.String("session_id", session.ID),
			slog.String("error", err.Error()),
		)
	}

	// Publish event; log but do not fail on error.
	if err := s.producer.PublishCheckoutFailed(ctx, session); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish checkout.failed event",
			slog.String("session_id", session.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.WarnContext(ctx, "checkout submission failed",
		slog.String("session_id", session.ID),
		slog.String("reason", session.FailureReason),
	)

	return fmt.Errorf("submit order: %w", cause)
}

// loadSession fetches a session and verifies ownership and expiry. Expiry is
// recorded lazily on first access past the deadline.
func (s *CheckoutService) loadSession(ctx context.Context, userID, sessionID string) (*domain.CheckoutSession, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	session, err := s.repo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get checkout session: %w", err)
	}
	if session.UserID != userID {
		return nil, apperrors.NotFound("checkout session", sessionID)
	}

	if !session.IsTerminal() && session.IsExpired() {
		session.Status = domain.CheckoutStatusExpired
		if err := s.repo.Update(ctx, session); err != nil {
			return nil, fmt.Errorf("expire checkout session: %w", err)
		}
	}

	return session, nil
}

// activeSession loads a session and requires it to be active.
func (s *CheckoutService) activeSession(ctx context.Context, userID, sessionID string) (*domain.CheckoutSession, error) {
	session, err := s.loadSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	if session.Status == domain.CheckoutStatusExpired {
		return nil, apperrors.Gone("checkout session has expired")
	}
	if session.Status != domain.CheckoutStatusActive {
		return nil, apperrors.InvalidInput("checkout session is not active")
	}

	return session, nil
}

// refreshTotals re-derives the session totals from the live cart.
func (s *CheckoutService) refreshTotals(ctx context.Context, session *domain.CheckoutSession) error {
	cart, err := s.cart.Get(ctx, session.UserID)
	if err != nil {
		return err
	}

	session.Totals = s.pricing.Quote(cart.Lines)
	return nil
}

// validateStep runs the validator for the session's current step.
func (s *CheckoutService) validateStep(session *domain.CheckoutSession) error {
	switch session.Step {
	case domain.StepShipping:
		return s.validateShipping(session)
	case domain.StepPayment:
		return validatePaymentSelection(session.Payment)
	default:
		// The review step has no validator of its own.
		return nil
	}
}

// validateShipping requires a selected, fully populated address.
func (s *CheckoutService) validateShipping(session *domain.CheckoutSession) error {
	if session.SelectedAddressID == "" || session.ShippingAddress == nil {
		return apperrors.InvalidInput("a shipping address must be selected")
	}

	a := session.ShippingAddress
	if a.FirstName == "" || a.LastName == "" || a.Street == "" || a.City == "" ||
		a.State == "" || a.ZipCode == "" || a.Country == "" {
		return apperrors.InvalidInput("shipping address is missing required fields")
	}
	if !domain.IsValidIndianMobile(a.Phone) {
		return apperrors.InvalidInput("shipping address phone must be a valid 10-digit Indian mobile number")
	}
	if !domain.IsPlausibleEmail(a.Email) {
		return apperrors.InvalidInput("shipping address email is not valid")
	}

	return nil
}

// buildPaymentSelection validates the per-method detail fields and returns
// the non-sensitive selection to persist. Raw card data stays behind.
func buildPaymentSelection(method string, details *domain.PaymentDetails) (domain.PaymentSelection, error) {
	selection := domain.PaymentSelection{Method: method}

	switch method {
	case domain.PaymentMethodCard:
		number, ok := domain.NormalizeCardNumber(details.CardNumber)
		if !ok {
			return domain.PaymentSelection{}, apperrors.InvalidInput("card number must be 16 digits")
		}
		if details.CardExpiry == "" {
			return domain.PaymentSelection{}, apperrors.InvalidInput("card expiry is required")
		}
		if details.CardCVV == "" {
			return domain.PaymentSelection{}, apperrors.InvalidInput("card cvv is required")
		}
		if details.CardHolder == "" {
			return domain.PaymentSelection{}, apperrors.InvalidInput("card holder name is required")
		}
		selection.CardLast4 = number[len(number)-4:]
		selection.CardHolder = details.CardHolder

	case domain.PaymentMethodUPI:
		if details.UPIID == "" {
			return domain.PaymentSelection{}, apperrors.InvalidInput("upi id is required")
		}
		selection.UPIID = details.UPIID

	case domain.PaymentMethodWallet:
		if details.WalletProvider == "" {
			return domain.PaymentSelection{}, apperrors.InvalidInput("wallet provider is required")
		}
		selection.WalletProvider = details.WalletProvider
	}

	return selection, nil
}

// validatePaymentSelection checks a persisted selection is complete for its
// method.
func validatePaymentSelection(p domain.PaymentSelection) error {
	if p.Method == "" {
		return apperrors.InvalidInput("a payment method must be selected")
	}
	if !domain.IsValidPaymentMethod(p.Method) {
		return apperrors.InvalidInput("unsupported payment method: " + p.Method)
	}

	switch p.Method {
	case domain.PaymentMethodCard:
		if p.CardLast4 == "" || p.CardHolder == "" {
			return apperrors.InvalidInput("card details are incomplete")
		}
	case domain.PaymentMethodUPI:
		if p.UPIID == "" {
			return apperrors.InvalidInput("upi id is required")
		}
	case domain.PaymentMethodWallet:
		if p.WalletProvider == "" {
			return apperrors.InvalidInput("wallet provider is required")
		}
	}

	return nil
}
