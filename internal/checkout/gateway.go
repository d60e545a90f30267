package checkout

import (
	"context"

	"github.com/google/uuid"

	"github.com/maisonthread/storefront-backend/pkg/enums"
)

// AuthorizationRequest carries the charge attempt handed to the gateway.
type AuthorizationRequest struct {
	OrderID     uuid.UUID
	OrderNumber string
	UserID      uuid.UUID
	AmountCents int
	Method      enums.PaymentMethod
}

// AuthorizationResult reports the gateway's decision.
type AuthorizationResult struct {
	Authorized    bool
	DeclineReason string
	Reference     string
}

// PaymentGateway authorizes charges for placed orders. The default
// implementation settles synchronously; a real processor would not.
type PaymentGateway interface {
	Authorize(ctx context.Context, req AuthorizationRequest) (AuthorizationResult, error)
}

// StubGateway approves every charge. It stands in for an external processor
// so the payment state machine can run end to end.
type StubGateway struct{}

// Authorize always approves and echoes the order number as the reference.
func (StubGateway) Authorize(ctx context.Context, req AuthorizationRequest) (AuthorizationResult, error) {
	return AuthorizationResult{
		Authorized: true,
		Reference:  "stub-" + req.OrderNumber,
	}, nil
}
