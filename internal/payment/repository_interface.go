package payment

import (
	"context"

	"gymdesk/internal/subscription"
)

type Repository interface {
	// CreateWithSubscription stores the subscription and the payment that
	// bought it in one transaction.
	CreateWithSubscription(ctx context.Context, p *Payment, sub *subscription.Subscription) (*Receipt, error)
	ListByAthlete(ctx context.Context, athleteID, limit, offset int) ([]Payment, error)
}
