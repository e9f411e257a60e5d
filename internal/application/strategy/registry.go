package strategy

import (
	"github.com/cartwise/payments/internal/domain/errs"
	"github.com/cartwise/payments/internal/domain/valueobject"
)

// Registry maps payment types to request strategies. It is populated fully at
// construction and read-only afterwards, so concurrent lookups need no
// locking.
type Registry struct {
	strategies map[valueobject.PaymentType]RequestStrategy
}

// NewRegistry builds a registry from the given strategies. Later entries for
// the same payment type overwrite earlier ones, so repeated registration is
// harmless.
func NewRegistry(strategies ...RequestStrategy) *Registry {
	r := &Registry{strategies: make(map[valueobject.PaymentType]RequestStrategy, len(strategies))}
	for _, s := range strategies {
		r.Register(s)
	}
	return r
}

// NewDefaultRegistry wires every supported payment type with its strategy.
func NewDefaultRegistry(deps Deps) *Registry {
	return NewRegistry(
		NewCardStrategy(deps),
		NewMadaStrategy(deps),
		NewApplePayStrategy(deps),
		NewGooglePayStrategy(deps),
		NewPayPalStrategy(deps),
		NewKlarnaStrategy(deps),
		NewSEPAStrategy(deps),
		NewACHStrategy(deps),
		NewMultibancoStrategy(deps),
		NewP24Strategy(deps),
		NewFawryStrategy(deps),
		NewQPayStrategy(deps),
		NewKnetStrategy(deps),
		NewBancontactStrategy(deps),
		NewAlipayStrategy(deps),
		NewBenefitPayStrategy(deps),
		NewUnsupportedStrategy(deps, valueobject.TypeOxxo),
		NewUnsupportedStrategy(deps, valueobject.TypePoli),
	)
}

// Register installs a strategy under its payment type, replacing any existing
// registration.
func (r *Registry) Register(s RequestStrategy) {
	r.strategies[s.PaymentType()] = s
}

// FindStrategy returns the strategy for the payment type.
func (r *Registry) FindStrategy(t valueobject.PaymentType) (RequestStrategy, error) {
	s, ok := r.strategies[t]
	if !ok {
		return nil, &errs.StrategyNotFoundError{PaymentType: t.String()}
	}
	return s, nil
}
