package service

import (
	"github.com/cartwise/payments/internal/domain/port"
	"github.com/cartwise/payments/internal/domain/valueobject"
)

// APMAvailability filters alternative payment methods by deployment
// configuration. It is a pure function over the APM configuration store and
// plays no part in transaction state.
type APMAvailability struct {
	store port.APMConfigStore
}

// NewAPMAvailability creates the availability filter.
func NewAPMAvailability(store port.APMConfigStore) *APMAvailability {
	return &APMAvailability{store: store}
}

// IsAvailable reports whether the method can be offered for the given
// delivery country and currency. A method without a configuration record is
// unavailable; empty allow-lists mean no restriction.
func (a *APMAvailability) IsAvailable(method valueobject.PaymentType, countryCode, currencyCode string) bool {
	cfg, ok := a.store.Configuration(method)
	if !ok || !cfg.Enabled {
		return false
	}
	if len(cfg.Countries) > 0 && !contains(cfg.Countries, countryCode) {
		return false
	}
	if len(cfg.Currencies) > 0 && !contains(cfg.Currencies, currencyCode) {
		return false
	}
	return true
}

// Available returns the subset of methods offerable for the country and
// currency.
func (a *APMAvailability) Available(methods []valueobject.PaymentType, countryCode, currencyCode string) []valueobject.PaymentType {
	var out []valueobject.PaymentType
	for _, m := range methods {
		if a.IsAvailable(m, countryCode, currencyCode) {
			out = append(out, m)
		}
	}
	return out
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
