package adapters

import (
	"github.com/cartwise/payments/internal/domain/port"
	"github.com/cartwise/payments/internal/domain/valueobject"
)

// StaticAPMStore serves alternative-payment-method configuration from an
// in-memory map.
type StaticAPMStore struct {
	configs map[valueobject.PaymentType]port.APMConfig
}

// NewStaticAPMStore creates the store from the given records.
func NewStaticAPMStore(configs ...port.APMConfig) *StaticAPMStore {
	m := make(map[valueobject.PaymentType]port.APMConfig, len(configs))
	for _, c := range configs {
		m[c.Method] = c
	}
	return &StaticAPMStore{configs: m}
}

func (s *StaticAPMStore) Configuration(method valueobject.PaymentType) (port.APMConfig, bool) {
	cfg, ok := s.configs[method]
	return cfg, ok
}
