// Package adapters provides in-process implementations of the outbound
// ports: static configuration stores and a stub gateway client for
// development and testing.
package adapters

// SiteRecord is the merchant configuration for one site.
type SiteRecord struct {
	SuccessURL               string
	FailureURL               string
	ProcessingChannelID      string
	DescriptorName           string
	DescriptorCity           string
	DescriptorEnabled        bool
	AutoCapture              bool
	ThreeDSEnabled           bool
	AttemptN3D               bool
	ReviewTransactionsAtRisk bool
}

// StaticSiteConfig serves per-site merchant configuration from an in-memory
// map. Sites without a record fall back to the default record.
type StaticSiteConfig struct {
	sites       map[string]SiteRecord
	defaultSite SiteRecord
}

// NewStaticSiteConfig creates the store. sites may be nil.
func NewStaticSiteConfig(sites map[string]SiteRecord, defaultSite SiteRecord) *StaticSiteConfig {
	if sites == nil {
		sites = make(map[string]SiteRecord)
	}
	return &StaticSiteConfig{sites: sites, defaultSite: defaultSite}
}

func (s *StaticSiteConfig) record(siteID string) SiteRecord {
	if r, ok := s.sites[siteID]; ok {
		return r
	}
	return s.defaultSite
}

func (s *StaticSiteConfig) SuccessURL(siteID string) string {
	return s.record(siteID).SuccessURL
}

func (s *StaticSiteConfig) FailureURL(siteID string) string {
	return s.record(siteID).FailureURL
}

func (s *StaticSiteConfig) ProcessingChannelID(siteID string) string {
	return s.record(siteID).ProcessingChannelID
}

func (s *StaticSiteConfig) BillingDescriptor(siteID string) (name, city string, enabled bool) {
	r := s.record(siteID)
	return r.DescriptorName, r.DescriptorCity, r.DescriptorEnabled
}

func (s *StaticSiteConfig) IsAutoCapture(siteID string) bool {
	return s.record(siteID).AutoCapture
}

func (s *StaticSiteConfig) IsThreeDSEnabled(siteID string) bool {
	return s.record(siteID).ThreeDSEnabled
}

func (s *StaticSiteConfig) IsAttemptN3D(siteID string) bool {
	return s.record(siteID).AttemptN3D
}

func (s *StaticSiteConfig) IsReviewTransactionsAtRisk(siteID string) bool {
	return s.record(siteID).ReviewTransactionsAtRisk
}
