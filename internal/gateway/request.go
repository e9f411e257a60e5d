// Package gateway holds the request/response shapes exchanged with the
// payment gateway. The transport itself is external; these types only pin
// down the fields the orchestration core populates or reads.
package gateway

// Payment type sent on every authorization.
const PaymentTypeRegular = "Regular"

// Source source-type discriminators.
const (
	SourceToken      = "token"
	SourceID         = "id"
	SourceCardToken  = "card_token"
	SourcePayPal     = "paypal"
	SourceKlarna     = "klarna"
	SourceMultibanco = "multibanco"
	SourceP24        = "p24"
	SourceFawry      = "fawry"
	SourceQPay       = "qpay"
	SourceKnet       = "knet"
	SourceBancontact = "bancontact"
	SourceAlipay     = "alipay_plus"
	SourceBenefitPay = "benefitpay"
	SourceACH        = "ach"
	SourceSEPA       = "sepa"
)

// Address is the gateway-facing address payload.
type Address struct {
	AddressLine1 string `json:"address_line1,omitempty"`
	AddressLine2 string `json:"address_line2,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	Zip          string `json:"zip,omitempty"`
	Country      string `json:"country,omitempty"`
}

// Customer identifies the payer on a request.
type Customer struct {
	ID    string `json:"id,omitempty"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// Shipping carries the delivery address on an authorization.
type Shipping struct {
	Address *Address `json:"address,omitempty"`
	Phone   string   `json:"phone,omitempty"`
}

// ThreeDS controls 3-D Secure processing for card payments.
type ThreeDS struct {
	Enabled    bool `json:"enabled"`
	AttemptN3D bool `json:"attempt_n3d,omitempty"`
}

// Risk is the gateway risk-assessment block; the default (unset Enabled flag
// semantics are gateway-side) is sent on every request.
type Risk struct {
	Enabled bool `json:"enabled"`
}

// BillingDescriptor customizes the statement text for card payments.
type BillingDescriptor struct {
	Name string `json:"name"`
	City string `json:"city"`
}

// Product is one APM product line (Fawry requires at least one).
type Product struct {
	Description string `json:"description,omitempty"`
	Quantity    int64  `json:"quantity,omitempty"`
	Price       int64  `json:"price,omitempty"`
}

// Item is one L2/L3 line of the itemized order breakdown.
type Item struct {
	Name           string `json:"name,omitempty"`
	Quantity       int64  `json:"quantity,omitempty"`
	UnitPrice      int64  `json:"unit_price,omitempty"`
	TotalAmount    int64  `json:"total_amount,omitempty"`
	TaxAmount      int64  `json:"tax_amount,omitempty"`
	DiscountAmount int64  `json:"discount_amount,omitempty"`
}

// Source describes the funding source of an authorization. One flat struct
// covers every source type; strategies fill only the fields their type
// defines and Type discriminates on the wire.
type Source struct {
	Type string `json:"type"`

	// Token sources (cards, wallets).
	Token string `json:"token,omitempty"`
	// Stored-instrument sources (SEPA).
	ID string `json:"id,omitempty"`

	// Redirect APM fields.
	PaymentCountry    string    `json:"payment_country,omitempty"`
	AccountHolderName string    `json:"account_holder_name,omitempty"`
	BillingDescriptor string    `json:"billing_descriptor,omitempty"`
	Email             string    `json:"email,omitempty"`
	MobileNumber      string    `json:"mobile_number,omitempty"`
	Language          string    `json:"language,omitempty"`
	IntegrationType   string    `json:"integration_type,omitempty"`
	Products          []Product `json:"products,omitempty"`

	// Bank-account sources (ACH).
	AccountType   string `json:"account_type,omitempty"`
	AccountNumber string `json:"account_number,omitempty"`
	BankCode      string `json:"bank_code,omitempty"`
	CompanyName   string `json:"company_name,omitempty"`

	BillingAddress *Address `json:"billing_address,omitempty"`
	Phone          string   `json:"phone,omitempty"`
}

// PaymentRequest is a gateway authorization request. Built fresh per call,
// never persisted.
type PaymentRequest struct {
	Source              *Source            `json:"source"`
	Amount              int64              `json:"amount"`
	Currency            string             `json:"currency"`
	Reference           string             `json:"reference"`
	PaymentType         string             `json:"payment_type"`
	PaymentContextID    string             `json:"payment_context_id,omitempty"`
	Capture             *bool              `json:"capture,omitempty"`
	Customer            *Customer          `json:"customer,omitempty"`
	Shipping            *Shipping          `json:"shipping,omitempty"`
	ThreeDS             *ThreeDS           `json:"3ds,omitempty"`
	Risk                *Risk              `json:"risk,omitempty"`
	SuccessURL          string             `json:"success_url,omitempty"`
	FailureURL          string             `json:"failure_url,omitempty"`
	ProcessingChannelID string             `json:"processing_channel_id,omitempty"`
	BillingDescriptor   *BillingDescriptor `json:"billing_descriptor,omitempty"`
	Items               []Item             `json:"items,omitempty"`
	Metadata            map[string]string  `json:"metadata,omitempty"`
}

// CaptureRequest converts an authorization hold into a funds transfer.
type CaptureRequest struct {
	Amount    int64             `json:"amount"`
	Reference string            `json:"reference,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`

	// PaymentID routes the request; it is not part of the body.
	PaymentID string `json:"-"`
}

// VoidRequest cancels an uncaptured authorization of the given amount.
type VoidRequest struct {
	Amount    int64             `json:"amount,omitempty"`
	Reference string            `json:"reference,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`

	PaymentID string `json:"-"`
}

// RefundDestination is required by some APM refunds that cannot be reversed
// to the original source.
type RefundDestination struct {
	AccountType   string `json:"account_type,omitempty"`
	AccountNumber string `json:"account_number,omitempty"`
	BankCode      string `json:"bank_code,omitempty"`
	FirstName     string `json:"first_name,omitempty"`
	LastName      string `json:"last_name,omitempty"`
}

// RefundRequest returns captured funds to the customer.
type RefundRequest struct {
	Amount      int64              `json:"amount"`
	Reference   string             `json:"reference,omitempty"`
	Destination *RefundDestination `json:"destination,omitempty"`
	Metadata    map[string]string  `json:"metadata,omitempty"`

	PaymentID string `json:"-"`
}

// CreateInstrumentRequest registers a reusable funding instrument (SEPA
// mandate) ahead of authorization.
type CreateInstrumentRequest struct {
	Type           string          `json:"type"`
	InstrumentData *InstrumentData `json:"instrument_data"`
	AccountHolder  *AccountHolder  `json:"account_holder,omitempty"`
}

// InstrumentData is the funding-source detail of an instrument registration.
type InstrumentData struct {
	AccountNumber string `json:"account_number"` // IBAN for SEPA
	Country       string `json:"country,omitempty"`
	Currency      string `json:"currency,omitempty"`
	PaymentType   string `json:"payment_type,omitempty"`
	MandateID     string `json:"mandate_id,omitempty"`
}

// AccountHolder names the owner of the instrument.
type AccountHolder struct {
	FirstName      string   `json:"first_name,omitempty"`
	LastName       string   `json:"last_name,omitempty"`
	BillingAddress *Address `json:"billing_address,omitempty"`
}
