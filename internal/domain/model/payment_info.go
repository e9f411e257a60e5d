package model

// PaymentInfo describes the payment method a customer configured for a cart or
// order. It is a closed set of variants; the resolver maps each variant to its
// PaymentType exhaustively, so a new method is a compile-visible gap rather
// than a runtime type-assertion chain.
//
// A cart owns at most one PaymentInfo at a time. The gateway-assigned payment
// id is attached only after a definitive (non-cancelled) authorize response.
type PaymentInfo interface {
	// Code is the unique identifier of this payment-info record.
	InfoCode() string
	// GatewayPaymentID returns the gateway-assigned payment id, empty before
	// authorization.
	GatewayPaymentID() string
	// SetGatewayPaymentID attaches the gateway-assigned payment id.
	SetGatewayPaymentID(id string)
	// BillingAddress returns the billing address reference, possibly nil.
	BillingAddress() *Address
	// RequiresUserData reports whether the method needs additional user input
	// after a pending/redirect response.
	RequiresUserData() bool

	isPaymentInfo()
}

// InfoCommon holds the fields shared by every PaymentInfo variant.
type InfoCommon struct {
	Code      string
	Billing   *Address
	gatewayID string
}

func (c *InfoCommon) InfoCode() string              { return c.Code }
func (c *InfoCommon) GatewayPaymentID() string      { return c.gatewayID }
func (c *InfoCommon) SetGatewayPaymentID(id string) { c.gatewayID = id }
func (c *InfoCommon) BillingAddress() *Address      { return c.Billing }
func (c *InfoCommon) RequiresUserData() bool        { return false }
func (c *InfoCommon) isPaymentInfo()                {}

// CardPaymentInfo is a tokenized card. Mada cards are carried by the same
// variant; the resolver distinguishes them by BIN.
type CardPaymentInfo struct {
	InfoCommon
	Token       string
	BIN         string
	CardScheme  string
	SaveCard    bool // customer asked to store the card for reuse
	AutoCapture bool // merchant-level capture-on-authorize flag

	subscriptionID string
}

// SubscriptionID returns the gateway source id stored for saved cards.
func (c *CardPaymentInfo) SubscriptionID() string { return c.subscriptionID }

// SetSubscriptionID stores the gateway source id for a saved card.
func (c *CardPaymentInfo) SetSubscriptionID(id string) { c.subscriptionID = id }

// ApplePayPaymentInfo carries a decrypted-and-retokenized Apple Pay token.
type ApplePayPaymentInfo struct {
	InfoCommon
	Token string
}

// GooglePayPaymentInfo carries a retokenized Google Pay token.
type GooglePayPaymentInfo struct {
	InfoCommon
	Token string
}

// KlarnaPaymentInfo references a Klarna payment context created during the
// checkout session. Klarna authorizations are never auto-captured.
type KlarnaPaymentInfo struct {
	InfoCommon
	PaymentContextID string
	Deferred         bool
}

// SEPAPaymentInfo holds the IBAN and mandate data used to register a reusable
// gateway instrument before authorization.
type SEPAPaymentInfo struct {
	InfoCommon
	IBAN             string
	FirstName        string
	LastName         string
	MandateReference string
	Deferred         bool

	instrumentID string
	customerID   string
}

// InstrumentID returns the gateway instrument id once registration succeeded.
func (s *SEPAPaymentInfo) InstrumentID() string { return s.instrumentID }

// SetInstrument records the instrument registration result.
func (s *SEPAPaymentInfo) SetInstrument(instrumentID, customerID string) {
	s.instrumentID = instrumentID
	s.customerID = customerID
}

// CustomerID returns the gateway customer id returned by instrument
// registration, empty if none was assigned.
func (s *SEPAPaymentInfo) CustomerID() string { return s.customerID }

// ACHPaymentInfo is a direct bank-account descriptor for ACH debits.
type ACHPaymentInfo struct {
	InfoCommon
	AccountHolderName string
	AccountType       string // "Checking", "Savings", ...
	AccountNumber     string
	BankCode          string
	CompanyName       string // required for corporate account types
}

// FawryPaymentInfo carries the customer contact data Fawry requires.
type FawryPaymentInfo struct {
	InfoCommon
	MobileNumber string
	Email        string
}

// RequiresUserData is true for Fawry: the customer completes payment
// out-of-band with the reference number.
func (f *FawryPaymentInfo) RequiresUserData() bool { return true }

// APMPaymentInfo is the generic variant for redirect-style alternative
// methods (PayPal, P24, Bancontact, Alipay, QPay, Knet, BenefitPay,
// Multibanco, Oxxo, Poli). Method holds the payment-method name as selected
// at checkout.
type APMPaymentInfo struct {
	InfoCommon
	Method       string
	Deferred     bool
	UserDataNeed bool
}

func (a *APMPaymentInfo) RequiresUserData() bool { return a.UserDataNeed }
