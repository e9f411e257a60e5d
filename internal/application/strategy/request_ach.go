package strategy

import (
	"context"
	"strings"

	"github.com/cartwise/payments/internal/domain/errs"
	"github.com/cartwise/payments/internal/domain/model"
	"github.com/cartwise/payments/internal/domain/valueobject"
	"github.com/cartwise/payments/internal/gateway"
)

// ACHStrategy builds direct bank-account debits. Corporate account types
// additionally require the company name.
type ACHStrategy struct {
	baseStrategy
}

func NewACHStrategy(deps Deps) *ACHStrategy {
	return &ACHStrategy{baseStrategy{deps: deps, ptype: valueobject.TypeACH}}
}

func (s *ACHStrategy) BuildSource(_ context.Context, cart *model.Cart) (*gateway.Source, error) {
	info, ok := cart.PaymentInfo().(*model.ACHPaymentInfo)
	if !ok {
		return nil, errs.InvalidArgument("cart %s payment info is not ach", cart.Code)
	}
	switch {
	case info.AccountHolderName == "":
		return nil, &errs.MissingFieldError{Field: "account holder name"}
	case info.AccountNumber == "":
		return nil, &errs.MissingFieldError{Field: "account number"}
	case info.BankCode == "":
		return nil, &errs.MissingFieldError{Field: "bank code"}
	}
	if isCorporateAccount(info.AccountType) && info.CompanyName == "" {
		return nil, &errs.MissingFieldError{Field: "company name"}
	}

	return &gateway.Source{
		Type:              gateway.SourceACH,
		AccountHolderName: info.AccountHolderName,
		AccountType:       info.AccountType,
		AccountNumber:     info.AccountNumber,
		BankCode:          info.BankCode,
		CompanyName:       info.CompanyName,
		BillingAddress:    wireAddress(info.BillingAddress()),
	}, nil
}

func isCorporateAccount(accountType string) bool {
	return strings.HasPrefix(strings.ToLower(accountType), "corp")
}
