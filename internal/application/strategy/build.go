package strategy

import (
	"context"
	"fmt"

	"github.com/cartwise/payments/internal/domain/errs"
	"github.com/cartwise/payments/internal/domain/model"
	"github.com/cartwise/payments/internal/gateway"
	"github.com/cartwise/payments/pkg/money"
)

// BuildAuthorizationRequest applies the shared population steps around the
// strategy's source-building hook. The cart itself is not mutated; a
// strategy's BuildSource may record state on the payment info, as SEPA does
// with the registered instrument.
func BuildAuthorizationRequest(ctx context.Context, deps Deps, s RequestStrategy, cart *model.Cart) (*gateway.PaymentRequest, error) {
	if cart == nil {
		return nil, errs.InvalidArgument("cart model cannot be null")
	}
	if cart.PaymentInfo() == nil {
		return nil, errs.InvalidArgument("payment info for cart %s cannot be null", cart.Code)
	}

	amount, err := money.MinorUnits(cart.CurrencyCode, cart.TotalPrice)
	if err != nil {
		return nil, errs.InvalidArgument("cart %s has invalid currency %q", cart.Code, cart.CurrencyCode)
	}

	source, err := s.BuildSource(ctx, cart)
	if err != nil {
		return nil, fmt.Errorf("building %s source for cart %s: %w", s.PaymentType(), cart.Code, err)
	}

	req := &gateway.PaymentRequest{
		Source:      source,
		Amount:      amount,
		Currency:    cart.CurrencyCode,
		Reference:   cart.Code,
		PaymentType: gateway.PaymentTypeRegular,
		Risk:        &gateway.Risk{},
		Capture:     s.Capture(cart),
		Customer:    customerFor(cart),
		Shipping:    shippingFor(cart),
		SuccessURL:  deps.Site.SuccessURL(cart.SiteID),
		FailureURL:  deps.Site.FailureURL(cart.SiteID),
		Items:       itemsFromCart(cart),
		Metadata:    baseMetadata(cart.SiteID, deps.BuildTag),
	}

	if d := s.ThreeDS(cart); d != nil {
		req.ThreeDS = &gateway.ThreeDS{Enabled: d.Enabled, AttemptN3D: d.AttemptN3D}
	}
	if channel := deps.Site.ProcessingChannelID(cart.SiteID); channel != "" {
		req.ProcessingChannelID = channel
	}
	if name, city, enabled := deps.Site.BillingDescriptor(cart.SiteID); enabled {
		req.BillingDescriptor = &gateway.BillingDescriptor{Name: name, City: city}
	}

	if c, ok := s.(RequestCustomizer); ok {
		if err := c.Customize(req, cart); err != nil {
			return nil, fmt.Errorf("customizing %s request for cart %s: %w", s.PaymentType(), cart.Code, err)
		}
	}

	return req, nil
}

func baseMetadata(siteID, buildTag string) map[string]string {
	return map[string]string{
		MetadataKeySite:  siteID,
		MetadataKeyBuild: buildTag,
	}
}

func customerFor(cart *model.Cart) *gateway.Customer {
	if cart.Customer == nil {
		return nil
	}
	return &gateway.Customer{
		Email: cart.Customer.Email,
		Name:  cart.Customer.Name,
	}
}

func shippingFor(cart *model.Cart) *gateway.Shipping {
	addr := cart.DeliveryAddress
	if addr == nil {
		return nil
	}
	return &gateway.Shipping{
		Address: wireAddress(addr),
		Phone:   addr.Phone,
	}
}

func wireAddress(a *model.Address) *gateway.Address {
	if a == nil {
		return nil
	}
	return &gateway.Address{
		AddressLine1: a.Line1,
		AddressLine2: a.Line2,
		City:         a.City,
		State:        a.State,
		Zip:          a.PostalCode,
		Country:      a.CountryCode,
	}
}

// itemsFromCart converts order lines to the L2/L3 breakdown. The breakdown is
// optional; carts without entries produce no items block.
func itemsFromCart(cart *model.Cart) []gateway.Item {
	if len(cart.Entries) == 0 {
		return nil
	}

	items := make([]gateway.Item, 0, len(cart.Entries)+1)
	for _, e := range cart.Entries {
		unit, err := money.MinorUnits(cart.CurrencyCode, e.UnitPrice)
		if err != nil {
			continue
		}
		tax, _ := money.MinorUnits(cart.CurrencyCode, e.TaxAmount)
		discount, _ := money.MinorUnits(cart.CurrencyCode, e.DiscountAmount)

		items = append(items, gateway.Item{
			Name:           e.ProductName,
			Quantity:       e.Quantity,
			UnitPrice:      unit,
			TotalAmount:    unit * e.Quantity,
			TaxAmount:      tax,
			DiscountAmount: discount,
		})
	}

	if cart.DeliveryCost.IsPositive() {
		shipping, err := money.MinorUnits(cart.CurrencyCode, cart.DeliveryCost)
		if err == nil {
			items = append(items, gateway.Item{
				Name:        "Shipping",
				Quantity:    1,
				UnitPrice:   shipping,
				TotalAmount: shipping,
			})
		}
	}

	return items
}
