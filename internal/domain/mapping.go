package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Mapping performs format normalization only: status strings are upper-cased
// into the enumerated sets, decimal strings are parsed to fixed-point values,
// missing SKUs are synthesized, and tag strings are split and cleaned. No
// business validation happens here; a malformed field aborts the record's
// batch with a ValidationError.

// NormalizeTags splits a comma-separated tag string, trims whitespace, drops
// blanks and collapses duplicates while preserving first-seen order.
func NormalizeTags(raw string) []string {
	if raw == "" {
		return nil
	}
	seen := make(map[string]struct{})
	var names []string
	for _, part := range strings.Split(raw, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

// FallbackSKU derives the deterministic SKU used when the upstream omits one.
func FallbackSKU(productID, variantID int64) string {
	return fmt.Sprintf("fallback-sku-%d-%d", productID, variantID)
}

func tagSet(tenantID, raw string) []Tag {
	names := NormalizeTags(raw)
	if len(names) == 0 {
		return nil
	}
	tags := make([]Tag, 0, len(names))
	for _, name := range names {
		tags = append(tags, Tag{TenantID: tenantID, Name: name})
	}
	return tags
}

func parseAmount(resource ResourceType, field, raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, &ValidationError{Resource: resource, Field: field, Reason: fmt.Sprintf("cannot parse %q as a decimal amount", raw)}
	}
	return d, nil
}

func parseOptionalAmount(resource ResourceType, field, raw string) (*decimal.Decimal, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := parseAmount(resource, field, raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func timeOrNow(t *time.Time) time.Time {
	if t != nil {
		return *t
	}
	return time.Now().UTC()
}

// MapProduct normalizes an upstream product into the persistable graph.
func MapProduct(tenantID string, in UpstreamProduct) (Product, error) {
	p := Product{
		ID:          in.ID,
		TenantID:    tenantID,
		Title:       in.Title,
		Handle:      in.Handle,
		BodyHTML:    in.BodyHTML,
		Vendor:      in.Vendor,
		ProductType: in.ProductType,
		Status:      ProductStatus(strings.ToUpper(in.Status)),
		CreatedAt:   timeOrNow(in.CreatedAt),
		UpdatedAt:   timeOrNow(in.UpdatedAt),
		PublishedAt: in.PublishedAt,
		Tags:        tagSet(tenantID, in.Tags),
	}

	for _, v := range in.Variants {
		sku := v.SKU
		if sku == "" {
			sku = FallbackSKU(in.ID, v.ID)
		}
		price, err := parseAmount(ResourceProducts, "variants.price", v.Price)
		if err != nil {
			return Product{}, err
		}
		compareAt, err := parseOptionalAmount(ResourceProducts, "variants.compare_at_price", v.CompareAtPrice)
		if err != nil {
			return Product{}, err
		}
		p.Variants = append(p.Variants, ProductVariant{
			ID:                v.ID,
			ProductID:         in.ID,
			Title:             v.Title,
			SKU:               sku,
			Price:             price,
			CompareAtPrice:    compareAt,
			Position:          v.Position,
			InventoryPolicy:   strings.ToUpper(v.InventoryPolicy),
			InventoryQuantity: v.InventoryQuantity,
			RequiresShipping:  v.RequiresShipping,
			Taxable:           v.Taxable,
			Barcode:           v.Barcode,
			Weight:            v.Weight,
			WeightUnit:        v.WeightUnit,
		})
	}

	for _, img := range in.Images {
		p.Images = append(p.Images, ProductImage{
			ID:        img.ID,
			ProductID: in.ID,
			Src:       img.Src,
			AltText:   img.Alt,
			Width:     img.Width,
			Height:    img.Height,
			Position:  img.Position,
		})
	}

	for _, opt := range in.Options {
		p.Options = append(p.Options, ProductOption{
			ID:        opt.ID,
			ProductID: in.ID,
			Name:      opt.Name,
			Position:  opt.Position,
			Values:    opt.Values,
		})
	}

	return p, nil
}

// MapCustomer normalizes an upstream customer into the persistable graph.
func MapCustomer(tenantID string, in UpstreamCustomer) (Customer, error) {
	totalSpent, err := parseAmount(ResourceCustomers, "total_spent", in.TotalSpent)
	if err != nil {
		return Customer{}, err
	}

	c := Customer{
		ID:            in.ID,
		TenantID:      tenantID,
		Email:         in.Email,
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		Phone:         in.Phone,
		OrdersCount:   in.OrdersCount,
		State:         CustomerState(strings.ToUpper(in.State)),
		TotalSpent:    totalSpent,
		Note:          in.Note,
		VerifiedEmail: in.VerifiedEmail,
		TaxExempt:     in.TaxExempt,
		Currency:      in.Currency,
		CreatedAt:     timeOrNow(in.CreatedAt),
		UpdatedAt:     timeOrNow(in.UpdatedAt),
		Tags:          tagSet(tenantID, in.Tags),

		EmailMarketingState: MarketingStateNotSubscribed,
		SMSMarketingState:   MarketingStateNotSubscribed,
	}

	if consent := in.EmailMarketingConsent; consent != nil {
		if consent.State != "" {
			c.EmailMarketingState = MarketingState(strings.ToUpper(consent.State))
		}
		c.EmailMarketingOptInLevel = strings.ToUpper(consent.OptInLevel)
		c.EmailMarketingConsentUpdatedAt = consent.ConsentUpdatedAt
	}
	if consent := in.SMSMarketingConsent; consent != nil {
		if consent.State != "" {
			c.SMSMarketingState = MarketingState(strings.ToUpper(consent.State))
		}
		c.SMSMarketingOptInLevel = strings.ToUpper(consent.OptInLevel)
		c.SMSMarketingConsentUpdatedAt = consent.ConsentUpdatedAt
	}

	var defaultAddressID int64
	if in.DefaultAddress != nil {
		defaultAddressID = in.DefaultAddress.ID
	}
	for _, addr := range in.Addresses {
		c.Addresses = append(c.Addresses, CustomerAddress{
			ID:          addr.ID,
			CustomerID:  in.ID,
			Address1:    addr.Address1,
			Address2:    addr.Address2,
			City:        addr.City,
			Province:    addr.Province,
			Country:     addr.Country,
			Zip:         addr.Zip,
			Phone:       addr.Phone,
			Company:     addr.Company,
			CountryCode: addr.CountryCode,
			IsDefault:   addr.ID == defaultAddressID,
		})
	}

	return c, nil
}

// MapOrder normalizes an upstream order into the persistable record.
func MapOrder(tenantID string, in UpstreamOrder) (Order, error) {
	o := Order{
		ID:             in.ID,
		TenantID:       tenantID,
		Name:           in.Name,
		OrderNumber:    in.OrderNumber,
		Email:          in.Email,
		Phone:          in.Phone,
		Currency:       in.Currency,
		CreatedAt:      timeOrNow(in.CreatedAt),
		UpdatedAt:      timeOrNow(in.UpdatedAt),
		ProcessedAt:    in.ProcessedAt,
		CancelledAt:    in.CancelledAt,
		CancelReason:   in.CancelReason,
		Note:           in.Note,
		Token:          in.Token,
		OrderStatusURL: in.OrderStatusURL,
		Tags:           tagSet(tenantID, in.Tags),
	}

	// Both statuses are nullable upstream; absent stays empty.
	o.FinancialStatus = OrderFinancialStatus(strings.ToUpper(in.FinancialStatus))
	o.FulfillmentStatus = OrderFulfillmentStatus(strings.ToUpper(in.FulfillmentStatus))

	amounts := []struct {
		field string
		raw   string
		dst   *decimal.Decimal
	}{
		{"subtotal_price", in.SubtotalPrice, &o.SubtotalPrice},
		{"total_tax", in.TotalTax, &o.TotalTax},
		{"total_discounts", in.TotalDiscounts, &o.TotalDiscounts},
		{"total_line_items_price", in.TotalLineItemsPrice, &o.TotalLineItemsPrice},
		{"total_price", in.TotalPrice, &o.TotalPrice},
	}
	for _, a := range amounts {
		d, err := parseAmount(ResourceOrders, a.field, a.raw)
		if err != nil {
			return Order{}, err
		}
		*a.dst = d
	}

	if in.Customer != nil {
		customerID := in.Customer.ID
		o.CustomerID = &customerID
	}

	for _, li := range in.LineItems {
		price, err := parseAmount(ResourceOrders, "line_items.price", li.Price)
		if err != nil {
			return Order{}, err
		}
		o.LineItems = append(o.LineItems, OrderLineItem{
			ID:        li.ID,
			OrderID:   in.ID,
			TenantID:  tenantID,
			ProductID: li.ProductID,
			VariantID: li.VariantID,
			Title:     li.Title,
			SKU:       li.SKU,
			Quantity:  li.Quantity,
			Price:     price,
		})
	}

	return o, nil
}
