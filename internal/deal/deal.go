package deal

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("deal not found")

// Type is the commercial structure of a deal.
type Type string

const (
	TypeCash    Type = "CASH"
	TypeFinance Type = "FINANCE"
	TypeLease   Type = "LEASE"
)

// Customer is a buyer or co-buyer on a deal.
type Customer struct {
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	Address    string
	City       string
	State      string
	PostalCode string
}

// Vehicle is the unit being sold.
type Vehicle struct {
	VIN         string
	StockNumber string
	Year        int
	Make        string
	Model       string
	Trim        string
	Mileage     int
}

// Dealer is the selling rooftop.
type Dealer struct {
	Name          string
	LicenseNumber string
	Address       string
	City          string
	State         string
	PostalCode    string
}

// Snapshot is a point-in-time projection of a deal. It is built once per
// evaluation and never mutated afterwards.
type Snapshot struct {
	DealID       uuid.UUID
	OrgID        uuid.UUID
	DealNumber   string
	Jurisdiction string
	DealType     Type

	SalePrice        decimal.Decimal
	FinancedAmount   decimal.Decimal
	TaxAmount        decimal.Decimal
	FeesTotal        decimal.Decimal
	TradeInAllowance decimal.Decimal

	HasTradeIn        bool
	IsFinanced        bool
	HasLienholder     bool
	IsOutOfStateBuyer bool
	LienholderName    string

	Customer Customer
	CoBuyer  *Customer
	Vehicle  Vehicle
	Dealer   Dealer

	AsOf time.Time
}

// Fields projects the snapshot into the nested map used by rule predicates and
// template rendering. Keys are grouped under deal, customer, coBuyer, vehicle
// and dealer.
func (s Snapshot) Fields() map[string]any {
	d := map[string]any{
		"id":                s.DealID.String(),
		"dealNumber":        s.DealNumber,
		"jurisdiction":      s.Jurisdiction,
		"dealType":          string(s.DealType),
		"salePrice":         money(s.SalePrice),
		"financedAmount":    money(s.FinancedAmount),
		"taxAmount":         money(s.TaxAmount),
		"feesTotal":         money(s.FeesTotal),
		"tradeInAllowance":  money(s.TradeInAllowance),
		"totalPrice":        money(s.SalePrice.Add(s.TaxAmount).Add(s.FeesTotal).Sub(s.TradeInAllowance)),
		"hasTradeIn":        s.HasTradeIn,
		"isFinanced":        s.IsFinanced,
		"hasLienholder":     s.HasLienholder,
		"isOutOfStateBuyer": s.IsOutOfStateBuyer,
		"lienholderName":    s.LienholderName,
	}

	if !s.AsOf.IsZero() {
		d["date"] = s.AsOf.Format(time.DateOnly)
	}

	v := map[string]any{
		"vin":         s.Vehicle.VIN,
		"stockNumber": s.Vehicle.StockNumber,
		"make":        s.Vehicle.Make,
		"model":       s.Vehicle.Model,
		"trim":        s.Vehicle.Trim,
	}
	putInt(v, "year", s.Vehicle.Year)
	putInt(v, "mileage", s.Vehicle.Mileage)

	out := map[string]any{
		"deal":     d,
		"customer": customerFields(s.Customer),
		"vehicle":  v,
		"dealer": map[string]any{
			"name":          s.Dealer.Name,
			"licenseNumber": s.Dealer.LicenseNumber,
			"address":       s.Dealer.Address,
			"city":          s.Dealer.City,
			"state":         s.Dealer.State,
			"postalCode":    s.Dealer.PostalCode,
		},
	}

	if s.CoBuyer != nil {
		out["coBuyer"] = customerFields(*s.CoBuyer)
	}

	return out
}

func customerFields(c Customer) map[string]any {
	return map[string]any{
		"firstName":  c.FirstName,
		"lastName":   c.LastName,
		"fullName":   joinName(c.FirstName, c.LastName),
		"email":      c.Email,
		"phone":      c.Phone,
		"address":    c.Address,
		"city":       c.City,
		"state":      c.State,
		"postalCode": c.PostalCode,
	}
}

func joinName(first, last string) string {
	switch {
	case first == "":
		return last
	case last == "":
		return first
	}

	return first + " " + last
}

// money renders amounts with two decimals so that rendered documents and
// predicate comparisons see the same representation.
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func putInt(m map[string]any, key string, v int) {
	if v != 0 {
		m[key] = v
	}
}
