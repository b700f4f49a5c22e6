package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/dealdesk/internal/deal"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const snapshotQuery = `
	SELECT
		d.id, d.org_id, d.deal_number, d.jurisdiction, d.deal_type,
		d.sale_price, d.financed_amount, d.tax_amount, d.fees_total, d.trade_in_allowance,
		d.has_trade_in, d.is_financed, d.has_lienholder, COALESCE(d.lienholder_name, ''),
		COALESCE(c.first_name, ''), COALESCE(c.last_name, ''), COALESCE(c.email, ''), COALESCE(c.phone, ''),
		COALESCE(c.address, ''), COALESCE(c.city, ''), COALESCE(c.state, ''), COALESCE(c.postal_code, ''),
		cb.first_name, cb.last_name, cb.email, cb.phone,
		cb.address, cb.city, cb.state, cb.postal_code,
		COALESCE(v.vin, ''), COALESCE(v.stock_number, ''), COALESCE(v.year, 0), COALESCE(v.make, ''),
		COALESCE(v.model, ''), COALESCE(v.trim, ''), COALESCE(v.mileage, 0),
		COALESCE(dl.name, ''), COALESCE(dl.license_number, ''), COALESCE(dl.address, ''),
		COALESCE(dl.city, ''), COALESCE(dl.state, ''), COALESCE(dl.postal_code, '')
	FROM deals d
	LEFT JOIN customers c ON c.id = d.buyer_id
	LEFT JOIN customers cb ON cb.id = d.co_buyer_id
	LEFT JOIN vehicles v ON v.id = d.vehicle_id
	LEFT JOIN dealers dl ON dl.id = d.dealer_id
	WHERE d.id = $1 AND d.org_id = $2 AND d.deleted_at IS NULL`

func (s *Store) GetSnapshot(ctx context.Context, orgID, dealID uuid.UUID) (*deal.Snapshot, error) {
	var (
		snap     deal.Snapshot
		dealType string
		cb       [8]sql.NullString
	)

	err := s.db.QueryRowContext(ctx, snapshotQuery, dealID, orgID).Scan(
		&snap.DealID, &snap.OrgID, &snap.DealNumber, &snap.Jurisdiction, &dealType,
		&snap.SalePrice, &snap.FinancedAmount, &snap.TaxAmount, &snap.FeesTotal, &snap.TradeInAllowance,
		&snap.HasTradeIn, &snap.IsFinanced, &snap.HasLienholder, &snap.LienholderName,
		&snap.Customer.FirstName, &snap.Customer.LastName, &snap.Customer.Email, &snap.Customer.Phone,
		&snap.Customer.Address, &snap.Customer.City, &snap.Customer.State, &snap.Customer.PostalCode,
		&cb[0], &cb[1], &cb[2], &cb[3], &cb[4], &cb[5], &cb[6], &cb[7],
		&snap.Vehicle.VIN, &snap.Vehicle.StockNumber, &snap.Vehicle.Year, &snap.Vehicle.Make,
		&snap.Vehicle.Model, &snap.Vehicle.Trim, &snap.Vehicle.Mileage,
		&snap.Dealer.Name, &snap.Dealer.LicenseNumber, &snap.Dealer.Address,
		&snap.Dealer.City, &snap.Dealer.State, &snap.Dealer.PostalCode,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, deal.ErrNotFound
		}

		return nil, fmt.Errorf("getting deal snapshot: %w", err)
	}

	snap.DealType = deal.Type(dealType)

	if cb[0].Valid || cb[1].Valid {
		snap.CoBuyer = &deal.Customer{
			FirstName:  cb[0].String,
			LastName:   cb[1].String,
			Email:      cb[2].String,
			Phone:      cb[3].String,
			Address:    cb[4].String,
			City:       cb[5].String,
			State:      cb[6].String,
			PostalCode: cb[7].String,
		}
	}

	snap.IsOutOfStateBuyer = snap.Customer.State != "" && snap.Dealer.State != "" &&
		!strings.EqualFold(snap.Customer.State, snap.Dealer.State)

	return &snap, nil
}
