package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"sales-pulse/db"
	"sales-pulse/models"
	"sales-pulse/ordermatrix"
)

// OrderRepository handles database operations for order forms
type OrderRepository struct {
	logger *logrus.Entry
}

// NewOrderRepository creates a new OrderRepository
func NewOrderRepository(logger *logrus.Entry) *OrderRepository {
	return &OrderRepository{logger: logger}
}

// Ensure OrderRepository implements OrderRepositoryInterface
var _ OrderRepositoryInterface = (*OrderRepository)(nil)

const queryOrderMaster = `
		SELECT
			o.id::text,
			to_char(o.date, 'DD-MM-YYYY'),
			COALESCE(c.name, ''),
			COALESCE(c.address, ''),
			COALESCE(c.phone, ''),
			COALESCE(o.remarks, ''),
			COALESCE(u.name, '')
		FROM orders o
		LEFT JOIN contacts c ON c.id = o.contact_id
		LEFT JOIN users u ON u.id = o.created_by
		WHERE o.id::text = $1
	`

const queryOrderDetails = `
		SELECT
			b.name,
			d.style,
			d.size,
			d.qty::text
		FROM order_details d
		LEFT JOIN brands b ON b.id = d.brand_id
		WHERE d.order_id::text = $1
		ORDER BY d.id ASC
	`

// GetOrderForm loads the order header and its raw lines.
// Lines are returned as records so that dirty rows reach the normalizer untouched.
func (r *OrderRepository) GetOrderForm(ctx context.Context, orderID string) (*models.OrderForm, error) {
	r.logger.WithField("order_id", orderID).Debug("🔍 GetOrderForm: fetching order")

	var master models.OrderMaster
	err := db.DB.QueryRowContext(ctx, queryOrderMaster, orderID).Scan(
		&master.ID,
		&master.Date,
		&master.Contact,
		&master.Address,
		&master.Phone,
		&master.Remarks,
		&master.User,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: id=%s", ErrOrderNotFound, orderID)
		}
		r.logger.WithError(err).Error("❌ GetOrderForm: error fetching order master")
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}

	rows, err := db.DB.QueryContext(ctx, queryOrderDetails, orderID)
	if err != nil {
		r.logger.WithError(err).Error("❌ GetOrderForm: error querying order details")
		return nil, fmt.Errorf("failed to query order details: %w", err)
	}
	defer rows.Close()

	items := make([]ordermatrix.Record, 0)
	for rows.Next() {
		var brand, style, size, qty sql.NullString
		if err := rows.Scan(&brand, &style, &size, &qty); err != nil {
			r.logger.WithError(err).Warn("⚠️  GetOrderForm: skipping unreadable order detail")
			continue
		}
		items = append(items, ordermatrix.Record{
			"brand":    nullable(brand),
			"style":    nullable(style),
			"size":     nullable(size),
			"quantity": nullable(qty),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate order details: %w", err)
	}

	r.logger.WithFields(logrus.Fields{"order_id": orderID, "lines": len(items)}).Info("✓ GetOrderForm: order loaded")
	return &models.OrderForm{Header: master.Header(), Items: items}, nil
}

func nullable(s sql.NullString) any {
	if !s.Valid {
		return nil
	}
	return s.String
}
