package sale

import (
	"context"
	"database/sql"
	"fmt"
)

const RecentLimit = 50

type Repository interface {
	Create(ctx context.Context, s *Sale) error
	ListRecent(ctx context.Context, limit int) ([]Summary, error)
	Today(ctx context.Context) (TodayStats, error)
}

type repo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repo{db: db}
}

// Create stores the sale and its items in one transaction and fills in ID and SaleDate.
func (r *repo) Create(ctx context.Context, s *Sale) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx,
		`INSERT INTO sales (customer_name, payment_method, total_amount, discount, final_amount)
         VALUES ($1, $2, $3, $4, $5)
         RETURNING id, sale_date`,
		s.CustomerName, s.PaymentMethod, s.TotalAmount, s.Discount, s.FinalAmount,
	).Scan(&s.ID, &s.SaleDate)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}

	for _, it := range s.Items {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO sale_items (sale_id, product_id, product_name, quantity, price, subtotal)
             VALUES ($1, $2, $3, $4, $5, $6)`,
			s.ID, it.ProductID, it.ProductName, it.Quantity, it.Price, it.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("insert sale_item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *repo) ListRecent(ctx context.Context, limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = RecentLimit
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			s.id, s.customer_name, s.payment_method, s.total_amount, s.discount, s.final_amount, s.sale_date,
			COALESCE(string_agg(si.product_name || ' (' || si.quantity || 'x)', ', ' ORDER BY si.id), '') AS items
		FROM sales s
		LEFT JOIN sale_items si ON si.sale_id = s.id
		GROUP BY s.id
		ORDER BY s.sale_date DESC, s.id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("select sales: %w", err)
	}
	defer rows.Close()

	sales := []Summary{}
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.ID, &s.CustomerName, &s.PaymentMethod, &s.TotalAmount, &s.Discount, &s.FinalAmount, &s.SaleDate, &s.Items); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		sales = append(sales, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return sales, nil
}

// Today aggregates sales dated on the database's current day. Empty days report zeros.
func (r *repo) Today(ctx context.Context) (TodayStats, error) {
	var st TodayStats
	err := r.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(final_amount), 0),
			COALESCE(AVG(final_amount), 0)
		FROM sales
		WHERE sale_date::date = CURRENT_DATE
	`).Scan(&st.TotalSales, &st.TotalRevenue, &st.AverageSale)
	if err != nil {
		return TodayStats{}, fmt.Errorf("select today stats: %w", err)
	}
	return st, nil
}
