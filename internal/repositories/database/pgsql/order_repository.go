package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/kemasku/packshop_backend/internal/apperrors"
	"github.com/kemasku/packshop_backend/internal/core/domain"
	portsrepo "github.com/kemasku/packshop_backend/internal/core/ports/repositories"
	"github.com/kemasku/packshop_backend/internal/models"
	"github.com/kemasku/packshop_backend/internal/utils/invoice"
	"github.com/kemasku/packshop_backend/internal/utils/mapping"
	"github.com/kemasku/packshop_backend/internal/utils/pagination"
)

type PgxOrderRepository struct {
	BaseRepository
	inventoryRepo portsrepo.InventoryRepositoryFacade
}

// newPgxOrderRepository creates the repository for order aggregate data.
// The inventory repository is injected so material consumption can share
// the order's database transaction.
func newPgxOrderRepository(pool *pgxpool.Pool, inventoryRepo portsrepo.InventoryRepositoryFacade) portsrepo.OrderRepositoryWithTx {
	return &PgxOrderRepository{
		BaseRepository: BaseRepository{Pool: pool},
		inventoryRepo:  inventoryRepo,
	}
}

var _ portsrepo.OrderRepositoryWithTx = (*PgxOrderRepository)(nil)

const orderColumns = `order_id, invoice_number, customer_id, total_amount, total_paid, remaining_balance, payment_status, order_status, version, created_at, created_by, last_updated_at, last_updated_by`

// SaveOrder persists the aggregate in one transaction. The invoice number is
// assigned here, under an advisory lock keyed on the day prefix, so two
// concurrent creations can never take the same sequence value.
func (r *PgxOrderRepository) SaveOrder(ctx context.Context, order domain.Order) (*domain.Order, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	dayPrefix := invoice.DayPrefix(order.CreatedAt)
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1));`, dayPrefix); err != nil {
		return nil, fmt.Errorf("failed to acquire invoice sequence lock: %w", err)
	}

	var latest string
	err = tx.QueryRow(ctx,
		`SELECT COALESCE(MAX(invoice_number), '') FROM orders WHERE invoice_number LIKE $1;`,
		dayPrefix+"%",
	).Scan(&latest)
	if err != nil {
		return nil, fmt.Errorf("failed to read latest invoice number: %w", err)
	}

	order.InvoiceNumber, err = invoice.Next(latest, order.CreatedAt)
	if err != nil {
		return nil, err
	}

	modelOrder := mapping.ToModelOrder(order)
	_, err = tx.Exec(ctx, `
		INSERT INTO orders (`+orderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`,
		modelOrder.OrderID,
		modelOrder.InvoiceNumber,
		modelOrder.CustomerID,
		modelOrder.TotalAmount,
		modelOrder.TotalPaid,
		modelOrder.RemainingBalance,
		modelOrder.PaymentStatus,
		modelOrder.OrderStatus,
		modelOrder.Version,
		modelOrder.CreatedAt,
		modelOrder.CreatedBy,
		modelOrder.LastUpdatedAt,
		modelOrder.LastUpdatedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert order %s: %w", order.OrderID, err)
	}

	batch := &pgx.Batch{}
	itemQuery := `
		INSERT INTO order_items (order_id, line_no, product_name, packaging_type, packaging_size, price_per_unit, qty, subtotal, has_design, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	for i, item := range order.Items {
		m := mapping.ToModelOrderItem(order.OrderID, i+1, item)
		batch.Queue(itemQuery,
			m.OrderID, m.LineNo, m.ProductName, m.PackagingType, m.PackagingSize,
			m.PricePerUnit, m.Qty, m.Subtotal, m.HasDesign, m.Note,
		)
	}
	paymentQuery := `
		INSERT INTO payments (payment_id, order_id, amount, method, note, paid_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, p := range order.Payments {
		m := mapping.ToModelPayment(p)
		batch.Queue(paymentQuery, m.PaymentID, m.OrderID, m.Amount, m.Method, m.Note, m.PaidAt, m.CreatedBy)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return nil, fmt.Errorf("failed to insert order children for %s: %w", order.OrderID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &order, nil
}

// FindOrderByID retrieves an order with its items, payments and materials snapshot.
func (r *PgxOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	var m models.Order
	err := r.Pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_id = $1;`, orderID).Scan(
		&m.OrderID, &m.InvoiceNumber, &m.CustomerID, &m.TotalAmount, &m.TotalPaid,
		&m.RemainingBalance, &m.PaymentStatus, &m.OrderStatus, &m.Version,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find order by ID %s: %w", orderID, err)
	}

	order := mapping.ToDomainOrder(m)
	children, err := r.loadChildren(ctx, []string{orderID})
	if err != nil {
		return nil, err
	}
	children.attach(&order)
	return &order, nil
}

// ListOrders retrieves a token-paginated list of orders, newest first.
func (r *PgxOrderRepository) ListOrders(ctx context.Context, params portsrepo.ListOrdersParams) ([]domain.Order, *string, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + orderColumns + ` FROM orders WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if params.OrderStatus != nil {
		query += fmt.Sprintf(" AND order_status = $%d", argPos)
		args = append(args, string(*params.OrderStatus))
		argPos++
	}
	if params.CustomerID != nil {
		query += fmt.Sprintf(" AND customer_id = $%d", argPos)
		args = append(args, *params.CustomerID)
		argPos++
	}
	if params.NextToken != nil {
		fields, err := pagination.DecodeMultiFieldToken(*params.NextToken)
		if err != nil || len(fields) != 2 {
			return nil, nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		createdAt, err := time.Parse(time.RFC3339Nano, fields[0])
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		query += fmt.Sprintf(" AND (created_at, order_id) < ($%d, $%d)", argPos, argPos+1)
		args = append(args, createdAt, fields[1])
		argPos += 2
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC, order_id DESC LIMIT $%d;", argPos)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		var m models.Order
		if err := rows.Scan(
			&m.OrderID, &m.InvoiceNumber, &m.CustomerID, &m.TotalAmount, &m.TotalPaid,
			&m.RemainingBalance, &m.PaymentStatus, &m.OrderStatus, &m.Version,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, nil, fmt.Errorf("failed to scan order row: %w", err)
		}
		orders = append(orders, mapping.ToDomainOrder(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating order rows: %w", err)
	}

	var nextToken *string
	if len(orders) > limit {
		orders = orders[:limit]
		last := orders[len(orders)-1]
		token := pagination.EncodeMultiFieldToken(last.CreatedAt.Format(time.RFC3339Nano), last.OrderID)
		nextToken = &token
	}

	if len(orders) > 0 {
		ids := make([]string, 0, len(orders))
		for _, o := range orders {
			ids = append(ids, o.OrderID)
		}
		children, err := r.loadChildren(ctx, ids)
		if err != nil {
			return nil, nil, err
		}
		for i := range orders {
			children.attach(&orders[i])
		}
	}

	return orders, nextToken, nil
}

// AppendPayment persists one payment and the recomputed balance fields. The
// orders update is guarded by the aggregate version so concurrent payments
// against the same order serialize instead of double-spending the balance.
func (r *PgxOrderRepository) AppendPayment(ctx context.Context, order domain.Order, payment domain.Payment) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelPayment(payment)
	_, err = tx.Exec(ctx, `
		INSERT INTO payments (payment_id, order_id, amount, method, note, paid_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`, m.PaymentID, m.OrderID, m.Amount, m.Method, m.Note, m.PaidAt, m.CreatedBy)
	if err != nil {
		return fmt.Errorf("failed to insert payment %s: %w", payment.PaymentID, err)
	}

	ct, err := tx.Exec(ctx, `
		UPDATE orders
		SET total_paid = $2, remaining_balance = $3, payment_status = $4,
		    version = version + 1, last_updated_at = $5, last_updated_by = $6
		WHERE order_id = $1 AND version = $7;
	`,
		order.OrderID,
		order.TotalPaid,
		order.RemainingBalance,
		string(order.PaymentStatus),
		order.LastUpdatedAt,
		order.LastUpdatedBy,
		order.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update order balances for %s: %w", order.OrderID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: order %s was modified concurrently", apperrors.ErrConflict, order.OrderID)
	}

	return r.Commit(ctx, tx)
}

// UpdateOrderStatus moves an order between statuses with a compare-and-set on
// the current status.
func (r *PgxOrderRepository) UpdateOrderStatus(ctx context.Context, orderID string, from, to domain.OrderStatus, userID string, now time.Time) error {
	ct, err := r.Pool.Exec(ctx, `
		UPDATE orders
		SET order_status = $3, version = version + 1, last_updated_at = $4, last_updated_by = $5
		WHERE order_id = $1 AND order_status = $2;
	`, orderID, string(from), string(to), now, userID)
	if err != nil {
		return fmt.Errorf("failed to update status of order %s: %w", orderID, err)
	}
	if ct.RowsAffected() == 0 {
		var exists bool
		if err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE order_id = $1);`, orderID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check order %s existence: %w", orderID, err)
		}
		if !exists {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("%w: order %s left status %s concurrently", apperrors.ErrConflict, orderID, from)
	}
	return nil
}

// SaveProcessingStart applies the Production -> Processing transition as one
// atomic unit. The status CAS runs first so only one caller proceeds to touch
// inventory; the requested item rows are then locked, validated and deducted,
// with ledger entries and the materials snapshot written alongside.
func (r *PgxOrderRepository) SaveProcessingStart(ctx context.Context, order domain.Order, requests []domain.MaterialRequest, userID string, now time.Time) (*domain.Order, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	ct, err := tx.Exec(ctx, `
		UPDATE orders
		SET order_status = $2, version = version + 1, last_updated_at = $3, last_updated_by = $4
		WHERE order_id = $1 AND order_status = $5;
	`, order.OrderID, string(domain.StatusProcessing), now, userID, string(domain.StatusProduction))
	if err != nil {
		return nil, fmt.Errorf("failed to update status of order %s: %w", order.OrderID, err)
	}
	if ct.RowsAffected() == 0 {
		return nil, fmt.Errorf("%w: order %s is no longer in %s", apperrors.ErrConflict, order.OrderID, domain.StatusProduction)
	}

	itemIDs := make([]string, 0, len(requests))
	for _, req := range requests {
		itemIDs = append(itemIDs, req.InventoryItemID)
	}
	lockedItems, err := r.inventoryRepo.FindItemsByIDsForUpdate(ctx, tx, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to lock inventory items: %w", err)
	}

	changes := make(map[string]decimal.Decimal, len(requests))
	logEntries := make([]domain.InventoryLogEntry, 0, len(requests))
	snapshot := make([]domain.MaterialUsage, 0, len(requests))
	for _, req := range requests {
		item, ok := lockedItems[req.InventoryItemID]
		if !ok {
			return nil, fmt.Errorf("%w: inventory item %s", apperrors.ErrNotFound, req.InventoryItemID)
		}
		// Validates amount and available stock without persisting anything;
		// the real deduction happens in ApplyStockChangesInTx below.
		if err := item.ApplyAdjustment(domain.DirectionOut, req.Amount); err != nil {
			return nil, err
		}

		changes[req.InventoryItemID] = changes[req.InventoryItemID].Sub(req.Amount)
		logEntries = append(logEntries, domain.InventoryLogEntry{
			LogID:     uuid.NewString(),
			ItemID:    req.InventoryItemID,
			Direction: domain.DirectionOut,
			Amount:    req.Amount,
			Note:      "Produksi " + order.InvoiceNumber,
			CreatedAt: now,
			CreatedBy: userID,
		})
		snapshot = append(snapshot, domain.MaterialUsage{
			InventoryItemID: req.InventoryItemID,
			MaterialName:    item.Name,
			Amount:          req.Amount,
			Unit:            item.Unit,
		})
	}

	if err := r.inventoryRepo.ApplyStockChangesInTx(ctx, tx, changes, userID, now); err != nil {
		return nil, fmt.Errorf("failed to deduct inventory stock: %w", err)
	}
	if err := r.inventoryRepo.InsertLogEntriesInTx(ctx, tx, logEntries); err != nil {
		return nil, fmt.Errorf("failed to insert inventory log entries: %w", err)
	}

	if len(snapshot) > 0 {
		batch := &pgx.Batch{}
		materialQuery := `
			INSERT INTO order_materials (order_id, inventory_item_id, material_name, amount, unit)
			VALUES ($1, $2, $3, $4, $5);
		`
		for _, usage := range snapshot {
			batch.Queue(materialQuery, order.OrderID, usage.InventoryItemID, usage.MaterialName, usage.Amount, usage.Unit)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return nil, fmt.Errorf("failed to insert materials snapshot for order %s: %w", order.OrderID, err)
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	order.OrderStatus = domain.StatusProcessing
	order.MaterialsUsed = snapshot
	order.Version++
	order.LastUpdatedAt = now
	order.LastUpdatedBy = userID
	return &order, nil
}

// orderChildren holds the batched child rows for a set of orders.
type orderChildren struct {
	items     map[string][]domain.OrderItem
	payments  map[string][]domain.Payment
	materials map[string][]domain.MaterialUsage
}

func (c orderChildren) attach(order *domain.Order) {
	order.Items = c.items[order.OrderID]
	order.Payments = c.payments[order.OrderID]
	order.MaterialsUsed = c.materials[order.OrderID]
}

func (r *PgxOrderRepository) loadChildren(ctx context.Context, orderIDs []string) (orderChildren, error) {
	children := orderChildren{
		items:     make(map[string][]domain.OrderItem),
		payments:  make(map[string][]domain.Payment),
		materials: make(map[string][]domain.MaterialUsage),
	}

	rows, err := r.Pool.Query(ctx, `
		SELECT order_id, line_no, product_name, packaging_type, packaging_size, price_per_unit, qty, subtotal, has_design, note
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY order_id, line_no;
	`, orderIDs)
	if err != nil {
		return children, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var m models.OrderItem
		if err := rows.Scan(&m.OrderID, &m.LineNo, &m.ProductName, &m.PackagingType, &m.PackagingSize, &m.PricePerUnit, &m.Qty, &m.Subtotal, &m.HasDesign, &m.Note); err != nil {
			return children, fmt.Errorf("failed to scan order item row: %w", err)
		}
		children.items[m.OrderID] = append(children.items[m.OrderID], mapping.ToDomainOrderItem(m))
	}
	if err := rows.Err(); err != nil {
		return children, fmt.Errorf("error iterating order item rows: %w", err)
	}

	payRows, err := r.Pool.Query(ctx, `
		SELECT payment_id, order_id, amount, method, note, paid_at, created_by
		FROM payments
		WHERE order_id = ANY($1)
		ORDER BY order_id, paid_at, payment_id;
	`, orderIDs)
	if err != nil {
		return children, fmt.Errorf("failed to query payments: %w", err)
	}
	defer payRows.Close()
	for payRows.Next() {
		var m models.Payment
		if err := payRows.Scan(&m.PaymentID, &m.OrderID, &m.Amount, &m.Method, &m.Note, &m.PaidAt, &m.CreatedBy); err != nil {
			return children, fmt.Errorf("failed to scan payment row: %w", err)
		}
		children.payments[m.OrderID] = append(children.payments[m.OrderID], mapping.ToDomainPayment(m))
	}
	if err := payRows.Err(); err != nil {
		return children, fmt.Errorf("error iterating payment rows: %w", err)
	}

	matRows, err := r.Pool.Query(ctx, `
		SELECT order_id, inventory_item_id, material_name, amount, unit
		FROM order_materials
		WHERE order_id = ANY($1)
		ORDER BY order_id, material_name;
	`, orderIDs)
	if err != nil {
		return children, fmt.Errorf("failed to query order materials: %w", err)
	}
	defer matRows.Close()
	for matRows.Next() {
		var m models.OrderMaterial
		if err := matRows.Scan(&m.OrderID, &m.InventoryItemID, &m.MaterialName, &m.Amount, &m.Unit); err != nil {
			return children, fmt.Errorf("failed to scan order material row: %w", err)
		}
		children.materials[m.OrderID] = append(children.materials[m.OrderID], mapping.ToDomainMaterialUsage(m))
	}
	if err := matRows.Err(); err != nil {
		return children, fmt.Errorf("error iterating order material rows: %w", err)
	}

	return children, nil
}
