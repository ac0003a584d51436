package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/jmoiron/sqlx"

	"github.com/onzacore/distri-api/internal/models"
)

const orderColumns = `
	p.id, p.cliente_id, c.nombre_comercio, c.direccion, p.nombre_vendedor,
	p.estado, p.notas_entrega, p.fecha_creacion, p.fecha_actualizacion`

// orderItemRow is the storage shape of a line item. The domain model carries
// the id as a string so synthetic pre-save ids stay representable.
type orderItemRow struct {
	ID              int64   `db:"id"`
	OrderID         int64   `db:"pedido_id"`
	ProductID       int64   `db:"producto_id"`
	ProductName     string  `db:"nombre_producto"`
	Category        string  `db:"categoria"`
	SKU             string  `db:"codigo_sku"`
	Quantity        float64 `db:"cantidad"`
	FrozenUnitPrice float64 `db:"precio_congelado"`
	StockWarning    bool    `db:"aviso_faltante"`
}

func (r orderItemRow) toModel() models.OrderItem {
	return models.OrderItem{
		ID:              strconv.FormatInt(r.ID, 10),
		OrderID:         r.OrderID,
		ProductID:       r.ProductID,
		ProductName:     r.ProductName,
		Category:        r.Category,
		SKU:             r.SKU,
		Quantity:        r.Quantity,
		FrozenUnitPrice: r.FrozenUnitPrice,
		StockWarning:    r.StockWarning,
	}
}

// GetOrderByID retrieves an order with its line items
func (s *Store) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	err := s.db.GetContext(ctx, &order,
		`SELECT `+orderColumns+`
		 FROM pedidos p JOIN clientes c ON c.id = p.cliente_id
		 WHERE p.id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("order not found: %d", id)
	}
	if err != nil {
		return nil, err
	}

	items, err := s.GetOrderItems(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return &order, nil
}

// GetOrderItems retrieves all line items for an order, in persisted order
func (s *Store) GetOrderItems(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	var rows []orderItemRow
	err := s.db.SelectContext(ctx, &rows,
		"SELECT * FROM pedido_items WHERE pedido_id = $1 ORDER BY id", orderID)
	if err != nil {
		return nil, err
	}

	items := make([]models.OrderItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, r.toModel())
	}
	return items, nil
}

// ListOrders retrieves orders, newest first. Archived orders are included
// only when requested.
func (s *Store) ListOrders(ctx context.Context, includeArchived bool) ([]models.Order, error) {
	query := `SELECT ` + orderColumns + `
		FROM pedidos p JOIN clientes c ON c.id = p.cliente_id`
	if !includeArchived {
		query += fmt.Sprintf(" WHERE p.estado <> '%s'", models.StatusArchived)
	}
	query += " ORDER BY p.id DESC"

	var orders []models.Order
	err := s.db.SelectContext(ctx, &orders, query)
	return orders, err
}

// CreateOrder inserts a new order header
func (s *Store) CreateOrder(ctx context.Context, order *models.Order) error {
	query := `
		INSERT INTO pedidos (cliente_id, nombre_vendedor, estado, notas_entrega)
		VALUES ($1, $2, $3, $4)
		RETURNING id, fecha_creacion, fecha_actualizacion`

	return s.db.GetContext(ctx, order, query,
		order.ClientID, order.SellerName, order.Status, order.DeliveryNotes)
}

// UpdateOrderStatus updates the order status
func (s *Store) UpdateOrderStatus(ctx context.Context, orderID int64, status string) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE pedidos SET estado = $1, fecha_actualizacion = NOW() WHERE id = $2",
		status, orderID)
	return err
}

// UpdateOrderNotes updates the delivery notes
func (s *Store) UpdateOrderNotes(ctx context.Context, orderID int64, notes string) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE pedidos SET notas_entrega = $1, fecha_actualizacion = NOW() WHERE id = $2",
		notes, orderID)
	return err
}

// ReplaceOrderItems swaps the full line-item set of an order inside one
// transaction. Lines that survive the edit keep their frozen price and
// captured product name; lines for newly added products freeze the product's
// current price. The caller must have filtered out non-positive quantities.
func (s *Store) ReplaceOrderItems(ctx context.Context, orderID int64, items []models.SaveItem) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var existing []orderItemRow
	if err := tx.SelectContext(ctx, &existing,
		"SELECT * FROM pedido_items WHERE pedido_id = $1", orderID); err != nil {
		return fmt.Errorf("failed to load existing items: %w", err)
	}
	frozen := make(map[int64]orderItemRow, len(existing))
	for _, row := range existing {
		frozen[row.ProductID] = row
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM pedido_items WHERE pedido_id = $1", orderID); err != nil {
		return fmt.Errorf("failed to clear items: %w", err)
	}

	insert := `
		INSERT INTO pedido_items
			(pedido_id, producto_id, nombre_producto, categoria, codigo_sku, cantidad, precio_congelado, aviso_faltante)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	for _, item := range items {
		if prev, ok := frozen[item.ProductID]; ok {
			_, err = tx.ExecContext(ctx, insert,
				orderID, item.ProductID, prev.ProductName, prev.Category, prev.SKU,
				item.Quantity, prev.FrozenUnitPrice, prev.StockWarning)
			if err != nil {
				return fmt.Errorf("failed to insert item for product %d: %w", item.ProductID, err)
			}
			continue
		}

		var p models.Product
		err = tx.GetContext(ctx, &p, "SELECT * FROM productos WHERE id = $1", item.ProductID)
		if err == sql.ErrNoRows {
			return fmt.Errorf("product not found: %d", item.ProductID)
		}
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, insert,
			orderID, p.ID, p.Name, p.Category, p.SKU,
			item.Quantity, p.UnitPrice, p.OutOfStock())
		if err != nil {
			return fmt.Errorf("failed to insert item for product %d: %w", item.ProductID, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE pedidos SET fecha_actualizacion = NOW() WHERE id = $1", orderID); err != nil {
		return err
	}

	return tx.Commit()
}

// CombineOrders merges the source orders of one client into a new master
// order, inside one transaction. Quantities for products shared across the
// sources are summed; the frozen price comes from the earliest line. Source
// orders are archived, not deleted.
func (s *Store) CombineOrders(ctx context.Context, clientID int64, sellerName string, sourceIDs []int64) (int64, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var masterID int64
	err = tx.GetContext(ctx, &masterID,
		`INSERT INTO pedidos (cliente_id, nombre_vendedor, estado, notas_entrega)
		 VALUES ($1, $2, $3, '') RETURNING id`,
		clientID, sellerName, models.StatusPending)
	if err != nil {
		return 0, fmt.Errorf("failed to create master order: %w", err)
	}

	query, args, err := sqlx.In(`
		SELECT i.* FROM pedido_items i
		JOIN pedidos p ON p.id = i.pedido_id
		WHERE i.pedido_id IN (?)
		ORDER BY p.fecha_creacion, i.id`, sourceIDs)
	if err != nil {
		return 0, err
	}
	var rows []orderItemRow
	if err := tx.SelectContext(ctx, &rows, tx.Rebind(query), args...); err != nil {
		return 0, fmt.Errorf("failed to load source items: %w", err)
	}

	merged := make(map[int64]*orderItemRow)
	var productOrder []int64
	for i := range rows {
		row := rows[i]
		if prev, ok := merged[row.ProductID]; ok {
			prev.Quantity += row.Quantity
			continue
		}
		merged[row.ProductID] = &row
		productOrder = append(productOrder, row.ProductID)
	}

	insert := `
		INSERT INTO pedido_items
			(pedido_id, producto_id, nombre_producto, categoria, codigo_sku, cantidad, precio_congelado, aviso_faltante)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for _, pid := range productOrder {
		row := merged[pid]
		_, err = tx.ExecContext(ctx, insert,
			masterID, row.ProductID, row.ProductName, row.Category, row.SKU,
			row.Quantity, row.FrozenUnitPrice, row.StockWarning)
		if err != nil {
			return 0, fmt.Errorf("failed to insert merged item: %w", err)
		}
	}

	query, args, err = sqlx.In(
		"UPDATE pedidos SET estado = ?, fecha_actualizacion = NOW() WHERE id IN (?)",
		models.StatusArchived, sourceIDs)
	if err != nil {
		return 0, err
	}
	if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
		return 0, fmt.Errorf("failed to archive source orders: %w", err)
	}

	return masterID, tx.Commit()
}

// OrphanedItem is a line item whose product reference no longer resolves.
type OrphanedItem struct {
	ItemID      int64  `db:"id" json:"item_id"`
	OrderID     int64  `db:"pedido_id" json:"pedido_id"`
	ProductID   int64  `db:"producto_id" json:"producto_id"`
	ProductName string `db:"nombre_producto" json:"nombre_producto"`
}

// GetOrphanedItems lists line items across all orders whose producto_id no
// longer exists in the catalog.
func (s *Store) GetOrphanedItems(ctx context.Context) ([]OrphanedItem, error) {
	var orphans []OrphanedItem
	err := s.db.SelectContext(ctx, &orphans, `
		SELECT i.id, i.pedido_id, i.producto_id, i.nombre_producto
		FROM pedido_items i
		WHERE NOT EXISTS (SELECT 1 FROM productos p WHERE p.id = i.producto_id)
		ORDER BY i.pedido_id, i.id`)
	return orphans, err
}

// RelinkOrderItem points a line item at a new product id. Captured name and
// frozen price are left untouched on purpose.
func (s *Store) RelinkOrderItem(ctx context.Context, itemID, newProductID int64) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE pedido_items SET producto_id = $1 WHERE id = $2",
		newProductID, itemID)
	return err
}
