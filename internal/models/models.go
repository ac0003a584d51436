package models

import (
	"strings"
	"time"
)

// Product represents a product in the live catalog. Wire names follow the
// panel API (Spanish field names).
type Product struct {
	ID        int64     `db:"id" json:"id"`
	SKU       string    `db:"codigo_sku" json:"codigo_sku"`
	Name      string    `db:"nombre" json:"nombre"`
	Category  string    `db:"categoria" json:"categoria"`
	UnitPrice float64   `db:"precio_unitario" json:"precio_unitario"`
	Stock     string    `db:"stock" json:"stock"`
	ImageURL  string    `db:"imagen_url" json:"imagen_url,omitempty"`
	CreatedAt time.Time `db:"fecha_creacion" json:"fecha_creacion"`
}

// OutOfStock reports whether the product is flagged unavailable. The catalog
// stores stock as a yes/no label, not a count.
func (p Product) OutOfStock() bool {
	return strings.EqualFold(strings.TrimSpace(p.Stock), "no")
}

// SyntheticIDPrefix marks line items added during an edit session that have
// not been persisted yet.
const SyntheticIDPrefix = "new_"

// OrderItem is one product-and-quantity line within an order. The unit price
// is frozen at order time and never follows later catalog price changes.
//
// ID is either the persisted row id rendered as a string, or a synthetic
// "new_"-prefixed id assigned when the line is added client-side before save.
type OrderItem struct {
	ID              string  `json:"id"`
	OrderID         int64   `json:"pedido_id,omitempty"`
	ProductID       int64   `json:"producto_id"`
	ProductName     string  `json:"nombre_producto"`
	Category        string  `json:"categoria"`
	SKU             string  `json:"codigo_sku,omitempty"`
	Quantity        float64 `json:"cantidad"`
	FrozenUnitPrice float64 `json:"precio_congelado"`
	StockWarning    bool    `json:"aviso_faltante"`
}

// Persisted reports whether the line item exists in storage, as opposed to
// having been added during the current edit session.
func (i OrderItem) Persisted() bool {
	return i.ID != "" && !strings.HasPrefix(i.ID, SyntheticIDPrefix)
}

// Subtotal is quantity times the frozen unit price.
func (i OrderItem) Subtotal() float64 {
	return i.Quantity * i.FrozenUnitPrice
}

// Order is a customer purchase request tracked through a status lifecycle.
type Order struct {
	ID            int64       `db:"id" json:"id"`
	ClientID      int64       `db:"cliente_id" json:"cliente_id"`
	ClientName    string      `db:"nombre_comercio" json:"nombre_comercio"`
	ClientAddress string      `db:"direccion" json:"direccion,omitempty"`
	SellerName    string      `db:"nombre_vendedor" json:"nombre_vendedor"`
	Status        string      `db:"estado" json:"estado"`
	DeliveryNotes string      `db:"notas_entrega" json:"notas_entrega"`
	CreatedAt     time.Time   `db:"fecha_creacion" json:"fecha_creacion"`
	UpdatedAt     time.Time   `db:"fecha_actualizacion" json:"fecha_actualizacion"`
	Items         []OrderItem `db:"-" json:"items,omitempty"`
}

// Order statuses. The happy path runs pendiente through entregado; cancelado
// and archivado are orthogonal and reachable from non-terminal states.
const (
	StatusPending          = "pendiente"
	StatusSeen             = "visto"
	StatusInPreparation    = "en_preparacion"
	StatusInvoiced         = "facturado"
	StatusReadyForDelivery = "listo_para_entrega"
	StatusDelivered        = "entregado"
	StatusCancelled        = "cancelado"
	StatusArchived         = "archivado"
)

// User roles.
const (
	RoleAdmin     = "admin"
	RoleWarehouse = "deposito"
	RoleSeller    = "vendedor"
)

// Client is a commerce the distributor sells to.
type Client struct {
	ID         int64     `db:"id" json:"id"`
	Name       string    `db:"nombre_comercio" json:"nombre_comercio"`
	Address    string    `db:"direccion" json:"direccion"`
	Phone      string    `db:"telefono" json:"telefono,omitempty"`
	SellerName string    `db:"nombre_vendedor" json:"nombre_vendedor,omitempty"`
	CreatedAt  time.Time `db:"fecha_creacion" json:"fecha_creacion"`
}

// Category is a product grouping label.
type Category struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"nombre" json:"nombre"`
}

// User is a panel account.
type User struct {
	ID           int64     `db:"id" json:"id"`
	Name         string    `db:"nombre" json:"nombre"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"rol" json:"rol"`
	CreatedAt    time.Time `db:"fecha_creacion" json:"fecha_creacion"`
}

// ActivityEntry is one row of the audit trail shown in the activity view.
type ActivityEntry struct {
	ID        int64     `db:"id" json:"id"`
	UserName  string    `db:"usuario" json:"usuario"`
	Action    string    `db:"accion" json:"accion"`
	Detail    string    `db:"detalle" json:"detalle"`
	CreatedAt time.Time `db:"fecha" json:"fecha"`
}
