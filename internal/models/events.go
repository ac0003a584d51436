package models

import "time"

// Event types published to the order events topic.
const (
	EventTypeOrderItemsUpdated  = "OrderItemsUpdated"
	EventTypeOrderStatusChanged = "OrderStatusChanged"
	EventTypeOrderNotesUpdated  = "OrderNotesUpdated"
	EventTypeOrdersCombined     = "OrdersCombined"
	EventTypeOrphansRelinked    = "OrphansRelinked"
)

// BaseEvent carries fields common to every event
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
	UserName  string    `json:"usuario,omitempty"`
}

// SaveItem is the wire shape for persisting one edited line item.
type SaveItem struct {
	ProductID int64   `json:"producto_id"`
	Quantity  float64 `json:"cantidad"`
}

// OrderItemsUpdatedEvent records a replace of an order's line items.
type OrderItemsUpdatedEvent struct {
	BaseEvent
	OrderID int64      `json:"pedido_id"`
	Items   []SaveItem `json:"items"`
	Total   float64    `json:"total"`
}

// OrderStatusChangedEvent records a status transition.
type OrderStatusChangedEvent struct {
	BaseEvent
	OrderID    int64  `json:"pedido_id"`
	FromStatus string `json:"estado_anterior"`
	ToStatus   string `json:"estado"`
}

// OrderNotesUpdatedEvent records a delivery-notes edit.
type OrderNotesUpdatedEvent struct {
	BaseEvent
	OrderID int64 `json:"pedido_id"`
}

// OrdersCombinedEvent records a merge of several orders into a new master.
type OrdersCombinedEvent struct {
	BaseEvent
	SourceOrderIDs []int64 `json:"pedido_ids"`
	MasterOrderID  int64   `json:"pedido_maestro_id"`
	ClientID       int64   `json:"cliente_id"`
}

// OrphansRelinkedEvent records a diagnostics fix run.
type OrphansRelinkedEvent struct {
	BaseEvent
	UpdatedCount int `json:"items_actualizados"`
}
