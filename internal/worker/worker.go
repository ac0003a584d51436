package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/segmentio/kafka-go"

	"github.com/onzacore/distri-api/internal/broker"
	"github.com/onzacore/distri-api/internal/models"
	"github.com/onzacore/distri-api/internal/store"
)

// ActivityWorker consumes order events and writes the audit trail behind the
// panel's activity view.
type ActivityWorker struct {
	consumer *broker.Consumer
	store    *store.Store
}

// NewActivityWorker creates a new activity worker
func NewActivityWorker(consumer *broker.Consumer, store *store.Store) *ActivityWorker {
	return &ActivityWorker{consumer: consumer, store: store}
}

// Start starts the worker
func (w *ActivityWorker) Start(ctx context.Context) error {
	log.Println("Starting activity worker...")
	return w.consumer.StartConsuming(ctx, w.handleMessage)
}

// Stop stops the worker
func (w *ActivityWorker) Stop() error {
	log.Println("Stopping activity worker...")
	return w.consumer.Close()
}

func (w *ActivityWorker) handleMessage(ctx context.Context, msg kafka.Message) error {
	var base models.BaseEvent
	if err := json.Unmarshal(msg.Value, &base); err != nil {
		return fmt.Errorf("failed to unmarshal base event: %w", err)
	}

	entry := &models.ActivityEntry{
		UserName: base.UserName,
		Action:   base.EventType,
	}

	switch base.EventType {
	case models.EventTypeOrderItemsUpdated:
		var event models.OrderItemsUpdatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return err
		}
		entry.Detail = fmt.Sprintf("Items del pedido #%d actualizados (%d items, total $%.2f)",
			event.OrderID, len(event.Items), event.Total)

	case models.EventTypeOrderStatusChanged:
		var event models.OrderStatusChangedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return err
		}
		entry.Detail = fmt.Sprintf("Pedido #%d: %s -> %s",
			event.OrderID, event.FromStatus, event.ToStatus)

	case models.EventTypeOrderNotesUpdated:
		var event models.OrderNotesUpdatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return err
		}
		entry.Detail = fmt.Sprintf("Notas de entrega del pedido #%d actualizadas", event.OrderID)

	case models.EventTypeOrdersCombined:
		var event models.OrdersCombinedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return err
		}
		ids := make([]string, 0, len(event.SourceOrderIDs))
		for _, id := range event.SourceOrderIDs {
			ids = append(ids, fmt.Sprintf("#%d", id))
		}
		entry.Detail = fmt.Sprintf("Pedidos %s combinados en el pedido maestro #%d",
			strings.Join(ids, ", "), event.MasterOrderID)

	case models.EventTypeOrphansRelinked:
		var event models.OrphansRelinkedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return err
		}
		entry.Detail = fmt.Sprintf("%d items re-vinculados por diagnóstico", event.UpdatedCount)

	default:
		log.Printf("Unhandled event type: %s", base.EventType)
		return nil
	}

	return w.store.CreateActivityEntry(ctx, entry)
}
