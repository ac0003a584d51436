package broker

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/onzacore/distri-api/internal/models"
)

// EventPublisher handles publishing order domain events
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

func newBaseEvent(eventType, userName string) models.BaseEvent {
	return models.BaseEvent{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Timestamp: time.Now(),
		UserName:  userName,
	}
}

func orderKey(orderID int64) string {
	return fmt.Sprintf("order-%d", orderID)
}

// PublishOrderItemsUpdated publishes an OrderItemsUpdated event
func (ep *EventPublisher) PublishOrderItemsUpdated(ctx context.Context, userName string, orderID int64, items []models.SaveItem, total float64) error {
	event := &models.OrderItemsUpdatedEvent{
		BaseEvent: newBaseEvent(models.EventTypeOrderItemsUpdated, userName),
		OrderID:   orderID,
		Items:     items,
		Total:     total,
	}
	return ep.producer.PublishEvent(ctx, orderKey(orderID), event)
}

// PublishOrderStatusChanged publishes an OrderStatusChanged event
func (ep *EventPublisher) PublishOrderStatusChanged(ctx context.Context, userName string, orderID int64, from, to string) error {
	event := &models.OrderStatusChangedEvent{
		BaseEvent:  newBaseEvent(models.EventTypeOrderStatusChanged, userName),
		OrderID:    orderID,
		FromStatus: from,
		ToStatus:   to,
	}
	return ep.producer.PublishEvent(ctx, orderKey(orderID), event)
}

// PublishOrderNotesUpdated publishes an OrderNotesUpdated event
func (ep *EventPublisher) PublishOrderNotesUpdated(ctx context.Context, userName string, orderID int64) error {
	event := &models.OrderNotesUpdatedEvent{
		BaseEvent: newBaseEvent(models.EventTypeOrderNotesUpdated, userName),
		OrderID:   orderID,
	}
	return ep.producer.PublishEvent(ctx, orderKey(orderID), event)
}

// PublishOrdersCombined publishes an OrdersCombined event
func (ep *EventPublisher) PublishOrdersCombined(ctx context.Context, userName string, sourceIDs []int64, masterID, clientID int64) error {
	event := &models.OrdersCombinedEvent{
		BaseEvent:      newBaseEvent(models.EventTypeOrdersCombined, userName),
		SourceOrderIDs: sourceIDs,
		MasterOrderID:  masterID,
		ClientID:       clientID,
	}
	return ep.producer.PublishEvent(ctx, orderKey(masterID), event)
}

// PublishOrphansRelinked publishes an OrphansRelinked event
func (ep *EventPublisher) PublishOrphansRelinked(ctx context.Context, userName string, updatedCount int) error {
	event := &models.OrphansRelinkedEvent{
		BaseEvent:    newBaseEvent(models.EventTypeOrphansRelinked, userName),
		UpdatedCount: updatedCount,
	}
	return ep.producer.PublishEvent(ctx, "diagnostics", event)
}
