package domain

import (
	"encoding/json"
	"time"
)

const (
	TopicOrderEvents = "order_events"

	EventOrderCreated = "OrderCreated"
	EventOrderDeleted = "OrderDeleted"
)

// EventEnvelope is the message written to Kafka by the outbox worker.
// EventID is the outbox row id and is used by consumers for deduplication.
type EventEnvelope struct {
	Event   string          `json:"event"`
	EventID int64           `json:"event_id"`
	Payload json.RawMessage `json:"payload"`
}

type OrderedItem struct {
	ProductID int64 `json:"product_id"`
	Quantity  int32 `json:"quantity"`
}

type OrderCreatedEvent struct {
	OrderID    int64         `json:"order_id"`
	CustomerID int64         `json:"customer_id"`
	OrderDate  time.Time     `json:"order_date"`
	Items      []OrderedItem `json:"items"`
}

type OrderDeletedEvent struct {
	OrderID    int64 `json:"order_id"`
	CustomerID int64 `json:"customer_id"`
}

func (e OrderCreatedEvent) ProductIDs() []int64 {
	ids := make([]int64, 0, len(e.Items))
	for _, item := range e.Items {
		ids = append(ids, item.ProductID)
	}

	return ids
}
