package tests

import (
	"encoding/json"
	"strconv"
	"time"

	eventDomain "github.com/sakashimaa/accessory-shop/pkg/domain"
)

func (s *IntegrationTestSuite) seedCart(customerID int64, productIDs ...int64) {
	for _, id := range productIDs {
		_, err := s.CartRepo.Upsert(s.Ctx, customerID, id, 1)
		s.Require().NoError(err)
	}
}

func orderCreated(orderID, customerID int64, productIDs ...int64) *eventDomain.OrderCreatedEvent {
	event := &eventDomain.OrderCreatedEvent{
		OrderID:    orderID,
		CustomerID: customerID,
		OrderDate:  time.Now().UTC(),
	}

	for _, id := range productIDs {
		event.Items = append(event.Items, eventDomain.OrderedItem{ProductID: id, Quantity: 1})
	}

	return event
}

func (s *IntegrationTestSuite) TestHandleOrderCreated_RemovesOrderedProducts() {
	s.seedCart(7, 3, 4, 5)
	s.seedCart(8, 3)

	err := s.CartService.HandleOrderCreated(s.Ctx, 1, orderCreated(10, 7, 3, 4))
	s.Require().NoError(err)

	s.Require().Equal(1, s.CountRows(`SELECT COUNT(*) FROM cart_items WHERE customer_id = $1`, 7))
	s.Require().Equal(1, s.CountRows(`SELECT COUNT(*) FROM cart_items WHERE customer_id = $1 AND product_id = 5`, 7))
	s.Require().Equal(1, s.CountRows(`SELECT COUNT(*) FROM cart_items WHERE customer_id = $1`, 8))
}

func (s *IntegrationTestSuite) TestHandleOrderCreated_Deduplicated() {
	s.seedCart(7, 3)

	s.Require().NoError(s.CartService.HandleOrderCreated(s.Ctx, 42, orderCreated(10, 7, 3)))

	s.seedCart(7, 3)
	s.Require().NoError(s.CartService.HandleOrderCreated(s.Ctx, 42, orderCreated(10, 7, 3)))

	s.Require().Equal(1, s.CountRows(`SELECT COUNT(*) FROM cart_items WHERE customer_id = $1`, 7))
	s.Require().Equal(1, s.CountRows(`SELECT COUNT(*) FROM processed_events WHERE event_id = $1`, 42))
}

func (s *IntegrationTestSuite) TestOrderCreatedMessage_ConsumedFromKafka() {
	s.seedCart(7, 3, 4)

	payload, err := json.Marshal(orderCreated(11, 7, 3))
	s.Require().NoError(err)

	envelope := eventDomain.EventEnvelope{
		Event:   eventDomain.EventOrderCreated,
		EventID: 9001,
		Payload: payload,
	}

	err = s.TestProducer.ProduceMessage(s.Ctx, eventDomain.TopicOrderEvents, strconv.FormatInt(11, 10), envelope)
	s.Require().NoError(err)

	s.Require().Eventually(func() bool {
		return s.CountRows(`SELECT COUNT(*) FROM cart_items WHERE customer_id = $1 AND product_id = 3`, 7) == 0
	}, 30*time.Second, 200*time.Millisecond)

	s.Require().Equal(1, s.CountRows(`SELECT COUNT(*) FROM cart_items WHERE customer_id = $1`, 7))
}
