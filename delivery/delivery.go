package delivery

import (
	"time"

	"github.com/commercestore/commercestore/internal/model"
)

// Delivery is the versioned snapshot of one order's delivery.
type Delivery struct {
	ID             model.DeliveryID `json:"id"`
	OrderID        model.OrderID    `json:"order_id"`
	Address        string           `json:"address"`
	CreatedOnUTC   time.Time        `json:"created_on_utc"`
	DeliveredOnUTC *time.Time       `json:"delivered_on_utc,omitempty"`
	MetaData       model.MetaData   `json:"metadata"`
}

func (d Delivery) AggregateID() model.ID {
	return d.ID.ID()
}

func (d Delivery) AggregateMeta() model.MetaData {
	return d.MetaData
}

// Command is the closed set of delivery command variants.
type Command interface {
	model.Command
	isDeliveryCommand()
}

// CreateDelivery schedules the delivery of an order. A nil DeliveryID
// lets the handler assign a fresh identity.
type CreateDelivery struct {
	model.CommandModel
	DeliveryID   *model.DeliveryID `json:"delivery_id"`
	OrderID      model.OrderID     `json:"order_id"`
	Address      string            `json:"address"`
	CreatedOnUTC time.Time         `json:"created_on_utc"`
}

func (CreateDelivery) isDeliveryCommand() {}

func NewCreateDelivery(correlationID model.CorrelationID, deliveryID *model.DeliveryID, orderID model.OrderID, address string, createdOnUTC time.Time) CreateDelivery {
	return CreateDelivery{
		CommandModel: model.NewCommandModel(correlationID),
		DeliveryID:   deliveryID,
		OrderID:      orderID,
		Address:      address,
		CreatedOnUTC: createdOnUTC,
	}
}

// CompleteDelivery marks the delivery as delivered. The command carries
// no target identity: the identity check is skipped for it.
type CompleteDelivery struct {
	model.CommandModel
	DeliveredOnUTC time.Time `json:"delivered_on_utc"`
}

func (CompleteDelivery) isDeliveryCommand() {}

func NewCompleteDelivery(correlationID model.CorrelationID, deliveredOnUTC time.Time) CompleteDelivery {
	return CompleteDelivery{
		CommandModel:   model.NewCommandModel(correlationID),
		DeliveredOnUTC: deliveredOnUTC,
	}
}

// DeliveryCreated records that a delivery was scheduled.
type DeliveryCreated struct {
	model.EventModel
	DeliveryID   model.DeliveryID `json:"delivery_id"`
	OrderID      model.OrderID    `json:"order_id"`
	Address      string           `json:"address"`
	CreatedOnUTC time.Time        `json:"created_on_utc"`
}

// DeliveryCompleted records that the delivery reached the customer.
type DeliveryCompleted struct {
	model.EventModel
	DeliveryID     model.DeliveryID `json:"delivery_id"`
	DeliveredOnUTC time.Time        `json:"delivered_on_utc"`
}
