package order

import (
	"time"

	"github.com/commercestore/commercestore/internal/model"
	"github.com/shopspring/decimal"
)

// Order is the versioned snapshot of one customer order. Completed and
// cancelled are terminal only by convention: the engine keeps versioning,
// and the domain rules reject further transitions.
type Order struct {
	ID             model.OrderID    `json:"id"`
	CustomerID     model.CustomerID `json:"customer_id"`
	Total          decimal.Decimal  `json:"total"`
	CreatedOnUTC   time.Time        `json:"created_on_utc"`
	CompletedOnUTC *time.Time       `json:"completed_on_utc,omitempty"`
	CancelledOnUTC *time.Time       `json:"cancelled_on_utc,omitempty"`
	MetaData       model.MetaData   `json:"metadata"`
}

func (o Order) AggregateID() model.ID {
	return o.ID.ID()
}

func (o Order) AggregateMeta() model.MetaData {
	return o.MetaData
}

// Command is the closed set of order command variants.
type Command interface {
	model.Command
	isOrderCommand()
}

// CreateOrder opens a new order. A nil OrderID lets the handler assign a
// fresh identity.
type CreateOrder struct {
	model.CommandModel
	OrderID      *model.OrderID   `json:"order_id"`
	CustomerID   model.CustomerID `json:"customer_id"`
	Total        decimal.Decimal  `json:"total"`
	CreatedOnUTC time.Time        `json:"created_on_utc"`
}

func (CreateOrder) isOrderCommand() {}

func NewCreateOrder(correlationID model.CorrelationID, orderID *model.OrderID, customerID model.CustomerID, total decimal.Decimal, createdOnUTC time.Time) CreateOrder {
	return CreateOrder{
		CommandModel: model.NewCommandModel(correlationID),
		OrderID:      orderID,
		CustomerID:   customerID,
		Total:        total,
		CreatedOnUTC: createdOnUTC,
	}
}

// CompleteOrder marks the order fulfilled. The command carries no target
// identity: the identity check is skipped for it.
type CompleteOrder struct {
	model.CommandModel
	CompletedOnUTC time.Time `json:"completed_on_utc"`
}

func (CompleteOrder) isOrderCommand() {}

func NewCompleteOrder(correlationID model.CorrelationID, completedOnUTC time.Time) CompleteOrder {
	return CompleteOrder{
		CommandModel:   model.NewCommandModel(correlationID),
		CompletedOnUTC: completedOnUTC,
	}
}

// CancelOrder voids the order. Like CompleteOrder it carries no target
// identity.
type CancelOrder struct {
	model.CommandModel
	CancelledOnUTC time.Time `json:"cancelled_on_utc"`
}

func (CancelOrder) isOrderCommand() {}

func NewCancelOrder(correlationID model.CorrelationID, cancelledOnUTC time.Time) CancelOrder {
	return CancelOrder{
		CommandModel:   model.NewCommandModel(correlationID),
		CancelledOnUTC: cancelledOnUTC,
	}
}

// OrderCreated records that a new order was opened.
type OrderCreated struct {
	model.EventModel
	OrderID      model.OrderID    `json:"order_id"`
	CustomerID   model.CustomerID `json:"customer_id"`
	Total        decimal.Decimal  `json:"total"`
	CreatedOnUTC time.Time        `json:"created_on_utc"`
}

// OrderCompleted records that the order was fulfilled.
type OrderCompleted struct {
	model.EventModel
	OrderID        model.OrderID `json:"order_id"`
	CompletedOnUTC time.Time     `json:"completed_on_utc"`
}

// OrderCancelled records that the order was voided.
type OrderCancelled struct {
	model.EventModel
	OrderID        model.OrderID `json:"order_id"`
	CancelledOnUTC time.Time     `json:"cancelled_on_utc"`
}
