package order

import (
	"fmt"

	"github.com/commercestore/commercestore/internal/engine"
	"github.com/commercestore/commercestore/internal/model"
)

// Rules returns the engine rule bundle for orders.
func Rules() engine.Rules[Order, Command] {
	return engine.Rules[Order, Command]{
		CreateNew: createNew,
		TargetID:  targetID,
		Decide:    decide,
		Apply:     apply,
	}
}

// NewHandler returns a command handler for orders.
func NewHandler() *engine.Handler[Order, Command] {
	return engine.New(Rules())
}

func createNew(cmd Command) (Order, bool) {
	create, ok := cmd.(CreateOrder)
	if !ok {
		return Order{}, false
	}

	id := model.NewOrderID()
	if create.OrderID != nil {
		id = *create.OrderID
	}

	return Order{
		ID:       id,
		MetaData: model.NewMetaData(id.ID()),
	}, true
}

// targetID skips the identity check for CompleteOrder and CancelOrder:
// those commands carry no aggregate id of their own.
func targetID(cmd Command) *model.ID {
	switch v := cmd.(type) {
	case CreateOrder:
		if v.OrderID == nil {
			return nil
		}
		id := v.OrderID.ID()
		return &id
	case CompleteOrder, CancelOrder:
		return nil
	default:
		panic(fmt.Sprintf("order: no target id case for command %T", cmd))
	}
}

func decide(o Order, cmd Command) ([]model.Event, *engine.Error) {
	next := o.MetaData.Version + 1

	switch v := cmd.(type) {
	case CreateOrder:
		return []model.Event{OrderCreated{
			EventModel:   model.NewEventModel(v, next, v.CreatedOnUTC),
			OrderID:      o.ID,
			CustomerID:   v.CustomerID,
			Total:        v.Total,
			CreatedOnUTC: v.CreatedOnUTC,
		}}, nil

	case CompleteOrder:
		// The engine already guards version 0; kept here as well.
		if o.MetaData.Version == 0 {
			err := engine.ErrInconsistentVersion
			return nil, &err
		}
		if o.CompletedOnUTC != nil {
			err := engine.ErrOrderAlreadyCompleted
			return nil, &err
		}
		if o.CancelledOnUTC != nil {
			err := engine.ErrOrderCancelled
			return nil, &err
		}
		return []model.Event{OrderCompleted{
			EventModel:     model.NewEventModel(v, next, v.CompletedOnUTC),
			OrderID:        o.ID,
			CompletedOnUTC: v.CompletedOnUTC,
		}}, nil

	case CancelOrder:
		if o.MetaData.Version == 0 {
			err := engine.ErrInconsistentVersion
			return nil, &err
		}
		if o.CancelledOnUTC != nil {
			err := engine.ErrOrderCancelled
			return nil, &err
		}
		if o.CompletedOnUTC != nil {
			err := engine.ErrOrderAlreadyCompleted
			return nil, &err
		}
		return []model.Event{OrderCancelled{
			EventModel:     model.NewEventModel(v, next, v.CancelledOnUTC),
			OrderID:        o.ID,
			CancelledOnUTC: v.CancelledOnUTC,
		}}, nil

	default:
		panic(fmt.Sprintf("order: no decide case for command %T", cmd))
	}
}

func apply(o Order, event model.Event) Order {
	next := o

	switch v := event.(type) {
	case OrderCreated:
		next.ID = v.OrderID
		next.CustomerID = v.CustomerID
		next.Total = v.Total
		next.CreatedOnUTC = v.CreatedOnUTC

	case OrderCompleted:
		completed := v.CompletedOnUTC
		next.CompletedOnUTC = &completed

	case OrderCancelled:
		cancelled := v.CancelledOnUTC
		next.CancelledOnUTC = &cancelled

	default:
		panic(fmt.Sprintf("order: no apply case for event %T", event))
	}

	next.MetaData = o.MetaData.Next(event.EventAt())

	return next
}
