package delivery

import (
	"fmt"

	"github.com/commercestore/commercestore/internal/engine"
	"github.com/commercestore/commercestore/internal/model"
)

// Rules returns the engine rule bundle for deliveries.
func Rules() engine.Rules[Delivery, Command] {
	return engine.Rules[Delivery, Command]{
		CreateNew: createNew,
		TargetID:  targetID,
		Decide:    decide,
		Apply:     apply,
	}
}

// NewHandler returns a command handler for deliveries.
func NewHandler() *engine.Handler[Delivery, Command] {
	return engine.New(Rules())
}

func createNew(cmd Command) (Delivery, bool) {
	create, ok := cmd.(CreateDelivery)
	if !ok {
		return Delivery{}, false
	}

	id := model.NewDeliveryID()
	if create.DeliveryID != nil {
		id = *create.DeliveryID
	}

	return Delivery{
		ID:       id,
		MetaData: model.NewMetaData(id.ID()),
	}, true
}

// targetID skips the identity check for CompleteDelivery: the command
// carries no aggregate id of its own.
func targetID(cmd Command) *model.ID {
	switch v := cmd.(type) {
	case CreateDelivery:
		if v.DeliveryID == nil {
			return nil
		}
		id := v.DeliveryID.ID()
		return &id
	case CompleteDelivery:
		return nil
	default:
		panic(fmt.Sprintf("delivery: no target id case for command %T", cmd))
	}
}

func decide(d Delivery, cmd Command) ([]model.Event, *engine.Error) {
	next := d.MetaData.Version + 1

	switch v := cmd.(type) {
	case CreateDelivery:
		return []model.Event{DeliveryCreated{
			EventModel:   model.NewEventModel(v, next, v.CreatedOnUTC),
			DeliveryID:   d.ID,
			OrderID:      v.OrderID,
			Address:      v.Address,
			CreatedOnUTC: v.CreatedOnUTC,
		}}, nil

	case CompleteDelivery:
		if d.DeliveredOnUTC != nil {
			err := engine.ErrDeliveryAlreadyComplete
			return nil, &err
		}
		return []model.Event{DeliveryCompleted{
			EventModel:     model.NewEventModel(v, next, v.DeliveredOnUTC),
			DeliveryID:     d.ID,
			DeliveredOnUTC: v.DeliveredOnUTC,
		}}, nil

	default:
		panic(fmt.Sprintf("delivery: no decide case for command %T", cmd))
	}
}

func apply(d Delivery, event model.Event) Delivery {
	next := d

	switch v := event.(type) {
	case DeliveryCreated:
		next.ID = v.DeliveryID
		next.OrderID = v.OrderID
		next.Address = v.Address
		next.CreatedOnUTC = v.CreatedOnUTC

	case DeliveryCompleted:
		delivered := v.DeliveredOnUTC
		next.DeliveredOnUTC = &delivered

	default:
		panic(fmt.Sprintf("delivery: no apply case for event %T", event))
	}

	next.MetaData = d.MetaData.Next(event.EventAt())

	return next
}
