package product

import (
	"fmt"

	"github.com/commercestore/commercestore/internal/engine"
	"github.com/commercestore/commercestore/internal/model"
)

// Rules returns the engine rule bundle for products.
func Rules() engine.Rules[Product, Command] {
	return engine.Rules[Product, Command]{
		CreateNew: createNew,
		TargetID:  targetID,
		Decide:    decide,
		Apply:     apply,
	}
}

// NewHandler returns a command handler for products.
func NewHandler() *engine.Handler[Product, Command] {
	return engine.New(Rules())
}

func createNew(cmd Command) (Product, bool) {
	create, ok := cmd.(CreateProduct)
	if !ok {
		return Product{}, false
	}

	id := model.NewProductID()
	if create.ProductID != nil {
		id = *create.ProductID
	}

	return Product{
		ID:       id,
		MetaData: model.NewMetaData(id.ID()),
	}, true
}

func targetID(cmd Command) *model.ID {
	switch v := cmd.(type) {
	case CreateProduct:
		if v.ProductID == nil {
			return nil
		}
		id := v.ProductID.ID()
		return &id
	case UpdateProduct:
		id := v.ProductID.ID()
		return &id
	default:
		panic(fmt.Sprintf("product: no target id case for command %T", cmd))
	}
}

func decide(p Product, cmd Command) ([]model.Event, *engine.Error) {
	next := p.MetaData.Version + 1

	switch v := cmd.(type) {
	case CreateProduct:
		return []model.Event{ProductCreated{
			EventModel:   model.NewEventModel(v, next, v.CreatedOnUTC),
			ProductID:    p.ID,
			Name:         v.Name,
			Price:        v.Price,
			CreatedOnUTC: v.CreatedOnUTC,
		}}, nil

	case UpdateProduct:
		// Temporal-ordering sanity check.
		if v.UpdatedOnUTC.Before(p.CreatedOnUTC) {
			err := engine.ErrUpdatedBeforeCreated
			return nil, &err
		}
		return []model.Event{ProductUpdated{
			EventModel:   model.NewEventModel(v, next, v.UpdatedOnUTC),
			ProductID:    p.ID,
			Name:         v.Name,
			Price:        v.Price,
			UpdatedOnUTC: v.UpdatedOnUTC,
		}}, nil

	default:
		panic(fmt.Sprintf("product: no decide case for command %T", cmd))
	}
}

func apply(p Product, event model.Event) Product {
	next := p

	switch v := event.(type) {
	case ProductCreated:
		next.ID = v.ProductID
		next.Name = v.Name
		next.Price = v.Price
		next.CreatedOnUTC = v.CreatedOnUTC
		next.UpdatedOnUTC = v.CreatedOnUTC

	case ProductUpdated:
		next.Name = v.Name
		next.Price = v.Price
		next.UpdatedOnUTC = v.UpdatedOnUTC

	default:
		panic(fmt.Sprintf("product: no apply case for event %T", event))
	}

	next.MetaData = p.MetaData.Next(event.EventAt())

	return next
}
