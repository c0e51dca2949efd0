package cart

import (
	"fmt"

	"github.com/commercestore/commercestore/internal/engine"
	"github.com/commercestore/commercestore/internal/model"
)

// Rules returns the engine rule bundle for carts.
func Rules() engine.Rules[Cart, Command] {
	return engine.Rules[Cart, Command]{
		CreateNew: createNew,
		TargetID:  targetID,
		Decide:    decide,
		Apply:     apply,
	}
}

// NewHandler returns a command handler for carts.
func NewHandler() *engine.Handler[Cart, Command] {
	return engine.New(Rules())
}

// createNew builds the zero-state cart for AddItemToCart, the only cart
// command able to create. A nil CartID lets the engine assign identity.
func createNew(cmd Command) (Cart, bool) {
	add, ok := cmd.(AddItemToCart)
	if !ok {
		return Cart{}, false
	}

	id := model.NewCartID()
	if add.CartID != nil {
		id = *add.CartID
	}

	return Cart{
		ID:       id,
		MetaData: model.NewMetaData(id.ID()),
	}, true
}

func targetID(cmd Command) *model.ID {
	switch v := cmd.(type) {
	case AddItemToCart:
		if v.CartID == nil {
			return nil
		}
		id := v.CartID.ID()
		return &id
	case RemoveItemFromCart:
		id := v.CartID.ID()
		return &id
	case UpdateCartItem:
		id := v.CartID.ID()
		return &id
	default:
		panic(fmt.Sprintf("cart: no target id case for command %T", cmd))
	}
}

func decide(c Cart, cmd Command) ([]model.Event, *engine.Error) {
	next := c.MetaData.Version + 1

	switch v := cmd.(type) {
	case AddItemToCart:
		return []model.Event{CartItemAdded{
			EventModel: model.NewEventModel(v, next, v.AddedOnUTC),
			CartID:     c.ID,
			CustomerID: v.CustomerID,
			SKU:        v.SKU,
			Quantity:   v.Quantity,
			AddedOnUTC: v.AddedOnUTC,
		}}, nil

	case RemoveItemFromCart:
		if !c.hasItem(v.SKU) {
			err := engine.ErrInvalidCartItemSKU
			return nil, &err
		}
		return []model.Event{CartItemRemoved{
			EventModel:   model.NewEventModel(v, next, v.RemovedOnUTC),
			CartID:       c.ID,
			SKU:          v.SKU,
			RemovedOnUTC: v.RemovedOnUTC,
		}}, nil

	case UpdateCartItem:
		if v.Quantity == 0 {
			err := engine.ErrInvalidQuantity
			return nil, &err
		}
		if !c.hasItem(v.SKU) {
			err := engine.ErrInvalidCartItemSKU
			return nil, &err
		}
		return []model.Event{CartItemUpdated{
			EventModel:   model.NewEventModel(v, next, v.UpdatedOnUTC),
			CartID:       c.ID,
			SKU:          v.SKU,
			Quantity:     v.Quantity,
			UpdatedOnUTC: v.UpdatedOnUTC,
		}}, nil

	default:
		panic(fmt.Sprintf("cart: no decide case for command %T", cmd))
	}
}

func apply(c Cart, event model.Event) Cart {
	next := c
	next.Items = append([]Item(nil), c.Items...)

	switch v := event.(type) {
	case CartItemAdded:
		next.ID = v.CartID
		next.CustomerID = v.CustomerID
		if v.EventVersion() == 1 {
			next.CreatedOnUTC = v.AddedOnUTC
		}
		// Always appends, even when the SKU is already present.
		next.Items = append(next.Items, Item{SKU: v.SKU, Quantity: v.Quantity})

	case CartItemRemoved:
		items := next.Items[:0]
		for _, item := range next.Items {
			if item.SKU != v.SKU {
				items = append(items, item)
			}
		}
		next.Items = items

	case CartItemUpdated:
		// Collapse duplicate rows of the SKU into one and replace its
		// quantity.
		items := make([]Item, 0, len(next.Items))
		seen := map[model.SKU]bool{}
		for _, item := range next.Items {
			if seen[item.SKU] {
				continue
			}
			seen[item.SKU] = true
			if item.SKU == v.SKU {
				item.Quantity = v.Quantity
			}
			items = append(items, item)
		}
		next.Items = items

	default:
		panic(fmt.Sprintf("cart: no apply case for event %T", event))
	}

	next.MetaData = c.MetaData.Next(event.EventAt())

	return next
}
