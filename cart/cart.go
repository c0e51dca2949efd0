package cart

import (
	"time"

	"github.com/commercestore/commercestore/internal/model"
)

// Item is one row of the cart. The same SKU may appear on more than one
// row: adding an item always appends, and a later update collapses the
// rows for its SKU into one.
type Item struct {
	SKU      model.SKU      `json:"sku"`
	Quantity model.Quantity `json:"quantity"`
}

// Cart is the versioned snapshot of one customer's cart.
type Cart struct {
	ID           model.CartID     `json:"id"`
	CustomerID   model.CustomerID `json:"customer_id"`
	Items        []Item           `json:"items"`
	CreatedOnUTC time.Time        `json:"created_on_utc"`
	MetaData     model.MetaData   `json:"metadata"`
}

func (c Cart) AggregateID() model.ID {
	return c.ID.ID()
}

func (c Cart) AggregateMeta() model.MetaData {
	return c.MetaData
}

func (c Cart) hasItem(sku model.SKU) bool {
	for _, item := range c.Items {
		if item.SKU == sku {
			return true
		}
	}
	return false
}

// Command is the closed set of cart command variants.
type Command interface {
	model.Command
	isCartCommand()
}

// AddItemToCart puts units of a SKU into the cart. A nil CartID requests
// create-or-append semantics: the handler assigns a fresh cart identity.
type AddItemToCart struct {
	model.CommandModel
	CartID     *model.CartID    `json:"cart_id"`
	CustomerID model.CustomerID `json:"customer_id"`
	SKU        model.SKU        `json:"sku"`
	Quantity   model.Quantity   `json:"quantity"`
	AddedOnUTC time.Time        `json:"added_on_utc"`
}

func (AddItemToCart) isCartCommand() {}

func NewAddItemToCart(correlationID model.CorrelationID, cartID *model.CartID, customerID model.CustomerID, sku model.SKU, quantity model.Quantity, addedOnUTC time.Time) AddItemToCart {
	return AddItemToCart{
		CommandModel: model.NewCommandModel(correlationID),
		CartID:       cartID,
		CustomerID:   customerID,
		SKU:          sku,
		Quantity:     quantity,
		AddedOnUTC:   addedOnUTC,
	}
}

// RemoveItemFromCart removes every row of a SKU from the cart.
type RemoveItemFromCart struct {
	model.CommandModel
	CartID       model.CartID `json:"cart_id"`
	SKU          model.SKU    `json:"sku"`
	RemovedOnUTC time.Time    `json:"removed_on_utc"`
}

func (RemoveItemFromCart) isCartCommand() {}

func NewRemoveItemFromCart(correlationID model.CorrelationID, cartID model.CartID, sku model.SKU, removedOnUTC time.Time) RemoveItemFromCart {
	return RemoveItemFromCart{
		CommandModel: model.NewCommandModel(correlationID),
		CartID:       cartID,
		SKU:          sku,
		RemovedOnUTC: removedOnUTC,
	}
}

// UpdateCartItem replaces the quantity of a SKU, collapsing any duplicate
// rows of that SKU into one.
type UpdateCartItem struct {
	model.CommandModel
	CartID       model.CartID   `json:"cart_id"`
	SKU          model.SKU      `json:"sku"`
	Quantity     model.Quantity `json:"quantity"`
	UpdatedOnUTC time.Time      `json:"updated_on_utc"`
}

func (UpdateCartItem) isCartCommand() {}

func NewUpdateCartItem(correlationID model.CorrelationID, cartID model.CartID, sku model.SKU, quantity model.Quantity, updatedOnUTC time.Time) UpdateCartItem {
	return UpdateCartItem{
		CommandModel: model.NewCommandModel(correlationID),
		CartID:       cartID,
		SKU:          sku,
		Quantity:     quantity,
		UpdatedOnUTC: updatedOnUTC,
	}
}

// CartItemAdded records that units of a SKU were put into the cart.
type CartItemAdded struct {
	model.EventModel
	CartID     model.CartID     `json:"cart_id"`
	CustomerID model.CustomerID `json:"customer_id"`
	SKU        model.SKU        `json:"sku"`
	Quantity   model.Quantity   `json:"quantity"`
	AddedOnUTC time.Time        `json:"added_on_utc"`
}

// CartItemRemoved records that a SKU was taken out of the cart.
type CartItemRemoved struct {
	model.EventModel
	CartID       model.CartID `json:"cart_id"`
	SKU          model.SKU    `json:"sku"`
	RemovedOnUTC time.Time    `json:"removed_on_utc"`
}

// CartItemUpdated records that the quantity of a SKU was replaced.
type CartItemUpdated struct {
	model.EventModel
	CartID       model.CartID   `json:"cart_id"`
	SKU          model.SKU      `json:"sku"`
	Quantity     model.Quantity `json:"quantity"`
	UpdatedOnUTC time.Time      `json:"updated_on_utc"`
}
