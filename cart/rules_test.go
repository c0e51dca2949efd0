package cart

import (
	"testing"
	"time"

	"github.com/commercestore/commercestore/internal/engine"
	"github.com/commercestore/commercestore/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func existingCart(id model.CartID, version model.Version, items ...Item) Cart {
	return Cart{
		ID:         id,
		CustomerID: "customer-1",
		Items:      items,
		MetaData: model.MetaData{
			StreamID: model.StreamID(id),
			Version:  version,
		},
	}
}

func TestHandleNew_AddItem(t *testing.T) {
	h := NewHandler()

	cmd := NewAddItemToCart("corr-1", nil, "customer-1", "S1", 10, testTime)

	result, errs := h.HandleNew(cmd)
	require.Nil(t, errs)

	c := result.Aggregate
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, model.CustomerID("customer-1"), c.CustomerID)
	assert.Equal(t, []Item{{SKU: "S1", Quantity: 10}}, c.Items)
	assert.Equal(t, testTime, c.CreatedOnUTC)
	assert.Equal(t, model.Version(1), c.MetaData.Version)
	assert.Equal(t, model.StreamID(c.ID), c.MetaData.StreamID)

	require.Len(t, result.Events, 1)
	added := result.Events[0].(CartItemAdded)
	assert.Equal(t, c.ID, added.CartID)
	assert.Equal(t, model.Version(1), added.EventVersion())
}

func TestHandleNew_AddItem_ExplicitID(t *testing.T) {
	h := NewHandler()

	id := model.CartID("cart-1")
	cmd := NewAddItemToCart("corr-1", &id, "customer-1", "S1", 10, testTime)

	result, errs := h.HandleNew(cmd)
	require.Nil(t, errs)
	assert.Equal(t, id, result.Aggregate.ID)
}

func TestHandleNew_NonCreationCommand(t *testing.T) {
	h := NewHandler()

	_, errs := h.HandleNew(NewRemoveItemFromCart("corr-1", "cart-1", "S1", testTime))
	require.Len(t, errs, 1)
	assert.Equal(t, engine.CodeInvalidCommandForNew, errs[0].Code)
	assert.Contains(t, errs[0].Description, "cart.RemoveItemFromCart")
}

func TestHandleExisting_AddItem_AppendsDuplicateSKU(t *testing.T) {
	h := NewHandler()
	id := model.CartID("cart-1")
	c := existingCart(id, 1, Item{SKU: "S1", Quantity: 10})

	cmd := NewAddItemToCart("corr-1", &id, "customer-1", "S1", 3, testTime)

	result, errs := h.HandleExisting(cmd, c)
	require.Nil(t, errs)
	assert.Equal(t, []Item{{SKU: "S1", Quantity: 10}, {SKU: "S1", Quantity: 3}}, result.Aggregate.Items)
	assert.Equal(t, model.Version(2), result.Aggregate.MetaData.Version)
}

func TestHandleExisting_RemoveItem(t *testing.T) {
	h := NewHandler()
	c := existingCart("cart-1", 6, Item{SKU: "S1", Quantity: 10})

	cmd := NewRemoveItemFromCart("corr-1", "cart-1", "S1", testTime)

	result, errs := h.HandleExisting(cmd, c)
	require.Nil(t, errs)
	assert.Equal(t, model.Version(7), result.Aggregate.MetaData.Version)
	assert.Empty(t, result.Aggregate.Items)
}

func TestHandleExisting_RemoveItem_RemovesEveryRow(t *testing.T) {
	h := NewHandler()
	c := existingCart("cart-1", 3,
		Item{SKU: "S1", Quantity: 1},
		Item{SKU: "S2", Quantity: 2},
		Item{SKU: "S1", Quantity: 5},
	)

	cmd := NewRemoveItemFromCart("corr-1", "cart-1", "S1", testTime)

	result, errs := h.HandleExisting(cmd, c)
	require.Nil(t, errs)
	assert.Equal(t, []Item{{SKU: "S2", Quantity: 2}}, result.Aggregate.Items)
}

func TestHandleExisting_RemoveItem_UnknownSKU(t *testing.T) {
	h := NewHandler()
	c := existingCart("cart-1", 1, Item{SKU: "S1", Quantity: 10})

	_, errs := h.HandleExisting(NewRemoveItemFromCart("corr-1", "cart-1", "S2", testTime), c)
	require.Len(t, errs, 1)
	assert.Equal(t, engine.CodeInvalidCartItemSKU, errs[0].Code)
	assert.Equal(t, "Sku not found in cart.", errs[0].Description)
}

func TestHandleExisting_UpdateItem(t *testing.T) {
	h := NewHandler()
	c := existingCart("cart-1", 2, Item{SKU: "S1", Quantity: 10})

	cmd := NewUpdateCartItem("corr-1", "cart-1", "S1", 4, testTime)

	result, errs := h.HandleExisting(cmd, c)
	require.Nil(t, errs)
	assert.Equal(t, []Item{{SKU: "S1", Quantity: 4}}, result.Aggregate.Items)
	assert.Equal(t, model.Version(3), result.Aggregate.MetaData.Version)
}

func TestHandleExisting_UpdateItem_CollapsesDuplicateRows(t *testing.T) {
	h := NewHandler()
	c := existingCart("cart-1", 3,
		Item{SKU: "S1", Quantity: 2},
		Item{SKU: "S2", Quantity: 3},
		Item{SKU: "S1", Quantity: 5},
	)

	cmd := NewUpdateCartItem("corr-1", "cart-1", "S1", 10, testTime)

	result, errs := h.HandleExisting(cmd, c)
	require.Nil(t, errs)
	assert.Equal(t, []Item{{SKU: "S1", Quantity: 10}, {SKU: "S2", Quantity: 3}}, result.Aggregate.Items)
}

func TestHandleExisting_UpdateItem_ZeroQuantity(t *testing.T) {
	h := NewHandler()
	c := existingCart("cart-1", 1, Item{SKU: "S1", Quantity: 10})

	_, errs := h.HandleExisting(NewUpdateCartItem("corr-1", "cart-1", "S1", 0, testTime), c)
	require.Len(t, errs, 1)
	assert.Equal(t, engine.CodeInvalidQuantity, errs[0].Code)
}

func TestHandleExisting_UpdateItem_UnknownSKU(t *testing.T) {
	h := NewHandler()
	c := existingCart("cart-1", 1, Item{SKU: "S1", Quantity: 10})

	_, errs := h.HandleExisting(NewUpdateCartItem("corr-1", "cart-1", "S2", 4, testTime), c)
	require.Len(t, errs, 1)
	assert.Equal(t, engine.CodeInvalidCartItemSKU, errs[0].Code)
}

func TestHandleExisting_VersionGuard(t *testing.T) {
	h := NewHandler()
	c := existingCart("cart-1", 0)

	_, errs := h.HandleExisting(NewRemoveItemFromCart("corr-1", "cart-1", "S1", testTime), c)
	require.Len(t, errs, 1)
	assert.Equal(t, engine.CodeInconsistentVersion, errs[0].Code)
}

func TestHandleExisting_IdentityCheck(t *testing.T) {
	h := NewHandler()
	c := existingCart("cart-1", 1, Item{SKU: "S1", Quantity: 10})

	_, errs := h.HandleExisting(NewRemoveItemFromCart("corr-1", "cart-2", "S1", testTime), c)
	require.Len(t, errs, 1)
	assert.Equal(t, engine.CodeInvalidAggregateForID, errs[0].Code)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	h := NewHandler()
	id := model.CartID("cart-1")
	c := existingCart(id, 1, Item{SKU: "S1", Quantity: 10})

	cmd := NewAddItemToCart("corr-1", &id, "customer-1", "S2", 1, testTime)

	_, errs := h.HandleExisting(cmd, c)
	require.Nil(t, errs)

	assert.Equal(t, []Item{{SKU: "S1", Quantity: 10}}, c.Items)
	assert.Equal(t, model.Version(1), c.MetaData.Version)
}
