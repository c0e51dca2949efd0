package order

import (
	"testing"
	"time"

	"github.com/commercestore/commercestore/internal/engine"
	"github.com/commercestore/commercestore/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func existingOrder(id model.OrderID, version model.Version) Order {
	return Order{
		ID:           id,
		CustomerID:   "customer-1",
		Total:        decimal.NewFromInt(100),
		CreatedOnUTC: testTime,
		MetaData: model.MetaData{
			StreamID: model.StreamID(id),
			Version:  version,
		},
	}
}

func TestHandleNew_CreateOrder(t *testing.T) {
	h := NewHandler()

	cmd := NewCreateOrder("corr-1", nil, "customer-1", decimal.NewFromInt(100), testTime)

	result, errs := h.HandleNew(cmd)
	require.Nil(t, errs)

	o := result.Aggregate
	assert.NotEmpty(t, o.ID)
	assert.Equal(t, model.CustomerID("customer-1"), o.CustomerID)
	assert.True(t, o.Total.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, testTime, o.CreatedOnUTC)
	assert.Nil(t, o.CompletedOnUTC)
	assert.Nil(t, o.CancelledOnUTC)
	assert.Equal(t, model.Version(1), o.MetaData.Version)
}

func TestHandleNew_NonCreationCommand(t *testing.T) {
	h := NewHandler()

	_, errs := h.HandleNew(NewCompleteOrder("corr-1", testTime))
	require.Len(t, errs, 1)
	assert.Equal(t, engine.CodeInvalidCommandForNew, errs[0].Code)
	assert.Contains(t, errs[0].Description, "order.CompleteOrder")
}

func TestHandleExisting_CompleteOrder(t *testing.T) {
	h := NewHandler()
	o := existingOrder("order-1", 1)

	completedAt := testTime.Add(time.Hour)
	result, errs := h.HandleExisting(NewCompleteOrder("corr-1", completedAt), o)
	require.Nil(t, errs)

	require.NotNil(t, result.Aggregate.CompletedOnUTC)
	assert.Equal(t, completedAt, *result.Aggregate.CompletedOnUTC)
	assert.Equal(t, model.Version(2), result.Aggregate.MetaData.Version)
}

func TestHandleExisting_CompleteOrder_Twice(t *testing.T) {
	h := NewHandler()
	o := existingOrder("order-1", 1)

	first, errs := h.HandleExisting(NewCompleteOrder("corr-1", testTime.Add(time.Hour)), o)
	require.Nil(t, errs)

	_, errs = h.HandleExisting(NewCompleteOrder("corr-2", testTime.Add(2*time.Hour)), first.Aggregate)
	require.Len(t, errs, 1)
	assert.Equal(t, engine.CodeOrderAlreadyCompleted, errs[0].Code)
}

func TestHandleExisting_CompleteOrder_Cancelled(t *testing.T) {
	h := NewHandler()
	o := existingOrder("order-1", 1)

	cancelled, errs := h.HandleExisting(NewCancelOrder("corr-1", testTime.Add(time.Hour)), o)
	require.Nil(t, errs)

	_, errs = h.HandleExisting(NewCompleteOrder("corr-2", testTime.Add(2*time.Hour)), cancelled.Aggregate)
	require.Len(t, errs, 1)
	assert.Equal(t, engine.CodeOrderCancelled, errs[0].Code)
}

func TestHandleExisting_CancelOrder(t *testing.T) {
	h := NewHandler()
	o := existingOrder("order-1", 1)

	cancelledAt := testTime.Add(time.Hour)
	result, errs := h.HandleExisting(NewCancelOrder("corr-1", cancelledAt), o)
	require.Nil(t, errs)

	require.NotNil(t, result.Aggregate.CancelledOnUTC)
	assert.Equal(t, cancelledAt, *result.Aggregate.CancelledOnUTC)
}

func TestHandleExisting_CancelOrder_Twice(t *testing.T) {
	h := NewHandler()
	o := existingOrder("order-1", 1)

	first, errs := h.HandleExisting(NewCancelOrder("corr-1", testTime.Add(time.Hour)), o)
	require.Nil(t, errs)

	_, errs = h.HandleExisting(NewCancelOrder("corr-2", testTime.Add(2*time.Hour)), first.Aggregate)
	require.Len(t, errs, 1)
	assert.Equal(t, engine.CodeOrderCancelled, errs[0].Code)
}

func TestHandleExisting_CancelOrder_Completed(t *testing.T) {
	h := NewHandler()
	o := existingOrder("order-1", 1)

	completed, errs := h.HandleExisting(NewCompleteOrder("corr-1", testTime.Add(time.Hour)), o)
	require.Nil(t, errs)

	_, errs = h.HandleExisting(NewCancelOrder("corr-2", testTime.Add(2*time.Hour)), completed.Aggregate)
	require.Len(t, errs, 1)
	assert.Equal(t, engine.CodeOrderAlreadyCompleted, errs[0].Code)
}

func TestHandleExisting_VersionGuard(t *testing.T) {
	h := NewHandler()
	o := existingOrder("order-1", 0)

	_, errs := h.HandleExisting(NewCompleteOrder("corr-1", testTime), o)
	require.Len(t, errs, 1)
	assert.Equal(t, engine.CodeInconsistentVersion, errs[0].Code)
}
