package delivery

import (
	"testing"
	"time"

	"github.com/commercestore/commercestore/internal/engine"
	"github.com/commercestore/commercestore/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func existingDelivery(id model.DeliveryID, version model.Version) Delivery {
	return Delivery{
		ID:           id,
		OrderID:      "order-1",
		Address:      "1 Main St",
		CreatedOnUTC: testTime,
		MetaData: model.MetaData{
			StreamID: model.StreamID(id),
			Version:  version,
		},
	}
}

func TestHandleNew_CreateDelivery(t *testing.T) {
	h := NewHandler()

	cmd := NewCreateDelivery("corr-1", nil, "order-1", "1 Main St", testTime)

	result, errs := h.HandleNew(cmd)
	require.Nil(t, errs)

	d := result.Aggregate
	assert.NotEmpty(t, d.ID)
	assert.Equal(t, model.OrderID("order-1"), d.OrderID)
	assert.Equal(t, "1 Main St", d.Address)
	assert.Equal(t, testTime, d.CreatedOnUTC)
	assert.Nil(t, d.DeliveredOnUTC)
	assert.Equal(t, model.Version(1), d.MetaData.Version)
}

func TestHandleNew_NonCreationCommand(t *testing.T) {
	h := NewHandler()

	_, errs := h.HandleNew(NewCompleteDelivery("corr-1", testTime))
	require.Len(t, errs, 1)
	assert.Equal(t, engine.CodeInvalidCommandForNew, errs[0].Code)
	assert.Contains(t, errs[0].Description, "delivery.CompleteDelivery")
}

func TestHandleExisting_CompleteDelivery(t *testing.T) {
	h := NewHandler()
	d := existingDelivery("delivery-1", 1)

	deliveredAt := testTime.Add(time.Hour)
	result, errs := h.HandleExisting(NewCompleteDelivery("corr-1", deliveredAt), d)
	require.Nil(t, errs)

	require.NotNil(t, result.Aggregate.DeliveredOnUTC)
	assert.Equal(t, deliveredAt, *result.Aggregate.DeliveredOnUTC)
	assert.Equal(t, model.Version(2), result.Aggregate.MetaData.Version)
}

func TestHandleExisting_CompleteDelivery_Twice(t *testing.T) {
	h := NewHandler()
	d := existingDelivery("delivery-1", 1)

	first, errs := h.HandleExisting(NewCompleteDelivery("corr-1", testTime.Add(time.Hour)), d)
	require.Nil(t, errs)

	_, errs = h.HandleExisting(NewCompleteDelivery("corr-2", testTime.Add(2*time.Hour)), first.Aggregate)
	require.Len(t, errs, 1)
	assert.Equal(t, engine.CodeDeliveryAlreadyComplete, errs[0].Code)
}

func TestHandleExisting_VersionGuard(t *testing.T) {
	h := NewHandler()
	d := existingDelivery("delivery-1", 0)

	_, errs := h.HandleExisting(NewCompleteDelivery("corr-1", testTime), d)
	require.Len(t, errs, 1)
	assert.Equal(t, engine.CodeInconsistentVersion, errs[0].Code)
}
