package delivery

import (
	"context"
	"io"
	"testing"

	"github.com/commercestore/commercestore/internal/cache"
	"github.com/commercestore/commercestore/internal/docstore"
	"github.com/commercestore/commercestore/internal/engine"
	"github.com/commercestore/commercestore/internal/errors"
	"github.com/commercestore/commercestore/internal/model"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.Out = io.Discard
	return logger
}

func newTestService() *Service {
	return New(&Config{
		Cache:  cache.NewInMemory(0),
		Logger: newLogger(),
		Store:  docstore.NewInMemory(newLogger()),
	})
}

func TestService_CreateDelivery(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.CreateDelivery(ctx, NewCreateDelivery("corr-1", nil, "order-1", "1 Main St", testTime))
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, model.Version(1), created.MetaData.Version)

	loaded, err := svc.GetDelivery(ctx, "order-1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "1 Main St", loaded.Address)
}

func TestService_CreateDelivery_MissingAddress(t *testing.T) {
	svc := newTestService()

	_, err := svc.CreateDelivery(context.Background(), NewCreateDelivery("corr-1", nil, "order-1", "", testTime))
	require.Error(t, err)
	assert.True(t, errors.Is(errors.Invalid, err))
}

func TestService_CompleteDelivery(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.CreateDelivery(ctx, NewCreateDelivery("corr-1", nil, "order-1", "1 Main St", testTime))
	require.NoError(t, err)

	completed, err := svc.CompleteDelivery(ctx, "order-1", created.ID, NewCompleteDelivery("corr-2", testTime))
	require.NoError(t, err)
	require.NotNil(t, completed.DeliveredOnUTC)
	assert.Equal(t, model.Version(2), completed.MetaData.Version)

	_, err = svc.CompleteDelivery(ctx, "order-1", created.ID, NewCompleteDelivery("corr-3", testTime))
	require.Error(t, err)

	errs, ok := err.(engine.ErrorList)
	require.True(t, ok)
	assert.True(t, errs.Contains(engine.CodeDeliveryAlreadyComplete))
}
