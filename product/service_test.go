package product

import (
	"context"
	"io"
	"testing"

	"github.com/commercestore/commercestore/internal/cache"
	"github.com/commercestore/commercestore/internal/docstore"
	"github.com/commercestore/commercestore/internal/engine"
	"github.com/commercestore/commercestore/internal/errors"
	"github.com/commercestore/commercestore/internal/model"
	"github.com/shopspring/decimal"
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

func TestService_CreateProduct(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, NewCreateProduct("corr-1", nil, "Widget", decimal.NewFromFloat(9.99), testTime))
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, model.Version(1), created.MetaData.Version)

	loaded, err := svc.GetProduct(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget", loaded.Name)
	assert.True(t, loaded.Price.Equal(decimal.NewFromFloat(9.99)))
}

func TestService_UpdateProduct(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, NewCreateProduct("corr-1", nil, "Widget", decimal.NewFromFloat(9.99), testTime))
	require.NoError(t, err)

	updated, err := svc.UpdateProduct(ctx, NewUpdateProduct("corr-2", created.ID, "Widget Pro", decimal.NewFromFloat(19.99), testTime))
	require.NoError(t, err)

	assert.Equal(t, "Widget Pro", updated.Name)
	assert.Equal(t, model.Version(2), updated.MetaData.Version)
}

func TestService_UpdateProduct_BeforeCreation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, NewCreateProduct("corr-1", nil, "Widget", decimal.NewFromFloat(9.99), testTime))
	require.NoError(t, err)

	_, err = svc.UpdateProduct(ctx, NewUpdateProduct("corr-2", created.ID, "Widget", decimal.Zero, testTime.Add(-1)))
	require.Error(t, err)

	errs, ok := err.(engine.ErrorList)
	require.True(t, ok)
	assert.True(t, errs.Contains(engine.CodeUpdatedBeforeCreated))
}

func TestService_GetProduct_NotFound(t *testing.T) {
	svc := newTestService()

	_, err := svc.GetProduct(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(errors.NotFound, err))
}
