package errors

import (
	"io"
	"testing"

	"github.com/commercestore/commercestore/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestE(t *testing.T) {
	const op Op = "docstore/InMemory.Get"

	err := E(op, model.ID("cart-1"), NotFound)
	e, ok := err.(*Error)
	assert.True(t, ok)
	assert.Equal(t, op, e.Op)
	assert.Equal(t, model.ID("cart-1"), e.ID)
	assert.Equal(t, NotFound, e.Kind)
}

func TestE_LiftsInnerKind(t *testing.T) {
	inner := E(Op("docstore/Repository.Load"), Conflict, Str("stored version 3, expected 4"))
	outer := E(Op("order/Service.CompleteOrder"), inner)

	e, ok := outer.(*Error)
	assert.True(t, ok)
	assert.Equal(t, Conflict, e.Kind)
}

func TestIs(t *testing.T) {
	err := E(Op("op"), NotFound)
	assert.True(t, Is(NotFound, err))
	assert.False(t, Is(Conflict, err))

	wrapped := E(Op("outer"), E(Op("inner"), Conflict))
	assert.True(t, Is(Conflict, wrapped))

	assert.False(t, Is(NotFound, io.EOF))
	assert.False(t, Is(NotFound, nil))
}

func TestMatch(t *testing.T) {
	err := E(Op("cart/Service.GetCart"), Invalid, Str("cart ID is required"))

	assert.True(t, Match(E(Op("cart/Service.GetCart"), Invalid), err))
	assert.True(t, Match(E(Invalid), err))
	assert.False(t, Match(E(Op("cart/Service.GetCart"), NotFound), err))
	assert.False(t, Match(err, io.EOF))
}

func TestError_Error(t *testing.T) {
	err := E(Op("op"), NotFound, Str("missing"))
	assert.Contains(t, err.Error(), "op")
	assert.Contains(t, err.Error(), "item not found")
	assert.Contains(t, err.Error(), "missing")
}
