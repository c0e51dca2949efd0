package api

import (
	"io"
	"net/http"
	"testing"

	"github.com/commercestore/commercestore/internal/engine"
	"github.com/commercestore/commercestore/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestER_EngineErrorList(t *testing.T) {
	errs := engine.ErrorList{engine.ErrOrderAlreadyCompleted}

	res := ER(errs)
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "command rejected", res.Message)
	assert.Equal(t, errs, res.Errors)
}

func TestER_NotFound(t *testing.T) {
	res := ER(errors.E(errors.Op("op"), errors.NotFound, "no such cart"))
	assert.Equal(t, http.StatusNotFound, res.Code)
	assert.Equal(t, "no such cart", res.Message)
}

func TestER_Conflict(t *testing.T) {
	res := ER(errors.E(errors.Op("op"), errors.Conflict))
	assert.Equal(t, http.StatusConflict, res.Code)
}

func TestER_Invalid(t *testing.T) {
	res := ER(errors.E(errors.Op("op"), errors.Invalid, "customer ID is required"))
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "customer ID is required", res.Message)
}

func TestER_Unknown(t *testing.T) {
	res := ER(io.ErrUnexpectedEOF)
	assert.Equal(t, http.StatusInternalServerError, res.Code)
	assert.Equal(t, io.ErrUnexpectedEOF.Error(), res.Message)
}
