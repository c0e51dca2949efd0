package api

import (
	"net/http"
	"strings"

	"github.com/commercestore/commercestore/internal/engine"
	"github.com/commercestore/commercestore/internal/errors"
	"github.com/commercestore/commercestore/internal/server"
)

func ER(err error) *server.ErrorResponse {
	code := http.StatusInternalServerError
	msg := err.Error()

	if el, ok := err.(engine.ErrorList); ok {
		return &server.ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "command rejected",
			Errors:  el,
		}
	}

	e, ok := err.(*errors.Error)
	if ok {
		slices := strings.Split(msg, ": ")
		msg = slices[len(slices)-1]
		switch e.Kind {
		case errors.Conflict:
			code = http.StatusConflict
		case errors.Duplicate:
			code = http.StatusBadRequest
		case errors.Invalid:
			code = http.StatusBadRequest
		case errors.NotFound:
			code = http.StatusNotFound
		case errors.Permission:
			code = http.StatusUnauthorized
		}
	}

	return &server.ErrorResponse{
		Code:    code,
		Message: msg,
	}
}
