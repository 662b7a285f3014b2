package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/dimitrije/todo-api/internal/services"
	"github.com/dimitrije/todo-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

func writeDetail(c *drift.Context, status int, detail string) {
	_ = c.JSON(status, dto.ErrorResponse{Detail: detail})
}

// writeError maps a service error onto the {detail} envelope. Validation
// and not-found kinds keep their status; anything else is a store error.
func writeError(c *drift.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		writeDetail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotFound):
		writeDetail(c, http.StatusNotFound, err.Error())
	default:
		slog.Error("request failed",
			"error", err,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)
		writeDetail(c, http.StatusInternalServerError, err.Error())
	}
}

func parseIDParam(c *drift.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		writeDetail(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}

// hasBody reports whether the request carries a body to bind. The mobile
// client sends register, login and list commands as query parameters.
func hasBody(c *drift.Context) bool {
	return c.Request.ContentLength != 0
}

func queryInt64(c *drift.Context, name string) (int64, error) {
	v := strings.TrimSpace(c.QueryParam(name))
	if v == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, errors.New("invalid " + name)
	}
	return n, nil
}

func queryBool(c *drift.Context, name string) (bool, error) {
	v := strings.TrimSpace(c.QueryParam(name))
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.New("invalid " + name)
	}
	return b, nil
}
