package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// getUserID extracts the authenticated user id placed in the context by the
// token middleware and converts it to uint64.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// validationError responds with the field-check envelope the API has always
// produced: a 400 carrying an array of {"msg": ...} objects, one per failed
// check.
func validationError(c echo.Context, msgs ...string) error {
	out := make([]echo.Map, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, echo.Map{"msg": m})
	}
	return c.JSON(http.StatusBadRequest, echo.Map{"errors": out})
}

// serverError hides internal failure detail behind a generic 500.
func serverError(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, echo.Map{"msg": "Server Error"})
}
