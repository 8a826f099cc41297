package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"marketplace/internal/middleware"
	"marketplace/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string            `json:"error"`
	Kind  usecase.ErrorKind `json:"kind,omitempty"`
}

// 単体のレスポンスは data で包む
type DataResponse struct {
	Data any `json:"data"`
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg, Kind: usecase.KindValidation})
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if ae, ok := usecase.AsAppError(err); ok {
		if ae.Kind == usecase.KindUpstream {
			slog.ErrorContext(c.Request().Context(), "store error",
				"err", err,
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			)
		}
		return c.JSON(ae.Status(), ErrorResponse{Error: ae.Message, Kind: ae.Kind})
	}

	//500
	slog.ErrorContext(c.Request().Context(), "unhandled error", "err", err)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// 空なら0
func queryInt64(c echo.Context, name string) (int64, error) {
	v := c.QueryParam(name)
	if v == "" {
		return 0, nil
	}
	return strconv.ParseInt(v, 10, 64)
}

func queryInt(c echo.Context, name string) (int, error) {
	v := c.QueryParam(name)
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}

// limit / offset（未指定なら usecase 側の既定値）
func pageParams(c echo.Context) (limit int, offset int, msg string) {
	limit, err := queryInt(c, "limit")
	if err != nil {
		return 0, 0, "invalid limit"
	}
	offset, err = queryInt(c, "offset")
	if err != nil {
		return 0, 0, "invalid offset"
	}
	return limit, offset, ""
}

// AuthJWTが入れたuser_id
func getUserIDFromContext(c echo.Context) (int64, bool) {
	v := c.Get(middleware.CtxUserIDKey)
	if v == nil {
		return 0, false
	}

	id, ok := v.(int64)
	if !ok {
		return 0, false
	}

	return id, true
}
