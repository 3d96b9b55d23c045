package api

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"
)

// Binder decodes JSON bodies with sonic and falls back to echo's default
// binder for query and path params.
type Binder struct{}

func NewBinder() *Binder {
	return &Binder{}
}

func (b *Binder) Bind(i any, c echo.Context) error {
	req := c.Request()
	if req.ContentLength != 0 && strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("read body: %s", err.Error()))
		}
		if err = sonic.Unmarshal(body, i); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("unmarshal body: %s", err.Error()))
		}
	}

	db := new(echo.DefaultBinder)
	if err := db.BindQueryParams(c, i); err != nil {
		return err
	}

	return db.BindPathParams(c, i)
}
