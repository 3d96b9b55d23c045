package controller

import (
	"net/http"

	"github.com/agrisolar/portal/internal/pkg/constants"
	"github.com/agrisolar/portal/internal/service/auth"
	"github.com/labstack/echo/v4"
)

func (c *Controller) LoginAdmin(ctx echo.Context) error {
	request := new(auth.LoginAdminRequest)
	if err := ctx.Bind(request); err != nil {
		return err
	}
	if err := ctx.Validate(request); err != nil {
		return err
	}

	token, err := c.auth.LoginAdmin(ctx.Request().Context(), request)
	if err != nil {
		return err
	}

	ctx.SetCookie(&http.Cookie{
		Name:     constants.CookieKeySecretToken,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})

	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
