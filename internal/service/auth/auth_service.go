package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/agrisolar/portal/internal/pkg/constants"
	"github.com/agrisolar/portal/internal/pkg/logger"
	"github.com/agrisolar/portal/internal/pkg/notifier"
	"github.com/agrisolar/portal/internal/pkg/utils"
	"github.com/spf13/viper"
)

// Service covers only the admin gate in front of the upload endpoints. The
// public registration/OTP/lockout workflow is a separate subsystem and is not
// part of this service.
type Service struct {
	notifier notifier.Notifier
}

func NewService(n notifier.Notifier) *Service {
	return &Service{notifier: n}
}

type LoginAdminRequest struct {
	Secret string `json:"secret" validate:"required"`
}

// LoginAdmin checks the shared admin secret and issues the cookie token the
// admin middleware verifies.
func (svc *Service) LoginAdmin(ctx context.Context, request *LoginAdminRequest) (string, error) {
	if request.Secret != viper.GetString(constants.ViperSecretKey) {
		return "", constants.ErrUnauthorized
	}

	token, err := utils.GenerateAuthToken(&utils.AuthTokenWrapper{Secret: request.Secret})
	if err != nil {
		return "", fmt.Errorf("utils.GenerateAuthToken: %w", err)
	}

	if dest := viper.GetString(constants.ViperAlertDestKey); dest != "" {
		msg := fmt.Sprintf("admin login at %s", time.Now().Format(time.RFC3339))
		if notifyErr := svc.notifier.Send(ctx, dest, msg); notifyErr != nil {
			logger.Warnf(ctx, "admin login alert: %s", notifyErr.Error())
		}
	}

	return token, nil
}
