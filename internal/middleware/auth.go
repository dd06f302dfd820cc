package middleware

import (
	"github.com/gitachi143/speechReader/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Auth gates button handlers behind the password check. Text messages
// are left unguarded so the password itself can reach the handler.
func Auth(authService *service.AuthService, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			userID := c.Sender().ID

			if err := authService.EnsureUserExists(userID); err != nil {
				logger.Error("Failed to ensure user exists in middleware", zap.Error(err))
				return c.Send("Something went wrong. Please try again later.")
			}

			authorized, err := authService.IsAuthorized(userID)
			if err != nil {
				logger.Error("Failed to check authorization in middleware", zap.Error(err))
				return c.Send("Something went wrong. Please try again later.")
			}

			if !authorized {
				if c.Callback() != nil {
					return c.Respond(&tele.CallbackResponse{
						Text:      "Enter the password first",
						ShowAlert: true,
					})
				}
				return c.Send("This reading trainer is invite-only. Enter the password to continue:")
			}

			return next(c)
		}
	}
}
