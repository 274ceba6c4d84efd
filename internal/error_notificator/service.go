package error_notificator

import (
	"context"
	"fmt"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const NotifyTimeout = 5 * time.Second

type Service struct {
	infra   Notificator
	timeout time.Duration
}

func NewService(infra Notificator) *Service {
	return &Service{infra: infra, timeout: NotifyTimeout}
}

// NewBot builds the alert bot with a bounded HTTP client: BotAPI.Send takes
// no context, so the client timeout is what stops a stalled request.
func NewBot(token string) (*tgbotapi.BotAPI, error) {
	return tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, &http.Client{Timeout: NotifyTimeout})
}

// Notify runs detached from the caller's cancellation: the request that
// failed may already be gone, the alert should still go out. It returns
// after at most s.timeout even if the infra call is still running.
func (s *Service) Notify(ctx context.Context, stage string, err error, details string) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- s.infra.Notify(ctx, stage, err, details)
	}()

	select {
	case nErr := <-done:
		return nErr
	case <-ctx.Done():
		return fmt.Errorf("admin alert (%s): %w", stage, ctx.Err())
	}
}
