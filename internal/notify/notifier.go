// Package notify publishes realtime updates to per-user PubNub channels.
package notify

import (
	"context"
	"fmt"
	"log/slog"

	pubnub "github.com/pubnub/go/v7"
)

// Publisher delivers a message to a named channel. Delivery is best
// effort: a failed publish never fails the triggering request.
type Publisher interface {
	Publish(ctx context.Context, channel string, message map[string]any)
}

// UserChannel returns the private notification channel for a user.
func UserChannel(userID string) string {
	return fmt.Sprintf("user-%s", userID)
}

type PubNubNotifier struct {
	pn      *pubnub.PubNub
	breaker *breaker
}

type PubNubConfig struct {
	PublishKey   string
	SubscribeKey string
	SecretKey    string
	UserID       string
}

func NewPubNub(cfg PubNubConfig) *PubNubNotifier {
	pnCfg := pubnub.NewConfigWithUserId(pubnub.UserId(cfg.UserID))
	pnCfg.PublishKey = cfg.PublishKey
	pnCfg.SubscribeKey = cfg.SubscribeKey
	pnCfg.SecretKey = cfg.SecretKey

	return &PubNubNotifier{
		pn:      pubnub.NewPubNub(pnCfg),
		breaker: newBreaker(5, defaultCooldown),
	}
}

func (n *PubNubNotifier) Publish(ctx context.Context, channel string, message map[string]any) {
	err := n.breaker.do(func() error {
		_, _, err := n.pn.Publish().
			Channel(channel).
			Message(message).
			Execute()
		return err
	})
	if err != nil {
		slog.Error("notify: publish failed", "channel", channel, "error", err)
	}
}

// Noop discards all notifications. Used when PubNub keys are not
// configured, and in tests.
type Noop struct{}

func (Noop) Publish(ctx context.Context, channel string, message map[string]any) {}
