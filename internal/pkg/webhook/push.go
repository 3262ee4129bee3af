package webhook

import (
	"AlumniHub/internal/api/config"
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Pusher 将通知推送到外部网关 (站内信以外的渠道，如邮件/企业微信)
type Pusher interface {
	Push(ctx context.Context, payload any) error
}

type pusherImpl struct {
	client *resty.Client
	url    string
	enable bool
}

func NewPusher(cfg *config.Config) Pusher {
	timeout := cfg.Webhook.Timeout
	if timeout <= 0 {
		timeout = 5
	}

	client := resty.New().
		SetTimeout(time.Duration(timeout) * time.Second).
		SetRetryCount(2).
		SetHeader("Content-Type", "application/json")

	return &pusherImpl{
		client: client,
		url:    cfg.Webhook.URL,
		enable: cfg.Webhook.Enable,
	}
}

// Push 推送一条通知，未启用时静默跳过
func (p *pusherImpl) Push(ctx context.Context, payload any) error {
	if !p.enable {
		return nil
	}

	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(payload).
		Post(p.url)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("推送网关返回异常状态: %d", resp.StatusCode())
	}
	return nil
}
