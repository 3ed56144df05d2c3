package client

import (
	"context"
	"time"

	"milkline/config"

	"github.com/fluent/fluent-logger-golang/fluent"
	"go.uber.org/zap"
)

// FluentdClient 轉送稽核紀錄到 Fluentd
type FluentdClient struct {
	client    *fluent.Fluent
	tagPrefix string
}

func NewFluentdClient(logger *zap.Logger, config *config.Configuration) (*FluentdClient, error) {
	prefix := string("milkline")
	if config.Fluentd.TagPrefix != "" {
		prefix = config.Fluentd.TagPrefix
	}
	var timeout time.Duration
	if config.Fluentd.Timeout > 0 {
		timeout = time.Duration(config.Fluentd.Timeout) * time.Millisecond
	}

	f, err := fluent.New(fluent.Config{
		FluentHost: config.Fluentd.Host,
		FluentPort: config.Fluentd.Port,
		Timeout:    timeout,
		TagPrefix:  prefix,
	})
	if err != nil {
		logger.Error("failed to init fluentd client", zap.Error(err))
		return nil, err
	}
	return &FluentdClient{client: f, tagPrefix: prefix}, nil
}

func (c *FluentdClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// Post 發送一筆紀錄；fluent-logger-golang 不支援 context 取消，ctx 僅保留介面對稱
func (c *FluentdClient) Post(ctx context.Context, tag string, message any) error {
	return c.client.Post(tag, message)
}
