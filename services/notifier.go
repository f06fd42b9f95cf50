package services

import (
	"context"
	"encoding/json"
	"time"

	"cityflow/datagen/config"
	"cityflow/datagen/models"
	"cityflow/datagen/pipeline"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ManifestKey is the hash holding the latest DatasetInfo per dataset.
const ManifestKey = "datagen:datasets"

var (
	pingAttempts = 5
	pingDelay    = 2 * time.Second
)

// Notifier announces every written dataset on a Redis channel and records
// it in the manifest hash.
type Notifier struct {
	client  *redis.Client
	channel string
	log     *zap.Logger
}

func NewNotifier(ctx context.Context, cfg config.RedisConfig, log *zap.Logger) (*Notifier, error) {
	if cfg.URL == "" {
		return nil, pipeline.Missing("redis", "set REDIS_URL or [redis] url", nil)
	}
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, errors.Wrap(err, "invalid REDIS_URL")
	}
	client := redis.NewClient(opts)

	var lastErr error
	for i := 0; i < pingAttempts; i++ {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		lastErr = client.Ping(pingCtx).Err()
		cancel()
		if lastErr == nil {
			log.Info("redis connected", zap.String("addr", opts.Addr))
			return &Notifier{client: client, channel: cfg.Channel, log: log}, nil
		}
		log.Warn("redis ping failed", zap.Int("attempt", i+1), zap.Int("of", pingAttempts), zap.Error(lastErr))
		select {
		case <-ctx.Done():
			client.Close()
			return nil, ctx.Err()
		case <-time.After(pingDelay):
		}
	}
	client.Close()
	return nil, pipeline.Missing("redis", "start Redis at "+opts.Addr+" or unset REDIS_URL", lastErr)
}

func (n *Notifier) Name() string { return "redis" }

func (n *Notifier) Export(ctx context.Context, t pipeline.Table) error {
	data, err := ManifestMessage(t.Info)
	if err != nil {
		return err
	}
	if err := n.client.HSet(ctx, ManifestKey, t.Name, data).Err(); err != nil {
		return errors.Wrap(err, "store manifest entry")
	}
	if err := n.client.Publish(ctx, n.channel, data).Err(); err != nil {
		return errors.Wrapf(err, "publish on %s", n.channel)
	}
	return nil
}

// Manifest reads back every entry stored by Export.
func (n *Notifier) Manifest(ctx context.Context) ([]models.DatasetInfo, error) {
	entries, err := n.client.HGetAll(ctx, ManifestKey).Result()
	if err != nil {
		return nil, errors.Wrap(err, "read manifest")
	}
	infos := make([]models.DatasetInfo, 0, len(entries))
	for name, raw := range entries {
		var info models.DatasetInfo
		if err := json.Unmarshal([]byte(raw), &info); err != nil {
			return nil, errors.Wrapf(err, "decode manifest entry %s", name)
		}
		infos = append(infos, info)
	}
	return infos, nil
}

func (n *Notifier) Close() error {
	return n.client.Close()
}

func ManifestMessage(info models.DatasetInfo) ([]byte, error) {
	data, err := json.Marshal(info)
	if err != nil {
		return nil, errors.Wrap(err, "encode manifest entry")
	}
	return data, nil
}
