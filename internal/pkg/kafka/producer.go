package kafka

import (
	"AlumniHub/internal/api/config"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

type dispatcherImpl struct {
	producer sarama.SyncProducer
	topic    string
}

// NewDispatcher 创建审核事件投递端
func NewDispatcher(cfg *config.Config) (Dispatcher, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	producer, err := sarama.NewSyncProducer(cfg.Kafka.Brokers, saramaCfg)
	if err != nil {
		return nil, err
	}

	return &dispatcherImpl{
		producer: producer,
		topic:    cfg.KafkaModerationProducer.Topic,
	}, nil
}

// Enqueue 投递一条审核事件
// 以内容ID作为分区键，保证同一条内容的事件有序
func (d *dispatcherImpl) Enqueue(ctx context.Context, event *ModerationEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: d.topic,
		Key:   sarama.StringEncoder(event.ContentID),
		Value: sarama.ByteEncoder(value),
	}

	partition, offset, err := d.producer.SendMessage(msg)
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "moderation event enqueued",
		"eventID", event.EventID, "partition", partition, "offset", offset)
	return nil
}

func (d *dispatcherImpl) Close() error {
	return d.producer.Close()
}
