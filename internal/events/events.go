package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nsqio/go-nsq"
	"github.com/sirupsen/logrus"

	"chemviz/internal/config"
	"chemviz/internal/dao"
)

// Producer is the subset of *nsq.Producer used for publishing.
type Producer interface {
	Publish(topic string, body []byte) error
	Stop()
}

// Publisher sends analysis events to an NSQ topic.
type Publisher struct {
	producer Producer
	topic    string
	logger   *logrus.Entry
}

func NewPublisher(conf config.NSQConfig, logger *logrus.Entry) (*Publisher, error) {
	producer, err := nsq.NewProducer(conf.NSQDAddr, nsq.NewConfig())
	if err != nil {
		return nil, fmt.Errorf("create NSQ producer failed: %w", err)
	}
	return NewPublisherWithProducer(producer, conf.Topic, logger), nil
}

func NewPublisherWithProducer(producer Producer, topic string, logger *logrus.Entry) *Publisher {
	return &Publisher{
		producer: producer,
		topic:    topic,
		logger:   logger,
	}
}

func (p *Publisher) NotifyAnalysis(ctx context.Context, event *dao.AnalysisEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal analysis event: %w", err)
	}
	if err := p.producer.Publish(p.topic, body); err != nil {
		return fmt.Errorf("publish to %s: %w", p.topic, err)
	}
	p.logger.WithFields(logrus.Fields{
		"topic": p.topic,
		"id":    event.Id,
	}).Debug("analysis event published")
	return nil
}

func (p *Publisher) Stop() {
	p.producer.Stop()
}
