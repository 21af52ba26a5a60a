package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/nsqio/go-nsq"
	"github.com/sirupsen/logrus"

	"chemviz/internal/config"
	"chemviz/internal/dao"
)

const defaultChannel = "chemviz-tail"

// HandlerFunc receives every decoded analysis event.
type HandlerFunc func(event *dao.AnalysisEvent) error

// Consumer subscribes to the analysis topic and hands events to a HandlerFunc.
type Consumer struct {
	conf     config.NSQConfig
	ctx      context.Context
	cancel   context.CancelFunc
	consumer *nsq.Consumer
	handle   HandlerFunc
	wg       sync.WaitGroup
	logger   *logrus.Entry
}

func NewConsumer(conf config.NSQConfig, handle HandlerFunc, logger *logrus.Entry) (*Consumer, error) {
	ctx, cancel := context.WithCancel(context.Background())

	nsqConf := nsq.NewConfig()
	nsqConf.MsgTimeout = time.Minute
	nsqConf.MaxInFlight = 10
	nsqConf.MaxAttempts = 2

	channel := conf.Channel
	if channel == "" {
		channel = defaultChannel
	}
	consumer, err := nsq.NewConsumer(conf.Topic, channel, nsqConf)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create NSQ consumer: %w", err)
	}

	c := &Consumer{
		conf:     conf,
		ctx:      ctx,
		cancel:   cancel,
		consumer: consumer,
		handle:   handle,
		logger:   logger,
	}
	consumer.AddHandler(c)
	return c, nil
}

// HandleMessage decodes one message. Undecodable bodies are logged and
// finished so they are not redelivered.
func (c *Consumer) HandleMessage(message *nsq.Message) error {
	c.logger.Debugf("Received NSQ message: %s", string(message.Body))

	var event dao.AnalysisEvent
	if err := json.Unmarshal(message.Body, &event); err != nil {
		c.logger.WithError(err).Error("Failed to unmarshal analysis event")
		return nil
	}

	c.logger.WithFields(logrus.Fields{
		"id":   event.Id,
		"file": event.File,
	}).Debug("Processing analysis event")

	if err := c.handle(&event); err != nil {
		c.logger.WithError(err).Errorf("Failed to handle analysis event %d", event.Id)
		return err
	}
	return nil
}

func (c *Consumer) Start() error {
	c.logger.Infof("Starting NSQ consumer on topic %s", c.conf.Topic)

	if err := c.consumer.ConnectToNSQD(c.conf.NSQDAddr); err != nil {
		return fmt.Errorf("failed to connect to NSQ: %w", err)
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		<-c.ctx.Done()
		c.consumer.Stop()
		<-c.consumer.StopChan
	}()
	return nil
}

func (c *Consumer) Stop() {
	c.cancel()
	c.wg.Wait()
}
