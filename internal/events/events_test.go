package events

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/nsqio/go-nsq"
	"github.com/sirupsen/logrus"

	"chemviz/internal/config"
	"chemviz/internal/dao"
)

type fakeProducer struct {
	topic   string
	bodies  [][]byte
	err     error
	stopped bool
}

func (f *fakeProducer) Publish(topic string, body []byte) error {
	if f.err != nil {
		return f.err
	}
	f.topic = topic
	f.bodies = append(f.bodies, body)
	return nil
}

func (f *fakeProducer) Stop() { f.stopped = true }

func quietLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func TestNotifyAnalysis_PublishesJSON(t *testing.T) {
	fp := &fakeProducer{}
	p := NewPublisherWithProducer(fp, "chemviz_analyses", quietLogger())

	dist := dao.NewTypeDistribution()
	dist.Set("Valve", 5)
	dist.Set("Pump", 3)
	event := &dao.AnalysisEvent{
		Id:               11,
		File:             "plant.csv",
		Summary:          dao.Summary{TotalCount: 8, AvgFlowrate: 1.5},
		TypeDistribution: dist,
		AnalyzedAt:       "2025-01-01T00:00:00Z",
	}
	if err := p.NotifyAnalysis(context.Background(), event); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if fp.topic != "chemviz_analyses" || len(fp.bodies) != 1 {
		t.Fatalf("unexpected publish: %s %d", fp.topic, len(fp.bodies))
	}
	body := string(fp.bodies[0])
	if !strings.Contains(body, `"type_distribution":{"Valve":5,"Pump":3}`) {
		t.Fatalf("distribution order lost: %s", body)
	}
	var decoded dao.AnalysisEvent
	if err := json.Unmarshal(fp.bodies[0], &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Id != 11 || decoded.File != "plant.csv" || decoded.Summary.TotalCount != 8 {
		t.Fatalf("unexpected event: %+v", decoded)
	}

	p.Stop()
	if !fp.stopped {
		t.Fatalf("producer not stopped")
	}
}

func TestNotifyAnalysis_PublishError(t *testing.T) {
	p := NewPublisherWithProducer(&fakeProducer{err: errors.New("refused")}, "t", quietLogger())
	if err := p.NotifyAnalysis(context.Background(), &dao.AnalysisEvent{Id: 1}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestNotifyAnalysis_CanceledContext(t *testing.T) {
	fp := &fakeProducer{}
	p := NewPublisherWithProducer(fp, "t", quietLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := p.NotifyAnalysis(ctx, &dao.AnalysisEvent{Id: 1}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(fp.bodies) != 0 {
		t.Fatalf("nothing should be published")
	}
}

func TestNewPublisher(t *testing.T) {
	p, err := NewPublisher(config.NSQConfig{Enabled: true, NSQDAddr: "127.0.0.1:4150", Topic: "t"}, quietLogger())
	if err != nil {
		t.Fatalf("new publisher: %v", err)
	}
	p.Stop()
}

func TestConsumer_HandleMessage(t *testing.T) {
	var got []*dao.AnalysisEvent
	c, err := NewConsumer(config.NSQConfig{Topic: "chemviz_analyses"}, func(e *dao.AnalysisEvent) error {
		got = append(got, e)
		return nil
	}, quietLogger())
	if err != nil {
		t.Fatalf("new consumer: %v", err)
	}

	var id nsq.MessageID
	msg := nsq.NewMessage(id, []byte(`{"id": 9, "file": "plant.csv", "summary": {"total_count": 2}, "type_distribution": {"Pump": 2}, "analyzed_at": "2024-05-01T08:00:00Z"}`))
	if err := c.HandleMessage(msg); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(got) != 1 || got[0].Id != 9 || got[0].Summary.TotalCount != 2 {
		t.Fatalf("unexpected events: %+v", got)
	}
	if v, _ := got[0].TypeDistribution.Get("Pump"); v != 2 {
		t.Fatalf("distribution not decoded")
	}

	// undecodable bodies are dropped without redelivery
	if err := c.HandleMessage(nsq.NewMessage(id, []byte("not json"))); err != nil {
		t.Fatalf("garbage must not be requeued: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("garbage must not reach the handler")
	}
}

func TestConsumer_HandlerError(t *testing.T) {
	boom := errors.New("boom")
	c, err := NewConsumer(config.NSQConfig{Topic: "chemviz_analyses", Channel: "custom"}, func(*dao.AnalysisEvent) error {
		return boom
	}, quietLogger())
	if err != nil {
		t.Fatalf("new consumer: %v", err)
	}
	var id nsq.MessageID
	if err := c.HandleMessage(nsq.NewMessage(id, []byte(`{"id": 1}`))); !errors.Is(err, boom) {
		t.Fatalf("expected handler error, got %v", err)
	}
}
