package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

type fakeChannel struct {
	exchangeErr error
	publishErr  error

	exchanges []string
	queues    []string
	bindings  [][3]string
	published []amqp091.Publishing
	keys      []string
	closed    bool
}

func (f *fakeChannel) ExchangeDeclare(name, kind string, durable, _, _, _ bool, _ amqp091.Table) error {
	if f.exchangeErr != nil {
		return f.exchangeErr
	}
	if kind != "direct" || !durable {
		return errors.New("unexpected exchange settings")
	}
	f.exchanges = append(f.exchanges, name)
	return nil
}

func (f *fakeChannel) QueueDeclare(name string, durable, _, _, _ bool, _ amqp091.Table) (amqp091.Queue, error) {
	if !durable {
		return amqp091.Queue{}, errors.New("queue must be durable")
	}
	f.queues = append(f.queues, name)
	return amqp091.Queue{Name: name}, nil
}

func (f *fakeChannel) QueueBind(name, key, exchange string, _ bool, _ amqp091.Table) error {
	f.bindings = append(f.bindings, [3]string{name, key, exchange})
	return nil
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, _, _ bool, msg amqp091.Publishing) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("publish without deadline")
	}
	f.keys = append(f.keys, exchange+"/"+key)
	f.published = append(f.published, msg)
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestAMQPPublisherSetup(t *testing.T) {
	ch := &fakeChannel{}
	if _, err := newAMQPPublisher(ch, "donordesk", "broadcast-alerts"); err != nil {
		t.Fatalf("newAMQPPublisher returned error: %v", err)
	}
	if len(ch.exchanges) != 1 || ch.exchanges[0] != "donordesk" {
		t.Errorf("exchanges = %v", ch.exchanges)
	}
	if len(ch.queues) != 1 || ch.queues[0] != "broadcast-alerts" {
		t.Errorf("queues = %v", ch.queues)
	}
	want := [3]string{"broadcast-alerts", "broadcast-alerts", "donordesk"}
	if len(ch.bindings) != 1 || ch.bindings[0] != want {
		t.Errorf("bindings = %v, want %v", ch.bindings, want)
	}

	failing := &fakeChannel{exchangeErr: errors.New("access refused")}
	if _, err := newAMQPPublisher(failing, "donordesk", "broadcast-alerts"); err == nil {
		t.Error("expected setup error")
	}
}

func TestAMQPPublisherPublishAlert(t *testing.T) {
	ch := &fakeChannel{}
	p, err := newAMQPPublisher(ch, "donordesk", "broadcast-alerts")
	if err != nil {
		t.Fatalf("newAMQPPublisher returned error: %v", err)
	}
	launched := time.Date(2024, 7, 22, 10, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return launched }

	alert := Alert{
		CampaignID:       "emergency-1",
		CampaignName:     "Flood Relief",
		PushNotification: "Help flood victims now",
		SMSMessage:       "Donate to flood relief",
		LaunchedAt:       launched,
	}
	if err := p.PublishAlert(context.Background(), alert); err != nil {
		t.Fatalf("PublishAlert returned error: %v", err)
	}

	if len(ch.published) != 1 {
		t.Fatalf("expected 1 message, got %d", len(ch.published))
	}
	msg := ch.published[0]
	if ch.keys[0] != "donordesk/broadcast-alerts" {
		t.Errorf("routed to %q", ch.keys[0])
	}
	if msg.DeliveryMode != amqp091.Persistent || msg.ContentType != "application/json" {
		t.Errorf("unexpected publishing settings: %+v", msg)
	}
	if msg.MessageId != "emergency-1" || !msg.Timestamp.Equal(launched) {
		t.Errorf("unexpected message metadata: id=%q ts=%v", msg.MessageId, msg.Timestamp)
	}

	decoded, err := AlertFromJSON(msg.Body)
	if err != nil {
		t.Fatalf("AlertFromJSON returned error: %v", err)
	}
	if decoded.CampaignName != "Flood Relief" || decoded.SMSMessage != alert.SMSMessage {
		t.Errorf("decoded alert = %+v", decoded)
	}
}

func TestAMQPPublisherPublishError(t *testing.T) {
	ch := &fakeChannel{}
	p, err := newAMQPPublisher(ch, "donordesk", "broadcast-alerts")
	if err != nil {
		t.Fatalf("newAMQPPublisher returned error: %v", err)
	}
	ch.publishErr = amqp091.ErrClosed
	if err := p.PublishAlert(context.Background(), Alert{CampaignID: "x"}); !errors.Is(err, amqp091.ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}

	if err := p.Close(); err != nil {
		t.Errorf("Close returned error: %v", err)
	}
	if !ch.closed {
		t.Error("channel not closed")
	}
}
