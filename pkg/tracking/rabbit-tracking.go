package tracking

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/matst80/slask-property/pkg/common"
	"github.com/matst80/slask-property/pkg/messaging"
	"github.com/matst80/slask-property/pkg/types"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	topicPrefix   = "property"
	sendTimeout   = 5 * time.Second
	batchSize     = 50
	flushInterval = 2 * time.Second
)

const (
	EventSession uint16 = 0
	EventFilter  uint16 = 1
	EventSelect  uint16 = 2
)

type RabbitTracking struct {
	connection *amqp.Connection
	queue      *common.QueueHandler[any]
}

func NewRabbitTracking(url string) (*RabbitTracking, error) {
	ret := RabbitTracking{}
	err := ret.connect(url)
	if err != nil {
		return nil, err
	}
	ret.queue = common.NewQueueHandler[any](ret.publish, batchSize, flushInterval)
	return &ret, nil
}

func (t *RabbitTracking) connect(url string) error {
	conn, err := amqp.Dial(url)
	if err != nil {
		return err
	}
	t.connection = conn
	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()
	return messaging.DefineTopic(ch, topicPrefix, messaging.TrackingTopic)
}

// Close flushes queued events before closing the connection.
func (t *RabbitTracking) Close() error {
	t.queue.Close()
	return t.connection.Close()
}

func (t *RabbitTracking) publish(events []any) {
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()
	if err := messaging.SendChange(ctx, t.connection, topicPrefix, messaging.TrackingTopic, events); err != nil {
		log.Printf("could not send %d tracking events: %v", len(events), err)
	}
}

func (t *RabbitTracking) send(data any) {
	t.queue.Add(data)
}

type BaseEvent struct {
	SessionId string `json:"session_id"`
	Event     uint16 `json:"event"`
	Timestamp int64  `json:"ts"`
}

func newBaseEvent(sessionId string, event uint16) *BaseEvent {
	return &BaseEvent{SessionId: sessionId, Event: event, Timestamp: time.Now().Unix()}
}

type Session struct {
	*BaseEvent
	UserAgent string `json:"user_agent,omitempty"`
	Ip        string `json:"ip,omitempty"`
	Language  string `json:"language,omitempty"`
}

func clientIp(r *http.Request) string {
	ip := r.Header.Get("X-Real-Ip")
	if ip == "" {
		ip = r.Header.Get("X-Forwarded-For")
	}
	if ip == "" {
		ip = r.RemoteAddr
	}
	return ip
}

func (rt *RabbitTracking) TrackSession(sessionId string, r *http.Request) {
	rt.send(Session{
		BaseEvent: newBaseEvent(sessionId, EventSession),
		Language:  r.Header.Get("Accept-Language"),
		UserAgent: r.UserAgent(),
		Ip:        clientIp(r),
	})
}

type FilterEvent struct {
	*BaseEvent
	Criteria        *types.FilterCriteria `json:"criteria"`
	NumberOfResults int                   `json:"noi"`
	Referer         string                `json:"referer,omitempty"`
}

func (rt *RabbitTracking) TrackFilter(sessionId string, criteria *types.FilterCriteria, resultLen int, r *http.Request) {
	rt.send(&FilterEvent{
		BaseEvent:       newBaseEvent(sessionId, EventFilter),
		Criteria:        criteria,
		NumberOfResults: resultLen,
		Referer:         r.Header.Get("Referer"),
	})
}

type SelectEvent struct {
	*BaseEvent
	PropertyId types.PropertyId      `json:"property"`
	Source     types.SelectionSource `json:"source"`
}

func (rt *RabbitTracking) TrackSelect(sessionId string, propertyId types.PropertyId, source types.SelectionSource) {
	rt.send(&SelectEvent{
		BaseEvent:  newBaseEvent(sessionId, EventSelect),
		PropertyId: propertyId,
		Source:     source,
	})
}
