package eventqueue

import (
	"context"
	"fmt"
	"meetocure-service/internal/app/config"
	"meetocure-service/internal/app/contracts"
	"meetocure-service/internal/app/models"
	"meetocure-service/internal/pkg/constvars"
	"meetocure-service/internal/pkg/exceptions"
	"sync"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Service keeps lifecycle events whose notification could not be persisted
// until the retry worker dispatches them again.
type Service struct {
	ch        *amqp.Channel
	log       *zap.Logger
	queueName string
	dlqName   string
	confirms  chan amqp.Confirmation
	mu        sync.Mutex
}

// NewService declares the durable retry queue and its dead letter queue,
// enables publisher confirms and sets QoS.
func NewService(conn *amqp.Connection, log *zap.Logger, internalConfig *config.InternalConfig) (*Service, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	queueName := internalConfig.RabbitMQ.LifecycleEventQueue
	dlqName := internalConfig.RabbitMQ.LifecycleEventDLQ
	for _, name := range []string{queueName, dlqName} {
		_, err = ch.QueueDeclare(
			name,  // name
			true,  // durable
			false, // autoDelete
			false, // exclusive
			false, // noWait
			nil,   // args
		)
		if err != nil {
			return nil, err
		}
	}

	prefetch := internalConfig.RabbitMQ.Prefetch
	if prefetch <= 0 {
		prefetch = 1
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		return nil, err
	}

	if err := ch.Confirm(false); err != nil {
		return nil, err
	}

	return &Service{
		ch:        ch,
		log:       log,
		queueName: queueName,
		dlqName:   dlqName,
		confirms:  ch.NotifyPublish(make(chan amqp.Confirmation, 1)),
	}, nil
}

var _ contracts.EventQueueService = (*Service)(nil)

// Enqueue publishes the event to the tail of the retry queue and waits for
// the broker confirm.
func (s *Service) Enqueue(ctx context.Context, in *contracts.EnqueueEventInput) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.log.Info("EventQueue.Enqueue called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueueNameKey, s.queueName),
		zap.String(constvars.LoggingEventIDKey, in.Event.EventID),
		zap.Int(constvars.LoggingFailedCountKey, in.Event.FailedCount),
	)

	body, err := json.Marshal(in.Event)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}
	return s.publish(ctx, s.queueName, body)
}

func (s *Service) EnqueueToDeadQueue(ctx context.Context, in *contracts.EnqueueEventInput) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.log.Warn("EventQueue.EnqueueToDeadQueue called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueueNameKey, s.queueName),
		zap.String(constvars.LoggingEventIDKey, in.Event.EventID),
		zap.Int(constvars.LoggingFailedCountKey, in.Event.FailedCount),
	)

	body, err := json.Marshal(in.Event)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}
	return s.publish(ctx, s.dlqName, body)
}

// FetchN retrieves up to N events using basic.get without auto-ack.
func (s *Service) FetchN(ctx context.Context, in *contracts.FetchEventsInput) (*contracts.FetchEventsOutput, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.log.Info("EventQueue.FetchN called", zap.String(constvars.LoggingRequestIDKey, requestID))

	n := in.Max
	if n <= 0 {
		n = 1
	}
	events := make([]contracts.QueuedEvent, 0, n)

	for i := 0; i < n; i++ {
		d, ok, err := s.ch.Get(s.queueName, false)
		if err != nil {
			return nil, exceptions.ErrRabbitMQFetchMessage(err, s.queueName)
		}
		if !ok {
			break
		}

		event := new(models.LifecycleEvent)
		if err := json.Unmarshal(d.Body, event); err != nil {
			// poison message: park it in the DLQ so it is not fetched again
			s.log.Error("EventQueue.FetchN undecodable message moved to DLQ",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			_ = d.Ack(false)
			_ = s.publish(ctx, s.dlqName, d.Body)
			continue
		}
		events = append(events, contracts.QueuedEvent{DeliveryTag: d.DeliveryTag, Event: event})
	}

	return &contracts.FetchEventsOutput{Events: events}, nil
}

func (s *Service) Ack(ctx context.Context, deliveryTag uint64) error {
	if err := s.ch.Ack(deliveryTag, false); err != nil {
		return exceptions.ErrRabbitMQAckMessage(err)
	}
	return nil
}

func (s *Service) Nack(ctx context.Context, deliveryTag uint64, requeue bool) error {
	if err := s.ch.Nack(deliveryTag, false, requeue); err != nil {
		return exceptions.ErrRabbitMQNackMessage(err)
	}
	return nil
}

func (s *Service) Close() error {
	return s.ch.Close()
}

func (s *Service) publish(ctx context.Context, queue string, body []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg := amqp.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp.Persistent,
	}
	if err := s.ch.PublishWithContext(ctx, "", queue, false, false, msg); err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, queue)
	}

	select {
	case confirmed := <-s.confirms:
		if !confirmed.Ack {
			return exceptions.ErrRabbitMQPublishMessage(fmt.Errorf("message not confirmed"), queue)
		}
	case <-ctx.Done():
		return exceptions.ErrRabbitMQPublishMessage(ctx.Err(), queue)
	}
	return nil
}
