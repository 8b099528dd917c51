package contracts

import (
	"context"
	"meetocure-service/internal/app/models"
)

type EnqueueEventInput struct {
	Event *models.LifecycleEvent
}

type FetchEventsInput struct {
	Max int
}

type QueuedEvent struct {
	DeliveryTag uint64
	Event       *models.LifecycleEvent
}

type FetchEventsOutput struct {
	Events []QueuedEvent
}

type EventQueueService interface {
	Enqueue(ctx context.Context, input *EnqueueEventInput) error
	EnqueueToDeadQueue(ctx context.Context, input *EnqueueEventInput) error
	FetchN(ctx context.Context, input *FetchEventsInput) (*FetchEventsOutput, error)
	Ack(ctx context.Context, deliveryTag uint64) error
	// Nack rejects a fetched delivery. With requeue the broker redelivers it.
	Nack(ctx context.Context, deliveryTag uint64, requeue bool) error
}
