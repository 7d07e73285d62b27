package events

import (
	"github.com/reflowlabs/reflow/pkg/domain/entities"
)

const (
	ReflowStartedEvent   = "reflow.started"
	OrderScheduledEvent  = "reflow.order.scheduled"
	OrderDelayedEvent    = "reflow.order.delayed"
	ReflowCompletedEvent = "reflow.completed"
	ReflowFailedEvent    = "reflow.failed"
)

// ReflowStarted marks the beginning of a reflow run over a batch of
// work orders.
type ReflowStarted struct {
	OrderCount int `json:"order_count"`
}

// OrderScheduled records a single order's computed outcome.
type OrderScheduled struct {
	Result entities.ReflowResult `json:"result"`
}

// OrderDelayed records an order whose new end slipped past its
// original end.
type OrderDelayed struct {
	Result entities.ReflowResult `json:"result"`
	Reason string                `json:"reason"`
}

// ReflowCompleted marks the end of a successful reflow run.
type ReflowCompleted struct {
	Metadata entities.ReflowMetadata `json:"metadata"`
}

// ReflowFailed marks a reflow run that aborted with a fatal error.
type ReflowFailed struct {
	Reason string `json:"reason"`
}

func NewReflowStartedEvent(streamID string, orderCount int) Event {
	return NewEvent(ReflowStartedEvent, streamID, ReflowStarted{OrderCount: orderCount})
}

func NewOrderScheduledEvent(streamID string, result entities.ReflowResult) Event {
	return NewEvent(OrderScheduledEvent, streamID, OrderScheduled{Result: result})
}

func NewOrderDelayedEvent(streamID string, result entities.ReflowResult, reason string) Event {
	return NewEvent(OrderDelayedEvent, streamID, OrderDelayed{Result: result, Reason: reason})
}

func NewReflowCompletedEvent(streamID string, metadata entities.ReflowMetadata) Event {
	return NewEvent(ReflowCompletedEvent, streamID, ReflowCompleted{Metadata: metadata})
}

func NewReflowFailedEvent(streamID string, reason string) Event {
	return NewEvent(ReflowFailedEvent, streamID, ReflowFailed{Reason: reason})
}
