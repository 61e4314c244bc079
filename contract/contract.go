//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"chat-feed/domain"
	"chat-feed/domain/event"
	"context"
	"reflect"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

type EventSink interface {
	Consume(ctx context.Context, e event.DomainEvent) error
}

type IRegistry interface {
	Sinks() []EventSink
	Subscribe(viewerID string, sink EventSink)
	Unsubscribe(viewerID string)
}

// IMessageStore is the single source of truth rendered by the view.
type IMessageStore interface {
	Seed(ctx context.Context, messages []domain.Message) error
	Append(ctx context.Context, message domain.Message) (domain.MessageID, error)
	Snapshot() []domain.Message
	Seeded() bool
}

// Random is the source of every random choice the simulation makes.
type Random interface {
	// Float64 returns a value in [0,1).
	Float64() float64
	// IntN returns a value in [0,n). n must be positive.
	IntN(n int) int
}
