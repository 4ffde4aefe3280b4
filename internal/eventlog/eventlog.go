// Package eventlog records inventory mutations. A Log is created by the
// caller and handed to whoever performs writes; there is no package state.
package eventlog

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Action string

const (
	ActionCreate Action = "create"
	ActionDelete Action = "delete"
)

type Entity string

const (
	EntityProduct  Entity = "product"
	EntityCategory Entity = "category"
)

type Event struct {
	ID       uuid.UUID `json:"id"`
	Action   Action    `json:"action"`
	Entity   Entity    `json:"entity"`
	EntityID int       `json:"entity_id"`
	Name     string    `json:"name,omitempty"`
	Actor    string    `json:"actor,omitempty"`
	At       time.Time `json:"at"`
}

// NewEvent stamps an event with a fresh ID and the current UTC time.
func NewEvent(action Action, entity Entity, entityID int, name, actor string) Event {
	return Event{
		ID:       uuid.New(),
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Name:     name,
		Actor:    actor,
		At:       time.Now().UTC(),
	}
}

// Log is an append-only list of events, newest last.
type Log interface {
	Append(ctx context.Context, e Event) error
	// List returns up to limit of the most recent events, newest first.
	// A limit <= 0 returns everything.
	List(ctx context.Context, limit int) ([]Event, error)
}
