package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SAHICA-Code/NovaBank/internal/domain/event"
)

// ErrInvalidClientName is returned when a client name is empty or too short.
var ErrInvalidClientName = errors.New("client name must have at least two characters")

// Client is a borrower record owned by a user. Immutable; mutations return a
// new copy.
type Client struct {
	id           string
	ownerID      string
	name         string
	email        string
	phone        string
	notes        string
	createdAt    time.Time
	updatedAt    time.Time
	domainEvents []event.DomainEvent
}

// NewClient creates a client for the given owner.
func NewClient(ownerID, name, email, phone, notes string, now time.Time) (Client, error) {
	name = strings.TrimSpace(name)
	if len(name) < 2 {
		return Client{}, ErrInvalidClientName
	}
	id := uuid.New().String()
	c := Client{
		id:        id,
		ownerID:   ownerID,
		name:      name,
		email:     strings.TrimSpace(email),
		phone:     strings.TrimSpace(phone),
		notes:     notes,
		createdAt: now,
		updatedAt: now,
	}
	c.domainEvents = append(c.domainEvents, event.NewClientCreated(id, ownerID, name))
	return c, nil
}

// ReconstructClient rebuilds a Client from persistence.
func ReconstructClient(id, ownerID, name, email, phone, notes string, createdAt, updatedAt time.Time) Client {
	return Client{
		id:        id,
		ownerID:   ownerID,
		name:      name,
		email:     email,
		phone:     phone,
		notes:     notes,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// Update replaces the client's contact details.
func (c Client) Update(name, email, phone, notes string, now time.Time) (Client, error) {
	name = strings.TrimSpace(name)
	if len(name) < 2 {
		return c, ErrInvalidClientName
	}
	next := c
	next.name = name
	next.email = strings.TrimSpace(email)
	next.phone = strings.TrimSpace(phone)
	next.notes = notes
	next.updatedAt = now
	return next, nil
}

func (c Client) ID() string                      { return c.id }
func (c Client) OwnerID() string                 { return c.ownerID }
func (c Client) Name() string                    { return c.name }
func (c Client) Email() string                   { return c.email }
func (c Client) Phone() string                   { return c.phone }
func (c Client) Notes() string                   { return c.notes }
func (c Client) CreatedAt() time.Time            { return c.createdAt }
func (c Client) UpdatedAt() time.Time            { return c.updatedAt }
func (c Client) DomainEvents() []event.DomainEvent { return c.domainEvents }

// ClearEvents returns a copy with an empty event list.
func (c Client) ClearEvents() Client {
	next := c
	next.domainEvents = nil
	return next
}
