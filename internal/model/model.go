package model

import (
	"time"

	uuid "github.com/satori/go.uuid"
)

// ID is an opaque aggregate identifier. The typed identifiers below wrap it
// so that, e.g., a DeliveryID cannot be passed where an OrderID is expected.
type ID string

// NewID returns a freshly generated identifier.
func NewID() ID {
	return ID(uuid.NewV4().String())
}

type (
	CartID     string
	OrderID    string
	ProductID  string
	DeliveryID string
	CustomerID string
)

func (id CartID) ID() ID     { return ID(id) }
func (id OrderID) ID() ID    { return ID(id) }
func (id ProductID) ID() ID  { return ID(id) }
func (id DeliveryID) ID() ID { return ID(id) }

func NewCartID() CartID         { return CartID(NewID()) }
func NewOrderID() OrderID       { return OrderID(NewID()) }
func NewProductID() ProductID   { return ProductID(NewID()) }
func NewDeliveryID() DeliveryID { return DeliveryID(NewID()) }

// SKU identifies a product variant inside a cart.
type SKU string

// Quantity is a count of units of one SKU.
type Quantity int64

// Version is the per-aggregate monotonically increasing counter.
// 0 means "freshly constructed, never persisted".
type Version int64

// StreamID is the aggregate identity reinterpreted as the correlation key
// of its event stream.
type StreamID string

// CommandID identifies one command instance; it becomes the CausationID of
// the events that command produces.
type CommandID string

// CorrelationID threads one logical business operation across commands and
// events for tracing.
type CorrelationID string

// CausationID is the CommandID of the command that produced an event.
type CausationID string

// MetaData carries the event-sourcing bookkeeping of an aggregate snapshot.
type MetaData struct {
	StreamID  StreamID  `json:"stream_id"`
	Version   Version   `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

// NewMetaData returns the metadata of a freshly constructed, never
// persisted aggregate.
func NewMetaData(id ID) MetaData {
	return MetaData{StreamID: StreamID(id)}
}

// Next returns the metadata one version ahead, stamped at the given time.
func (m MetaData) Next(at time.Time) MetaData {
	return MetaData{
		StreamID:  m.StreamID,
		Version:   m.Version + 1,
		Timestamp: at,
	}
}
