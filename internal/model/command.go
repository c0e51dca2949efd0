package model

// Command encapsulates the intent to transition an aggregate.
type Command interface {
	// CommandID returns the identifier generated when the command was built.
	CommandID() CommandID

	// CommandCorrelationID returns the caller-supplied correlation id.
	CommandCorrelationID() CorrelationID
}

// CommandModel provides an embeddable struct that implements Command.
type CommandModel struct {
	// ID is generated fresh at construction.
	ID CommandID `json:"command_id"`

	// CorrelationID is assigned by the caller, one per business operation.
	CorrelationID CorrelationID `json:"correlation_id"`
}

// NewCommandModel builds the common part of a command with a fresh CommandID.
func NewCommandModel(correlationID CorrelationID) CommandModel {
	return CommandModel{
		ID:            CommandID(NewID()),
		CorrelationID: correlationID,
	}
}

// CommandID implements the Command interface.
func (m CommandModel) CommandID() CommandID {
	return m.ID
}

// CommandCorrelationID implements the Command interface.
func (m CommandModel) CommandCorrelationID() CorrelationID {
	return m.CorrelationID
}
