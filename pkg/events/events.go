package events

// Event names relayed to a user's open connections. The names and payload
// shapes are a stable wire contract with the SPA: full row for created/updated,
// {id} for deleted. Changes must be additive.
const (
	ProjectCreated = "project:created"
	ProjectUpdated = "project:updated"
	ProjectDeleted = "project:deleted"

	TaskCreated = "task:created"
	TaskUpdated = "task:updated"
	TaskDeleted = "task:deleted"
)

// Change is the frame written to the websocket: a named event plus its payload.
type Change struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
}

// Ref is the payload of a deletion event.
type Ref struct {
	ID int `json:"id"`
}

func New(event string, payload interface{}) Change {
	return Change{Event: event, Payload: payload}
}

// Deleted builds a deletion event carrying only the row id.
func Deleted(event string, id int) Change {
	return Change{Event: event, Payload: Ref{ID: id}}
}
