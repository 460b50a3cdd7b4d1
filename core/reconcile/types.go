package reconcile

// Action records how a name was resolved.
type Action int

const (
	// ActionNone means nothing was resolved.
	ActionNone Action = iota
	// ActionReused means an existing entity was returned.
	ActionReused
	// ActionCreated means a new entity was persisted.
	ActionCreated
)

func (a Action) String() string {
	switch a {
	case ActionReused:
		return "reused"
	case ActionCreated:
		return "created"
	default:
		return "none"
	}
}

// Result is the outcome of resolving one name.
type Result[T any] struct {
	// Entity is the persisted entity, carrying its id.
	Entity T
	// Action tells whether Entity was reused or created.
	Action Action
}
