package shared

// EventType identifies a step in a handle's lifecycle.
type EventType uint8

const (
	// EventAdopted is emitted when a raw value is adopted into a new alias group.
	EventAdopted EventType = iota
	// EventAliased is emitted when a handle joins an existing alias group.
	EventAliased
	// EventMoved is emitted when ownership moves from one handle to another.
	EventMoved
	// EventReleased is emitted when a handle gives up its share.
	EventReleased
	// EventFreed is emitted after the last share is released and the value finalized.
	EventFreed
	// EventCloned is emitted when a handle diverges onto a private copy.
	EventCloned
)

func (t EventType) String() string {
	switch t {
	case EventAdopted:
		return "adopted"
	case EventAliased:
		return "aliased"
	case EventMoved:
		return "moved"
	case EventReleased:
		return "released"
	case EventFreed:
		return "freed"
	case EventCloned:
		return "cloned"
	default:
		return "unknown"
	}
}

// Event describes a lifecycle step of an alias group.
type Event struct {
	// Value is the *T the group owns. It is nil for EventFreed.
	Value any
	// GoType is the name of T.
	GoType string
	// Refs is the group's share count after the step.
	Refs int
	// Left is the share count of the group a cloning handle left.
	// Only set for EventCloned.
	Left int
	// Type is the lifecycle step that produced the event.
	Type EventType
}

// Observer receives notifications about handle lifecycle events.
type Observer interface {
	OnHandleEvent(Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

// OnHandleEvent calls f(e).
func (f ObserverFunc) OnHandleEvent(e Event) {
	f(e)
}

// Dropper is optionally implemented by values that need cleanup when
// the last handle sharing them is released. Either T or *T may implement it.
type Dropper interface {
	Drop()
}

// Copier is optionally implemented by values that need more than a plain
// assignment to be duplicated, such as values holding maps or slices.
// Clone uses it to build the private copy. Either T or *T may implement it.
type Copier[T any] interface {
	Copy() T
}

// Option configures a handle at construction.
type Option func(*config)

type config struct {
	observers []Observer
}

// WithObserver attaches o to the alias group created by the constructor.
// Every handle that later joins the group, and every copy made by Clone,
// reports to the same observers.
func WithObserver(o Observer) Option {
	return func(c *config) {
		if o != nil {
			c.observers = append(c.observers, o)
		}
	}
}
