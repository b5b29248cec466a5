package resource

// Handle is an opaque reference to a host object held in a Table.
// Handle 0 is reserved and always invalid.
type Handle uint32

// Kind tags the type of object behind a handle.
type Kind uint8

const (
	KindAlphabet Kind = iota + 1
	KindConfig
	KindEngine
	KindUnwind
)

func (k Kind) String() string {
	switch k {
	case KindAlphabet:
		return "alphabet"
	case KindConfig:
		return "config"
	case KindEngine:
		return "engine"
	case KindUnwind:
		return "unwind token"
	default:
		return "unknown"
	}
}

// EventType distinguishes lifecycle notifications.
type EventType uint8

const (
	EventCreated EventType = iota
	EventDropped
)

// Event is delivered to observers when a handle is created or dropped.
type Event struct {
	Value  any
	Handle Handle
	Kind   Kind
	Type   EventType
}

// Observer receives lifecycle events.
type Observer interface {
	OnResourceEvent(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

func (f ObserverFunc) OnResourceEvent(e Event) { f(e) }

// Dropper is optionally implemented by values that need cleanup on removal.
type Dropper interface {
	Drop()
}
