package lookup

// State состояние конвейера для последнего отправленного поиска
type State int

const (
	StateIdle State = iota
	StateResolving
	StateFetching
	StateDelivering
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateResolving:
		return "resolving"
	case StateFetching:
		return "fetching"
	case StateDelivering:
		return "delivering"
	default:
		return "unknown"
	}
}
