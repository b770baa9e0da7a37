package cadence

// lifecycle tracks the engine object a component owns.
//
//	unbuilt --build--> active --children changed--> disposed --build--> active
//	   \                  \
//	    `---unmount--------`---unmount--> disposed (final)
type lifecycle uint8

const (
	stateUnbuilt lifecycle = iota
	stateActive
	stateDisposed
)

func (s lifecycle) String() string {
	switch s {
	case stateUnbuilt:
		return "unbuilt"
	case stateActive:
		return "active"
	case stateDisposed:
		return "disposed"
	}
	return "unknown"
}
