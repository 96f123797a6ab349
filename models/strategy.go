package models

// AutoResolveStrategy decides what happens to a freshly detected conflict.
type AutoResolveStrategy string

const (
	StrategyLocalWins  AutoResolveStrategy = "local-wins"
	StrategyRemoteWins AutoResolveStrategy = "remote-wins"
	StrategyManual     AutoResolveStrategy = "manual"
)

// Valid reports whether s is one of the known strategies.
func (s AutoResolveStrategy) Valid() bool {
	switch s {
	case StrategyLocalWins, StrategyRemoteWins, StrategyManual:
		return true
	default:
		return false
	}
}

// Resolution maps an automatic strategy to the resolution it applies.
// StrategyManual maps to ResolutionNone.
func (s AutoResolveStrategy) Resolution() Resolution {
	switch s {
	case StrategyLocalWins:
		return ResolutionLocal
	case StrategyRemoteWins:
		return ResolutionRemote
	default:
		return ResolutionNone
	}
}
