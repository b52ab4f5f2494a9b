package layer

// Standard priority levels for layers.
// Higher values override lower values during merging.
const (
	// PriorityBuiltin is the lowest priority for registered defaults.
	PriorityBuiltin = 0

	// PriorityUser is for user settings files.
	PriorityUser = 100

	// PriorityEnv is for environment variable overrides.
	PriorityEnv = 500

	// PriorityArgs is for command-line argument overrides.
	PriorityArgs = 600
)

// DefaultPriority returns the default priority for a given source.
func DefaultPriority(source Source) int {
	switch source {
	case SourceUser:
		return PriorityUser
	case SourceEnv:
		return PriorityEnv
	case SourceArgs:
		return PriorityArgs
	default:
		return PriorityBuiltin
	}
}
