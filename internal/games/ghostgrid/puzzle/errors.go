package puzzle

import "fmt"

// Batch names used in configuration errors.
const (
	BatchShapes = "shapes"
	BatchGhosts = "ghosts"
)

// ConfigurationError reports a setup batch that was rejected as a whole.
// No entity from the batch is created; other batches are unaffected.
type ConfigurationError struct {
	Batch     string // BatchShapes or BatchGhosts
	Kinds     int    // Number of kinds supplied
	Positions int    // Number of positions supplied
	Reason    string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("puzzle: %s batch rejected (%d kinds, %d positions): %s",
		e.Batch, e.Kinds, e.Positions, e.Reason)
}
