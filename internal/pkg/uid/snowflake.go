package uid

import (
	"github.com/bwmarrin/snowflake"
)

// NumberID generates time-ordered int64 IDs suitable for primary keys.
type NumberID interface {
	Generate() int64
}

// Snowflake implements NumberID using twitter snowflake IDs.
type Snowflake struct {
	node *snowflake.Node
}

// NewSnowflake creates a snowflake generator for the given node number.
// Node numbers must be unique per running instance (0-1023).
func NewSnowflake(node int64) (*Snowflake, error) {
	n, err := snowflake.NewNode(node)
	if err != nil {
		return nil, err
	}

	return &Snowflake{node: n}, nil
}

// Generate returns a new int64 ID.
func (s *Snowflake) Generate() int64 {
	return s.node.Generate().Int64()
}
