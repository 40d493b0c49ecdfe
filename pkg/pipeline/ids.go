package pipeline

import (
	"strings"

	"github.com/google/uuid"
)

// NewID returns a random 16-character lowercase hex id, the shape canvas
// editors generate for new nodes and edges.
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
}
