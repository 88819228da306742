package model

import (
	"strings"

	"github.com/google/uuid"
)

// NewHumanID mints a short, human-readable id like "TCH-4F2A9C01",
// distinct from the storage-assigned ObjectID.
func NewHumanID(prefix string) string {
	compact := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return prefix + "-" + compact[:8]
}
