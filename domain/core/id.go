package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types.
//
// AwemeID is the scraped video identifier. It is an opaque string and is
// never treated as a numeric quantity: ids such as "007123" keep their
// leading zeros through every layer.
type (
	AwemeID ID
	BatchID ID
)

func (id AwemeID) String() string { return ID(id).String() }
func (id BatchID) String() string { return ID(id).String() }

// NewBatchID creates an identifier for one ingestion run.
func NewBatchID() BatchID {
	return BatchID(NewID())
}

// ParseAwemeID parses a string into AwemeID
func ParseAwemeID(s string) (AwemeID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("aweme ID cannot be empty")
	}
	return AwemeID(s), nil
}
