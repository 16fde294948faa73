package match

import (
	"fmt"
	"time"
)

// Match is one real-world fixture whose timestamp orders all roster logic.
type Match struct {
	ID   int64
	Name string
	Date time.Time
}

func (m Match) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("match name is required")
	}
	if m.Date.IsZero() {
		return fmt.Errorf("match date is required")
	}

	return nil
}
