package ticket

import "errors"

var (
	ErrEmptySelection     = errors.New("at least one number is required")
	ErrDuplicateSelection = errors.New("duplicate numbers in selection")
	ErrNumberOutOfRange   = errors.New("number outside the campaign range")
)

type Status string

const (
	StatusAvailable Status = "AVAILABLE"
	StatusReserved  Status = "RESERVED"
	StatusPaid      Status = "PAID"
)

// ValidateSelection checks a requested number set against a campaign's range:
// non-empty, no duplicates, every number within [1, totalNumbers].
func ValidateSelection(numbers []int, totalNumbers int) error {
	if len(numbers) == 0 {
		return ErrEmptySelection
	}

	seen := make(map[int]struct{}, len(numbers))
	for _, n := range numbers {
		if n < 1 || n > totalNumbers {
			return ErrNumberOutOfRange
		}
		if _, dup := seen[n]; dup {
			return ErrDuplicateSelection
		}
		seen[n] = struct{}{}
	}
	return nil
}
