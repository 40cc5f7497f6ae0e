//go:build unit

package ticket_test

import (
	"testing"

	"rifa-hub/internal/domain/ticket"

	"github.com/stretchr/testify/assert"
)

func TestValidateSelection(t *testing.T) {
	testCases := []struct {
		name    string
		numbers []int
		total   int
		wantErr error
	}{
		{name: "single valid number", numbers: []int{1}, total: 100},
		{name: "several valid numbers", numbers: []int{1, 50, 100}, total: 100},
		{name: "empty selection", numbers: nil, total: 100, wantErr: ticket.ErrEmptySelection},
		{name: "duplicate numbers", numbers: []int{3, 3}, total: 100, wantErr: ticket.ErrDuplicateSelection},
		{name: "zero is out of range", numbers: []int{0}, total: 100, wantErr: ticket.ErrNumberOutOfRange},
		{name: "negative is out of range", numbers: []int{-5}, total: 100, wantErr: ticket.ErrNumberOutOfRange},
		{name: "above campaign range", numbers: []int{101}, total: 100, wantErr: ticket.ErrNumberOutOfRange},
		{name: "boundary number equals total", numbers: []int{100}, total: 100},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ticket.ValidateSelection(tc.numbers, tc.total)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
