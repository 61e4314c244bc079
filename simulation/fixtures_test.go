package simulation

import (
	"chat-feed/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

func newTestDirectory(t *testing.T) *domain.Directory {
	t.Helper()
	directory, err := domain.NewDirectory(
		domain.Participant{Name: "Me", Title: "Administrator", Workshop: "Management"},
		[]domain.Participant{
			{ID: "1", Name: "Alice", Title: "Shift lead", Workshop: "Molding"},
			{ID: "2", Name: "Bob", Title: "Technician", Workshop: "Assembly"},
			{ID: "3", Name: "Clara", Title: "Inspector", Workshop: "Quality"},
		},
		[]string{"All machines nominal.", "Fire drill on Monday.", "Stock is fine."},
	)
	require.NoError(t, err)
	return directory
}
