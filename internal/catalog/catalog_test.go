package catalog

import (
	"testing"

	"github.com/Domenick1991/skyfly/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Lookup(t *testing.T) {
	c := Default()

	f, ok := c.Lookup("ai101")
	require.True(t, ok)
	assert.Equal(t, "AI101", f.Number)
	assert.Equal(t, "Delhi", f.From)
	assert.Equal(t, "Mumbai", f.To)
	assert.Equal(t, int64(5500), f.Price)

	_, ok = c.Lookup(" AI505 ")
	assert.True(t, ok)

	_, ok = c.Lookup("XX999")
	assert.False(t, ok)
}

func TestAll_ReturnsCopy(t *testing.T) {
	c := Default()

	all := c.All()
	require.Len(t, all, 5)
	all[0].Price = 1

	f, _ := c.Lookup("AI101")
	assert.Equal(t, int64(5500), f.Price)
}

func TestSearchByCity(t *testing.T) {
	c := Default()

	found := c.SearchByCity("  delhi ")
	require.Len(t, found, 3)
	assert.Equal(t, "AI101", found[0].Number)
	assert.Equal(t, "AI202", found[1].Number)
	assert.Equal(t, "AI404", found[2].Number)

	assert.Empty(t, c.SearchByCity("Goa"))
	assert.Empty(t, c.SearchByCity(""))
}

func TestNew_Validation(t *testing.T) {
	testCases := []struct {
		name    string
		flights []domain.Flight
	}{
		{name: "empty table", flights: nil},
		{name: "blank number", flights: []domain.Flight{{Number: " ", From: "A", To: "B", Price: 1}}},
		{name: "missing city", flights: []domain.Flight{{Number: "X1", From: "A", Price: 1}}},
		{name: "zero price", flights: []domain.Flight{{Number: "X1", From: "A", To: "B"}}},
		{name: "duplicate number", flights: []domain.Flight{
			{Number: "x1", From: "A", To: "B", Price: 1},
			{Number: "X1", From: "B", To: "A", Price: 2},
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.flights)
			assert.Error(t, err)
		})
	}
}

func TestNew_NormalizesNumbers(t *testing.T) {
	c, err := New([]domain.Flight{{Number: "sf7", From: "Pune", To: "Goa", Price: 3000}})
	require.NoError(t, err)

	f, ok := c.Lookup("SF7")
	require.True(t, ok)
	assert.Equal(t, "SF7", f.Number)
}
