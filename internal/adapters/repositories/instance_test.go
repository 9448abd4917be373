package repositories

import (
	"context"
	"cvrp-route-service/internal/domain"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextInstanceReader(t *testing.T) {
	input := "4\n10\n0 0 0 0\n1 3 4 5\n2 -2 7 4\n\n3 6 -1 3\n"

	inst, err := NewTextInstanceReader(strings.NewReader(input)).LoadInstance(context.Background())
	require.NoError(t, err)
	require.NoError(t, inst.Validate())

	assert.Equal(t, 10, inst.Capacity)
	require.Len(t, inst.Cities, 4)
	assert.Equal(t, domain.City{ID: 2, X: -2, Y: 7, Demand: 4}, inst.Cities[2])
}

func TestTextInstanceReaderErrors(t *testing.T) {
	tests := map[string]string{
		"bad count":    "x\n10\n",
		"bad capacity": "1\nten\n0 0 0 0\n",
		"short record": "2\n10\n0 0 0 0\n1 2 3\n",
		"bad field":    "2\n10\n0 0 0 0\n1 2 y 3\n",
	}
	for name, input := range tests {
		_, err := NewTextInstanceReader(strings.NewReader(input)).LoadInstance(context.Background())
		if err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}

	_, err := NewTextInstanceReader(strings.NewReader("3\n10\n0 0 0 0\n")).LoadInstance(context.Background())
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("truncated input: err = %v, want io.ErrUnexpectedEOF", err)
	}
}

func TestJSONInstanceRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "instance.json")
	inst := domain.Instance{
		Capacity: 15,
		Cities:   []domain.City{{ID: 0}, {ID: 1, X: 1, Y: 2, Demand: 3}, {ID: 2, X: -4, Y: 5, Demand: 6}},
	}

	require.NoError(t, SaveInstanceJSON(path, inst))
	got, err := NewJSONInstanceFile(path).LoadInstance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, inst, got)
}

func TestJSONInstanceExplicitCosts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "instance.json")
	raw := `{"capacity": 4, "cities": [{"id": 0}, {"id": 1, "demand": 2}],
		"distances": [{"from": 0, "to": 1, "cost": 17}]}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	f := NewJSONInstanceFile(path)
	inst, err := f.LoadInstance(context.Background())
	require.NoError(t, err)
	assert.Len(t, inst.Cities, 2)
	assert.Equal(t, []CostSeed{{From: 0, To: 1, Cost: 17}}, f.Costs())
}

func TestJSONInstanceWithoutCosts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "instance.json")
	require.NoError(t, SaveInstanceJSON(path, domain.Instance{Capacity: 1, Cities: []domain.City{{ID: 0}}}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "distances")

	f := NewJSONInstanceFile(path)
	_, err = f.LoadInstance(context.Background())
	require.NoError(t, err)
	assert.Nil(t, f.Costs())
}

func TestInstanceSeedSortsByID(t *testing.T) {
	seed := InstanceSeed{Capacity: 5, Cities: []CitySeed{{ID: 2}, {ID: 0}, {ID: 1}}}
	inst := seed.Instance()
	for i, c := range inst.Cities {
		assert.Equal(t, i, c.ID)
	}
}

func TestInitSchemaNilDB(t *testing.T) {
	require.Error(t, InitSchema(nil))
}
