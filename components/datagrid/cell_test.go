package datagrid

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellStringForms(t *testing.T) {
	assert.Equal(t, "150", Number(150).String())
	assert.Equal(t, "12.5", Number(12.5).String())
	assert.Equal(t, "0", Number(math.Copysign(0, -1)).String())
	assert.Equal(t, "NaN", Number(math.NaN()).String())
	assert.Equal(t, "", Empty().String())
	assert.Equal(t, "x", Text("x").String())
}

func TestCellFloat(t *testing.T) {
	assert.Equal(t, 0.0, Empty().Float())
	assert.Equal(t, 0.0, Text("  ").Float())
	assert.Equal(t, 3.5, Text("3.5").Float())
	assert.True(t, math.IsNaN(Text("abc").Float()))
}

func TestCellJSON(t *testing.T) {
	var row Row
	require.NoError(t, json.Unmarshal([]byte(`["a", 1.5, null, true]`), &row))
	assert.Equal(t, Row{Text("a"), Number(1.5), Empty(), Text("true")}, row)

	out, err := json.Marshal(row)
	require.NoError(t, err)
	assert.JSONEq(t, `["a", 1.5, null, "true"]`, string(out))
}

func TestCellHasFraction(t *testing.T) {
	assert.True(t, Number(1.25).HasFraction())
	assert.False(t, Number(2).HasFraction())
	assert.False(t, Text("1.5").HasFraction())
	assert.False(t, Number(math.Inf(1)).HasFraction())
}
