package dotenv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortunelog/fortunelog-dev/pkg/types"
)

func TestLint_CleanFile(t *testing.T) {
	report, err := Lint([]byte("A=1\nB=hello\n# comment\n"))
	require.NoError(t, err)

	assert.True(t, report.Clean())
	assert.Equal(t, 2, report.Table.Len())
}

func TestLint_ReportsExpansionDifference(t *testing.T) {
	report, err := Lint([]byte("A=1\nB=\"${A}x\"\n"))
	require.NoError(t, err)
	require.NoError(t, report.StrictErr)

	require.Len(t, report.Differences, 1)
	d := report.Differences[0]
	assert.Equal(t, "B", d.Key)
	assert.Equal(t, "${A}x", d.LoaderValue)
	assert.Equal(t, "1x", d.StrictValue)
	assert.Empty(t, d.Missing)
	assert.False(t, report.Clean())
}

func TestLint_StrictRejection(t *testing.T) {
	report, err := Lint([]byte("MY-KEY=1\n"))
	require.NoError(t, err)

	assert.Error(t, report.StrictErr)
	assert.Equal(t, "1", report.Table.Get("MY-KEY"))
	assert.False(t, report.Clean())
}

func TestDifference_String(t *testing.T) {
	assert.Equal(t, `B: loader="x" strict="y"`, Difference{Key: "B", LoaderValue: "x", StrictValue: "y"}.String())
	assert.Equal(t, `C: only read by loader ("v")`, Difference{Key: "C", LoaderValue: "v", Missing: MissingInStrict}.String())
	assert.Equal(t, `D: only read by strict dotenv ("w")`, Difference{Key: "D", StrictValue: "w", Missing: MissingInLoader}.String())
}

func TestExport(t *testing.T) {
	table := types.NewEnvTable(
		types.Pair{Key: "B", Value: "two words"},
		types.Pair{Key: "A", Value: "1"},
	)

	out, err := Export(table)
	require.NoError(t, err)
	assert.Equal(t, "A=1\nB=\"two words\"", out)

	back := ParseString(out)
	assert.Equal(t, table.Map(), back.Map())
}
