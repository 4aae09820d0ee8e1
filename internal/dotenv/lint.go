package dotenv

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/joho/godotenv"

	"github.com/fortunelog/fortunelog-dev/pkg/types"
)

// Difference is a key that the loader and a strict dotenv reader interpret
// differently. Missing reports which side lacks the key, if any.
type Difference struct {
	Key         string
	LoaderValue string
	StrictValue string
	Missing     string
}

// Sides named in Difference.Missing.
const (
	MissingInLoader = "loader"
	MissingInStrict = "strict"
)

func (d Difference) String() string {
	switch d.Missing {
	case MissingInLoader:
		return fmt.Sprintf("%s: only read by strict dotenv (%q)", d.Key, d.StrictValue)
	case MissingInStrict:
		return fmt.Sprintf("%s: only read by loader (%q)", d.Key, d.LoaderValue)
	default:
		return fmt.Sprintf("%s: loader=%q strict=%q", d.Key, d.LoaderValue, d.StrictValue)
	}
}

// LintReport compares the loader against godotenv for the same content.
// StrictErr is set when godotenv rejects the file outright.
type LintReport struct {
	Table       types.EnvTable
	Differences []Difference
	StrictErr   error
}

// Clean reports whether both readers agree on every key.
func (r LintReport) Clean() bool {
	return r.StrictErr == nil && len(r.Differences) == 0
}

// Lint parses content with the permissive loader and with godotenv and
// reports every key where the two disagree: inline comments, variable
// expansion and escape sequences are the usual causes.
func Lint(content []byte) (LintReport, error) {
	table, err := Parse(bytes.NewReader(content))
	if err != nil {
		return LintReport{}, err
	}
	report := LintReport{Table: table}

	strict, err := godotenv.Parse(bytes.NewReader(content))
	if err != nil {
		report.StrictErr = err
		return report, nil
	}

	for _, p := range table.Pairs() {
		sv, ok := strict[p.Key]
		switch {
		case !ok:
			report.Differences = append(report.Differences, Difference{Key: p.Key, LoaderValue: p.Value, Missing: MissingInStrict})
		case sv != p.Value:
			report.Differences = append(report.Differences, Difference{Key: p.Key, LoaderValue: p.Value, StrictValue: sv})
		}
	}

	var extra []string
	for k := range strict {
		if _, ok := table.Lookup(k); !ok {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	for _, k := range extra {
		report.Differences = append(report.Differences, Difference{Key: k, StrictValue: strict[k], Missing: MissingInLoader})
	}
	return report, nil
}

// Export renders table in canonical dotenv form sorted by key. Integer values
// are written bare, everything else double-quoted with godotenv escaping.
func Export(table types.EnvTable) (string, error) {
	return godotenv.Marshal(table.Map())
}
