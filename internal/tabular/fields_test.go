package tabular_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iho/campusledger/internal/tabular"
)

func rowFrom(pairs ...string) tabular.Row {
	row := tabular.Row{Values: make(map[string]string)}
	for i := 0; i+1 < len(pairs); i += 2 {
		row.Keys = append(row.Keys, pairs[i])
		row.Values[pairs[i]] = pairs[i+1]
	}
	return row
}

func TestResolve_AliasSpellings(t *testing.T) {
	t.Parallel()

	// Every supported spelling of the identifier resolves to the same value.
	for _, key := range []string{"prn number", "prn", "prnnumber"} {
		row := rowFrom(key, "prn2024001", "student name", "Asha")

		v, ok := row.Resolve(tabular.FieldPRN)
		require.True(t, ok, "key %q", key)
		require.Equal(t, "prn2024001", v, "key %q", key)
	}

	for _, key := range []string{"email id", "email", "emailid"} {
		row := rowFrom(key, "a@b.edu")

		v, ok := row.Resolve(tabular.FieldEmail)
		require.True(t, ok, "key %q", key)
		require.Equal(t, "a@b.edu", v)
	}
}

func TestResolve_SubstringMatch(t *testing.T) {
	t.Parallel()

	// Row key contains the alias.
	row := rowFrom("student prn number", "PRN007")
	v, ok := row.Resolve(tabular.FieldPRN)
	require.True(t, ok)
	require.Equal(t, "PRN007", v)

	// Alias contains the row key.
	row = rowFrom("roll", "42")
	v, ok = row.Resolve(tabular.FieldRollNumber)
	require.True(t, ok)
	require.Equal(t, "42", v)
}

func TestResolve_FirstMatchWins(t *testing.T) {
	t.Parallel()

	// "academic year" is declared before bare "year", so the exact longer
	// alias claims its column even when a shorter ambiguous one also matches.
	row := rowFrom("academic year", "2024-25", "year of admission", "2022")

	v, ok := row.Resolve(tabular.FieldAcademicYear)
	require.True(t, ok)
	require.Equal(t, "2024-25", v)
}

func TestResolve_Absent(t *testing.T) {
	t.Parallel()

	row := rowFrom("prn", "PRN001", "name", "Asha")

	_, ok := row.Resolve(tabular.FieldEmail)
	require.False(t, ok)
}

func TestResolve_TrimsValues(t *testing.T) {
	t.Parallel()

	row := rowFrom("prn", "  prn001  ")

	v, _ := row.Resolve(tabular.FieldPRN)
	require.Equal(t, "prn001", v)
}

func TestResolveStudent(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		"PRN Number,Student Name,Division,Roll No,Mobile,Email ID,Semester",
		"prn2024001,Asha Kulkarni,Computer-A,17,9822012345,asha@college.edu,5",
	}, "\n")

	r, err := tabular.NewReader(strings.NewReader(input))
	require.NoError(t, err)

	raw, err := r.Next()
	require.NoError(t, err)

	s := tabular.ResolveStudent(raw)
	require.Equal(t, "PRN2024001", s.PRN, "identifier is upper-cased after resolution")
	require.Equal(t, "Asha Kulkarni", s.Name)
	require.Equal(t, "Computer-A", s.Division)
	require.Equal(t, "17", s.RollNumber)
	require.Equal(t, "9822012345", s.Phone)
	require.Equal(t, "asha@college.edu", s.Email)
	require.Equal(t, "5", s.Semester)
	require.Empty(t, s.CohortYear)
}
