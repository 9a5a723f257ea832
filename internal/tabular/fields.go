package tabular

import (
	"strings"

	"github.com/iho/campusledger/internal/domain"
)

// Field names a canonical roster column.
type Field int

const (
	FieldPRN Field = iota
	FieldName
	FieldAcademicYear
	FieldSemester
	FieldCohortYear
	FieldDivision
	FieldRollNumber
	FieldPhone
	FieldEmail
)

// fieldAliases lists the known spellings of each canonical field. Order
// matters: resolution tries aliases in declared order and the first match
// wins, so longer, more specific spellings come first.
var fieldAliases = map[Field][]string{
	FieldPRN:          {"prn number", "prn", "prnnumber"},
	FieldName:         {"student name", "name", "studentname"},
	FieldAcademicYear: {"academic year", "year"},
	FieldSemester:     {"semester", "sem"},
	FieldCohortYear:   {"cohort year", "batch year", "batch"},
	FieldDivision:     {"division", "department", "dept", "div"},
	FieldRollNumber:   {"roll number", "roll no", "rollno", "roll"},
	FieldPhone:        {"mobile number", "mobile", "phone"},
	FieldEmail:        {"email id", "email", "emailid"},
}

// Resolve finds the value of a canonical field in the row despite header
// naming variance. For each alias in declared order it tries an exact key
// match, then a bidirectional substring match against the row keys in column
// order. A field with no matching alias resolves to absent, which is not an
// error by itself.
func (r Row) Resolve(f Field) (string, bool) {
	for _, alias := range fieldAliases[f] {
		if v, ok := r.Values[alias]; ok {
			return strings.TrimSpace(v), true
		}

		for _, k := range r.Keys {
			if k == "" {
				continue
			}
			if strings.Contains(k, alias) || strings.Contains(alias, k) {
				return strings.TrimSpace(r.Values[k]), true
			}
		}
	}

	return "", false
}

// StudentRow is the closed, strongly typed form of a roster row. Loose
// string-keyed handling stops here: everything downstream of field resolution
// works with this struct.
type StudentRow struct {
	PRN          string
	Name         string
	AcademicYear string
	Semester     string
	CohortYear   string
	Division     string
	RollNumber   string
	Phone        string
	Email        string
}

// ResolveStudent maps a parsed row onto the canonical field set. The
// identifier is upper-cased after resolution; absent optional fields stay
// empty.
func ResolveStudent(row Row) StudentRow {
	get := func(f Field) string {
		v, _ := row.Resolve(f)
		return v
	}

	return StudentRow{
		PRN:          domain.NormalizePRN(get(FieldPRN)),
		Name:         get(FieldName),
		AcademicYear: get(FieldAcademicYear),
		Semester:     get(FieldSemester),
		CohortYear:   get(FieldCohortYear),
		Division:     get(FieldDivision),
		RollNumber:   get(FieldRollNumber),
		Phone:        get(FieldPhone),
		Email:        get(FieldEmail),
	}
}
