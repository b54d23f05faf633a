package compare

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// Golden files pin the report format. Regenerate with:
//
//	go test ./internal/compare -update
func assertReportGolden(t *testing.T, name string, r *Result) {
	t.Helper()
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, []byte(r.Render()))
}

func TestRender_Violations(t *testing.T) {
	r := &Result{
		Missing: []string{"c.txt"},
		Extra:   []string{"b.txt"},
		Mismatches: []Mismatch{
			{
				Path:          "a.html",
				Actual:        "<p>actual</p>",
				Expected:      "<p>expected</p>",
				Normalization: "whitespace=trim",
			},
		},
	}
	assertReportGolden(t, "report-violations", r)
}

func TestRender_Clean(t *testing.T) {
	assertReportGolden(t, "report-clean", &Result{})
}

func TestRender_Skipped(t *testing.T) {
	assertReportGolden(t, "report-skipped", &Result{Skipped: true})
}
