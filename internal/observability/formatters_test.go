package observability

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/hirehub/internal/apply"
	"github.com/jonathan/hirehub/internal/types"
	"github.com/stretchr/testify/assert"
)

func sampleJob() types.Job {
	return types.Job{
		ID:               "2",
		Title:            "Backend Engineer",
		Company:          "DataFlow Systems",
		Location:         "Remote",
		ExperienceLevel:  types.Senior,
		JobType:          types.FullTime,
		Category:         types.Backend,
		Salary:           types.Salary{Min: 120000, Max: 160000, Currency: "USD"},
		Description:      "Design and operate the services behind our streaming platform.",
		Responsibilities: []string{"Own APIs", "Review code"},
		Qualifications:   []string{"5+ years of Go"},
		Benefits:         []string{"Equity"},
		CompanyWebsite:   "https://dataflow.example.com",
		PostedDate:       "2024-03-01",
	}
}

func TestFormatSalary(t *testing.T) {
	tests := []struct {
		name string
		job  types.Job
		want string
	}{
		{
			name: "yearly",
			job:  types.Job{ExperienceLevel: types.Senior, Salary: types.Salary{Min: 120000, Max: 160000}},
			want: "$120k - $160k per year",
		},
		{
			name: "rounds to nearest thousand",
			job:  types.Job{ExperienceLevel: types.MidLevel, Salary: types.Salary{Min: 85500, Max: 99499}},
			want: "$86k - $99k per year",
		},
		{
			name: "hourly internship",
			job:  types.Job{ExperienceLevel: types.Internship, Salary: types.Salary{Min: 35, Max: 45}},
			want: "$35 - $45/hour",
		},
		{
			name: "yearly internship",
			job:  types.Job{ExperienceLevel: types.Internship, Salary: types.Salary{Min: 30000, Max: 40000}},
			want: "$30k - $40k per year",
		},
		{
			name: "small non-intern values",
			job:  types.Job{ExperienceLevel: types.Lead, Salary: types.Salary{Min: 50, Max: 900}},
			want: "$50 - $900 per year",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatSalary(tt.job))
		})
	}
}

func TestPrintJobList(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	job := sampleJob()
	filters := types.DefaultFilters()
	filters.Location = "Remote"
	p.PrintJobList([]types.Job{job}, 10, filters)
	output := buf.String()

	assert.Contains(t, output, "JOB LISTINGS")
	assert.Contains(t, output, "Showing 1 of 10 jobs")
	assert.Contains(t, output, "Filters: Remote")
	assert.Contains(t, output, "[D] Backend Engineer  (#2)")
	assert.Contains(t, output, "$120k - $160k per year")
}

func TestPrintJobList_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintJobList(nil, 3, types.DefaultFilters())
	output := buf.String()

	assert.Contains(t, output, "Showing 0 of 3 jobs")
	assert.Contains(t, output, "No jobs found matching your criteria.")
	assert.NotContains(t, output, "Filters:")
}

func TestDescribeFilters(t *testing.T) {
	assert.Equal(t, "none", DescribeFilters(types.DefaultFilters()))
	assert.Equal(t, "none", DescribeFilters(types.FilterCriteria{SearchQuery: "  "}))

	c := types.FilterCriteria{
		Category:    types.Design,
		Experience:  types.Senior,
		SearchQuery: "ux ",
	}
	assert.Equal(t, `Design, Senior, "ux"`, DescribeFilters(c))
}

func TestPrintJobDetail(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	job := sampleJob()
	p.PrintJobDetail(&job)
	output := buf.String()

	assert.Contains(t, output, "BACKEND ENGINEER")
	assert.Contains(t, output, "DataFlow Systems")
	assert.Contains(t, output, "Responsibilities:")
	assert.Contains(t, output, "• Own APIs")
	assert.Contains(t, output, "Benefits:")
	assert.Contains(t, output, "Website:  https://dataflow.example.com")
	assert.Contains(t, output, "Posted:      2024-03-01")
}

func TestPrintJobDetail_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintJobDetail(nil)

	assert.Empty(t, buf.String())
}

func TestPrintJobDetail_TruncatesLongLists(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	job := sampleJob()
	job.Responsibilities = []string{"a", "b", "c", "d", "e", "f", "g"}
	p.PrintJobDetail(&job)

	assert.Contains(t, buf.String(), "... and 2 more")
}

func TestPrintMessage(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintMessage("Job not found")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[1], "Job not found")
}

func TestPrintFieldErrors(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintFieldErrors(apply.FieldErrors{
		apply.FieldResume: apply.MsgResumeRequired,
		apply.FieldName:   apply.MsgNameRequired,
	})
	output := buf.String()

	assert.Contains(t, output, "APPLICATION ERRORS")
	assert.Less(t, strings.Index(output, "Name is required"), strings.Index(output, "Please upload your resume"))
}

func TestPrintFieldErrors_Valid(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintFieldErrors(apply.FieldErrors{})

	assert.Empty(t, buf.String())
}

func TestPrintReceipt(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	job := sampleJob()
	id := uuid.New()
	p.PrintReceipt(&job, &types.ApplicationReceipt{
		ConfirmationID: id,
		JobID:          job.ID,
		SubmittedAt:    time.Date(2024, 3, 2, 10, 30, 0, 0, time.UTC),
	})
	output := buf.String()

	assert.Contains(t, output, "Application Submitted!")
	assert.Contains(t, output, "Backend Engineer at DataFlow Systems")
	assert.Contains(t, output, id.String())
	assert.Contains(t, output, "2024-03-02 10:30 UTC")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ééé...", truncate("éééééé", 6))
}

func TestWrap(t *testing.T) {
	out := wrap("one two three four", 9)
	assert.Equal(t, "one two\nthree\nfour", out)
}
