//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJob_LogoGlyph(t *testing.T) {
	assert.Equal(t, "🚀", Job{Company: "Acme", CompanyLogo: "🚀"}.LogoGlyph())
	assert.Equal(t, "A", Job{Company: "acme"}.LogoGlyph())
	assert.Equal(t, "?", Job{}.LogoGlyph())
}

func TestParseEnums(t *testing.T) {
	c, err := ParseCategory("data science")
	require.NoError(t, err)
	assert.Equal(t, DataScience, c)

	e, err := ParseExperienceLevel(" Entry-level ")
	require.NoError(t, err)
	assert.Equal(t, EntryLevel, e)

	jt, err := ParseJobType("contract")
	require.NoError(t, err)
	assert.Equal(t, Contract, jt)

	_, err = ParseCategory("Sales")
	assert.Error(t, err)
	_, err = ParseExperienceLevel("Principal")
	assert.Error(t, err)
}

func TestJob_JSONFieldNames(t *testing.T) {
	raw := `{
		"id": "1",
		"title": "Frontend Developer",
		"company": "TechCorp",
		"location": "Remote",
		"experienceLevel": "Mid-level",
		"jobType": "Full-time",
		"category": "Frontend",
		"salary": {"min": 90000, "max": 120000, "currency": "USD"},
		"description": "Build UIs",
		"responsibilities": ["Ship features"],
		"qualifications": ["3+ years"],
		"companyDescription": "We make tools",
		"companyLinkedin": "https://linkedin.com/company/techcorp",
		"postedDate": "2024-01-15"
	}`

	var job Job
	require.NoError(t, json.Unmarshal([]byte(raw), &job))
	assert.Equal(t, MidLevel, job.ExperienceLevel)
	assert.Equal(t, FullTime, job.JobType)
	assert.Equal(t, 120000, job.Salary.Max)
	assert.Equal(t, "https://linkedin.com/company/techcorp", job.CompanyLinkedIn)
	assert.Nil(t, job.Benefits)
}

func TestJobApplication_Validate(t *testing.T) {
	valid := JobApplication{
		JobID:          "1",
		ApplicantName:  "Alice",
		ApplicantEmail: "alice@example.com",
		ResumeName:     "resume.pdf",
	}
	assert.NoError(t, valid.Validate())

	missing := valid
	missing.ResumeName = ""
	assert.Error(t, missing.Validate())

	badEmail := valid
	badEmail.ApplicantEmail = "bad"
	assert.Error(t, badEmail.Validate())
}

func TestJobApplication_ValidateEmailMatchesForm(t *testing.T) {
	base := JobApplication{JobID: "1", ApplicantName: "Alice", ResumeName: "resume.pdf"}

	tests := []struct {
		email string
		valid bool
	}{
		{"alice@example.com", true},
		{"a,b@example.com", true},
		{"alice@exa_mple.com", true},
		{"alice@example..com", true},
		{"alice@example", false},
		{"ali ce@example.com", false},
		{"   ", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			app := base
			app.ApplicantEmail = tt.email
			assert.Equal(t, tt.valid, EmailPattern.MatchString(tt.email))
			if tt.valid {
				assert.NoError(t, app.Validate())
			} else {
				assert.Error(t, app.Validate())
			}
		})
	}
}
