// Package types provides type definitions for structured data used throughout the hirehub system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"strings"
)

// ExperienceLevel is the seniority a posting targets.
type ExperienceLevel string

// Experience levels in display order.
const (
	EntryLevel ExperienceLevel = "Entry-level"
	MidLevel   ExperienceLevel = "Mid-level"
	Senior     ExperienceLevel = "Senior"
	Lead       ExperienceLevel = "Lead"
	Internship ExperienceLevel = "Internship"
)

// JobType is the employment arrangement of a posting.
type JobType string

// Job types in display order.
const (
	FullTime JobType = "Full-time"
	PartTime JobType = "Part-time"
	Contract JobType = "Contract"
	Remote   JobType = "Remote"
)

// Category is the discipline a posting belongs to.
type Category string

// Categories in display order.
const (
	Frontend    Category = "Frontend"
	Backend     Category = "Backend"
	Fullstack   Category = "Fullstack"
	Design      Category = "Design"
	Marketing   Category = "Marketing"
	DataScience Category = "Data Science"
	DevOps      Category = "DevOps"
	Product     Category = "Product"
)

// Salary is a compensation range in a single currency.
type Salary struct {
	Min      int    `json:"min"`
	Max      int    `json:"max"`
	Currency string `json:"currency"`
}

// Job is a single posting in the catalog. Jobs are read-only once loaded.
type Job struct {
	ID                 string          `json:"id"`
	Title              string          `json:"title"`
	Company            string          `json:"company"`
	CompanyLogo        string          `json:"companyLogo,omitempty"`
	Location           string          `json:"location"`
	ExperienceLevel    ExperienceLevel `json:"experienceLevel"`
	JobType            JobType         `json:"jobType"`
	Category           Category        `json:"category"`
	Salary             Salary          `json:"salary"`
	Description        string          `json:"description"`
	Responsibilities   []string        `json:"responsibilities"`
	Qualifications     []string        `json:"qualifications"`
	Benefits           []string        `json:"benefits,omitempty"`
	CompanyDescription string          `json:"companyDescription"`
	CompanyWebsite     string          `json:"companyWebsite,omitempty"`
	CompanyLinkedIn    string          `json:"companyLinkedin,omitempty"`
	PostedDate         string          `json:"postedDate"`
}

// LogoGlyph returns the company logo, or the first letter of the company name when
// the posting has none.
func (j Job) LogoGlyph() string {
	if j.CompanyLogo != "" {
		return j.CompanyLogo
	}
	for _, r := range j.Company {
		return strings.ToUpper(string(r))
	}
	return "?"
}

// Categories returns every category in display order.
func Categories() []Category {
	return []Category{Frontend, Backend, Fullstack, Design, Marketing, DataScience, DevOps, Product}
}

// ExperienceLevels returns every experience level in display order.
func ExperienceLevels() []ExperienceLevel {
	return []ExperienceLevel{EntryLevel, MidLevel, Senior, Lead, Internship}
}

// JobTypes returns every job type in display order.
func JobTypes() []JobType {
	return []JobType{FullTime, PartTime, Contract, Remote}
}

// ParseCategory matches a display string (case-insensitive) to a Category.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories() {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category: %q", s)
}

// ParseExperienceLevel matches a display string (case-insensitive) to an ExperienceLevel.
func ParseExperienceLevel(s string) (ExperienceLevel, error) {
	for _, e := range ExperienceLevels() {
		if strings.EqualFold(string(e), strings.TrimSpace(s)) {
			return e, nil
		}
	}
	return "", fmt.Errorf("unknown experience level: %q", s)
}

// ParseJobType matches a display string (case-insensitive) to a JobType.
func ParseJobType(s string) (JobType, error) {
	for _, t := range JobTypes() {
		if strings.EqualFold(string(t), strings.TrimSpace(s)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown job type: %q", s)
}
