package types

import (
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// EmailPattern is the one email rule shared by the form and the submission payload.
var EmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// RegisterValidations adds the "nonblank" and "emailaddr" tags to v.
func RegisterValidations(v *validator.Validate) {
	_ = v.RegisterValidation("nonblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("emailaddr", func(fl validator.FieldLevel) bool {
		return EmailPattern.MatchString(fl.Field().String())
	})
}

var applicationValidator = newApplicationValidator()

func newApplicationValidator() *validator.Validate {
	v := validator.New()
	RegisterValidations(v)
	return v
}

// JobApplication is the payload handed to a submitter once the form is valid.
type JobApplication struct {
	JobID          string `json:"job_id" validate:"required"`
	JobTitle       string `json:"job_title"`
	ApplicantName  string `json:"applicant_name" validate:"nonblank"`
	ApplicantEmail string `json:"applicant_email" validate:"nonblank,emailaddr"`
	ResumeName     string `json:"resume_name" validate:"required"`
	ResumeSize     int64  `json:"resume_size" validate:"gte=0"`
}

// Validate validates the JobApplication using the validator.
func (a *JobApplication) Validate() error {
	return applicationValidator.Struct(a)
}

// ApplicationReceipt confirms a submitted application.
type ApplicationReceipt struct {
	ConfirmationID uuid.UUID `json:"confirmation_id"`
	JobID          string    `json:"job_id"`
	SubmittedAt    time.Time `json:"submitted_at"`
}
