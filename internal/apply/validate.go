package apply

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/hirehub/internal/types"
)

// Form field keys used in FieldErrors.
const (
	FieldName   = "name"
	FieldEmail  = "email"
	FieldResume = "resume"
)

// Validation messages.
const (
	MsgNameRequired   = "Name is required"
	MsgEmailRequired  = "Email is required"
	MsgEmailInvalid   = "Please enter a valid email address"
	MsgResumeRequired = "Please upload your resume"
	MsgResumeType     = "Please upload a PDF, DOC, or DOCX file up to 10MB"
)

// MaxResumeSize is the largest resume accepted, in bytes.
const MaxResumeSize int64 = 10 << 20

// ResumeExtensions lists the file extensions the resume picker accepts.
var ResumeExtensions = []string{".pdf", ".doc", ".docx"}

// Resume describes the selected resume file. Contents are not retained.
type Resume struct {
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType,omitempty"`
}

// Form holds the raw field values of an application.
type Form struct {
	Name   string  `json:"name" validate:"nonblank"`
	Email  string  `json:"email" validate:"nonblank,emailaddr"`
	Resume *Resume `json:"resume" validate:"required"`
}

// FieldErrors maps a field key to its message. Empty means valid.
type FieldErrors map[string]string

// Valid reports whether no field failed.
func (e FieldErrors) Valid() bool { return len(e) == 0 }

func (e FieldErrors) clone() FieldErrors {
	out := make(FieldErrors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

var formValidator = newFormValidator()

func newFormValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	types.RegisterValidations(v)
	return v
}

var messages = map[string]string{
	FieldName + ".nonblank":   MsgNameRequired,
	FieldEmail + ".nonblank":  MsgEmailRequired,
	FieldEmail + ".emailaddr": MsgEmailInvalid,
	FieldResume + ".required": MsgResumeRequired,
}

// Validate checks every field and returns all failures together.
func Validate(f Form) FieldErrors {
	errs := FieldErrors{}

	err := formValidator.Struct(f)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
				errs[fe.Field()] = msg
			}
		}
	}
	return errs
}

// AcceptsResume reports whether a file with the given name and size would be
// accepted by the resume picker.
func AcceptsResume(name string, size int64) bool {
	if size < 0 || size > MaxResumeSize {
		return false
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range ResumeExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// ResumeFromFile picks the file at path the way the resume picker does. An empty
// path yields nil. Files the picker would not offer (unreadable, a directory, the
// wrong type, or too large) yield nil and an error wrapping ErrResumeRejected.
func ResumeFromFile(path string) (*Resume, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read resume: %w", ErrResumeRejected, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: resume is a directory: %s", ErrResumeRejected, path)
	}
	name := filepath.Base(path)
	if !AcceptsResume(name, info.Size()) {
		return nil, fmt.Errorf("%w: %s", ErrResumeRejected, MsgResumeType)
	}
	return &Resume{Name: name, Size: info.Size()}, nil
}
