package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/jonathan/hirehub/internal/apply"
	"github.com/jonathan/hirehub/internal/types"
)

// maxApplicationBody bounds the multipart request: the largest accepted resume
// plus room for the text fields and part headers.
const maxApplicationBody = apply.MaxResumeSize + 1<<20

// multipartMemory is how much of the upload is buffered in memory before spilling to disk.
const multipartMemory = 1 << 20

// handleSubmitApplication accepts a multipart application form for a job.
// Fields: job_id, name, email, and the resume file. The file contents are not
// stored; only its name and size are forwarded to the submitter.
func (s *Server) handleSubmitApplication(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxApplicationBody)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.handleError(w, &ErrInvalidApplication{Fields: apply.FieldErrors{apply.FieldResume: apply.MsgResumeType}})
			return
		}
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}
	defer r.MultipartForm.RemoveAll() //nolint:errcheck

	jobID := strings.TrimSpace(r.FormValue("job_id"))
	if jobID == "" {
		s.handleError(w, &ErrValidation{Field: "job_id", Message: "job_id is required"})
		return
	}

	job, err := s.catalog.GetJob(r.Context(), jobID)
	if err != nil {
		s.handleError(w, err)
		return
	}
	if job == nil {
		s.handleError(w, &ErrJobNotFound{ID: jobID})
		return
	}

	form := apply.Form{
		Name:   r.FormValue("name"),
		Email:  r.FormValue("email"),
		Resume: resumeFromRequest(r),
	}
	errs := apply.Validate(form)
	// The upload stands in for the resume picker, which only offers accepted files.
	if form.Resume != nil && !apply.AcceptsResume(form.Resume.Name, form.Resume.Size) {
		errs[apply.FieldResume] = apply.MsgResumeType
	}
	if !errs.Valid() {
		s.handleError(w, &ErrInvalidApplication{Fields: errs})
		return
	}

	app := types.JobApplication{
		JobID:          job.ID,
		JobTitle:       job.Title,
		ApplicantName:  strings.TrimSpace(form.Name),
		ApplicantEmail: strings.TrimSpace(form.Email),
		ResumeName:     form.Resume.Name,
		ResumeSize:     form.Resume.Size,
	}

	receipt, err := s.submitter.Submit(r.Context(), app)
	if err != nil {
		s.logger.Error("application submission failed", "job_id", job.ID, "error", err)
		s.errorResponse(w, http.StatusInternalServerError, apply.SubmitFailedMessage)
		return
	}

	s.jsonResponse(w, http.StatusCreated, receipt)
}

// resumeFromRequest describes the uploaded resume file, or returns nil when none was sent.
func resumeFromRequest(r *http.Request) *apply.Resume {
	if r.MultipartForm == nil {
		return nil
	}
	files := r.MultipartForm.File[apply.FieldResume]
	if len(files) == 0 {
		return nil
	}
	fh := files[0]
	return &apply.Resume{
		Name:        fh.Filename,
		Size:        fh.Size,
		ContentType: fh.Header.Get("Content-Type"),
	}
}
