package apply

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validResume() *Resume {
	return &Resume{Name: "cv.pdf", Size: 2048, ContentType: "application/pdf"}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		form Form
		want FieldErrors
	}{
		{
			name: "all fields missing or invalid",
			form: Form{Name: "", Email: "bad"},
			want: FieldErrors{
				FieldName:   MsgNameRequired,
				FieldEmail:  MsgEmailInvalid,
				FieldResume: MsgResumeRequired,
			},
		},
		{
			name: "valid form",
			form: Form{Name: "Alice", Email: "alice@example.com", Resume: validResume()},
			want: FieldErrors{},
		},
		{
			name: "whitespace name",
			form: Form{Name: "   ", Email: "alice@example.com", Resume: validResume()},
			want: FieldErrors{FieldName: MsgNameRequired},
		},
		{
			name: "empty email",
			form: Form{Name: "Alice", Email: "", Resume: validResume()},
			want: FieldErrors{FieldEmail: MsgEmailRequired},
		},
		{
			name: "email without tld",
			form: Form{Name: "Alice", Email: "alice@example", Resume: validResume()},
			want: FieldErrors{FieldEmail: MsgEmailInvalid},
		},
		{
			name: "email with whitespace",
			form: Form{Name: "Alice", Email: "ali ce@example.com", Resume: validResume()},
			want: FieldErrors{FieldEmail: MsgEmailInvalid},
		},
		{
			name: "whitespace-only email is missing",
			form: Form{Name: "Alice", Email: "   ", Resume: validResume()},
			want: FieldErrors{FieldEmail: MsgEmailRequired},
		},
		{
			name: "email accepted by the loose pattern",
			form: Form{Name: "Alice", Email: "a,b@example.com", Resume: validResume()},
			want: FieldErrors{},
		},
		{
			name: "any selected resume satisfies the form",
			form: Form{Name: "Alice", Email: "alice@example.com", Resume: &Resume{Name: "cv.txt", Size: 10}},
			want: FieldErrors{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Validate(tt.form)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, len(tt.want) == 0, got.Valid())
		})
	}
}

func TestAcceptsResume(t *testing.T) {
	tests := []struct {
		name string
		file string
		size int64
		want bool
	}{
		{"pdf", "resume.pdf", 1024, true},
		{"doc", "resume.doc", 1024, true},
		{"docx uppercase", "RESUME.DOCX", 1024, true},
		{"exactly max", "cv.pdf", MaxResumeSize, true},
		{"too large", "cv.pdf", MaxResumeSize + 1, false},
		{"text file", "cv.txt", 10, false},
		{"no extension", "resume", 10, false},
		{"negative size", "cv.pdf", -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AcceptsResume(tt.file, tt.size))
		})
	}
}

func TestResumeFromFile(t *testing.T) {
	r, err := ResumeFromFile("  ")
	assert.NoError(t, err)
	assert.Nil(t, r)

	dir := t.TempDir()
	path := filepath.Join(dir, "cv.docx")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))
	r, err = ResumeFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, &Resume{Name: "cv.docx", Size: 5}, r)

	text := filepath.Join(dir, "cv.txt")
	require.NoError(t, os.WriteFile(text, []byte("hello"), 0o644))

	rejected := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "missing.pdf")},
		{"directory", dir},
		{"wrong type", text},
	}
	for _, tt := range rejected {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ResumeFromFile(tt.path)
			assert.ErrorIs(t, err, ErrResumeRejected)
			assert.Nil(t, r)
		})
	}

	_, err = ResumeFromFile(text)
	assert.Contains(t, err.Error(), MsgResumeType)
}
