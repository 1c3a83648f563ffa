package storage

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSupportedMime(t *testing.T) {
	assert.True(t, SupportedMime(MimeText))
	assert.True(t, SupportedMime(MimePDF))
	assert.True(t, SupportedMime(MimeDocx))
	assert.False(t, SupportedMime("image/png"))
	assert.False(t, SupportedMime(""))
}

func TestResumeKey(t *testing.T) {
	job := uuid.MustParse("11111111-2222-4333-8444-555555555555")
	student := uuid.MustParse("99999999-8888-4777-8666-555555555555")
	tests := []struct {
		filename string
		want     string
	}{
		{"cv.pdf", "resumes/11111111-2222-4333-8444-555555555555/99999999-8888-4777-8666-555555555555/cv.pdf"},
		{"../../etc/passwd", "resumes/11111111-2222-4333-8444-555555555555/99999999-8888-4777-8666-555555555555/passwd"},
		{`C:\Users\ada\resume.docx`, "resumes/11111111-2222-4333-8444-555555555555/99999999-8888-4777-8666-555555555555/resume.docx"},
		{"", "resumes/11111111-2222-4333-8444-555555555555/99999999-8888-4777-8666-555555555555/resume"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ResumeKey(job, student, tt.filename), tt.filename)
	}
}
