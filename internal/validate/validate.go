// Package validate checks upload form input before anything is sent to
// the analysis backend.
package validate

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dhruvywuvy/advocare-demo-day/internal/domain"
)

// UploadPolicy 上传限制策略.
// MaxFiles == 0 disables the count check; the size checks are disabled
// the same way. Production runs the size-based policy (5MB per file,
// 20MB combined).
type UploadPolicy struct {
	MaxFileSize  int64
	MaxTotalSize int64
	MaxFiles     int
}

// DefaultPolicy size-based limits used by the production upload form.
var DefaultPolicy = UploadPolicy{
	MaxFileSize:  5 << 20,
	MaxTotalSize: 20 << 20,
}

var allowedExts = map[string]bool{
	".pdf":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// CheckFiles validates a file selection against the policy. The first
// violation wins; on rejection no upload happens at all.
func (p UploadPolicy) CheckFiles(files []domain.UploadFile) error {
	if len(files) == 0 {
		return errors.New("please select files to upload")
	}
	if p.MaxFiles > 0 && len(files) > p.MaxFiles {
		return fmt.Errorf("too many files: maximum is %d", p.MaxFiles)
	}
	var total int64
	for _, f := range files {
		if err := Filename(f.Name); err != nil {
			return err
		}
		if p.MaxFileSize > 0 && f.Size > p.MaxFileSize {
			return fmt.Errorf("file %s is too large: maximum size is 5MB per file", f.Name)
		}
		total += f.Size
	}
	if p.MaxTotalSize > 0 && total > p.MaxTotalSize {
		return errors.New("total file size is too large: maximum combined size is 20MB")
	}
	return nil
}

// Filename checks the extension against the accepted formats (PDF, JPG, PNG).
func Filename(fn string) error {
	if !allowedExts[strings.ToLower(filepath.Ext(fn))] {
		return errors.New("unsupported file type: " + fn)
	}
	return nil
}

// Required checks that a form field is non-empty after trimming.
func Required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New(field + " is required")
	}
	return nil
}

// Email does a minimal shape check; real verification is the mail
// provider's problem.
func Email(email string) error {
	email = strings.TrimSpace(email)
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || !strings.Contains(email[at+1:], ".") {
		return errors.New("invalid email address")
	}
	return nil
}

// Submission validates the scalar fields plus the file selection.
// RequireEmail matches the newer form variant that collects an email.
func (p UploadPolicy) Submission(sub *domain.PatientSubmission, requireEmail bool) error {
	if err := Required("firstName", sub.FirstName); err != nil {
		return err
	}
	if err := Required("lastName", sub.LastName); err != nil {
		return err
	}
	if err := Required("dateOfBirth", sub.DateOfBirth); err != nil {
		return err
	}
	if requireEmail {
		if err := Email(sub.Email); err != nil {
			return err
		}
	}
	return p.CheckFiles(sub.Files)
}
