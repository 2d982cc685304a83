package validate

import (
	"testing"

	"github.com/dhruvywuvy/advocare-demo-day/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeFiles(sizes ...int64) []domain.UploadFile {
	files := make([]domain.UploadFile, 0, len(sizes))
	for i, size := range sizes {
		files = append(files, domain.UploadFile{
			Name:        "bill" + string(rune('a'+i)) + ".pdf",
			ContentType: "application/pdf",
			Size:        size,
		})
	}
	return files
}

func TestCheckFiles_SizePolicy_Accepts(t *testing.T) {
	err := DefaultPolicy.CheckFiles(makeFiles(1<<20, 4<<20, 2<<20))
	assert.NoError(t, err)
}

func TestCheckFiles_RejectsEmptySelection(t *testing.T) {
	err := DefaultPolicy.CheckFiles(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "select files")
}

func TestCheckFiles_RejectsOversizedFile(t *testing.T) {
	files := makeFiles(1 << 20)
	files = append(files, domain.UploadFile{Name: "huge.pdf", Size: 6 << 20})

	err := DefaultPolicy.CheckFiles(files)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "huge.pdf")
	assert.Contains(t, err.Error(), "5MB")
}

func TestCheckFiles_RejectsOversizedTotal(t *testing.T) {
	// Five files of 4.5MB each: every file passes the per-file check but
	// the sum exceeds the 20MB combined limit.
	files := makeFiles(4608<<10, 4608<<10, 4608<<10, 4608<<10, 4608<<10)

	err := DefaultPolicy.CheckFiles(files)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "20MB")
}

func TestCheckFiles_RejectsUnsupportedExtension(t *testing.T) {
	files := []domain.UploadFile{{Name: "bill.exe", Size: 100}}

	err := DefaultPolicy.CheckFiles(files)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")
}

func TestCheckFiles_CountPolicy(t *testing.T) {
	policy := UploadPolicy{MaxFiles: 10}

	ten := make([]domain.UploadFile, 10)
	for i := range ten {
		ten[i] = domain.UploadFile{Name: "bill.png", Size: 1}
	}
	assert.NoError(t, policy.CheckFiles(ten))

	eleven := append(ten, domain.UploadFile{Name: "bill.png", Size: 1})
	err := policy.CheckFiles(eleven)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maximum is 10")
}

func TestSubmission_RequiredFields(t *testing.T) {
	sub := &domain.PatientSubmission{
		LastName:    "Doe",
		DateOfBirth: "1990-01-01",
		Files:       makeFiles(100),
	}

	err := DefaultPolicy.Submission(sub, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "firstName")

	sub.FirstName = "Jane"
	assert.NoError(t, DefaultPolicy.Submission(sub, false))
}

func TestSubmission_EmailVariant(t *testing.T) {
	sub := &domain.PatientSubmission{
		FirstName:   "Jane",
		LastName:    "Doe",
		DateOfBirth: "1990-01-01",
		Email:       "not-an-email",
		Files:       makeFiles(100),
	}

	err := DefaultPolicy.Submission(sub, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email")

	sub.Email = "jane@example.com"
	assert.NoError(t, DefaultPolicy.Submission(sub, true))
}
