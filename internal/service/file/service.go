package file

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/cmlabs-hris/checkclock-backend-go/internal/pkg/storage"
	"github.com/google/uuid"
)

// FileService handles attendance evidence uploads. The stored reference
// goes into the event's evidence_ref column as-is.
type FileService interface {
	UploadAttendanceEvidence(ctx context.Context, userID string, date time.Time, file io.Reader, filename string, eventType string) (string, error)
	GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error)
	DeleteFile(ctx context.Context, path string) error
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

var allowedEvidenceExts = []string{".jpg", ".jpeg", ".png"}

func contentTypeFor(ext string) string {
	if ext == ".png" {
		return "image/png"
	}
	return "image/jpeg"
}

// UploadAttendanceEvidence stores an evidence photo under
// attendance/{userID}/{date}/ and returns the storage key.
func (s *fileServiceImpl) UploadAttendanceEvidence(ctx context.Context, userID string, date time.Time, file io.Reader, filename string, eventType string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	isValid := false
	for _, allowed := range allowedEvidenceExts {
		if ext == allowed {
			isValid = true
			break
		}
	}
	if !isValid {
		return "", fmt.Errorf("invalid evidence file type: %s", ext)
	}

	path := fmt.Sprintf("attendance/%s/%s/%s_%s%s",
		userID,
		date.Format("2006-01-02"),
		strings.ToLower(eventType),
		uuid.NewString(),
		ext,
	)

	stored, err := s.storage.Upload(ctx, file, path, contentTypeFor(ext))
	if err != nil {
		return "", fmt.Errorf("failed to upload attendance evidence: %w", err)
	}

	return stored, nil
}

func (s *fileServiceImpl) GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return s.storage.GetURL(ctx, path, expiry)
}

func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	return s.storage.Delete(ctx, path)
}
