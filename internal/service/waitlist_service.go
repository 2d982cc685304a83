package service

import (
	"context"
	"fmt"

	"github.com/dhruvywuvy/advocare-demo-day/internal/domain"
	"github.com/dhruvywuvy/advocare-demo-day/internal/repository"
	"github.com/dhruvywuvy/advocare-demo-day/internal/validate"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// WaitlistService waitlist 业务逻辑
type WaitlistService struct {
	repo   repository.WaitlistRepository
	logger *zap.Logger
}

func NewWaitlistService(repo repository.WaitlistRepository, logger *zap.Logger) *WaitlistService {
	return &WaitlistService{repo: repo, logger: logger}
}

// Join records an interested email.
func (s *WaitlistService) Join(ctx context.Context, email string) (*domain.WaitlistEntry, error) {
	if err := validate.Email(email); err != nil {
		return nil, err
	}
	entry, err := s.repo.AddEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to join waitlist: %w", err)
	}
	s.logger.Info("waitlist signup", zap.String("email", email))
	return entry, nil
}

// waitlistExportHeader 导出表头
var waitlistExportHeader = []string{
	"Email",
	"Created At",
}

// Export generates an Excel workbook of all waitlist entries, newest
// first, for the outreach team.
func (s *WaitlistService) Export(ctx context.Context) ([]byte, error) {
	entries, err := s.repo.ListEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load waitlist: %w", err)
	}

	f := excelize.NewFile()
	// Note: don't defer Close() here, WriteTo needs the file open.

	sheetName := "Waitlist"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	for col, header := range waitlistExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to build header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, entry := range entries {
		values := []any{entry.Email, entry.CreatedAt.Format("2006-01-02 15:04:05")}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to build cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		s.logger.Warn("failed to close workbook", zap.Error(err))
	}

	s.logger.Info("waitlist exported", zap.Int("entries", len(entries)))
	return buf.Bytes(), nil
}
