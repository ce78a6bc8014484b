package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Domenick1991/skyfly/internal/domain"
)

// FileBookingRepository keeps the collection in one JSON text file. Saves
// write a sibling temp file and rename it into place, so a crash leaves
// either the previous file or the new one.
type FileBookingRepository struct {
	path string
}

func NewFileBookingRepository(path string) *FileBookingRepository {
	return &FileBookingRepository{path: path}
}

func (r *FileBookingRepository) Path() string {
	return r.path
}

func (r *FileBookingRepository) Load(ctx context.Context) ([]domain.Booking, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []domain.Booking{}, nil
		}
		return []domain.Booking{}, fmt.Errorf("read %s: %w", r.path, err)
	}
	return decodeBookings(data)
}

func (r *FileBookingRepository) Save(ctx context.Context, bookings []domain.Booking) error {
	data, err := encodeBookings(bookings)
	if err != nil {
		return err
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write bookings: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync bookings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, r.path); err != nil {
		return fmt.Errorf("replace %s: %w", r.path, err)
	}
	return nil
}

var _ BookingStore = (*FileBookingRepository)(nil)
