package db

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Snapshot is the on-disk layout of an exported availability query
type Snapshot struct {
	Members      []Member       `yaml:"members" validate:"dive"`
	Availability []Availability `yaml:"availability" validate:"dive"`
}

// FileStore serves members and availability from a YAML snapshot
type FileStore struct {
	snapshot Snapshot
}

var validate = validator.New()

// NewFileStore wraps an in-memory snapshot
func NewFileStore(snapshot Snapshot) *FileStore {
	return &FileStore{snapshot: snapshot}
}

// LoadFileStore reads and validates a YAML snapshot
func LoadFileStore(path string) (*FileStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}

	var snapshot Snapshot
	if err := yaml.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot file: %w", err)
	}

	if err := validate.Struct(&snapshot); err != nil {
		return nil, fmt.Errorf("snapshot validation failed: %w", err)
	}

	return NewFileStore(snapshot), nil
}

// GetMembers returns every member in the snapshot
func (s *FileStore) GetMembers(ctx context.Context) ([]Member, error) {
	members := make([]Member, len(s.snapshot.Members))
	copy(members, s.snapshot.Members)
	return members, nil
}

// GetAvailability returns records overlapping [from, to).
// Records whose timestamps do not parse are passed through so the caller's
// parsing reports them instead of silently losing them.
func (s *FileStore) GetAvailability(ctx context.Context, from, to time.Time) ([]Availability, error) {
	var result []Availability
	for _, a := range s.snapshot.Availability {
		start, errStart := time.Parse(time.RFC3339Nano, a.Start)
		end, errEnd := time.Parse(time.RFC3339Nano, a.End)
		if errStart != nil || errEnd != nil {
			result = append(result, a)
			continue
		}
		if start.Before(to) && end.After(from) {
			result = append(result, a)
		}
	}
	return result, nil
}
