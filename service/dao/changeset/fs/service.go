package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/option"
	"github.com/viant/afs/url"
	"github.com/viant/changegate/model/changeset"
	"github.com/viant/changegate/service/dao"
)

// Service implements filesystem-based change set storage so gated work
// survives a host restart. Any afs-supported scheme works as base path.
type Service struct {
	basePath string
	fs       afs.Service
	mu       sync.RWMutex
}

// Ensure Service implements dao.Service
var _ dao.Service[string, changeset.ChangeSet] = (*Service)(nil)

// Save persists a change set to the filesystem
func (s *Service) Save(ctx context.Context, changeSet *changeset.ChangeSet) error {
	if changeSet == nil {
		return dao.ErrNilEntity
	}
	if changeSet.ID == "" {
		return dao.ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(changeSet)
	if err != nil {
		return fmt.Errorf("failed to marshal change set: %w", err)
	}

	filePath := s.changeSetPath(changeSet.ID)
	if err := s.fs.Upload(ctx, filePath, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to save change set to file %s: %w", filePath, err)
	}
	return nil
}

// Load retrieves a change set from the filesystem
func (s *Service) Load(ctx context.Context, id string) (*changeset.ChangeSet, error) {
	if id == "" {
		return nil, dao.ErrInvalidID
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	filePath := s.changeSetPath(id)
	exists, err := s.fs.Exists(ctx, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to check if change set exists: %w", err)
	}
	if !exists {
		return nil, dao.ErrNotFound
	}

	data, err := s.fs.DownloadWithURL(ctx, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read change set file: %w", err)
	}

	var changeSet changeset.ChangeSet
	if err := json.Unmarshal(data, &changeSet); err != nil {
		return nil, fmt.Errorf("failed to unmarshal change set data: %w", err)
	}
	return &changeSet, nil
}

// Delete removes a change set from the filesystem
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return dao.ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	filePath := s.changeSetPath(id)
	exists, err := s.fs.Exists(ctx, filePath)
	if err != nil {
		return fmt.Errorf("failed to check if change set exists: %w", err)
	}
	if !exists {
		return dao.ErrNotFound
	}

	if err := s.fs.Delete(ctx, filePath); err != nil {
		return fmt.Errorf("failed to delete change set file: %w", err)
	}
	return nil
}

// List returns all change sets from the filesystem
func (s *Service) List(ctx context.Context, _ ...*dao.Parameter) ([]*changeset.ChangeSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	objects, err := s.fs.List(ctx, s.basePath, option.NewRecursive(true))
	if err != nil {
		return nil, fmt.Errorf("failed to list change set files: %w", err)
	}

	var changeSets []*changeset.ChangeSet
	for _, object := range objects {
		if object.IsDir() || !strings.HasSuffix(object.Name(), ".json") {
			continue
		}

		data, err := s.fs.Download(ctx, object)
		if err != nil {
			return nil, fmt.Errorf("failed to read change set file %s: %w", object.URL(), err)
		}

		var changeSet changeset.ChangeSet
		if err := json.Unmarshal(data, &changeSet); err != nil {
			return nil, fmt.Errorf("failed to unmarshal change set file %s: %w", object.URL(), err)
		}
		changeSets = append(changeSets, &changeSet)
	}
	return changeSets, nil
}

// changeSetPath returns the storage URL for a change set; url.Join keeps the
// base URL's scheme intact.
func (s *Service) changeSetPath(id string) string {
	return url.Join(s.basePath, fmt.Sprintf("%s.json", id))
}

// New creates a new filesystem change set storage service
func New(basePath string) (*Service, error) {
	if basePath == "" {
		return nil, fmt.Errorf("base path cannot be empty")
	}

	fs := afs.New()

	ctx := context.Background()
	exists, _ := fs.Exists(ctx, basePath)
	if !exists {
		if err := fs.Create(ctx, basePath, file.DefaultDirOsMode, true); err != nil {
			return nil, fmt.Errorf("failed to create base directory: %w", err)
		}
	}

	basePath = url.Normalize(basePath, file.Scheme)

	return &Service{
		basePath: basePath,
		fs:       fs,
	}, nil
}
