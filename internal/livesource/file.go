package livesource

import (
	"context"

	"feedback-intel-go/internal/dataset"
	"feedback-intel-go/internal/logger"
	"feedback-intel-go/internal/types"
)

// FileSource serves feedback exported to a spreadsheet.
type FileSource struct {
	Path string
	log  *logger.Logger
}

func NewFileSource(path string, log *logger.Logger) *FileSource {
	return &FileSource{Path: path, log: log.Component("livesource.file")}
}

func (s *FileSource) Fetch(_ context.Context, _ types.LiveSourceConfig) []types.Record {
	records, err := dataset.Load(s.Path)
	if err != nil {
		s.log.WithError(err).WithField("path", s.Path).Warn("dataset load failed; falling back")
		return []types.Record{}
	}
	return records
}
