// Package livesource is the boundary to real feedback data. Every source
// reports "no data" as an empty batch; callers fall back to synthetic data.
package livesource

import (
	"context"

	"feedback-intel-go/internal/logger"
	"feedback-intel-go/internal/types"
)

const unknownValue = "Unknown"

type Source interface {
	Fetch(ctx context.Context, cfg types.LiveSourceConfig) []types.Record
}

// New picks the source for this deployment: a spreadsheet when datasetPath
// is set, the HTTP feed when cfg.FeedURL is set, otherwise the stub.
func New(cfg types.LiveSourceConfig, datasetPath string, log *logger.Logger) Source {
	switch {
	case datasetPath != "":
		return &FileSource{Path: datasetPath, log: log.Component("livesource.file")}
	case cfg.FeedURL != "":
		return NewHTTPSource(cfg.Timeout, log)
	default:
		return &Stub{log: log.Component("livesource.stub")}
	}
}

// Stub stands in for the production integration (support tickets, community
// posts, GitHub issues fed through an AI classifier). It performs no I/O and
// always returns an empty batch.
type Stub struct {
	log *logger.Logger
}

func NewStub(log *logger.Logger) *Stub {
	return &Stub{log: log.Component("livesource.stub")}
}

func (s *Stub) Fetch(_ context.Context, cfg types.LiveSourceConfig) []types.Record {
	s.log.WithField("api_base", cfg.APIBase).
		WithField("has_token", cfg.APIToken != "").
		Debug("live source not integrated; using synthetic feed")
	return []types.Record{}
}

func orUnknown(v string) string {
	if v == "" {
		return unknownValue
	}
	return v
}
