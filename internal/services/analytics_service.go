package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/trendwatch/trendwatch/internal/config"
	"github.com/trendwatch/trendwatch/internal/logging"
	"github.com/trendwatch/trendwatch/internal/persistence"
	"github.com/trendwatch/trendwatch/internal/series"
	"github.com/trendwatch/trendwatch/internal/summarize"
	"github.com/trendwatch/trendwatch/internal/trends"
)

// AnalyticsService owns the series store and the projection lifecycle.
// All mutation goes through it; the projection is recomputed whenever the
// store or the analysis thresholds change and cached in between.
type AnalyticsService struct {
	logger     *logging.Logger
	snapshots  persistence.SnapshotStore
	summarizer *summarize.Summarizer

	mu           sync.Mutex
	store        *series.Store
	opts         config.AnalyticsConfig
	storeVersion uint64

	cached        *trends.Projection
	cachedVersion uint64
	cachedOpts    config.AnalyticsConfig
}

// NewAnalyticsService creates the service with an empty store
func NewAnalyticsService(
	logger *logging.Logger,
	opts config.AnalyticsConfig,
	snapshots persistence.SnapshotStore,
	summarizer *summarize.Summarizer,
) *AnalyticsService {
	return &AnalyticsService{
		logger:     logger,
		snapshots:  snapshots,
		summarizer: summarizer,
		store:      series.NewStore(),
		opts:       opts,
	}
}

// Ingest merges incoming keyword series into the store. The previous store
// state is replaced wholesale, so a failure in one input of a batch never
// corrupts what earlier inputs already merged.
func (s *AnalyticsService) Ingest(incoming map[string]*series.KeywordSeries) (keywords, points int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store = series.Merge(s.store, incoming)
	s.storeVersion++

	s.logger.Info("Reports merged",
		"incoming_keywords", len(incoming),
		"total_keywords", s.store.Len(),
		"total_points", s.store.PointCount(),
		"store_version", s.storeVersion)

	return s.store.Len(), s.store.PointCount()
}

// Projection returns the current analytics pass, recomputing only when the
// store or the analysis options changed since the last call.
func (s *AnalyticsService) Projection() *trends.Projection {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.projectionLocked()
}

func (s *AnalyticsService) projectionLocked() *trends.Projection {
	if s.cached != nil && s.cachedVersion == s.storeVersion && s.cachedOpts == s.opts {
		return s.cached
	}

	proj := trends.Project(s.store, trends.Options{
		WindowMonths:             s.opts.AnalysisWindowMonths,
		MovingAverageWindow:      s.opts.MovingAverageWindow,
		SeasonalPeakThresholdPct: s.opts.SeasonalPeakThresholdPct,
		VolatilityCVThresholdPct: s.opts.VolatilityCVThresholdPct,
	})

	s.cached = proj
	s.cachedVersion = s.storeVersion
	s.cachedOpts = s.opts

	s.logger.Debug("Projection recomputed",
		"keywords", len(proj.Records),
		"store_version", s.storeVersion)

	return proj
}

// Options returns the active analysis thresholds
func (s *AnalyticsService) Options() config.AnalyticsConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opts
}

// UpdateOptions replaces the analysis thresholds after validating their
// ranges. A change invalidates the cached projection.
func (s *AnalyticsService) UpdateOptions(opts config.AnalyticsConfig) error {
	if err := opts.Validate(); err != nil {
		return NewServiceError("INVALID_OPTIONS", err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.opts = opts
	s.logger.Info("Analysis options updated",
		"window_months", opts.AnalysisWindowMonths,
		"moving_average_window", opts.MovingAverageWindow,
		"seasonal_peak_threshold_pct", opts.SeasonalPeakThresholdPct,
		"volatility_cv_threshold_pct", opts.VolatilityCVThresholdPct)

	return nil
}

// Clear discards the entire store. Individual keywords are never partially
// deleted; clearing is all or nothing.
func (s *AnalyticsService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store = series.NewStore()
	s.storeVersion++
	s.logger.Info("Store cleared", "store_version", s.storeVersion)
}

// SaveSnapshot persists the current store through the snapshot backend
func (s *AnalyticsService) SaveSnapshot(ctx context.Context) error {
	s.mu.Lock()
	snap := s.store.Snapshot()
	version := s.storeVersion
	s.mu.Unlock()

	data, err := json.Marshal(snap)
	if err != nil {
		return NewServiceError("SNAPSHOT_ENCODE_FAILED", err.Error())
	}

	if err := s.snapshots.Save(ctx, data); err != nil {
		return NewServiceError("SNAPSHOT_SAVE_FAILED", err.Error())
	}

	s.logger.Info("Snapshot saved", "bytes", len(data), "store_version", version)
	return nil
}

// LoadSnapshot replaces the store with the persisted snapshot
func (s *AnalyticsService) LoadSnapshot(ctx context.Context) error {
	data, err := s.snapshots.Load(ctx)
	if err != nil {
		if errors.Is(err, persistence.ErrNoSnapshot) {
			return NewServiceError("NO_SNAPSHOT", "no snapshot available")
		}
		return NewServiceError("SNAPSHOT_LOAD_FAILED", err.Error())
	}

	var snap series.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return NewServiceError("SNAPSHOT_DECODE_FAILED", fmt.Sprintf("corrupt snapshot: %v", err))
	}

	store, err := series.Restore(&snap)
	if err != nil {
		return NewServiceError("SNAPSHOT_DECODE_FAILED", err.Error())
	}

	s.mu.Lock()
	s.store = store
	s.storeVersion++
	version := s.storeVersion
	s.mu.Unlock()

	s.logger.Info("Snapshot restored",
		"keywords", store.Len(),
		"points", store.PointCount(),
		"store_version", version)

	return nil
}

// Summarize sends the current projection's statistics to the external
// text-generation service. Failures are returned as service errors and
// leave analytics state untouched.
func (s *AnalyticsService) Summarize(ctx context.Context) (*summarize.Result, error) {
	if s.summarizer == nil || !s.summarizer.Enabled() {
		return nil, NewServiceError("SUMMARIZER_DISABLED", "no summarizer endpoint configured")
	}

	proj := s.Projection()
	if len(proj.Records) == 0 {
		return nil, NewServiceError("NO_DATA", "no keyword data to summarize")
	}

	result, err := s.summarizer.Summarize(ctx, proj)
	if err != nil {
		return nil, NewServiceError("SUMMARIZATION_FAILED", err.Error())
	}

	return result, nil
}
