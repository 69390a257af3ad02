package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/fortuna/victoria/internal/assist"
	"github.com/fortuna/victoria/internal/cache"
	"github.com/fortuna/victoria/internal/ingest"
	"github.com/fortuna/victoria/internal/model"
	"github.com/fortuna/victoria/internal/publisher"
	"github.com/fortuna/victoria/internal/rotation"
	"github.com/fortuna/victoria/internal/store"
	"github.com/fortuna/victoria/internal/store/repository"
)

// SeasonService handles season processing and report retrieval
type SeasonService struct {
	loader      *ingest.Loader
	subjectTeam string

	playerRepo   *repository.SeasonPlayerRepository
	teamRepo     *repository.TeamSeasonRepository
	rotationRepo *repository.RotationRepository
	assistRepo   *repository.AssistRepository
	runRepo      *repository.RunRepository

	cache     *cache.RedisCache
	publisher *publisher.RedisPublisher
	notifier  Notifier
	log       *logrus.Logger
}

// Notifier receives season-processed events for local fan-out, e.g. to
// WebSocket clients.
type Notifier interface {
	SeasonProcessed(event publisher.SeasonProcessedEvent)
}

// NewSeasonService creates a new season service
func NewSeasonService(loader *ingest.Loader, subjectTeam string, db *store.Database, rc *cache.RedisCache, pub *publisher.RedisPublisher, log *logrus.Logger) *SeasonService {
	return &SeasonService{
		loader:       loader,
		subjectTeam:  subjectTeam,
		playerRepo:   repository.NewSeasonPlayerRepository(db),
		teamRepo:     repository.NewTeamSeasonRepository(db),
		rotationRepo: repository.NewRotationRepository(db),
		assistRepo:   repository.NewAssistRepository(db),
		runRepo:      repository.NewRunRepository(db),
		cache:        rc,
		publisher:    pub,
		log:          log,
	}
}

// Process loads a season's exported files, runs every aggregation pass,
// persists the results, refreshes the cache, and publishes a completion
// event. Returns the finished run record.
func (s *SeasonService) Process(ctx context.Context, seasonID string) (*store.ProcessingRun, error) {
	run := &store.ProcessingRun{
		RunID:       uuid.New().String(),
		SeasonID:    seasonID,
		SubjectTeam: s.subjectTeam,
		Status:      store.RunStatusRunning,
		StartedAt:   time.Now().UTC(),
	}
	if err := s.runRepo.Create(ctx, run); err != nil {
		return nil, fmt.Errorf("recording run start: %w", err)
	}

	if err := s.process(ctx, seasonID, run); err != nil {
		run.Status = store.RunStatusFailed
		run.Error = sql.NullString{String: err.Error(), Valid: true}
		run.FinishedAt = sql.NullTime{Time: time.Now().UTC(), Valid: true}
		if finishErr := s.runRepo.Finish(ctx, run); finishErr != nil {
			s.log.WithError(finishErr).Error("Failed to record failed run")
		}
		return run, err
	}

	run.Status = store.RunStatusCompleted
	run.FinishedAt = sql.NullTime{Time: time.Now().UTC(), Valid: true}
	if err := s.runRepo.Finish(ctx, run); err != nil {
		return run, fmt.Errorf("recording run completion: %w", err)
	}

	s.publishProcessed(ctx, run)

	s.log.WithFields(logrus.Fields{
		"season":              seasonID,
		"run_id":              run.RunID,
		"games":               run.GamesProcessed,
		"players":             run.PlayersAggregated,
		"substitution_events": run.SubstitutionEvents,
		"assist_edges":        run.AssistEdges,
	}).Info("Season processed")

	return run, nil
}

func (s *SeasonService) process(ctx context.Context, seasonID string, run *store.ProcessingRun) error {
	rows, err := s.loader.LoadSeason(seasonID)
	if err != nil {
		return fmt.Errorf("loading season %s: %w", seasonID, err)
	}

	report := BuildReport(rows, s.subjectTeam)

	run.GamesProcessed = len(rows.Games)
	run.PlayersAggregated = len(report.Players)
	run.TeamsAggregated = len(report.Teams)
	run.SubstitutionEvents = len(report.Substitutions)
	run.AssistEdges = len(report.AssistEdges)
	run.UnparsedNarratives = report.Diagnostics.UnparsedNarratives
	run.DroppedEntries = report.Diagnostics.DroppedEntries

	// Drop any stale cached report so readers never see it alongside
	// the new rows.
	if err := s.cache.InvalidateSeasonReport(ctx, seasonID); err != nil {
		s.log.WithError(err).Warn("Failed to invalidate cached season report")
	}

	if err := s.playerRepo.ReplaceSeason(ctx, seasonID, report.Players); err != nil {
		return fmt.Errorf("persisting player totals: %w", err)
	}
	if err := s.teamRepo.ReplaceSeason(ctx, seasonID, report.Teams); err != nil {
		return fmt.Errorf("persisting team totals: %w", err)
	}
	if err := s.rotationRepo.ReplaceEvents(ctx, seasonID, report.Substitutions); err != nil {
		return fmt.Errorf("persisting substitution events: %w", err)
	}
	if err := s.rotationRepo.ReplacePairings(ctx, seasonID, report.Pairings); err != nil {
		return fmt.Errorf("persisting substitution pairings: %w", err)
	}
	if err := s.assistRepo.ReplaceEdges(ctx, seasonID, report.AssistEdges); err != nil {
		return fmt.Errorf("persisting assist edges: %w", err)
	}

	if err := s.cache.SetSeasonReport(ctx, seasonID, report); err != nil {
		s.log.WithError(err).Warn("Failed to cache season report")
	}

	return nil
}

func (s *SeasonService) publishProcessed(ctx context.Context, run *store.ProcessingRun) {
	event := publisher.SeasonProcessedEvent{
		RunID:              run.RunID,
		SeasonID:           run.SeasonID,
		SubjectTeam:        run.SubjectTeam,
		GamesProcessed:     run.GamesProcessed,
		PlayersAggregated:  run.PlayersAggregated,
		TeamsAggregated:    run.TeamsAggregated,
		SubstitutionEvents: run.SubstitutionEvents,
		AssistEdges:        run.AssistEdges,
	}
	if err := s.publisher.PublishSeasonProcessed(ctx, event); err != nil {
		s.log.WithError(err).Warn("Failed to publish season processed event")
	}
	if s.notifier != nil {
		s.notifier.SeasonProcessed(event)
	}
}

// SetNotifier attaches a local fan-out target for completed runs.
func (s *SeasonService) SetNotifier(n Notifier) {
	s.notifier = n
}

// GetPlayers returns a season's player totals.
func (s *SeasonService) GetPlayers(ctx context.Context, seasonID string) ([]model.SeasonPlayerTotals, error) {
	players, err := s.playerRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("fetching player totals: %w", err)
	}
	return players, nil
}

// GetTeams returns a season's team totals.
func (s *SeasonService) GetTeams(ctx context.Context, seasonID string) ([]model.TeamSeasonTotals, error) {
	teams, err := s.teamRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("fetching team totals: %w", err)
	}
	return teams, nil
}

// GetSubstitutions returns a season's raw substitution events.
func (s *SeasonService) GetSubstitutions(ctx context.Context, seasonID string) ([]model.SubstitutionEvent, error) {
	events, err := s.rotationRepo.ListEvents(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("fetching substitution events: %w", err)
	}
	return events, nil
}

// GetPairings returns a season's substitution pairing table.
func (s *SeasonService) GetPairings(ctx context.Context, seasonID string) ([]model.SubstitutionPairing, error) {
	pairings, err := s.rotationRepo.ListPairings(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("fetching substitution pairings: %w", err)
	}
	return pairings, nil
}

// Rotation aggregates below are recomputed from the persisted event
// stream rather than stored.

// GetPlayerFrequency returns per-player substitution volume.
func (s *SeasonService) GetPlayerFrequency(ctx context.Context, seasonID string) ([]model.PlayerSubFrequency, error) {
	events, err := s.rotationRepo.ListEvents(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("fetching substitution events: %w", err)
	}
	return rotation.PlayerFrequency(seasonID, events), nil
}

// GetTimingPatterns returns substitution volume by period and clock
// window.
func (s *SeasonService) GetTimingPatterns(ctx context.Context, seasonID string) ([]model.TimingBucket, error) {
	events, err := s.rotationRepo.ListEvents(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("fetching substitution events: %w", err)
	}
	return rotation.TimingPatterns(seasonID, events), nil
}

// GetSituations returns substitutions grouped by score situation.
func (s *SeasonService) GetSituations(ctx context.Context, seasonID string) ([]model.SituationBreakdown, error) {
	events, err := s.rotationRepo.ListEvents(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("fetching substitution events: %w", err)
	}
	return rotation.Situations(seasonID, events), nil
}

// GetPeriodTransitions returns substitutions made at period starts.
func (s *SeasonService) GetPeriodTransitions(ctx context.Context, seasonID string) ([]model.PeriodTransition, error) {
	events, err := s.rotationRepo.ListEvents(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("fetching substitution events: %w", err)
	}
	return rotation.PeriodTransitions(seasonID, events), nil
}

// GetMassSubstitutions returns multi-player substitution occurrences.
func (s *SeasonService) GetMassSubstitutions(ctx context.Context, seasonID string) ([]model.MassSubstitution, error) {
	events, err := s.rotationRepo.ListEvents(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("fetching substitution events: %w", err)
	}
	return rotation.MassSubstitutions(seasonID, events), nil
}

// GetAssistNetwork returns a season's assist edges with leader and
// receiver rollups rebuilt from them.
func (s *SeasonService) GetAssistNetwork(ctx context.Context, seasonID string) (*assist.Network, error) {
	edges, err := s.assistRepo.ListEdges(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("fetching assist edges: %w", err)
	}
	network := assist.NetworkFromEdges(seasonID, edges)
	return &network, nil
}

// GetLatestRun returns the most recent processing run for a season, or
// nil when the season has never been processed.
func (s *SeasonService) GetLatestRun(ctx context.Context, seasonID string) (*store.ProcessingRun, error) {
	run, err := s.runRepo.Latest(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("fetching latest run: %w", err)
	}
	return run, nil
}

// GetCachedReport returns the cached full report for a season, or nil
// when none is cached.
func (s *SeasonService) GetCachedReport(ctx context.Context, seasonID string) (*Report, error) {
	var report Report
	if err := s.cache.GetSeasonReport(ctx, seasonID, &report); err != nil {
		return nil, err
	}
	return &report, nil
}
