package campaign

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"starmap-server/internal/faction"
	"starmap-server/internal/galaxy"
	sharedredis "starmap-server/internal/shared/redis"
	"starmap-server/internal/world"
)

// Service owns campaign lifecycles. Creating a campaign runs the full
// generation pipeline synchronously, persists the snapshot, and keeps the
// live graph in memory; the graph is the campaign's canonical world state
// for as long as the campaign exists.
type Service struct {
	repo      *Repository
	worlds    *world.Repository
	generator *galaxy.Service
	factions  *faction.Registry
	cache     *snapshotCache
	logger    *slog.Logger

	mu   sync.RWMutex
	live map[int]*world.Graph
}

func NewService(
	repo *Repository,
	worlds *world.Repository,
	generator *galaxy.Service,
	factions *faction.Registry,
	redisClient *sharedredis.Client,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:      repo,
		worlds:    worlds,
		generator: generator,
		factions:  factions,
		cache:     newSnapshotCache(redisClient, logger),
		logger:    logger,
		live:      make(map[int]*world.Graph),
	}
}

// Create starts a new campaign: generate the world from the seed, persist
// its snapshot, activate the campaign. Generation failures roll the
// campaign row back.
func (s *Service) Create(ctx context.Context, req CreateRequest, cfg galaxy.GenerationConfig) (*Campaign, error) {
	logger := s.logger.With("component", "campaign_service", "operation", "create", "name", req.Name)
	logger.Info("Creating campaign")

	cfg = req.Apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Resolve a zero seed before persisting so the stored seed always
	// regenerates the stored world.
	seed := galaxy.ResolveSeed(req.Seed)

	c, err := s.repo.Create(ctx, req.Name, seed)
	if err != nil {
		return nil, err
	}

	g, err := s.generator.Generate(cfg, seed, s.factions.Roster())
	if err != nil {
		logger.Error("Failed to generate world", "campaign_id", c.ID, "error", err)
		if delErr := s.repo.Delete(ctx, c.ID); delErr != nil {
			logger.Error("Failed to clean up campaign after generation failure", "campaign_id", c.ID, "error", delErr)
		}
		return nil, fmt.Errorf("failed to generate world: %w", err)
	}

	snap := g.Snapshot()
	if err := s.worlds.SaveSnapshot(ctx, c.ID, snap); err != nil {
		logger.Error("Failed to persist world", "campaign_id", c.ID, "error", err)
		if delErr := s.repo.Delete(ctx, c.ID); delErr != nil {
			logger.Error("Failed to clean up campaign after persist failure", "campaign_id", c.ID, "error", delErr)
		}
		return nil, err
	}
	s.cache.Set(ctx, c.ID, snap)

	if err := s.repo.Activate(ctx, c.ID, g.SystemCount(), g.RouteCount(), g.StationCount()); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.live[c.ID] = g
	s.mu.Unlock()

	logger.Info("Campaign created",
		"campaign_id", c.ID,
		"systems", g.SystemCount(),
		"routes", g.RouteCount(),
		"stations", g.StationCount(),
	)
	return s.repo.Get(ctx, c.ID)
}

func (s *Service) Get(ctx context.Context, id int) (*Campaign, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Campaign, error) {
	return s.repo.List(ctx)
}

// World returns the live graph for a campaign, restoring it from the Redis
// cache or Postgres when the process has not touched it yet.
func (s *Service) World(ctx context.Context, id int) (*world.Graph, error) {
	s.mu.RLock()
	g, ok := s.live[id]
	s.mu.RUnlock()
	if ok {
		return g, nil
	}

	// Verify the campaign exists before chasing snapshots.
	if _, err := s.repo.Get(ctx, id); err != nil {
		return nil, err
	}

	snap, ok := s.cache.Get(ctx, id)
	if !ok {
		var err error
		snap, err = s.worlds.LoadSnapshot(ctx, id)
		if err != nil {
			return nil, err
		}
		s.cache.Set(ctx, id, snap)
	}

	g, err := world.Restore(snap, s.logger)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	// Another request may have restored concurrently; keep the first.
	if existing, ok := s.live[id]; ok {
		g = existing
	} else {
		s.live[id] = g
	}
	s.mu.Unlock()
	return g, nil
}

// Persist writes the campaign's current world state back to Postgres and
// refreshes the cache. Called after simulation mutations.
func (s *Service) Persist(ctx context.Context, id int) error {
	s.mu.RLock()
	g, ok := s.live[id]
	s.mu.RUnlock()
	if !ok {
		return nil
	}
	snap := g.Snapshot()
	if err := s.worlds.SaveSnapshot(ctx, id, snap); err != nil {
		return err
	}
	s.cache.Set(ctx, id, snap)
	return nil
}

func (s *Service) Delete(ctx context.Context, id int) error {
	logger := s.logger.With("component", "campaign_service", "operation", "delete", "campaign_id", id)
	logger.Info("Deleting campaign and world data")

	if err := s.worlds.DeleteSnapshot(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Delete(ctx, id)

	s.mu.Lock()
	delete(s.live, id)
	s.mu.Unlock()
	return nil
}
