package world

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"starmap-server/internal/shared/database"

	"github.com/lib/pq"
)

// Repository persists world snapshots to Postgres, one snapshot per
// campaign. Writes replace the whole snapshot inside a transaction; a world
// is small enough that partial updates are not worth the bookkeeping.
type Repository struct {
	db     *database.DB
	logger *slog.Logger
}

func NewRepository(db *database.DB, logger *slog.Logger) *Repository {
	logger.Debug("Initializing world repository")

	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) SaveSnapshot(ctx context.Context, campaignID int, snap *Snapshot) error {
	logger := r.logger.With(
		"component", "world_repository",
		"operation", "save_snapshot",
		"campaign_id", campaignID,
	)
	logger.Debug("Saving world snapshot",
		"systems", len(snap.Systems),
		"routes", len(snap.Routes),
		"stations", len(snap.Stations),
	)

	tx, err := r.db.BeginTxContext(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, table := range []string{"world_stations", "world_routes", "world_systems", "world_factions"} {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE campaign_id = $1", table), campaignID); err != nil {
			logger.Error("Failed to clear world table", "table", table, "error", err)
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for _, f := range snap.Factions {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO world_factions (campaign_id, id, name, type, military_strength, economic_power, influence, desperation, corruption, hostility, color)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`, campaignID, f.ID, f.Name, string(f.Type),
			f.Metrics.MilitaryStrength, f.Metrics.EconomicPower, f.Metrics.Influence,
			f.Metrics.Desperation, f.Metrics.Corruption, f.Hostility, f.Color)
		if err != nil {
			logger.Error("Failed to insert faction", "faction_id", f.ID, "error", err)
			return fmt.Errorf("failed to insert faction %d: %w", f.ID, err)
		}
	}

	for _, s := range snap.Systems {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO world_systems (campaign_id, id, name, type, x, y, owner_id, stability, security_level, criminal_activity, economic_activity, law_enforcement_presence, tags)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		`, campaignID, s.ID, s.Name, string(s.Type), s.X, s.Y, s.OwnerID,
			s.Metrics.Stability, s.Metrics.SecurityLevel, s.Metrics.CriminalActivity,
			s.Metrics.EconomicActivity, s.Metrics.LawEnforcementPresence,
			pq.Array(s.Tags))
		if err != nil {
			logger.Error("Failed to insert system", "system_id", s.ID, "error", err)
			return fmt.Errorf("failed to insert system %d: %w", s.ID, err)
		}
	}

	for _, rt := range snap.Routes {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO world_routes (campaign_id, id, system_a, system_b, distance, hazard, tags)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, campaignID, rt.ID, rt.SystemA, rt.SystemB, rt.Distance, rt.Hazard, pq.Array(rt.Tags))
		if err != nil {
			logger.Error("Failed to insert route", "route_id", rt.ID, "error", err)
			return fmt.Errorf("failed to insert route %d: %w", rt.ID, err)
		}
	}

	for _, st := range snap.Stations {
		facilities, err := json.Marshal(st.Facilities)
		if err != nil {
			return fmt.Errorf("failed to encode facilities for station %d: %w", st.ID, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO world_stations (campaign_id, id, name, system_id, owner_id, facilities, tags)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, campaignID, st.ID, st.Name, st.SystemID, st.OwnerID, facilities, pq.Array(st.Tags))
		if err != nil {
			logger.Error("Failed to insert station", "station_id", st.ID, "error", err)
			return fmt.Errorf("failed to insert station %d: %w", st.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		logger.Error("Failed to commit world snapshot", "error", err)
		return fmt.Errorf("failed to commit world snapshot: %w", err)
	}

	logger.Debug("World snapshot saved")
	return nil
}

func (r *Repository) LoadSnapshot(ctx context.Context, campaignID int) (*Snapshot, error) {
	logger := r.logger.With(
		"component", "world_repository",
		"operation", "load_snapshot",
		"campaign_id", campaignID,
	)
	logger.Debug("Loading world snapshot")

	snap := &Snapshot{}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, type, military_strength, economic_power, influence, desperation, corruption, hostility, color
		FROM world_factions WHERE campaign_id = $1 ORDER BY id
	`, campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to query factions: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var f FactionRecord
		var ftype string
		if err := rows.Scan(&f.ID, &f.Name, &ftype,
			&f.Metrics.MilitaryStrength, &f.Metrics.EconomicPower, &f.Metrics.Influence,
			&f.Metrics.Desperation, &f.Metrics.Corruption, &f.Hostility, &f.Color); err != nil {
			return nil, fmt.Errorf("failed to scan faction: %w", err)
		}
		f.Type = FactionType(ftype)
		snap.Factions = append(snap.Factions, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating factions: %w", err)
	}

	sysRows, err := r.db.QueryContext(ctx, `
		SELECT id, name, type, x, y, owner_id, stability, security_level, criminal_activity, economic_activity, law_enforcement_presence, tags
		FROM world_systems WHERE campaign_id = $1 ORDER BY id
	`, campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to query systems: %w", err)
	}
	defer sysRows.Close()
	for sysRows.Next() {
		var s SystemRecord
		var stype string
		if err := sysRows.Scan(&s.ID, &s.Name, &stype, &s.X, &s.Y, &s.OwnerID,
			&s.Metrics.Stability, &s.Metrics.SecurityLevel, &s.Metrics.CriminalActivity,
			&s.Metrics.EconomicActivity, &s.Metrics.LawEnforcementPresence,
			pq.Array(&s.Tags)); err != nil {
			return nil, fmt.Errorf("failed to scan system: %w", err)
		}
		s.Type = SystemType(stype)
		snap.Systems = append(snap.Systems, s)
	}
	if err := sysRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating systems: %w", err)
	}

	routeRows, err := r.db.QueryContext(ctx, `
		SELECT id, system_a, system_b, distance, hazard, tags
		FROM world_routes WHERE campaign_id = $1 ORDER BY id
	`, campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to query routes: %w", err)
	}
	defer routeRows.Close()
	for routeRows.Next() {
		var rt RouteRecord
		if err := routeRows.Scan(&rt.ID, &rt.SystemA, &rt.SystemB, &rt.Distance, &rt.Hazard, pq.Array(&rt.Tags)); err != nil {
			return nil, fmt.Errorf("failed to scan route: %w", err)
		}
		snap.Routes = append(snap.Routes, rt)
	}
	if err := routeRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating routes: %w", err)
	}

	stationRows, err := r.db.QueryContext(ctx, `
		SELECT id, name, system_id, owner_id, facilities, tags
		FROM world_stations WHERE campaign_id = $1 ORDER BY id
	`, campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to query stations: %w", err)
	}
	defer stationRows.Close()
	for stationRows.Next() {
		var st StationRecord
		var facilities []byte
		if err := stationRows.Scan(&st.ID, &st.Name, &st.SystemID, &st.OwnerID, &facilities, pq.Array(&st.Tags)); err != nil {
			return nil, fmt.Errorf("failed to scan station: %w", err)
		}
		if err := json.Unmarshal(facilities, &st.Facilities); err != nil {
			return nil, fmt.Errorf("failed to decode facilities for station %d: %w", st.ID, err)
		}
		snap.Stations = append(snap.Stations, st)
	}
	if err := stationRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stations: %w", err)
	}

	logger.Debug("World snapshot loaded",
		"systems", len(snap.Systems),
		"routes", len(snap.Routes),
		"stations", len(snap.Stations),
	)
	return snap, nil
}

func (r *Repository) DeleteSnapshot(ctx context.Context, campaignID int) error {
	for _, table := range []string{"world_stations", "world_routes", "world_systems", "world_factions"} {
		if _, err := r.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE campaign_id = $1", table), campaignID); err != nil {
			return fmt.Errorf("failed to delete from %s: %w", table, err)
		}
	}
	return nil
}
