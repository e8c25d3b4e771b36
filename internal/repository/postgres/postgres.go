package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/kimyuchan-1/MiniProject-sub000/internal/domain"
)

// Pool is the subset of pgxpool.Pool used by the repository.
// pgxmock.PgxPoolIface satisfies it as well.
type Pool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Ping(ctx context.Context) error
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns       int32
	MinConns       int32
	ConnectTimeout time.Duration
}

// NewPool parses the connection string, opens a pool and pings it.
func NewPool(ctx context.Context, connString string, cfg PoolConfig) (*pgxpool.Pool, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	pgxCfg.MaxConns = 10
	pgxCfg.MinConns = 2
	if cfg.MaxConns > 0 {
		pgxCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		pgxCfg.MinConns = cfg.MinConns
	}
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return pool, nil
}

// PostgresRepository implements domain.SafetyRepository
type PostgresRepository struct {
	pool Pool
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(pool Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const accidentColumns = `id::text, COALESCE(district_code, ''), year, month,
	accident_count, casualty_count, fatality_count,
	serious_injury_count, minor_injury_count, reported_injury_count,
	latitude, longitude`

const crosswalkColumns = `id::text, COALESCE(sido, ''), COALESCE(sigungu, ''), COALESCE(address, ''),
	latitude, longitude,
	has_signal, pedestrian_button, sound_signal, remaining_time_display,
	highland_crossing, curb_ramp, braille_block, spotlight`

// whereBuilder collects AND-ed conditions with positional arguments
type whereBuilder struct {
	conds []string
	args  []any
}

func (w *whereBuilder) add(cond string, args ...any) {
	placeholders := make([]any, len(args))
	for i, a := range args {
		w.args = append(w.args, a)
		placeholders[i] = len(w.args)
	}
	w.conds = append(w.conds, fmt.Sprintf(cond, placeholders...))
}

func (w *whereBuilder) bounds(b domain.Bounds) {
	if b.IsZero() {
		return
	}
	w.add("latitude BETWEEN $%d AND $%d", b.South, b.North)
	w.add("longitude BETWEEN $%d AND $%d", b.West, b.East)
}

func (w *whereBuilder) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// ListAccidents retrieves accident statistics filtered by bounds, year and district
func (r *PostgresRepository) ListAccidents(ctx context.Context, q domain.AccidentQuery) ([]domain.AccidentRecord, error) {
	var w whereBuilder
	w.bounds(q.Bounds)
	if q.Year > 0 {
		w.add("year = $%d", q.Year)
	}
	if q.DistrictCode != "" {
		w.add("district_code = $%d", q.DistrictCode)
	}

	query := "SELECT " + accidentColumns + " FROM pedestrian_accidents" + w.String() + " ORDER BY id"

	rows, err := r.pool.Query(ctx, query, w.args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: query accidents")
	}
	defer rows.Close()

	results := []domain.AccidentRecord{}
	for rows.Next() {
		var (
			a     domain.AccidentRecord
			month *int
		)
		err := rows.Scan(
			&a.ID, &a.DistrictCode, &a.Year, &month,
			&a.AccidentCount, &a.CasualtyCount, &a.FatalityCount,
			&a.SeriousInjuryCount, &a.MinorInjuryCount, &a.ReportedInjuryCount,
			&a.Latitude, &a.Longitude,
		)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan accident row")
		}
		if month != nil {
			a.Month = *month
		}
		results = append(results, a)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: iterate accidents")
	}

	return results, nil
}

// ListCrosswalks retrieves crosswalk facilities inside the bounds
func (r *PostgresRepository) ListCrosswalks(ctx context.Context, b domain.Bounds) ([]domain.CrosswalkFacility, error) {
	var w whereBuilder
	w.bounds(b)

	query := "SELECT " + crosswalkColumns + " FROM crosswalks" + w.String() + " ORDER BY id"

	rows, err := r.pool.Query(ctx, query, w.args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: query crosswalks")
	}
	defer rows.Close()

	results := []domain.CrosswalkFacility{}
	for rows.Next() {
		var c domain.CrosswalkFacility
		err := rows.Scan(
			&c.ID, &c.Sido, &c.Sigungu, &c.Address,
			&c.Latitude, &c.Longitude,
			&c.HasSignal, &c.PedestrianButton, &c.SoundSignal, &c.RemainingTimeDisplay,
			&c.HighlandCrossing, &c.CurbRamp, &c.BrailleBlock, &c.Spotlight,
		)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan crosswalk row")
		}
		results = append(results, c)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: iterate crosswalks")
	}

	return results, nil
}

// Health checks database connectivity
func (r *PostgresRepository) Health(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return eris.Wrap(err, "postgres: health check")
	}
	return nil
}
