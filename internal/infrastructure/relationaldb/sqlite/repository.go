// Package sqlite provides a SQLite implementation of the RecordStore interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/ersonp/gedcheck/internal/domain/entities"
	"github.com/ersonp/gedcheck/internal/infrastructure/config"
)

// ErrSnapshotNotFound is returned when a snapshot ID does not exist.
var ErrSnapshotNotFound = errors.New("snapshot not found")

const (
	linkSpouse = "spouse"
	linkChild  = "child"
)

// generateUUID returns a new UUID string.
func generateUUID() string {
	return uuid.New().String()
}

// timeNow returns the current time (can be mocked in tests).
var timeNow = time.Now

// Repository implements ports.RecordStore using SQLite.
type Repository struct {
	db   *sql.DB
	path string
}

// NewRepository creates a new SQLite repository.
func NewRepository(cfg config.SQLiteConfig) (*Repository, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite path is required")
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// A single connection keeps :memory: databases and per-connection pragmas consistent
	db.SetMaxOpenConns(1)

	// Enable foreign keys so deleting a snapshot cascades to its records
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	// Set busy timeout to avoid "database is locked" errors
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	return &Repository{
		db:   db,
		path: cfg.Path,
	}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Path returns the database file path.
func (r *Repository) Path() string {
	return r.path
}

// EnsureSchema creates the database schema if it doesn't exist.
// Records use surrogate row keys because record identifiers are not guaranteed unique.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		id TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		individuals INTEGER NOT NULL,
		families INTEGER NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_snapshots_created ON snapshots(created_at);

	CREATE TABLE IF NOT EXISTS individuals (
		row_id INTEGER PRIMARY KEY AUTOINCREMENT,
		snapshot_id TEXT NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		xref TEXT NOT NULL,
		line_no INTEGER NOT NULL,
		name TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_individuals_snapshot ON individuals(snapshot_id, position);

	CREATE TABLE IF NOT EXISTS individual_links (
		individual_row INTEGER NOT NULL REFERENCES individuals(row_id) ON DELETE CASCADE,
		kind TEXT NOT NULL,
		position INTEGER NOT NULL,
		family_xref TEXT NOT NULL,
		line_no INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_individual_links_row ON individual_links(individual_row);

	CREATE TABLE IF NOT EXISTS families (
		row_id INTEGER PRIMARY KEY AUTOINCREMENT,
		snapshot_id TEXT NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		xref TEXT NOT NULL,
		line_no INTEGER NOT NULL,
		husband_xref TEXT,
		husband_line INTEGER,
		wife_xref TEXT,
		wife_line INTEGER
	);
	CREATE INDEX IF NOT EXISTS idx_families_snapshot ON families(snapshot_id, position);

	CREATE TABLE IF NOT EXISTS family_children (
		family_row INTEGER NOT NULL REFERENCES families(row_id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		child_xref TEXT NOT NULL,
		line_no INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_family_children_row ON family_children(family_row);
	`

	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// SaveSnapshot stores a record set under a new snapshot ID in a single transaction.
func (r *Repository) SaveSnapshot(ctx context.Context, source string, set *entities.RecordSet) (*entities.Snapshot, error) {
	if set == nil {
		return nil, errors.New("record set is required")
	}

	snap := &entities.Snapshot{
		ID:          generateUUID(),
		Source:      source,
		Individuals: len(set.Individuals),
		Families:    len(set.Families),
		CreatedAt:   timeNow().UTC(),
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO snapshots (id, source, individuals, families, created_at) VALUES (?, ?, ?, ?, ?)`,
		snap.ID, snap.Source, snap.Individuals, snap.Families, snap.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("saving snapshot: %w", err)
	}

	for i, ind := range set.Individuals {
		if ind == nil {
			return nil, fmt.Errorf("individual at position %d is nil", i)
		}
		if err := saveIndividual(ctx, tx, snap.ID, i, ind); err != nil {
			return nil, err
		}
	}

	for i, fam := range set.Families {
		if fam == nil {
			return nil, fmt.Errorf("family at position %d is nil", i)
		}
		if err := saveFamily(ctx, tx, snap.ID, i, fam); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing snapshot: %w", err)
	}

	return snap, nil
}

func saveIndividual(ctx context.Context, tx *sql.Tx, snapshotID string, position int, ind *entities.Individual) error {
	result, err := tx.ExecContext(ctx,
		`INSERT INTO individuals (snapshot_id, position, xref, line_no, name) VALUES (?, ?, ?, ?, ?)`,
		snapshotID, position, ind.ID, ind.Line, ind.Name,
	)
	if err != nil {
		return fmt.Errorf("saving individual %s: %w", ind.ID, err)
	}
	rowID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading individual row id: %w", err)
	}

	const insertLink = `INSERT INTO individual_links (individual_row, kind, position, family_xref, line_no) VALUES (?, ?, ?, ?, ?)`
	for i, l := range ind.SpouseOf {
		if _, err := tx.ExecContext(ctx, insertLink, rowID, linkSpouse, i, l.ID, l.Line); err != nil {
			return fmt.Errorf("saving spouse link of %s: %w", ind.ID, err)
		}
	}
	for i, l := range ind.ChildOf {
		if _, err := tx.ExecContext(ctx, insertLink, rowID, linkChild, i, l.ID, l.Line); err != nil {
			return fmt.Errorf("saving child link of %s: %w", ind.ID, err)
		}
	}
	return nil
}

func saveFamily(ctx context.Context, tx *sql.Tx, snapshotID string, position int, fam *entities.Family) error {
	husbandXref, husbandLine := nullableLink(fam.Husband)
	wifeXref, wifeLine := nullableLink(fam.Wife)

	result, err := tx.ExecContext(ctx,
		`INSERT INTO families (snapshot_id, position, xref, line_no, husband_xref, husband_line, wife_xref, wife_line)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		snapshotID, position, fam.ID, fam.Line, husbandXref, husbandLine, wifeXref, wifeLine,
	)
	if err != nil {
		return fmt.Errorf("saving family %s: %w", fam.ID, err)
	}
	rowID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading family row id: %w", err)
	}

	for i, c := range fam.Children {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO family_children (family_row, position, child_xref, line_no) VALUES (?, ?, ?, ?)`,
			rowID, i, c.ID, c.Line,
		)
		if err != nil {
			return fmt.Errorf("saving child of %s: %w", fam.ID, err)
		}
	}
	return nil
}

func nullableLink(l *entities.Link) (sql.NullString, sql.NullInt64) {
	if l == nil {
		return sql.NullString{}, sql.NullInt64{}
	}
	return sql.NullString{String: l.ID, Valid: true}, sql.NullInt64{Int64: int64(l.Line), Valid: true}
}

// LoadSnapshot reconstructs the record set stored under id.
// Husbands and Wives are left unresolved; that is the in-memory repository's job.
func (r *Repository) LoadSnapshot(ctx context.Context, id string) (*entities.RecordSet, error) {
	exists, err := r.snapshotExists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, id)
	}

	individuals, err := r.loadIndividuals(ctx, id)
	if err != nil {
		return nil, err
	}

	families, err := r.loadFamilies(ctx, id)
	if err != nil {
		return nil, err
	}

	return &entities.RecordSet{
		Individuals: individuals,
		Families:    families,
	}, nil
}

func (r *Repository) snapshotExists(ctx context.Context, id string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM snapshots WHERE id = ?`, id).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking snapshot: %w", err)
	}
	return count > 0, nil
}

// loadIndividuals reads individuals and then their links in a second query, so no two
// result sets are open at once on the single connection.
func (r *Repository) loadIndividuals(ctx context.Context, snapshotID string) ([]*entities.Individual, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT row_id, xref, line_no, name
		FROM individuals
		WHERE snapshot_id = ?
		ORDER BY position
	`, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("querying individuals: %w", err)
	}

	individuals := make([]*entities.Individual, 0, 64)
	byRow := make(map[int64]*entities.Individual)
	for rows.Next() {
		var rowID int64
		var name sql.NullString
		ind := &entities.Individual{}
		if err := rows.Scan(&rowID, &ind.ID, &ind.Line, &name); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning individual: %w", err)
		}
		ind.Name = name.String
		individuals = append(individuals, ind)
		byRow[rowID] = ind
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating individuals: %w", err)
	}
	rows.Close()

	links, err := r.db.QueryContext(ctx, `
		SELECT l.individual_row, l.kind, l.family_xref, l.line_no
		FROM individual_links l
		JOIN individuals i ON i.row_id = l.individual_row
		WHERE i.snapshot_id = ?
		ORDER BY l.individual_row, l.kind, l.position
	`, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("querying individual links: %w", err)
	}
	defer links.Close()

	for links.Next() {
		var rowID int64
		var kind string
		var l entities.Link
		if err := links.Scan(&rowID, &kind, &l.ID, &l.Line); err != nil {
			return nil, fmt.Errorf("scanning individual link: %w", err)
		}
		ind, ok := byRow[rowID]
		if !ok {
			continue
		}
		switch kind {
		case linkSpouse:
			ind.SpouseOf = append(ind.SpouseOf, l)
		case linkChild:
			ind.ChildOf = append(ind.ChildOf, l)
		}
	}
	return individuals, links.Err()
}

func (r *Repository) loadFamilies(ctx context.Context, snapshotID string) ([]*entities.Family, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT row_id, xref, line_no, husband_xref, husband_line, wife_xref, wife_line
		FROM families
		WHERE snapshot_id = ?
		ORDER BY position
	`, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("querying families: %w", err)
	}

	families := make([]*entities.Family, 0, 32)
	byRow := make(map[int64]*entities.Family)
	for rows.Next() {
		var rowID int64
		var husbandXref, wifeXref sql.NullString
		var husbandLine, wifeLine sql.NullInt64
		fam := &entities.Family{}
		if err := rows.Scan(&rowID, &fam.ID, &fam.Line, &husbandXref, &husbandLine, &wifeXref, &wifeLine); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning family: %w", err)
		}
		fam.Husband = linkFromNullable(husbandXref, husbandLine)
		fam.Wife = linkFromNullable(wifeXref, wifeLine)
		families = append(families, fam)
		byRow[rowID] = fam
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating families: %w", err)
	}
	rows.Close()

	children, err := r.db.QueryContext(ctx, `
		SELECT c.family_row, c.child_xref, c.line_no
		FROM family_children c
		JOIN families f ON f.row_id = c.family_row
		WHERE f.snapshot_id = ?
		ORDER BY c.family_row, c.position
	`, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("querying family children: %w", err)
	}
	defer children.Close()

	for children.Next() {
		var rowID int64
		var l entities.Link
		if err := children.Scan(&rowID, &l.ID, &l.Line); err != nil {
			return nil, fmt.Errorf("scanning family child: %w", err)
		}
		if fam, ok := byRow[rowID]; ok {
			fam.Children = append(fam.Children, l)
		}
	}
	return families, children.Err()
}

func linkFromNullable(xref sql.NullString, line sql.NullInt64) *entities.Link {
	if !xref.Valid {
		return nil
	}
	return &entities.Link{ID: xref.String, Line: int(line.Int64)}
}

// ListSnapshots lists stored snapshots, newest first. A non-positive limit lists all.
func (r *Repository) ListSnapshots(ctx context.Context, limit int) ([]entities.Snapshot, error) {
	query := `
		SELECT id, source, individuals, families, created_at
		FROM snapshots
		ORDER BY created_at DESC, rowid DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying snapshots: %w", err)
	}
	defer rows.Close()

	snapshots := make([]entities.Snapshot, 0, 16)
	for rows.Next() {
		var s entities.Snapshot
		if err := rows.Scan(&s.ID, &s.Source, &s.Individuals, &s.Families, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}
		snapshots = append(snapshots, s)
	}
	return snapshots, rows.Err()
}

// DeleteSnapshot deletes a snapshot; its records are removed by cascade.
func (r *Repository) DeleteSnapshot(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM snapshots WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting snapshot: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%w: %s", ErrSnapshotNotFound, id)
	}
	return nil
}
