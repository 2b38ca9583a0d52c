package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/geopoi/poi-backend-go/internal/database"
	"github.com/geopoi/poi-backend-go/internal/models"
	"github.com/geopoi/poi-backend-go/internal/s2geo"
)

// POIRepository handles database operations for points of interest and
// their location index rows.
type POIRepository struct {
	db *sql.DB
}

// NewPOIRepository creates a new POI repository
func NewPOIRepository(db *sql.DB) *POIRepository {
	return &POIRepository{db: db}
}

// Upsert writes a POI and its cell tokens in one transaction.
func (r *POIRepository) Upsert(poi models.POI) error {
	return r.UpsertBatch([]models.POI{poi})
}

// UpsertBatch writes all POIs and all their index rows as a single atomic
// unit: either every row lands or none does. Re-ingesting an existing POI
// overwrites its attribute row and rewrites its index rows, so the token
// set always matches the encoder output for the current position — a moved
// POI never leaves stale tokens behind, and repeated identical calls are
// idempotent.
func (r *POIRepository) UpsertBatch(pois []models.POI) error {
	if len(pois) == 0 {
		return nil
	}

	// Encode up front so a validation error aborts before any write.
	cellsByID := make(map[string][]models.IndexEntry, len(pois))
	for _, poi := range pois {
		cells, err := s2geo.EncodeCellIDs(poi.Latitude, poi.Longitude)
		if err != nil {
			return err
		}
		entries := make([]models.IndexEntry, 0, len(cells))
		for _, c := range cells {
			entries = append(entries, models.IndexEntry{
				PoiID:     poi.ID,
				CellID:    s2geo.StoredCellID(c),
				CellLevel: c.Level(),
			})
		}
		cellsByID[poi.ID] = entries
	}

	return database.Transaction(r.db, func(tx *sql.Tx) error {
		for _, poi := range pois {
			_, err := tx.Exec(`
				INSERT INTO point_of_interest (poi_id, name, category, latitude, longitude)
				VALUES (?, ?, ?, ?, ?)
				ON CONFLICT(poi_id) DO UPDATE SET
					name = excluded.name,
					category = excluded.category,
					latitude = excluded.latitude,
					longitude = excluded.longitude,
					updated_at = CURRENT_TIMESTAMP`,
				poi.ID, poi.Name, nullableString(poi.Category), poi.Latitude, poi.Longitude)
			if err != nil {
				return fmt.Errorf("failed to upsert poi %s: %w", poi.ID, err)
			}

			// Rewrite the token set rather than layering on top of it.
			if _, err := tx.Exec("DELETE FROM poi_location_index WHERE poi_id = ?", poi.ID); err != nil {
				return fmt.Errorf("failed to clear index entries for poi %s: %w", poi.ID, err)
			}
			for _, entry := range cellsByID[poi.ID] {
				_, err := tx.Exec(`
					INSERT INTO poi_location_index (poi_id, s2_cell_id, cell_level)
					VALUES (?, ?, ?)`,
					entry.PoiID, entry.CellID, entry.CellLevel)
				if err != nil {
					return fmt.Errorf("failed to insert index entry for poi %s: %w", poi.ID, err)
				}
			}
		}
		return nil
	})
}

// GetByID retrieves a single POI, or nil when it does not exist.
func (r *POIRepository) GetByID(id string) (*models.POI, error) {
	row := r.db.QueryRow(`
		SELECT poi_id, name, category, latitude, longitude
		FROM point_of_interest WHERE poi_id = ?`, id)

	poi, err := scanPOI(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get poi: %w", err)
	}
	return poi, nil
}

// Delete removes a POI together with its index rows. The index delete is
// explicit even though the schema also cascades: the foreign_keys pragma
// is per-connection in sqlite and must not be load-bearing.
func (r *POIRepository) Delete(id string) error {
	var affected int64
	err := database.Transaction(r.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM poi_location_index WHERE poi_id = ?", id); err != nil {
			return fmt.Errorf("failed to delete index entries: %w", err)
		}
		result, err := tx.Exec("DELETE FROM point_of_interest WHERE poi_id = ?", id)
		if err != nil {
			return fmt.Errorf("failed to delete poi: %w", err)
		}
		affected, err = result.RowsAffected()
		return err
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// IndexEntries returns the location index rows for one POI, ordered by
// level. Used to verify the index invariant.
func (r *POIRepository) IndexEntries(poiID string) ([]models.IndexEntry, error) {
	rows, err := r.db.Query(`
		SELECT poi_id, s2_cell_id, cell_level
		FROM poi_location_index WHERE poi_id = ? ORDER BY cell_level`, poiID)
	if err != nil {
		return nil, fmt.Errorf("failed to query index entries: %w", err)
	}
	defer rows.Close()

	var entries []models.IndexEntry
	for rows.Next() {
		var e models.IndexEntry
		if err := rows.Scan(&e.PoiID, &e.CellID, &e.CellLevel); err != nil {
			return nil, fmt.Errorf("failed to scan index entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ScanRanges returns every POI whose location index has a token inside any
// of the given cell ID ranges. A POI carries tokens at multiple levels, so
// the same POI can match several ranges; DISTINCT collapses it to one row.
func (r *POIRepository) ScanRanges(ranges []s2geo.CellIDRange) ([]models.POI, error) {
	if len(ranges) == 0 {
		return nil, nil
	}

	predicates, args := rangePredicates(ranges)
	query := `
		SELECT poi.poi_id, poi.name, poi.category, poi.latitude, poi.longitude
		FROM point_of_interest poi
		WHERE poi.poi_id IN (
			SELECT DISTINCT idx.poi_id FROM poi_location_index idx
			WHERE ` + predicates + `
		)`

	return r.queryPOIs(query, args)
}

// ScanRangesInBounds is ScanRanges with the exact bounding box check pushed
// into SQL as the post-filter, sorted by name.
func (r *POIRepository) ScanRangesInBounds(ranges []s2geo.CellIDRange, minLat, minLng, maxLat, maxLng float64) ([]models.POI, error) {
	if len(ranges) == 0 {
		return nil, nil
	}

	predicates, args := rangePredicates(ranges)
	query := `
		SELECT poi.poi_id, poi.name, poi.category, poi.latitude, poi.longitude
		FROM point_of_interest poi
		WHERE poi.poi_id IN (
			SELECT DISTINCT idx.poi_id FROM poi_location_index idx
			WHERE ` + predicates + `
		)
		AND poi.latitude BETWEEN ? AND ?
		AND poi.longitude BETWEEN ? AND ?
		ORDER BY poi.name`
	args = append(args, minLat, maxLat, minLng, maxLng)

	return r.queryPOIs(query, args)
}

// ScanCells returns every POI holding a token exactly equal to one of the
// given cell IDs. This is the scan shape for the remote covering path,
// whose cells are already promoted to index levels.
func (r *POIRepository) ScanCells(cellIDs []int64) ([]models.POI, error) {
	if len(cellIDs) == 0 {
		return nil, nil
	}

	placeholders, args := cellPredicates(cellIDs)
	query := `
		SELECT poi.poi_id, poi.name, poi.category, poi.latitude, poi.longitude
		FROM point_of_interest poi
		WHERE poi.poi_id IN (
			SELECT DISTINCT idx.poi_id FROM poi_location_index idx
			WHERE idx.s2_cell_id IN (` + placeholders + `)
		)`

	return r.queryPOIs(query, args)
}

// ScanCellsInBounds is ScanCells with the exact bounding box post-filter,
// sorted by name.
func (r *POIRepository) ScanCellsInBounds(cellIDs []int64, minLat, minLng, maxLat, maxLng float64) ([]models.POI, error) {
	if len(cellIDs) == 0 {
		return nil, nil
	}

	placeholders, args := cellPredicates(cellIDs)
	query := `
		SELECT poi.poi_id, poi.name, poi.category, poi.latitude, poi.longitude
		FROM point_of_interest poi
		WHERE poi.poi_id IN (
			SELECT DISTINCT idx.poi_id FROM poi_location_index idx
			WHERE idx.s2_cell_id IN (` + placeholders + `)
		)
		AND poi.latitude BETWEEN ? AND ?
		AND poi.longitude BETWEEN ? AND ?
		ORDER BY poi.name`
	args = append(args, minLat, maxLat, minLng, maxLng)

	return r.queryPOIs(query, args)
}

func rangePredicates(ranges []s2geo.CellIDRange) (string, []interface{}) {
	var conditions []string
	var args []interface{}
	for _, rng := range ranges {
		conditions = append(conditions, "idx.s2_cell_id BETWEEN ? AND ?")
		args = append(args, rng.Min, rng.Max)
	}
	return strings.Join(conditions, " OR "), args
}

func cellPredicates(cellIDs []int64) (string, []interface{}) {
	placeholders := make([]string, len(cellIDs))
	args := make([]interface{}, len(cellIDs))
	for i, id := range cellIDs {
		placeholders[i] = "?"
		args[i] = id
	}
	return strings.Join(placeholders, ", "), args
}

func (r *POIRepository) queryPOIs(query string, args []interface{}) ([]models.POI, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query pois: %w", err)
	}
	defer rows.Close()

	var pois []models.POI
	for rows.Next() {
		var poi models.POI
		var category sql.NullString
		if err := rows.Scan(&poi.ID, &poi.Name, &category, &poi.Latitude, &poi.Longitude); err != nil {
			return nil, fmt.Errorf("failed to scan poi: %w", err)
		}
		poi.Category = category.String
		pois = append(pois, poi)
	}
	return pois, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPOI(row rowScanner) (*models.POI, error) {
	var poi models.POI
	var category sql.NullString
	if err := row.Scan(&poi.ID, &poi.Name, &category, &poi.Latitude, &poi.Longitude); err != nil {
		return nil, err
	}
	poi.Category = category.String
	return &poi, nil
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
