package database

import (
	"database/sql"
	"fmt"
)

// Schema for the POI store. The location index table is owned by its
// parent row: deleting a POI cascades to its cell tokens. cell_level is a
// stored attribute on the secondary index path so scans never need a join
// back to recover the level.
//
// s2_cell_id holds the signed reinterpretation of the unsigned S2 cell ID
// bit pattern. Range scans stay within one S2 face, where signed ordering
// matches unsigned ordering, so BETWEEN predicates remain correct.
const schema = `
CREATE TABLE IF NOT EXISTS point_of_interest (
	poi_id     TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	category   TEXT,
	latitude   REAL NOT NULL,
	longitude  REAL NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS poi_location_index (
	poi_id     TEXT NOT NULL REFERENCES point_of_interest(poi_id) ON DELETE CASCADE,
	s2_cell_id INTEGER NOT NULL,
	cell_level INTEGER NOT NULL,
	PRIMARY KEY (poi_id, s2_cell_id)
);

CREATE INDEX IF NOT EXISTS idx_poi_location_cell
	ON poi_location_index(s2_cell_id, poi_id);
`

// EnsureSchema creates the POI tables and indexes if they do not exist.
func EnsureSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
