package kpi

import (
	"database/sql"

	core "github.com/vanditkanudia/gridgap/core/metrics/kpi"
	_ "modernc.org/sqlite"
)

// SQLiteStore persists timeslice KPI records in a SQLite database.
// Add accumulates into the existing row, matching the merge semantics
// of the in-memory store.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the database and ensures schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	schema := `CREATE TABLE IF NOT EXISTS timeslice_kpi (
        group_id TEXT,
        timeslice TEXT,
        hours INTEGER,
        unmet_mwh REAL,
        curtailed_mwh REAL,
        stress_hours INTEGER,
        PRIMARY KEY(group_id, timeslice)
    );`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// Add inserts or accumulates the KPI record.
func (s *SQLiteStore) Add(r core.Record) error {
	_, err := s.db.Exec(`INSERT INTO timeslice_kpi (group_id, timeslice, hours, unmet_mwh, curtailed_mwh, stress_hours)
        VALUES (?, ?, ?, ?, ?, ?)
        ON CONFLICT(group_id, timeslice) DO UPDATE SET
            hours = hours + excluded.hours,
            unmet_mwh = unmet_mwh + excluded.unmet_mwh,
            curtailed_mwh = curtailed_mwh + excluded.curtailed_mwh,
            stress_hours = stress_hours + excluded.stress_hours`,
		r.Group, r.Timeslice, r.Hours, r.UnmetMWh, r.CurtailedMWh, r.StressHours)
	return err
}

// Query returns the group's records ordered by timeslice ID.
func (s *SQLiteStore) Query(group string) ([]core.Record, error) {
	rows, err := s.db.Query(`SELECT group_id, timeslice, hours, unmet_mwh, curtailed_mwh, stress_hours
        FROM timeslice_kpi WHERE group_id = ? ORDER BY timeslice`, group)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var res []core.Record
	for rows.Next() {
		var r core.Record
		if err := rows.Scan(&r.Group, &r.Timeslice, &r.Hours, &r.UnmetMWh, &r.CurtailedMWh, &r.StressHours); err != nil {
			return nil, err
		}
		res = append(res, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error { return s.db.Close() }
