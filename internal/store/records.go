package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/roach88/saju/internal/canon"
	"github.com/roach88/saju/internal/chart"
)

// ErrNotFound is returned when a profile or report does not exist.
var ErrNotFound = errors.New("not found")

// Report kinds.
const (
	KindChart    = "chart"
	KindTiming   = "timing"
	KindTrend    = "trend"
	KindPatterns = "patterns"
	KindCompat   = "compat"
)

// Record is one archived result.
type Record struct {
	ID          string          `json:"id"`
	Seq         int64           `json:"seq"`
	ProfileID   string          `json:"profile_id"`
	Kind        string          `json:"kind"`
	Fingerprint string          `json:"fingerprint"`
	Params      json.RawMessage `json:"params"`
	Result      json.RawMessage `json:"result"`
}

// Decode unmarshals the stored result into v.
func (r Record) Decode(v any) error {
	if err := json.Unmarshal(r.Result, v); err != nil {
		return fmt.Errorf("decode %s report %s: %w", r.Kind, r.ID, err)
	}
	return nil
}

// SaveProfile stores p under its canonical fingerprint and returns the ID.
// Saving the same profile twice is a no-op.
func (s *Store) SaveProfile(ctx context.Context, p chart.BirthProfile) (string, error) {
	data, err := canon.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("save profile: %w", err)
	}
	id, err := canon.Fingerprint(canon.DomainProfile, p)
	if err != nil {
		return "", fmt.Errorf("save profile: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO profiles (id, name, birth_year, day_pillar, data)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, id, p.Name, p.BirthYear, p.Day.String(), string(data))
	if err != nil {
		return "", fmt.Errorf("save profile: %w", err)
	}
	return id, nil
}

// GetProfile loads a stored profile.
func (s *Store) GetProfile(ctx context.Context, id string) (chart.BirthProfile, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM profiles WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return chart.BirthProfile{}, fmt.Errorf("profile %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return chart.BirthProfile{}, fmt.Errorf("get profile: %w", err)
	}
	var p chart.BirthProfile
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return chart.BirthProfile{}, fmt.Errorf("get profile %s: %w", id, err)
	}
	return p, nil
}

// SaveReport archives a computed result for a profile. params describes
// the request (year range, query, partner). An identical result for the
// same profile, kind and params is stored once; saving it again returns
// the existing record.
func (s *Store) SaveReport(ctx context.Context, p chart.BirthProfile, kind string, params, result any) (Record, error) {
	profileID, err := s.SaveProfile(ctx, p)
	if err != nil {
		return Record{}, err
	}
	paramsJSON, err := canon.Marshal(params)
	if err != nil {
		return Record{}, fmt.Errorf("save report params: %w", err)
	}
	resultJSON, err := canon.Marshal(result)
	if err != nil {
		return Record{}, fmt.Errorf("save report result: %w", err)
	}
	fingerprint, err := canon.Fingerprint(canon.DomainReport, map[string]any{
		"profile_id": profileID,
		"kind":       kind,
		"params":     json.RawMessage(paramsJSON),
		"result":     json.RawMessage(resultJSON),
	})
	if err != nil {
		return Record{}, fmt.Errorf("save report: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Record{}, fmt.Errorf("save report: begin: %w", err)
	}
	defer tx.Rollback()

	existing, err := scanRecord(tx.QueryRowContext(ctx, `
		SELECT id, seq, profile_id, kind, fingerprint, params, result
		FROM reports
		WHERE profile_id = ? AND kind = ? AND fingerprint = ?
	`, profileID, kind, fingerprint))
	if err == nil {
		s.logger.Debug("report already archived", "id", existing.ID, "kind", kind)
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Record{}, fmt.Errorf("save report: %w", err)
	}

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM reports`).Scan(&seq); err != nil {
		return Record{}, fmt.Errorf("save report: next seq: %w", err)
	}
	rec := Record{
		ID:          s.ids.Generate(),
		Seq:         seq,
		ProfileID:   profileID,
		Kind:        kind,
		Fingerprint: fingerprint,
		Params:      paramsJSON,
		Result:      resultJSON,
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO reports (id, seq, profile_id, kind, fingerprint, params, result)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Seq, rec.ProfileID, rec.Kind, rec.Fingerprint, string(rec.Params), string(rec.Result))
	if err != nil {
		return Record{}, fmt.Errorf("save report: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return Record{}, fmt.Errorf("save report: commit: %w", err)
	}
	s.logger.Debug("report archived", "id", rec.ID, "seq", rec.Seq, "kind", kind)
	return rec, nil
}

// GetReport loads one record by run ID.
func (s *Store) GetReport(ctx context.Context, id string) (Record, error) {
	rec, err := scanRecord(s.db.QueryRowContext(ctx, `
		SELECT id, seq, profile_id, kind, fingerprint, params, result
		FROM reports
		WHERE id = ?
	`, id))
	if err != nil {
		return Record{}, fmt.Errorf("get report %s: %w", id, err)
	}
	return rec, nil
}

// Filter narrows ListReports. Zero fields match everything.
type Filter struct {
	ProfileID string
	Kind      string
	Limit     int
}

// ListReports returns records ordered by seq ascending. Returns an empty
// slice, not nil, when nothing matches.
func (s *Store) ListReports(ctx context.Context, f Filter) ([]Record, error) {
	query := `
		SELECT id, seq, profile_id, kind, fingerprint, params, result
		FROM reports
		WHERE (? = '' OR profile_id = ?) AND (? = '' OR kind = ?)
		ORDER BY seq ASC, id COLLATE BINARY ASC`
	args := []any{f.ProfileID, f.ProfileID, f.Kind, f.Kind}
	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	out := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("list reports: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list reports: iterate: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (Record, error) {
	var rec Record
	var params, result string
	err := row.Scan(&rec.ID, &rec.Seq, &rec.ProfileID, &rec.Kind, &rec.Fingerprint, &params, &result)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("scan report: %w", err)
	}
	rec.Params = json.RawMessage(params)
	rec.Result = json.RawMessage(result)
	return rec, nil
}
