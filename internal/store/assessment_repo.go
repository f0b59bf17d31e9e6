package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sdutta/afsmeter/internal/assessment"
)

// AssessmentRecord is one submitted assessment.
type AssessmentRecord struct {
	ID               string             `json:"id"`
	Organization     string             `json:"organization"`
	Team             string             `json:"team"`
	AssessorName     string             `json:"assessorName"`
	AssessorEmail    string             `json:"assessorEmail"`
	FrameworkName    string             `json:"frameworkName"`
	FrameworkVersion string             `json:"frameworkVersion"`
	OverallScore     float64            `json:"overallScore"`
	MaturityLevel    string             `json:"maturityLevel"`
	Payload          assessment.Payload `json:"payload"`
	CreatedAt        time.Time          `json:"createdAt"`
}

// AssessmentRepo manages submitted assessment records.
type AssessmentRepo interface {
	// Save stores a finished assessment.
	Save(ctx context.Context, rec *AssessmentRecord) error

	// Latest returns the most recent record, or nil if none exist.
	Latest(ctx context.Context) (*AssessmentRecord, error)

	// List returns records newest-first, up to limit (0 = all).
	List(ctx context.Context, limit int) ([]AssessmentRecord, error)

	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)
}

type assessmentRepo struct {
	db *sql.DB
}

func (r *assessmentRepo) Save(ctx context.Context, rec *AssessmentRecord) error {
	payload, err := json.Marshal(rec.Payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO assessments
			(id, organization, team, assessor_name, assessor_email,
			 framework_name, framework_version, overall_score, maturity_level,
			 payload, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Organization, rec.Team, rec.AssessorName, rec.AssessorEmail,
		rec.FrameworkName, rec.FrameworkVersion, rec.OverallScore, rec.MaturityLevel,
		string(payload), rec.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert assessment: %w", err)
	}
	return nil
}

func (r *assessmentRepo) Latest(ctx context.Context) (*AssessmentRecord, error) {
	row := r.db.QueryRowContext(ctx,
		selectColumns+` ORDER BY created_at DESC, id LIMIT 1`)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest assessment: %w", err)
	}
	return rec, nil
}

func (r *assessmentRepo) List(ctx context.Context, limit int) ([]AssessmentRecord, error) {
	q := selectColumns + ` ORDER BY created_at DESC, id`
	var args []any
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query assessments: %w", err)
	}
	defer rows.Close()

	var out []AssessmentRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan assessment: %w", err)
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

func (r *assessmentRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM assessments`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count assessments: %w", err)
	}
	return n, nil
}

const selectColumns = `SELECT id, organization, team, assessor_name, assessor_email,
	framework_name, framework_version, overall_score, maturity_level,
	payload, created_at
	FROM assessments`

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (*AssessmentRecord, error) {
	var (
		rec       AssessmentRecord
		payload   string
		createdAt string
	)
	err := s.Scan(&rec.ID, &rec.Organization, &rec.Team, &rec.AssessorName,
		&rec.AssessorEmail, &rec.FrameworkName, &rec.FrameworkVersion,
		&rec.OverallScore, &rec.MaturityLevel, &payload, &createdAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(payload), &rec.Payload); err != nil {
		return nil, fmt.Errorf("unmarshal payload: %w", err)
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		rec.CreatedAt = t
	}
	return &rec, nil
}
