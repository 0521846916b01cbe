package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/jonathan/hirehub/internal/types"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS jobs (
	id                  TEXT PRIMARY KEY,
	position            INTEGER NOT NULL,
	title               TEXT NOT NULL,
	company             TEXT NOT NULL,
	company_logo        TEXT NOT NULL DEFAULT '',
	location            TEXT NOT NULL,
	experience_level    TEXT NOT NULL,
	job_type            TEXT NOT NULL,
	category            TEXT NOT NULL,
	salary_min          INTEGER NOT NULL,
	salary_max          INTEGER NOT NULL,
	salary_currency     TEXT NOT NULL,
	description         TEXT NOT NULL,
	responsibilities    TEXT NOT NULL,
	qualifications      TEXT NOT NULL,
	benefits            TEXT,
	company_description TEXT NOT NULL,
	company_website     TEXT NOT NULL DEFAULT '',
	company_linkedin    TEXT NOT NULL DEFAULT '',
	posted_date         TEXT NOT NULL
);`

const sqliteColumns = `id, title, company, company_logo, location, experience_level, job_type,
	category, salary_min, salary_max, salary_currency, description, responsibilities,
	qualifications, benefits, company_description, company_website, company_linkedin, posted_date`

// SQLite serves a catalog stored in a local SQLite database.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens the SQLite catalog at path and ensures the jobs table exists.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite catalog: %w", err)
	}
	// A single connection keeps ":memory:" databases coherent.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create jobs table: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Import replaces the catalog contents with jobs, preserving their order.
func (s *SQLite) Import(ctx context.Context, jobs []types.Job) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin import: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM jobs`); err != nil {
		return fmt.Errorf("failed to clear jobs: %w", err)
	}

	for i, job := range jobs {
		responsibilities, qualifications, benefits, err := encodeLists(job)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO jobs (id, position, title, company, company_logo, location, experience_level,
			                  job_type, category, salary_min, salary_max, salary_currency, description,
			                  responsibilities, qualifications, benefits, company_description,
			                  company_website, company_linkedin, posted_date)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			job.ID, i, job.Title, job.Company, job.CompanyLogo, job.Location, string(job.ExperienceLevel),
			string(job.JobType), string(job.Category), job.Salary.Min, job.Salary.Max, job.Salary.Currency,
			job.Description, responsibilities, qualifications, benefits, job.CompanyDescription,
			job.CompanyWebsite, job.CompanyLinkedIn, job.PostedDate,
		)
		if err != nil {
			return fmt.Errorf("failed to insert job %s: %w", job.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}
	committed = true
	return nil
}

// ListJobs returns the entire collection in import order.
func (s *SQLite) ListJobs(ctx context.Context) ([]types.Job, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+sqliteColumns+` FROM jobs ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	jobs := make([]types.Job, 0)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate jobs: %w", err)
	}
	return jobs, nil
}

// GetJob returns the job with the given id, or nil if there is none.
func (s *SQLite) GetJob(ctx context.Context, id string) (*types.Job, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+sqliteColumns+` FROM jobs WHERE id = ?`, id)
	job, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return job, nil
}

// ListLocations returns the distinct locations in the catalog.
func (s *SQLite) ListLocations(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT location FROM jobs GROUP BY location ORDER BY MIN(position)`)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	defer rows.Close()

	locations := make([]string, 0)
	for rows.Next() {
		var loc string
		if err := rows.Scan(&loc); err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		locations = append(locations, loc)
	}
	return locations, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*types.Job, error) {
	var job types.Job
	var experience, jobType, category string
	var responsibilities, qualifications string
	var benefits sql.NullString

	err := row.Scan(&job.ID, &job.Title, &job.Company, &job.CompanyLogo, &job.Location,
		&experience, &jobType, &category, &job.Salary.Min, &job.Salary.Max, &job.Salary.Currency,
		&job.Description, &responsibilities, &qualifications, &benefits, &job.CompanyDescription,
		&job.CompanyWebsite, &job.CompanyLinkedIn, &job.PostedDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan job: %w", err)
	}

	job.ExperienceLevel = types.ExperienceLevel(experience)
	job.JobType = types.JobType(jobType)
	job.Category = types.Category(category)

	if err := json.Unmarshal([]byte(responsibilities), &job.Responsibilities); err != nil {
		return nil, fmt.Errorf("failed to decode responsibilities for job %s: %w", job.ID, err)
	}
	if err := json.Unmarshal([]byte(qualifications), &job.Qualifications); err != nil {
		return nil, fmt.Errorf("failed to decode qualifications for job %s: %w", job.ID, err)
	}
	if benefits.Valid {
		if err := json.Unmarshal([]byte(benefits.String), &job.Benefits); err != nil {
			return nil, fmt.Errorf("failed to decode benefits for job %s: %w", job.ID, err)
		}
	}
	return &job, nil
}

// encodeLists serializes the ordered string lists of a job as JSON text.
func encodeLists(job types.Job) (responsibilities, qualifications string, benefits sql.NullString, err error) {
	r, err := json.Marshal(nonNil(job.Responsibilities))
	if err != nil {
		return "", "", benefits, fmt.Errorf("failed to encode responsibilities: %w", err)
	}
	q, err := json.Marshal(nonNil(job.Qualifications))
	if err != nil {
		return "", "", benefits, fmt.Errorf("failed to encode qualifications: %w", err)
	}
	if job.Benefits != nil {
		b, err := json.Marshal(job.Benefits)
		if err != nil {
			return "", "", benefits, fmt.Errorf("failed to encode benefits: %w", err)
		}
		benefits = sql.NullString{String: string(b), Valid: true}
	}
	return string(r), string(q), benefits, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
