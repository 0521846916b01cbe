package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jonathan/hirehub/internal/types"
)

// -----------------------------------------------------------------------------
// Catalog Job Methods
// -----------------------------------------------------------------------------

const jobColumns = `id, title, company, company_logo, location, experience_level, job_type,
	category, salary_min, salary_max, salary_currency, description, responsibilities,
	qualifications, benefits, company_description, company_website, company_linkedin, posted_date`

// ListJobs returns every catalog job in catalog order
func (db *DB) ListJobs(ctx context.Context) ([]types.Job, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+jobColumns+` FROM catalog_jobs ORDER BY position, id`)
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

// GetJob retrieves a job by its ID, returning nil when it does not exist
func (db *DB) GetJob(ctx context.Context, id string) (*types.Job, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM catalog_jobs WHERE id = $1`, id)

	job, err := scanJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return job, nil
}

// ListLocations returns the distinct job locations
func (db *DB) ListLocations(ctx context.Context) ([]string, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT location FROM catalog_jobs GROUP BY location ORDER BY MIN(position)`)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	defer rows.Close()

	locations := make([]string, 0)
	for rows.Next() {
		var location string
		if err := rows.Scan(&location); err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		locations = append(locations, location)
	}
	return locations, rows.Err()
}

// ImportJobs replaces the catalog contents with jobs in a single transaction
func (db *DB) ImportJobs(ctx context.Context, jobs []types.Job) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin import: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM catalog_jobs`); err != nil {
		return fmt.Errorf("failed to clear catalog: %w", err)
	}

	batch := &pgx.Batch{}
	for i, job := range jobs {
		batch.Queue(
			`INSERT INTO catalog_jobs (id, position, title, company, company_logo, location,
			                           experience_level, job_type, category, salary_min, salary_max,
			                           salary_currency, description, responsibilities, qualifications,
			                           benefits, company_description, company_website,
			                           company_linkedin, posted_date)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`,
			job.ID, i, job.Title, job.Company, job.CompanyLogo, job.Location,
			string(job.ExperienceLevel), string(job.JobType), string(job.Category),
			job.Salary.Min, job.Salary.Max, job.Salary.Currency, job.Description,
			nonNil(job.Responsibilities), nonNil(job.Qualifications), job.Benefits,
			job.CompanyDescription, job.CompanyWebsite, job.CompanyLinkedIn, job.PostedDate,
		)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert jobs: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}
	return nil
}

func scanJob(row pgx.Row) (*types.Job, error) {
	var job types.Job
	var experience, jobType, category string

	err := row.Scan(&job.ID, &job.Title, &job.Company, &job.CompanyLogo, &job.Location,
		&experience, &jobType, &category, &job.Salary.Min, &job.Salary.Max, &job.Salary.Currency,
		&job.Description, &job.Responsibilities, &job.Qualifications, &job.Benefits,
		&job.CompanyDescription, &job.CompanyWebsite, &job.CompanyLinkedIn, &job.PostedDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan job: %w", err)
	}

	job.ExperienceLevel = types.ExperienceLevel(experience)
	job.JobType = types.JobType(jobType)
	job.Category = types.Category(category)
	return &job, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
