package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/draftpress/editorial/pkg/editorial"
)

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Repository implements editorial.Repository using PostgreSQL
type Repository struct {
	db DBTX
}

// New creates a new PostgreSQL repository
func New(db DBTX) editorial.Repository {
	return &Repository{db: db}
}

// NewWithPool creates a new PostgreSQL repository with connection pool
func NewWithPool(pool *pgxpool.Pool) editorial.Repository {
	return &Repository{db: pool}
}

const entityColumns = `
	id, slug, type, version, status, title, blocks, seo,
	category, tags, excerpt, sku, read_time,
	created_at, updated_at, published_at, created_by, updated_by`

func scanEntity(row pgx.Row) (*editorial.ContentEntity, error) {
	var e editorial.ContentEntity
	err := row.Scan(
		&e.ID, &e.Slug, &e.Type, &e.Version, &e.Status, &e.Title, &e.Blocks, &e.SEO,
		&e.Category, &e.Tags, &e.Excerpt, &e.SKU, &e.ReadTime,
		&e.CreatedAt, &e.UpdatedAt, &e.PublishedAt, &e.CreatedBy, &e.UpdatedBy)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// handleError maps driver errors onto the domain taxonomy.
func (r *Repository) handleError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%w: %s", editorial.ErrConflict, pgErr.ConstraintName)
		case "23514": // check_violation
			return fmt.Errorf("constraint %s violated in %s", pgErr.ConstraintName, operation)
		case "42P01": // undefined_table
			return fmt.Errorf("table does not exist - database migration required")
		}
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return editorial.ErrNotFound
	}
	return fmt.Errorf("database error in %s: %w", operation, err)
}

func (r *Repository) GetLatest(ctx context.Context, slug string) (*editorial.ContentEntity, error) {
	query := `SELECT` + entityColumns + `
		FROM content_versions
		WHERE slug = $1
		ORDER BY version DESC
		LIMIT 1`

	entity, err := scanEntity(r.db.QueryRow(ctx, query, slug))
	if err != nil {
		return nil, r.handleError("get latest", err)
	}
	return entity, nil
}

func (r *Repository) GetVersion(ctx context.Context, slug string, version int) (*editorial.ContentEntity, error) {
	query := `SELECT` + entityColumns + `
		FROM content_versions
		WHERE slug = $1 AND version = $2`

	entity, err := scanEntity(r.db.QueryRow(ctx, query, slug, version))
	if err != nil {
		return nil, r.handleError("get version", err)
	}
	return entity, nil
}

func (r *Repository) ListVersions(ctx context.Context, slug string) ([]*editorial.ContentEntity, error) {
	query := `SELECT` + entityColumns + `
		FROM content_versions
		WHERE slug = $1
		ORDER BY version ASC`

	rows, err := r.db.Query(ctx, query, slug)
	if err != nil {
		return nil, r.handleError("list versions", err)
	}
	defer rows.Close()

	result := []*editorial.ContentEntity{}
	for rows.Next() {
		entity, err := scanEntity(rows)
		if err != nil {
			return nil, r.handleError("list versions", err)
		}
		result = append(result, entity)
	}
	return result, rows.Err()
}

func (r *Repository) ListLatest(ctx context.Context, filters editorial.ListFilters) ([]*editorial.ContentEntity, error) {
	query := `SELECT` + entityColumns + ` FROM (
		SELECT DISTINCT ON (slug)` + entityColumns + `
		FROM content_versions
		ORDER BY slug, version DESC
	) latest WHERE 1=1`

	args := []interface{}{}
	if filters.Type != nil {
		args = append(args, *filters.Type)
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if filters.Status != nil {
		args = append(args, *filters.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY updated_at DESC"
	if filters.Limit != nil && *filters.Limit > 0 {
		args = append(args, *filters.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filters.Offset != nil && *filters.Offset > 0 {
		args = append(args, *filters.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, r.handleError("list latest", err)
	}
	defer rows.Close()

	var result []*editorial.ContentEntity
	for rows.Next() {
		entity, err := scanEntity(rows)
		if err != nil {
			return nil, r.handleError("list latest", err)
		}
		result = append(result, entity)
	}
	return result, rows.Err()
}

func (r *Repository) Insert(ctx context.Context, entity *editorial.ContentEntity) error {
	query := `
		INSERT INTO content_versions (
			id, slug, type, version, status, title, blocks, seo,
			category, tags, excerpt, sku, read_time,
			created_at, updated_at, published_at, created_by, updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`

	_, err := r.db.Exec(ctx, query,
		entity.ID, entity.Slug, entity.Type, entity.Version, entity.Status,
		entity.Title, entity.Blocks, entity.SEO,
		entity.Category, entity.Tags, entity.Excerpt, entity.SKU, entity.ReadTime,
		entity.CreatedAt, entity.UpdatedAt, entity.PublishedAt, entity.CreatedBy, entity.UpdatedBy)

	if err != nil {
		return r.handleError("insert", err)
	}
	return nil
}

func (r *Repository) UpdateInPlace(ctx context.Context, slug string, version int, entity *editorial.ContentEntity) error {
	query := `
		UPDATE content_versions SET
			slug = $3, status = $4, title = $5, blocks = $6, seo = $7,
			category = $8, tags = $9, excerpt = $10, sku = $11, read_time = $12,
			updated_at = $13, published_at = $14, updated_by = $15
		WHERE slug = $1 AND version = $2`

	tag, err := r.db.Exec(ctx, query,
		slug, version,
		entity.Slug, entity.Status, entity.Title, entity.Blocks, entity.SEO,
		entity.Category, entity.Tags, entity.Excerpt, entity.SKU, entity.ReadTime,
		entity.UpdatedAt, entity.PublishedAt, entity.UpdatedBy)

	if err != nil {
		return r.handleError("update in place", err)
	}
	if tag.RowsAffected() == 0 {
		return editorial.ErrNotFound
	}

	// Re-keying drags the rest of the lineage along. Only ever relevant
	// for never-published single-version lineages, but kept general.
	if entity.Slug != slug {
		_, err := r.db.Exec(ctx,
			`UPDATE content_versions SET slug = $2 WHERE slug = $1`, slug, entity.Slug)
		if err != nil {
			return r.handleError("update in place", err)
		}
	}
	return nil
}

func (r *Repository) DeleteLineage(ctx context.Context, slug string) (int, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM content_versions WHERE slug = $1`, slug)
	if err != nil {
		return 0, r.handleError("delete lineage", err)
	}
	return int(tag.RowsAffected()), nil
}
