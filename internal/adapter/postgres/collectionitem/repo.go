// Package collectionitem implements the CollectionItem repository using PostgreSQL.
package collectionitem

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/sahildmk/intention-app/internal/adapter/postgres"
	"github.com/sahildmk/intention-app/internal/domain"
)

const (
	table  = "collection_items"
	entity = "collection_item"
)

var columns = []string{
	"id", "user_id", "content", "start_date_time", "end_date_time", "created_date_time",
}

// Ties on start time resolve by creation time, then id, so the first element
// of a list is deterministic.
var ordering = []string{"start_date_time ASC", "created_date_time ASC", "id ASC"}

// Repo provides collection item persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new collection item repository. db is usually a *pgxpool.Pool.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Queries
// ---------------------------------------------------------------------------

// ListByOwner returns every item owned by ownerID ordered by start time.
func (r *Repo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.CollectionItem, error) {
	q := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"user_id": ownerID}).
		OrderBy(ordering...)

	return r.list(ctx, q)
}

// ListCurrentAndFutureByOwner returns items owned by ownerID whose end is at or
// after now, ordered by start time.
func (r *Repo) ListCurrentAndFutureByOwner(ctx context.Context, ownerID uuid.UUID, now time.Time) ([]domain.CollectionItem, error) {
	q := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"user_id": ownerID}).
		Where(squirrel.GtOrEq{"end_date_time": now}).
		OrderBy(ordering...)

	return r.list(ctx, q)
}

// ---------------------------------------------------------------------------
// Commands
// ---------------------------------------------------------------------------

// Update overwrites content and, when provided, the start and end of the item.
// Rows owned by a different user are treated as missing.
func (r *Repo) Update(ctx context.Context, ownerID, itemID uuid.UUID, content string, start, end *time.Time) (*domain.CollectionItem, error) {
	q := postgres.Builder().
		Update(table).
		Set("content", content)
	if start != nil {
		q = q.Set("start_date_time", *start)
	}
	if end != nil {
		q = q.Set("end_date_time", *end)
	}
	q = q.Where(squirrel.Eq{"id": itemID}).
		Where(squirrel.Eq{"user_id": ownerID}).
		Suffix("RETURNING " + strings.Join(columns, ", "))

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update: %w", err)
	}

	return r.getOne(ctx, itemID, sql, args)
}

// Create inserts a new item. The id is generated when unset and the creation
// time is taken from the database clock.
func (r *Repo) Create(ctx context.Context, item *domain.CollectionItem) (*domain.CollectionItem, error) {
	id := item.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	q := postgres.Builder().
		Insert(table).
		Columns(columns...).
		Values(id, item.UserID, item.Content, item.StartDateTime, item.EndDateTime, squirrel.Expr("now()")).
		Suffix("RETURNING " + strings.Join(columns, ", "))

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert: %w", err)
	}

	return r.getOne(ctx, id, sql, args)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

type itemRow struct {
	ID              uuid.UUID `db:"id"`
	UserID          uuid.UUID `db:"user_id"`
	Content         string    `db:"content"`
	StartDateTime   time.Time `db:"start_date_time"`
	EndDateTime     time.Time `db:"end_date_time"`
	CreatedDateTime time.Time `db:"created_date_time"`
}

func (row itemRow) toDomain() domain.CollectionItem {
	return domain.CollectionItem{
		ID:              row.ID,
		UserID:          row.UserID,
		Content:         row.Content,
		StartDateTime:   row.StartDateTime,
		EndDateTime:     row.EndDateTime,
		CreatedDateTime: row.CreatedDateTime,
	}
}

func (r *Repo) list(ctx context.Context, q squirrel.SelectBuilder) ([]domain.CollectionItem, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var rows []itemRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, entity, uuid.Nil)
	}

	items := make([]domain.CollectionItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toDomain())
	}
	return items, nil
}

func (r *Repo) getOne(ctx context.Context, id uuid.UUID, sql string, args []any) (*domain.CollectionItem, error) {
	var row itemRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			err = pgx.ErrNoRows
		}
		return nil, postgres.MapError(err, entity, id)
	}

	item := row.toDomain()
	return &item, nil
}
