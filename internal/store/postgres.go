package store

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"baseware/internal/database"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type rowScanner interface {
	Scan(dest ...any) error
}

type postgresStores struct {
	q querier
}

// NewPostgresStores returns stores that run their statements on q.
func NewPostgresStores(q querier) Stores {
	return &postgresStores{q: q}
}

func (s *postgresStores) Organizations() OrganizationStore { return &pgOrganizationStore{q: s.q} }
func (s *postgresStores) Users() UserStore                 { return &pgUserStore{q: s.q} }
func (s *postgresStores) Memberships() MembershipStore     { return &pgMembershipStore{q: s.q} }
func (s *postgresStores) Categories() CategoryStore        { return &pgCategoryStore{q: s.q} }
func (s *postgresStores) Tasks() TaskStore                 { return &pgTaskStore{q: s.q} }
func (s *postgresStores) TaskComments() TaskCommentStore   { return &pgTaskCommentStore{q: s.q} }
func (s *postgresStores) TaskAttachments() TaskAttachmentStore {
	return &pgTaskAttachmentStore{q: s.q}
}

type postgresTxRunner struct {
	db *sql.DB
}

func NewPostgresTxRunner(db *sql.DB) TxRunner {
	return &postgresTxRunner{db: db}
}

func (r *postgresTxRunner) WithTx(ctx context.Context, opts *sql.TxOptions, fn func(Stores) error) error {
	return database.WithTx(ctx, r.db, opts, func(tx *sql.Tx) error {
		return fn(NewPostgresStores(tx))
	})
}

const uniqueViolation = "23505"

// translate maps driver errors onto the store sentinels.
func translate(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return ErrDuplicate
	}
	return err
}

func expectOne(res sql.Result, err error) error {
	if err != nil {
		return translate(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func uuidArray(ids []uuid.UUID) any {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return pq.Array(out)
}

func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

func uuidPtr(n uuid.NullUUID) *uuid.UUID {
	if !n.Valid {
		return nil
	}
	id := n.UUID
	return &id
}

func count(ctx context.Context, q querier, query string, args ...any) (int, error) {
	var total int
	if err := q.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func itoa(n int) string { return strconv.Itoa(n) }
