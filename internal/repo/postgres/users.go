package postgres

import (
	"context"
	"errors"

	"github.com/codingstreams/userhub/internal/domain/user"
	"github.com/codingstreams/userhub/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UsersRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewUsersRepo(pool *pgxpool.Pool, prom *observability.Prom) *UsersRepo {
	return &UsersRepo{
		pool: pool,
		prom: prom,
	}
}

func (r *UsersRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

const userColumns = `id, first_name, last_name, email, password_hash, created_at, updated_at`

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User

	err := row.Scan(
		&u.ID,
		&u.FirstName,
		&u.LastName,
		&u.Email,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	return u, err
}

func (r *UsersRepo) ExistsByEmail(ctx context.Context, email string) (exists bool, err error) {
	err = r.observe("users.exists_by_email", func() error {
		return r.pool.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`,
			email,
		).Scan(&exists)
	})

	return
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	var u user.User
	var err error

	dbErr := r.observe("users.get_by_email", func() error {
		u, err = scanUser(r.pool.QueryRow(ctx,
			`SELECT `+userColumns+` FROM users WHERE email = $1`,
			email,
		))
		return err
	})

	if dbErr != nil {
		if errors.Is(dbErr, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}

		return user.User{}, dbErr
	}

	return u, nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	var u user.User
	var err error

	dbErr := r.observe("users.get_by_id", func() error {
		u, err = scanUser(r.pool.QueryRow(ctx,
			`SELECT `+userColumns+` FROM users WHERE id = $1`,
			id,
		))
		return err
	})

	if dbErr != nil {
		if errors.Is(dbErr, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}

		return user.User{}, dbErr
	}

	return u, nil
}

func (r *UsersRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	err := r.observe("users.create", func() error {
		_, e := r.pool.Exec(ctx, `
		INSERT INTO users (id, first_name, last_name, email, password_hash, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`, u.ID, u.FirstName, u.LastName, u.Email, u.PasswordHash, u.CreatedAt, u.UpdatedAt)
		return e
	})

	if err != nil {
		return user.User{}, translateUniqueViolation(err)
	}

	return u, nil
}

func (r *UsersRepo) Update(ctx context.Context, u user.User) (user.User, error) {
	var tag pgconn.CommandTag

	err := r.observe("users.update", func() error {
		var e error
		tag, e = r.pool.Exec(ctx, `
		UPDATE users
		SET first_name = $2, last_name = $3, email = $4, password_hash = $5, updated_at = $6
		WHERE id = $1
	`, u.ID, u.FirstName, u.LastName, u.Email, u.PasswordHash, u.UpdatedAt)
		return e
	})

	if err != nil {
		return user.User{}, translateUniqueViolation(err)
	}

	if tag.RowsAffected() == 0 {
		return user.User{}, user.ErrNotFound
	}

	return u, nil
}

// the unique index on email is the last line of defence against concurrent
// signups/updates racing past the exists-check
func translateUniqueViolation(err error) error {
	var pgErr *pgconn.PgError

	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return user.ErrEmailTaken
	}

	return err
}
