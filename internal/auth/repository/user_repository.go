package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sind14/Gastronomy-Service/internal/domain"
	"github.com/sind14/Gastronomy-Service/internal/errors"
	"github.com/sind14/Gastronomy-Service/internal/infrastructure/mysql"
)

type MySQLUserRepository struct {
	db *sql.DB
}

func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{db: db}
}

func (r *MySQLUserRepository) Insert(ctx context.Context, u domain.User) (*domain.User, error) {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO users (username, email, password_hash, is_staff)
		VALUES (?, ?, ?, ?)`,
		u.Username, u.Email, u.PasswordHash, u.IsStaff,
	)
	if mysql.IsDuplicateEntry(err) {
		return nil, errors.NewConflictError(fmt.Sprintf("user with username %q or email %q already exists", u.Username, u.Email))
	}
	if err != nil {
		return nil, fmt.Errorf("inserting user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting last insert id: %w", err)
	}

	u.ID = uint(id)
	return &u, nil
}

func (r *MySQLUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var u domain.User
	err := r.db.QueryRowContext(ctx, `
		SELECT id, username, email, password_hash, is_staff
		FROM users
		WHERE id = ?`, id).
		Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsStaff)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("user with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying user by id: %w", err)
	}

	return &u, nil
}

func (r *MySQLUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	err := r.db.QueryRowContext(ctx, `
		SELECT id, username, email, password_hash, is_staff
		FROM users
		WHERE username = ?`, username).
		Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsStaff)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("user %q not found", username))
	}
	if err != nil {
		return nil, fmt.Errorf("querying user by username: %w", err)
	}

	return &u, nil
}

func (r *MySQLUserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, username, email, password_hash, is_staff
		FROM users
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsStaff); err != nil {
			return nil, fmt.Errorf("scanning user row: %w", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating user rows: %w", err)
	}

	return users, nil
}

func (r *MySQLUserRepository) Update(ctx context.Context, u domain.User) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET username = ?, email = ?, password_hash = ?
		WHERE id = ?`,
		u.Username, u.Email, u.PasswordHash, u.ID,
	)
	if mysql.IsDuplicateEntry(err) {
		return errors.NewConflictError(fmt.Sprintf("user with username %q or email %q already exists", u.Username, u.Email))
	}
	if err != nil {
		return fmt.Errorf("updating user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		if _, findErr := r.FindByID(ctx, u.ID); findErr != nil {
			return findErr
		}
	}

	return nil
}

func (r *MySQLUserRepository) Delete(ctx context.Context, id uint) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("user with id %d not found", id))
	}

	return nil
}
