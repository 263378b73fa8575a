// Package storage реализует хранилище пользователей на основе PostgreSQL.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/magabrotheeeer/flexo-toolkit/internal/models"
	"github.com/magabrotheeeer/flexo-toolkit/internal/subscription"
)

var (
	// ErrUserNotFound пользователь с таким идентификатором не зарегистрирован.
	ErrUserNotFound = errors.New("user not found")
	// ErrUnknownStatus статус подписки не входит в trial, active, expired.
	ErrUnknownStatus = errors.New("unknown subscription status")
)

// Storage инкапсулирует соединение с базой данных PostgreSQL.
type Storage struct {
	DB *sql.DB
}

// New открывает подключение к PostgreSQL и проверяет его.
func New(ctx context.Context, storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{DB: db}, nil
}

// Ping проверяет доступность базы.
func (s *Storage) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

// Close закрывает пул соединений.
func (s *Storage) Close() error {
	return s.DB.Close()
}

// CreateUser вставляет пользователя, если его ещё нет.
// Возвращает true, если строка была создана.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (bool, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO users (id, email, trial_started_at, trial_expires_at,
			      subscription_status, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $6)
			  ON CONFLICT (id) DO NOTHING`
	result, err := s.DB.ExecContext(ctx, query,
		user.ID, user.Email, user.TrialStartedAt, user.TrialExpiresAt,
		string(user.SubscriptionStatus), user.CreatedAt)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected == 1, nil
}

// GetUser возвращает пользователя по идентификатору.
func (s *Storage) GetUser(ctx context.Context, id string) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, email, trial_started_at, trial_expires_at, subscription_status,
				lemonsqueezy_subscription_id, created_at, updated_at
			  FROM users WHERE id = $1`

	var (
		user           models.User
		status         string
		trialExpiresAt sql.NullTime
		subscriptionID sql.NullString
	)
	err := s.DB.QueryRowContext(ctx, query, id).Scan(&user.ID, &user.Email, &user.TrialStartedAt,
		&trialExpiresAt, &status, &subscriptionID, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user.SubscriptionStatus = subscription.Status(status)
	if !user.SubscriptionStatus.Valid() {
		return nil, fmt.Errorf("%s: %q: %w", op, status, ErrUnknownStatus)
	}
	if trialExpiresAt.Valid {
		t := trialExpiresAt.Time
		user.TrialExpiresAt = &t
	}
	if subscriptionID.Valid {
		v := subscriptionID.String
		user.LemonSqueezySubscriptionID = &v
	}
	return &user, nil
}

// UpdateSubscription записывает статус и идентификатор подписки.
// Пустой subscriptionID не затирает уже сохранённый.
func (s *Storage) UpdateSubscription(ctx context.Context, userID string, status subscription.Status,
	subscriptionID string, updatedAt time.Time) error {
	const op = "storage.UpdateSubscription"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}
	if !status.Valid() {
		return fmt.Errorf("%s: %q: %w", op, status, ErrUnknownStatus)
	}

	query := `UPDATE users
			  SET subscription_status = $1,
			      lemonsqueezy_subscription_id = COALESCE(NULLIF($2, ''), lemonsqueezy_subscription_id),
			      updated_at = $3
			  WHERE id = $4`
	result, err := s.DB.ExecContext(ctx, query, string(status), subscriptionID, updatedAt, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	return nil
}
