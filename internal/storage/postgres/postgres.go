package postgres

import (
	"database/sql"
	"errors"
	"eventSignup/internal/config"
	"eventSignup/internal/models"
	"eventSignup/internal/storage"
	"fmt"

	"github.com/lib/pq"
)

type Storage struct {
	DB *sql.DB
}

func InitDB(dbCfg *config.Database) (*Storage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.User,
		dbCfg.Password,
		dbCfg.DBName,
		dbCfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	s := &Storage{DB: db}

	if err = s.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}

	return s, nil
}

func (s *Storage) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS events (
		id BIGSERIAL PRIMARY KEY,
		host_id BIGINT NOT NULL REFERENCES users(id),
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		location TEXT NOT NULL,
		starts_at TEXT NOT NULL,
		capacity INT NOT NULL CHECK (capacity BETWEEN 1 AND 5000),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS registrations (
		id BIGSERIAL PRIMARY KEY,
		event_id BIGINT NOT NULL REFERENCES events(id),
		user_id BIGINT NOT NULL REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (event_id, user_id)
	);`

	_, err := s.DB.Exec(schema)
	return err
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

func (s *Storage) CreateUser(name, email, passwordHash string) (int64, error) {
	query := `
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id`

	var id int64
	err := s.DB.QueryRow(query, name, email, passwordHash).Scan(&id)
	if err != nil {
		if isUniqueViolation(err, "users_email_key") {
			return 0, storage.ErrEmailTaken
		}
		return 0, fmt.Errorf("failed to create user: %w", err)
	}

	return id, nil
}

func (s *Storage) UserByEmail(email string) (*models.User, error) {
	query := `
		SELECT id, name, email, password_hash, created_at
		FROM users
		WHERE email = $1`

	var user models.User
	err := s.DB.QueryRow(query, email).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return &user, nil
}

func (s *Storage) UserByID(id int64) (*models.User, error) {
	query := `
		SELECT id, name, email, password_hash, created_at
		FROM users
		WHERE id = $1`

	var user models.User
	err := s.DB.QueryRow(query, id).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return &user, nil
}

func (s *Storage) CreateEvent(hostID int64, title, description, location, startsAt string, capacity int) (int64, error) {
	query := `
		INSERT INTO events (host_id, title, description, location, starts_at, capacity)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	var id int64
	err := s.DB.QueryRow(query, hostID, title, description, location, startsAt, capacity).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create event: %w", err)
	}

	return id, nil
}

func (s *Storage) GetEvent(id int64) (*models.EventDetails, error) {
	query := `
		SELECT e.id, e.host_id, e.title, e.description, e.location, e.starts_at,
		       e.capacity, e.created_at, u.name,
		       (SELECT COUNT(*) FROM registrations r WHERE r.event_id = e.id)
		FROM events e
		JOIN users u ON u.id = e.host_id
		WHERE e.id = $1`

	var event models.EventDetails
	err := s.DB.QueryRow(query, id).Scan(
		&event.ID,
		&event.HostID,
		&event.Title,
		&event.Description,
		&event.Location,
		&event.StartsAt,
		&event.Capacity,
		&event.CreatedAt,
		&event.HostName,
		&event.Registered,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return &event, nil
}

func (s *Storage) GetAllEvents() ([]models.EventDetails, error) {
	query := `
		SELECT e.id, e.host_id, e.title, e.description, e.location, e.starts_at,
		       e.capacity, e.created_at, u.name,
		       (SELECT COUNT(*) FROM registrations r WHERE r.event_id = e.id)
		FROM events e
		JOIN users u ON u.id = e.host_id
		ORDER BY e.starts_at ASC`

	rows, err := s.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	defer rows.Close()

	var events []models.EventDetails
	for rows.Next() {
		var event models.EventDetails
		err = rows.Scan(
			&event.ID,
			&event.HostID,
			&event.Title,
			&event.Description,
			&event.Location,
			&event.StartsAt,
			&event.Capacity,
			&event.CreatedAt,
			&event.HostName,
			&event.Registered,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	return events, nil
}

func (s *Storage) IsRegistered(eventID, userID int64) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM registrations
			WHERE event_id = $1 AND user_id = $2
		)`

	var registered bool
	err := s.DB.QueryRow(query, eventID, userID).Scan(&registered)
	if err != nil {
		return false, fmt.Errorf("failed to check registration: %w", err)
	}

	return registered, nil
}

// RegisterForEvent admits the user if the event still has room. The capacity
// check is advisory (read-then-decide); the unique constraint on
// (event_id, user_id) is the strict gate against duplicates.
func (s *Storage) RegisterForEvent(eventID, userID int64) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var capacity, registered int
	countQuery := `
		SELECT e.capacity, COUNT(r.id)
		FROM events e
		LEFT JOIN registrations r ON e.id = r.event_id
		WHERE e.id = $1
		GROUP BY e.id, e.capacity`

	err = tx.QueryRow(countQuery, eventID).Scan(&capacity, &registered)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.ErrEventNotFound
		}
		return fmt.Errorf("failed to get event capacity info: %w", err)
	}

	if registered >= capacity {
		return storage.ErrCapacityExceeded
	}

	insertQuery := `
		INSERT INTO registrations (event_id, user_id)
		VALUES ($1, $2)`

	_, err = tx.Exec(insertQuery, eventID, userID)
	if err != nil {
		if isUniqueViolation(err, "registrations_event_id_user_id_key") {
			return storage.ErrAlreadyRegistered
		}
		return fmt.Errorf("failed to create registration: %w", err)
	}

	return tx.Commit()
}

func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == "23505" && pqErr.Constraint == constraint
}
