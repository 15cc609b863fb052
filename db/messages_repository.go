package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SQLStore implements Store over the shared database/sql handle. Used
// when STORE_DRIVER selects sqlite or pgx instead of the in-memory log.
type SQLStore struct{}

func InitSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS messages (
			id TEXT PRIMARY KEY,
			to_number TEXT NOT NULL,
			body TEXT NOT NULL,
			status TEXT NOT NULL,
			sid TEXT,
			error TEXT,
			created_at TIMESTAMP NOT NULL
		)
	`

	if _, err := DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create messages table: %w", err)
	}

	return nil
}

func (s *SQLStore) AddMessage(msg Message) (Message, error) {
	msg.ID = uuid.New().String()
	msg.Timestamp = time.Now()

	query := `
		INSERT INTO messages (id, to_number, body, status, sid, error, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := DB.Exec(query,
		msg.ID, msg.To, msg.Body, msg.Status,
		nullableString(msg.Sid), nullableString(msg.Error), msg.Timestamp,
	)
	if err != nil {
		return Message{}, fmt.Errorf("failed to insert message: %w", err)
	}

	return msg, nil
}

func (s *SQLStore) GetMessages() ([]Message, error) {
	query := `
		SELECT id, to_number, body, status, sid, error, created_at
		FROM messages
		ORDER BY created_at DESC
	`

	rows, err := DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	messages := []Message{}
	for rows.Next() {
		var msg Message
		var sid, errText sql.NullString

		if err := rows.Scan(&msg.ID, &msg.To, &msg.Body, &msg.Status, &sid, &errText, &msg.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}

		msg.Sid = sid.String
		msg.Error = errText.String
		messages = append(messages, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read messages: %w", err)
	}

	return messages, nil
}

func nullableString(value string) interface{} {
	if value == "" {
		return nil
	}
	return value
}
