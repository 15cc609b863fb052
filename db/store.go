package db

import (
	"fmt"
)

// Store is the message log. AddMessage assigns the id and timestamp and
// returns the stored entry; GetMessages returns all entries ordered by
// timestamp descending and never mutates the log.
type Store interface {
	AddMessage(msg Message) (Message, error)
	GetMessages() ([]Message, error)
}

// NewStoreFromEnv picks the log backend from STORE_DRIVER. The default
// "memory" backend keeps messages in-process for the lifetime of the
// server; "sqlite" and "pgx" route through database/sql using the
// connection settings from GetConfigFromEnv.
func NewStoreFromEnv() (Store, error) {
	driver := getEnvWithDefault("STORE_DRIVER", "memory")

	if driver == "memory" {
		return NewMemStore(), nil
	}

	config := GetConfigFromEnv()
	config.Driver = driver

	if err := ConnectWithConfig(config); err != nil {
		return nil, fmt.Errorf("failed to connect message store: %w", err)
	}

	if err := InitSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize message store schema: %w", err)
	}

	return &SQLStore{}, nil
}
