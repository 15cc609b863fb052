package db

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemStore is the default message log: a process-lifetime map guarded by
// a mutex. Nothing is evicted, so the log grows with every send attempt
// until restart.
type MemStore struct {
	mu       sync.RWMutex
	messages []Message
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) AddMessage(msg Message) (Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg.ID = uuid.New().String()
	msg.Timestamp = time.Now()
	s.messages = append(s.messages, msg)

	return msg, nil
}

func (s *MemStore) GetMessages() ([]Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	messages := make([]Message, len(s.messages))
	for i, msg := range s.messages {
		// reversed so that equal timestamps keep append order, newest first
		messages[len(s.messages)-1-i] = msg
	}

	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].Timestamp.After(messages[j].Timestamp)
	})

	return messages, nil
}
