// Package transcript persists chat messages to disk so conversations
// survive server restarts. Messages live in BadgerDB under time-ordered
// keys, one stream per session.
package transcript

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/marbleseoul/server/session"
)

const keyPrefix = "msg:"

// Store is a badger-backed transcript log.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) the transcript database under dir.
func Open(dir string) (*Store, error) {
	db, err := badger.Open(badger.DefaultOptions(dir).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("failed to open transcript db: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// messageKey orders messages chronologically within a session. The
// 19-digit zero-padded nanosecond timestamp keeps lexicographic order
// equal to time order; the message ID breaks same-nanosecond ties.
func messageKey(sessionID string, msg session.Message) []byte {
	return []byte(fmt.Sprintf("%s%s:%019d:%s",
		keyPrefix, sessionID, msg.CreatedAt.UnixNano(), msg.ID))
}

// Append persists one message.
func (s *Store) Append(sessionID string, msg session.Message) error {
	value, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(messageKey(sessionID, msg), value)
	})
}

// Messages returns a session's transcript, oldest first. limit <= 0
// means no limit.
func (s *Store) Messages(sessionID string, limit int) ([]session.Message, error) {
	var messages []session.Message
	prefix := []byte(keyPrefix + sessionID + ":")

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if limit > 0 && len(messages) == limit {
				break
			}
			err := it.Item().Value(func(value []byte) error {
				var msg session.Message
				if err := json.Unmarshal(value, &msg); err != nil {
					return fmt.Errorf("failed to decode message %s: %w", it.Item().Key(), err)
				}
				messages = append(messages, msg)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// SessionIDs lists every session that has persisted messages.
func (s *Store) SessionIDs() ([]string, error) {
	seen := make(map[string]bool)
	var ids []string
	prefix := []byte(keyPrefix)

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := string(it.Item().Key())
			rest := strings.TrimPrefix(key, keyPrefix)
			id, _, ok := strings.Cut(rest, ":")
			if !ok || seen[id] {
				continue
			}
			seen[id] = true
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// DeleteSession removes a session's entire transcript.
func (s *Store) DeleteSession(sessionID string) error {
	prefix := []byte(keyPrefix + sessionID + ":")

	var keys [][]byte
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		return nil
	})
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		for _, key := range keys {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
}
