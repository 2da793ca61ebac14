package services

import (
	"context"
	"sync"

	"health-tracker/models"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// memStore keeps documents the way MongoDB hands them back: untyped maps.
type memStore struct {
	mu   sync.Mutex
	docs []map[string]any
	err  error
}

func toDoc(entry models.Entry) map[string]any {
	data, err := json.Marshal(entry)
	if err != nil {
		panic(err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		panic(err)
	}
	return doc
}

func (s *memStore) add(docs ...map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = append(s.docs, docs...)
}

func (s *memStore) Insert(_ context.Context, entry models.Entry) error {
	if s.err != nil {
		return s.err
	}
	s.add(toDoc(entry))
	return nil
}

func (s *memStore) InsertMany(_ context.Context, list []models.Entry) error {
	if s.err != nil {
		return s.err
	}
	for _, e := range list {
		s.add(toDoc(e))
	}
	return nil
}

func (s *memStore) List(_ context.Context, userID, date string) ([]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}

	out := []any{}
	for _, doc := range s.docs {
		if doc["userId"] != userID {
			continue
		}
		if date != "" && doc["date"] != date {
			continue
		}
		out = append(out, doc)
	}
	return out, nil
}

func (s *memStore) Replace(_ context.Context, entry models.Entry) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return false, s.err
	}

	for i, doc := range s.docs {
		if doc["id"] == entry.EntryID() && doc["userId"] == entry.Owner() && doc["entryType"] == string(entry.Type()) {
			s.docs[i] = toDoc(entry)
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) Delete(_ context.Context, userID, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return false, s.err
	}

	for i, doc := range s.docs {
		if doc["id"] == id && doc["userId"] == userID {
			s.docs = append(s.docs[:i], s.docs[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

var errStoreDown = errors.New("store down")
