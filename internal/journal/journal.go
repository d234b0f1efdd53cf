// Package journal keeps a local history of played rounds in a bbolt file.
package journal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"

	"github.com/kwshi/stripcode-bot/pkg/models"
)

var bucketRounds = []byte("rounds")

// Record is one journalled round
type Record struct {
	ID         string              `json:"id"`
	StartedAt  time.Time           `json:"started_at"`
	Duration   time.Duration       `json:"duration"`
	DryRun     bool                `json:"dry_run,omitempty"`
	Stats      models.Stats        `json:"stats,omitempty"`
	Points     int                 `json:"points"`
	Candidates []models.Repository `json:"candidates,omitempty"`
	FileName   string              `json:"file_name,omitempty"`
	Token      string              `json:"token,omitempty"`
	Query      string              `json:"query,omitempty"`
	Scores     map[string]float64  `json:"scores,omitempty"`
	Chosen     string              `json:"chosen,omitempty"`
	Verdict    string              `json:"verdict,omitempty"`
	Stage      string              `json:"stage"`
	Failure    string              `json:"failure,omitempty"`
	Kind       string              `json:"kind,omitempty"`
}

// Decided reports whether the round produced a guess
func (r *Record) Decided() bool {
	return r.Chosen != ""
}

// ChosenName returns the full name of the chosen repository when known
func (r *Record) ChosenName() string {
	for _, c := range r.Candidates {
		if c.ID == r.Chosen {
			return c.FullName
		}
	}
	return r.Chosen
}

// Store is a bbolt backed round journal
type Store struct {
	db *bbolt.DB
}

// Open opens or creates the journal at path
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketRounds); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", bucketRounds, err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close releases the database file
func (s *Store) Close() error {
	return s.db.Close()
}

// key orders records by start time; the id keeps equal timestamps distinct
func key(startedAt time.Time, id string) []byte {
	return []byte(fmt.Sprintf("%020d/%s", startedAt.UnixNano(), id))
}

func sinceKey(since time.Time) []byte {
	if since.IsZero() {
		return nil
	}
	return []byte(fmt.Sprintf("%020d/", since.UnixNano()))
}

// Put stores a record, replacing any record with the same start time and id
func (s *Store) Put(rec *Record) error {
	if rec.ID == "" {
		return fmt.Errorf("record has no id")
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketRounds).Put(key(rec.StartedAt, rec.ID), data)
	})
}

// List returns records started at or after since, newest first.
// A zero since means all records; limit <= 0 means no limit.
func (s *Store) List(since time.Time, limit int) ([]Record, error) {
	var records []Record
	lower := sinceKey(since)

	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(bucketRounds).Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if lower != nil && bytes.Compare(k, lower) < 0 {
				break
			}
			var rec Record
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("failed to decode record %s: %w", k, err)
			}
			records = append(records, rec)
			if limit > 0 && len(records) >= limit {
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

// Summary aggregates journalled rounds
type Summary struct {
	Rounds  int            `json:"rounds"`
	Decided int            `json:"decided"`
	Failed  int            `json:"failed"`
	DryRun  int            `json:"dry_run"`
	ByKind  map[string]int `json:"by_kind"`
	// LastPoints is the total points shown in the most recent round with stats
	LastPoints string `json:"last_points,omitempty"`
}

// Summarize aggregates records as returned by List
func Summarize(records []Record) Summary {
	sum := Summary{ByKind: make(map[string]int)}
	for _, rec := range records {
		sum.Rounds++
		if rec.DryRun {
			sum.DryRun++
		}
		if rec.Decided() {
			sum.Decided++
		} else {
			sum.Failed++
			sum.ByKind[rec.Kind]++
		}
		if sum.LastPoints == "" {
			sum.LastPoints = rec.Stats[models.StatTotalPoints]
		}
	}
	return sum
}

// Summary aggregates every record started at or after since
func (s *Store) Summary(since time.Time) (Summary, error) {
	records, err := s.List(since, 0)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(records), nil
}
