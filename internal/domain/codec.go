package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// planRecord is the persisted shape of a Plan. Timestamps stay strings so a
// corrupt value can be reported against its record instead of failing the
// whole blob.
type planRecord struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Date      string `json:"date"`
	Category  string `json:"category"`
	Note      string `json:"note"`
	Completed bool   `json:"completed"`
	CreatedAt string `json:"createdAt"`
}

// TimestampLayout is the wire layout for date and createdAt.
const TimestampLayout = time.RFC3339Nano

// EncodeCollection serializes the collection as a JSON array of records.
func EncodeCollection(c Collection) ([]byte, error) {
	records := make([]planRecord, 0, len(c))
	for _, p := range c {
		records = append(records, toRecord(p))
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encoding plans: %w", err)
	}
	return data, nil
}

// DecodeCollection parses a persisted blob. It stops at the first record with
// an unparseable timestamp and returns it as a *MalformedRecordError.
func DecodeCollection(data []byte) (Collection, error) {
	plans, malformed, err := DecodeCollectionLenient(data)
	if err != nil {
		return nil, err
	}
	if len(malformed) > 0 {
		return nil, malformed[0]
	}
	return plans, nil
}

// DecodeCollectionLenient parses a persisted blob, keeping every well-formed
// record and returning the malformed ones separately. The error is non-nil
// only when the blob itself is not a JSON array of records.
func DecodeCollectionLenient(data []byte) (Collection, []*MalformedRecordError, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Collection{}, nil, nil
	}

	var records []planRecord
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, nil, &MalformedRecordError{Field: "collection", Err: err}
	}

	plans := make(Collection, 0, len(records))
	var malformed []*MalformedRecordError
	for _, r := range records {
		p, err := fromRecord(r)
		if err != nil {
			malformed = append(malformed, err)
			continue
		}
		plans = append(plans, p)
	}
	return plans, malformed, nil
}

func toRecord(p Plan) planRecord {
	r := planRecord{
		ID:        p.ID,
		Title:     p.Title,
		Category:  p.Category,
		Note:      p.Note,
		Completed: p.Completed,
		Date:      p.Date.UTC().Format(TimestampLayout),
	}
	if !p.CreatedAt.IsZero() {
		r.CreatedAt = p.CreatedAt.UTC().Format(TimestampLayout)
	}
	return r
}

func fromRecord(r planRecord) (Plan, *MalformedRecordError) {
	date, err := time.Parse(TimestampLayout, r.Date)
	if err != nil {
		return Plan{}, &MalformedRecordError{ID: r.ID, Field: "date", Value: r.Date, Err: err}
	}

	var createdAt time.Time
	if r.CreatedAt != "" {
		createdAt, err = time.Parse(TimestampLayout, r.CreatedAt)
		if err != nil {
			return Plan{}, &MalformedRecordError{ID: r.ID, Field: "createdAt", Value: r.CreatedAt, Err: err}
		}
	}

	return Plan{
		ID:        r.ID,
		Title:     r.Title,
		Date:      date,
		Category:  r.Category,
		Note:      r.Note,
		Completed: r.Completed,
		CreatedAt: createdAt,
	}, nil
}
