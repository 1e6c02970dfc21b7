// Package transfer exports and imports plan collections as JSON or YAML files.
// The JSON form is the same document the plan store persists.
package transfer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alexanderramin/planeasy/internal/domain"
	"gopkg.in/yaml.v3"
)

// Supported formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

type yamlPlan struct {
	ID        string `yaml:"id"`
	Title     string `yaml:"title"`
	Date      string `yaml:"date"`
	Category  string `yaml:"category"`
	Note      string `yaml:"note,omitempty"`
	Completed bool   `yaml:"completed"`
	CreatedAt string `yaml:"createdAt,omitempty"`
}

// ParseFormat normalizes a format name, accepting "yml" for YAML.
func ParseFormat(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", &domain.ValidationError{Field: "format", Reason: fmt.Sprintf("must be json or yaml, got %q", s)}
	}
}

// FormatFromPath guesses the format from a file extension.
func FormatFromPath(path string) string {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") {
		return FormatYAML
	}
	return FormatJSON
}

// Export writes plans to w in format.
func Export(w io.Writer, plans domain.Collection, format string) error {
	format, err := ParseFormat(format)
	if err != nil {
		return err
	}

	switch format {
	case FormatYAML:
		records := make([]yamlPlan, 0, len(plans))
		for _, p := range plans {
			records = append(records, toYAML(p))
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	default:
		data, err := domain.EncodeCollection(plans)
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", "  "); err != nil {
			return fmt.Errorf("indenting json: %w", err)
		}
		buf.WriteByte('\n')
		_, err = buf.WriteTo(w)
		return err
	}
}

// Import reads and validates a collection from r. Every record needs an ID, a
// non-empty title and a date; IDs must be unique within the file.
func Import(r io.Reader, format string) (domain.Collection, error) {
	format, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading import: %w", err)
	}

	var plans domain.Collection
	switch format {
	case FormatYAML:
		plans, err = decodeYAML(data)
	default:
		plans, err = domain.DecodeCollection(data)
	}
	if err != nil {
		return nil, err
	}
	if err := validate(plans); err != nil {
		return nil, err
	}
	return plans, nil
}

func validate(plans domain.Collection) error {
	seen := make(map[string]bool, len(plans))
	for i, p := range plans {
		if strings.TrimSpace(p.ID) == "" {
			return &domain.ValidationError{Field: fmt.Sprintf("record %d id", i+1), Reason: "must not be empty"}
		}
		if seen[p.ID] {
			return &domain.ValidationError{Field: fmt.Sprintf("record %d id", i+1), Reason: fmt.Sprintf("%q is duplicated", p.ID)}
		}
		seen[p.ID] = true

		title, err := domain.NormalizeTitle(p.Title)
		if err != nil {
			return fmt.Errorf("plan %q: %w", p.ID, err)
		}
		plans[i].Title = title
		if err := domain.ValidateDate(p.Date); err != nil {
			return fmt.Errorf("plan %q: %w", p.ID, err)
		}
	}
	return nil
}

func toYAML(p domain.Plan) yamlPlan {
	y := yamlPlan{
		ID:        p.ID,
		Title:     p.Title,
		Date:      p.Date.UTC().Format(domain.TimestampLayout),
		Category:  p.Category,
		Note:      p.Note,
		Completed: p.Completed,
	}
	if !p.CreatedAt.IsZero() {
		y.CreatedAt = p.CreatedAt.UTC().Format(domain.TimestampLayout)
	}
	return y
}

func decodeYAML(data []byte) (domain.Collection, error) {
	var records []yamlPlan
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, &domain.MalformedRecordError{Field: "collection", Err: err}
	}

	plans := make(domain.Collection, 0, len(records))
	for _, r := range records {
		date, err := time.Parse(domain.TimestampLayout, r.Date)
		if err != nil {
			return nil, &domain.MalformedRecordError{ID: r.ID, Field: "date", Value: r.Date, Err: err}
		}
		var createdAt time.Time
		if r.CreatedAt != "" {
			if createdAt, err = time.Parse(domain.TimestampLayout, r.CreatedAt); err != nil {
				return nil, &domain.MalformedRecordError{ID: r.ID, Field: "createdAt", Value: r.CreatedAt, Err: err}
			}
		}
		plans = append(plans, domain.Plan{
			ID:        r.ID,
			Title:     r.Title,
			Date:      date,
			Category:  r.Category,
			Note:      r.Note,
			Completed: r.Completed,
			CreatedAt: createdAt,
		})
	}
	return plans, nil
}
