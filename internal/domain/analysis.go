package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Analysis is the reviewer model's assessment of a profile.
// Fields the model adds beyond the known ones are kept in Extra and written back out.
type Analysis struct {
	OverallScore Score `json:"overallScore"`
	// CriteriaScores holds each criterion as the model wrote it: usually a number,
	// sometimes an object such as {"score": 80, "comment": "..."}.
	CriteriaScores      map[string]json.RawMessage `json:"criteriaScores"`
	Strengths           []string                   `json:"strengths"`
	AreasForImprovement []string                   `json:"areasForImprovement"`
	Summary             string                     `json:"summary"`
	Rank                *Rank                      `json:"rank,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

// analysisJSON has the fields of Analysis without its methods.
type analysisJSON Analysis

// UnmarshalJSON decodes a model reply. A "rank" key is ignored since the rank is derived from the score.
func (a *Analysis) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	var out Analysis
	var errs []error
	decode := func(key string, dst any) {
		raw, ok := fields[key]
		if !ok {
			return
		}
		delete(fields, key)
		if err := json.Unmarshal(raw, dst); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
	}
	decode("overallScore", &out.OverallScore)
	decode("criteriaScores", &out.CriteriaScores)
	decode("strengths", &out.Strengths)
	decode("areasForImprovement", &out.AreasForImprovement)
	decode("summary", &out.Summary)
	delete(fields, "rank")
	if err := errors.Join(errs...); err != nil {
		return err
	}

	if len(fields) > 0 {
		out.Extra = fields
	}
	*a = out
	return nil
}

// MarshalJSON writes the known fields followed by the extra ones.
func (a Analysis) MarshalJSON() ([]byte, error) {
	known, err := json.Marshal(analysisJSON(a))
	if err != nil || len(a.Extra) == 0 {
		return known, err
	}
	merged := make(map[string]json.RawMessage, len(a.Extra)+6)
	for k, v := range a.Extra {
		merged[k] = v
	}
	var knownFields map[string]json.RawMessage
	if err := json.Unmarshal(known, &knownFields); err != nil {
		return nil, err
	}
	for k, v := range knownFields {
		merged[k] = v
	}
	return json.Marshal(merged)
}

// Score is a 0-100 rating. It decodes from a JSON number or from a numeric
// string such as "78" or "78/100".
type Score float64

func (s *Score) UnmarshalJSON(data []byte) error {
	text := strings.TrimSpace(string(data))
	if text == "null" {
		return nil
	}
	if unquoted, err := strconv.Unquote(text); err == nil {
		text = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(unquoted), "/100"))
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return fmt.Errorf("score %s is not a number", data)
	}
	*s = Score(f)
	return nil
}
