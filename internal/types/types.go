package types

import (
	"encoding/json"
	"strconv"
	"strings"
)

// FlexString is a string field that tolerates non-string JSON values.
// Numbers are formatted, everything else (objects, arrays, null) decodes
// to the empty string instead of failing.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexString(s)
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexString(strconv.FormatFloat(n, 'f', -1, 64))
		return nil
	}

	*f = ""
	return nil
}

// StringList is a field that may arrive as a single JSON string, a list of
// values, or be absent entirely. Upstream extractors are inconsistent about
// which shape they emit, so all three decode without error.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*l = StringList{s}
		return nil
	}

	var items []any
	if err := json.Unmarshal(data, &items); err == nil {
		out := make(StringList, 0, len(items))
		for _, item := range items {
			switch v := item.(type) {
			case string:
				out = append(out, v)
			case float64:
				out = append(out, strconv.FormatFloat(v, 'f', -1, 64))
			}
		}
		*l = out
		return nil
	}

	*l = nil
	return nil
}

// FlexFloat is an optional numeric field that also accepts numeric strings.
// Anything else decodes as "not present" (nil).
type FlexFloat struct {
	Value float64
	Valid bool
}

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		f.Value, f.Valid = n, true
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			f.Value, f.Valid = v, true
			return nil
		}
	}

	f.Value, f.Valid = 0, false
	return nil
}

func (f FlexFloat) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// ExtractedFields is the flat field mapping produced by an external document
// extractor. No key is guaranteed present and values may be mistyped; every
// accessor degrades to an empty value rather than failing.
type ExtractedFields struct {
	Name            FlexString `json:"name,omitempty"`
	Email           FlexString `json:"email,omitempty"`
	MobileNumber    FlexString `json:"mobile_number,omitempty"`
	Skills          StringList `json:"skills,omitempty"`
	Degrees         StringList `json:"degree,omitempty"`
	Colleges        StringList `json:"college_name,omitempty"`
	CompanyNames    StringList `json:"company_names,omitempty"`
	Text            StringList `json:"text,omitempty"`
	Experience      StringList `json:"experience,omitempty"`
	TotalExperience FlexFloat  `json:"total_experience,omitempty"`
}

// CleanString trims a value, returning the empty string for blank input.
func CleanString(v FlexString) string {
	return strings.TrimSpace(string(v))
}

// CleanList trims list entries and drops empties, preserving order.
func CleanList(l StringList) []string {
	out := make([]string, 0, len(l))
	for _, item := range l {
		if s := strings.TrimSpace(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// FullText returns the joined resume plain text.
func (f *ExtractedFields) FullText() string {
	return strings.Join(f.Text, "\n")
}

// ExperienceText returns the joined experience-section text, if any.
func (f *ExtractedFields) ExperienceText() string {
	return strings.Join(f.Experience, "\n")
}

// Breakdown maps a scoring category to the points it earned.
type Breakdown map[string]int

// ResumeScore is the weighted-rubric resume quality result.
type ResumeScore struct {
	Total     int       `json:"total"`
	Breakdown Breakdown `json:"breakdown"`
}

// ATSScore is the ATS-friendliness audit result. Tips carries actionable
// improvement suggestions per category scoring below its cap.
type ATSScore struct {
	Total     int                 `json:"total"`
	Breakdown Breakdown           `json:"breakdown"`
	Tips      map[string][]string `json:"tips"`
}

// MatchResult is the JD-to-skill coverage result. Percentage is the share of
// relevant JD keywords covered by matched resume skills; an empty JD or an
// empty relevant-keyword set yields zero.
type MatchResult struct {
	Percentage int      `json:"percentage"`
	Matched    []string `json:"matched"`
	Missing    []string `json:"missing"`
}

// Report bundles every analysis over one resume for the serving layers.
type Report struct {
	ExperienceYears float64      `json:"experienceYears"`
	Resume          ResumeScore  `json:"resumeScore"`
	ATS             ATSScore     `json:"atsScore"`
	Match           *MatchResult `json:"skillMatch,omitempty"`
	Colleges        []string     `json:"colleges,omitempty"`
}
