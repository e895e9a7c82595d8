package evalconsole

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ValidationReason identifies why a Field is invalid.
type ValidationReason string

// Validation error reasons.
const (
	ReasonEmpty       ValidationReason = "empty"
	ReasonInvalidJSON ValidationReason = "invalid_json"
)

// Field is a named form value checked before a request is sent.
type Field struct {
	Name      string // Stable identifier, e.g. "doc_token"
	Label     string // Human-readable name used in messages
	Value     string
	JSON      bool // Value must parse as JSON when non-empty
	Optional  bool // Empty values are accepted
	Multiline bool // Hint for prompts: value is free-form text
}

// Field names used across the console.
const (
	FieldDocToken    = "doc_token"
	FieldUserToken   = "user_access_token"
	FieldHumanCases  = "human_cases"
	FieldLLMCases    = "llm_cases"
	FieldGoldenCases = "golden_cases"
)

// ValidationError describes the first invalid field of a submission.
type ValidationError struct {
	Field  Field
	Reason ValidationReason
	Detail string // Parser message for invalid_json
}

// Error implements the error interface. The message always names the field.
func (e *ValidationError) Error() string {
	switch e.Reason {
	case ReasonInvalidJSON:
		return fmt.Sprintf("%s is not valid JSON: %s", e.Field.Label, e.Detail)
	default:
		return fmt.Sprintf("%s is required", e.Field.Label)
	}
}

// Validate checks fields in order and returns the first violation, or nil.
// Whitespace-only values count as empty.
func Validate(fields ...Field) error {
	for _, f := range fields {
		if strings.TrimSpace(f.Value) == "" {
			if f.Optional {
				continue
			}
			return &ValidationError{Field: f, Reason: ReasonEmpty}
		}
		if f.JSON {
			var v any
			if err := json.Unmarshal([]byte(f.Value), &v); err != nil {
				return &ValidationError{Field: f, Reason: ReasonInvalidJSON, Detail: err.Error()}
			}
		}
	}
	return nil
}

// GenerateFields returns the fields checked before generation, in check order.
func GenerateFields(req GenerateRequest) []Field {
	return []Field{
		{Name: FieldDocToken, Label: "Document token", Value: req.DocToken},
		{Name: FieldUserToken, Label: "User access token", Value: req.UserAccessToken},
	}
}

// EvaluateFields returns the fields checked before a single-pass evaluation.
func EvaluateFields(req EvaluateRequest) []Field {
	return []Field{
		{Name: FieldDocToken, Label: "Document token", Value: req.DocToken},
		{Name: FieldUserToken, Label: "User access token", Value: req.UserAccessToken},
		{Name: FieldHumanCases, Label: "Human-written test cases", Value: req.HumanCasesText, Multiline: true},
		{Name: FieldLLMCases, Label: "LLM-generated test cases", Value: req.LLMCasesText, Multiline: true},
	}
}

// CasesFields returns the fields checked before a two-phase evaluation.
func CasesFields(req CasesRequest) []Field {
	return []Field{
		{Name: FieldLLMCases, Label: "LLM-generated test cases", Value: req.LLMTestCases, Multiline: true},
		{Name: FieldGoldenCases, Label: "Golden test cases", Value: req.GoldenTestCases, Multiline: true},
	}
}

// CompareFields returns the fields checked before a comparison. Golden cases
// are optional but must be JSON when present.
func CompareFields(in CompareInput) []Field {
	return []Field{
		{Name: FieldLLMCases, Label: "LLM-generated test cases", Value: in.LLMCases, JSON: true, Multiline: true},
		{Name: FieldGoldenCases, Label: "Golden test cases", Value: in.GoldenCases, JSON: true, Optional: true, Multiline: true},
	}
}

// SaveGoldenFields returns the fields checked before persisting golden cases.
func SaveGoldenFields(text string) []Field {
	return []Field{
		{Name: FieldGoldenCases, Label: "Golden test cases", Value: text, Multiline: true},
	}
}

// FieldValue returns the value of the named field, or "" if absent.
func FieldValue(fields []Field, name string) string {
	for _, f := range fields {
		if f.Name == name {
			return f.Value
		}
	}
	return ""
}
