package planner

import "fmt"

// PromptConstructionError reports a request field that cannot be rendered
// into a prompt.
type PromptConstructionError struct {
	Field  string
	Reason string
}

func (e *PromptConstructionError) Error() string {
	return fmt.Sprintf("invalid request field %s: %s", e.Field, e.Reason)
}

// ParseErrorKind classifies why model output was rejected.
type ParseErrorKind string

const (
	MarkdownStripFailure  ParseErrorKind = "markdown_strip_failure"
	JSONSyntaxError       ParseErrorKind = "json_syntax_error"
	SchemaValidationError ParseErrorKind = "schema_validation_error"
)

// ParseError means the model text could not be turned into an itinerary.
// Snippet holds a bounded excerpt of the offending text for logs.
type ParseError struct {
	Kind    ParseErrorKind
	Field   string
	Message string
	Snippet string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Stage names the pipeline step a GenerationError came from.
type Stage string

const (
	StagePrompt Stage = "prompt"
	StageLLM    Stage = "llm"
	StageParse  Stage = "parse"
)

// GenerationError is the only error Generate returns. The cause is kept for
// errors.As; callers should offer a retry.
type GenerationError struct {
	Stage       Stage
	Destination string
	Err         error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate itinerary for %q failed at %s: %v", e.Destination, e.Stage, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

const maxSnippetRunes = 200

func snippet(s string) string {
	r := []rune(s)
	if len(r) <= maxSnippetRunes {
		return s
	}
	return string(r[:maxSnippetRunes]) + "..."
}
