package logger

import "go.uber.org/zap"

// Standard field names for structured logging across cfgopt.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Pipeline
	FieldStage      = "stage"
	FieldDurationMS = "duration_ms"

	// Inputs and outputs
	FieldSchema = "schema"
	FieldOutput = "output"
	FieldFile   = "file"
	FieldBytes  = "bytes"

	// Schema entities
	FieldApp         = "app"
	FieldFlag        = "flag"
	FieldFlags       = "flags"
	FieldPositionals = "positionals"
	FieldEntity      = "entity"

	// Generation
	FieldLang = "lang"
	FieldMode = "mode"

	// Errors
	FieldError = "error"
)

// ComponentLogger returns a named logger for a specific component.
//
// Example:
//
//	log := logger.ComponentLogger("driver")
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}
