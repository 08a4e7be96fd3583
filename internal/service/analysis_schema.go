package service

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// analysisResponseSchema describe la salida que se exige al modelo. Las secuencias
// son opcionales (se normalizan a vacías), pero si vienen deben respetar tipos y enums.
const analysisResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["overallScore", "grammarScore", "atsScore", "keywordScore", "formatScore"],
  "properties": {
    "overallScore": {"type": "number"},
    "grammarScore": {"type": "number"},
    "atsScore": {"type": "number"},
    "keywordScore": {"type": "number"},
    "formatScore": {"type": "number"},
    "level": {"type": "string"},
    "earnedBadges": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name"],
        "properties": {
          "id": {"type": "integer"},
          "name": {"type": "string"},
          "icon": {"type": "string"}
        }
      }
    },
    "grammarFeedback": {
      "type": "object",
      "properties": {
        "issues": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["type", "text"],
            "properties": {
              "type": {"enum": ["positive", "warning", "error"]},
              "text": {"type": "string"}
            }
          }
        },
        "readabilityComment": {"type": "string"}
      }
    },
    "atsFeedback": {
      "type": "object",
      "properties": {
        "sections": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["name", "found"],
            "properties": {
              "name": {"type": "string"},
              "found": {"type": "boolean"}
            }
          }
        },
        "recommendations": {"type": "array", "items": {"type": "string"}}
      }
    },
    "keywordFeedback": {
      "type": "object",
      "properties": {
        "foundKeywords": {"type": "array", "items": {"type": "string"}},
        "missingKeywords": {"type": "array", "items": {"type": "string"}},
        "recommendation": {"type": "string"}
      }
    },
    "recommendations": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["text", "type"],
        "properties": {
          "text": {"type": "string"},
          "type": {"enum": ["strength", "improvement", "next-step"]}
        }
      }
    }
  }
}`

var analysisSchemaLoader = gojsonschema.NewStringLoader(analysisResponseSchema)

// FieldError es una violación del esquema en una ruta concreta.
type FieldError struct {
	Field   string
	Message string
}

// SchemaError agrupa las violaciones encontradas en la salida del modelo.
type SchemaError struct {
	Fields []FieldError
}

func (e *SchemaError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "model output does not match schema: " + strings.Join(parts, "; ")
}

func (e *SchemaError) Unwrap() error {
	return ErrSchemaMismatch
}

// validateAnalysisJSON valida el documento crudo contra analysisResponseSchema.
func validateAnalysisJSON(doc string) error {
	result, err := gojsonschema.Validate(analysisSchemaLoader, gojsonschema.NewStringLoader(doc))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if result.Valid() {
		return nil
	}
	se := &SchemaError{}
	for _, re := range result.Errors() {
		se.Fields = append(se.Fields, FieldError{Field: re.Field(), Message: re.Description()})
	}
	return se
}
