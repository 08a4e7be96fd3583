package service

import "errors"

var (
	// ErrInvalidCredential se devuelve cuando el proveedor rechaza la credencial configurada.
	ErrInvalidCredential = errors.New("invalid or unregistered LLM API key. Please make sure your API key is valid and properly configured")
	// ErrNoJSONFound indica que la respuesta del modelo no contiene un objeto JSON.
	ErrNoJSONFound = errors.New("failed to extract JSON from model response")
	// ErrInvalidJSON indica que el objeto extraído no es JSON válido.
	ErrInvalidJSON = errors.New("model response is not valid JSON")
	// ErrSchemaMismatch indica que el JSON no respeta el esquema de respuesta.
	ErrSchemaMismatch = errors.New("model response does not match schema")
	// ErrRateLimited indica que el cliente superó el límite de análisis.
	ErrRateLimited = errors.New("too many analysis requests")
)

// IsOutputShapeError agrupa los errores de forma de la salida del modelo.
func IsOutputShapeError(err error) bool {
	return errors.Is(err, ErrNoJSONFound) || errors.Is(err, ErrInvalidJSON) || errors.Is(err, ErrSchemaMismatch)
}
