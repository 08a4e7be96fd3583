package domain

import (
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	requestValidator     *validator.Validate
	requestValidatorOnce sync.Once
)

// Validate aplica las mismas reglas `binding` que usa gin, para llamadores fuera de HTTP.
func (r AnalysisRequest) Validate() error {
	requestValidatorOnce.Do(func() {
		requestValidator = validator.New()
		requestValidator.SetTagName("binding")
	})
	if err := requestValidator.Struct(r); err != nil {
		return err
	}
	if strings.TrimSpace(r.ResumeText) == "" {
		return ErrBlankResume
	}
	return nil
}
