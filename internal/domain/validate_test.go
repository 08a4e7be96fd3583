package domain

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestAnalysisRequestValidate(t *testing.T) {
	valid := AnalysisRequest{ResumeText: "text", JobRole: "frontend-developer", ExperienceLevel: ExperienceMid}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}

	custom := AnalysisRequest{ResumeText: "text", JobRole: CustomJobRole, ExperienceLevel: ExperienceEntry}
	if err := custom.Validate(); err != nil {
		t.Fatalf("custom role without customJobRole is accepted server-side, got %v", err)
	}

	badLevel := valid
	badLevel.ExperienceLevel = "fresher"
	var verrs validator.ValidationErrors
	if err := badLevel.Validate(); !errors.As(err, &verrs) || verrs[0].Tag() != "oneof" {
		t.Fatalf("expected oneof violation, got %v", err)
	}

	blank := valid
	blank.ResumeText = " \n\t"
	if err := blank.Validate(); !errors.Is(err, ErrBlankResume) {
		t.Fatalf("expected ErrBlankResume, got %v", err)
	}
}
