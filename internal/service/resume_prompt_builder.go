package service

import (
	"fmt"
	"strings"

	"resume-analyzer/internal/domain"
)

// SystemInstruction es la persona fija del analista.
const SystemInstruction = "You are an expert resume analyst with deep knowledge of recruitment, applicant tracking systems, and industry-specific requirements."

// responseContract enumera la forma exacta del JSON esperado. El parser no repara
// esquemas, así que nombres, anidamiento y valores permitidos deben ser explícitos.
const responseContract = `{
  "overallScore": (integer between 1-100),
  "grammarScore": (integer between 1-100),
  "atsScore": (integer between 1-100),
  "keywordScore": (integer between 1-100),
  "formatScore": (integer between 1-100),
  "level": (string - exactly one of "Beginner", "Intermediate", "Pro", or "Expert" based on overall score),
  "earnedBadges": [
    {
      "id": (integer),
      "name": (string name of the badge, like "Grammar Guru" or "Keyword King"),
      "icon": (string - an icon name from Remix Icon, e.g. "ri-quill-pen-line")
    }
  ],
  "grammarFeedback": {
    "issues": [
      {
        "type": (string - exactly one of "positive", "warning", or "error"),
        "text": (string describing the issue or positive aspect)
      }
    ],
    "readabilityComment": (string with overall readability assessment)
  },
  "atsFeedback": {
    "sections": [
      {
        "name": (string name of section, e.g. "Contact Information", "Work Experience"),
        "found": (boolean indicating if section was found)
      }
    ],
    "recommendations": [
      (string with ATS recommendation)
    ]
  },
  "keywordFeedback": {
    "foundKeywords": [
      (string keyword found in resume)
    ],
    "missingKeywords": [
      (string important keyword missing from resume)
    ],
    "recommendation": (string with keyword recommendation)
  },
  "recommendations": [
    {
      "text": (string with recommendation),
      "type": (string - exactly one of "strength", "improvement", or "next-step")
    }
  ]
}`

// ResumePromptBuilder arma el prompt de análisis a partir del currículum y las descripciones resueltas.
type ResumePromptBuilder struct{}

// BuildPrompt no trunca resumeText: se envía completo.
func (ResumePromptBuilder) BuildPrompt(resumeText, roleDescription, levelDescription, displayRole string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Analyze the following resume for a %s position (%s).\n\n", displayRole, levelDescription)
	sb.WriteString("RESUME:\n")
	sb.WriteString(resumeText)
	sb.WriteString("\n\nJOB REQUIREMENTS:\n")
	sb.WriteString(roleDescription)
	sb.WriteString("\n\nPerform a detailed analysis and provide a JSON response with the following structure:\n")
	sb.WriteString(responseContract)
	sb.WriteString("\n\nReturn only the JSON object, without markdown fences or commentary. ")
	sb.WriteString("All arrays must be present, even when empty. ")
	sb.WriteString("Be honest but helpful in your assessment. The scores should reflect the resume's quality for the specific job role.\n")
	return sb.String()
}

// BuildForRequest resuelve rol y nivel con la base de conocimiento y arma el prompt.
func (b ResumePromptBuilder) BuildForRequest(req domain.AnalysisRequest) string {
	return b.BuildPrompt(
		req.ResumeText,
		DescribeRole(req.JobRole, req.CustomJobRole),
		DescribeLevel(req.ExperienceLevel),
		domain.DisplayRole(req.JobRole, req.CustomJobRole),
	)
}
