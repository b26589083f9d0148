package service

import (
	"fmt"
	"strings"

	"researchbot/internal/domain"
)

// groundingSystemInstruction fija las reglas de grounding del modelo.
const groundingSystemInstruction = "You are a research assistant. Answer the question strictly using the " +
	"provided sources. Cite the sources you used by their URL. If the sources do not contain the answer, " +
	"say so explicitly. Do not use outside knowledge."

// GroundingPromptBuilder arma el prompt del modelo a partir de las fuentes scrapeadas.
type GroundingPromptBuilder struct{}

// Build devuelve la instrucción de sistema y el prompt de usuario con bloques de fuentes.
func (GroundingPromptBuilder) Build(query string, sources []domain.Source) (system, prompt string) {
	var sb strings.Builder
	for i, src := range sources {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(fmt.Sprintf("[Source: %s]\n%s", src.URL, src.Content))
	}
	sb.WriteString("\n\nQuestion: ")
	sb.WriteString(query)
	return groundingSystemInstruction, sb.String()
}
