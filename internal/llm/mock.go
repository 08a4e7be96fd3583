package llm

import "context"

// MockClient permite tests sin llamar a un LLM real.
type MockClient struct {
	Response string
	Err      error

	Calls      int
	LastSystem string
	LastPrompt string
}

func (m *MockClient) Generate(ctx context.Context, systemInstruction, prompt string) (string, error) {
	m.Calls++
	m.LastSystem = systemInstruction
	m.LastPrompt = prompt
	return m.Response, m.Err
}
