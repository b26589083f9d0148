package llm

import "context"

// MockClient permite tests sin llamar a un LLM real.
type MockClient struct {
	Response string
	Err      error
	Calls    int
	LastReq  CompletionRequest
}

func (m *MockClient) Complete(_ context.Context, req CompletionRequest) (string, error) {
	m.Calls++
	m.LastReq = req
	return m.Response, m.Err
}
