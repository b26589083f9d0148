package domain

const (
	RoleUser = "user"
	RoleAI   = "ai"
)

type Message struct {
	Role    string   `json:"role"`
	Content string   `json:"content"`
	Sources []Source `json:"sources,omitempty"`
}
