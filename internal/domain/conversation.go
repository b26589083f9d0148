package domain

// Conversation agrupa el historial de chat y las URLs que lo sustentan.
// URLs conserva la cadena separada por comas tal como la envía el cliente.
type Conversation struct {
	ID       string    `json:"id"`
	Messages []Message `json:"messages"`
	URLs     string    `json:"urls"`
}
