package domain

// Source representa el texto extraído de una página web junto a su URL.
type Source struct {
	URL     string `json:"url"`
	Title   string `json:"title,omitempty"`
	Content string `json:"content"`
}

// Preview devuelve una copia con el contenido recortado a max caracteres.
func (s Source) Preview(max int) Source {
	if max <= 0 {
		return s
	}
	runes := []rune(s.Content)
	if len(runes) > max {
		s.Content = string(runes[:max])
	}
	return s
}
