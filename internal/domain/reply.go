package domain

// Reply es la respuesta final de un comando, independiente de discordgo.
type Reply struct {
	Content   string
	Embed     *Embed
	Page      *PageView
	Ephemeral bool
}

type Embed struct {
	Title       string
	Description string
	Footer      string
	Color       int
	Fields      []EmbedField
}

type EmbedField struct {
	Name   string
	Value  string
	Inline bool
}

// PageView: una página de texto paginado (letras) con sus controles.
type PageView struct {
	Handle      string
	OwnerUserID string
	Title       string
	Text        string
	Index       int
	Total       int
}

func (p PageView) HasPrev() bool { return p.Index > 0 }
func (p PageView) HasNext() bool { return p.Index < p.Total-1 }

func Text(content string) Reply { return Reply{Content: content} }

func Ephemeral(content string) Reply { return Reply{Content: content, Ephemeral: true} }
