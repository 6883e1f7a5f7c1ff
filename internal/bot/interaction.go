package bot

import "time"

// Interaction kinds delivered by the chat platform webhook.
const (
	InteractionCommand   = "command"
	InteractionComponent = "component"
)

// Component custom IDs understood by the browser glue.
const (
	CustomIDPrevPage = "prev_page"
	CustomIDNextPage = "next_page"
)

// Interaction is one incoming event: a slash command invocation or a
// component (button) press. The platform connector decodes its own wire
// format into this shape.
type Interaction struct {
	Type        string            `json:"type"`
	CommandName string            `json:"command_name,omitempty"`
	Subcommand  string            `json:"subcommand,omitempty"`
	Options     map[string]string `json:"options,omitempty"`
	CustomID    string            `json:"custom_id,omitempty"`
	SessionID   string            `json:"session_id,omitempty"`
	UserID      string            `json:"user_id"`
	UserTag     string            `json:"user_tag"`
}

// Option returns a named command option, empty when absent.
func (ic Interaction) Option(name string) string {
	return ic.Options[name]
}

// Reply is what a command hands back for the platform connector to
// format and send.
type Reply struct {
	Content   string   `json:"content,omitempty"`
	Embeds    []Embed  `json:"embeds,omitempty"`
	Buttons   []Button `json:"buttons,omitempty"`
	SessionID string   `json:"session_id,omitempty"`
	Ephemeral bool     `json:"ephemeral"`
}

// Button is a navigation affordance attached to a reply.
type Button struct {
	CustomID string `json:"custom_id"`
	Label    string `json:"label"`
	Disabled bool   `json:"disabled"`
}

// Embed mirrors the rich-message shape the original bot rendered
// everything with.
type Embed struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Color       string       `json:"color,omitempty"`
	Fields      []EmbedField `json:"fields,omitempty"`
	FooterText  string       `json:"footer_text,omitempty"`
	Timestamp   *time.Time   `json:"timestamp,omitempty"`
}

type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

func (e *Embed) AddField(name, value string, inline bool) {
	e.Fields = append(e.Fields, EmbedField{Name: name, Value: value, Inline: inline})
}

// MessageUpdater pushes an edited reply to an already posted message,
// used by the browser to re-render pages and to disable navigation when
// a session ends. The platform connector implements it.
type MessageUpdater interface {
	UpdateMessage(sessionID string, reply Reply)
}
