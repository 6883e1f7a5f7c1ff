package bot

import (
	"context"

	"ordertrack/internal/browser"
	apperrors "ordertrack/internal/errors"

	"go.uber.org/zap"
)

// Command is one registered slash command. Execute returns the reply the
// connector should render; errors are translated by the mux.
type Command struct {
	Name        string
	Description string
	DevOnly     bool
	Execute     func(ctx context.Context, ic Interaction) (Reply, error)
}

// Mux routes incoming interactions to commands and browser sessions.
type Mux struct {
	commands  map[string]*Command
	sessions  *browser.Manager
	devUserID string
	logger    *zap.Logger
}

func NewMux(sessions *browser.Manager, devUserID string, logger *zap.Logger) *Mux {
	return &Mux{
		commands:  make(map[string]*Command),
		sessions:  sessions,
		devUserID: devUserID,
		logger:    logger,
	}
}

func (m *Mux) Register(cmd *Command) {
	m.commands[cmd.Name] = cmd
}

// Commands lists registrations for the connector to publish.
func (m *Mux) Commands() []*Command {
	out := make([]*Command, 0, len(m.commands))
	for _, cmd := range m.commands {
		out = append(out, cmd)
	}
	return out
}

// Dispatch handles one interaction. Command errors never escape: they
// are translated into ephemeral replies, with store failures logged.
func (m *Mux) Dispatch(ctx context.Context, ic Interaction) Reply {
	if ic.Type == InteractionComponent {
		return m.dispatchComponent(ic)
	}

	cmd, ok := m.commands[ic.CommandName]
	if !ok {
		m.logger.Warn("unknown command", zap.String("command", ic.CommandName))
		return Reply{Content: "Unknown command.", Ephemeral: true}
	}

	if cmd.DevOnly && ic.UserID != m.devUserID {
		return Reply{Content: "There was an error while executing this command!", Ephemeral: true}
	}

	reply, err := cmd.Execute(ctx, ic)
	if err != nil {
		return m.errorReply(ic, err)
	}
	return reply
}

// dispatchComponent forwards a button press to its browser session. The
// session re-renders asynchronously through the connector's updater, so
// the immediate reply is just an acknowledgement.
func (m *Mux) dispatchComponent(ic Interaction) Reply {
	switch ic.CustomID {
	case CustomIDPrevPage:
		m.sessions.Navigate(ic.SessionID, ic.UserID, browser.Prev)
	case CustomIDNextPage:
		m.sessions.Navigate(ic.SessionID, ic.UserID, browser.Next)
	default:
		m.logger.Warn("unknown component", zap.String("customId", ic.CustomID))
	}
	return Reply{}
}

func (m *Mux) errorReply(ic Interaction, err error) Reply {
	if ve, ok := apperrors.IsValidationError(err); ok {
		return Reply{Content: ve.Message, Ephemeral: true}
	}
	if nf, ok := apperrors.IsNotFoundError(err); ok {
		return Reply{Content: nf.Message, Ephemeral: true}
	}

	m.logger.Error("command failed",
		zap.String("command", ic.CommandName),
		zap.Error(err),
	)
	return Reply{Content: "There was an error while executing this command!", Ephemeral: true}
}
