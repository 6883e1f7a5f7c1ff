package bot

import (
	"ordertrack/internal/browser"

	"go.uber.org/zap"
)

// NewModule assembles the command mux with every registered command.
func NewModule(
	orders OrderLifecycle,
	settings SettingsStore,
	sessions *browser.Manager,
	updater MessageUpdater,
	devUserID string,
	logger *zap.Logger,
) *Mux {
	mux := NewMux(sessions, devUserID, logger)

	mux.Register(NewCreateOrderCommand(orders))
	mux.Register(NewUpdateOrderCommand(orders))
	mux.Register(NewSearchOrderCommand(orders))
	mux.Register(NewListOrdersCommand(orders, sessions, updater))
	mux.Register(NewSettingsCommand(settings))

	logger.Info("commands registered", zap.Int("count", len(mux.Commands())))
	return mux
}

// LoggingUpdater is the default MessageUpdater: it logs re-rendered
// pages. A real platform connector replaces it with an edit-message
// call.
type LoggingUpdater struct {
	Logger *zap.Logger
}

func (u *LoggingUpdater) UpdateMessage(sessionID string, reply Reply) {
	u.Logger.Debug("message update",
		zap.String("sessionId", sessionID),
		zap.Int("embeds", len(reply.Embeds)),
	)
}
