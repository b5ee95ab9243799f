package cli

import (
	"github.com/neboloop/nebo-contacts/internal/config"
	"github.com/neboloop/nebo-contacts/internal/contacts"
	"github.com/neboloop/nebo-contacts/internal/mcp"
	"github.com/neboloop/nebo-contacts/internal/osascript"
	"github.com/neboloop/nebo-contacts/internal/tools"
)

// newRunner and newLauncher are swapped out in tests.
var (
	newRunner = func(cfg *config.Config) osascript.Runner {
		return osascript.NewOSAScript(osascript.Config{
			Interpreter:    cfg.Script.Interpreter,
			Args:           cfg.Script.Args,
			Timeout:        cfg.Script.Timeout,
			MaxOutputBytes: int(cfg.Script.MaxOutputBytes),
		})
	}
	newLauncher = func(cfg *config.Config) osascript.Launcher {
		return osascript.OpenLauncher{Timeout: cfg.Script.Timeout}
	}
)

func newService(cfg *config.Config) *contacts.Service {
	return contacts.NewService(newRunner(cfg), newLauncher(cfg),
		contacts.WithAppName(cfg.Contacts.AppName),
		contacts.WithListLimit(cfg.Contacts.ListLimit),
		contacts.WithSearchLimit(cfg.Contacts.SearchLimit),
	)
}

func newDispatcher(cfg *config.Config) *tools.Dispatcher {
	return tools.NewDispatcher(newService(cfg))
}

func newMCPServer(cfg *config.Config) *mcp.Server {
	return mcp.NewServer(newDispatcher(cfg), mcp.WithImplementation(cfg.Server.Name, cfg.Server.Version))
}
