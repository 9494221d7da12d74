package cmd

import (
	"fmt"
	"log/slog"

	"github.com/kwyt0087/AI-employee-takes-leave/internal"
	"github.com/kwyt0087/AI-employee-takes-leave/internal/chat"
	"github.com/kwyt0087/AI-employee-takes-leave/internal/leave"
	"github.com/kwyt0087/AI-employee-takes-leave/internal/navigation"
	"github.com/kwyt0087/AI-employee-takes-leave/internal/notify"
	"github.com/kwyt0087/AI-employee-takes-leave/internal/policy"
	"github.com/kwyt0087/AI-employee-takes-leave/internal/session"
	"github.com/kwyt0087/AI-employee-takes-leave/internal/transport"
	"github.com/kwyt0087/AI-employee-takes-leave/internal/user"
	"github.com/kwyt0087/AI-employee-takes-leave/pkg/logger"
)

// App wires the client together: one session store, one transport client,
// one container per resource. Built per command invocation, torn down when
// the command ends.
type App struct {
	Config    *internal.Config
	Logger    *slog.Logger
	Store     *session.Store
	Navigator *navigation.Navigator
	Client    *transport.Client
	Users     *user.Service
	Leaves    *leave.Service
	Chat      *chat.Service
	Policies  *policy.Service
}

func newApp() (*App, error) {
	cfg, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(cfg.Environment, cfg.Observability.Logging.Level)
	log := logger.LoggerWrapper()

	store, err := session.Open(cfg.Storage.Path, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}

	guard := navigation.NewGuard(store)
	navigator := navigation.NewNavigator(guard, log)
	notifier := notify.NewSlogNotifier(log)

	client := transport.NewClient(transport.Config{
		BaseURL:       cfg.API.BaseURL,
		Timeout:       cfg.API.Timeout,
		LoginPath:     navigation.LoginPath,
		RedirectDelay: internal.RedirectDelay,
	}, store, store, navigator, notifier, log)

	users := user.NewService(user.NewAPI(client), store, log)
	users.Init()

	chatService := chat.NewService(chat.NewAPI(client), store, log)
	chatService.Load()

	return &App{
		Config:    cfg,
		Logger:    log,
		Store:     store,
		Navigator: navigator,
		Client:    client,
		Users:     users,
		Leaves:    leave.NewService(leave.NewAPI(client), log),
		Chat:      chatService,
		Policies:  policy.NewService(policy.NewAPI(client), log),
	}, nil
}

func (a *App) Close() {
	if err := a.Store.Close(); err != nil {
		a.Logger.Error("close local store", "error", err)
	}
}

// openView runs the navigation guard for the named view and fails when the
// guard redirects elsewhere.
func (a *App) openView(name string) error {
	view, ok := navigation.ByName(name)
	if !ok {
		return fmt.Errorf("unknown view %s", name)
	}
	landed := a.Navigator.Navigate(name)
	if landed != view.Path {
		return fmt.Errorf("access to %s denied, redirected to %s", view.Path, landed)
	}
	return nil
}
