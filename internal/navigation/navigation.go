package navigation

import (
	"log/slog"
	"net/url"
	"sync"
	"time"
)

// View is one entry of the static route table.
type View struct {
	Name          string
	Path          string
	RequiresAuth  bool
	RequiresAdmin bool
}

const (
	ViewHome           = "home"
	ViewChat           = "chat"
	ViewLeaveApply     = "leave-apply"
	ViewLeaveRecommend = "leave-recommend"
	ViewLeaveList      = "leave-list"
	ViewLeaveDetail    = "leave-detail"
	ViewPolicyList     = "policy-list"
	ViewPolicyUpload   = "policy-upload"
	ViewLogin          = "login"
	ViewUser           = "user"
	ViewNotFound       = "not-found"
)

const LoginPath = "/login"

// Views is the full table. Auth and admin flags mirror what each view
// shows; the guard enforces them from local data only.
var Views = []View{
	{Name: ViewHome, Path: "/"},
	{Name: ViewChat, Path: "/chat", RequiresAuth: true},
	{Name: ViewLeaveApply, Path: "/leave-apply", RequiresAuth: true},
	{Name: ViewLeaveRecommend, Path: "/leave-recommend", RequiresAuth: true},
	{Name: ViewLeaveList, Path: "/leave-list", RequiresAuth: true},
	{Name: ViewLeaveDetail, Path: "/leave-detail", RequiresAuth: true},
	{Name: ViewPolicyList, Path: "/policy-list"},
	{Name: ViewPolicyUpload, Path: "/policy-upload", RequiresAuth: true, RequiresAdmin: true},
	{Name: ViewLogin, Path: LoginPath},
	{Name: ViewUser, Path: "/user"},
}

// ByName looks a view up by its name.
func ByName(name string) (View, bool) {
	for _, v := range Views {
		if v.Name == name {
			return v, true
		}
	}
	return View{Name: ViewNotFound}, false
}

// SessionReader is the slice of local session state the guard consults.
type SessionReader interface {
	Token() string
	IsAdmin() bool
}

// Decision is the guard's verdict for one navigation attempt.
type Decision struct {
	Allowed    bool
	RedirectTo string
}

// Guard evaluates the route table's auth/admin flags against locally
// persisted session data. Synchronous, no server round trip, advisory
// only: the backend must enforce authorization independently.
type Guard struct {
	sessions SessionReader
}

func NewGuard(sessions SessionReader) *Guard {
	return &Guard{sessions: sessions}
}

// Check returns where a navigation to target may proceed. An
// unauthenticated hit on an auth view redirects to login with the intended
// path preserved in the redirect query parameter; a non-admin hit on an
// admin view redirects home.
func (g *Guard) Check(target View) Decision {
	if target.RequiresAuth && g.sessions.Token() == "" {
		query := url.Values{"redirect": {target.Path}}
		return Decision{RedirectTo: LoginPath + "?" + query.Encode()}
	}
	if target.RequiresAdmin && !g.sessions.IsAdmin() {
		return Decision{RedirectTo: "/"}
	}
	return Decision{Allowed: true}
}

// Navigator tracks the current view and carries out redirects, including
// the delayed one the 401 handler schedules.
type Navigator struct {
	guard  *Guard
	logger *slog.Logger

	mu      sync.Mutex
	current string
	pending *time.Timer
}

func NewNavigator(guard *Guard, logger *slog.Logger) *Navigator {
	return &Navigator{guard: guard, logger: logger, current: "/"}
}

// Navigate runs the guard for the named view and moves to wherever the
// decision lands. It returns the resulting path.
func (n *Navigator) Navigate(name string) string {
	target, ok := ByName(name)
	if !ok {
		n.logger.Warn("navigation to unknown view", "view", name)
		return n.Current()
	}

	decision := n.guard.Check(target)
	path := target.Path
	if !decision.Allowed {
		n.logger.Info("navigation redirected",
			"view", target.Name, "redirect", decision.RedirectTo)
		path = decision.RedirectTo
	}

	n.mu.Lock()
	n.current = path
	n.mu.Unlock()
	return path
}

// Current returns the path of the view currently shown.
func (n *Navigator) Current() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// ScheduleRedirect moves to path after delay. A later schedule replaces a
// pending one; Cancel stops it.
func (n *Navigator) ScheduleRedirect(path string, delay time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.pending != nil {
		n.pending.Stop()
	}
	n.pending = time.AfterFunc(delay, func() {
		n.mu.Lock()
		n.current = path
		n.pending = nil
		n.mu.Unlock()
		n.logger.Info("redirect applied", "path", path)
	})
}

// Cancel stops a pending scheduled redirect, if any.
func (n *Navigator) Cancel() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.pending != nil {
		n.pending.Stop()
		n.pending = nil
	}
}
