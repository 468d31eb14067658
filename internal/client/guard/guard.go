// Package guard decides whether a screen may render for the current session
// and triggers redirects when it may not.
//
// A Guard never navigates more than once per transition into the state it
// redirects away from: repeated evaluations in the same state are free of
// side effects, and only a move out of that state and back re-arms it.
package guard

import (
	"sync"

	"github.com/dmitrijs2005/noticeboard/internal/client/models"
	"github.com/dmitrijs2005/noticeboard/internal/client/session"
)

// Outcome is what the guarded screen should render.
type Outcome int

const (
	// Placeholder blocks the screen's content.
	Placeholder Outcome = iota
	// Children renders the screen's content.
	Children
)

func (o Outcome) String() string {
	if o == Children {
		return "children"
	}
	return "placeholder"
}

// Navigator moves the viewer to path.
type Navigator func(path string)

type mode int

const (
	requireAuth mode = iota
	redirectAuthenticated
)

type Guard struct {
	mode     mode
	target   string
	navigate Navigator

	mu   sync.Mutex
	prev models.SessionStatus
}

// RequireAuth guards a protected screen: unauthenticated viewers are sent to
// target and never see the content.
func RequireAuth(target string, navigate Navigator) *Guard {
	return &Guard{mode: requireAuth, target: target, navigate: navigate}
}

// RedirectAuthenticated guards a screen meant for signed-out viewers, such as
// the sign-in form: authenticated viewers are sent to target.
func RedirectAuthenticated(target string, navigate Navigator) *Guard {
	return &Guard{mode: redirectAuthenticated, target: target, navigate: navigate}
}

// Evaluate returns the outcome for s and navigates if s has just entered the
// redirect state. Unknown statuses are treated as unauthenticated.
func (g *Guard) Evaluate(s models.Session) Outcome {
	status := normalize(s)

	g.mu.Lock()
	entered := status != g.prev
	g.prev = status
	g.mu.Unlock()

	var redirectOn models.SessionStatus
	var allowOn models.SessionStatus
	switch g.mode {
	case requireAuth:
		redirectOn, allowOn = models.StatusUnauthenticated, models.StatusAuthenticated
	default:
		redirectOn, allowOn = models.StatusAuthenticated, models.StatusUnauthenticated
	}

	switch status {
	case allowOn:
		return Children
	case redirectOn:
		if entered && g.navigate != nil {
			g.navigate(g.target)
		}
	}
	return Placeholder
}

// Reset forgets the last seen status so the next evaluation counts as a new
// transition. Screens call it when they are entered again.
func (g *Guard) Reset() {
	g.mu.Lock()
	g.prev = ""
	g.mu.Unlock()
}

// Watch evaluates the guard against the current session and again on every
// change, passing each outcome to onChange. The returned func stops watching.
func (g *Guard) Watch(a session.Accessor, onChange func(Outcome)) (stop func()) {
	unsubscribe := a.Subscribe(func(s models.Session) {
		o := g.Evaluate(s)
		if onChange != nil {
			onChange(o)
		}
	})

	o := g.Evaluate(a.Current())
	if onChange != nil {
		onChange(o)
	}
	return unsubscribe
}

func normalize(s models.Session) models.SessionStatus {
	switch {
	case s.Status == models.StatusLoading:
		return models.StatusLoading
	case s.IsAuthenticated():
		return models.StatusAuthenticated
	default:
		return models.StatusUnauthenticated
	}
}
