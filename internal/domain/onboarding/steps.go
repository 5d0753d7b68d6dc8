package onboarding

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
)

type Step string

const (
	StepWelcome     Step = "welcome"
	StepProfile     Step = "profile"
	StepGmail       Step = "gmail"
	StepSpecialties Step = "specialties"
	StepSocials     Step = "socials"
	StepLinks       Step = "links"
	StepIntro       Step = "intro"
)

var stepOrder = []Step{
	StepWelcome,
	StepProfile,
	StepGmail,
	StepSpecialties,
	StepSocials,
	StepLinks,
	StepIntro,
}

// Steps returns the canonical step order.
func Steps() []Step {
	return append([]Step(nil), stepOrder...)
}

func (s Step) Index() int {
	for i, st := range stepOrder {
		if st == s {
			return i
		}
	}
	return -1
}

func ParseStep(v string) (Step, bool) {
	s := Step(strings.ToLower(strings.TrimSpace(v)))
	return s, s.Index() >= 0
}

// ResolveStep maps a route path to a step using its last segment. Unknown
// paths resolve to the first step.
func ResolveStep(path string) (Step, int) {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = strings.TrimRight(path, "/")
	last := path
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		last = path[i+1:]
	}
	if s, ok := ParseStep(last); ok {
		return s, s.Index()
	}
	return stepOrder[0], 0
}

// StepController is registered by a step that must approve leaving it, e.g.
// a form that has to validate before the wizard may move on.
type StepController interface {
	CanAdvance(ctx context.Context, creatorID uuid.UUID) bool
}

type StepControllerFunc func(ctx context.Context, creatorID uuid.UUID) bool

func (f StepControllerFunc) CanAdvance(ctx context.Context, creatorID uuid.UUID) bool {
	return f(ctx, creatorID)
}

type Action string

const (
	ActionBack     Action = "back"
	ActionContinue Action = "continue"
	ActionSkip     Action = "skip"
)

// Transition is the outcome of a navigation action.
type Transition struct {
	Action    Action `json:"action"`
	From      Step   `json:"from"`
	To        Step   `json:"to"`
	Path      string `json:"path"`
	Moved     bool   `json:"moved"`
	Blocked   bool   `json:"blocked"`
	Completed bool   `json:"completed"`
}

type NavigatorConfig struct {
	BasePath          string
	SkipDestination   string
	FinishDestination string
}

// Navigator is the stepper shell: it owns the step order and the controllers
// steps register to gate "continue".
type Navigator struct {
	cfg         NavigatorConfig
	mu          sync.RWMutex
	controllers map[Step]*registration
}

// registration gives each Register call its own identity, since controllers
// may be func types that cannot be compared.
type registration struct {
	c StepController
}

func NewNavigator(cfg NavigatorConfig) *Navigator {
	if cfg.BasePath == "" {
		cfg.BasePath = "/onboarding"
	}
	cfg.BasePath = "/" + strings.Trim(cfg.BasePath, "/")
	if cfg.SkipDestination == "" {
		cfg.SkipDestination = "/dashboard"
	}
	if cfg.FinishDestination == "" {
		cfg.FinishDestination = cfg.SkipDestination
	}
	return &Navigator{cfg: cfg, controllers: make(map[Step]*registration)}
}

func (n *Navigator) PathFor(s Step) string {
	return n.cfg.BasePath + "/" + string(s)
}

// Register installs the controller for a step, replacing any previous one.
// The returned func removes it again if it is still the active controller.
func (n *Navigator) Register(s Step, c StepController) (unregister func()) {
	n.mu.Lock()
	defer n.mu.Unlock()
	reg := &registration{c: c}
	n.controllers[s] = reg
	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if n.controllers[s] == reg {
			delete(n.controllers, s)
		}
	}
}

func (n *Navigator) controller(s Step) StepController {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if reg := n.controllers[s]; reg != nil {
		return reg.c
	}
	return nil
}

func (n *Navigator) Back(path string) Transition {
	from, idx := ResolveStep(path)
	t := Transition{Action: ActionBack, From: from, To: from, Path: n.PathFor(from)}
	if idx > 0 {
		t.To = stepOrder[idx-1]
		t.Path = n.PathFor(t.To)
		t.Moved = true
	}
	return t
}

// Continue asks the current step's controller, if any, and then moves one
// step forward. On the last step it completes the flow instead.
func (n *Navigator) Continue(ctx context.Context, creatorID uuid.UUID, path string) Transition {
	from, idx := ResolveStep(path)
	t := Transition{Action: ActionContinue, From: from, To: from, Path: n.PathFor(from)}

	if c := n.controller(from); c != nil && !c.CanAdvance(ctx, creatorID) {
		t.Blocked = true
		return t
	}

	if idx < len(stepOrder)-1 {
		t.To = stepOrder[idx+1]
		t.Path = n.PathFor(t.To)
		t.Moved = true
		return t
	}

	t.Completed = true
	t.Path = n.cfg.FinishDestination
	return t
}

// Skip leaves the wizard for the fixed skip destination. Confirmation is
// the caller's concern.
func (n *Navigator) Skip(path string) Transition {
	from, _ := ResolveStep(path)
	return Transition{
		Action: ActionSkip,
		From:   from,
		To:     from,
		Path:   n.cfg.SkipDestination,
		Moved:  true,
	}
}
