package scenario

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/marcus/navkit/pkg/keynav"
	"github.com/marcus/navkit/pkg/keynav/dom"
)

// DefaultSelectedAttr is used when a scenario does not name a marker.
var DefaultSelectedAttr = Attr{Name: "aria-selected", Value: "true"}

// Failure is one unmet expectation.
type Failure struct {
	Step    int
	Message string
}

func (f Failure) String() string {
	return fmt.Sprintf("step %d: %s", f.Step, f.Message)
}

// Result is the outcome of one scenario run.
type Result struct {
	Name     string
	Path     string
	Steps    int
	Failures []Failure
}

// Passed reports whether every expectation held.
func (r Result) Passed() bool { return len(r.Failures) == 0 }

// harness is one arranged widget on a fresh document.
type harness struct {
	s       *Scenario
	doc     *dom.Document
	root    *dom.Element
	toggle  *dom.Element
	items   map[string]*dom.Element
	ordered []*dom.Element
	engine  *keynav.Engine
	toggles int
	marker  Attr

	lastConsumed bool
	res          *Result
	step         int
}

// Run replays s on a fresh document. The context is checked between steps.
func Run(ctx context.Context, s *Scenario) (Result, error) {
	h := arrange(s)
	for i, st := range s.Steps {
		if err := ctx.Err(); err != nil {
			return *h.res, fmt.Errorf("scenario %q: %w", s.Name, err)
		}
		h.step = i + 1
		h.apply(st)
	}
	h.res.Steps = len(s.Steps)
	slog.Debug("scenario finished", "name", s.Name, "steps", len(s.Steps), "failures", len(h.res.Failures))
	return *h.res, nil
}

// RunAll loads and runs every file, at most parallel at a time (no limit
// when parallel < 1). Results keep the order of paths. A load error aborts
// the whole batch.
func RunAll(ctx context.Context, paths []string, parallel int) ([]Result, error) {
	results := make([]Result, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	if parallel > 0 {
		g.SetLimit(parallel)
	}
	for i, p := range paths {
		g.Go(func() error {
			s, err := Load(p)
			if err != nil {
				return err
			}
			res, err := Run(ctx, s)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func arrange(s *Scenario) *harness {
	h := &harness{
		s:      s,
		doc:    dom.New(),
		items:  make(map[string]*dom.Element, len(s.Items)),
		marker: DefaultSelectedAttr,
		res:    &Result{Name: s.Name, Path: s.Path},
	}
	if s.SelectedAttr != nil {
		h.marker = *s.SelectedAttr
	}
	h.root = h.doc.CreateElement(TargetRoot, "")
	h.doc.Body.AppendChild(h.root)
	for _, label := range s.Items {
		el := h.doc.CreateElement("item-"+label, label)
		h.root.AppendChild(el)
		h.items[label] = el
		h.ordered = append(h.ordered, el)
	}

	// Validate has already accepted the table.
	table, _ := s.Table()
	cfg := keynav.Config{
		Items:                 dom.Items(h.ordered),
		Root:                  h.root,
		Bindings:              table,
		SelectedAttr:          keynav.Attr(h.marker),
		InfiniteNavigation:    s.Options.InfiniteNavigation,
		SelectionFollowsFocus: s.Options.SelectionFollowsFocus,
		ToggleAfterSelected:   s.Options.ToggleAfterSelected,
		UseRovingTabIndex:     s.Options.RovingTabIndex,
		Typeahead:             s.Options.Typeahead,
		Logger:                slog.Default(),
	}
	if s.UnselectedAttr != nil {
		cfg.UnselectedAttr = keynav.Attr(*s.UnselectedAttr)
	}
	if s.Toggle {
		h.toggle = h.doc.CreateElement(TargetToggle, "")
		h.toggle.SetAttribute("aria-expanded", "false")
		h.root.AppendChild(h.toggle)
		h.toggle.OnClick(func(el *dom.Element) {
			h.toggles++
			if v, _ := el.Attribute("aria-expanded"); v == "true" {
				el.SetAttribute("aria-expanded", "false")
			} else {
				el.SetAttribute("aria-expanded", "true")
			}
		})
		cfg.Toggle = h.toggle
	}
	if s.InitialSelection != "" {
		cfg.Selected = h.items[s.InitialSelection]
	}
	h.engine = dom.Bind(h.doc, cfg)
	return h
}

func (h *harness) apply(st Step) {
	switch {
	case st.Focus != "":
		h.resolve(st.Focus).Focus()
	case st.Press != "":
		var target *dom.Element
		if st.On != "" {
			target = h.resolve(st.On)
		}
		ev := h.doc.KeyDown(target, st.Press)
		h.lastConsumed = ev.DefaultPrevented()
	case st.Click != "":
		h.doc.Click(h.resolve(st.Click))
	case st.Pointer:
		h.doc.PointerDown(nil)
	case st.SelectNext:
		h.engine.SelectNext()
	case st.SelectPrevious:
		h.engine.SelectPrevious()
	case st.Expect != nil:
		h.check(st.Expect)
	}
}

func (h *harness) resolve(ref string) *dom.Element {
	switch ref {
	case TargetRoot:
		return h.root
	case TargetToggle:
		return h.toggle
	default:
		return h.items[ref]
	}
}

// name returns the label used in scenarios for el.
func (h *harness) name(el *dom.Element) string {
	switch {
	case el == nil:
		return None
	case el == h.root:
		return TargetRoot
	case el == h.toggle:
		return TargetToggle
	default:
		return el.Text
	}
}

func (h *harness) check(ex *Expect) {
	if ex.Focused != nil {
		if got := h.name(h.doc.Active()); got != *ex.Focused {
			h.failf("focused = %s, want %s", got, *ex.Focused)
		}
	}
	if ex.Selected != nil {
		if got := h.selected(); got != *ex.Selected {
			h.failf("selected = %s, want %s", got, *ex.Selected)
		}
	}
	if ex.TabStop != nil {
		if got := h.tabStop(); got != *ex.TabStop {
			h.failf("tab stop = %s, want %s", got, *ex.TabStop)
		}
	}
	if ex.Toggles != nil && h.toggles != *ex.Toggles {
		h.failf("toggles = %d, want %d", h.toggles, *ex.Toggles)
	}
	if ex.Modality != nil {
		got, _ := h.doc.Body.Attribute(keynav.ModalityAttr)
		if got != *ex.Modality {
			h.failf("modality = %q, want %q", got, *ex.Modality)
		}
	}
	if ex.Consumed != nil && h.lastConsumed != *ex.Consumed {
		h.failf("last key consumed = %v, want %v", h.lastConsumed, *ex.Consumed)
	}
	for label, attrs := range ex.Attrs {
		el := h.resolve(label)
		for k, want := range attrs {
			got, ok := el.Attribute(k)
			switch {
			case want == "" && ok:
				h.failf("%s has %s=%q, want absent", label, k, got)
			case want != "" && got != want:
				h.failf("%s %s = %q, want %q", label, k, got, want)
			}
		}
	}
}

// selected reads the markers from the tree rather than the engine, so a
// scenario fails if the two disagree.
func (h *harness) selected() string {
	var found []string
	for _, el := range h.ordered {
		if v, ok := el.Attribute(h.marker.Name); ok && v == h.marker.Value {
			found = append(found, el.Text)
		}
	}
	switch len(found) {
	case 0:
		return None
	case 1:
		return found[0]
	default:
		return "multiple(" + strings.Join(found, ",") + ")"
	}
}

func (h *harness) tabStop() string {
	var found []string
	for _, el := range h.ordered {
		if v, _ := el.Attribute(keynav.TabIndexAttr); v == keynav.TabStop {
			found = append(found, el.Text)
		}
	}
	switch len(found) {
	case 0:
		return None
	case 1:
		return found[0]
	default:
		return "multiple(" + strings.Join(found, ",") + ")"
	}
}

func (h *harness) failf(format string, args ...any) {
	h.res.Failures = append(h.res.Failures, Failure{Step: h.step, Message: fmt.Sprintf(format, args...)})
}
