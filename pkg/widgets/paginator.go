// Package widgets contains composite editors built from the editors in
// package editor: a paginated list, a dismissible alert and a card.
package widgets

import (
	"github.com/elves/ebind/pkg/cell"
	"github.com/elves/ebind/pkg/editor"
	"github.com/elves/ebind/pkg/lens"
	"github.com/elves/ebind/pkg/logutil"
	"github.com/elves/ebind/pkg/paginate"
)

var logger = logutil.GetLogger("widgets")

// Page events understood by [Paginator].
type (
	// GoTo moves to the given page, clamped to the existing pages.
	GoTo  struct{ Page int }
	Next  struct{}
	Prev  struct{}
	First struct{}
	Last  struct{}
)

// Paginator is a sequence editor that only shows one page of the items at a
// time. Elements on other pages have no child editor.
//
// The current page lives in a cell owned by the paginator, so that it can be
// observed (and persisted) like any other state. It is always within
// [0, PageCount()-1], or 0 if there are no pages.
type Paginator[R, E any] struct {
	*editor.Sequence[R, E]
	items  lens.Var[R, []E]
	page   *cell.Cell[int]
	cfg    PaginatorConfig
	keyed  bool
	cancel []func()
}

// NewPaginator returns a paginator over the items bound by items. The
// SequenceSpec describes how child editors are built, like for
// [editor.NewSequence]. The vars passed to Build go through the current page:
// once an element leaves the page, its editor is closed and its var fails
// with [lens.ErrIndexOutOfRange].
func NewPaginator[R, E any](items lens.Var[R, []E], cfg PaginatorConfig, spec editor.SequenceSpec[R, E]) *Paginator[R, E] {
	if cfg.PageSize < 1 {
		cfg.PageSize = DefaultConfig().Paginator.PageSize
	}
	if cfg.Empty == "" {
		cfg.Empty = DefaultConfig().Paginator.Empty
	}
	p := &Paginator[R, E]{items: items, page: cell.New(0), cfg: cfg, keyed: spec.KeyOf != nil}
	// Re-clamp the page before the sequence reconciles with the new items.
	p.cancel = append(p.cancel, items.Cell().Observe(func(cell.Change[R]) { p.clampPage() }))
	window := lens.Focus(items, lens.Window[E](p.bounds))
	p.Sequence = editor.NewSequence(window, spec).WithRole("paginator")
	p.cancel = append(p.cancel, p.page.Observe(p.pageChanged))
	return p
}

func (p *Paginator[R, E]) bounds(int) (lo, hi int) {
	lo = p.page.Get() * p.cfg.PageSize
	return lo, lo + p.cfg.PageSize
}

func (p *Paginator[R, E]) count() int {
	items, err := p.items.Get()
	if err != nil {
		return 0
	}
	return len(items)
}

// PageCount returns the number of pages.
func (p *Paginator[R, E]) PageCount() int {
	n := p.count()
	if n == 0 {
		if p.cfg.Empty == OnePage {
			return 1
		}
		return 0
	}
	return (n + p.cfg.PageSize - 1) / p.cfg.PageSize
}

// PageSize returns the number of items per page.
func (p *Paginator[R, E]) PageSize() int { return p.cfg.PageSize }

// Page returns the index of the current page.
func (p *Paginator[R, E]) Page() int { return p.page.Get() }

// PageCell returns the cell holding the index of the current page.
func (p *Paginator[R, E]) PageCell() *cell.Cell[int] { return p.page }

// Items returns the var of all items.
func (p *Paginator[R, E]) Items() lens.Var[R, []E] { return p.items }

func (p *Paginator[R, E]) clamp(page int) int {
	return max(0, min(page, p.PageCount()-1))
}

func (p *Paginator[R, E]) clampPage() {
	if page, clamped := p.page.Get(), p.clamp(p.page.Get()); page != clamped {
		logger.Debugw("page re-clamped", "path", p.items.Path(), "from", page, "to", clamped)
		if err := p.page.Set(clamped); err != nil {
			logger.Warnw("failed to re-clamp page", "path", p.items.Path(), "err", err)
		}
	}
}

func (p *Paginator[R, E]) pageChanged(ch cell.Change[int]) {
	logger.Debugw("page changed", "path", p.items.Path(), "page", ch.New)
	if p.keyed {
		p.Refresh()
	} else {
		// Positional identities on the new page have nothing to do with
		// those on the old one.
		p.Rebuild()
	}
}

// GoTo moves to the given page, clamped to the existing pages. It reports
// whether the page changed.
func (p *Paginator[R, E]) GoTo(page int) (bool, error) {
	page = p.clamp(page)
	if page == p.page.Get() {
		return false, nil
	}
	if err := p.page.Set(page); err != nil {
		return false, err
	}
	return true, nil
}

// Pages returns a cursor over the pages of items, starting before the first
// page.
func (p *Paginator[R, E]) Pages() paginate.Paginator[[]E] {
	items, _ := p.items.Get()
	return paginate.Chunks(items, p.cfg.PageSize)
}

func (p *Paginator[R, E]) Intent(ev editor.Event) editor.Result {
	var target int
	switch ev := ev.(type) {
	case GoTo:
		target = ev.Page
	case Next:
		target = p.Page() + 1
	case Prev:
		target = p.Page() - 1
	case First:
		target = 0
	case Last:
		target = p.PageCount() - 1
	default:
		return p.Sequence.Intent(ev)
	}
	changed, err := p.GoTo(target)
	switch {
	case err != nil:
		return editor.Result{Status: editor.Classify(err), Err: err}
	case changed:
		return editor.Result{Status: editor.Applied}
	default:
		return editor.Result{Status: editor.Unused}
	}
}

func (p *Paginator[R, E]) Present() editor.Node {
	n := p.Sequence.Present()
	n.Path = p.items.Path()
	n.Attrs = map[string]any{
		"page":      p.Page(),
		"pages":     p.PageCount(),
		"page-size": p.cfg.PageSize,
		"items":     p.count(),
	}
	return n
}

func (p *Paginator[R, E]) Close() {
	for _, cancel := range p.cancel {
		cancel()
	}
	p.Sequence.Close()
	p.page.Close()
}
