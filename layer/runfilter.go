package layer

import (
	"errors"
	"fmt"

	"github.com/gopix/pix"
	"github.com/gopix/pix/filter"
	"github.com/gopix/pix/notify"
)

// ErrFilterRunning is returned when an asynchronous filter run is requested
// while another run holds the drawable's filter gate.
var ErrFilterRunning = errors.New("layer: filter already running on drawable")

// ErrorPolicy decides what happens with a failed filter run after the
// failure has been enriched with diagnostic context. The policy is injected
// per composition.
type ErrorPolicy interface {
	HandleFilterFailure(err error, sink notify.Sink) error
}

// ReportPolicy forwards failures to the notification sink and swallows
// them, keeping the session alive. This is the interactive default.
type ReportPolicy struct{}

// HandleFilterFailure implements ErrorPolicy.
func (ReportPolicy) HandleFilterFailure(err error, sink notify.Sink) error {
	sink.Error(err)
	return nil
}

// RethrowPolicy propagates failures to the caller. Batch runs and tests
// use it to fail fast.
type RethrowPolicy struct{}

// HandleFilterFailure implements ErrorPolicy.
func (RethrowPolicy) HandleFilterFailure(err error, _ notify.Sink) error {
	return err
}

// RunFilter executes a filter against a drawable: it reads the filter
// source image, transforms it, and routes the result by context, either
// into the transient preview or as a committed, history-recorded change.
//
// The source is read but never mutated; the result is fully computed
// before any committed state changes, so a failed run leaves the drawable
// exactly as it was. Resource exhaustion inside the filter is not an
// error: it is reported through the sink's low-memory channel and the run
// is abandoned.
func RunFilter(d Drawable, f filter.Filter, ctx FilterContext) error {
	comp := d.Layer().Comp()

	src := d.FilterSourceImage()
	dest, err := f.Transform(src)
	if errors.Is(err, pix.ErrBufferTooLarge) {
		pix.Logger().Warn("filter ran out of buffer budget",
			"filter", f.Name(), "drawable", d.Name())
		comp.Sink().LowMemory(f.Name())
		return nil
	}
	if err == nil && dest == nil {
		err = errors.New("filter returned no image")
	}
	if err != nil {
		return comp.Policy().HandleFilterFailure(filterFailure(d, f, err), comp.Sink())
	}

	if ctx.IsPreview() {
		d.ChangePreviewImage(dest, f.Name(), ctx)
	} else {
		d.CommitFilter(dest, f.Name())
	}
	return nil
}

// PreviewingFilterSettingsChanged re-runs a filter in preview context after
// its settings changed. Repeated calls are idempotent with respect to
// committed state and never touch history.
func PreviewingFilterSettingsChanged(d Drawable, f filter.Filter) error {
	return RunFilter(d, f, Previewing)
}

// RunFilterAsync runs the filter on its own goroutine, serialized per
// drawable through the filter gate. If another run is already in progress
// it returns ErrFilterRunning without starting. done, if non-nil, receives
// the run's outcome.
func RunFilterAsync(d Drawable, f filter.Filter, ctx FilterContext, done func(error)) error {
	if !d.acquireFilterGate() {
		return ErrFilterRunning
	}
	go func() {
		err := func() error {
			defer d.releaseFilterGate()
			return RunFilter(d, f, ctx)
		}()
		if done != nil {
			done(err)
		}
	}()
	return nil
}

// filterFailure wraps a filter error with everything needed to diagnose it
// without a debugger attached.
func filterFailure(d Drawable, f filter.Filter, err error) error {
	l := d.Layer()
	hasMask := false
	if hm, ok := l.(interface{ HasMask() bool }); ok {
		hasMask = hm.HasMask()
	}
	return fmt.Errorf("filter %q failed on %q (comp %q, layer kind %s, mask %t, mask editing %t, params %v): %w",
		f.Name(), d.Name(), l.Comp().Name(), l.TypeString(),
		hasMask, d.IsMaskEditing(), f.Params(), err)
}
