// Package session plays back a documentation page load: fragments run one
// after another and the index consumer is installed at a chosen point in
// between. The report tells which deliveries reached the index and which
// were lost or left pending.
package session

import (
	"github.com/arthur-debert/implx/pkg/fragment"
	"github.com/arthur-debert/implx/pkg/handoff"
	"github.com/arthur-debert/implx/pkg/index"
	"github.com/arthur-debert/implx/pkg/logging"
	"github.com/arthur-debert/implx/pkg/types"
	"github.com/rs/zerolog"
)

// Never disables consumer installation
const Never = -1

// Options controls a playback
type Options struct {
	// Mode is the handoff parking mode
	Mode handoff.Mode
	// InstallAfter is how many fragments run before the consumer is
	// installed. 0 installs first; Never (or any negative value) never
	// installs; values past the last fragment install after all of them.
	InstallAfter int
	// NoDrain installs the consumer without forwarding pending deliveries
	NoDrain bool
	// SkipLibrary is passed to the index, see index.WithSkipLibrary
	SkipLibrary string
	// Observers are attached to the handoff in addition to the report
	Observers []handoff.Observer
	Logger    *zerolog.Logger
}

// Report summarizes a playback
type Report struct {
	Fragments   int
	InstalledAt int
	Delivered   int
	Parked      int
	Overwritten int
	Drained     int
	// Lost lists traits whose parked delivery a later producer replaced
	Lost []types.TraitPath
	// Stranded lists traits still pending when the playback ended
	Stranded []types.TraitPath
}

// Result is the outcome of Run
type Result struct {
	Index  *index.Index
	Report Report
}

// Run executes frags in order against a fresh handoff and index
func Run(frags []*fragment.Fragment, opts Options) (*Result, error) {
	logger := logging.GetLogger("session")
	handoffLogger := logging.GetLogger("handoff")
	indexLogger := logging.GetLogger("index")
	if opts.Logger != nil {
		logger = *opts.Logger
		handoffLogger = logger.With().Str("component", "handoff").Logger()
		indexLogger = logger.With().Str("component", "index").Logger()
	}
	done := logging.LogOperationStart(logger, "session.run")
	defer done()

	rep := &reportObserver{}
	hopts := []handoff.Option{
		handoff.WithMode(opts.Mode),
		handoff.WithLogger(handoffLogger),
		handoff.WithObserver(rep),
	}
	for _, o := range opts.Observers {
		hopts = append(hopts, handoff.WithObserver(o))
	}
	h := handoff.New(hopts...)
	ix := index.New(index.WithSkipLibrary(opts.SkipLibrary), index.WithLogger(indexLogger))

	result := &Result{Index: ix, Report: Report{Fragments: len(frags), InstalledAt: Never}}

	install := func(at int) error {
		if opts.NoDrain {
			if err := h.Install(ix); err != nil {
				return err
			}
		} else if _, err := h.InstallAndDrain(ix); err != nil {
			return err
		}
		result.Report.InstalledAt = at
		logger.Info().Int("after", at).Bool("drain", !opts.NoDrain).Msg("Index consumer installed")
		return nil
	}

	for i, f := range frags {
		if opts.InstallAfter == i {
			if err := install(i); err != nil {
				return nil, err
			}
		}
		f.Run(h)
	}
	if opts.InstallAfter >= len(frags) {
		if err := install(len(frags)); err != nil {
			return nil, err
		}
	}

	for _, d := range h.Pending() {
		result.Report.Stranded = append(result.Report.Stranded, d.Trait)
	}
	result.Report.Delivered = rep.delivered
	result.Report.Parked = rep.parked
	result.Report.Overwritten = len(rep.lost)
	result.Report.Drained = rep.drained
	result.Report.Lost = rep.lost

	logger.Debug().
		Int("fragments", len(frags)).
		Int("delivered", rep.delivered).
		Int("lost", len(rep.lost)).
		Int("stranded", len(result.Report.Stranded)).
		Msg("Session finished")
	return result, nil
}

type reportObserver struct {
	delivered, parked, drained int
	lost                       []types.TraitPath
}

func (r *reportObserver) Delivered(types.Delivery) { r.delivered++ }
func (r *reportObserver) Parked(types.Delivery)    { r.parked++ }
func (r *reportObserver) Overwritten(d types.Delivery) {
	r.lost = append(r.lost, d.Trait)
}
func (r *reportObserver) Drained(n int) { r.drained += n }
