// Package seed runs the reference-data engine once: build the three
// hierarchies, check coverage, bind computations, emit records and hand them
// to a writer as a single unit.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/cleared-dev/chartseed/internal/computation"
	"github.com/cleared-dev/chartseed/internal/coverage"
	"github.com/cleared-dev/chartseed/internal/hierarchy"
	"github.com/cleared-dev/chartseed/internal/id"
	"github.com/cleared-dev/chartseed/internal/journal"
	"github.com/cleared-dev/chartseed/internal/model"
	"github.com/cleared-dev/chartseed/internal/refdata"
)

// ErrPersistence wraps any failure of the batch writer. Nothing derived
// from the run has been committed when it is returned.
var ErrPersistence = errors.New("persisting reference data")

// Writer persists a batch atomically.
type Writer interface {
	WriteBatch(ctx context.Context, batch model.Batch) error
}

// Options configures a run.
type Options struct {
	InferParents bool
	IDs          id.Generator // nil = random UUIDs
	Logger       *slog.Logger // nil = slog.Default()
}

// Result is the in-memory output of a run.
type Result struct {
	Forests  refdata.Forests
	Bindings []computation.Binding
	Batch    model.Batch
	Warnings []model.Warning
}

// Build computes everything derived from the snapshot without persisting it.
// Warnings are ordered hierarchy, coverage, computation, emission, then
// record balance.
func Build(ctx context.Context, snap *refdata.Snapshot, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var (
		res                      Result
		acctWarn, bsWarn, isWarn []model.Warning
	)

	// The snapshot is read-only, so the three forests can be built side by side.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		nodes := refdata.AccountNodes(snap, refdata.Attach(snap))
		res.Forests.Accounts, acctWarn = hierarchy.Build(refdata.CollectionAccounts, nodes, hierarchy.Structural)
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		res.Forests.BalanceSheets, bsWarn = hierarchy.Build(refdata.CollectionBalanceSheets, refdata.BalanceSheetNodes(snap),
			hierarchy.Explicit, hierarchy.WithMatch(hierarchy.SameScope))
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		res.Forests.IncomeStatements, isWarn = hierarchy.Build(refdata.CollectionIncomeStatements, refdata.IncomeStatementNodes(snap),
			hierarchy.Explicit)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("building hierarchies: %w", err)
	}
	res.Warnings = append(res.Warnings, acctWarn...)
	res.Warnings = append(res.Warnings, bsWarn...)
	res.Warnings = append(res.Warnings, isWarn...)

	logger.Debug("hierarchies built",
		"accounts", res.Forests.Accounts.Len(),
		"balance_sheets", res.Forests.BalanceSheets.Len(),
		"income_statements", res.Forests.IncomeStatements.Len())

	res.Warnings = append(res.Warnings, coverage.Validate(res.Forests.Accounts, res.Forests.BalanceSheets, res.Forests.IncomeStatements)...)

	bindings, bindWarn := computation.Bind(refdata.Definitions(snap), res.Forests.IncomeStatements)
	res.Bindings = bindings
	res.Warnings = append(res.Warnings, bindWarn...)

	batch, emitWarn, err := refdata.Emit(snap, res.Forests, bindings, refdata.EmitOptions{
		IDs:          opts.IDs,
		InferParents: opts.InferParents,
	})
	if err != nil {
		return nil, fmt.Errorf("emitting records: %w", err)
	}
	res.Batch = batch
	res.Warnings = append(res.Warnings, emitWarn...)
	res.Warnings = append(res.Warnings, journal.ValidateRecords(batch.Records, batch.RecordRows)...)

	LogWarnings(logger, res.Warnings)
	return &res, nil
}

// Run builds the result and writes its batch in one call to w. A writer
// failure is reported as ErrPersistence and no result is returned.
func Run(ctx context.Context, snap *refdata.Snapshot, w Writer, opts Options) (*Result, error) {
	res, err := Build(ctx, snap, opts)
	if err != nil {
		return nil, err
	}
	if err := w.WriteBatch(ctx, res.Batch); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return res, nil
}

// LogWarnings logs each warning at warn level with structured attributes.
func LogWarnings(logger *slog.Logger, warnings []model.Warning) {
	for _, w := range warnings {
		logger.Warn(w.Message,
			"kind", string(w.Kind),
			"collection", w.Collection,
			"code", w.Code,
			"ref", w.Ref)
	}
}
