package refdata

import (
	"fmt"
	"time"

	"github.com/cleared-dev/chartseed/internal/accounts"
	"github.com/cleared-dev/chartseed/internal/code"
	"github.com/cleared-dev/chartseed/internal/computation"
	"github.com/cleared-dev/chartseed/internal/hierarchy"
	"github.com/cleared-dev/chartseed/internal/id"
	"github.com/cleared-dev/chartseed/internal/model"
)

// Forests holds the three hierarchies built from one snapshot. Node i of
// each forest corresponds to entry i of the matching snapshot collection.
type Forests struct {
	Accounts         *hierarchy.Forest
	BalanceSheets    *hierarchy.Forest
	IncomeStatements *hierarchy.Forest
}

// EmitOptions controls record emission.
type EmitOptions struct {
	IDs          id.Generator
	InferParents bool // when false, ParentID is left empty on every record
}

// Emit converts a snapshot and the engine's output into persistable records.
// Record rows referencing unknown accounts are dropped with a warning.
func Emit(s *Snapshot, f Forests, bindings []computation.Binding, opts EmitOptions) (model.Batch, []model.Warning, error) {
	gen := opts.IDs
	if gen == nil {
		gen = id.UUID{}
	}

	var batch model.Batch
	var warnings []model.Warning

	journalIDs := make(map[string]string, len(s.Journals))
	for _, j := range s.Journals {
		jid := gen.NewID()
		journalIDs[j.Code] = jid
		batch.Journals = append(batch.Journals, model.Journal{ID: jid, Code: j.Code, Label: j.Label})
	}

	accountIDs := newIDs(gen, f.Accounts.Len())
	bsIDs := newIDs(gen, f.BalanceSheets.Len())
	isIDs := newIDs(gen, f.IncomeStatements.Len())

	for i := range f.BalanceSheets.Len() {
		n := f.BalanceSheets.Node(hierarchy.NodeID(i))
		batch.BalanceSheets = append(batch.BalanceSheets, model.BalanceSheet{
			ID:       bsIDs[i],
			ParentID: parentID(f.BalanceSheets, i, bsIDs, opts.InferParents),
			Side:     model.Side(n.Scope),
			Number:   n.Code,
			Label:    n.Label,
		})
	}

	for i := range f.IncomeStatements.Len() {
		n := f.IncomeStatements.Node(hierarchy.NodeID(i))
		batch.IncomeStatements = append(batch.IncomeStatements, model.IncomeStatement{
			ID:       isIDs[i],
			ParentID: parentID(f.IncomeStatements, i, isIDs, opts.InferParents),
			Number:   n.Code,
			Label:    n.Label,
		})
	}

	for i, a := range s.Accounts {
		rec := a
		rec.ID = accountIDs[i]
		rec.ParentID = parentID(f.Accounts, i, accountIDs, opts.InferParents)
		if b := f.Accounts.Node(hierarchy.NodeID(i)).Bucket; b != nil {
			switch b.Statement {
			case code.StatementBalanceSheet:
				if line, ok := f.BalanceSheets.LookupScoped(b.Code, b.Scope); ok {
					rec.BalanceSheetID = bsIDs[line]
				}
			case code.StatementIncomeStatement:
				if line, ok := f.IncomeStatements.LookupScoped(b.Code, b.Scope); ok {
					rec.IncomeStatementID = isIDs[line]
				}
			}
		}
		batch.Accounts = append(batch.Accounts, rec)
	}

	for _, b := range bindings {
		cid := gen.NewID()
		batch.Computations = append(batch.Computations, model.Computation{ID: cid, Number: b.Code, Label: b.Label})
		for pos, t := range b.Terms {
			batch.ComputationIncomeStatements = append(batch.ComputationIncomeStatements, model.ComputationIncomeStatement{
				ID:                gen.NewID(),
				ComputationID:     cid,
				IncomeStatementID: isIDs[t.Node],
				Operation:         t.Op,
				Position:          pos,
			})
		}
	}

	lookup := accounts.NewService(batch.Accounts)
	for _, r := range s.Records {
		date, err := time.Parse(dateFormat, r.Date)
		if err != nil {
			return model.Batch{}, nil, fmt.Errorf("parsing date of record %q: %w", r.Label, err)
		}
		rec := model.Record{ID: gen.NewID(), Label: r.Label, Date: date}
		if r.Journal != "" {
			jid, ok := journalIDs[r.Journal]
			if !ok {
				warnings = append(warnings, model.Warning{
					Kind:       model.WarningUnknownJournal,
					Collection: CollectionRecords,
					Code:       r.Label,
					Ref:        r.Journal,
					Message:    fmt.Sprintf("record %q references unknown journal %s", r.Label, r.Journal),
				})
			}
			rec.JournalID = jid
		}
		batch.Records = append(batch.Records, rec)

		for _, row := range r.Rows {
			acct, ok := lookup.Get(row.AccountNumber)
			if !ok {
				warnings = append(warnings, model.Warning{
					Kind:       model.WarningUnknownAccount,
					Collection: CollectionRecords,
					Code:       r.Label,
					Ref:        row.AccountNumber,
					Message:    fmt.Sprintf("record %q row %q references unknown account %s", r.Label, row.Label, row.AccountNumber),
				})
				continue
			}
			debit, credit, err := row.amounts()
			if err != nil {
				return model.Batch{}, nil, fmt.Errorf("record %q: %w", r.Label, err)
			}
			batch.RecordRows = append(batch.RecordRows, model.RecordRow{
				ID:        gen.NewID(),
				RecordID:  rec.ID,
				AccountID: acct.ID,
				Label:     row.Label,
				Debit:     debit,
				Credit:    credit,
			})
		}
	}

	return batch, warnings, nil
}

func newIDs(gen id.Generator, n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = gen.NewID()
	}
	return ids
}

func parentID(f *hierarchy.Forest, i int, ids []string, infer bool) string {
	if !infer {
		return ""
	}
	p, ok := f.Parent(hierarchy.NodeID(i))
	if !ok {
		return ""
	}
	return ids[p]
}
