// Package refdata adapts flat reference datasets to the hierarchy engine and
// turns the engine's output back into persistable records.
package refdata

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/chartseed/internal/accounts"
	"github.com/cleared-dev/chartseed/internal/code"
	"github.com/cleared-dev/chartseed/internal/model"
)

// Dataset file names.
const (
	BalanceSheetsFile    = "balance-sheets.yaml"
	IncomeStatementsFile = "income-statements.yaml"
	ComputationsFile     = "computations.yaml"
	JournalsFile         = "journals.yaml"
	RecordsFile          = "records.yaml"
)

const dateFormat = "2006-01-02"

//go:embed defaults/*.yaml
var defaultsFS embed.FS

// BalanceSheetLine is a balance-sheet line as declared in reference data.
type BalanceSheetLine struct {
	Side         model.Side `yaml:"side"`
	Number       string     `yaml:"number"`
	Label        string     `yaml:"label"`
	NumberParent string     `yaml:"number_parent,omitempty"`
	Accounts     []string   `yaml:"accounts,omitempty,flow"`
}

// IncomeStatementLine is an income-statement line as declared in reference data.
type IncomeStatementLine struct {
	Number       string   `yaml:"number"`
	Label        string   `yaml:"label"`
	NumberParent string   `yaml:"number_parent,omitempty"`
	Accounts     []string `yaml:"accounts,omitempty,flow"`
}

// ComputationLine is one signed income-statement reference of a computation.
type ComputationLine struct {
	Number    string          `yaml:"number"`
	Operation model.Operation `yaml:"operation"`
}

// ComputationDef is a computation as declared in reference data.
type ComputationDef struct {
	Number           string            `yaml:"number"`
	Label            string            `yaml:"label"`
	IncomeStatements []ComputationLine `yaml:"income_statements"`
}

// JournalDef is a journal as declared in reference data.
type JournalDef struct {
	Code  string `yaml:"code"`
	Label string `yaml:"label"`
}

// RecordDef is a historical record with its rows.
type RecordDef struct {
	Label   string      `yaml:"label"`
	Date    string      `yaml:"date"` // YYYY-MM-DD
	Journal string      `yaml:"journal,omitempty"`
	Rows    []RecordRow `yaml:"rows"`
}

// RecordRow is one line of a historical record. Amounts are decimal strings.
type RecordRow struct {
	AccountNumber string `yaml:"account_number"`
	Label         string `yaml:"label"`
	Debit         string `yaml:"debit"`
	Credit        string `yaml:"credit"`
}

// Snapshot is an immutable, fully parsed reference dataset.
type Snapshot struct {
	Accounts         []model.Account
	BalanceSheets    []BalanceSheetLine
	IncomeStatements []IncomeStatementLine
	Computations     []ComputationDef
	Journals         []JournalDef
	Records          []RecordDef
}

// Default returns the built-in dataset.
func Default() (*Snapshot, error) {
	sub, err := fs.Sub(defaultsFS, "defaults")
	if err != nil {
		return nil, fmt.Errorf("opening built-in dataset: %w", err)
	}
	s := &Snapshot{Accounts: accounts.DefaultChart()}
	if err := s.readStatements(sub); err != nil {
		return nil, err
	}
	if err := s.Check(); err != nil {
		return nil, fmt.Errorf("checking built-in dataset: %w", err)
	}
	return s, nil
}

// Load reads a dataset directory.
func Load(dir string) (*Snapshot, error) {
	return LoadFS(os.DirFS(dir))
}

// LoadFS reads a dataset from fsys. accounts.csv and the three statement
// files are required; journals and records are optional.
func LoadFS(fsys fs.FS) (*Snapshot, error) {
	f, err := fsys.Open(accounts.FileName)
	if err != nil {
		return nil, fmt.Errorf("opening chart of accounts: %w", err)
	}
	accts, err := accounts.ReadAccounts(f)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("reading chart of accounts: %w", err)
	}

	s := &Snapshot{Accounts: accts}
	if err := s.readStatements(fsys); err != nil {
		return nil, err
	}
	if err := s.Check(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Snapshot) readStatements(fsys fs.FS) error {
	if err := readYAML(fsys, BalanceSheetsFile, &s.BalanceSheets, false); err != nil {
		return err
	}
	if err := readYAML(fsys, IncomeStatementsFile, &s.IncomeStatements, false); err != nil {
		return err
	}
	if err := readYAML(fsys, ComputationsFile, &s.Computations, false); err != nil {
		return err
	}
	if err := readYAML(fsys, JournalsFile, &s.Journals, true); err != nil {
		return err
	}
	return readYAML(fsys, RecordsFile, &s.Records, true)
}

func readYAML(fsys fs.FS, name string, out any, optional bool) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	return nil
}

// Check rejects malformed input: bad codes, sides, operations, dates or
// amounts. Data-quality gaps such as dangling references are not errors;
// they surface as warnings later in the run.
func (s *Snapshot) Check() error {
	var errs []error
	for i, a := range s.Accounts {
		if !code.Valid(a.Number) {
			errs = append(errs, fmt.Errorf("account %d: invalid number %q", i+1, a.Number))
		}
	}
	for i, l := range s.BalanceSheets {
		if _, err := model.ParseSide(string(l.Side)); err != nil {
			errs = append(errs, fmt.Errorf("balance sheet line %d: %w", i+1, err))
		}
		errs = append(errs, checkLine("balance sheet", i, l.Number, l.NumberParent, l.Accounts)...)
	}
	for i, l := range s.IncomeStatements {
		errs = append(errs, checkLine("income statement", i, l.Number, l.NumberParent, l.Accounts)...)
	}
	for i, c := range s.Computations {
		if c.Number == "" {
			errs = append(errs, fmt.Errorf("computation %d: missing number", i+1))
		}
		for _, ref := range c.IncomeStatements {
			if _, err := model.ParseOperation(string(ref.Operation)); err != nil {
				errs = append(errs, fmt.Errorf("computation %s: %w", c.Number, err))
			}
		}
	}
	for i, r := range s.Records {
		if _, err := time.Parse(dateFormat, r.Date); err != nil {
			errs = append(errs, fmt.Errorf("record %d: invalid date %q", i+1, r.Date))
		}
		for j, row := range r.Rows {
			if _, _, err := row.amounts(); err != nil {
				errs = append(errs, fmt.Errorf("record %d row %d: %w", i+1, j+1, err))
			}
		}
	}
	return errors.Join(errs...)
}

func checkLine(kind string, i int, number, parent string, accts []string) []error {
	var errs []error
	if !code.Valid(number) {
		errs = append(errs, fmt.Errorf("%s line %d: invalid number %q", kind, i+1, number))
	}
	if parent != "" && !code.Valid(parent) {
		errs = append(errs, fmt.Errorf("%s line %s: invalid parent number %q", kind, number, parent))
	}
	for _, a := range accts {
		if !code.Valid(a) {
			errs = append(errs, fmt.Errorf("%s line %s: invalid account number %q", kind, number, a))
		}
	}
	return errs
}

func (r RecordRow) amounts() (debit, credit decimal.Decimal, err error) {
	debit, err = parseAmount(r.Debit)
	if err != nil {
		return debit, credit, fmt.Errorf("parsing debit %q: %w", r.Debit, err)
	}
	credit, err = parseAmount(r.Credit)
	if err != nil {
		return debit, credit, fmt.Errorf("parsing credit %q: %w", r.Credit, err)
	}
	return debit, credit, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

// WriteDir exports the snapshot as a dataset directory readable by Load.
func WriteDir(dir string, s *Snapshot) error {
	if err := accounts.NewService(s.Accounts).Save(dir); err != nil {
		return err
	}
	files := []struct {
		name string
		v    any
	}{
		{BalanceSheetsFile, s.BalanceSheets},
		{IncomeStatementsFile, s.IncomeStatements},
		{ComputationsFile, s.Computations},
		{JournalsFile, s.Journals},
		{RecordsFile, s.Records},
	}
	for _, f := range files {
		data, err := yaml.Marshal(f.v)
		if err != nil {
			return fmt.Errorf("marshaling %s: %w", f.name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, f.name), data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", f.name, err)
		}
	}
	return nil
}
