package accounts

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cleared-dev/chartseed/internal/model"
)

// FileName is the chart of accounts file inside a dataset directory.
const FileName = "accounts.csv"

// Service provides in-memory lookup over the chart of accounts.
type Service struct {
	accounts []model.Account
	byNumber map[string]model.Account
}

// NewService creates a Service from a slice of accounts. When numbers repeat,
// the first account wins.
func NewService(accounts []model.Account) *Service {
	byNumber := make(map[string]model.Account, len(accounts))
	for _, a := range accounts {
		if _, ok := byNumber[a.Number]; !ok {
			byNumber[a.Number] = a
		}
	}
	return &Service{accounts: accounts, byNumber: byNumber}
}

// Get returns an account by number.
func (s *Service) Get(number string) (model.Account, bool) {
	a, ok := s.byNumber[number]
	return a, ok
}

// Selectable returns the accounts that may be used on record rows.
func (s *Service) Selectable() []model.Account {
	var result []model.Account
	for _, a := range s.accounts {
		if a.IsSelectable && !a.IsClass {
			result = append(result, a)
		}
	}
	return result
}

// Save writes the chart of accounts to <dir>/accounts.csv.
func (s *Service) Save(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating dataset dir: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, FileName))
	if err != nil {
		return fmt.Errorf("creating chart of accounts file: %w", err)
	}
	defer f.Close()

	if err := WriteAccounts(f, s.accounts); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}
	return nil
}
