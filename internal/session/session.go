// Package session owns the mutable simulation state for one user session and
// re-derives everything downstream of it. All derived state recomputes in a
// fixed order after every change: classification happened once upstream, so
// each mutation here re-runs projection, then allocation.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rateio-app/rateio/internal/allocation"
	"github.com/rateio-app/rateio/internal/entity"
	"github.com/rateio-app/rateio/internal/projection"
)

var (
	// ErrNoRecord is returned by record edits before any extraction.
	ErrNoRecord = errors.New("session: no extracted record")
	// ErrNotFound is returned when an edit targets a missing id.
	ErrNotFound = errors.New("session: not found")
)

// Session is the application state behind one simulation. All methods are
// safe for concurrent use.
type Session struct {
	mu sync.Mutex

	id        uuid.UUID
	record    *entity.ExtractedRecord
	deposits  []entity.Deposit
	fee       projection.FeeConfig
	items     []entity.Item
	result    allocation.Result
	feeShare  []string
	lawyers   int
	hideZero  bool
	itemCount int

	updatedAt time.Time
}

func newSession() *Session {
	s := &Session{
		id:        uuid.New(),
		deposits:  []entity.Deposit{{ID: uuid.NewString(), Amount: 0}},
		fee:       projection.FeeConfig{Percent: 30},
		lawyers:   1,
		hideZero:  true,
		result:    allocation.Result{},
		updatedAt: time.Now(),
	}
	return s
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID { return s.id }

func (s *Session) touch() { s.updatedAt = time.Now() }

// recompute re-derives items and allocation from the current record. The
// previous item list seeds selection/description preservation; a change in
// list shape re-defaults the fee-share selection, since the result table
// gained or lost rows.
func (s *Session) recompute() {
	if s.record == nil {
		s.items = nil
		s.result = allocation.Result{}
		s.feeShare = nil
		s.itemCount = 0
		return
	}
	s.items = projection.Build(*s.record, s.fee, s.items)
	s.result = allocation.Compute(s.items, allocation.TotalDeposits(s.deposits))
	if len(s.items) != s.itemCount {
		s.feeShare = allocation.DefaultFeeShareIDs(s.items)
		s.itemCount = len(s.items)
	}
}

// SetRecord installs a freshly classified record, replacing all derived
// state. Deposits survive: a new extraction within the same session keeps
// the deposit pool the user already typed in.
func (s *Session) SetRecord(rec entity.ExtractedRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record = &rec
	s.fee = projection.DefaultFeeConfig(rec.Discounts)
	s.items = nil
	s.itemCount = 0
	s.recompute()
	s.touch()
}

// ClearRecord drops the extracted record, e.g. after a failed extraction.
func (s *Session) ClearRecord() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record = nil
	s.recompute()
	s.touch()
}

// Reset returns the session to its initial state: no record, one zeroed
// deposit.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record = nil
	s.deposits = []entity.Deposit{{ID: uuid.NewString(), Amount: 0}}
	s.fee = projection.FeeConfig{Percent: 30}
	s.lawyers = 1
	s.hideZero = true
	s.recompute()
	s.touch()
}

// SetGross updates the claimant's gross credit.
func (s *Session) SetGross(v float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.record == nil {
		return ErrNoRecord
	}
	s.record.GrossClaimantCredit = v
	s.recompute()
	s.touch()
	return nil
}

// AddDiscount appends a new, empty-by-default discount and returns its id.
func (s *Session) AddDiscount(desc string, amount float64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.record == nil {
		return "", ErrNoRecord
	}
	d := entity.Discount{ID: uuid.NewString(), Description: desc, Amount: amount}
	s.record.Discounts = append(s.record.Discounts, d)
	s.recompute()
	s.touch()
	return d.ID, nil
}

// syncItemDescription pushes a record-level rename into the projected item
// carrying the same id, so the carryover on the next recompute does not
// resurrect the old name. The lock must be held.
func (s *Session) syncItemDescription(id, desc string) {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Description = desc
			return
		}
	}
}

// UpdateDiscount edits one discount's description and amount.
func (s *Session) UpdateDiscount(id, desc string, amount float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.record == nil {
		return ErrNoRecord
	}
	for i := range s.record.Discounts {
		if s.record.Discounts[i].ID == id {
			s.record.Discounts[i].Description = desc
			s.record.Discounts[i].Amount = amount
			s.syncItemDescription(id, desc)
			s.recompute()
			s.touch()
			return nil
		}
	}
	return ErrNotFound
}

// DeleteDiscount removes one discount.
func (s *Session) DeleteDiscount(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.record == nil {
		return ErrNoRecord
	}
	for i := range s.record.Discounts {
		if s.record.Discounts[i].ID == id {
			s.record.Discounts = append(s.record.Discounts[:i], s.record.Discounts[i+1:]...)
			s.recompute()
			s.touch()
			return nil
		}
	}
	return ErrNotFound
}

// AddDebit appends a respondent debit and returns its id.
func (s *Session) AddDebit(desc string, amount float64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.record == nil {
		return "", ErrNoRecord
	}
	d := entity.Debit{ID: uuid.NewString(), Description: desc, Amount: amount}
	s.record.Debits = append(s.record.Debits, d)
	s.recompute()
	s.touch()
	return d.ID, nil
}

// UpdateDebit edits one debit's description and amount.
func (s *Session) UpdateDebit(id, desc string, amount float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.record == nil {
		return ErrNoRecord
	}
	for i := range s.record.Debits {
		if s.record.Debits[i].ID == id {
			s.record.Debits[i].Description = desc
			s.record.Debits[i].Amount = amount
			s.syncItemDescription(id, desc)
			s.recompute()
			s.touch()
			return nil
		}
	}
	return ErrNotFound
}

// DeleteDebit removes one debit.
func (s *Session) DeleteDebit(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.record == nil {
		return ErrNoRecord
	}
	for i := range s.record.Debits {
		if s.record.Debits[i].ID == id {
			s.record.Debits = append(s.record.Debits[:i], s.record.Debits[i+1:]...)
			s.recompute()
			s.touch()
			return nil
		}
	}
	return ErrNotFound
}

// AddDeposit appends a zeroed deposit entry and returns its id.
func (s *Session) AddDeposit() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := entity.Deposit{ID: uuid.NewString(), Amount: 0}
	s.deposits = append(s.deposits, d)
	s.recompute()
	s.touch()
	return d.ID
}

// UpdateDeposit sets one deposit's amount.
func (s *Session) UpdateDeposit(id string, amount float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.deposits {
		if s.deposits[i].ID == id {
			s.deposits[i].Amount = amount
			s.recompute()
			s.touch()
			return nil
		}
	}
	return ErrNotFound
}

// DeleteDeposit removes one deposit. The list never empties: deleting the
// last remaining entry zeroes it in place instead.
func (s *Session) DeleteDeposit(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.deposits {
		if s.deposits[i].ID != id {
			continue
		}
		if len(s.deposits) > 1 {
			s.deposits = append(s.deposits[:i], s.deposits[i+1:]...)
		} else {
			s.deposits[i].Amount = 0
		}
		s.recompute()
		s.touch()
		return nil
	}
	return ErrNotFound
}

// SetFeeConfig replaces the contractual-fee configuration.
func (s *Session) SetFeeConfig(cfg projection.FeeConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fee = cfg
	s.recompute()
	s.touch()
}

// SetItemSelection toggles one item in or out of the rateio.
func (s *Session) SetItemSelection(itemID string, selected bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == itemID {
			s.items[i].Selected = selected
			s.recompute()
			s.touch()
			return nil
		}
	}
	return ErrNotFound
}

// SetItemDescription renames one item in the result table. The edit
// survives regeneration of the list.
func (s *Session) SetItemDescription(itemID, desc string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == itemID {
			s.items[i].Description = desc
			s.recompute()
			s.touch()
			return nil
		}
	}
	return ErrNotFound
}

// OverridePaid sets one item's paid value directly without recomputing the
// rateio; the next state change discards it.
func (s *Session) OverridePaid(itemID string, paid float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := allocation.Override(s.result, s.items, itemID, paid); err != nil {
		return ErrNotFound
	}
	s.touch()
	return nil
}

// SetFeeShare replaces the fee-sharing selection and beneficiary count.
func (s *Session) SetFeeShare(itemIDs []string, lawyers int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if lawyers < 1 {
		lawyers = 1
	}
	s.feeShare = append([]string(nil), itemIDs...)
	s.lawyers = lawyers
	s.touch()
}

// SetHideZeroPaid toggles the unpaid-items display filter.
func (s *Session) SetHideZeroPaid(hide bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hideZero = hide
	s.touch()
}
