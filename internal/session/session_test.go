package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rateio-app/rateio/constants"
	"github.com/rateio-app/rateio/internal/entity"
	"github.com/rateio-app/rateio/internal/projection"
)

func testRecord() entity.ExtractedRecord {
	return entity.ExtractedRecord{
		GrossClaimantCredit: 10000,
		Discounts: []entity.Discount{
			{ID: "d1", Description: constants.LabelInsuredContribution, Amount: 1000},
		},
		Debits: []entity.Debit{
			{ID: "b1", Description: "Custas Processuais", Amount: 300},
			{ID: "b2", Description: "Honorários de Sucumbência - Dr. João", Amount: 3000},
		},
	}
}

func TestSessionLifecycle(t *testing.T) {
	st := NewStore()
	s := st.Create()

	got, ok := st.Get(s.ID())
	require.True(t, ok)
	assert.Same(t, s, got)

	st.Delete(s.ID())
	_, ok = st.Get(s.ID())
	assert.False(t, ok)
}

func TestNewSessionHasOneZeroDeposit(t *testing.T) {
	s := NewStore().Create()

	snap := s.Snapshot()
	require.Len(t, snap.Deposits, 1)
	assert.Equal(t, 0.0, snap.Deposits[0].Amount)
	assert.Empty(t, snap.Items)
}

func TestDeleteLastDepositZeroesIt(t *testing.T) {
	s := NewStore().Create()
	snap := s.Snapshot()
	depID := snap.Deposits[0].ID

	require.NoError(t, s.UpdateDeposit(depID, 5000))
	require.NoError(t, s.DeleteDeposit(depID))

	snap = s.Snapshot()
	require.Len(t, snap.Deposits, 1)
	assert.Equal(t, depID, snap.Deposits[0].ID)
	assert.Equal(t, 0.0, snap.Deposits[0].Amount)
}

func TestDeleteDepositKeepsOthers(t *testing.T) {
	s := NewStore().Create()
	first := s.Snapshot().Deposits[0].ID
	second := s.AddDeposit()

	require.NoError(t, s.DeleteDeposit(first))

	snap := s.Snapshot()
	require.Len(t, snap.Deposits, 1)
	assert.Equal(t, second, snap.Deposits[0].ID)
}

func TestSetRecordDerivesItemsAndAllocation(t *testing.T) {
	s := NewStore().Create()
	s.SetRecord(testRecord())

	depID := s.Snapshot().Deposits[0].ID
	require.NoError(t, s.UpdateDeposit(depID, 6650)) // half of the 13.300 total

	snap := s.Snapshot()
	// principal 9.000 + custas 300 + honorários 3.000 + INSS segurado 1.000
	assert.InDelta(t, 13300, snap.Totals.SelectedDebt, 1e-9)
	assert.InDelta(t, 6650, snap.Totals.TotalPaid, 1e-9)
	assert.InDelta(t, 4500, snap.Result[constants.PrincipalItemID].Paid, 1e-9)
}

func TestDepositsSurviveNewExtraction(t *testing.T) {
	s := NewStore().Create()
	depID := s.Snapshot().Deposits[0].ID
	require.NoError(t, s.UpdateDeposit(depID, 1234))

	s.SetRecord(testRecord())
	s.SetRecord(testRecord()) // second extraction in the same session

	snap := s.Snapshot()
	require.Len(t, snap.Deposits, 1)
	assert.Equal(t, 1234.0, snap.Deposits[0].Amount)
}

func TestResetRestoresInitialState(t *testing.T) {
	s := NewStore().Create()
	s.SetRecord(testRecord())
	require.NoError(t, s.UpdateDeposit(s.Snapshot().Deposits[0].ID, 99))

	s.Reset()

	snap := s.Snapshot()
	assert.Nil(t, snap.Record)
	require.Len(t, snap.Deposits, 1)
	assert.Equal(t, 0.0, snap.Deposits[0].Amount)
}

func TestOverrideDiscardedByNextRecompute(t *testing.T) {
	s := NewStore().Create()
	s.SetRecord(testRecord())
	depID := s.Snapshot().Deposits[0].ID
	require.NoError(t, s.UpdateDeposit(depID, 6650))

	require.NoError(t, s.OverridePaid("b1", 300))
	assert.Equal(t, 300.0, s.Snapshot().Result["b1"].Paid)

	// any pool change recomputes the full rateio and drops the override
	require.NoError(t, s.UpdateDeposit(depID, 13300))
	assert.InDelta(t, 300.0, s.Snapshot().Result["b1"].Paid, 1e-9) // full coverage now
	require.NoError(t, s.UpdateDeposit(depID, 6650))
	assert.InDelta(t, 150.0, s.Snapshot().Result["b1"].Paid, 1e-9)
}

func TestOverrideClampAndUnknown(t *testing.T) {
	s := NewStore().Create()
	s.SetRecord(testRecord())

	require.NoError(t, s.OverridePaid("b1", 9999))
	snap := s.Snapshot()
	assert.Equal(t, 300.0, snap.Result["b1"].Paid)
	assert.Equal(t, 0.0, snap.Result["b1"].Remaining)

	assert.ErrorIs(t, s.OverridePaid("missing", 10), ErrNotFound)
}

func TestSelectionSurvivesRegeneration(t *testing.T) {
	s := NewStore().Create()
	s.SetRecord(testRecord())

	require.NoError(t, s.SetItemSelection("b1", false))
	require.NoError(t, s.SetItemDescription("b2", "Honorários (ajuste)"))

	// trigger a projection re-run
	s.SetFeeConfig(projection.FeeConfig{Enabled: true, Percent: 30})

	snap := s.Snapshot()
	var b1, b2 *entity.Item
	for i := range snap.Items {
		switch snap.Items[i].ID {
		case "b1":
			b1 = &snap.Items[i]
		case "b2":
			b2 = &snap.Items[i]
		}
	}
	require.NotNil(t, b1)
	require.NotNil(t, b2)
	assert.False(t, b1.Selected)
	assert.Equal(t, "Honorários (ajuste)", b2.Description)
}

func TestFeeShareDefaultsToFeeItems(t *testing.T) {
	s := NewStore().Create()
	s.SetRecord(testRecord())

	snap := s.Snapshot()
	assert.Equal(t, []string{"b2"}, snap.FeeShareIDs)

	// an explicit selection sticks until the item list changes shape
	s.SetFeeShare([]string{}, 2)
	assert.Empty(t, s.Snapshot().FeeShareIDs)

	_, err := s.AddDebit("Honorários para Dra. Ana", 500)
	require.NoError(t, err)
	snap = s.Snapshot()
	assert.Len(t, snap.FeeShareIDs, 2)
}

func TestFeeShareDivision(t *testing.T) {
	s := NewStore().Create()
	s.SetRecord(testRecord())
	require.NoError(t, s.UpdateDeposit(s.Snapshot().Deposits[0].ID, 13300))

	s.SetFeeShare([]string{"b2"}, 2)

	share := s.Snapshot().FeeShare
	assert.InDelta(t, 3000, share.Total, 1e-9)
	assert.InDelta(t, 1500, share.PerBeneficiary, 1e-9)

	s.SetFeeShare([]string{"b2"}, 0) // clamped upward
	assert.Equal(t, 1, s.Snapshot().FeeShare.Beneficiaries)
}

func TestRecordEditsRequireRecord(t *testing.T) {
	s := NewStore().Create()

	assert.ErrorIs(t, s.SetGross(1), ErrNoRecord)
	_, err := s.AddDiscount("x", 1)
	assert.ErrorIs(t, err, ErrNoRecord)
	assert.ErrorIs(t, s.DeleteDebit("b1"), ErrNoRecord)
}

func TestDiscountAndDebitEdits(t *testing.T) {
	s := NewStore().Create()
	s.SetRecord(testRecord())

	id, err := s.AddDiscount("Irpf", 250)
	require.NoError(t, err)
	require.NoError(t, s.UpdateDiscount(id, "Irpf S/ Rra", 400))
	assert.ErrorIs(t, s.UpdateDiscount("nope", "x", 1), ErrNotFound)

	snap := s.Snapshot()
	// principal shrinks by the added discount: 10.000 - 1.400 = 8.600
	assert.InDelta(t, 8600, snap.Result[constants.PrincipalItemID].Remaining, 1e-9)

	require.NoError(t, s.DeleteDiscount(id))
	snap = s.Snapshot()
	assert.InDelta(t, 9000, snap.Result[constants.PrincipalItemID].Remaining, 1e-9)
}

func itemDescription(t *testing.T, snap Snapshot, id string) string {
	t.Helper()
	for _, it := range snap.Items {
		if it.ID == id {
			return it.Description
		}
	}
	t.Fatalf("item %s not in snapshot", id)
	return ""
}

func TestRecordRenameSurfacesInItems(t *testing.T) {
	s := NewStore().Create()
	s.SetRecord(testRecord())

	require.NoError(t, s.UpdateDiscount("d1", "Contribuição Social Retida", 1000))
	snap := s.Snapshot()
	assert.Equal(t, "Contribuição Social Retida", itemDescription(t, snap, "d1"))

	require.NoError(t, s.UpdateDebit("b1", "Custas Finais", 300))
	snap = s.Snapshot()
	assert.Equal(t, "Custas Finais", itemDescription(t, snap, "b1"))

	// a later item-level edit still wins over the carried record name
	require.NoError(t, s.SetItemDescription("b1", "Custas (Quitadas)"))
	require.NoError(t, s.SetGross(12000))
	snap = s.Snapshot()
	assert.Equal(t, "Custas (Quitadas)", itemDescription(t, snap, "b1"))
}

func TestSweepDropsIdleSessions(t *testing.T) {
	st := NewStore()
	s := st.Create()
	s.mu.Lock()
	s.updatedAt = time.Now().Add(-2 * time.Hour)
	s.mu.Unlock()
	st.Create()

	removed := st.Sweep(time.Hour)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, st.Len())
}
