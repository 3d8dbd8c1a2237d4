package usecase_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	commitmentout "focuslock/internal/modules/commitment/adapter/out"
	"focuslock/internal/modules/commitment/domain"
	"focuslock/internal/modules/commitment/dto"
	commitmentin "focuslock/internal/modules/commitment/port/in"
	commitmentservice "focuslock/internal/modules/commitment/service"
	"focuslock/internal/modules/commitment/usecase"
	profileout "focuslock/internal/modules/profile/adapter/out"
	profiledto "focuslock/internal/modules/profile/dto"
	profilein "focuslock/internal/modules/profile/port/in"
	profileservice "focuslock/internal/modules/profile/service"
	profileusecase "focuslock/internal/modules/profile/usecase"
	registryout "focuslock/internal/modules/registry/adapter/out"
	registrydto "focuslock/internal/modules/registry/dto"
	registryin "focuslock/internal/modules/registry/port/in"
	registryservice "focuslock/internal/modules/registry/service"
	registryusecase "focuslock/internal/modules/registry/usecase"
	treasuryout "focuslock/internal/modules/treasury/adapter/out"
	treasuryin "focuslock/internal/modules/treasury/port/in"
	treasuryservice "focuslock/internal/modules/treasury/service"
	treasuryusecase "focuslock/internal/modules/treasury/usecase"
	apperrors "focuslock/internal/platform/errors"
	"focuslock/internal/platform/keys"
	"focuslock/internal/platform/tx"

	_ "modernc.org/sqlite"
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

type harness struct {
	clk        *testClock
	registry   registryin.Usecase
	profile    profilein.Usecase
	treasury   treasuryin.Usecase
	commitment commitmentin.Usecase
}

var openTime = time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)

func newHarness(t *testing.T) *harness {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "focuslock.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	registryStore, err := registryout.NewSQLiteRegistryStore(db)
	if err != nil {
		t.Fatalf("registry store: %v", err)
	}
	profileStore, err := profileout.NewSQLiteProfileStore(db)
	if err != nil {
		t.Fatalf("profile store: %v", err)
	}
	accountStore, err := treasuryout.NewSQLiteAccountStore(db)
	if err != nil {
		t.Fatalf("account store: %v", err)
	}
	commitmentStore, err := commitmentout.NewSQLiteCommitmentStore(db)
	if err != nil {
		t.Fatalf("commitment store: %v", err)
	}

	clk := &testClock{now: openTime}
	mgr := tx.NewSQLManager(db)

	registryUC := registryusecase.NewInteractor(registryservice.NewRegistryService(clk, registryStore), registryStore, mgr)
	profileUC := profileusecase.NewInteractor(profileservice.NewProfileService(clk, profileStore), profileStore, registryUC, mgr)
	treasuryUC := treasuryusecase.NewInteractor(treasuryservice.NewTreasuryService(accountStore), accountStore, mgr)
	commitmentUC := usecase.NewInteractor(commitmentservice.NewCommitmentService(clk, commitmentStore), commitmentStore, treasuryUC, registryUC, profileUC, mgr)

	if _, err := registryUC.Init(context.Background(), registrydto.InitInput{Authority: "admin", AssetID: "FOCUS", RewardRatePercent: 10}); err != nil {
		t.Fatalf("init registry: %v", err)
	}
	if _, err := profileUC.Create(context.Background(), profiledto.CreateInput{Owner: "alice"}); err != nil {
		t.Fatalf("create profile: %v", err)
	}

	return &harness{clk: clk, registry: registryUC, profile: profileUC, treasury: treasuryUC, commitment: commitmentUC}
}

func (h *harness) fund(t *testing.T, owner string, amount uint64) {
	t.Helper()
	if _, err := h.treasury.Fund(context.Background(), owner, amount); err != nil {
		t.Fatalf("fund %s: %v", owner, err)
	}
}

func (h *harness) balance(t *testing.T, address string) uint64 {
	t.Helper()
	out, err := h.treasury.Balance(context.Background(), address)
	if err != nil {
		t.Fatalf("balance %s: %v", address, err)
	}
	return out.Balance
}

func (h *harness) open(t *testing.T, amount uint64, sessionsPerDay, totalDays uint8) dto.CommitmentOutput {
	t.Helper()
	out, err := h.commitment.Open(context.Background(), dto.OpenInput{
		Owner:          "alice",
		CommitmentID:   1,
		Amount:         amount,
		SessionsPerDay: sessionsPerDay,
		TotalDays:      totalDays,
	})
	if err != nil {
		t.Fatalf("open commitment: %v", err)
	}
	return out
}

// completeSessions credits n sessions respecting the daily quota, one day
// at a time starting from the open timestamp.
func (h *harness) completeSessions(t *testing.T, n int, sessionsPerDay int) {
	t.Helper()
	day := 0
	inDay := 0
	for i := 0; i < n; i++ {
		if inDay == sessionsPerDay {
			day++
			inDay = 0
		}
		at := openTime.Add(time.Duration(day)*24*time.Hour + time.Duration(inDay)*time.Hour)
		if _, err := h.commitment.RecordSessionCompletion(context.Background(), dto.SessionCompletionInput{
			Owner:        "alice",
			CommitmentID: 1,
			Now:          at,
		}); err != nil {
			t.Fatalf("record session %d: %v", i+1, err)
		}
		inDay++
	}
}

func TestOpenEscrowsStakeInVault(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.fund(t, "alice", 100_000_000)

	out := h.open(t, 100_000_000, 2, 2)
	if !out.IsActive {
		t.Fatal("opened commitment must be active")
	}
	if got := h.balance(t, "alice"); got != 0 {
		t.Fatalf("owner balance = %d, want 0", got)
	}
	vault := keys.Vault("alice", 1)
	if out.VaultAddress != vault {
		t.Fatalf("vault address = %q, want %q", out.VaultAddress, vault)
	}
	if got := h.balance(t, vault); got != 100_000_000 {
		t.Fatalf("vault balance = %d, want stake", got)
	}
	registry, err := h.registry.Get(context.Background())
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	if registry.TotalValueStaked != 100_000_000 {
		t.Fatalf("total value staked = %d", registry.TotalValueStaked)
	}
	if registry.TotalParticipants != 1 {
		t.Fatalf("total participants = %d", registry.TotalParticipants)
	}
}

func TestOpenWithoutFundsLeavesNothingBehind(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.fund(t, "alice", 50)

	_, err := h.commitment.Open(context.Background(), dto.OpenInput{
		Owner:          "alice",
		CommitmentID:   1,
		Amount:         100,
		SessionsPerDay: 2,
		TotalDays:      2,
	})
	if !errors.Is(err, apperrors.ErrInsufficientFunds) {
		t.Fatalf("expected insufficient funds, got %v", err)
	}
	if _, err := h.commitment.Get(context.Background(), "alice", 1); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("failed open left a commitment: %v", err)
	}
	registry, err := h.registry.Get(context.Background())
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	if registry.TotalValueStaked != 0 {
		t.Fatalf("failed open moved stake: %d", registry.TotalValueStaked)
	}
	if got := h.balance(t, "alice"); got != 50 {
		t.Fatalf("owner balance = %d, want 50", got)
	}
}

func TestOpenRequiresProfile(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.fund(t, "bob", 1000)

	_, err := h.commitment.Open(context.Background(), dto.OpenInput{
		Owner:          "bob",
		CommitmentID:   1,
		Amount:         1000,
		SessionsPerDay: 2,
		TotalDays:      2,
	})
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected missing profile error, got %v", err)
	}
	if got := h.balance(t, "bob"); got != 1000 {
		t.Fatalf("profile-less open moved funds: balance = %d", got)
	}
	if got := h.balance(t, keys.Vault("bob", 1)); got != 0 {
		t.Fatalf("profile-less open escrowed stake: vault = %d", got)
	}
	if _, err := h.commitment.Get(context.Background(), "bob", 1); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("profile-less open left a commitment: %v", err)
	}
}

func TestOpenRejectsDuplicateID(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.fund(t, "alice", 2000)
	h.open(t, 1000, 2, 2)

	_, err := h.commitment.Open(context.Background(), dto.OpenInput{
		Owner:          "alice",
		CommitmentID:   1,
		Amount:         500,
		SessionsPerDay: 1,
		TotalDays:      1,
	})
	if !errors.Is(err, apperrors.ErrDuplicateCommitment) {
		t.Fatalf("expected duplicate commitment, got %v", err)
	}
	registry, err := h.registry.Get(context.Background())
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	if registry.TotalValueStaked != 1000 {
		t.Fatalf("duplicate open changed stake: %d", registry.TotalValueStaked)
	}
}

func TestOpenRejectsInvalidSchedule(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.fund(t, "alice", 1000)

	_, err := h.commitment.Open(context.Background(), dto.OpenInput{
		Owner:          "alice",
		CommitmentID:   1,
		Amount:         1000,
		SessionsPerDay: 11,
		TotalDays:      2,
	})
	if !errors.Is(err, apperrors.ErrInvalidSessionCount) {
		t.Fatalf("expected session count error, got %v", err)
	}
	_, err = h.commitment.Open(context.Background(), dto.OpenInput{
		Owner:          "alice",
		CommitmentID:   1,
		Amount:         1000,
		SessionsPerDay: 2,
		TotalDays:      31,
	})
	if !errors.Is(err, apperrors.ErrInvalidDayCount) {
		t.Fatalf("expected day count error, got %v", err)
	}
}

func TestClaimFullCompletionPaysStakePlusBonus(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.fund(t, "alice", 100_000_000)
	h.open(t, 100_000_000, 2, 2)
	h.completeSessions(t, 4, 2)

	h.clk.now = openTime.Add(48 * time.Hour)
	out, err := h.commitment.Claim(context.Background(), dto.ClaimInput{Owner: "alice", CommitmentID: 1, Caller: "alice"})
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if out.Tier != string(domain.TierBonus) {
		t.Fatalf("tier = %q, want bonus", out.Tier)
	}
	if out.Payout != 110_000_000 {
		t.Fatalf("payout = %d, want 110000000", out.Payout)
	}
	if got := h.balance(t, "alice"); got != 110_000_000 {
		t.Fatalf("owner balance = %d, want payout", got)
	}
	if got := h.balance(t, keys.Vault("alice", 1)); got != 0 {
		t.Fatalf("vault balance = %d, want 0", got)
	}
	registry, err := h.registry.Get(context.Background())
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	if registry.TotalValueStaked != 0 {
		t.Fatalf("stake not released: %d", registry.TotalValueStaked)
	}
	profile, err := h.profile.Get(context.Background(), "alice")
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if profile.TotalRewardsEarned != 110_000_000 {
		t.Fatalf("rewards earned = %d", profile.TotalRewardsEarned)
	}
	got, err := h.commitment.Get(context.Background(), "alice", 1)
	if err != nil {
		t.Fatalf("get commitment: %v", err)
	}
	if got.IsActive {
		t.Fatal("claimed commitment must be inactive")
	}
}

func TestClaimPartialCompletionRefundsStake(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.fund(t, "alice", 100_000_000)
	h.open(t, 100_000_000, 2, 2)
	h.completeSessions(t, 3, 2)

	h.clk.now = openTime.Add(48 * time.Hour)
	out, err := h.commitment.Claim(context.Background(), dto.ClaimInput{Owner: "alice", CommitmentID: 1, Caller: "alice"})
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if out.Tier != string(domain.TierRefund) {
		t.Fatalf("tier = %q, want refund", out.Tier)
	}
	if out.Payout != 100_000_000 || out.Retained != 0 {
		t.Fatalf("unexpected settlement: %+v", out)
	}
	if got := h.balance(t, "alice"); got != 100_000_000 {
		t.Fatalf("owner balance = %d, want stake back", got)
	}
}

func TestClaimLowCompletionForfeitsQuarter(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.fund(t, "alice", 100_000_000)
	h.open(t, 100_000_000, 2, 2)
	h.completeSessions(t, 2, 2)

	h.clk.now = openTime.Add(48 * time.Hour)
	out, err := h.commitment.Claim(context.Background(), dto.ClaimInput{Owner: "alice", CommitmentID: 1, Caller: "alice"})
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if out.Tier != string(domain.TierPenalty) {
		t.Fatalf("tier = %q, want penalty", out.Tier)
	}
	if out.Payout != 75_000_000 || out.Retained != 25_000_000 {
		t.Fatalf("unexpected settlement: %+v", out)
	}
	if got := h.balance(t, "alice"); got != 75_000_000 {
		t.Fatalf("owner balance = %d, want 75%% of stake", got)
	}
	// The forfeited remainder stays in the vault under protocol custody.
	if got := h.balance(t, keys.Vault("alice", 1)); got != 25_000_000 {
		t.Fatalf("vault balance = %d, want retained share", got)
	}
}

func TestClaimGates(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.fund(t, "alice", 1000)
	h.open(t, 1000, 2, 2)

	_, err := h.commitment.Claim(context.Background(), dto.ClaimInput{Owner: "alice", CommitmentID: 1, Caller: "mallory"})
	if !errors.Is(err, apperrors.ErrInvalidAuthority) {
		t.Fatalf("expected authority error, got %v", err)
	}

	_, err = h.commitment.Claim(context.Background(), dto.ClaimInput{Owner: "alice", CommitmentID: 1, Caller: "alice"})
	if !errors.Is(err, apperrors.ErrCommitmentNotEnded) {
		t.Fatalf("expected not-ended error, got %v", err)
	}

	h.clk.now = openTime.Add(48 * time.Hour)
	if _, err := h.commitment.Claim(context.Background(), dto.ClaimInput{Owner: "alice", CommitmentID: 1, Caller: "alice"}); err != nil {
		t.Fatalf("claim: %v", err)
	}
	_, err = h.commitment.Claim(context.Background(), dto.ClaimInput{Owner: "alice", CommitmentID: 1, Caller: "alice"})
	if !errors.Is(err, apperrors.ErrCommitmentInactive) {
		t.Fatalf("expected inactive error, got %v", err)
	}
}

func TestBeginSessionPersistsDayRollover(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.fund(t, "alice", 1000)
	h.open(t, 1000, 1, 3)
	h.completeSessions(t, 1, 1)

	got, err := h.commitment.Get(context.Background(), "alice", 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.SessionsCompletedToday != 1 {
		t.Fatalf("sessions today = %d, want 1", got.SessionsCompletedToday)
	}

	nextDay := openTime.Add(24 * time.Hour)
	if _, err := h.commitment.BeginSession(context.Background(), dto.BeginSessionInput{
		Owner:        "alice",
		CommitmentID: 1,
		Caller:       "alice",
		Now:          nextDay,
	}); err != nil {
		t.Fatalf("begin session: %v", err)
	}
	got, err = h.commitment.Get(context.Background(), "alice", 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.SessionsCompletedToday != 0 {
		t.Fatalf("rollover not persisted, sessions today = %d", got.SessionsCompletedToday)
	}
	if got.DaysCompleted != 1 {
		t.Fatalf("days completed = %d, want 1", got.DaysCompleted)
	}
}

func TestBeginSessionEnforcesDailyQuota(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.fund(t, "alice", 1000)
	h.open(t, 1000, 1, 3)
	h.completeSessions(t, 1, 1)

	_, err := h.commitment.BeginSession(context.Background(), dto.BeginSessionInput{
		Owner:        "alice",
		CommitmentID: 1,
		Caller:       "alice",
		Now:          openTime.Add(2 * time.Hour),
	})
	if !errors.Is(err, apperrors.ErrDailySessionsCompleted) {
		t.Fatalf("expected quota error, got %v", err)
	}
}
