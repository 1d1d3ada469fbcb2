package approval

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WorkshopServices01/workshop-api/internal/audit"
	approvaldomain "github.com/WorkshopServices01/workshop-api/internal/domain/approval"
	workorderdomain "github.com/WorkshopServices01/workshop-api/internal/domain/workorder"
	"github.com/WorkshopServices01/workshop-api/internal/models"
	"github.com/WorkshopServices01/workshop-api/internal/notify"
)

// fakeRepo keeps everything in memory behind one mutex, which gives Consume
// the same serialization the database transaction gives the real one.
type fakeRepo struct {
	mu        sync.Mutex
	nextID    uint
	workOrder *models.WorkOrder
	customer  *models.Customer
	requests  map[string]*models.ApprovalRequest
	media     []models.Media
}

func newFakeRepo(status workorderdomain.Status) *fakeRepo {
	est := decimal.RequireFromString("200.00")
	return &fakeRepo{
		nextID: 1,
		workOrder: &models.WorkOrder{
			ID: 1, CustomerID: 1, VehicleID: 1,
			Status:   string(status),
			EstTotal: &est,
		},
		customer: &models.Customer{ID: 1, Name: "Alice", Email: "alice@example.com", Phone: "+5511999999999"},
		requests: map[string]*models.ApprovalRequest{},
	}
}

func (f *fakeRepo) GetWorkOrderByID(_ context.Context, id uint) (*models.WorkOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.workOrder == nil || f.workOrder.ID != id {
		return nil, errors.New("not found")
	}
	wo := *f.workOrder
	return &wo, nil
}

func (f *fakeRepo) GetCustomerByID(_ context.Context, id uint) (*models.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.customer == nil || f.customer.ID != id {
		return nil, errors.New("not found")
	}
	c := *f.customer
	return &c, nil
}

func (f *fakeRepo) IssueRequest(_ context.Context, ar *models.ApprovalRequest, wo *models.WorkOrder) ([]models.ApprovalRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := time.Now().UTC()
	var superseded []models.ApprovalRequest
	for _, prev := range f.requests {
		if prev.WorkOrderID == ar.WorkOrderID && !prev.IsUsed && prev.ExpiresAt.After(now) {
			superseded = append(superseded, *prev)
			prev.IsUsed = true
		}
	}

	ar.ID = f.nextID
	f.nextID++
	cp := *ar
	f.requests[ar.Token] = &cp

	upd := *wo
	f.workOrder = &upd
	return superseded, nil
}

func (f *fakeRepo) GetByToken(_ context.Context, token string) (*models.ApprovalRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ar, ok := f.requests[token]
	if !ok {
		return nil, approvaldomain.ErrTokenNotFound
	}
	cp := *ar
	return &cp, nil
}

func (f *fakeRepo) Consume(
	_ context.Context,
	token string,
	apply func(ar *models.ApprovalRequest, wo *models.WorkOrder) error,
) (*models.ApprovalRequest, *models.WorkOrder, error) {

	f.mu.Lock()
	defer f.mu.Unlock()

	stored, ok := f.requests[token]
	if !ok {
		return nil, nil, approvaldomain.ErrTokenNotFound
	}

	ar := *stored
	wo := *f.workOrder

	if err := apply(&ar, &wo); err != nil {
		return nil, nil, err
	}

	if stored.IsUsed {
		return nil, nil, approvaldomain.ErrTokenAlreadyUsed
	}

	ar.IsUsed = true
	*stored = ar
	*f.workOrder = wo

	out := ar
	outWo := wo
	return &out, &outWo, nil
}

func (f *fakeRepo) ListMediaForWorkOrder(_ context.Context, workOrderID uint, phase string) ([]models.Media, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Media
	for _, m := range f.media {
		if m.WorkOrderID != workOrderID {
			continue
		}
		if phase != "" && m.Phase != phase {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

var _ approvaldomain.Repository = (*fakeRepo)(nil)

// ------------------------------------------------------

type memSink struct {
	mu      sync.Mutex
	entries []audit.Entry
}

func (s *memSink) Log(e audit.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
	return nil
}

type memNotifier struct {
	mu   sync.Mutex
	sent []notify.Message
}

func (n *memNotifier) Send(_ context.Context, msg notify.Message) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
	return nil
}

func testDispatchers(t *testing.T) (*audit.Dispatcher, *notify.Dispatcher, *memNotifier) {
	t.Helper()

	sink := &memSink{}
	auditDisp := audit.NewDispatcher(sink)

	mem := &memNotifier{}
	notifyDisp := notify.NewDispatcher(map[string]notify.Notifier{
		models.ChannelEmail:    mem,
		models.ChannelWhatsApp: mem,
	})

	t.Cleanup(func() {
		auditDisp.Close()
		notifyDisp.Close()
	})
	return auditDisp, notifyDisp, mem
}

// ------------------------------------------------------
// Issue
// ------------------------------------------------------

func TestIssueApprovalTransitionsAndNotifies(t *testing.T) {
	repo := newFakeRepo(workorderdomain.StatusNew)
	auditDisp, notifyDisp, mem := testDispatchers(t)

	uc := NewIssueApproval(repo, auditDisp, notifyDisp, "http://shop.local", 24*time.Hour)

	ar, err := uc.Execute(context.Background(), IssueApprovalInput{
		WorkOrderID: 1, ActorID: 7, Channel: models.ChannelEmail,
	})
	require.NoError(t, err)

	assert.Len(t, ar.Token, 43)
	assert.WithinDuration(t, time.Now().UTC().Add(24*time.Hour), ar.ExpiresAt, time.Minute)
	assert.Equal(t, string(workorderdomain.StatusAwaitingApproval), repo.workOrder.Status)

	require.Eventually(t, func() bool {
		mem.mu.Lock()
		defer mem.mu.Unlock()
		return len(mem.sent) == 1
	}, 2*time.Second, 10*time.Millisecond)

	mem.mu.Lock()
	defer mem.mu.Unlock()
	assert.Equal(t, "alice@example.com", mem.sent[0].Recipient)
	assert.Contains(t, mem.sent[0].Body, "http://shop.local/api/public/approvals/"+ar.Token)
}

func TestIssueApprovalSupersedesPriorToken(t *testing.T) {
	repo := newFakeRepo(workorderdomain.StatusNew)
	auditDisp, notifyDisp, _ := testDispatchers(t)

	uc := NewIssueApproval(repo, auditDisp, notifyDisp, "http://shop.local", 24*time.Hour)

	first, err := uc.Execute(context.Background(), IssueApprovalInput{
		WorkOrderID: 1, ActorID: 7, Channel: models.ChannelEmail,
	})
	require.NoError(t, err)

	second, err := uc.Execute(context.Background(), IssueApprovalInput{
		WorkOrderID: 1, ActorID: 7, Channel: models.ChannelWhatsApp,
	})
	require.NoError(t, err)
	require.NotEqual(t, first.Token, second.Token)

	// The first token is dead: deciding with it must fail as already used.
	decide := NewDecideApproval(repo, auditDisp)
	_, _, err = decide.Execute(context.Background(), DecideApprovalInput{
		Token: first.Token, Decision: models.DecisionApprove,
	})
	assert.ErrorIs(t, err, approvaldomain.ErrTokenAlreadyUsed)

	// A superseded token never reads as a customer decision.
	stale, err := repo.GetByToken(context.Background(), first.Token)
	require.NoError(t, err)
	assert.True(t, stale.IsUsed)
	assert.Empty(t, stale.Decision)
}

func TestIssueApprovalRejectsWrongState(t *testing.T) {
	repo := newFakeRepo(workorderdomain.StatusInProgress)
	auditDisp, notifyDisp, _ := testDispatchers(t)

	uc := NewIssueApproval(repo, auditDisp, notifyDisp, "http://shop.local", 24*time.Hour)

	_, err := uc.Execute(context.Background(), IssueApprovalInput{
		WorkOrderID: 1, ActorID: 7, Channel: models.ChannelEmail,
	})

	var terr *workorderdomain.TransitionError
	require.ErrorAs(t, err, &terr)
}

func TestIssueApprovalRequiresEstimate(t *testing.T) {
	repo := newFakeRepo(workorderdomain.StatusNew)
	repo.workOrder.EstTotal = nil
	auditDisp, notifyDisp, _ := testDispatchers(t)

	uc := NewIssueApproval(repo, auditDisp, notifyDisp, "http://shop.local", 24*time.Hour)

	_, err := uc.Execute(context.Background(), IssueApprovalInput{
		WorkOrderID: 1, ActorID: 7, Channel: models.ChannelEmail,
	})
	assert.Error(t, err)
}

// ------------------------------------------------------
// Decide
// ------------------------------------------------------

func issueToken(t *testing.T, repo *fakeRepo, auditDisp *audit.Dispatcher, notifyDisp *notify.Dispatcher) string {
	t.Helper()

	uc := NewIssueApproval(repo, auditDisp, notifyDisp, "http://shop.local", 24*time.Hour)
	ar, err := uc.Execute(context.Background(), IssueApprovalInput{
		WorkOrderID: 1, ActorID: 7, Channel: models.ChannelEmail,
	})
	require.NoError(t, err)
	return ar.Token
}

func TestDecideApprove(t *testing.T) {
	repo := newFakeRepo(workorderdomain.StatusNew)
	auditDisp, notifyDisp, _ := testDispatchers(t)
	token := issueToken(t, repo, auditDisp, notifyDisp)

	uc := NewDecideApproval(repo, auditDisp)
	ar, wo, err := uc.Execute(context.Background(), DecideApprovalInput{
		Token: token, Decision: models.DecisionApprove,
	})
	require.NoError(t, err)

	assert.True(t, ar.IsUsed)
	assert.Equal(t, models.DecisionApprove, ar.Decision)
	assert.NotNil(t, ar.DecidedAt)
	assert.Equal(t, string(workorderdomain.StatusReadyToStart), wo.Status)
}

func TestDecideRejectReturnsOrderToIntake(t *testing.T) {
	repo := newFakeRepo(workorderdomain.StatusNew)
	auditDisp, notifyDisp, _ := testDispatchers(t)
	token := issueToken(t, repo, auditDisp, notifyDisp)

	uc := NewDecideApproval(repo, auditDisp)
	ar, wo, err := uc.Execute(context.Background(), DecideApprovalInput{
		Token: token, Decision: models.DecisionReject, Reason: "too expensive",
	})
	require.NoError(t, err)

	assert.Equal(t, models.DecisionReject, ar.Decision)
	assert.Equal(t, "too expensive", ar.Reason)
	assert.Equal(t, string(workorderdomain.StatusNew), wo.Status)
}

func TestDecideInvalidDecision(t *testing.T) {
	repo := newFakeRepo(workorderdomain.StatusNew)
	auditDisp, notifyDisp, _ := testDispatchers(t)
	token := issueToken(t, repo, auditDisp, notifyDisp)

	uc := NewDecideApproval(repo, auditDisp)
	_, _, err := uc.Execute(context.Background(), DecideApprovalInput{
		Token: token, Decision: "maybe",
	})
	assert.ErrorIs(t, err, approvaldomain.ErrInvalidDecision)
}

func TestDecideExpiredToken(t *testing.T) {
	repo := newFakeRepo(workorderdomain.StatusNew)
	auditDisp, notifyDisp, _ := testDispatchers(t)
	token := issueToken(t, repo, auditDisp, notifyDisp)

	repo.mu.Lock()
	repo.requests[token].ExpiresAt = time.Now().UTC().Add(-time.Hour)
	repo.mu.Unlock()

	uc := NewDecideApproval(repo, auditDisp)
	_, _, err := uc.Execute(context.Background(), DecideApprovalInput{
		Token: token, Decision: models.DecisionApprove,
	})
	assert.ErrorIs(t, err, approvaldomain.ErrTokenExpired)
}

func TestDecideUnknownToken(t *testing.T) {
	repo := newFakeRepo(workorderdomain.StatusNew)
	auditDisp, _, _ := testDispatchers(t)

	uc := NewDecideApproval(repo, auditDisp)
	_, _, err := uc.Execute(context.Background(), DecideApprovalInput{
		Token: "nope", Decision: models.DecisionApprove,
	})
	assert.ErrorIs(t, err, approvaldomain.ErrTokenNotFound)
}

// Fifty concurrent decides on one token: exactly one wins, the rest see the
// token as already used, and the work order lands in exactly one final state.
func TestDecideTokenIsSingleUseUnderConcurrency(t *testing.T) {
	repo := newFakeRepo(workorderdomain.StatusNew)
	auditDisp, notifyDisp, _ := testDispatchers(t)
	token := issueToken(t, repo, auditDisp, notifyDisp)

	uc := NewDecideApproval(repo, auditDisp)

	const attempts = 50
	errs := make(chan error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		decision := models.DecisionApprove
		if i%2 == 1 {
			decision = models.DecisionReject
		}

		wg.Add(1)
		go func(decision string) {
			defer wg.Done()
			_, _, err := uc.Execute(context.Background(), DecideApprovalInput{
				Token: token, Decision: decision,
			})
			errs <- err
		}(decision)
	}
	wg.Wait()
	close(errs)

	var successes, alreadyUsed int
	for err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, approvaldomain.ErrTokenAlreadyUsed):
			alreadyUsed++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, alreadyUsed)

	finalStatus := workorderdomain.Status(repo.workOrder.Status)
	assert.Contains(t,
		[]workorderdomain.Status{workorderdomain.StatusReadyToStart, workorderdomain.StatusNew},
		finalStatus,
	)
}

// ------------------------------------------------------
// View
// ------------------------------------------------------

func TestViewApprovalShowsBeforePhotosOnly(t *testing.T) {
	repo := newFakeRepo(workorderdomain.StatusNew)
	repo.media = []models.Media{
		{ID: 1, WorkOrderID: 1, Phase: models.MediaPhaseBefore, Path: "wo/1/a.jpg"},
		{ID: 2, WorkOrderID: 1, Phase: models.MediaPhaseAfter, Path: "wo/1/b.jpg"},
	}
	auditDisp, notifyDisp, _ := testDispatchers(t)
	token := issueToken(t, repo, auditDisp, notifyDisp)

	uc := NewViewApproval(repo)
	view, err := uc.Execute(context.Background(), token)
	require.NoError(t, err)

	assert.False(t, view.Expired)
	require.Len(t, view.Media, 1)
	assert.Equal(t, uint(1), view.Media[0].ID)
}

func TestViewApprovalExpiredStillResolves(t *testing.T) {
	repo := newFakeRepo(workorderdomain.StatusNew)
	auditDisp, notifyDisp, _ := testDispatchers(t)
	token := issueToken(t, repo, auditDisp, notifyDisp)

	repo.mu.Lock()
	repo.requests[token].ExpiresAt = time.Now().UTC().Add(-time.Hour)
	repo.mu.Unlock()

	uc := NewViewApproval(repo)
	view, err := uc.Execute(context.Background(), token)
	require.NoError(t, err)
	assert.True(t, view.Expired)
}

func TestMediaForTokenDeniesExpired(t *testing.T) {
	repo := newFakeRepo(workorderdomain.StatusNew)
	repo.media = []models.Media{
		{ID: 1, WorkOrderID: 1, Phase: models.MediaPhaseBefore, Path: "wo/1/a.jpg"},
	}
	auditDisp, notifyDisp, _ := testDispatchers(t)
	token := issueToken(t, repo, auditDisp, notifyDisp)

	uc := NewMediaForToken(repo)

	m, err := uc.Execute(context.Background(), token, 1)
	require.NoError(t, err)
	assert.Equal(t, "wo/1/a.jpg", m.Path)

	repo.mu.Lock()
	repo.requests[token].ExpiresAt = time.Now().UTC().Add(-time.Hour)
	repo.mu.Unlock()

	_, err = uc.Execute(context.Background(), token, 1)
	assert.ErrorIs(t, err, approvaldomain.ErrTokenExpired)
}

func TestMediaForTokenAllowedAfterDecision(t *testing.T) {
	repo := newFakeRepo(workorderdomain.StatusNew)
	repo.media = []models.Media{
		{ID: 1, WorkOrderID: 1, Phase: models.MediaPhaseBefore, Path: "wo/1/a.jpg"},
	}
	auditDisp, notifyDisp, _ := testDispatchers(t)
	token := issueToken(t, repo, auditDisp, notifyDisp)

	decide := NewDecideApproval(repo, auditDisp)
	_, _, err := decide.Execute(context.Background(), DecideApprovalInput{
		Token: token, Decision: models.DecisionApprove,
	})
	require.NoError(t, err)

	uc := NewMediaForToken(repo)
	_, err = uc.Execute(context.Background(), token, 1)
	assert.NoError(t, err)
}
