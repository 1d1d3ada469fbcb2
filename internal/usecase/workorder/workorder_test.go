package workorder

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
	domain "github.com/WorkshopServices01/workshop-api/internal/domain/workorder"
	"github.com/WorkshopServices01/workshop-api/internal/httperr"
	"github.com/WorkshopServices01/workshop-api/internal/models"
	"github.com/WorkshopServices01/workshop-api/internal/notify"
)

type fakeRepo struct {
	mu       sync.Mutex
	nextID   uint
	orders   map[uint]*models.WorkOrder
	customer *models.Customer
	vehicle  *models.Vehicle
	service  *models.Service
	invoiced map[uint]bool
	items    []models.WorkOrderItem
	attached []models.WorkOrderService
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		nextID:   1,
		orders:   map[uint]*models.WorkOrder{},
		customer: &models.Customer{ID: 1, Name: "Alice", Email: "alice@example.com"},
		vehicle:  &models.Vehicle{ID: 1, CustomerID: 1},
		service: &models.Service{
			ID: 1, Name: "oil change", Active: true,
			BasePrice: decimal.RequireFromString("45.00"),
		},
		invoiced: map[uint]bool{},
	}
}

func (f *fakeRepo) GetCustomerByID(_ context.Context, id uint) (*models.Customer, error) {
	if f.customer == nil || f.customer.ID != id {
		return nil, errors.New("not found")
	}
	c := *f.customer
	return &c, nil
}

func (f *fakeRepo) GetVehicleForCustomer(_ context.Context, vehicleID, customerID uint) (*models.Vehicle, error) {
	if f.vehicle == nil || f.vehicle.ID != vehicleID || f.vehicle.CustomerID != customerID {
		return nil, errors.New("not found")
	}
	v := *f.vehicle
	return &v, nil
}

func (f *fakeRepo) CreateWorkOrder(_ context.Context, wo *models.WorkOrder) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	wo.ID = f.nextID
	f.nextID++
	cp := *wo
	f.orders[wo.ID] = &cp
	return nil
}

func (f *fakeRepo) GetWorkOrderByID(_ context.Context, id uint) (*models.WorkOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	wo, ok := f.orders[id]
	if !ok {
		return nil, errors.New("not found")
	}
	cp := *wo
	return &cp, nil
}

func (f *fakeRepo) UpdateWorkOrder(_ context.Context, wo *models.WorkOrder) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *wo
	f.orders[wo.ID] = &cp
	return nil
}

func (f *fakeRepo) AddItem(_ context.Context, item *models.WorkOrderItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	item.ID = f.nextID
	f.nextID++
	f.items = append(f.items, *item)
	return nil
}

func (f *fakeRepo) RemoveItem(_ context.Context, workOrderID, itemID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, it := range f.items {
		if it.ID == itemID && it.WorkOrderID == workOrderID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

func (f *fakeRepo) GetServiceByID(_ context.Context, id uint) (*models.Service, error) {
	if f.service == nil || f.service.ID != id {
		return nil, errors.New("not found")
	}
	s := *f.service
	return &s, nil
}

func (f *fakeRepo) AttachService(_ context.Context, ws *models.WorkOrderService) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	ws.ID = f.nextID
	f.nextID++
	f.attached = append(f.attached, *ws)
	return nil
}

func (f *fakeRepo) HasInvoice(_ context.Context, workOrderID uint) (bool, error) {
	return f.invoiced[workOrderID], nil
}

func (f *fakeRepo) DeleteWorkOrder(_ context.Context, wo *models.WorkOrder) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.orders, wo.ID)
	return nil
}

var _ domain.Repository = (*fakeRepo)(nil)

type discardSink struct{}

func (discardSink) Log(audit.Entry) error { return nil }

func testAudit(t *testing.T) *audit.Dispatcher {
	t.Helper()
	d := audit.NewDispatcher(discardSink{})
	t.Cleanup(d.Close)
	return d
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

func createOrder(t *testing.T, repo *fakeRepo) *models.WorkOrder {
	t.Helper()

	uc := NewCreateWorkOrder(repo, testAudit(t))
	wo, err := uc.Execute(context.Background(), CreateWorkOrderInput{
		CustomerID: 1, VehicleID: 1, CreatedBy: 7,
		Complaint: "engine noise",
	})
	require.NoError(t, err)
	return wo
}

func setStatus(repo *fakeRepo, id uint, status domain.Status) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.orders[id].Status = string(status)
}

// ------------------------------------------------------
// Create / estimate / schedule
// ------------------------------------------------------

func TestCreateWorkOrderStartsNew(t *testing.T) {
	repo := newFakeRepo()

	wo := createOrder(t, repo)

	assert.Equal(t, string(domain.StatusNew), wo.Status)
	assert.Equal(t, "engine noise", wo.Complaint)
	assert.Nil(t, wo.EstTotal)
}

func TestCreateWorkOrderUnknownCustomer(t *testing.T) {
	repo := newFakeRepo()

	uc := NewCreateWorkOrder(repo, testAudit(t))
	_, err := uc.Execute(context.Background(), CreateWorkOrderInput{
		CustomerID: 99, VehicleID: 1, CreatedBy: 7,
	})

	assert.True(t, httperr.IsBusiness(err, "customer_not_found"))
}

func TestCreateWorkOrderVehicleOfOtherCustomer(t *testing.T) {
	repo := newFakeRepo()
	repo.vehicle.CustomerID = 2

	uc := NewCreateWorkOrder(repo, testAudit(t))
	_, err := uc.Execute(context.Background(), CreateWorkOrderInput{
		CustomerID: 1, VehicleID: 1, CreatedBy: 7,
	})
	assert.Error(t, err)
}

func TestSetEstimateUpdatesTotal(t *testing.T) {
	repo := newFakeRepo()
	wo := createOrder(t, repo)

	parts := decimal.RequireFromString("120.00")
	labor := decimal.RequireFromString("80.50")

	uc := NewSetEstimate(repo, testAudit(t))
	updated, err := uc.Execute(context.Background(), SetEstimateInput{
		WorkOrderID: wo.ID, ActorID: 7,
		EstParts: &parts, EstLabor: &labor,
	})
	require.NoError(t, err)

	require.NotNil(t, updated.EstTotal)
	assert.True(t, updated.EstTotal.Equal(decimal.RequireFromString("200.50")))
}

func TestScheduleRejectsPast(t *testing.T) {
	repo := newFakeRepo()
	wo := createOrder(t, repo)

	uc := NewScheduleWorkOrder(repo, testAudit(t))
	_, err := uc.Execute(context.Background(), 7, wo.ID, time.Now().UTC().Add(-time.Hour))
	assert.Error(t, err)

	updated, err := uc.Execute(context.Background(), 7, wo.ID, time.Now().UTC().Add(48*time.Hour))
	require.NoError(t, err)
	assert.NotNil(t, updated.ScheduledAt)
}

// ------------------------------------------------------
// Lifecycle
// ------------------------------------------------------

func TestStartRequiresReadyToStart(t *testing.T) {
	repo := newFakeRepo()
	wo := createOrder(t, repo)

	uc := NewStartWorkOrder(repo, testAudit(t))

	_, err := uc.Execute(context.Background(), 7, wo.ID)
	var terr *domain.TransitionError
	require.ErrorAs(t, err, &terr)

	setStatus(repo, wo.ID, domain.StatusReadyToStart)

	started, err := uc.Execute(context.Background(), 7, wo.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusInProgress), started.Status)
	assert.NotNil(t, started.StartedAt)
}

func TestFinishSendsPickupNotice(t *testing.T) {
	repo := newFakeRepo()
	wo := createOrder(t, repo)
	setStatus(repo, wo.ID, domain.StatusInProgress)

	mem := &memNotifier{}
	notifyDisp := notify.NewDispatcher(map[string]notify.Notifier{
		models.ChannelEmail: mem,
	})
	t.Cleanup(notifyDisp.Close)

	final := decimal.RequireFromString("180.00")
	uc := NewFinishWorkOrder(repo, testAudit(t), notifyDisp)

	done, err := uc.Execute(context.Background(), FinishWorkOrderInput{
		WorkOrderID: wo.ID, ActorID: 7, FinalCost: &final,
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusDone), done.Status)
	assert.NotNil(t, done.CompletedAt)
	require.NotNil(t, done.FinalCost)
	assert.True(t, done.FinalCost.Equal(final))

	require.Eventually(t, func() bool {
		mem.mu.Lock()
		defer mem.mu.Unlock()
		return len(mem.sent) == 1
	}, 2*time.Second, 10*time.Millisecond)

	mem.mu.Lock()
	defer mem.mu.Unlock()
	assert.Equal(t, "alice@example.com", mem.sent[0].Recipient)
	assert.Contains(t, mem.sent[0].Body, "ready for pickup")
}

func TestFinishFallsBackToEstimate(t *testing.T) {
	repo := newFakeRepo()
	wo := createOrder(t, repo)

	est := decimal.RequireFromString("150.00")
	repo.mu.Lock()
	repo.orders[wo.ID].EstTotal = &est
	repo.orders[wo.ID].Status = string(domain.StatusInProgress)
	repo.mu.Unlock()

	notifyDisp := notify.NewDispatcher(nil)
	t.Cleanup(notifyDisp.Close)

	uc := NewFinishWorkOrder(repo, testAudit(t), notifyDisp)
	done, err := uc.Execute(context.Background(), FinishWorkOrderInput{
		WorkOrderID: wo.ID, ActorID: 7,
	})
	require.NoError(t, err)

	require.NotNil(t, done.FinalCost)
	assert.True(t, done.FinalCost.Equal(est))
}

func TestCloseOnlyFromDone(t *testing.T) {
	repo := newFakeRepo()
	wo := createOrder(t, repo)

	uc := NewCloseWorkOrder(repo, testAudit(t))

	_, err := uc.Execute(context.Background(), 7, wo.ID)
	assert.Error(t, err)

	setStatus(repo, wo.ID, domain.StatusDone)

	closed, err := uc.Execute(context.Background(), 7, wo.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusClosed), closed.Status)
}

// ------------------------------------------------------
// Lines
// ------------------------------------------------------

func TestAddItemValidation(t *testing.T) {
	repo := newFakeRepo()
	wo := createOrder(t, repo)

	uc := NewAddItem(repo, testAudit(t))

	item, err := uc.Execute(context.Background(), AddItemInput{
		WorkOrderID: wo.ID, ActorID: 7,
		ItemType: models.ItemTypePart, Name: "brake pads",
		Qty:       decimal.NewFromInt(2),
		UnitPrice: decimal.RequireFromString("30.005"),
	})
	require.NoError(t, err)
	assert.True(t, item.UnitPrice.Equal(decimal.RequireFromString("30.00")))

	_, err = uc.Execute(context.Background(), AddItemInput{
		WorkOrderID: wo.ID, ActorID: 7,
		ItemType: "consumable", Name: "oil",
		Qty: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(10),
	})
	assert.Error(t, err)

	_, err = uc.Execute(context.Background(), AddItemInput{
		WorkOrderID: wo.ID, ActorID: 7,
		ItemType: models.ItemTypePart, Name: "oil",
		Qty: decimal.Zero, UnitPrice: decimal.NewFromInt(10),
	})
	assert.Error(t, err)
}

func TestAttachServiceCopiesPrice(t *testing.T) {
	repo := newFakeRepo()
	wo := createOrder(t, repo)

	uc := NewAttachService(repo, testAudit(t))

	ws, err := uc.Execute(context.Background(), 7, wo.ID, 1)
	require.NoError(t, err)
	assert.True(t, ws.Price.Equal(decimal.RequireFromString("45.00")))

	// A later catalog change must not touch the attached line.
	repo.service.BasePrice = decimal.RequireFromString("99.00")
	assert.True(t, repo.attached[0].Price.Equal(decimal.RequireFromString("45.00")))
}

func TestAttachServiceInactiveRefused(t *testing.T) {
	repo := newFakeRepo()
	wo := createOrder(t, repo)
	repo.service.Active = false

	uc := NewAttachService(repo, testAudit(t))
	_, err := uc.Execute(context.Background(), 7, wo.ID, 1)
	assert.Error(t, err)
}

// ------------------------------------------------------
// Deletion policy
// ------------------------------------------------------

func TestDeleteRefusedWhenInvoiced(t *testing.T) {
	repo := newFakeRepo()
	wo := createOrder(t, repo)
	repo.invoiced[wo.ID] = true

	uc := NewDeleteWorkOrder(repo, testAudit(t))
	err := uc.Execute(context.Background(), 7, wo.ID)

	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "work_order_has_invoice"))
}

func TestDeleteRemovesUninvoicedOrder(t *testing.T) {
	repo := newFakeRepo()
	wo := createOrder(t, repo)

	uc := NewDeleteWorkOrder(repo, testAudit(t))
	require.NoError(t, uc.Execute(context.Background(), 7, wo.ID))

	_, err := repo.GetWorkOrderByID(context.Background(), wo.ID)
	assert.Error(t, err)
}
