package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"nexusorder/internal/database"
	"nexusorder/internal/model"
	"nexusorder/internal/pricing"
	"nexusorder/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/glebarez/sqlite"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

type orderFixture struct {
	db           *gorm.DB
	svc          OrderService
	workflowRepo repository.WorkflowStatusRepository
	priceRepo    repository.PriceListRepository
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	db := newTestDB(t)
	tx := repository.NewTransactionManager(db)
	orderRepo := repository.NewOrderRepository(db)
	priceRepo := repository.NewPriceListRepository(db)
	workflowRepo := repository.NewWorkflowStatusRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	return &orderFixture{
		db:           db,
		svc:          NewOrderService(orderRepo, priceRepo, workflowRepo, auditRepo, tx, nil, zap.NewNop()),
		workflowRepo: workflowRepo,
		priceRepo:    priceRepo,
	}
}

func (f *orderFixture) seedStatuses(t *testing.T, names ...string) {
	t.Helper()
	for i, name := range names {
		require.NoError(t, f.db.Create(&model.WorkflowStatus{Name: name, Position: i}).Error)
	}
}

func (f *orderFixture) seedPrice(t *testing.T, entry model.PriceListEntry) {
	t.Helper()
	require.NoError(t, f.db.Create(&entry).Error)
}

var tester = Identity{Name: "ana", Role: model.RoleAdmin}

func basePayload() OrderPayload {
	return OrderPayload{
		Date:           "2024-03-15",
		SellingCompany: "Nexus SA",
		ClientName:     "Acme Corp",
		ServiceName:    "Fiber splicing",
		UnitOfMeasure:  "m",
		Quantity:       10,
		UnitPrice:      85,
		UnitCost:       50,
		Status:         "Registered",
	}
}

func TestCreateOrder_DerivesTotalAndEconomics(t *testing.T) {
	f := newOrderFixture(t)

	res, err := f.svc.CreateOrder(context.Background(), tester, basePayload())
	require.NoError(t, err)

	assert.Equal(t, 850.0, res.TotalValue)
	assert.Equal(t, 850.0, res.Economics.TotalValue)
	assert.Equal(t, 500.0, res.Economics.Cost)
	assert.Equal(t, 350.0, res.Economics.Margin)
	assert.InDelta(t, 41.18, res.Economics.MarginPercent, 0.005)
}

func TestCreateOrder_SnapshotsPriceFromCatalog(t *testing.T) {
	f := newOrderFixture(t)
	f.seedPrice(t, model.PriceListEntry{
		ServiceName:    "Fiber splicing",
		SellingCompany: "Nexus SA",
		UnitOfMeasure:  "km",
		UnitPrice:      100,
		ContractorCost: 60,
		ValidFrom:      "2024-01-01",
		ValidTo:        "2024-12-31",
	})

	req := basePayload()
	req.UnitPrice = 0
	req.UnitCost = 0
	req.UnitOfMeasure = ""

	res, err := f.svc.CreateOrder(context.Background(), tester, req)
	require.NoError(t, err)

	assert.Equal(t, 100.0, res.UnitPrice)
	assert.Equal(t, 60.0, res.UnitCost)
	assert.Equal(t, "km", res.UnitOfMeasure)
	assert.Equal(t, 1000.0, res.TotalValue)
}

func TestCreateOrder_ExplicitPriceWinsOverCatalog(t *testing.T) {
	f := newOrderFixture(t)
	f.seedPrice(t, model.PriceListEntry{
		ServiceName:    "Fiber splicing",
		SellingCompany: "Nexus SA",
		UnitPrice:      100,
		ValidFrom:      "2024-01-01",
		ValidTo:        "2024-12-31",
	})

	req := basePayload()
	req.UnitPrice = 85

	res, err := f.svc.CreateOrder(context.Background(), tester, req)
	require.NoError(t, err)

	assert.Equal(t, 85.0, res.UnitPrice)
}

func TestCreateOrder_UnknownStatusFallsBackToFirstStage(t *testing.T) {
	f := newOrderFixture(t)
	f.seedStatuses(t, "Registered", "In Progress", "Billed")

	req := basePayload()
	req.Status = "Banana"

	res, err := f.svc.CreateOrder(context.Background(), tester, req)
	require.NoError(t, err)

	assert.Equal(t, "Registered", res.Status)
}

func TestCreateOrder_NoPipelineKeepsStatusVerbatim(t *testing.T) {
	f := newOrderFixture(t)

	req := basePayload()
	req.Status = "Whatever"

	res, err := f.svc.CreateOrder(context.Background(), tester, req)
	require.NoError(t, err)

	assert.Equal(t, "Whatever", res.Status)
}

func TestCreateOrder_WritesCreateHistory(t *testing.T) {
	f := newOrderFixture(t)

	res, err := f.svc.CreateOrder(context.Background(), tester, basePayload())
	require.NoError(t, err)

	require.Len(t, res.History, 1)
	assert.Equal(t, model.HistoryCreate, res.History[0].Kind)
	assert.Equal(t, "ana", res.History[0].User)
}

func TestUpdateOrder_StatusChangeIsRecordedSeparately(t *testing.T) {
	f := newOrderFixture(t)
	f.seedStatuses(t, "Registered", "In Progress")

	created, err := f.svc.CreateOrder(context.Background(), tester, basePayload())
	require.NoError(t, err)

	// Plain edit first
	req := basePayload()
	req.Quantity = 12
	updated, err := f.svc.UpdateOrder(context.Background(), tester, created.ID.String(), req)
	require.NoError(t, err)
	assert.Equal(t, 12.0*85, updated.TotalValue)

	// Then a status transition
	req.Status = "In Progress"
	updated, err = f.svc.UpdateOrder(context.Background(), tester, created.ID.String(), req)
	require.NoError(t, err)
	assert.Equal(t, "In Progress", updated.Status)

	kinds := make([]string, 0, len(updated.History))
	for _, h := range updated.History {
		kinds = append(kinds, h.Kind)
	}
	assert.Contains(t, kinds, model.HistoryEdit)
	assert.Contains(t, kinds, model.HistoryStatusChange)
}

func TestProgressLogs_MutationsRecomputeEconomics(t *testing.T) {
	f := newOrderFixture(t)

	created, err := f.svc.CreateOrder(context.Background(), tester, basePayload())
	require.NoError(t, err)

	res, err := f.svc.AddProgressLog(context.Background(), tester, created.ID.String(), ProgressLogPayload{
		Date: "2024-03-20", Quantity: 4,
	})
	require.NoError(t, err)
	res, err = f.svc.AddProgressLog(context.Background(), tester, created.ID.String(), ProgressLogPayload{
		Date: "2024-03-25", Quantity: 7,
	})
	require.NoError(t, err)

	assert.Equal(t, 11.0, res.Economics.ProgressTotal)
	assert.Equal(t, 100.0, res.Economics.ProgressPercent)
	require.Len(t, res.ProgressLogs, 2)

	// Edit the second entry down
	res, err = f.svc.UpdateProgressLog(context.Background(), tester, created.ID.String(), res.ProgressLogs[1].ID.String(), ProgressLogPayload{
		Date: "2024-03-25", Quantity: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, 5.0, res.Economics.ProgressTotal)
	assert.Equal(t, 50.0, res.Economics.ProgressPercent)

	// Remove it
	res, err = f.svc.DeleteProgressLog(context.Background(), tester, created.ID.String(), res.ProgressLogs[1].ID.String())
	require.NoError(t, err)
	require.Len(t, res.ProgressLogs, 1)
	assert.Equal(t, 4.0, res.Economics.ProgressTotal)

	progressEntries := 0
	for _, h := range res.History {
		if h.Kind == model.HistoryProgress {
			progressEntries++
		}
	}
	assert.Equal(t, 3, progressEntries)
}

func TestUpdateProgressLog_ScopedToOwningOrder(t *testing.T) {
	f := newOrderFixture(t)

	orderA, err := f.svc.CreateOrder(context.Background(), tester, basePayload())
	require.NoError(t, err)
	otherReq := basePayload()
	otherReq.PONumber = "PO-B"
	orderB, err := f.svc.CreateOrder(context.Background(), tester, otherReq)
	require.NoError(t, err)

	withLog, err := f.svc.AddProgressLog(context.Background(), tester, orderB.ID.String(), ProgressLogPayload{
		Date: "2024-03-20", Quantity: 4,
	})
	require.NoError(t, err)
	logID := withLog.ProgressLogs[0].ID.String()

	_, err = f.svc.UpdateProgressLog(context.Background(), tester, orderA.ID.String(), logID, ProgressLogPayload{
		Date: "2024-03-21", Quantity: 9,
	})
	require.Error(t, err)

	// The log stays on its own order, untouched
	reloaded, err := f.svc.GetOrder(context.Background(), orderB.ID.String())
	require.NoError(t, err)
	require.Len(t, reloaded.ProgressLogs, 1)
	assert.Equal(t, 4.0, reloaded.ProgressLogs[0].Quantity)
	assert.Equal(t, 4.0, reloaded.Economics.ProgressTotal)

	// The rejected edit leaves no trace on the target order
	target, err := f.svc.GetOrder(context.Background(), orderA.ID.String())
	require.NoError(t, err)
	assert.Empty(t, target.ProgressLogs)
	for _, h := range target.History {
		assert.NotEqual(t, model.HistoryProgress, h.Kind)
	}

	_, err = f.svc.DeleteProgressLog(context.Background(), tester, orderA.ID.String(), logID)
	require.Error(t, err)
	reloaded, err = f.svc.GetOrder(context.Background(), orderB.ID.String())
	require.NoError(t, err)
	require.Len(t, reloaded.ProgressLogs, 1)
}

func TestProgressLogMutations_UnknownIDIsNotFound(t *testing.T) {
	f := newOrderFixture(t)

	created, err := f.svc.CreateOrder(context.Background(), tester, basePayload())
	require.NoError(t, err)

	_, err = f.svc.UpdateProgressLog(context.Background(), tester, created.ID.String(), uuid.NewString(), ProgressLogPayload{
		Date: "2024-03-20", Quantity: 4,
	})
	require.Error(t, err)

	_, err = f.svc.DeleteProgressLog(context.Background(), tester, created.ID.String(), uuid.NewString())
	require.Error(t, err)

	reloaded, err := f.svc.GetOrder(context.Background(), created.ID.String())
	require.NoError(t, err)
	assert.Empty(t, reloaded.ProgressLogs)
	for _, h := range reloaded.History {
		assert.NotEqual(t, model.HistoryProgress, h.Kind)
	}
}

func TestGetOrder_MissingOrderFailsFast(t *testing.T) {
	f := newOrderFixture(t)

	start := time.Now()
	_, err := f.svc.GetOrder(context.Background(), uuid.NewString())
	require.Error(t, err)
	assert.Less(t, time.Since(start), 300*time.Millisecond)
}

func TestAttachments_AddAndRemove(t *testing.T) {
	f := newOrderFixture(t)

	created, err := f.svc.CreateOrder(context.Background(), tester, basePayload())
	require.NoError(t, err)

	res, err := f.svc.AddAttachment(context.Background(), tester, created.ID.String(), AttachmentPayload{
		Name: "po.pdf", URL: "https://files.example.com/po.pdf",
	})
	require.NoError(t, err)
	require.Len(t, res.Attachments, 1)

	res, err = f.svc.DeleteAttachment(context.Background(), tester, created.ID.String(), res.Attachments[0].ID.String())
	require.NoError(t, err)
	assert.Empty(t, res.Attachments)

	attachmentEntries := 0
	for _, h := range res.History {
		if h.Kind == model.HistoryAttachment {
			attachmentEntries++
		}
	}
	assert.Equal(t, 2, attachmentEntries)
}

func TestListOrders_FilterSortAndPage(t *testing.T) {
	f := newOrderFixture(t)

	for i, client := range []string{"Acme Corp", "Borealis", "Acme Corp"} {
		req := basePayload()
		req.ClientName = client
		req.Date = fmt.Sprintf("2024-03-%02d", 10+i)
		req.Quantity = float64(i + 1)
		_, err := f.svc.CreateOrder(context.Background(), tester, req)
		require.NoError(t, err)
	}

	res, total, err := f.svc.ListOrders(context.Background(), OrderListQuery{
		Filter: pricing.ListFilter{Search: "acme"},
		SortBy: pricing.SortByDate,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, res, 2)
	// default direction is descending
	assert.Equal(t, "2024-03-12", res[0].Date)

	// page past the end is empty, total unchanged
	res, total, err = f.svc.ListOrders(context.Background(), OrderListQuery{Page: 5, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Empty(t, res)
}

func TestDeleteOrder_RemovesRecord(t *testing.T) {
	f := newOrderFixture(t)

	created, err := f.svc.CreateOrder(context.Background(), tester, basePayload())
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteOrder(context.Background(), tester, created.ID.String()))

	_, err = f.svc.GetOrder(context.Background(), created.ID.String())
	assert.Error(t, err)
}
