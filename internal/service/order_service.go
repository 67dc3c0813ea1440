package service

import (
	"context"
	"encoding/json"
	"fmt"

	"nexusorder/internal/model"
	"nexusorder/internal/pricing"
	"nexusorder/internal/repository"
	ws "nexusorder/internal/websocket"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// --- DTOs ---

type OrderPayload struct {
	Date           string  `json:"date" binding:"required"`
	SellingCompany string  `json:"selling_company" binding:"required"`
	ClientID       string  `json:"client_id"`
	ClientName     string  `json:"client_name"`
	ContractorID   string  `json:"contractor_id"`
	ContractorName string  `json:"contractor_name"`
	PONumber       string  `json:"po_number"`
	ServiceName    string  `json:"service_name" binding:"required"`
	ServiceDetails string  `json:"service_details"`
	UnitOfMeasure  string  `json:"unit_of_measure"`
	Quantity       float64 `json:"quantity" binding:"required,gt=0"`
	UnitPrice      float64 `json:"unit_price"`
	UnitCost       float64 `json:"unit_cost"`
	Status         string  `json:"status"`
	OperationsRep  string  `json:"operations_rep"`
	Observations   string  `json:"observations"`
	CommitmentDate string  `json:"commitment_date"`
	ClientCertDate string  `json:"client_cert_date"`
	BillingDate    string  `json:"billing_date"`
}

type ProgressLogPayload struct {
	Date              string  `json:"date" binding:"required"`
	Quantity          float64 `json:"quantity" binding:"required,gt=0"`
	CertificationDate string  `json:"certification_date"`
	BillingDate       string  `json:"billing_date"`
	Notes             string  `json:"notes"`
}

type AttachmentPayload struct {
	Name string `json:"name" binding:"required"`
	URL  string `json:"url" binding:"required,url"`
}

type OrderListQuery struct {
	Filter    pricing.ListFilter
	SortBy    string
	Ascending bool
	Page      int
	Limit     int
}

// OrderResponse is the full order record plus its derived economics. The
// derived block always comes from pricing.ComputeOrderEconomics so every
// screen shows the same numbers.
type OrderResponse struct {
	model.Order
	Economics pricing.Economics `json:"economics"`
}

// Websocket payload
type OrderEvent struct {
	Event   string `json:"event"`
	OrderID string `json:"order_id"`
}

// --- Interface ---

type OrderService interface {
	CreateOrder(ctx context.Context, who Identity, req OrderPayload) (*OrderResponse, error)
	GetOrder(ctx context.Context, id string) (*OrderResponse, error)
	ListOrders(ctx context.Context, q OrderListQuery) ([]OrderResponse, int64, error)
	UpdateOrder(ctx context.Context, who Identity, id string, req OrderPayload) (*OrderResponse, error)
	DeleteOrder(ctx context.Context, who Identity, id string) error

	AddProgressLog(ctx context.Context, who Identity, orderID string, req ProgressLogPayload) (*OrderResponse, error)
	UpdateProgressLog(ctx context.Context, who Identity, orderID, logID string, req ProgressLogPayload) (*OrderResponse, error)
	DeleteProgressLog(ctx context.Context, who Identity, orderID, logID string) (*OrderResponse, error)

	AddAttachment(ctx context.Context, who Identity, orderID string, req AttachmentPayload) (*OrderResponse, error)
	DeleteAttachment(ctx context.Context, who Identity, orderID, attID string) (*OrderResponse, error)
}

type orderService struct {
	orderRepo    repository.OrderRepository
	priceRepo    repository.PriceListRepository
	workflowRepo repository.WorkflowStatusRepository
	auditRepo    repository.AuditRepository
	txManager    repository.TransactionManager
	hub          *ws.Hub
	logger       *zap.Logger
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	priceRepo repository.PriceListRepository,
	workflowRepo repository.WorkflowStatusRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	hub *ws.Hub,
	logger *zap.Logger,
) OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &orderService{
		orderRepo:    orderRepo,
		priceRepo:    priceRepo,
		workflowRepo: workflowRepo,
		auditRepo:    auditRepo,
		txManager:    txManager,
		hub:          hub,
		logger:       logger,
	}
}

// --- Implementation ---

func toOrderResponse(o *model.Order) *OrderResponse {
	return &OrderResponse{Order: *o, Economics: pricing.ComputeOrderEconomics(*o)}
}

// normalizeStatus validates a status string against the configured pipeline,
// defaulting to the first configured stage when unmatched so arbitrary
// untracked strings never persist. With no pipeline configured the string
// passes through unchanged.
func (s *orderService) normalizeStatus(ctx context.Context, status string) string {
	statuses, err := s.workflowRepo.ListOrdered(ctx)
	if err != nil || len(statuses) == 0 {
		if err != nil {
			s.logger.Warn("workflow statuses unavailable, keeping status as-is", zap.Error(err))
		}
		return status
	}
	for _, st := range statuses {
		if st.Name == status {
			return status
		}
	}
	return statuses[0].Name
}

// snapshotPrice fills unit price/cost/unit from the first exact service-name
// match among the eligible price entries when the caller did not supply an
// explicit price. Explicit prices always win; no match means manual entry.
func (s *orderService) snapshotPrice(ctx context.Context, req *OrderPayload) {
	if req.UnitPrice != 0 {
		return
	}

	catalog, err := s.priceRepo.ListAll(ctx)
	if err != nil {
		s.logger.Warn("price catalog unavailable, keeping manual prices", zap.Error(err))
		return
	}

	eligible := pricing.ResolveEligiblePrices(catalog, pricing.ResolveContext{
		SellingCompany: req.SellingCompany,
		ClientID:       req.ClientID,
		ContractorID:   req.ContractorID,
		AsOfDate:       req.Date,
	})

	if match, ok := pricing.AutoFill(eligible, req.ServiceName); ok {
		req.UnitPrice = match.UnitPrice
		req.UnitCost = match.ContractorCost
		if req.UnitOfMeasure == "" {
			req.UnitOfMeasure = match.UnitOfMeasure
		}
	}
}

func applyPayload(o *model.Order, req OrderPayload) {
	o.Date = req.Date
	o.SellingCompany = req.SellingCompany
	o.ClientID = req.ClientID
	o.ClientName = req.ClientName
	o.ContractorID = req.ContractorID
	o.ContractorName = req.ContractorName
	o.PONumber = req.PONumber
	o.ServiceName = req.ServiceName
	o.ServiceDetails = req.ServiceDetails
	o.UnitOfMeasure = req.UnitOfMeasure
	o.Quantity = req.Quantity
	o.UnitPrice = req.UnitPrice
	o.UnitCost = req.UnitCost
	o.OperationsRep = req.OperationsRep
	o.Observations = req.Observations
	o.CommitmentDate = req.CommitmentDate
	o.ClientCertDate = req.ClientCertDate
	o.BillingDate = req.BillingDate

	// TotalValue is derived, never trusted from the caller
	o.TotalValue = pricing.ComputeOrderEconomics(*o).TotalValue
}

func (s *orderService) CreateOrder(ctx context.Context, who Identity, req OrderPayload) (*OrderResponse, error) {
	s.snapshotPrice(ctx, &req)

	var order model.Order
	applyPayload(&order, req)
	order.Status = s.normalizeStatus(ctx, req.Status)

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.orderRepo.Create(txCtx, &order); err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		history := &model.OrderHistoryEntry{
			OrderID: order.ID,
			Kind:    model.HistoryCreate,
			Detail:  "Order registered",
			User:    who.Name,
		}
		if err := s.orderRepo.AppendHistory(txCtx, history); err != nil {
			return fmt.Errorf("failed to write order history: %w", err)
		}

		return s.audit(txCtx, who, model.ActionCreateOrder, &order, req)
	})
	if err != nil {
		return nil, err
	}

	s.broadcast("order_created", order.ID)
	return s.GetOrder(ctx, order.ID.String())
}

func (s *orderService) GetOrder(ctx context.Context, id string) (*OrderResponse, error) {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid order id: %w", err)
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("order not found: %w", err)
	}
	return toOrderResponse(order), nil
}

// ListOrders loads the full order collection and applies search, company and
// status filters plus the single-column sort in memory, then pages the
// result. The computed progress column sorts by the same completion ratio
// the rendered percentages derive from.
func (s *orderService) ListOrders(ctx context.Context, q OrderListQuery) ([]OrderResponse, int64, error) {
	orders, err := s.orderRepo.ListByDateRange(ctx, "", "")
	if err != nil {
		// Read errors degrade to an empty list rather than crashing the view
		s.logger.Warn("order list unavailable", zap.Error(err))
		return []OrderResponse{}, 0, nil
	}

	filtered := pricing.FilterOrders(orders, q.Filter)

	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = pricing.SortByDate
		q.Ascending = false
	}
	pricing.SortOrders(filtered, sortBy, q.Ascending)

	total := int64(len(filtered))

	page, limit := q.Page, q.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}
	start := (page - 1) * limit
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + limit
	if end > len(filtered) {
		end = len(filtered)
	}

	res := make([]OrderResponse, 0, end-start)
	for _, o := range filtered[start:end] {
		res = append(res, *toOrderResponse(&o))
	}
	return res, total, nil
}

func (s *orderService) UpdateOrder(ctx context.Context, who Identity, id string, req OrderPayload) (*OrderResponse, error) {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid order id: %w", err)
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("order not found: %w", err)
	}

	s.snapshotPrice(ctx, &req)

	previousStatus := order.Status
	applyPayload(order, req)
	order.Status = s.normalizeStatus(ctx, req.Status)

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.orderRepo.Save(txCtx, order); err != nil {
			return fmt.Errorf("failed to save order: %w", err)
		}

		history := &model.OrderHistoryEntry{
			OrderID: order.ID,
			Kind:    model.HistoryEdit,
			Detail:  "Order updated",
			User:    who.Name,
		}
		if order.Status != previousStatus {
			history.Kind = model.HistoryStatusChange
			history.Detail = fmt.Sprintf("Status changed: %s → %s", previousStatus, order.Status)
		}
		if err := s.orderRepo.AppendHistory(txCtx, history); err != nil {
			return fmt.Errorf("failed to write order history: %w", err)
		}

		return s.audit(txCtx, who, model.ActionUpdateOrder, order, req)
	})
	if err != nil {
		return nil, err
	}

	s.broadcast("order_updated", order.ID)
	return s.GetOrder(ctx, id)
}

func (s *orderService) DeleteOrder(ctx context.Context, who Identity, id string) error {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid order id: %w", err)
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("order not found: %w", err)
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.orderRepo.Delete(txCtx, orderID); err != nil {
			return fmt.Errorf("failed to delete order: %w", err)
		}
		return s.audit(txCtx, who, model.ActionDeleteOrder, order, nil)
	})
	if err != nil {
		return err
	}

	s.broadcast("order_deleted", orderID)
	return nil
}

// --- Progress logs ---

func (s *orderService) AddProgressLog(ctx context.Context, who Identity, orderID string, req ProgressLogPayload) (*OrderResponse, error) {
	return s.mutateProgress(ctx, who, orderID, fmt.Sprintf("Progress reported: %.2f on %s", req.Quantity, req.Date),
		func(txCtx context.Context, oid uuid.UUID) error {
			log := &model.ProgressLogEntry{
				OrderID:           oid,
				Date:              req.Date,
				Quantity:          req.Quantity,
				CertificationDate: req.CertificationDate,
				BillingDate:       req.BillingDate,
				Notes:             req.Notes,
				User:              who.Name,
			}
			return s.orderRepo.SaveProgressLog(txCtx, log)
		})
}

func (s *orderService) UpdateProgressLog(ctx context.Context, who Identity, orderID, logID string, req ProgressLogPayload) (*OrderResponse, error) {
	lid, err := uuid.Parse(logID)
	if err != nil {
		return nil, fmt.Errorf("invalid progress log id: %w", err)
	}

	return s.mutateProgress(ctx, who, orderID, fmt.Sprintf("Progress log edited: %.2f on %s", req.Quantity, req.Date),
		func(txCtx context.Context, oid uuid.UUID) error {
			log, err := s.orderRepo.FindProgressLog(txCtx, oid, lid)
			if err != nil {
				return fmt.Errorf("progress log not found: %w", err)
			}
			log.Date = req.Date
			log.Quantity = req.Quantity
			log.CertificationDate = req.CertificationDate
			log.BillingDate = req.BillingDate
			log.Notes = req.Notes
			log.User = who.Name
			return s.orderRepo.SaveProgressLog(txCtx, log)
		})
}

func (s *orderService) DeleteProgressLog(ctx context.Context, who Identity, orderID, logID string) (*OrderResponse, error) {
	lid, err := uuid.Parse(logID)
	if err != nil {
		return nil, fmt.Errorf("invalid progress log id: %w", err)
	}

	return s.mutateProgress(ctx, who, orderID, "Progress log removed",
		func(txCtx context.Context, oid uuid.UUID) error {
			return s.orderRepo.DeleteProgressLog(txCtx, oid, lid)
		})
}

func (s *orderService) mutateProgress(ctx context.Context, who Identity, orderID, detail string, op func(ctx context.Context, oid uuid.UUID) error) (*OrderResponse, error) {
	oid, err := uuid.Parse(orderID)
	if err != nil {
		return nil, fmt.Errorf("invalid order id: %w", err)
	}
	if _, err := s.orderRepo.FindByID(ctx, oid); err != nil {
		return nil, fmt.Errorf("order not found: %w", err)
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := op(txCtx, oid); err != nil {
			return fmt.Errorf("failed to mutate progress logs: %w", err)
		}
		return s.orderRepo.AppendHistory(txCtx, &model.OrderHistoryEntry{
			OrderID: oid,
			Kind:    model.HistoryProgress,
			Detail:  detail,
			User:    who.Name,
		})
	})
	if err != nil {
		return nil, err
	}

	s.broadcast("order_updated", oid)
	return s.GetOrder(ctx, orderID)
}

// --- Attachments ---

func (s *orderService) AddAttachment(ctx context.Context, who Identity, orderID string, req AttachmentPayload) (*OrderResponse, error) {
	oid, err := uuid.Parse(orderID)
	if err != nil {
		return nil, fmt.Errorf("invalid order id: %w", err)
	}
	if _, err := s.orderRepo.FindByID(ctx, oid); err != nil {
		return nil, fmt.Errorf("order not found: %w", err)
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		att := &model.Attachment{OrderID: oid, Name: req.Name, URL: req.URL}
		if err := s.orderRepo.CreateAttachment(txCtx, att); err != nil {
			return fmt.Errorf("failed to add attachment: %w", err)
		}
		return s.orderRepo.AppendHistory(txCtx, &model.OrderHistoryEntry{
			OrderID: oid,
			Kind:    model.HistoryAttachment,
			Detail:  "Attachment added: " + req.Name,
			User:    who.Name,
		})
	})
	if err != nil {
		return nil, err
	}

	return s.GetOrder(ctx, orderID)
}

func (s *orderService) DeleteAttachment(ctx context.Context, who Identity, orderID, attID string) (*OrderResponse, error) {
	oid, err := uuid.Parse(orderID)
	if err != nil {
		return nil, fmt.Errorf("invalid order id: %w", err)
	}
	aid, err := uuid.Parse(attID)
	if err != nil {
		return nil, fmt.Errorf("invalid attachment id: %w", err)
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.orderRepo.DeleteAttachment(txCtx, oid, aid); err != nil {
			return fmt.Errorf("failed to delete attachment: %w", err)
		}
		return s.orderRepo.AppendHistory(txCtx, &model.OrderHistoryEntry{
			OrderID: oid,
			Kind:    model.HistoryAttachment,
			Detail:  "Attachment removed",
			User:    who.Name,
		})
	})
	if err != nil {
		return nil, err
	}

	return s.GetOrder(ctx, orderID)
}

// --- helpers ---

func (s *orderService) audit(ctx context.Context, who Identity, action string, order *model.Order, payload interface{}) error {
	details, _ := json.Marshal(payload)
	entry := &model.AuditLog{
		UserID:     who.UserUUID(),
		Action:     action,
		EntityID:   order.ID.String(),
		EntityName: order.ServiceName + " / " + order.ClientName,
		Details:    string(details),
	}
	if err := s.auditRepo.Log(ctx, entry); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}

func (s *orderService) broadcast(event string, orderID uuid.UUID) {
	if s.hub == nil {
		return
	}
	payload, _ := json.Marshal(OrderEvent{Event: event, OrderID: orderID.String()})
	s.hub.Broadcast <- payload
}
