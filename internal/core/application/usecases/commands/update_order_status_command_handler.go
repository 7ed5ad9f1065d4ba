package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// UpdateOrderStatusCommandHandler advances an order held by the calling agent
// and appends the new status to the order's history in the same transaction.
//
// Outcomes:
//   - KindNotAuthenticated / KindNotAuthorized for callers without an agent role
//   - KindNotAuthorized when the order exists but belongs to someone else
//   - KindNotFound when the order does not exist
//   - KindInvalidTransition for anything outside assigned->picked->delivered
//   - KindTransactionFailed, logged, for storage failures
type UpdateOrderStatusCommandHandler struct {
	uowFactory DispatchUoWFactory
	publisher  ports.DomainEventPublisher
	dispatcher services.OrderDispatcher
	logger     *slog.Logger
}

func NewUpdateOrderStatusCommandHandler(
	uowFactory DispatchUoWFactory,
	publisher ports.DomainEventPublisher,
	logger *slog.Logger,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		dispatcher: services.NewOrderDispatcher(),
		logger:     logger.With("component", "update_order_status"),
	}
}

func (h UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) Result {
	if err := cmd.Validate(); err != nil {
		return failed(KindInvalidRequest, err.Error())
	}

	if !cmd.IsAuthenticated() {
		return failed(KindNotAuthenticated, MsgNotAuthenticated)
	}

	uow := h.uowFactory.Create()

	agent, err := uow.AgentRepository().GetByUserID(ctx, cmd.UserID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return failed(KindNotAuthorized, MsgNotAuthorizedAsAgent)
	}
	if err != nil {
		return h.transactionFailed(ctx, cmd, err)
	}

	if err = uow.Begin(ctx); err != nil {
		return h.transactionFailed(ctx, cmd, err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	o, err := orderRepo.GetAssignedForUpdate(ctx, cmd.OrderID(), agent.ID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return h.notHeld(ctx, orderRepo, cmd)
	}
	if err != nil {
		return h.transactionFailed(ctx, cmd, err)
	}

	err = h.dispatcher.Advance(o, agent, cmd.NextStatus())
	if errors.Is(err, order.ErrInvalidTransition) {
		return failed(KindInvalidTransition,
			fmt.Sprintf(msgTransitionNotAllowed, o.Status(), cmd.NextStatus()))
	}
	if errors.Is(err, services.ErrNotAssignedAgent) {
		return failed(KindNotAuthorized, MsgNotAuthorized)
	}
	if err != nil {
		return h.transactionFailed(ctx, cmd, err)
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return h.transactionFailed(ctx, cmd, err)
	}

	record, err := order.RecordFor(o)
	if err != nil {
		return h.transactionFailed(ctx, cmd, err)
	}

	if err = uow.StatusRepository().Add(ctx, record); err != nil {
		return h.transactionFailed(ctx, cmd, err)
	}

	if err = uow.Commit(ctx); err != nil {
		return h.transactionFailed(ctx, cmd, err)
	}

	h.publisher.Publish(ctx, o.DomainEvents()...)
	o.ClearDomainEvents()

	return succeeded(MsgStatusUpdated)
}

// notHeld tells an order owned by another agent (or still unclaimed) apart
// from one that does not exist.
func (h UpdateOrderStatusCommandHandler) notHeld(
	ctx context.Context,
	orderRepo ports.OrderRepository,
	cmd UpdateOrderStatusCommand,
) Result {
	_, err := orderRepo.Get(ctx, cmd.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return failed(KindNotFound, MsgOrderNotFound)
	}
	if err != nil {
		return h.transactionFailed(ctx, cmd, err)
	}
	return failed(KindNotAuthorized, MsgNotAuthorized)
}

func (h UpdateOrderStatusCommandHandler) transactionFailed(
	ctx context.Context,
	cmd UpdateOrderStatusCommand,
	err error,
) Result {
	h.logger.ErrorContext(ctx, "Update status error",
		"order_id", cmd.OrderID().String(),
		"next_status", cmd.NextStatus().String(),
		"error", err,
	)
	return failed(KindTransactionFailed, MsgTransactionFailed)
}
