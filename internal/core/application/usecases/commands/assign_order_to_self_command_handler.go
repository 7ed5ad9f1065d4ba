package commands

import (
	"context"
	"errors"
	"log/slog"

	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// AssignOrderToSelfCommandHandler lets an authenticated agent claim an order.
//
// The order row is read with FOR UPDATE and only while it has no agent, so of
// any number of concurrent claims exactly one succeeds; the rest find nothing
// and get KindAlreadyTaken. Notifications go out only after commit.
type AssignOrderToSelfCommandHandler struct {
	uowFactory DispatchUoWFactory
	publisher  ports.DomainEventPublisher
	dispatcher services.OrderDispatcher
	logger     *slog.Logger
}

func NewAssignOrderToSelfCommandHandler(
	uowFactory DispatchUoWFactory,
	publisher ports.DomainEventPublisher,
	logger *slog.Logger,
) AssignOrderToSelfCommandHandler {
	return AssignOrderToSelfCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		dispatcher: services.NewOrderDispatcher(),
		logger:     logger.With("component", "assign_order_to_self"),
	}
}

func (h AssignOrderToSelfCommandHandler) Handle(ctx context.Context, cmd AssignOrderToSelfCommand) Result {
	if err := cmd.Validate(); err != nil {
		return failed(KindInvalidRequest, err.Error())
	}

	if !cmd.IsAuthenticated() {
		return failed(KindNotAuthenticated, MsgNotAuthenticated)
	}

	uow := h.uowFactory.Create()

	agent, err := uow.AgentRepository().GetByUserID(ctx, cmd.UserID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return failed(KindNotAuthorized, MsgNotAuthorized)
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

	o, err := orderRepo.GetUnassignedForUpdate(ctx, cmd.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return failed(KindAlreadyTaken, MsgOrderUnavailable)
	}
	if err != nil {
		return h.transactionFailed(ctx, cmd, err)
	}

	err = h.dispatcher.Claim(o, agent)
	if errors.Is(err, services.ErrOrderNotAvailable) {
		return failed(KindAlreadyTaken, MsgOrderUnavailable)
	}
	if err != nil {
		return h.transactionFailed(ctx, cmd, err)
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return h.transactionFailed(ctx, cmd, err)
	}

	if err = uow.Commit(ctx); err != nil {
		return h.transactionFailed(ctx, cmd, err)
	}

	h.publisher.Publish(ctx, o.DomainEvents()...)
	o.ClearDomainEvents()

	return succeeded(MsgOrderAccepted)
}

func (h AssignOrderToSelfCommandHandler) transactionFailed(
	ctx context.Context,
	cmd AssignOrderToSelfCommand,
	err error,
) Result {
	h.logger.ErrorContext(ctx, "Assign order error",
		"order_id", cmd.OrderID().String(),
		"user_id", cmd.UserID().String(),
		"error", err,
	)
	return failed(KindTransactionFailed, MsgTransactionFailed)
}
