package commands_test

import (
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/address"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func buyerWithProfile(t *testing.T, uow *testUnitOfWork) (actor kernel.UUID, userID kernel.UUID) {
	t.Helper()
	actor = kernel.NewUUID()
	userID = kernel.NewUUID()
	uow.profiles.On("GetBuyer", mock.Anything, actor).
		Return(&ports.BuyerProfile{ID: actor, UserID: userID}, nil).Once()
	return actor, userID
}

func TestCreateAddressCommandHandler_Handle_FirstAddressIsAlwaysPrimary(t *testing.T) {
	ctx := t.Context()
	uow := newTestUnitOfWork()
	buyerID, userID := buyerWithProfile(t, uow)

	uow.addrs.On("CountByUser", ctx, userID).Return(int64(0), nil).Once()

	var created *address.Address
	uow.addrs.On("Add", ctx, mock.AnythingOfType("*address.Address")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*address.Address) }).
		Return(nil).Once()

	cmd, err := commands.NewCreateAddressCommand(
		mustActorWithID(t, buyerID, kernel.RoleBuyer),
		kernel.NewUUID(), "12 Elm St", "Springfield", "IL", "62704", "555-0101", false)
	require.NoError(t, err)

	h := commands.NewCreateAddressCommandHandler(newUoWFactory(uow), stubVerifier{})
	require.NoError(t, h.Handle(ctx, cmd))

	require.NotNil(t, created)
	require.True(t, created.IsPrimary())
	require.True(t, created.UserID().IsEqual(userID))
	require.Equal(t, 1, uow.committed)
	uow.addrs.AssertNotCalled(t, "DemotePrimary", mock.Anything, mock.Anything)
}

func TestCreateAddressCommandHandler_Handle_NewPrimaryDemotesPrevious(t *testing.T) {
	ctx := t.Context()
	uow := newTestUnitOfWork()
	buyerID, userID := buyerWithProfile(t, uow)

	uow.addrs.On("CountByUser", ctx, userID).Return(int64(2), nil).Once()
	uow.addrs.On("DemotePrimary", ctx, userID).Return(nil).Once()
	uow.addrs.On("Add", ctx, mock.AnythingOfType("*address.Address")).Return(nil).Once()

	cmd, err := commands.NewCreateAddressCommand(
		mustActorWithID(t, buyerID, kernel.RoleBuyer),
		kernel.NewUUID(), "34 Oak Ave", "Springfield", "IL", "62704", "555-0102", true)
	require.NoError(t, err)

	h := commands.NewCreateAddressCommandHandler(newUoWFactory(uow), stubVerifier{})
	require.NoError(t, h.Handle(ctx, cmd))
	uow.addrs.AssertExpectations(t)
}

func TestDeleteAddressCommandHandler_Handle_SoleAddressIsInvalidState(t *testing.T) {
	ctx := t.Context()
	uow := newTestUnitOfWork()
	buyerID, userID := buyerWithProfile(t, uow)

	entity, err := address.NewAddress(kernel.NewUUID(), userID, "12 Elm St", "Springfield", "IL", "62704", "555-0101", true)
	require.NoError(t, err)

	uow.addrs.On("Get", ctx, entity.ID()).Return(entity, nil).Once()
	uow.addrs.On("CountByUser", ctx, userID).Return(int64(1), nil).Once()

	cmd, err := commands.NewDeleteAddressCommand(mustActorWithID(t, buyerID, kernel.RoleBuyer), entity.ID())
	require.NoError(t, err)

	h := commands.NewDeleteAddressCommandHandler(newUoWFactory(uow), stubVerifier{})
	require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrInvalidState)
	require.Zero(t, uow.committed)
	uow.addrs.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteAddressCommandHandler_Handle_PrimaryDeletionPromotesOldest(t *testing.T) {
	ctx := t.Context()
	uow := newTestUnitOfWork()
	buyerID, userID := buyerWithProfile(t, uow)

	primary, err := address.NewAddress(kernel.NewUUID(), userID, "12 Elm St", "Springfield", "IL", "62704", "555-0101", true)
	require.NoError(t, err)
	oldest, err := address.RestoreAddress(kernel.NewUUID(), userID, "34 Oak Ave", "Springfield", "IL", "62704", "555-0102",
		false, time.Now().UTC().Add(-time.Hour))
	require.NoError(t, err)

	uow.addrs.On("Get", ctx, primary.ID()).Return(primary, nil).Once()
	uow.addrs.On("CountByUser", ctx, userID).Return(int64(2), nil).Once()
	uow.addrs.On("Delete", ctx, primary.ID()).Return(nil).Once()
	uow.addrs.On("GetOldestByUser", ctx, userID).Return(oldest, nil).Once()
	uow.addrs.On("Update", ctx, oldest).Return(nil).Once()

	cmd, err := commands.NewDeleteAddressCommand(mustActorWithID(t, buyerID, kernel.RoleBuyer), primary.ID())
	require.NoError(t, err)

	h := commands.NewDeleteAddressCommandHandler(newUoWFactory(uow), stubVerifier{})
	require.NoError(t, h.Handle(ctx, cmd))

	require.True(t, oldest.IsPrimary())
	require.Equal(t, 1, uow.committed)
	uow.addrs.AssertExpectations(t)
}

func TestDeleteAddressCommandHandler_Handle_NonPrimaryDeletionSkipsPromotion(t *testing.T) {
	ctx := t.Context()
	uow := newTestUnitOfWork()
	buyerID, userID := buyerWithProfile(t, uow)

	entity, err := address.NewAddress(kernel.NewUUID(), userID, "34 Oak Ave", "Springfield", "IL", "62704", "555-0102", false)
	require.NoError(t, err)

	uow.addrs.On("Get", ctx, entity.ID()).Return(entity, nil).Once()
	uow.addrs.On("CountByUser", ctx, userID).Return(int64(2), nil).Once()
	uow.addrs.On("Delete", ctx, entity.ID()).Return(nil).Once()

	cmd, err := commands.NewDeleteAddressCommand(mustActorWithID(t, buyerID, kernel.RoleBuyer), entity.ID())
	require.NoError(t, err)

	h := commands.NewDeleteAddressCommandHandler(newUoWFactory(uow), stubVerifier{})
	require.NoError(t, h.Handle(ctx, cmd))
	uow.addrs.AssertNotCalled(t, "GetOldestByUser", mock.Anything, mock.Anything)
}

func TestUpdateAddressCommandHandler_Handle_ForeignAddressIsNotFound(t *testing.T) {
	ctx := t.Context()
	uow := newTestUnitOfWork()
	buyerID, _ := buyerWithProfile(t, uow)

	foreign, err := address.NewAddress(kernel.NewUUID(), kernel.NewUUID(), "99 Other Rd", "Shelbyville", "IL", "62705", "555-0199", false)
	require.NoError(t, err)

	uow.addrs.On("Get", ctx, foreign.ID()).Return(foreign, nil).Once()

	cmd, err := commands.NewUpdateAddressCommand(
		mustActorWithID(t, buyerID, kernel.RoleBuyer),
		foreign.ID(), "99 Other Rd", "Shelbyville", "IL", "62705", "555-0199", false)
	require.NoError(t, err)

	h := commands.NewUpdateAddressCommandHandler(newUoWFactory(uow), stubVerifier{})
	require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrObjectNotFound)
	require.Zero(t, uow.committed)
}

func TestUpdateAddressCommandHandler_Handle_PromotionDemotesPrevious(t *testing.T) {
	ctx := t.Context()
	uow := newTestUnitOfWork()
	buyerID, userID := buyerWithProfile(t, uow)

	entity, err := address.NewAddress(kernel.NewUUID(), userID, "34 Oak Ave", "Springfield", "IL", "62704", "555-0102", false)
	require.NoError(t, err)

	uow.addrs.On("Get", ctx, entity.ID()).Return(entity, nil).Once()
	uow.addrs.On("DemotePrimary", ctx, userID).Return(nil).Once()
	uow.addrs.On("Update", ctx, entity).Return(nil).Once()

	cmd, err := commands.NewUpdateAddressCommand(
		mustActorWithID(t, buyerID, kernel.RoleBuyer),
		entity.ID(), "34 Oak Ave", "Springfield", "IL", "62704", "555-0102", true)
	require.NoError(t, err)

	h := commands.NewUpdateAddressCommandHandler(newUoWFactory(uow), stubVerifier{})
	require.NoError(t, h.Handle(ctx, cmd))

	require.True(t, entity.IsPrimary())
	uow.addrs.AssertExpectations(t)
}
