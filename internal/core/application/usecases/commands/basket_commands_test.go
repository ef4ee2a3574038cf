package commands_test

import (
	"errors"
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/basket"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAddToWishlistCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	uow := newTestUnitOfWork()

	actor := mustActor(t, kernel.RoleBuyer)
	target := productWithVideo(t, kernel.NewUUID(), "")

	uow.products.On("Get", ctx, target.ID()).Return(target, nil).Once()

	var saved *basket.WishlistItem
	uow.baskets.On("AddWishlistItem", ctx, mock.AnythingOfType("*basket.WishlistItem")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*basket.WishlistItem) }).
		Return(nil).Once()

	cmd, err := commands.NewAddToWishlistCommand(actor, kernel.NewUUID(), target.ID())
	require.NoError(t, err)

	h := commands.NewAddToWishlistCommandHandler(newUoWFactory(uow), stubVerifier{})
	require.NoError(t, h.Handle(ctx, cmd))

	require.NotNil(t, saved)
	require.True(t, saved.BuyerID().IsEqual(actor.ActorID()))
	require.True(t, saved.ProductID().IsEqual(target.ID()))
}

func TestAddToWishlistCommandHandler_Handle_DuplicatePairIsConflict(t *testing.T) {
	ctx := t.Context()
	uow := newTestUnitOfWork()

	actor := mustActor(t, kernel.RoleBuyer)
	target := productWithVideo(t, kernel.NewUUID(), "")

	uow.products.On("Get", ctx, target.ID()).Return(target, nil).Twice()
	uow.baskets.On("AddWishlistItem", ctx, mock.AnythingOfType("*basket.WishlistItem")).
		Return(nil).Once()
	uow.baskets.On("AddWishlistItem", ctx, mock.AnythingOfType("*basket.WishlistItem")).
		Return(errs.NewConflictError("wishlist item", errors.New("duplicated key"))).Once()

	h := commands.NewAddToWishlistCommandHandler(newUoWFactory(uow), stubVerifier{})

	first, err := commands.NewAddToWishlistCommand(actor, kernel.NewUUID(), target.ID())
	require.NoError(t, err)
	require.NoError(t, h.Handle(ctx, first))

	second, err := commands.NewAddToWishlistCommand(actor, kernel.NewUUID(), target.ID())
	require.NoError(t, err)
	require.ErrorIs(t, h.Handle(ctx, second), errs.ErrConflict)
}

func TestAddToWishlistCommandHandler_Handle_BlockedProductIsNotFound(t *testing.T) {
	ctx := t.Context()
	uow := newTestUnitOfWork()

	actor := mustActor(t, kernel.RoleBuyer)
	target := productWithVideo(t, kernel.NewUUID(), "")
	require.NoError(t, target.Block())

	uow.products.On("Get", ctx, target.ID()).Return(target, nil).Once()

	cmd, err := commands.NewAddToWishlistCommand(actor, kernel.NewUUID(), target.ID())
	require.NoError(t, err)

	h := commands.NewAddToWishlistCommandHandler(newUoWFactory(uow), stubVerifier{})
	require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrObjectNotFound)
	uow.baskets.AssertNotCalled(t, "AddWishlistItem", mock.Anything, mock.Anything)
}

func TestRemoveFromWishlistCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	uow := newTestUnitOfWork()

	actor := mustActor(t, kernel.RoleBuyer)
	itemID := kernel.NewUUID()
	uow.baskets.On("RemoveWishlistItem", ctx, itemID).Return(nil).Once()

	cmd, err := commands.NewRemoveFromWishlistCommand(actor, itemID)
	require.NoError(t, err)

	h := commands.NewRemoveFromWishlistCommandHandler(newUoWFactory(uow), stubVerifier{})
	require.NoError(t, h.Handle(ctx, cmd))
	uow.baskets.AssertExpectations(t)
}

func TestAddToCartCommandHandler_Handle_DuplicatePairIsConflict(t *testing.T) {
	ctx := t.Context()
	uow := newTestUnitOfWork()

	actor := mustActor(t, kernel.RoleBuyer)
	target := productWithVideo(t, kernel.NewUUID(), "")

	uow.products.On("Get", ctx, target.ID()).Return(target, nil).Once()
	uow.baskets.On("AddCartItem", ctx, mock.AnythingOfType("*basket.CartItem")).
		Return(errs.NewConflictError("cart item", errors.New("duplicated key"))).Once()

	cmd, err := commands.NewAddToCartCommand(actor, kernel.NewUUID(), target.ID(), 1)
	require.NoError(t, err)

	h := commands.NewAddToCartCommandHandler(newUoWFactory(uow), stubVerifier{})
	require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrConflict)
}

func TestAddToCartCommandHandler_Handle_InsufficientStock(t *testing.T) {
	ctx := t.Context()
	uow := newTestUnitOfWork()

	actor := mustActor(t, kernel.RoleBuyer)
	target := productWithVideo(t, kernel.NewUUID(), "")

	uow.products.On("Get", ctx, target.ID()).Return(target, nil).Once()

	cmd, err := commands.NewAddToCartCommand(actor, kernel.NewUUID(), target.ID(), target.Stock()+1)
	require.NoError(t, err)

	h := commands.NewAddToCartCommandHandler(newUoWFactory(uow), stubVerifier{})
	require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrInvalidState)
	uow.baskets.AssertNotCalled(t, "AddCartItem", mock.Anything, mock.Anything)
}

func TestAddToCartCommand_RejectsNonPositiveQuantity(t *testing.T) {
	actor := mustActor(t, kernel.RoleBuyer)
	_, err := commands.NewAddToCartCommand(actor, kernel.NewUUID(), kernel.NewUUID(), 0)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestAddToWishlistCommandHandler_Handle_NonBuyerRejected(t *testing.T) {
	cmd, err := commands.NewAddToWishlistCommand(mustActor(t, kernel.RoleSeller), kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)

	h := commands.NewAddToWishlistCommandHandler(newUoWFactory(newTestUnitOfWork()), stubVerifier{})
	require.ErrorIs(t, h.Handle(t.Context(), cmd), errs.ErrInvalidState)
}
