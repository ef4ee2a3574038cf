// Package cascade implements the cascading soft-delete propagator: when a
// parent entity transitions to the terminal Blocked state, the equivalent
// transition is applied to every entity it structurally owns, within the same
// database transaction as the parent's own update.
package cascade

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"marketplace/internal/core/application/saga"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/product"
	"marketplace/internal/core/domain/model/store"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// Report counts the rows touched by one cascade, used by callers for
// logging and by tests to assert cascade extent.
type Report struct {
	Stores   int
	Products int
	Orders   int64
	Returns  int64
	Reviews  int64
}

// Propagator walks owned children of a blocked parent and applies the same
// state transition to each. It never begins or commits a transaction itself:
// the caller opens the unit of work, and every child mutation joins that
// scope, so the parent's transition and all cascaded transitions commit or
// roll back together. Any child failure aborts the whole cascade with a
// single aggregated error.
type Propagator struct {
	engine *saga.Engine
	logger *slog.Logger
}

// NewPropagator creates a propagator that delegates per-child transitions to
// the workflow engine.
func NewPropagator(engine *saga.Engine, logger *slog.Logger) *Propagator {
	return &Propagator{
		engine: engine,
		logger: logger.With("component", "cascade_propagator"),
	}
}

// BlockUserChildren cascades a user's transition to Blocked onto everything
// the user owns, according to its role:
//
//   - Seller: every owned store, each cascading to its products.
//   - Buyer: cart and wishlist rows are hard-deleted (ephemeral, not
//     archival); orders, return requests and product reviews are soft-blocked
//     to preserve historical record.
//   - Rider: no cascading side effects. Pending deliveries and returns should
//     probably be reassigned, but reassignment rules are undefined so far.
//
// For every role, the user's refresh tokens are revoked so a blocked account
// cannot renew its session.
//
// The user aggregate itself must already be blocked and persisted by the
// caller inside the same open unit of work.
func (p *Propagator) BlockUserChildren(ctx context.Context, uow ports.UnitOfWork, u *user.User) (Report, error) {
	var report Report

	if err := u.Validate(); err != nil {
		return report, err
	}

	switch u.Role() {
	case kernel.RoleSeller:
		if err := p.blockSellerStores(ctx, uow, u.ID(), &report); err != nil {
			return report, err
		}
	case kernel.RoleBuyer:
		if err := p.blockBuyerRecords(ctx, uow, u.ID(), &report); err != nil {
			return report, err
		}
	case kernel.RoleRider:
		p.logger.DebugContext(ctx, "rider blocked, no cascade defined",
			"user_id", u.ID().String())
	}

	if err := uow.UserRepository().DeleteRefreshTokensByUser(ctx, u.ID()); err != nil {
		return report, fmt.Errorf("revoke refresh tokens: %w", err)
	}

	return report, nil
}

// BlockStoreChildren cascades a store's transition to Blocked onto every
// product under it. Each product transition is delegated to the workflow
// engine as a nested single-step plan that joins the caller's open
// transaction through the shared unit of work.
func (p *Propagator) BlockStoreChildren(ctx context.Context, uow ports.UnitOfWork, st *store.Store) (Report, error) {
	var report Report

	if err := st.Validate(); err != nil {
		return report, err
	}

	products, err := uow.ProductRepository().GetAllByStore(ctx, st.ID())
	if err != nil {
		return report, fmt.Errorf("list products of store %s: %w", st.ID(), err)
	}

	for _, prod := range products {
		if prod.OperationalState().IsTerminal() {
			continue
		}
		if err = p.blockProduct(ctx, uow, prod); err != nil {
			return report, fmt.Errorf("block product %s: %w", prod.ID(), err)
		}
		report.Products++
	}

	return report, nil
}

func (p *Propagator) blockSellerStores(ctx context.Context, uow ports.UnitOfWork, userID kernel.UUID, report *Report) error {
	seller, err := uow.ProfileRepository().GetSellerByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			p.logger.DebugContext(ctx, "seller user has no seller profile, nothing to cascade",
				"user_id", userID.String())
			return nil
		}
		return fmt.Errorf("resolve seller profile: %w", err)
	}

	stores, err := uow.StoreRepository().GetAllBySeller(ctx, seller.ID)
	if err != nil {
		return fmt.Errorf("list stores of seller %s: %w", seller.ID, err)
	}

	for _, st := range stores {
		if st.OperationalState().IsTerminal() {
			continue
		}
		if err = st.Block(); err != nil {
			return err
		}
		if err = uow.StoreRepository().Update(ctx, st); err != nil {
			return fmt.Errorf("block store %s: %w", st.ID(), err)
		}
		report.Stores++

		childReport, childErr := p.BlockStoreChildren(ctx, uow, st)
		if childErr != nil {
			return childErr
		}
		report.Products += childReport.Products
	}

	return nil
}

func (p *Propagator) blockBuyerRecords(ctx context.Context, uow ports.UnitOfWork, userID kernel.UUID, report *Report) error {
	buyer, err := uow.ProfileRepository().GetBuyerByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			p.logger.DebugContext(ctx, "buyer user has no buyer profile, nothing to cascade",
				"user_id", userID.String())
			return nil
		}
		return fmt.Errorf("resolve buyer profile: %w", err)
	}

	if err = uow.BasketRepository().DeleteAllByBuyer(ctx, buyer.ID); err != nil {
		return fmt.Errorf("delete cart and wishlist of buyer %s: %w", buyer.ID, err)
	}

	orders := uow.OrderRepository()
	if report.Orders, err = orders.BlockOrdersByBuyer(ctx, buyer.ID); err != nil {
		return fmt.Errorf("block orders of buyer %s: %w", buyer.ID, err)
	}
	if report.Returns, err = orders.BlockReturnRequestsByBuyer(ctx, buyer.ID); err != nil {
		return fmt.Errorf("block return requests of buyer %s: %w", buyer.ID, err)
	}
	if report.Reviews, err = orders.BlockReviewsByBuyer(ctx, buyer.ID); err != nil {
		return fmt.Errorf("block reviews of buyer %s: %w", buyer.ID, err)
	}

	return nil
}

// blockProduct runs a nested single-step plan for one product. The record
// write joins the outer transaction; its compensation re-applies the
// pre-block snapshot, keeping the engine contract even though the
// surrounding rollback would also undo the write.
func (p *Propagator) blockProduct(ctx context.Context, uow ports.UnitOfWork, prod *product.Product) error {
	prior := *prod

	plan := saga.NewPlan(fmt.Sprintf("block product %s", prod.ID())).
		Add(saga.NewRecordWrite("set product operational state to blocked",
			func(ctx context.Context) error {
				if err := prod.Block(); err != nil {
					return err
				}
				return uow.ProductRepository().Update(ctx, prod)
			},
			func(ctx context.Context) error {
				return uow.ProductRepository().Update(ctx, &prior)
			},
		))

	return p.engine.Run(ctx, plan)
}
