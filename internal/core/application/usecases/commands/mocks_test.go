package commands_test

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"marketplace/internal/core/application/auth"
	"marketplace/internal/core/application/saga"
	"marketplace/internal/core/domain/model/address"
	"marketplace/internal/core/domain/model/basket"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/product"
	"marketplace/internal/core/domain/model/store"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fakeBlobStore is an in-memory blob store with per-key failure injection,
// used to observe the exact object layout a plan leaves behind.
type fakeBlobStore struct {
	objects      map[string][]byte
	failUploadOn string
	failMoveTo   string
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{objects: map[string][]byte{}}
}

func (f *fakeBlobStore) Upload(_ context.Context, key string, data []byte, _ string) (ports.BlobRef, error) {
	if key == f.failUploadOn {
		return ports.BlobRef{}, errs.NewUpstreamIOError("blob upload", fmt.Errorf("injected failure on %s", key))
	}
	f.objects[key] = data
	return ports.BlobRef{Key: key, URL: "https://blobs.test/" + key}, nil
}

func (f *fakeBlobStore) Delete(_ context.Context, key string) error {
	delete(f.objects, key)
	return nil
}

func (f *fakeBlobStore) Copy(_ context.Context, srcKey, destKey string) error {
	data, ok := f.objects[srcKey]
	if !ok {
		return errs.NewUpstreamIOError("blob copy", fmt.Errorf("source %s missing", srcKey))
	}
	f.objects[destKey] = data
	return nil
}

func (f *fakeBlobStore) Move(ctx context.Context, srcKey, destKey string) error {
	if destKey == f.failMoveTo {
		return errs.NewUpstreamIOError("blob move", fmt.Errorf("injected failure on %s", destKey))
	}
	if err := f.Copy(ctx, srcKey, destKey); err != nil {
		return err
	}
	return f.Delete(ctx, srcKey)
}

func (f *fakeBlobStore) keys() []string {
	out := make([]string, 0, len(f.objects))
	for k := range f.objects {
		out = append(out, k)
	}
	return out
}

type fakeDeadLetters struct {
	letters []*ports.DeadLetter
}

func (f *fakeDeadLetters) Add(_ context.Context, letter *ports.DeadLetter) error {
	f.letters = append(f.letters, letter)
	return nil
}

func (f *fakeDeadLetters) GetUnresolved(_ context.Context, _ int) ([]*ports.DeadLetter, error) {
	return f.letters, nil
}

func (f *fakeDeadLetters) MarkResolved(_ context.Context, _ kernel.UUID, _ time.Time) error {
	return nil
}

func newTestEngine() *saga.Engine {
	return saga.NewEngine(&fakeDeadLetters{}, slog.New(slog.DiscardHandler))
}

// stubVerifier replaces the actor lookup in handler tests; verifier behavior
// itself is covered in the auth package.
type stubVerifier struct{ err error }

func (s stubVerifier) Verify(_ context.Context, _ auth.ActorContext) error { return s.err }

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Add(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}
func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}
func (m *MockUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}
func (m *MockUserRepository) GetByIDAndRole(ctx context.Context, id kernel.UUID, role kernel.Role) (*user.User, error) {
	args := m.Called(ctx, id, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}
func (m *MockUserRepository) DeleteRefreshTokensByUser(ctx context.Context, userID kernel.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

type MockProfileRepository struct{ mock.Mock }

func (m *MockProfileRepository) GetBuyer(ctx context.Context, id kernel.UUID) (*ports.BuyerProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.BuyerProfile), args.Error(1)
}
func (m *MockProfileRepository) GetSeller(ctx context.Context, id kernel.UUID) (*ports.SellerProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.SellerProfile), args.Error(1)
}
func (m *MockProfileRepository) GetRider(ctx context.Context, id kernel.UUID) (*ports.RiderProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.RiderProfile), args.Error(1)
}
func (m *MockProfileRepository) GetBuyerByUserID(ctx context.Context, userID kernel.UUID) (*ports.BuyerProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.BuyerProfile), args.Error(1)
}
func (m *MockProfileRepository) GetSellerByUserID(ctx context.Context, userID kernel.UUID) (*ports.SellerProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.SellerProfile), args.Error(1)
}

type MockStoreRepository struct{ mock.Mock }

func (m *MockStoreRepository) Add(ctx context.Context, s *store.Store) error {
	return m.Called(ctx, s).Error(0)
}
func (m *MockStoreRepository) Update(ctx context.Context, s *store.Store) error {
	return m.Called(ctx, s).Error(0)
}
func (m *MockStoreRepository) Get(ctx context.Context, id kernel.UUID) (*store.Store, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Store), args.Error(1)
}
func (m *MockStoreRepository) GetAllBySeller(ctx context.Context, sellerID kernel.UUID) ([]*store.Store, error) {
	args := m.Called(ctx, sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*store.Store), args.Error(1)
}
func (m *MockStoreRepository) Delete(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockProductRepository struct{ mock.Mock }

func (m *MockProductRepository) Add(ctx context.Context, p *product.Product) error {
	return m.Called(ctx, p).Error(0)
}
func (m *MockProductRepository) Update(ctx context.Context, p *product.Product) error {
	return m.Called(ctx, p).Error(0)
}
func (m *MockProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}
func (m *MockProductRepository) GetAllByStore(ctx context.Context, storeID kernel.UUID) ([]*product.Product, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*product.Product), args.Error(1)
}
func (m *MockProductRepository) Delete(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockAddressRepository struct{ mock.Mock }

func (m *MockAddressRepository) Add(ctx context.Context, a *address.Address) error {
	return m.Called(ctx, a).Error(0)
}
func (m *MockAddressRepository) Update(ctx context.Context, a *address.Address) error {
	return m.Called(ctx, a).Error(0)
}
func (m *MockAddressRepository) Get(ctx context.Context, id kernel.UUID) (*address.Address, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*address.Address), args.Error(1)
}
func (m *MockAddressRepository) CountByUser(ctx context.Context, userID kernel.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockAddressRepository) GetOldestByUser(ctx context.Context, userID kernel.UUID) (*address.Address, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*address.Address), args.Error(1)
}
func (m *MockAddressRepository) DemotePrimary(ctx context.Context, userID kernel.UUID) error {
	return m.Called(ctx, userID).Error(0)
}
func (m *MockAddressRepository) Delete(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockBasketRepository struct{ mock.Mock }

func (m *MockBasketRepository) AddWishlistItem(ctx context.Context, item *basket.WishlistItem) error {
	return m.Called(ctx, item).Error(0)
}
func (m *MockBasketRepository) RemoveWishlistItem(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockBasketRepository) AddCartItem(ctx context.Context, item *basket.CartItem) error {
	return m.Called(ctx, item).Error(0)
}
func (m *MockBasketRepository) RemoveCartItem(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockBasketRepository) DeleteAllByBuyer(ctx context.Context, buyerID kernel.UUID) error {
	return m.Called(ctx, buyerID).Error(0)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) BlockOrdersByBuyer(ctx context.Context, buyerID kernel.UUID) (int64, error) {
	args := m.Called(ctx, buyerID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockOrderRepository) BlockReturnRequestsByBuyer(ctx context.Context, buyerID kernel.UUID) (int64, error) {
	args := m.Called(ctx, buyerID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockOrderRepository) BlockReviewsByBuyer(ctx context.Context, buyerID kernel.UUID) (int64, error) {
	args := m.Called(ctx, buyerID)
	return args.Get(0).(int64), args.Error(1)
}

// testUnitOfWork wires the mock repositories behind the unit-of-work
// interface. Begin/Commit/Rollback are recorded, not mocked, since most
// assertions only care whether the transaction committed.
type testUnitOfWork struct {
	users    *MockUserRepository
	profiles *MockProfileRepository
	stores   *MockStoreRepository
	products *MockProductRepository
	addrs    *MockAddressRepository
	baskets  *MockBasketRepository
	orders   *MockOrderRepository

	began      int
	committed  int
	rolledBack int
}

func newTestUnitOfWork() *testUnitOfWork {
	return &testUnitOfWork{
		users:    new(MockUserRepository),
		profiles: new(MockProfileRepository),
		stores:   new(MockStoreRepository),
		products: new(MockProductRepository),
		addrs:    new(MockAddressRepository),
		baskets:  new(MockBasketRepository),
		orders:   new(MockOrderRepository),
	}
}

func (u *testUnitOfWork) Begin(_ context.Context) error    { u.began++; return nil }
func (u *testUnitOfWork) Commit(_ context.Context) error   { u.committed++; return nil }
func (u *testUnitOfWork) Rollback(_ context.Context) error { u.rolledBack++; return nil }

func (u *testUnitOfWork) UserRepository() ports.UserRepository       { return u.users }
func (u *testUnitOfWork) ProfileRepository() ports.ProfileRepository { return u.profiles }
func (u *testUnitOfWork) StoreRepository() ports.StoreRepository     { return u.stores }
func (u *testUnitOfWork) ProductRepository() ports.ProductRepository { return u.products }
func (u *testUnitOfWork) AddressRepository() ports.AddressRepository { return u.addrs }
func (u *testUnitOfWork) BasketRepository() ports.BasketRepository   { return u.baskets }
func (u *testUnitOfWork) OrderRepository() ports.OrderRepository     { return u.orders }

type testUnitOfWorkFactory struct{ uow *testUnitOfWork }

func (f *testUnitOfWorkFactory) Create() ports.UnitOfWork { return f.uow }

func newUoWFactory(uow *testUnitOfWork) ports.UnitOfWorkFactory {
	return &testUnitOfWorkFactory{uow: uow}
}

func mustActor(t *testing.T, role kernel.Role) auth.ActorContext {
	t.Helper()
	actor, err := auth.NewActorContext(kernel.NewUUID(), role)
	require.NoError(t, err)
	return actor
}

func mustActorWithID(t *testing.T, id kernel.UUID, role kernel.Role) auth.ActorContext {
	t.Helper()
	actor, err := auth.NewActorContext(id, role)
	require.NoError(t, err)
	return actor
}
