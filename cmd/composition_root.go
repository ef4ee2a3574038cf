package cmd

import (
	"log/slog"

	httpin "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/adapters/out/postgres/addressrepo"
	"marketplace/internal/adapters/out/postgres/basketrepo"
	"marketplace/internal/adapters/out/postgres/deadletterrepo"
	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/adapters/out/postgres/productrepo"
	"marketplace/internal/adapters/out/postgres/profilerepo"
	"marketplace/internal/adapters/out/postgres/storerepo"
	"marketplace/internal/adapters/out/postgres/userrepo"
	"marketplace/internal/core/application/auth"
	"marketplace/internal/core/application/cascade"
	"marketplace/internal/core/application/saga"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/ports"
	"marketplace/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB      *gorm.DB
	uowFactory  *postgres.GormUnitOfWorkFactory
	deadLetters ports.DeadLetterRepository
	blobs       ports.BlobStore
	engine      *saga.Engine
	verifier    auth.Verifier
	propagator  *cascade.Propagator
	logger      *slog.Logger
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB, blobs ports.BlobStore, logger *slog.Logger) CompositionRoot {
	uowFactory := postgres.NewGormUnitOfWorkFactory(gormDB)

	// Dead letters ride the main connection so a letter written while a
	// workflow transaction unwinds survives that transaction's rollback.
	deadLetters := deadletterrepo.NewGormDeadLetterRepository(gormDB)
	engine := saga.NewEngine(deadLetters, logger)

	lookup := uowFactory.Create()
	return CompositionRoot{
		gormDB:      gormDB,
		uowFactory:  uowFactory,
		deadLetters: deadLetters,
		blobs:       blobs,
		engine:      engine,
		verifier:    auth.NewVerifier(lookup.UserRepository(), lookup.ProfileRepository()),
		propagator:  cascade.NewPropagator(engine, logger),
		logger:      logger,
	}
}

// Migrate creates or updates the record store schema for every persisted
// model of the service.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userrepo.UserDTO{},
		&userrepo.RefreshTokenDTO{},
		&profilerepo.BuyerDTO{},
		&profilerepo.SellerDTO{},
		&profilerepo.RiderDTO{},
		&storerepo.StoreDTO{},
		&productrepo.ProductDTO{},
		&addressrepo.AddressDTO{},
		&basketrepo.WishlistItemDTO{},
		&basketrepo.CartItemDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&orderrepo.ReturnRequestDTO{},
		&orderrepo.ReviewDTO{},
		&deadletterrepo.DeadLetterDTO{},
	)
}

func (c *CompositionRoot) CreateCreateStoreCommandHandler() commands.CreateStoreCommandHandler {
	return commands.NewCreateStoreCommandHandler(c.uowFactory, c.verifier, c.engine, c.blobs)
}

func (c *CompositionRoot) CreateUpdateStoreMediaCommandHandler() commands.UpdateStoreMediaCommandHandler {
	return commands.NewUpdateStoreMediaCommandHandler(c.uowFactory, c.verifier, c.engine, c.blobs)
}

func (c *CompositionRoot) CreateDeleteStoreCommandHandler() commands.DeleteStoreCommandHandler {
	return commands.NewDeleteStoreCommandHandler(c.uowFactory, c.verifier, c.engine, c.blobs)
}

func (c *CompositionRoot) CreateCreateProductCommandHandler() commands.CreateProductCommandHandler {
	return commands.NewCreateProductCommandHandler(c.uowFactory, c.verifier, c.engine, c.blobs)
}

func (c *CompositionRoot) CreateUpdateProductMediaCommandHandler() commands.UpdateProductMediaCommandHandler {
	return commands.NewUpdateProductMediaCommandHandler(c.uowFactory, c.verifier, c.engine, c.blobs)
}

func (c *CompositionRoot) CreateDeleteProductCommandHandler() commands.DeleteProductCommandHandler {
	return commands.NewDeleteProductCommandHandler(c.uowFactory, c.verifier, c.engine, c.blobs)
}

func (c *CompositionRoot) CreateUpdateUserStatusCommandHandler() commands.UpdateUserStatusCommandHandler {
	return commands.NewUpdateUserStatusCommandHandler(c.uowFactory, c.verifier, c.propagator)
}

func (c *CompositionRoot) CreateDeleteUserCommandHandler() commands.DeleteUserCommandHandler {
	return commands.NewDeleteUserCommandHandler(c.uowFactory, c.verifier, c.propagator)
}

func (c *CompositionRoot) CreateCreateAddressCommandHandler() commands.CreateAddressCommandHandler {
	return commands.NewCreateAddressCommandHandler(c.uowFactory, c.verifier)
}

func (c *CompositionRoot) CreateUpdateAddressCommandHandler() commands.UpdateAddressCommandHandler {
	return commands.NewUpdateAddressCommandHandler(c.uowFactory, c.verifier)
}

func (c *CompositionRoot) CreateDeleteAddressCommandHandler() commands.DeleteAddressCommandHandler {
	return commands.NewDeleteAddressCommandHandler(c.uowFactory, c.verifier)
}

func (c *CompositionRoot) CreateAddToWishlistCommandHandler() commands.AddToWishlistCommandHandler {
	return commands.NewAddToWishlistCommandHandler(c.uowFactory, c.verifier)
}

func (c *CompositionRoot) CreateRemoveFromWishlistCommandHandler() commands.RemoveFromWishlistCommandHandler {
	return commands.NewRemoveFromWishlistCommandHandler(c.uowFactory, c.verifier)
}

func (c *CompositionRoot) CreateAddToCartCommandHandler() commands.AddToCartCommandHandler {
	return commands.NewAddToCartCommandHandler(c.uowFactory, c.verifier)
}

func (c *CompositionRoot) CreateGetUserProfileQueryHandler() queries.GetUserProfileQueryHandler {
	return queries.NewGetUserProfileQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetStoreProductsQueryHandler() queries.GetStoreProductsQueryHandler {
	return queries.NewGetStoreProductsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateStoreCommandHandler(),
		c.CreateUpdateStoreMediaCommandHandler(),
		c.CreateDeleteStoreCommandHandler(),
		c.CreateCreateProductCommandHandler(),
		c.CreateUpdateProductMediaCommandHandler(),
		c.CreateDeleteProductCommandHandler(),
		c.CreateUpdateUserStatusCommandHandler(),
		c.CreateDeleteUserCommandHandler(),
		c.CreateCreateAddressCommandHandler(),
		c.CreateUpdateAddressCommandHandler(),
		c.CreateDeleteAddressCommandHandler(),
		c.CreateAddToWishlistCommandHandler(),
		c.CreateRemoveFromWishlistCommandHandler(),
		c.CreateAddToCartCommandHandler(),
		c.CreateGetUserProfileQueryHandler(),
		c.CreateGetStoreProductsQueryHandler(),
		c.logger,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.deadLetters, c.blobs, c.logger)
}
