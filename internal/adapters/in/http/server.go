// Package http exposes the marketplace workflows over REST. Handlers stay
// thin: parse the request, build a validated command carrying the actor
// context, dispatch, map the error. All business rules live in the
// application core.
package http

import (
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createStoreHandler        commands.CreateStoreCommandHandler
	updateStoreMediaHandler   commands.UpdateStoreMediaCommandHandler
	deleteStoreHandler        commands.DeleteStoreCommandHandler
	createProductHandler      commands.CreateProductCommandHandler
	updateProductMediaHandler commands.UpdateProductMediaCommandHandler
	deleteProductHandler      commands.DeleteProductCommandHandler
	updateUserStatusHandler   commands.UpdateUserStatusCommandHandler
	deleteUserHandler         commands.DeleteUserCommandHandler
	createAddressHandler      commands.CreateAddressCommandHandler
	updateAddressHandler      commands.UpdateAddressCommandHandler
	deleteAddressHandler      commands.DeleteAddressCommandHandler
	addToWishlistHandler      commands.AddToWishlistCommandHandler
	removeFromWishlistHandler commands.RemoveFromWishlistCommandHandler
	addToCartHandler          commands.AddToCartCommandHandler

	getUserProfileHandler   queries.GetUserProfileQueryHandler
	getStoreProductsHandler queries.GetStoreProductsQueryHandler

	logger *slog.Logger
}

// NewServer creates an HTTP server over the given command and query handlers.
func NewServer(
	createStoreHandler commands.CreateStoreCommandHandler,
	updateStoreMediaHandler commands.UpdateStoreMediaCommandHandler,
	deleteStoreHandler commands.DeleteStoreCommandHandler,
	createProductHandler commands.CreateProductCommandHandler,
	updateProductMediaHandler commands.UpdateProductMediaCommandHandler,
	deleteProductHandler commands.DeleteProductCommandHandler,
	updateUserStatusHandler commands.UpdateUserStatusCommandHandler,
	deleteUserHandler commands.DeleteUserCommandHandler,
	createAddressHandler commands.CreateAddressCommandHandler,
	updateAddressHandler commands.UpdateAddressCommandHandler,
	deleteAddressHandler commands.DeleteAddressCommandHandler,
	addToWishlistHandler commands.AddToWishlistCommandHandler,
	removeFromWishlistHandler commands.RemoveFromWishlistCommandHandler,
	addToCartHandler commands.AddToCartCommandHandler,
	getUserProfileHandler queries.GetUserProfileQueryHandler,
	getStoreProductsHandler queries.GetStoreProductsQueryHandler,
	logger *slog.Logger,
) *Server {
	return &Server{
		createStoreHandler:        createStoreHandler,
		updateStoreMediaHandler:   updateStoreMediaHandler,
		deleteStoreHandler:        deleteStoreHandler,
		createProductHandler:      createProductHandler,
		updateProductMediaHandler: updateProductMediaHandler,
		deleteProductHandler:      deleteProductHandler,
		updateUserStatusHandler:   updateUserStatusHandler,
		deleteUserHandler:         deleteUserHandler,
		createAddressHandler:      createAddressHandler,
		updateAddressHandler:      updateAddressHandler,
		deleteAddressHandler:      deleteAddressHandler,
		addToWishlistHandler:      addToWishlistHandler,
		removeFromWishlistHandler: removeFromWishlistHandler,
		addToCartHandler:          addToCartHandler,
		getUserProfileHandler:     getUserProfileHandler,
		getStoreProductsHandler:   getStoreProductsHandler,
		logger:                    logger.With("component", "http_server"),
	}
}

// RegisterRoutes mounts every endpoint under /api/v1 behind the actor
// middleware.
func (s *Server) RegisterRoutes(e *echo.Echo, tokenSecret []byte) {
	api := e.Group("/api/v1", ActorMiddleware(tokenSecret))

	api.POST("/stores", s.CreateStore)
	api.PUT("/stores/:storeId/media", s.UpdateStoreMedia)
	api.DELETE("/stores/:storeId", s.DeleteStore)
	api.GET("/stores/:storeId/products", s.GetStoreProducts)
	api.POST("/stores/:storeId/products", s.CreateProduct)

	api.PUT("/products/:productId/media", s.UpdateProductMedia)
	api.DELETE("/products/:productId", s.DeleteProduct)

	api.PATCH("/users/:userId/status", s.UpdateUserStatus)
	api.DELETE("/users/:userId", s.DeleteUser)
	api.GET("/users/:userId/profile", s.GetUserProfile)

	api.POST("/addresses", s.CreateAddress)
	api.PUT("/addresses/:addressId", s.UpdateAddress)
	api.DELETE("/addresses/:addressId", s.DeleteAddress)

	api.POST("/wishlist", s.AddToWishlist)
	api.DELETE("/wishlist/:itemId", s.RemoveFromWishlist)
	api.POST("/cart", s.AddToCart)
}

// CreateStore handles POST /api/v1/stores. Multipart form: name, description,
// icon file, banner file.
func (s *Server) CreateStore(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return respond(c, s.logger, err)
	}

	icon, err := requiredUpload(c, "icon")
	if err != nil {
		return respond(c, s.logger, err)
	}
	banner, err := requiredUpload(c, "banner")
	if err != nil {
		return respond(c, s.logger, err)
	}

	storeID := kernel.NewUUID()
	cmd, err := commands.NewCreateStoreCommand(
		actor, storeID,
		c.FormValue("name"), c.FormValue("description"),
		icon, banner,
	)
	if err != nil {
		return respond(c, s.logger, err)
	}

	if err = s.createStoreHandler.Handle(c.Request().Context(), cmd); err != nil {
		return respond(c, s.logger, err)
	}

	return c.JSON(http.StatusCreated, idResponse{ID: storeID.String()})
}

// UpdateStoreMedia handles PUT /api/v1/stores/:storeId/media.
// An absent icon field keeps the current icon; an absent banner keeps the
// current banner. At least one of the two must be present.
func (s *Server) UpdateStoreMedia(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return respond(c, s.logger, err)
	}

	storeID, err := kernel.UUIDFromString(c.Param("storeId"))
	if err != nil {
		return badRequest(c, "invalid store id")
	}

	icon, err := optionalUpload(c, "icon")
	if err != nil {
		return respond(c, s.logger, err)
	}
	banner, err := optionalUpload(c, "banner")
	if err != nil {
		return respond(c, s.logger, err)
	}

	cmd, err := commands.NewUpdateStoreMediaCommand(actor, storeID, icon, banner)
	if err != nil {
		return respond(c, s.logger, err)
	}

	if err = s.updateStoreMediaHandler.Handle(c.Request().Context(), cmd); err != nil {
		return respond(c, s.logger, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// DeleteStore handles DELETE /api/v1/stores/:storeId.
func (s *Server) DeleteStore(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return respond(c, s.logger, err)
	}

	storeID, err := kernel.UUIDFromString(c.Param("storeId"))
	if err != nil {
		return badRequest(c, "invalid store id")
	}

	cmd, err := commands.NewDeleteStoreCommand(actor, storeID)
	if err != nil {
		return respond(c, s.logger, err)
	}

	if err = s.deleteStoreHandler.Handle(c.Request().Context(), cmd); err != nil {
		return respond(c, s.logger, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// CreateProduct handles POST /api/v1/stores/:storeId/products. Multipart
// form: title, description, priceCents, stock, image files, optional video.
func (s *Server) CreateProduct(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return respond(c, s.logger, err)
	}

	storeID, err := kernel.UUIDFromString(c.Param("storeId"))
	if err != nil {
		return badRequest(c, "invalid store id")
	}

	priceCents, stock, err := parsePriceAndStock(c.FormValue("priceCents"), c.FormValue("stock"))
	if err != nil {
		return respond(c, s.logger, err)
	}

	images, err := formUploads(c, "images")
	if err != nil {
		return respond(c, s.logger, err)
	}
	video, err := optionalUpload(c, "video")
	if err != nil {
		return respond(c, s.logger, err)
	}

	productID := kernel.NewUUID()
	cmd, err := commands.NewCreateProductCommand(
		actor, productID, storeID,
		c.FormValue("title"), c.FormValue("description"),
		priceCents, stock,
		images, video,
	)
	if err != nil {
		return respond(c, s.logger, err)
	}

	if err = s.createProductHandler.Handle(c.Request().Context(), cmd); err != nil {
		return respond(c, s.logger, err)
	}

	return c.JSON(http.StatusCreated, idResponse{ID: productID.String()})
}

// UpdateProductMedia handles PUT /api/v1/products/:productId/media.
// An absent images field keeps the current images; an absent video keeps the
// current video. At least one of the two must be present.
func (s *Server) UpdateProductMedia(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return respond(c, s.logger, err)
	}

	productID, err := kernel.UUIDFromString(c.Param("productId"))
	if err != nil {
		return badRequest(c, "invalid product id")
	}

	images, err := formUploads(c, "images")
	if err != nil {
		return respond(c, s.logger, err)
	}
	if len(images) == 0 {
		images = nil
	}
	video, err := optionalUpload(c, "video")
	if err != nil {
		return respond(c, s.logger, err)
	}

	cmd, err := commands.NewUpdateProductMediaCommand(actor, productID, images, video)
	if err != nil {
		return respond(c, s.logger, err)
	}

	if err = s.updateProductMediaHandler.Handle(c.Request().Context(), cmd); err != nil {
		return respond(c, s.logger, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// DeleteProduct handles DELETE /api/v1/products/:productId.
func (s *Server) DeleteProduct(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return respond(c, s.logger, err)
	}

	productID, err := kernel.UUIDFromString(c.Param("productId"))
	if err != nil {
		return badRequest(c, "invalid product id")
	}

	cmd, err := commands.NewDeleteProductCommand(actor, productID)
	if err != nil {
		return respond(c, s.logger, err)
	}

	if err = s.deleteProductHandler.Handle(c.Request().Context(), cmd); err != nil {
		return respond(c, s.logger, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// UpdateUserStatus handles PATCH /api/v1/users/:userId/status.
func (s *Server) UpdateUserStatus(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return respond(c, s.logger, err)
	}

	userID, err := kernel.UUIDFromString(c.Param("userId"))
	if err != nil {
		return badRequest(c, "invalid user id")
	}

	var body updateUserStatusRequest
	if err = c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	state, err := kernel.OperationalStateFromString(body.OperationalState)
	if err != nil {
		return respond(c, s.logger, err)
	}

	cmd, err := commands.NewUpdateUserStatusCommand(actor, userID, state)
	if err != nil {
		return respond(c, s.logger, err)
	}

	if err = s.updateUserStatusHandler.Handle(c.Request().Context(), cmd); err != nil {
		return respond(c, s.logger, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// DeleteUser handles DELETE /api/v1/users/:userId.
func (s *Server) DeleteUser(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return respond(c, s.logger, err)
	}

	userID, err := kernel.UUIDFromString(c.Param("userId"))
	if err != nil {
		return badRequest(c, "invalid user id")
	}

	cmd, err := commands.NewDeleteUserCommand(actor, userID)
	if err != nil {
		return respond(c, s.logger, err)
	}

	if err = s.deleteUserHandler.Handle(c.Request().Context(), cmd); err != nil {
		return respond(c, s.logger, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// GetUserProfile handles GET /api/v1/users/:userId/profile.
func (s *Server) GetUserProfile(c echo.Context) error {
	userID, err := kernel.UUIDFromString(c.Param("userId"))
	if err != nil {
		return badRequest(c, "invalid user id")
	}

	query, err := queries.NewGetUserProfileQuery(userID)
	if err != nil {
		return respond(c, s.logger, err)
	}

	profile, err := s.getUserProfileHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return respond(c, s.logger, err)
	}

	return c.JSON(http.StatusOK, profile)
}

// GetStoreProducts handles GET /api/v1/stores/:storeId/products.
func (s *Server) GetStoreProducts(c echo.Context) error {
	storeID, err := kernel.UUIDFromString(c.Param("storeId"))
	if err != nil {
		return badRequest(c, "invalid store id")
	}

	query, err := queries.NewGetStoreProductsQuery(storeID)
	if err != nil {
		return respond(c, s.logger, err)
	}

	products, err := s.getStoreProductsHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return respond(c, s.logger, err)
	}

	return c.JSON(http.StatusOK, products)
}

// CreateAddress handles POST /api/v1/addresses.
func (s *Server) CreateAddress(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return respond(c, s.logger, err)
	}

	var body addressRequest
	if err = c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	addressID := kernel.NewUUID()
	cmd, err := commands.NewCreateAddressCommand(
		actor, addressID,
		body.Line, body.City, body.Province, body.PostalCode, body.Phone,
		body.IsPrimary,
	)
	if err != nil {
		return respond(c, s.logger, err)
	}

	if err = s.createAddressHandler.Handle(c.Request().Context(), cmd); err != nil {
		return respond(c, s.logger, err)
	}

	return c.JSON(http.StatusCreated, idResponse{ID: addressID.String()})
}

// UpdateAddress handles PUT /api/v1/addresses/:addressId.
func (s *Server) UpdateAddress(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return respond(c, s.logger, err)
	}

	addressID, err := kernel.UUIDFromString(c.Param("addressId"))
	if err != nil {
		return badRequest(c, "invalid address id")
	}

	var body addressRequest
	if err = c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	cmd, err := commands.NewUpdateAddressCommand(
		actor, addressID,
		body.Line, body.City, body.Province, body.PostalCode, body.Phone,
		body.IsPrimary,
	)
	if err != nil {
		return respond(c, s.logger, err)
	}

	if err = s.updateAddressHandler.Handle(c.Request().Context(), cmd); err != nil {
		return respond(c, s.logger, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// DeleteAddress handles DELETE /api/v1/addresses/:addressId.
func (s *Server) DeleteAddress(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return respond(c, s.logger, err)
	}

	addressID, err := kernel.UUIDFromString(c.Param("addressId"))
	if err != nil {
		return badRequest(c, "invalid address id")
	}

	cmd, err := commands.NewDeleteAddressCommand(actor, addressID)
	if err != nil {
		return respond(c, s.logger, err)
	}

	if err = s.deleteAddressHandler.Handle(c.Request().Context(), cmd); err != nil {
		return respond(c, s.logger, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// AddToWishlist handles POST /api/v1/wishlist.
func (s *Server) AddToWishlist(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return respond(c, s.logger, err)
	}

	var body addToWishlistRequest
	if err = c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	productID, err := kernel.UUIDFromString(body.ProductID)
	if err != nil {
		return badRequest(c, "invalid product id")
	}

	itemID := kernel.NewUUID()
	cmd, err := commands.NewAddToWishlistCommand(actor, itemID, productID)
	if err != nil {
		return respond(c, s.logger, err)
	}

	if err = s.addToWishlistHandler.Handle(c.Request().Context(), cmd); err != nil {
		return respond(c, s.logger, err)
	}

	return c.JSON(http.StatusCreated, idResponse{ID: itemID.String()})
}

// RemoveFromWishlist handles DELETE /api/v1/wishlist/:itemId.
func (s *Server) RemoveFromWishlist(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return respond(c, s.logger, err)
	}

	itemID, err := kernel.UUIDFromString(c.Param("itemId"))
	if err != nil {
		return badRequest(c, "invalid item id")
	}

	cmd, err := commands.NewRemoveFromWishlistCommand(actor, itemID)
	if err != nil {
		return respond(c, s.logger, err)
	}

	if err = s.removeFromWishlistHandler.Handle(c.Request().Context(), cmd); err != nil {
		return respond(c, s.logger, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// AddToCart handles POST /api/v1/cart.
func (s *Server) AddToCart(c echo.Context) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return respond(c, s.logger, err)
	}

	var body addToCartRequest
	if err = c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	productID, err := kernel.UUIDFromString(body.ProductID)
	if err != nil {
		return badRequest(c, "invalid product id")
	}

	itemID := kernel.NewUUID()
	cmd, err := commands.NewAddToCartCommand(actor, itemID, productID, body.Quantity)
	if err != nil {
		return respond(c, s.logger, err)
	}

	if err = s.addToCartHandler.Handle(c.Request().Context(), cmd); err != nil {
		return respond(c, s.logger, err)
	}

	return c.JSON(http.StatusCreated, idResponse{ID: itemID.String()})
}

type idResponse struct {
	ID string `json:"id"`
}

type addressRequest struct {
	Line       string `json:"line"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postalCode"`
	Phone      string `json:"phone"`
	IsPrimary  bool   `json:"isPrimary"`
}

type updateUserStatusRequest struct {
	OperationalState string `json:"operationalState"`
}

type addToWishlistRequest struct {
	ProductID string `json:"productId"`
}

type addToCartRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// formUploads reads every file submitted under the given multipart field.
func formUploads(c echo.Context, field string) ([]commands.UploadFile, error) {
	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}

	headers := form.File[field]
	uploads := make([]commands.UploadFile, 0, len(headers))
	for _, header := range headers {
		upload, err := openUpload(header)
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, upload)
	}

	return uploads, nil
}

func optionalUpload(c echo.Context, field string) (*commands.UploadFile, error) {
	uploads, err := formUploads(c, field)
	if err != nil || len(uploads) == 0 {
		return nil, err
	}
	return &uploads[0], nil
}

func requiredUpload(c echo.Context, field string) (commands.UploadFile, error) {
	upload, err := optionalUpload(c, field)
	if err != nil {
		return commands.UploadFile{}, err
	}
	if upload == nil {
		return commands.UploadFile{}, errs.NewValueIsRequiredError(field)
	}
	return *upload, nil
}

func openUpload(header *multipart.FileHeader) (commands.UploadFile, error) {
	file, err := header.Open()
	if err != nil {
		return commands.UploadFile{}, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return commands.UploadFile{}, err
	}

	return commands.UploadFile{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func parsePriceAndStock(rawPrice, rawStock string) (int64, int, error) {
	priceCents, err := strconv.ParseInt(rawPrice, 10, 64)
	if err != nil {
		return 0, 0, errs.NewValueIsInvalidErrorWithCause("priceCents", err)
	}

	stock, err := strconv.Atoi(rawStock)
	if err != nil {
		return 0, 0, errs.NewValueIsInvalidErrorWithCause("stock", err)
	}

	return priceCents, stock, nil
}
