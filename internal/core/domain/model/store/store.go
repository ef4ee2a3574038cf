// Package store contains the Store aggregate. A store is owned by a seller
// and owns products; blocking a store cascades to every product under it.
package store

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var (
	// ErrStoreIsNotConstructed is returned when a Store instance was not
	// created through NewStore or RestoreStore.
	ErrStoreIsNotConstructed = errors.New("Store must be created via NewStore or RestoreStore")
)

// Store is the aggregate root for a seller's storefront. It references its
// icon and banner media by blob-store key; the media lifecycle (upload,
// trash staging, purge) is managed by the workflow engine, not the aggregate.
type Store struct {
	id               kernel.UUID
	sellerID         kernel.UUID
	name             string
	description      string
	iconKey          string
	bannerKey        string
	operationalState kernel.OperationalState

	isConstructed bool
}

// NewStore creates a new Store in the Active operational state.
// Icon and banner keys must already point at uploaded blobs.
func NewStore(id, sellerID kernel.UUID, name, description, iconKey, bannerKey string) (*Store, error) {
	s := &Store{
		operationalState: kernel.OperationalStateActive,
		isConstructed:    true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setSellerID(sellerID),
		s.setName(name),
		s.setMedia(iconKey, bannerKey),
	); err != nil {
		return nil, err
	}

	s.description = description
	return s, nil
}

// RestoreStore reconstructs a Store from persistence. Used by repositories only.
func RestoreStore(
	id, sellerID kernel.UUID,
	name, description, iconKey, bannerKey string,
	operational kernel.OperationalState,
) (*Store, error) {
	s, err := NewStore(id, sellerID, name, description, iconKey, bannerKey)
	if err != nil {
		return nil, err
	}

	if err = operational.Validate(); err != nil {
		return nil, err
	}

	s.operationalState = operational
	return s, nil
}

// Validate ensures the Store was constructed through NewStore or RestoreStore.
func (s *Store) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrStoreIsNotConstructed
	}
	return nil
}

// ID returns the store's unique identifier.
func (s *Store) ID() kernel.UUID {
	return s.id
}

// SellerID returns the owning seller's profile identifier.
func (s *Store) SellerID() kernel.UUID {
	return s.sellerID
}

// Name returns the store's display name.
func (s *Store) Name() string {
	return s.name
}

// Description returns the store's description text.
func (s *Store) Description() string {
	return s.description
}

// IconKey returns the blob-store key of the store icon.
func (s *Store) IconKey() string {
	return s.iconKey
}

// BannerKey returns the blob-store key of the store banner.
func (s *Store) BannerKey() string {
	return s.bannerKey
}

// OperationalState returns the store's operational status.
func (s *Store) OperationalState() kernel.OperationalState {
	return s.operationalState
}

// Block transitions the store to the terminal Blocked state.
// Returns InvalidState if the store is already Blocked.
func (s *Store) Block() error {
	if s.operationalState.IsTerminal() {
		return errs.NewInvalidStateError("store", "already blocked")
	}

	s.operationalState = kernel.OperationalStateBlocked
	return nil
}

// ChangeOperationalState applies an admin-driven status update.
func (s *Store) ChangeOperationalState(state kernel.OperationalState) error {
	if err := state.Validate(); err != nil {
		return err
	}
	if s.operationalState.IsTerminal() {
		return errs.NewInvalidStateError("store", "cannot update status of a blocked store")
	}

	s.operationalState = state
	return nil
}

// ReplaceMedia swaps the icon and banner keys after a successful media
// workflow. Empty keys keep the existing values.
func (s *Store) ReplaceMedia(iconKey, bannerKey string) {
	if iconKey != "" {
		s.iconKey = iconKey
	}
	if bannerKey != "" {
		s.bannerKey = bannerKey
	}
}

func (s *Store) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Store) setSellerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("sellerID", err)
	}
	s.sellerID = id
	return nil
}

func (s *Store) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("storeName")
	}
	s.name = name
	return nil
}

func (s *Store) setMedia(iconKey, bannerKey string) error {
	if iconKey == "" {
		return errs.NewValueIsRequiredError("iconKey")
	}
	if bannerKey == "" {
		return errs.NewValueIsRequiredError("bannerKey")
	}
	s.iconKey = iconKey
	s.bannerKey = bannerKey
	return nil
}
