package commands

import (
	"context"

	"shophub/internal/domain/cart"
	"shophub/internal/infra"
	"shophub/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrCartItemNotFound = errs.New("cart item not found")

type AddCartItemInput struct {
	ProductID uuid.UUID
	Quantity  int32
}

type CartCommands interface {
	AddItem(ctx context.Context, accountID uuid.UUID, input AddCartItemInput) (uuid.UUID, error)
	UpdateItemQuantity(ctx context.Context, accountID, itemID uuid.UUID, quantity int32) error
	RemoveItem(ctx context.Context, accountID, itemID uuid.UUID) error
}

type cartUseCaseImpl struct {
	cartRepo    CartRepository
	productRepo ProductRepository
}

func NewCartUseCase(cartRepo CartRepository, productRepo ProductRepository) CartCommands {
	return &cartUseCaseImpl{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// AddItem creates the account's cart lazily on first use. Adding a product
// that is already in the cart merges into the existing line via the repository
// upsert.
func (u *cartUseCaseImpl) AddItem(ctx context.Context, accountID uuid.UUID, input AddCartItemInput) (uuid.UUID, error) {
	if _, err := u.productRepo.FindByID(ctx, input.ProductID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return uuid.Nil, ErrProductNotFound
		}
		return uuid.Nil, errs.Wrap(err, "failed to find product")
	}

	cartID, err := u.cartRepo.GetOrCreate(ctx, accountID)
	if err != nil {
		return uuid.Nil, errs.Wrap(err, "failed to get cart")
	}

	item, err := cart.NewItem(cartID, input.ProductID, input.Quantity)
	if err != nil {
		return uuid.Nil, err
	}

	itemID, err := u.cartRepo.AddItem(ctx, item)
	if err != nil {
		return uuid.Nil, errs.Wrap(err, "failed to add cart item")
	}

	return itemID, nil
}

func (u *cartUseCaseImpl) UpdateItemQuantity(ctx context.Context, accountID, itemID uuid.UUID, quantity int32) error {
	if quantity < 1 {
		return cart.ErrInvalidQuantity
	}

	if _, err := u.cartRepo.FindItemForAccount(ctx, itemID, accountID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrCartItemNotFound
		}
		return errs.Wrap(err, "failed to find cart item")
	}

	if err := u.cartRepo.UpdateItemQuantity(ctx, itemID, quantity); err != nil {
		return errs.Wrap(err, "failed to update cart item")
	}
	return nil
}

func (u *cartUseCaseImpl) RemoveItem(ctx context.Context, accountID, itemID uuid.UUID) error {
	if _, err := u.cartRepo.FindItemForAccount(ctx, itemID, accountID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrCartItemNotFound
		}
		return errs.Wrap(err, "failed to find cart item")
	}

	if err := u.cartRepo.RemoveItem(ctx, itemID); err != nil {
		return errs.Wrap(err, "failed to remove cart item")
	}
	return nil
}
