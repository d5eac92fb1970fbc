package service

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/angelofallars/sharebill/internal/invoice"
)

var (
	ErrProfileNotFound     = errors.New("Profile not found")
	ErrProfileNameRequired = errors.New("A saved profile needs a name")
)

func (s *invoiceService) Sellers(ctx context.Context) ([]invoice.SavedSeller, error) {
	return s.repo.LoadSellers(ctx)
}

// SaveSeller adds the seller to the saved list, or replaces the saved
// seller with the same ID. A seller without an ID gets a new one.
func (s *invoiceService) SaveSeller(ctx context.Context, seller invoice.Seller) (invoice.SavedSeller, error) {
	if strings.TrimSpace(seller.Name) == "" {
		return invoice.SavedSeller{}, ErrProfileNameRequired
	}

	sellers, err := s.repo.LoadSellers(ctx)
	if err != nil {
		return invoice.SavedSeller{}, err
	}

	if seller.ID == "" {
		seller.ID = uuid.NewString()
	}
	saved := invoice.SavedSeller{Seller: seller}
	sellers = upsert(sellers, saved, func(p invoice.SavedSeller) string { return p.ID })

	if err := s.repo.SaveSellers(ctx, sellers); err != nil {
		return invoice.SavedSeller{}, err
	}
	return saved, nil
}

func (s *invoiceService) DeleteSeller(ctx context.Context, id string) error {
	sellers, err := s.repo.LoadSellers(ctx)
	if err != nil {
		return err
	}

	n := len(sellers)
	sellers = slices.DeleteFunc(sellers, func(p invoice.SavedSeller) bool { return p.ID == id })
	if len(sellers) == n {
		return ErrProfileNotFound
	}
	return s.repo.SaveSellers(ctx, sellers)
}

func (s *invoiceService) Buyers(ctx context.Context) ([]invoice.SavedBuyer, error) {
	return s.repo.LoadBuyers(ctx)
}

// SaveBuyer adds the buyer to the saved list, or replaces the saved buyer
// with the same ID. A buyer without an ID gets a new one.
func (s *invoiceService) SaveBuyer(ctx context.Context, buyer invoice.Buyer) (invoice.SavedBuyer, error) {
	if strings.TrimSpace(buyer.Name) == "" {
		return invoice.SavedBuyer{}, ErrProfileNameRequired
	}

	buyers, err := s.repo.LoadBuyers(ctx)
	if err != nil {
		return invoice.SavedBuyer{}, err
	}

	if buyer.ID == "" {
		buyer.ID = uuid.NewString()
	}
	saved := invoice.SavedBuyer{Buyer: buyer}
	buyers = upsert(buyers, saved, func(p invoice.SavedBuyer) string { return p.ID })

	if err := s.repo.SaveBuyers(ctx, buyers); err != nil {
		return invoice.SavedBuyer{}, err
	}
	return saved, nil
}

func (s *invoiceService) DeleteBuyer(ctx context.Context, id string) error {
	buyers, err := s.repo.LoadBuyers(ctx)
	if err != nil {
		return err
	}

	n := len(buyers)
	buyers = slices.DeleteFunc(buyers, func(p invoice.SavedBuyer) bool { return p.ID == id })
	if len(buyers) == n {
		return ErrProfileNotFound
	}
	return s.repo.SaveBuyers(ctx, buyers)
}

func upsert[T any](list []T, item T, id func(T) string) []T {
	i := slices.IndexFunc(list, func(p T) bool { return id(p) == id(item) })
	if i < 0 {
		return append(list, item)
	}
	list[i] = item
	return list
}
