package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/angelofallars/sharebill/internal/invoice"
)

// Keys of the values a Repository manages.
const (
	KeyInvoice = "invoice"
	KeySellers = "sellers"
	KeyBuyers  = "buyers"
	KeyLogo    = "logo"
)

// Repository reads and writes typed invoice state on top of a Store.
type Repository struct {
	store Store
}

func NewRepository(store Store) *Repository {
	return &Repository{store: store}
}

func (r *Repository) SaveInvoice(ctx context.Context, data *invoice.Data) error {
	return r.setJSON(ctx, KeyInvoice, data)
}

// LoadInvoice returns ErrNotFound when nothing was saved and ErrCorrupt
// when the saved value does not decode.
func (r *Repository) LoadInvoice(ctx context.Context) (*invoice.Data, error) {
	data := &invoice.Data{}
	if err := r.getJSON(ctx, KeyInvoice, data); err != nil {
		return nil, err
	}
	return data, nil
}

func (r *Repository) DeleteInvoice(ctx context.Context) error {
	return r.store.Delete(ctx, KeyInvoice)
}

func (r *Repository) SaveSellers(ctx context.Context, sellers []invoice.SavedSeller) error {
	return r.setJSON(ctx, KeySellers, sellers)
}

// LoadSellers returns an empty list when none were saved or the saved
// list is unreadable.
func (r *Repository) LoadSellers(ctx context.Context) ([]invoice.SavedSeller, error) {
	sellers := []invoice.SavedSeller{}
	if err := r.getJSON(ctx, KeySellers, &sellers); err != nil {
		if isAbsent(err) {
			return []invoice.SavedSeller{}, nil
		}
		return nil, err
	}
	return sellers, nil
}

func (r *Repository) SaveBuyers(ctx context.Context, buyers []invoice.SavedBuyer) error {
	return r.setJSON(ctx, KeyBuyers, buyers)
}

// LoadBuyers returns an empty list when none were saved or the saved list
// is unreadable.
func (r *Repository) LoadBuyers(ctx context.Context) ([]invoice.SavedBuyer, error) {
	buyers := []invoice.SavedBuyer{}
	if err := r.getJSON(ctx, KeyBuyers, &buyers); err != nil {
		if isAbsent(err) {
			return []invoice.SavedBuyer{}, nil
		}
		return nil, err
	}
	return buyers, nil
}

// SaveLogo keeps the logo data URI apart from the invoice so that it
// survives an invoice reset.
func (r *Repository) SaveLogo(ctx context.Context, dataURI string) error {
	return r.store.Set(ctx, KeyLogo, []byte(dataURI))
}

func (r *Repository) LoadLogo(ctx context.Context) (string, error) {
	v, err := r.store.Get(ctx, KeyLogo)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func (r *Repository) RemoveLogo(ctx context.Context) error {
	return r.store.Delete(ctx, KeyLogo)
}

// ClearAll removes every value the repository manages.
func (r *Repository) ClearAll(ctx context.Context) error {
	for _, key := range []string{KeyInvoice, KeySellers, KeyBuyers, KeyLogo} {
		if err := r.store.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repository) setJSON(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("Encoding %q failed: %w", key, err)
	}
	return r.store.Set(ctx, key, raw)
}

func (r *Repository) getJSON(ctx context.Context, key string, v any) error {
	raw, err := r.store.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrCorrupt, key, err)
	}
	return nil
}

func isAbsent(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrCorrupt)
}
