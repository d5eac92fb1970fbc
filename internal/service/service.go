package service

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"time"

	"github.com/angelofallars/sharebill/internal/invoice"
	"github.com/angelofallars/sharebill/internal/share"
	"github.com/angelofallars/sharebill/internal/storage"
)

var ErrLogoNotShareable = errors.New("Unable to share invoice with logo. Remove the logo first.")

// Source tells where a loaded invoice came from.
type Source string

const (
	SourceURL     Source = "url"
	SourceStore   Source = "store"
	SourceDefault Source = "default"
)

type Invoice interface {
	// Load resolves the invoice for a page: the share link payload in
	// pageURL if it decodes, else the saved invoice, else defaults.
	Load(ctx context.Context, pageURL string) (*invoice.Data, Source)
	Save(ctx context.Context, data *invoice.Data) error
	Share(ctx context.Context, pageURL string, data *invoice.Data) (string, error)
	Recalculate(data *invoice.Data) (*invoice.Data, error)
	Reset(ctx context.Context) (*invoice.Data, error)
	ClearAll(ctx context.Context) error

	Sellers(ctx context.Context) ([]invoice.SavedSeller, error)
	SaveSeller(ctx context.Context, seller invoice.Seller) (invoice.SavedSeller, error)
	DeleteSeller(ctx context.Context, id string) error

	Buyers(ctx context.Context) ([]invoice.SavedBuyer, error)
	SaveBuyer(ctx context.Context, buyer invoice.Buyer) (invoice.SavedBuyer, error)
	DeleteBuyer(ctx context.Context, id string) error
}

type invoiceService struct {
	repo *storage.Repository
	slog *slog.Logger
	now  func() time.Time
}

func NewInvoice(repo *storage.Repository, slog *slog.Logger) *invoiceService {
	return &invoiceService{
		repo: repo,
		slog: slog,
		now:  time.Now,
	}
}

// WithClock replaces the clock used for default dates.
func (s *invoiceService) WithClock(now func() time.Time) *invoiceService {
	s.now = now
	return s
}

func (s *invoiceService) Load(ctx context.Context, pageURL string) (*invoice.Data, Source) {
	if payload := dataParam(pageURL); payload != "" {
		if data, ok := share.LoadPayload(payload); ok {
			return data, SourceURL
		}
		s.slog.Debug("ignoring undecodable share link", "length", len(payload))
	}

	data, err := s.repo.LoadInvoice(ctx)
	switch {
	case err == nil:
		s.attachLogo(ctx, data)
		return data, SourceStore
	case errors.Is(err, storage.ErrNotFound):
	case errors.Is(err, storage.ErrCorrupt):
		s.slog.Warn("saved invoice is unreadable, using defaults", "err", err)
	default:
		s.slog.Error("loading saved invoice failed", "err", err)
	}

	data = invoice.Default(s.now())
	s.attachLogo(ctx, data)
	return data, SourceDefault
}

// Save persists the invoice. The logo is kept under its own key.
func (s *invoiceService) Save(ctx context.Context, data *invoice.Data) error {
	stored := *data
	stored.Logo = ""
	if err := s.repo.SaveInvoice(ctx, &stored); err != nil {
		return err
	}

	if data.Logo == "" {
		return s.repo.RemoveLogo(ctx)
	}
	return s.repo.SaveLogo(ctx, data.Logo)
}

// Share returns pageURL carrying the invoice and saves the invoice
// locally. An inline logo makes the link too long, so it is refused.
func (s *invoiceService) Share(ctx context.Context, pageURL string, data *invoice.Data) (string, error) {
	if data.HasEmbeddedLogo() {
		return "", ErrLogoNotShareable
	}

	link, err := share.GenerateURL(pageURL, data)
	if err != nil {
		return "", err
	}

	if err := s.Save(ctx, data); err != nil {
		s.slog.Warn("saving shared invoice failed", "err", err)
	}

	s.slog.Debug("share link generated", "length", len(link))
	return link, nil
}

func (s *invoiceService) Recalculate(data *invoice.Data) (*invoice.Data, error) {
	if err := data.Recalculate(); err != nil {
		return nil, err
	}
	return data, nil
}

// Reset forgets the saved invoice and returns fresh defaults. Profiles
// and the logo are kept.
func (s *invoiceService) Reset(ctx context.Context) (*invoice.Data, error) {
	if err := s.repo.DeleteInvoice(ctx); err != nil {
		return nil, err
	}

	data := invoice.Default(s.now())
	s.attachLogo(ctx, data)
	return data, nil
}

func (s *invoiceService) ClearAll(ctx context.Context) error {
	return s.repo.ClearAll(ctx)
}

func (s *invoiceService) attachLogo(ctx context.Context, data *invoice.Data) {
	if data.Logo != "" {
		return
	}
	logo, err := s.repo.LoadLogo(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.slog.Warn("loading logo failed", "err", err)
		}
		return
	}
	data.Logo = logo
}

func dataParam(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	return u.Query().Get(share.ParamName)
}
