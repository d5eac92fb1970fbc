package invoice

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"slices"
	"strings"

	"github.com/angelofallars/htmx-go"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/angelofallars/sharebill/app/event"
	"github.com/angelofallars/sharebill/app/header"
	"github.com/angelofallars/sharebill/app/loader"
	"github.com/angelofallars/sharebill/internal/pdf"
	"github.com/angelofallars/sharebill/internal/service"
)

type HandlerGroup struct {
	svc    service.Invoice
	loader *loader.Loader
	slog   *slog.Logger
}

func NewHandlerGroup(svc service.Invoice, loader *loader.Loader, slog *slog.Logger) *HandlerGroup {
	return &HandlerGroup{svc: svc, loader: loader, slog: slog}
}

func (hg *HandlerGroup) Mount(r chi.Router) {
	r.Get("/", hg.loader.Resolve(hg.handlePage))

	r.Route("/invoice", func(r chi.Router) {
		r.Post("/recalculate", hg.loader.RequireInvoice(hg.handleRecalculate))
		r.Post("/items", hg.handleAddItem)
		r.Post("/share", hg.loader.RequireInvoice(hg.handleShare))
		r.Post("/save", hg.loader.RequireInvoice(hg.handleSave))
		r.Post("/pdf", hg.loader.RequireInvoice(hg.handlePDF))
		r.Post("/reset", hg.handleReset)
	})

	r.Route("/sellers", func(r chi.Router) {
		r.Get("/", hg.handleListSellers)
		r.Post("/", hg.loader.RequireInvoice(hg.handleSaveSeller))
		r.Delete("/{id}", hg.handleDeleteSeller)
		r.Post("/{id}/apply", hg.loader.RequireInvoice(hg.handleApplySeller))
	})

	r.Route("/buyers", func(r chi.Router) {
		r.Get("/", hg.handleListBuyers)
		r.Post("/", hg.loader.RequireInvoice(hg.handleSaveBuyer))
		r.Delete("/{id}", hg.handleDeleteBuyer)
		r.Post("/{id}/apply", hg.loader.RequireInvoice(hg.handleApplyBuyer))
	})
}

func (hg *HandlerGroup) handlePage(w http.ResponseWriter, r *http.Request) {
	loaded, err := loader.GetInvoice(r.Context())
	if err != nil {
		showError(w, r, http.StatusInternalServerError, err)
		return
	}

	sellers, err := hg.svc.Sellers(r.Context())
	if err != nil {
		hg.slog.Error("listing sellers failed", "err", err)
	}
	buyers, err := hg.svc.Buyers(r.Context())
	if err != nil {
		hg.slog.Error("listing buyers failed", "err", err)
	}

	hg.slog.Debug("invoice page loaded", "source", loaded.Source)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = index(loaded, sellers, buyers).Render(r.Context(), w)
}

func (hg *HandlerGroup) handleRecalculate(w http.ResponseWriter, r *http.Request) {
	loaded, err := loader.GetInvoice(r.Context())
	if err != nil {
		showError(w, r, http.StatusInternalServerError, err)
		return
	}

	data, err := hg.svc.Recalculate(loaded.Data)
	if err != nil {
		showError(w, r, http.StatusUnprocessableEntity, err)
		return
	}

	if !isHTMX(r) {
		render.JSON(w, r, data)
		return
	}

	triggers := []htmx.EventTrigger{event.TriggerSetErrMessage("")}
	if !data.HasEmbeddedLogo() {
		triggers = append(triggers, event.TriggerEnableShare)
	}

	_ = htmx.NewResponse().
		AddTrigger(triggers...).
		RenderTempl(r.Context(), w, editor(data))
}

// handleAddItem appends a line item to the posted invoice and answers
// with the recalculated invoice.
func (hg *HandlerGroup) handleAddItem(w http.ResponseWriter, r *http.Request) {
	req := &loader.ItemRequest{}
	if err := render.Bind(r, req); err != nil {
		showError(w, r, http.StatusBadRequest, err)
		return
	}

	data := *req.Data
	data.Items = append(slices.Clone(data.Items), req.Item())

	recalculated, err := hg.svc.Recalculate(&data)
	if err != nil {
		showError(w, r, http.StatusUnprocessableEntity, err)
		return
	}

	if !isHTMX(r) {
		render.JSON(w, r, recalculated)
		return
	}

	_ = htmx.NewResponse().
		AddTrigger(event.TriggerSetErrMessage("")).
		RenderTempl(r.Context(), w, editor(recalculated))
}

func (hg *HandlerGroup) handleShare(w http.ResponseWriter, r *http.Request) {
	loaded, err := loader.GetInvoice(r.Context())
	if err != nil {
		showError(w, r, http.StatusInternalServerError, err)
		return
	}

	link, err := hg.svc.Share(r.Context(), hg.loader.PageURL(r), loaded.Data)
	if err != nil {
		if errors.Is(err, service.ErrLogoNotShareable) {
			if !isHTMX(r) {
				showError(w, r, http.StatusUnprocessableEntity, err)
				return
			}
			_ = htmx.NewResponse().
				StatusCode(http.StatusUnprocessableEntity).
				Reswap(htmx.SwapNone).
				AddTrigger(
					event.TriggerDisableShare,
					event.TriggerSetErrMessage(err.Error()),
				).
				Write(w)
			return
		}
		hg.slog.Error("creating share link failed", "err", err)
		showError(w, r, http.StatusInternalServerError, err)
		return
	}

	if !isHTMX(r) {
		render.JSON(w, r, shareResponse{URL: link})
		return
	}

	_ = htmx.NewResponse().
		AddTrigger(
			event.TriggerSetErrMessage(""),
			event.TriggerShareLinkCreated(link),
		).
		RenderTempl(r.Context(), w, shareLink(link))
}

type shareResponse struct {
	URL string `json:"url"`
}

func (hg *HandlerGroup) handleSave(w http.ResponseWriter, r *http.Request) {
	loaded, err := loader.GetInvoice(r.Context())
	if err != nil {
		showError(w, r, http.StatusInternalServerError, err)
		return
	}

	if err := hg.svc.Save(r.Context(), loaded.Data); err != nil {
		hg.slog.Error("saving invoice failed", "err", err)
		showError(w, r, http.StatusInternalServerError, errors.New("Saving the invoice failed."))
		return
	}

	if !isHTMX(r) {
		render.NoContent(w, r)
		return
	}

	_ = htmx.NewResponse().
		Reswap(htmx.SwapNone).
		AddTrigger(
			event.TriggerSetErrMessage(""),
			event.TriggerSetStatus("Saved"),
		).
		Write(w)
}

func (hg *HandlerGroup) handlePDF(w http.ResponseWriter, r *http.Request) {
	loaded, err := loader.GetInvoice(r.Context())
	if err != nil {
		showError(w, r, http.StatusInternalServerError, err)
		return
	}

	var buf bytes.Buffer
	if err := pdf.Render(&buf, loaded.Data); err != nil {
		hg.slog.Error("rendering PDF failed", "err", err)
		showError(w, r, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set(header.ContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, pdfFilename(loaded)))
	_, _ = w.Write(buf.Bytes())
}

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

func pdfFilename(loaded *loader.Loaded) string {
	name := "invoice"
	if n := loaded.Data.InvoiceNumberObject; n != nil && n.Value != "" {
		name += "-" + strings.Trim(unsafeFilename.ReplaceAllString(n.Value, "-"), "-")
	}
	return name + ".pdf"
}

// handleReset starts a fresh invoice. With ?all=true saved profiles and
// the logo are forgotten too.
func (hg *HandlerGroup) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("all") == "true" {
		if err := hg.svc.ClearAll(r.Context()); err != nil {
			hg.slog.Error("clearing storage failed", "err", err)
			showError(w, r, http.StatusInternalServerError, err)
			return
		}
	}

	data, err := hg.svc.Reset(r.Context())
	if err != nil {
		hg.slog.Error("resetting invoice failed", "err", err)
		showError(w, r, http.StatusInternalServerError, err)
		return
	}

	if !isHTMX(r) {
		render.JSON(w, r, data)
		return
	}

	_ = htmx.NewResponse().
		AddTrigger(
			event.TriggerSetErrMessage(""),
			event.TriggerEnableShare,
		).
		RenderTempl(r.Context(), w, editor(data))
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get(header.HXRequest) == "true"
}

func showError(w http.ResponseWriter, r *http.Request, code int, err error) {
	loader.Fail(w, r, code, err)
}
