package invoice

import (
	"errors"
	"net/http"

	"github.com/angelofallars/htmx-go"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/angelofallars/sharebill/app/event"
	"github.com/angelofallars/sharebill/app/loader"
	inv "github.com/angelofallars/sharebill/internal/invoice"
	"github.com/angelofallars/sharebill/internal/service"
)

func (hg *HandlerGroup) handleListSellers(w http.ResponseWriter, r *http.Request) {
	sellers, err := hg.svc.Sellers(r.Context())
	if err != nil {
		showError(w, r, http.StatusInternalServerError, err)
		return
	}
	hg.respondSellers(w, r, sellers, false)
}

// handleSaveSeller stores the seller of the posted invoice as a profile.
func (hg *HandlerGroup) handleSaveSeller(w http.ResponseWriter, r *http.Request) {
	loaded, err := loader.GetInvoice(r.Context())
	if err != nil {
		showError(w, r, http.StatusInternalServerError, err)
		return
	}

	if _, err := hg.svc.SaveSeller(r.Context(), loaded.Data.Seller); err != nil {
		showProfileError(w, r, err)
		return
	}

	sellers, err := hg.svc.Sellers(r.Context())
	if err != nil {
		showError(w, r, http.StatusInternalServerError, err)
		return
	}
	hg.respondSellers(w, r, sellers, true)
}

func (hg *HandlerGroup) handleDeleteSeller(w http.ResponseWriter, r *http.Request) {
	if err := hg.svc.DeleteSeller(r.Context(), chi.URLParam(r, "id")); err != nil {
		showProfileError(w, r, err)
		return
	}

	sellers, err := hg.svc.Sellers(r.Context())
	if err != nil {
		showError(w, r, http.StatusInternalServerError, err)
		return
	}
	hg.respondSellers(w, r, sellers, true)
}

// handleApplySeller puts a saved seller into the posted invoice.
func (hg *HandlerGroup) handleApplySeller(w http.ResponseWriter, r *http.Request) {
	loaded, err := loader.GetInvoice(r.Context())
	if err != nil {
		showError(w, r, http.StatusInternalServerError, err)
		return
	}

	sellers, err := hg.svc.Sellers(r.Context())
	if err != nil {
		showError(w, r, http.StatusInternalServerError, err)
		return
	}

	id := chi.URLParam(r, "id")
	for _, s := range sellers {
		if s.ID == id {
			loaded.Data.Seller = s.Seller
			hg.respondEditor(w, r, loaded.Data)
			return
		}
	}
	showProfileError(w, r, service.ErrProfileNotFound)
}

func (hg *HandlerGroup) respondSellers(w http.ResponseWriter, r *http.Request, sellers []inv.SavedSeller, changed bool) {
	if !isHTMX(r) {
		render.JSON(w, r, sellers)
		return
	}

	resp := htmx.NewResponse().AddTrigger(event.TriggerSetErrMessage(""))
	if changed {
		resp = resp.AddTrigger(event.TriggerProfilesChanged)
	}
	_ = resp.RenderTempl(r.Context(), w, sellerList(sellers))
}

func (hg *HandlerGroup) handleListBuyers(w http.ResponseWriter, r *http.Request) {
	buyers, err := hg.svc.Buyers(r.Context())
	if err != nil {
		showError(w, r, http.StatusInternalServerError, err)
		return
	}
	hg.respondBuyers(w, r, buyers, false)
}

// handleSaveBuyer stores the buyer of the posted invoice as a profile.
func (hg *HandlerGroup) handleSaveBuyer(w http.ResponseWriter, r *http.Request) {
	loaded, err := loader.GetInvoice(r.Context())
	if err != nil {
		showError(w, r, http.StatusInternalServerError, err)
		return
	}

	if _, err := hg.svc.SaveBuyer(r.Context(), loaded.Data.Buyer); err != nil {
		showProfileError(w, r, err)
		return
	}

	buyers, err := hg.svc.Buyers(r.Context())
	if err != nil {
		showError(w, r, http.StatusInternalServerError, err)
		return
	}
	hg.respondBuyers(w, r, buyers, true)
}

func (hg *HandlerGroup) handleDeleteBuyer(w http.ResponseWriter, r *http.Request) {
	if err := hg.svc.DeleteBuyer(r.Context(), chi.URLParam(r, "id")); err != nil {
		showProfileError(w, r, err)
		return
	}

	buyers, err := hg.svc.Buyers(r.Context())
	if err != nil {
		showError(w, r, http.StatusInternalServerError, err)
		return
	}
	hg.respondBuyers(w, r, buyers, true)
}

// handleApplyBuyer puts a saved buyer into the posted invoice.
func (hg *HandlerGroup) handleApplyBuyer(w http.ResponseWriter, r *http.Request) {
	loaded, err := loader.GetInvoice(r.Context())
	if err != nil {
		showError(w, r, http.StatusInternalServerError, err)
		return
	}

	buyers, err := hg.svc.Buyers(r.Context())
	if err != nil {
		showError(w, r, http.StatusInternalServerError, err)
		return
	}

	id := chi.URLParam(r, "id")
	for _, b := range buyers {
		if b.ID == id {
			loaded.Data.Buyer = b.Buyer
			hg.respondEditor(w, r, loaded.Data)
			return
		}
	}
	showProfileError(w, r, service.ErrProfileNotFound)
}

func (hg *HandlerGroup) respondBuyers(w http.ResponseWriter, r *http.Request, buyers []inv.SavedBuyer, changed bool) {
	if !isHTMX(r) {
		render.JSON(w, r, buyers)
		return
	}

	resp := htmx.NewResponse().AddTrigger(event.TriggerSetErrMessage(""))
	if changed {
		resp = resp.AddTrigger(event.TriggerProfilesChanged)
	}
	_ = resp.RenderTempl(r.Context(), w, buyerList(buyers))
}

func (hg *HandlerGroup) respondEditor(w http.ResponseWriter, r *http.Request, data *inv.Data) {
	if !isHTMX(r) {
		render.JSON(w, r, data)
		return
	}

	_ = htmx.NewResponse().
		AddTrigger(event.TriggerSetErrMessage("")).
		RenderTempl(r.Context(), w, editor(data))
}

func showProfileError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrProfileNotFound):
		showError(w, r, http.StatusNotFound, err)
	case errors.Is(err, service.ErrProfileNameRequired):
		showError(w, r, http.StatusUnprocessableEntity, err)
	default:
		showError(w, r, http.StatusInternalServerError, err)
	}
}
