package invoice

import (
	"encoding/json"
	"strconv"

	"github.com/a-h/templ"

	inv "github.com/angelofallars/sharebill/internal/invoice"
)

const pageTitle = "Invoice Share"

func prettyJSON(d *inv.Data) (string, error) {
	raw, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func taxLabel(d *inv.Data) string {
	if d.TaxLabelText == "" {
		return "VAT"
	}
	return d.TaxLabelText
}

func vatLabel(v inv.VAT) string {
	if v.IsNumeric() {
		return v.String() + "%"
	}
	return v.String()
}

func quantity(it inv.Item) string {
	return strconv.FormatFloat(it.Amount, 'f', -1, 64) + " " + it.Unit
}

type profileItem struct {
	id, name string
}

func sellerList(sellers []inv.SavedSeller) templ.Component {
	items := make([]profileItem, 0, len(sellers))
	for _, s := range sellers {
		items = append(items, profileItem{id: s.ID, name: s.Name})
	}
	return profileList("sellers", "Saved sellers", items)
}

func buyerList(buyers []inv.SavedBuyer) templ.Component {
	items := make([]profileItem, 0, len(buyers))
	for _, b := range buyers {
		items = append(items, profileItem{id: b.ID, name: b.Name})
	}
	return profileList("buyers", "Saved buyers", items)
}

func profileURL(kind, id string) string {
	return "/" + kind + "/" + id
}
