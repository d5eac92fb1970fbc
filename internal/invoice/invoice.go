package invoice

import "strings"

// Data is a complete invoice snapshot. It is what the form edits, what the
// store persists and what a share link carries. JSON names are part of the
// share-link and storage formats.
type Data struct {
	Language            Language       `json:"language"`
	DateFormat          DateFormat     `json:"dateFormat"`
	Currency            Currency       `json:"currency"`
	Template            Template       `json:"template"`
	Logo                string         `json:"logo,omitempty"`
	InvoiceNumberObject *InvoiceNumber `json:"invoiceNumberObject,omitempty"`
	TaxLabelText        string         `json:"taxLabelText"`

	DateOfIssue   string `json:"dateOfIssue"`
	DateOfService string `json:"dateOfService"`

	InvoiceType               string `json:"invoiceType,omitempty"`
	InvoiceTypeFieldIsVisible bool   `json:"invoiceTypeFieldIsVisible"`

	Seller Seller `json:"seller"`
	Buyer  Buyer  `json:"buyer"`

	Items []Item  `json:"items"`
	Total float64 `json:"total"`

	VatTableSummaryIsVisible bool `json:"vatTableSummaryIsVisible"`

	PaymentMethod               string `json:"paymentMethod,omitempty"`
	PaymentMethodFieldIsVisible bool   `json:"paymentMethodFieldIsVisible"`
	PaymentDue                  string `json:"paymentDue"`
	StripePayOnlineURL          string `json:"stripePayOnlineUrl,omitempty"`

	Notes               string `json:"notes,omitempty"`
	NotesFieldIsVisible bool   `json:"notesFieldIsVisible"`

	PersonAuthorizedToReceiveFieldIsVisible bool `json:"personAuthorizedToReceiveFieldIsVisible"`
	PersonAuthorizedToIssueFieldIsVisible   bool `json:"personAuthorizedToIssueFieldIsVisible"`

	CustomColumns []CustomColumn `json:"customColumns,omitempty"`
}

type InvoiceNumber struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Item is one invoice line. NetAmount, VatAmount and PreTaxAmount are
// derived by Recalculate and carried verbatim everywhere else.
type Item struct {
	InvoiceItemNumberIsVisible bool `json:"invoiceItemNumberIsVisible"`

	Name               string `json:"name"`
	NameFieldIsVisible bool   `json:"nameFieldIsVisible"`

	TypeOfGTU               string `json:"typeOfGTU"`
	TypeOfGTUFieldIsVisible bool   `json:"typeOfGTUFieldIsVisible"`

	Amount               float64 `json:"amount"`
	AmountFieldIsVisible bool    `json:"amountFieldIsVisible"`

	Unit               string `json:"unit"`
	UnitFieldIsVisible bool   `json:"unitFieldIsVisible"`

	NetPrice               float64 `json:"netPrice"`
	NetPriceFieldIsVisible bool    `json:"netPriceFieldIsVisible"`

	VAT               VAT  `json:"vat"`
	VatFieldIsVisible bool `json:"vatFieldIsVisible"`

	NetAmount               float64 `json:"netAmount"`
	NetAmountFieldIsVisible bool    `json:"netAmountFieldIsVisible"`

	VatAmount               float64 `json:"vatAmount"`
	VatAmountFieldIsVisible bool    `json:"vatAmountFieldIsVisible"`

	PreTaxAmount               float64 `json:"preTaxAmount"`
	PreTaxAmountFieldIsVisible bool    `json:"preTaxAmountFieldIsVisible"`

	ItemNotes               string `json:"itemNotes,omitempty"`
	ItemNotesFieldIsVisible bool   `json:"itemNotesFieldIsVisible,omitempty"`

	// CustomFields holds values for Data.CustomColumns, keyed by column ID.
	CustomFields map[string]string `json:"customFields,omitempty"`
}

type CustomColumn struct {
	ID      string `json:"id"`
	Header  string `json:"header"`
	Visible bool   `json:"visible"`
}

type Seller struct {
	ID                          string `json:"id,omitempty"`
	Name                        string `json:"name"`
	Address                     string `json:"address"`
	VatNo                       string `json:"vatNo,omitempty"`
	VatNoLabelText              string `json:"vatNoLabelText"`
	VatNoFieldIsVisible         bool   `json:"vatNoFieldIsVisible"`
	Email                       string `json:"email"`
	AccountNumber               string `json:"accountNumber,omitempty"`
	AccountNumberFieldIsVisible bool   `json:"accountNumberFieldIsVisible"`
	SwiftBic                    string `json:"swiftBic,omitempty"`
	SwiftBicFieldIsVisible      bool   `json:"swiftBicFieldIsVisible"`
	Notes                       string `json:"notes,omitempty"`
	NotesFieldIsVisible         bool   `json:"notesFieldIsVisible"`
}

type Buyer struct {
	ID                  string `json:"id,omitempty"`
	Name                string `json:"name"`
	Address             string `json:"address"`
	VatNo               string `json:"vatNo,omitempty"`
	VatNoLabelText      string `json:"vatNoLabelText"`
	VatNoFieldIsVisible bool   `json:"vatNoFieldIsVisible"`
	Email               string `json:"email"`
	Notes               string `json:"notes,omitempty"`
	NotesFieldIsVisible bool   `json:"notesFieldIsVisible"`
}

// SavedSeller is a seller profile kept in the local profile list. Unlike
// Seller, its ID is always set.
type SavedSeller struct {
	Seller
}

// SavedBuyer is a buyer profile kept in the local profile list. Unlike
// Buyer, its ID is always set.
type SavedBuyer struct {
	Buyer
}

// HasEmbeddedLogo reports whether the logo is an inline data URI, which
// is too large to travel in a share link.
func (d *Data) HasEmbeddedLogo() bool {
	return strings.HasPrefix(d.Logo, "data:")
}
