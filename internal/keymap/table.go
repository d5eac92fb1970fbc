package keymap

// Entry assigns a short token to a field name.
type Entry struct {
	Field string `json:"field"`
	Token string `json:"token"`
}

// table is append-only. Shared links live forever, so a token is never
// reassigned or reused, even after its field is gone. New fields go at
// the end with a token that has never appeared here.
var table = []Entry{
	{"language", "a"},
	{"dateFormat", "b"},
	{"currency", "c"},
	{"template", "d"},
	{"logo", "e"},
	{"invoiceNumberObject", "f"},
	{"dateOfIssue", "g"},
	{"dateOfService", "h"},
	{"invoiceType", "i"},
	{"invoiceTypeFieldIsVisible", "j"},
	{"seller", "k"},
	{"buyer", "l"},
	{"items", "m"},
	{"total", "n"},
	{"vatTableSummaryIsVisible", "o"},
	{"paymentMethod", "p"},
	{"paymentMethodFieldIsVisible", "q"},
	{"paymentDue", "r"},
	{"stripePayOnlineUrl", "s"},
	{"notes", "t"},
	{"notesFieldIsVisible", "u"},
	{"personAuthorizedToReceiveFieldIsVisible", "v"},
	{"personAuthorizedToIssueFieldIsVisible", "w"},
	{"taxLabelText", "1"},

	// invoiceNumberObject
	{"label", "x"},
	{"value", "y"},

	// seller, buyer
	{"id", "z"},
	{"name", "A"},
	{"address", "B"},
	{"vatNo", "C"},
	{"vatNoFieldIsVisible", "D"},
	{"email", "E"},
	{"accountNumber", "F"},
	{"accountNumberFieldIsVisible", "G"},
	{"swiftBic", "H"},
	{"swiftBicFieldIsVisible", "I"},
	{"vatNoLabelText", "2"},

	// items
	{"invoiceItemNumberIsVisible", "J"},
	{"nameFieldIsVisible", "K"},
	{"typeOfGTU", "L"},
	{"typeOfGTUFieldIsVisible", "M"},
	{"amount", "N"},
	{"amountFieldIsVisible", "O"},
	{"unit", "P"},
	{"unitFieldIsVisible", "Q"},
	{"netPrice", "R"},
	{"netPriceFieldIsVisible", "S"},
	{"vat", "T"},
	{"vatFieldIsVisible", "U"},
	{"netAmount", "V"},
	{"netAmountFieldIsVisible", "W"},
	{"vatAmount", "X"},
	{"vatAmountFieldIsVisible", "Y"},
	{"preTaxAmount", "Z"},
	{"preTaxAmountFieldIsVisible", "0"},
	{"itemNotes", "3"},
	{"itemNotesFieldIsVisible", "4"},

	// custom columns
	{"customColumns", "5"},
	{"header", "6"},
	{"visible", "7"},
	{"customFields", "8"},
}
