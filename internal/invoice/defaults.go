package invoice

import "time"

const defaultPaymentTermDays = 14

// Default returns the invoice a fresh visitor starts with.
func Default(now time.Time) *Data {
	issue := Today(now)
	due, _ := AddDays(issue, defaultPaymentTermDays)

	return &Data{
		Language:     LanguageEN,
		DateFormat:   DateFormatISO,
		Currency:     "EUR",
		Template:     TemplateDefault,
		TaxLabelText: "VAT",
		InvoiceNumberObject: &InvoiceNumber{
			Label: "Invoice",
			Value: "1/2024",
		},
		DateOfIssue:               issue,
		DateOfService:             DefaultServiceDate(now),
		PaymentDue:                due,
		InvoiceTypeFieldIsVisible: true,
		Seller: Seller{
			VatNoLabelText:              "VAT no",
			VatNoFieldIsVisible:         true,
			AccountNumberFieldIsVisible: true,
			SwiftBicFieldIsVisible:      true,
			NotesFieldIsVisible:         true,
		},
		Buyer: Buyer{
			VatNoLabelText:      "VAT no",
			VatNoFieldIsVisible: true,
			NotesFieldIsVisible: true,
		},
		Items:                                   []Item{DefaultItem()},
		VatTableSummaryIsVisible:                true,
		PaymentMethod:                           "Bank Transfer",
		PaymentMethodFieldIsVisible:             true,
		NotesFieldIsVisible:                     true,
		PersonAuthorizedToReceiveFieldIsVisible: true,
		PersonAuthorizedToIssueFieldIsVisible:   true,
	}
}

// DefaultItem is the line added to a new invoice or by "add item".
func DefaultItem() Item {
	return Item{
		InvoiceItemNumberIsVisible: true,
		NameFieldIsVisible:         true,
		TypeOfGTUFieldIsVisible:    true,
		Amount:                     1,
		AmountFieldIsVisible:       true,
		Unit:                       "pcs",
		UnitFieldIsVisible:         true,
		NetPriceFieldIsVisible:     true,
		VAT:                        NumericVAT(23),
		VatFieldIsVisible:          true,
		NetAmountFieldIsVisible:    true,
		VatAmountFieldIsVisible:    true,
		PreTaxAmountFieldIsVisible: true,
	}
}
