package invoice

import "slices"

type Language string

const (
	LanguageEN Language = "en"
	LanguagePL Language = "pl"
	LanguageDE Language = "de"
	LanguageES Language = "es"
	LanguagePT Language = "pt"
	LanguageRU Language = "ru"
	LanguageUK Language = "uk"
	LanguageFR Language = "fr"
	LanguageIT Language = "it"
	LanguageNL Language = "nl"
)

var Languages = []Language{
	LanguageEN, LanguagePL, LanguageDE, LanguageES, LanguagePT,
	LanguageRU, LanguageUK, LanguageFR, LanguageIT, LanguageNL,
}

var languageLabels = map[Language]string{
	LanguageEN: "English", LanguagePL: "Polish", LanguageDE: "German",
	LanguageES: "Spanish", LanguagePT: "Portuguese", LanguageRU: "Russian",
	LanguageUK: "Ukrainian", LanguageFR: "French", LanguageIT: "Italian",
	LanguageNL: "Dutch",
}

func (l Language) Valid() bool  { return slices.Contains(Languages, l) }
func (l Language) Label() string { return languageLabels[l] }

type DateFormat string

const (
	DateFormatISO        DateFormat = "YYYY-MM-DD"
	DateFormatDaySlash   DateFormat = "DD/MM/YYYY"
	DateFormatMonthSlash DateFormat = "MM/DD/YYYY"
	DateFormatLongDay    DateFormat = "D MMMM YYYY"
	DateFormatLongMonth  DateFormat = "MMMM D, YYYY"
	DateFormatDayDot     DateFormat = "DD.MM.YYYY"
	DateFormatDayDash    DateFormat = "DD-MM-YYYY"
	DateFormatYearDot    DateFormat = "YYYY.MM.DD"
)

var DateFormats = []DateFormat{
	DateFormatISO, DateFormatDaySlash, DateFormatMonthSlash, DateFormatLongDay,
	DateFormatLongMonth, DateFormatDayDot, DateFormatDayDash, DateFormatYearDot,
}

func (f DateFormat) Valid() bool { return slices.Contains(DateFormats, f) }

type Template string

const (
	TemplateDefault Template = "default"
	TemplateStripe  Template = "stripe"
)

var Templates = []Template{TemplateDefault, TemplateStripe}

func (t Template) Valid() bool { return slices.Contains(Templates, t) }

func (t Template) Label() string {
	switch t {
	case TemplateDefault:
		return "Default Template"
	case TemplateStripe:
		return "Stripe Template"
	default:
		return string(t)
	}
}

type Currency string

type currencyInfo struct {
	code   Currency
	symbol string
	label  string
}

// currencies is kept in display order.
var currencies = []currencyInfo{
	{"EUR", "€", "Euro"},
	{"USD", "$", "United States Dollar"},
	{"PLN", "zł", "Polish Złoty"},
	{"GBP", "£", "British Pound Sterling"},
	{"JPY", "¥", "Japanese Yen"},
	{"AUD", "$", "Australian Dollar"},
	{"CAD", "$", "Canadian Dollar"},
	{"CHF", "Fr", "Swiss Franc"},
	{"CNY", "¥", "Chinese Yuan Renminbi"},
	{"HKD", "HK$", "Hong Kong Dollar"},
	{"SGD", "S$", "Singapore Dollar"},
	{"SEK", "kr", "Swedish Krona"},
	{"NOK", "kr", "Norwegian Krone"},
	{"DKK", "kr", "Danish Krone"},
	{"NZD", "NZ$", "New Zealand Dollar"},
	{"INR", "₹", "Indian Rupee"},
	{"KRW", "₩", "South Korean Won"},
	{"MXN", "$", "Mexican Peso"},
	{"BRL", "R$", "Brazilian Real"},
	{"ZAR", "R", "South African Rand"},
	{"TRY", "₺", "Turkish Lira"},
	{"RUB", "₽", "Russian Ruble"},
	{"THB", "฿", "Thai Baht"},
	{"MYR", "RM", "Malaysian Ringgit"},
	{"IDR", "Rp", "Indonesian Rupiah"},
	{"PHP", "₱", "Philippine Peso"},
	{"VND", "₫", "Vietnamese Dong"},
	{"AED", "AED", "UAE Dirham"},
	{"SAR", "SAR", "Saudi Riyal"},
	{"ILS", "₪", "Israeli New Shekel"},
	{"QAR", "QR", "Qatari Riyal"},
	{"KWD", "KWD", "Kuwaiti Dinar"},
	{"BHD", "BHD", "Bahraini Dinar"},
	{"OMR", "OMR", "Omani Rial"},
	{"JOD", "JOD", "Jordanian Dinar"},
	{"EGP", "EGP", "Egyptian Pound"},
	{"LBP", "LBP", "Lebanese Pound"},
	{"IQD", "IQD", "Iraqi Dinar"},
	{"CZK", "Kč", "Czech Koruna"},
	{"HUF", "Ft", "Hungarian Forint"},
	{"RON", "lei", "Romanian Leu"},
	{"BGN", "лв", "Bulgarian Lev"},
	{"HRK", "kn", "Croatian Kuna"},
	{"RSD", "дін", "Serbian Dinar"},
	{"UAH", "₴", "Ukrainian Hryvnia"},
	{"BYN", "Br", "Belarusian Ruble"},
	{"MDL", "L", "Moldovan Leu"},
	{"GEL", "₾", "Georgian Lari"},
	{"KZT", "₸", "Kazakhstani Tenge"},
	{"ARS", "$", "Argentine Peso"},
	{"CLP", "$", "Chilean Peso"},
	{"COP", "$", "Colombian Peso"},
	{"PEN", "S/", "Peruvian Sol"},
	{"UYU", "$", "Uruguayan Peso"},
	{"BOB", "Bs", "Bolivian Boliviano"},
	{"PKR", "₨", "Pakistani Rupee"},
	{"BDT", "৳", "Bangladeshi Taka"},
	{"LKR", "Rs", "Sri Lankan Rupee"},
	{"NPR", "Rs", "Nepalese Rupee"},
	{"NGN", "₦", "Nigerian Naira"},
	{"KES", "KSh", "Kenyan Shilling"},
	{"GHS", "₵", "Ghanaian Cedi"},
	{"ETB", "Br", "Ethiopian Birr"},
	{"MAD", "MAD", "Moroccan Dirham"},
	{"TND", "TND", "Tunisian Dinar"},
	{"ISK", "kr", "Icelandic Króna"},
	{"TWD", "NT$", "New Taiwan Dollar"},
}

var currencyIndex = func() map[Currency]int {
	idx := make(map[Currency]int, len(currencies))
	for i, c := range currencies {
		idx[c.code] = i
	}
	return idx
}()

// Currencies returns the supported currency codes in display order.
func Currencies() []Currency {
	codes := make([]Currency, len(currencies))
	for i, c := range currencies {
		codes[i] = c.code
	}
	return codes
}

func (c Currency) Valid() bool {
	_, ok := currencyIndex[c]
	return ok
}

// Symbol returns the display symbol, or the code itself when unknown.
func (c Currency) Symbol() string {
	if i, ok := currencyIndex[c]; ok {
		return currencies[i].symbol
	}
	return string(c)
}

func (c Currency) Label() string {
	if i, ok := currencyIndex[c]; ok {
		return currencies[i].label
	}
	return string(c)
}
