// Package i18n holds the Indonesian and English labels shown by the kasir CLI.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	LangID = "id"
	LangEN = "en"

	DefaultLang = LangID
)

var messages = map[string]map[string]string{
	LangID: {
		"required":             "Wajib diisi",
		"must_be_positive":     "Harus lebih dari nol",
		"must_not_be_negative": "Tidak boleh negatif",
		"out_of_range":         "Di luar batas",
		"must_differ":          "Harus berbeda",
		"empty_selection":      "Pilih minimal satu pesanan",
		"line_not_payable":     "Pesanan sudah dibayar atau bukan milik tab ini",
		"tab_closed":           "Tab sudah lunas",
		"not_found":            "Data tidak ditemukan",
		"constraint":           "Data ditolak oleh database",
		"Active":               "Aktif",
		"Paid":                 "Lunas",
		"Unpaid":               "Belum bayar",
		"PartiallyPaid":        "Dicicil",
		"Lunas":                "Lunas",
		"tab":                  "Tab",
		"total":                "Total",
		"change":               "Kembalian",
		"debt":                 "Kasbon",
		"paid_income":          "Pendapatan tunai",
		"kasbon_income":        "Cicilan kasbon",
		"active_kasbon":        "Kasbon aktif",
		"tabs_closed":          "Tab ditutup",
		"lines_archived":       "Pesanan diarsipkan",
		"open_tabs":            "Tab terbuka",
	},
	LangEN: {
		"required":             "Required",
		"must_be_positive":     "Must be greater than zero",
		"must_not_be_negative": "Must not be negative",
		"out_of_range":         "Out of range",
		"must_differ":          "Must be different",
		"empty_selection":      "Select at least one order line",
		"line_not_payable":     "Line already paid or not on this tab",
		"tab_closed":           "Tab is already paid",
		"not_found":            "Not found",
		"constraint":           "Rejected by the database",
		"Active":               "Active",
		"Paid":                 "Paid",
		"Unpaid":               "Unpaid",
		"PartiallyPaid":        "Partially paid",
		"Lunas":                "Settled",
		"tab":                  "Tab",
		"total":                "Total",
		"change":               "Change",
		"debt":                 "Debt",
		"paid_income":          "Cash income",
		"kasbon_income":        "Debt repayments",
		"active_kasbon":        "Outstanding debt",
		"tabs_closed":          "Tabs closed",
		"lines_archived":       "Lines archived",
		"open_tabs":            "Open tabs",
	},
}

// DetectLanguage picks a supported language from an Accept-Language style
// value or a locale such as "en_US.UTF-8".
func DetectLanguage(v string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	for _, part := range strings.Split(v, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		tag = strings.NewReplacer("_", "-", ".", "-").Replace(tag)
		base := strings.SplitN(tag, "-", 2)[0]
		if _, ok := messages[base]; ok {
			return base
		}
	}
	return DefaultLang
}

// T translates code, falling back to the default language and then to code itself.
func T(lang, code string) string {
	if m, ok := messages[lang]; ok {
		if s, ok := m[code]; ok {
			return s
		}
	}
	if s, ok := messages[DefaultLang][code]; ok {
		return s
	}
	return code
}

// Rupiah formats an amount in whole rupiah with the language's digit grouping.
func Rupiah(lang string, amount int64) string {
	tag := language.Indonesian
	if lang == LangEN {
		tag = language.English
	}
	p := message.NewPrinter(tag)
	if amount < 0 {
		return "-Rp" + p.Sprintf("%d", -amount)
	}
	return "Rp" + p.Sprintf("%d", amount)
}
