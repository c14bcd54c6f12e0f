// Package mailparser extracts transaction candidates from bank notification
// emails. Each field is served by an ordered list of pure extractors tried
// in sequence; the first success wins. Every extractor is independently
// testable.
package mailparser

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/rygrffth/cashflow/internal/currencyutils"
	"github.com/rygrffth/cashflow/internal/dateutils"
	"github.com/rygrffth/cashflow/internal/models"
)

// failureKeywords in a subject mark a failed transaction notification; such
// messages produce no candidate.
var failureKeywords = []string{"Tidak Berhasil", "Gagal", "Failed", "Ditolak"}

// SubjectIndicatesFailure reports whether the subject describes a failed
// transaction.
func SubjectIndicatesFailure(subject string) bool {
	for _, kw := range failureKeywords {
		if strings.Contains(subject, kw) {
			return true
		}
	}
	return false
}

// Amount extraction. Labeled patterns take priority over the generic
// "Rp <number>" fallback so summary lines beat incidental amounts in the
// body.
var amountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`Total Transaksi\s*Rp\s*([\d.,]+)`),
	regexp.MustCompile(`Nominal Transaksi\s*Rp\s*([\d.,]+)`),
	regexp.MustCompile(`Nominal Top-?[Uu]p\s*Rp\s*([\d.,]+)`),
	regexp.MustCompile(`Nominal Transfer\s*Rp\s*([\d.,]+)`),
	regexp.MustCompile(`Rp\s*([\d.,]+)`),
}

// ExtractAmount returns the transaction amount in whole rupiah, or zero when
// no pattern matches. Callers drop zero-amount candidates.
func ExtractAmount(body string) decimal.Decimal {
	for _, p := range amountPatterns {
		m := p.FindStringSubmatch(body)
		if m == nil {
			continue
		}
		amount := currencyutils.ParseRupiah(m[1])
		if amount.IsPositive() {
			return amount
		}
	}
	return decimal.Zero
}

// Date extraction. The explicit "Tanggal ..." label wins over bare dates;
// short Indonesian month forms are tried before full ones.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`Tanggal\s+(\d{1,2}\s+[A-Za-z]+\s+\d{4})`),
	regexp.MustCompile(`(\d{1,2}\s+(?:Jan|Feb|Mar|Apr|Mei|Jun|Jul|Agu|Sep|Okt|Nov|Des)\s+\d{4})`),
	regexp.MustCompile(`(\d{1,2}\s+(?:Januari|Februari|Maret|April|Mei|Juni|Juli|Agustus|September|Oktober|November|Desember)\s+\d{4})`),
}

// ExtractDate returns the transaction date as an ISO string, defaulting to
// today when no pattern matches or parsing fails.
func ExtractDate(body string, today time.Time) string {
	for _, p := range datePatterns {
		m := p.FindStringSubmatch(body)
		if m == nil {
			continue
		}
		parsed, err := dateutils.ParseDate(m[1])
		if err != nil {
			continue
		}
		return dateutils.ToISO(parsed)
	}
	return dateutils.ToISO(today)
}

// Time extraction.
var timePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d{1,2}:\d{2}:\d{2})\s*WIB`),
	regexp.MustCompile(`Jam\s+(\d{1,2}:\d{2}:\d{2})`),
}

// ExtractTime returns the hh:mm:ss transaction time, or "" when absent.
func ExtractTime(body string) string {
	for _, p := range timePatterns {
		if m := p.FindStringSubmatch(body); m != nil {
			return m[1]
		}
	}
	return ""
}

// Counterparty extraction. Four stages, each tried only when the previous
// produced no accepted candidate:
//
//  1. "Penerima <name> - ID" labeled span
//  2. "Penyedia Jasa <name> ****1234" masked account
//  3. "Tujuan/Kepada <name>" terminated by a whitespace gap or account number
//  4. a generic span after any label word, terminated by "- ID", masked
//     digits or a whitespace gap
var counterpartyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`Penerima\s*:?\s*(.+?)\s*-\s*ID`),
	regexp.MustCompile(`Penyedia Jasa\s*:?\s*(.+?)\s*\*{4}\d*`),
	regexp.MustCompile(`(?:Tujuan|Kepada)\s*:?\s*(.+?)(?:\s{2,}|\s\d{6,})`),
	regexp.MustCompile(`(?:Penerima|Penyedia Jasa|Tujuan|Kepada)\s*:?\s*([^*\n]+?)(?:\s*-\s*ID|\s*\*{2,}|\s{3,})`),
}

// label words that disqualify a counterparty candidate; matching one means
// the regex ran into the next field of the notification.
var counterpartyRejects = []string{"Tanggal", "Nominal", "Jam", "Halo", "Berikut"}

// DefaultCounterparty is used when every extraction stage fails.
const DefaultCounterparty = "Mandiri Transaction"

// ExtractCounterparty returns the cleaned counterparty name, falling back to
// DefaultCounterparty.
func ExtractCounterparty(body string) string {
	for _, p := range counterpartyPatterns {
		m := p.FindStringSubmatch(body)
		if m == nil {
			continue
		}
		candidate := sanitizeCounterparty(m[1])
		if acceptCounterparty(candidate) {
			return candidate
		}
	}
	return DefaultCounterparty
}

func acceptCounterparty(s string) bool {
	n := utf8.RuneCountInString(s)
	if n <= 2 || n >= 80 {
		return false
	}
	for _, reject := range counterpartyRejects {
		if strings.Contains(s, reject) {
			return false
		}
	}
	return true
}

var whitespaceRun = regexp.MustCompile(`\s+`)

func sanitizeCounterparty(s string) string {
	s = strings.NewReplacer(`"`, "", "'", "", "`", "").Replace(s)
	return whitespaceRun.ReplaceAllString(strings.TrimSpace(s), " ")
}

// Direction from the subject line. Ambiguous subjects bias toward Expense.
var (
	expenseKeywords = []string{"Pembayaran", "Debit", "Transfer Keluar", "Tarik", "Top-up", "Top Up"}
	incomeKeywords  = []string{"Kredit", "Transfer Masuk", "Terima", "Masuk"}
)

// DirectionFromSubject classifies a notification subject.
func DirectionFromSubject(subject string) models.Direction {
	for _, kw := range expenseKeywords {
		if strings.Contains(subject, kw) {
			return models.DirectionExpense
		}
	}
	for _, kw := range incomeKeywords {
		if strings.Contains(subject, kw) {
			return models.DirectionIncome
		}
	}
	return models.DirectionExpense
}

// Parse runs the full extraction cascade over one message. The second return
// value is false when the message yields no candidate: a failure subject or
// no parseable amount.
func Parse(subject, body string, today time.Time) (*models.ImportCandidate, bool) {
	if SubjectIndicatesFailure(subject) {
		return nil, false
	}

	amount := ExtractAmount(body)
	if !amount.IsPositive() {
		return nil, false
	}

	counterparty := ExtractCounterparty(body)
	note := counterparty
	if txTime := ExtractTime(body); txTime != "" {
		note = "[" + txTime + "] " + counterparty
	}

	return &models.ImportCandidate{
		Date:      ExtractDate(body, today),
		Direction: DirectionFromSubject(subject),
		Category:  models.CategoryOther,
		Amount:    amount,
		Note:      note,
		Subject:   subject,
	}, true
}
