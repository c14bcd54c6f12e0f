package mailparser

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rygrffth/cashflow/internal/models"
)

var parseToday = time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)

func TestExtractAmount(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int64
	}{
		{
			name: "total transaksi label",
			body: "Berikut rincian transaksi Anda. Total Transaksi Rp 1.250.000 berhasil.",
			want: 1250000,
		},
		{
			name: "nominal transaksi label",
			body: "Nominal Transaksi Rp 75.500",
			want: 75500,
		},
		{
			name: "nominal top-up label",
			body: "Nominal Top-up Rp 100.000 ke nomor 0812",
			want: 100000,
		},
		{
			name: "comma is decimal separator, fraction truncated",
			body: "Nominal Transfer Rp 50,00",
			want: 50,
		},
		{
			name: "labeled pattern beats earlier generic match",
			body: "Biaya admin Rp 2.500 Total Transaksi Rp 300.000",
			want: 300000,
		},
		{
			name: "generic fallback",
			body: "Pembayaran sebesar Rp 42.000 telah diproses",
			want: 42000,
		},
		{
			name: "no pattern yields zero",
			body: "Halo, tidak ada nominal di sini",
			want: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractAmount(tt.body)
			assert.True(t, got.Equal(decimal.NewFromInt(tt.want)),
				"got %s, want %d", got, tt.want)
		})
	}
}

func TestExtractDate(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "labeled with full Indonesian month",
			body: "Tanggal 5 Agustus 2025 Jam 10:00:00",
			want: "2025-08-05",
		},
		{
			name: "bare short month",
			body: "transaksi pada 17 Agu 2025 berhasil",
			want: "2025-08-17",
		},
		{
			name: "bare full month",
			body: "pada 3 Desember 2025 dana diterima",
			want: "2025-12-03",
		},
		{
			name: "no date defaults to today",
			body: "tidak ada tanggal",
			want: "2025-08-20",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractDate(tt.body, parseToday))
		})
	}
}

func TestExtractTime(t *testing.T) {
	assert.Equal(t, "14:30:05", ExtractTime("pukul 14:30:05 WIB"))
	assert.Equal(t, "09:15:00", ExtractTime("Jam 09:15:00 telah diproses"))
	assert.Equal(t, "", ExtractTime("tanpa waktu"))
}

func TestExtractCounterparty(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "penerima with ID terminator",
			body: "Penerima BUDI SANTOSO - ID 1234567890",
			want: "BUDI SANTOSO",
		},
		{
			name: "penyedia jasa with masked digits",
			body: "Penyedia Jasa GoPay Customer ****4821",
			want: "GoPay Customer",
		},
		{
			name: "tujuan with account number",
			body: "Tujuan WARUNG SEMBAKO JAYA 8821003456",
			want: "WARUNG SEMBAKO JAYA",
		},
		{
			name: "kepada with whitespace gap",
			body: "Kepada TOKO KELONTONG   Nominal Transaksi Rp 5.000",
			want: "TOKO KELONTONG",
		},
		{
			name: "quotes stripped and whitespace collapsed",
			body: `Penerima "ANDI  WIJAYA" - ID 99`,
			want: "ANDI WIJAYA",
		},
		{
			name: "candidate containing a label word is rejected",
			body: "Penerima Tanggal - ID 12",
			want: DefaultCounterparty,
		},
		{
			name: "multibyte name judged by rune count, not bytes",
			body: "Penerima " + strings.Repeat("É", 45) + " - ID 123",
			want: strings.Repeat("É", 45),
		},
		{
			name: "nothing matches",
			body: "Halo, saldo Anda bertambah.",
			want: DefaultCounterparty,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractCounterparty(tt.body))
		})
	}
}

func TestDirectionFromSubject(t *testing.T) {
	tests := []struct {
		subject string
		want    models.Direction
	}{
		{"Pembayaran Berhasil", models.DirectionExpense},
		{"Notifikasi Top-up", models.DirectionExpense},
		{"Transfer Keluar Berhasil", models.DirectionExpense},
		{"Transfer Masuk dari BUDI", models.DirectionIncome},
		{"Dana Kredit Diterima", models.DirectionIncome},
		{"Notifikasi Livin", models.DirectionExpense}, // ambiguous biases to expense
	}
	for _, tt := range tests {
		t.Run(tt.subject, func(t *testing.T) {
			assert.Equal(t, tt.want, DirectionFromSubject(tt.subject))
		})
	}
}

func TestSubjectIndicatesFailure(t *testing.T) {
	assert.True(t, SubjectIndicatesFailure("Transaksi Tidak Berhasil"))
	assert.True(t, SubjectIndicatesFailure("Pembayaran Gagal"))
	assert.True(t, SubjectIndicatesFailure("Transaksi Ditolak"))
	assert.False(t, SubjectIndicatesFailure("Pembayaran Berhasil"))
}

func TestParseFullMessage(t *testing.T) {
	body := "Halo, Berikut rincian transaksi Anda. " +
		"Penerima BUDI SANTOSO - ID 1234567890 " +
		"Total Transaksi Rp 1.250.000 " +
		"Tanggal 5 Agustus 2025 " +
		"10:30:00 WIB"

	c, ok := Parse("Pembayaran Berhasil", body, parseToday)
	require.True(t, ok)
	assert.Equal(t, "2025-08-05", c.Date)
	assert.Equal(t, models.DirectionExpense, c.Direction)
	assert.Equal(t, models.CategoryOther, c.Category)
	assert.True(t, c.Amount.Equal(decimal.NewFromInt(1250000)))
	assert.Equal(t, "[10:30:00] BUDI SANTOSO", c.Note)
	assert.Equal(t, "Pembayaran Berhasil", c.Subject)

	tx := c.Transaction()
	assert.Equal(t, models.StatusCleared, tx.Status)
	assert.Equal(t, c.Date, tx.SettledDate)
	assert.Equal(t, models.SourceBank, tx.Source)
}

func TestParseNoteWithoutTime(t *testing.T) {
	c, ok := Parse("Pembayaran", "Penerima SARI - ID 8 Total Transaksi Rp 10.000", parseToday)
	require.True(t, ok)
	assert.Equal(t, "SARI", c.Note, "note is just the counterparty when no time matched")
}

func TestParseDropsZeroAmountAndFailures(t *testing.T) {
	_, ok := Parse("Pembayaran Berhasil", "tidak ada nominal di sini", parseToday)
	assert.False(t, ok, "zero amount drops the candidate")

	_, ok = Parse("Transaksi Gagal", "Total Transaksi Rp 5.000", parseToday)
	assert.False(t, ok, "failure subject drops the candidate")
}

func TestHTMLToText(t *testing.T) {
	in := `<html><head><style>p{color:red}</style></head><body>
		<p>Total&nbsp;Transaksi Rp&nbsp;1.250.000</p>
		<div>Tanggal   5 Agustus 2025</div>
	</body></html>`

	got := HTMLToText(in)
	assert.Equal(t, "Total Transaksi Rp 1.250.000 Tanggal 5 Agustus 2025", got)

	amount := ExtractAmount(got)
	assert.True(t, amount.Equal(decimal.NewFromInt(1250000)))
}
