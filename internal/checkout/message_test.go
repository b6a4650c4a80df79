package checkout

import (
	"net/url"
	"strings"
	"testing"

	"github.com/sayuryunur/storefront/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatRupiah(t *testing.T) {
	assert.Equal(t, "Rp 0", FormatRupiah(0))
	assert.Equal(t, "Rp 500", FormatRupiah(500))
	assert.Equal(t, "Rp 15.000", FormatRupiah(15000))
	assert.Equal(t, "Rp 1.250.000", FormatRupiah(1250000))
}

func TestMessage(t *testing.T) {
	order := &models.Order{
		Items: []models.CartLine{
			{ID: "1", Name: "Bayam", Price: 5000, Quantity: 1},
			{ID: "2", Name: "Kangkung", Price: 5000, Quantity: 2},
		},
		Subtotal:   15000,
		Shipping:   3000,
		Total:      18000,
		DistanceKm: 2.04,
		Customer:   models.Customer{Name: "Bu Sri", Address: "Jl. Pemuda 1", Phone: "0812-3456"},
	}

	expected := "Halo, saya ingin pesan:\n\n" +
		"- Bayam x1 (Rp 5.000)\n" +
		"- Kangkung x2 (Rp 10.000)\n\n" +
		"Subtotal: Rp 15.000\n" +
		"Ongkir: Rp 3.000 (2.0 km)\n" +
		"Total: Rp 18.000\n\n" +
		"Nama: Bu Sri\n" +
		"Alamat: Jl. Pemuda 1\n" +
		"HP: 0812-3456\n" +
		"Catatan: -\n\n" +
		"Terima kasih"

	assert.Equal(t, expected, Message(order))

	order.Notes = "Tanpa plastik"
	assert.Contains(t, Message(order), "Catatan: Tanpa plastik\n")
}

func TestWhatsAppURL(t *testing.T) {
	text := "Halo, saya ingin pesan:\n\n- Bayam x1 (Rp 5.000)"

	link := WhatsAppURL("https://wa.me/", "6287833415425", text)

	require.True(t, strings.HasPrefix(link, "https://wa.me/6287833415425?text="))
	assert.NotContains(t, link, "+")
	assert.Contains(t, link, "Halo%2C%20saya%20ingin%20pesan%3A%0A%0A")

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, text, parsed.Query().Get("text"))
}
