package checkout

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/sayuryunur/storefront/internal/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var rupiah = message.NewPrinter(language.Indonesian)

// FormatRupiah renders an amount with Indonesian digit grouping, e.g. "Rp 15.000".
func FormatRupiah(amount int64) string {
	return "Rp " + rupiah.Sprintf("%d", amount)
}

// Message is the plaintext order summary sent to the store over WhatsApp.
func Message(order *models.Order) string {
	var b strings.Builder

	b.WriteString("Halo, saya ingin pesan:\n\n")

	for i, item := range order.Items {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("- " + item.Name + " x" + strconv.Itoa(item.Quantity) + " (" + FormatRupiah(item.LineTotal()) + ")")
	}

	notes := order.Notes
	if notes == "" {
		notes = "-"
	}

	b.WriteString("\n\nSubtotal: " + FormatRupiah(order.Subtotal))
	b.WriteString("\nOngkir: " + FormatRupiah(order.Shipping) + " (" + strconv.FormatFloat(order.DistanceKm, 'f', 1, 64) + " km)")
	b.WriteString("\nTotal: " + FormatRupiah(order.Total))
	b.WriteString("\n\nNama: " + order.Customer.Name)
	b.WriteString("\nAlamat: " + order.Customer.Address)
	b.WriteString("\nHP: " + order.Customer.Phone)
	b.WriteString("\nCatatan: " + notes)
	b.WriteString("\n\nTerima kasih")

	return b.String()
}

// WhatsAppURL builds the click-to-chat link carrying text. Spaces are encoded
// as %20 since WhatsApp does not decode '+'.
func WhatsAppURL(base, number, text string) string {
	return strings.TrimRight(base, "/") + "/" + number + "?text=" + strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}
