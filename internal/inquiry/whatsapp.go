package inquiry

import (
	"net/url"
	"strconv"
	"strings"

	"motodealer/internal/cart"
)

// Contact resolves the inquiry recipient. Number resolution order: the
// dealership's main WhatsApp setting, else its general phone, else empty.
type Contact struct {
	DealershipName string
	MainWhatsapp   string
	Phone          string
}

func (c Contact) number() string {
	if c.MainWhatsapp != "" {
		return c.MainWhatsapp
	}
	return c.Phone
}

// ProductMessage composes the single-product inquiry text.
func ProductMessage(name string, price *float64) string {
	var b strings.Builder
	b.WriteString("Hola! Estoy interesado en: ")
	b.WriteString(name)
	if price != nil {
		b.WriteString(" - $")
		b.WriteString(money(*price))
	} else {
		b.WriteString(" - Precio a consultar")
	}
	b.WriteString(". ¿Está disponible?")
	return b.String()
}

// CartMessage composes the full-cart inquiry text: header, one bullet per
// line (subtotal only when the product has a price), a total line only when
// the cart total is positive, and the fixed closing question. The caller is
// responsible for not sending an empty cart.
func CartMessage(lines []cart.Line, dealershipName string, totalPrice float64) string {
	name := dealershipName
	if name == "" {
		name = "el concesionario"
	}
	var b strings.Builder
	b.WriteString("Hola! Estoy interesado en estos productos de ")
	b.WriteString(name)
	b.WriteString(":\n\n")
	for i, ln := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("• ")
		b.WriteString(ln.Product.Name)
		b.WriteString(" (")
		b.WriteString(strconv.Itoa(ln.Quantity))
		b.WriteString("x)")
		if ln.Product.Price != nil {
			b.WriteString(" - $")
			b.WriteString(money(*ln.Product.Price * float64(ln.Quantity)))
		}
	}
	b.WriteString("\n\n")
	if totalPrice > 0 {
		b.WriteString("Total: $")
		b.WriteString(money(totalPrice))
		b.WriteString("\n\n")
	}
	b.WriteString("¿Están disponibles?")
	return b.String()
}

// Link builds the wa.me deep link. The phone segment carries ASCII digits
// only; everything else in the configured number is stripped. A contact with
// no usable number yields an empty phone segment; callers surface that as a
// degraded state, not an error.
func Link(c Contact, message string) string {
	return "https://wa.me/" + digitsOnly(c.number()) + "?text=" + escape(message)
}

// ProductLink is the deep link for a single product inquiry.
func ProductLink(c Contact, name string, price *float64) string {
	return Link(c, ProductMessage(name, price))
}

// CartLink is the deep link for a full-cart inquiry.
func CartLink(c Contact, lines []cart.Line, totalPrice float64) string {
	return Link(c, CartMessage(lines, c.DealershipName, totalPrice))
}

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// escape percent-encodes for a query value the way encodeURIComponent does:
// spaces become %20, never '+'.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// money formats an amount without grouping separators; whole amounts drop
// the decimals.
func money(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
