// Package money formatea montos en centavos para recibos y descripciones de auditoría.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter formatea montos con símbolo y separadores de miles según el idioma.
type Formatter struct {
	symbol  string
	printer *message.Printer
}

// NewFormatter construye el formateador. lang vacío o inválido usa inglés ("1,234.50").
func NewFormatter(symbol, lang string) *Formatter {
	tag, err := language.Parse(lang)
	if err != nil || lang == "" {
		tag = language.English
	}
	return &Formatter{symbol: symbol, printer: message.NewPrinter(tag)}
}

// Cents formatea un monto en centavos: 123450 → "₱1,234.50".
func (f *Formatter) Cents(cents int64) string {
	if f == nil {
		return decimal.New(cents, -2).StringFixed(2)
	}
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return sign + f.symbol + f.printer.Sprintf("%d", cents/100) + fmt.Sprintf(".%02d", cents%100)
}

// Symbol devuelve el símbolo configurado.
func (f *Formatter) Symbol() string { return f.symbol }
