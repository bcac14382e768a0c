package console

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// InputKind selects how a raw console entry is parsed and validated.
type InputKind int

const (
	KindText            InputKind = iota // non-empty free text
	KindPositiveDecimal                  // amount > 0, comma or dot separator
	KindPositiveInteger                  // integer >= 1
	KindPercent                          // percentage >= 0, returned as a fraction
)

func (k InputKind) String() string {
	switch k {
	case KindText:
		return "texto"
	case KindPositiveInteger:
		return "número inteiro"
	default:
		return "número decimal"
	}
}

// Input is a parsed entry. Only the field matching Kind is set: Text for
// KindText, Integer for KindPositiveInteger, Decimal otherwise.
type Input struct {
	Kind    InputKind
	Text    string
	Integer int
	Decimal decimal.Decimal
}

// InputFormatError reports an entry that did not parse or validate for its kind.
type InputFormatError struct {
	Kind   InputKind
	Raw    string
	Reason string
}

func (e *InputFormatError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("Entrada inválida. %s", e.Reason)
	}
	return fmt.Sprintf("Entrada inválida. Digite um %s válido.", e.Kind)
}

var hundred = decimal.NewFromInt(100)

// ParseInput parses raw according to kind.
func ParseInput(kind InputKind, raw string) (Input, error) {
	entry := strings.TrimSpace(raw)

	switch kind {
	case KindText:
		if entry == "" {
			return Input{}, &InputFormatError{Kind: kind, Raw: raw, Reason: "O campo não pode ficar vazio."}
		}
		return Input{Kind: kind, Text: entry}, nil

	case KindPositiveInteger:
		n, err := strconv.Atoi(entry)
		if err != nil {
			return Input{}, &InputFormatError{Kind: kind, Raw: raw}
		}
		if n < 1 {
			return Input{}, &InputFormatError{Kind: kind, Raw: raw, Reason: "O valor deve ser maior que zero."}
		}
		return Input{Kind: kind, Integer: n}, nil

	case KindPositiveDecimal, KindPercent:
		d, err := decimal.NewFromString(strings.ReplaceAll(entry, ",", "."))
		if err != nil {
			return Input{}, &InputFormatError{Kind: kind, Raw: raw}
		}
		if kind == KindPercent {
			if d.IsNegative() {
				return Input{}, &InputFormatError{Kind: kind, Raw: raw, Reason: "A taxa não pode ser negativa."}
			}
			return Input{Kind: kind, Decimal: d.Div(hundred)}, nil
		}
		if !d.IsPositive() {
			return Input{}, &InputFormatError{Kind: kind, Raw: raw, Reason: "O valor deve ser maior que zero."}
		}
		return Input{Kind: kind, Decimal: d}, nil
	}

	return Input{}, fmt.Errorf("unknown input kind %d", kind)
}
