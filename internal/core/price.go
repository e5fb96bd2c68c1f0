// Package core holds the expense domain: positions, money handling, the
// free-text price parser and the ledger aggregation functions.
package core

import (
	"regexp"
	"strconv"
	"strings"
)

// Parser extracts a price and a comment from a free-text chat message.
// The pattern is <digits>[.|,<0-2 digits>] immediately followed by the
// configured currency glyph; only the first occurrence counts.
type Parser struct {
	currency string
	re       *regexp.Regexp
}

func NewParser(currency string) *Parser {
	return &Parser{
		currency: currency,
		re:       regexp.MustCompile(`(\d+([.,]\d{0,2})?)` + regexp.QuoteMeta(currency)),
	}
}

func (p *Parser) Currency() string {
	return p.currency
}

// Parse returns the extracted price and comment. ok is false when the text is
// not an expense message: no amount+currency match, an unparsable amount, or
// nothing left over for the comment. A price without a comment is rejected
// ("5€" alone is not an expense entry).
func (p *Parser) Parse(text string) (price Money, comment string, ok bool) {
	loc := p.re.FindStringSubmatchIndex(text)
	if loc == nil {
		return Money{}, "", false
	}

	amount := text[loc[2]:loc[3]]
	cents, err := parseDecimalToCents(amount)
	if err != nil {
		return Money{}, "", false
	}

	// Comment is the input with the matched amount+currency removed.
	comment = strings.TrimSpace(text[:loc[0]] + text[loc[1]:])
	if comment == "" {
		return Money{}, "", false
	}

	return Money{Cents: cents}, comment, true
}

// parseDecimalToCents converts a decimal string to cents. It accepts both dot
// and comma separators and rounds half-up on a third fractional digit. Zero is
// a valid amount; negatives and malformed input are not.
func parseDecimalToCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}

	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil || iv < 0 {
		return 0, ErrInvalidAmount
	}
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, ErrInvalidAmount
	}

	var fracCents int64
	if len(fracPart) > 0 {
		if fracPart[0] < '0' || fracPart[0] > '9' {
			return 0, ErrInvalidAmount
		}
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			if fracPart[1] < '0' || fracPart[1] > '9' {
				return 0, ErrInvalidAmount
			}
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' && fracPart[2] <= '9' {
				fracCents++
			}
		}
	}

	return iv*100 + fracCents, nil
}
