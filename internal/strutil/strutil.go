// Package strutil parses and formats decimal representations of
// fixed-point numbers.
package strutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

const delim = '.'

// PosError is a parse error with a 1-based position in the input.
type PosError struct {
	Pos int
	Msg string
}

func newPosError(msg string, pos int) *PosError {
	return &PosError{Msg: msg, Pos: pos}
}

func (pe PosError) Error() string {
	return pe.Msg + fmt.Sprintf(" at pos %d", pe.Pos)
}

func addPosErrorOffset(err error, offset int) error {
	var pe *PosError
	if !errors.As(err, &pe) {
		return err
	}
	pe.Pos += offset
	return pe
}

// Parse splits a decimal string into a sign, a digit run and a decimal
// exponent, so that the represented value is digits * 10^exp.
// Leading zeros before the delimiter and trailing zeros after it are
// removed; a zero value yields an empty digit run.
// The input may be quoted and surrounded by spaces, and may carry an
// 'e'/'E' exponent suffix.
func Parse(s string) (neg bool, digits string, exp int, err error) {
	s, offset, neg := prepareString(s)
	if len(s) == 0 {
		return false, "", 0, fmt.Errorf("empty input")
	}
	digits, exp, err = doParse(s)
	if err != nil {
		// add what we've trimmed before and add +1 to the offset to start indices from 1.
		return false, "", 0, fmt.Errorf("parsing failed: %w", addPosErrorOffset(err, offset+1))
	}
	return neg, digits, exp, nil
}

func doParse(s string) (digits string, exp int, err error) {
	digits, delimPos, exp, err := removeLeadingZeros(s)
	if err != nil {
		return "", 0, err
	}
	digits, expFromDelim := removeTrailingZeros(digits, delimPos)
	return digits, exp + expFromDelim, nil
}

// prepareString cleans the string from '"', '-', '+' symbols and spaces.
func prepareString(s string) (prepared string, offset int, neg bool) {
	if len(s) == 0 {
		return "", 0, false
	}
	if s[0] == '"' {
		s = s[1:]
		offset++
	}
	if len(s) == 0 {
		return "", 0, false
	}
	if s[len(s)-1] == '"' {
		s = s[:len(s)-1]
	}
	if trimmed := strings.TrimLeftFunc(s, unicode.IsSpace); len(trimmed) != len(s) {
		offset += len(s) - len(trimmed)
		s = trimmed
	}
	s = strings.TrimRightFunc(s, unicode.IsSpace)
	if len(s) == 0 {
		return "", 0, false
	}
	if s[0] == '-' {
		neg = true
		offset++
		s = s[1:]
	} else if s[0] == '+' {
		offset++
		s = s[1:]
	}
	return s, offset, neg
}

func removeLeadingZeros(s string) (result string, delimPos int, exp int, err error) {
	var b strings.Builder
	delimPos, firstNonZeroPos, sawDigit := -1, -1, false
outer:
	for i, r := range s {
		switch {
		case '0' <= r && r <= '9':
			sawDigit = true
			if b.Len() == 0 {
				if r == '0' { // trim leading zeros
					continue
				}
				firstNonZeroPos = i
			}
			b.WriteRune(r)
		case r == 'e' || r == 'E':
			if !sawDigit {
				return "", 0, 0, newPosError(fmt.Sprintf("unexpected symbol %q", r), i)
			}
			parsed, perr := strconv.ParseInt(s[i+1:], 10, 32)
			if perr != nil {
				return "", 0, 0, newPosError("error parsing exponent: "+perr.Error(), i+1)
			}
			exp = int(parsed)
			break outer
		case r == delim:
			if delimPos != -1 {
				return "", 0, 0, newPosError("unexpected delimeter", i)
			}
			delimPos = i
		default:
			return "", 0, 0, newPosError(fmt.Sprintf("unexpected symbol %q", r), i)
		}
	}
	if !sawDigit && delimPos == -1 {
		return "", 0, 0, newPosError("no digits", 0)
	}
	if firstNonZeroPos == -1 { // a zero-only string
		return "", 0, 0, nil
	}

	result = b.String()

	// move delimPos to the beginning of the trimmed string
	if delimPos >= 0 {
		if delimPos < firstNonZeroPos {
			firstNonZeroPos--
		}
		delimPos -= firstNonZeroPos
	} else { // if there is no delim, add one at the end of the string 123 --> 123.
		delimPos = len(result)
	}
	return result, delimPos, exp, nil
}

func removeTrailingZeros(s string, delimPos int) (result string, exp int) {
	if len(s) == 0 {
		return s, 0
	}
	for {
		l := len(s)
		if l == 0 || s[l-1] != '0' {
			break
		}
		s = s[:l-1]
	}
	return s, delimPos - len(s)
}
