package rules

import (
	"fmt"
	"strings"
	"unicode"
)

// Validate restricts a rule condition to comparisons and boolean logic over
// plain fact identifiers.
func Validate(cond string) error {
	cond = strings.TrimSpace(cond)
	if cond == "" {
		return fmt.Errorf("condition is empty")
	}

	illegalChars := []rune{'{', '}', '[', ']', ';', ':', '?', '@', '#', '$', '\\', '\'', '"'}
	for _, ch := range illegalChars {
		if strings.ContainsRune(cond, ch) {
			return fmt.Errorf("illegal character %q", ch)
		}
	}

	if strings.Contains(cond, ".") {
		return fmt.Errorf("dot access is not allowed")
	}

	for _, op := range []string{"+", "-", "*", "/", "%"} {
		if strings.Contains(cond, op) {
			return fmt.Errorf("arithmetic operator %q is not allowed", op)
		}
	}

	for i := 0; i < len(cond)-1; i++ {
		if cond[i] != '(' {
			continue
		}
		j := i - 1
		for j >= 0 && unicode.IsSpace(rune(cond[j])) {
			j--
		}
		if j < 0 || !(unicode.IsLetter(rune(cond[j])) || unicode.IsDigit(rune(cond[j])) || cond[j] == '_') {
			continue
		}
		k := j
		for k >= 0 && (unicode.IsLetter(rune(cond[k])) || unicode.IsDigit(rune(cond[k])) || cond[k] == '_') {
			k--
		}
		ident := cond[k+1 : j+1]
		switch ident {
		case "and", "or", "not":
			continue
		}
		return fmt.Errorf("function calls are not allowed (found %q(...))", ident)
	}

	return nil
}
