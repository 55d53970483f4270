package domain

import (
	"fmt"
	"pop-lab/errors"
	"strings"
)

type Category string

const (
	Syrup Category = "syrup"
	Soda  Category = "soda"
	AddIn Category = "addin"
)

// Categories lists every category in classification order.
var Categories = []Category{Syrup, Soda, AddIn}

// ParseCategory accepts the singular, plural and hyphenated spellings used by clients.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "syrup", "syrups":
		return Syrup, nil
	case "soda", "sodas":
		return Soda, nil
	case "addin", "addins", "add-in", "add-ins":
		return AddIn, nil
	default:
		return "", fmt.Errorf("%w: %q", errors.ErrUnknownCategory, s)
	}
}

type Calorie string

const (
	Regular Calorie = "regular"
	Diet    Calorie = "diet"
)

// Column selects which text field of a CatalogItem is vectorized.
type Column int

const (
	ColumnType Column = iota
	ColumnSyrupPairing
	ColumnSodaPairing
)
