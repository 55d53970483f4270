package domain

import (
	"time"

	"github.com/google/uuid"
)

// Composition is one generated drink.
// An empty composition (no syrups, no soda) means no syrup preference was recognized.
type Composition struct {
	ID        uuid.UUID `json:"id,omitempty"`
	Syrups    []string  `json:"syrups"`
	Soda      []string  `json:"soda"`
	AddIns    []string  `json:"addins"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

func EmptyComposition() Composition {
	return Composition{Syrups: []string{}, Soda: []string{}, AddIns: []string{}}
}

func (c Composition) IsEmpty() bool {
	return len(c.Syrups) == 0 && len(c.Soda) == 0
}

// FeaturedDrink is a house recipe whose ingredients can seed a composition.
type FeaturedDrink struct {
	Name   string   `json:"name" yaml:"name"`
	Syrups []string `json:"syrups" yaml:"syrups"`
	Soda   string   `json:"soda" yaml:"soda"`
	AddIns []string `json:"addins" yaml:"addins"`
}

// Ingredients flattens the recipe into preference tokens: syrups, then soda, then add-ins.
func (f FeaturedDrink) Ingredients() []string {
	tokens := make([]string, 0, len(f.Syrups)+1+len(f.AddIns))
	tokens = append(tokens, f.Syrups...)
	if f.Soda != "" {
		tokens = append(tokens, f.Soda)
	}
	return append(tokens, f.AddIns...)
}

func (f FeaturedDrink) normalized() FeaturedDrink {
	out := FeaturedDrink{Name: f.Name, Soda: NormalizeName(f.Soda)}
	for _, s := range f.Syrups {
		out.Syrups = append(out.Syrups, NormalizeName(s))
	}
	for _, a := range f.AddIns {
		out.AddIns = append(out.AddIns, NormalizeName(a))
	}
	return out
}

// ComposeRequest is what a caller submits to get a drink.
// Text is free-form prose scanned for catalog names, appended after Preferences.
type ComposeRequest struct {
	UserID      string   `json:"user_id" validate:"omitempty,max=64,excludes=:"`
	Preferences []string `json:"preferences" validate:"max=50,dive,min=1,max=100"`
	Text        string   `json:"text" validate:"max=1000"`
}
