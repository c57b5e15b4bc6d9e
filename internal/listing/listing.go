// Package listing validates sell-form drafts: the fields a seller fills in
// before an item goes live, most of them chosen from catalog pickers.
package listing

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/Aman-CERP/optindex/internal/catalog"
	apperrors "github.com/Aman-CERP/optindex/internal/errors"
	"github.com/Aman-CERP/optindex/internal/selection"
)

// Image is one uploaded photo.
type Image struct {
	URI  string `yaml:"uri" json:"uri"`
	Name string `yaml:"name" json:"name"`
	Type string `yaml:"type" json:"type"`
}

// Draft is an unpublished listing.
type Draft struct {
	Images          []Image  `yaml:"images" json:"images"`
	ItemName        string   `yaml:"item_name" json:"item_name"`
	ItemDescription string   `yaml:"item_description" json:"item_description"`
	Category        string   `yaml:"category" json:"category"`
	Brand           string   `yaml:"brand" json:"brand"`
	Condition       string   `yaml:"condition" json:"condition"`
	Size            string   `yaml:"size" json:"size"`
	Colors          []string `yaml:"colors" json:"colors"`
	// Price is nil when the seller has not entered one.
	Price *float64 `yaml:"price" json:"price"`
}

const (
	// MaxImages is the most photos a listing may carry.
	MaxImages = 20
	// MaxDescriptionLength caps the description, counted in characters.
	MaxDescriptionLength = 1000
)

// FieldError is a problem with one draft field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) String() string {
	return e.Field + ": " + e.Message
}

// Load reads a draft from a YAML file.
func Load(path string) (*Draft, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.IOError(fmt.Sprintf("cannot read draft %s", path), err).
			WithDetail("path", path)
	}
	var d Draft
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, apperrors.New(apperrors.ErrCodeFileCorrupt,
			fmt.Sprintf("failed to parse draft %s", path), err).
			WithDetail("path", path)
	}
	return &d, nil
}

// Validate returns every field problem in form order. An empty result
// means the draft can be published.
func (d *Draft) Validate() []FieldError {
	var errs []FieldError
	add := func(field, msg string) {
		errs = append(errs, FieldError{Field: field, Message: msg})
	}

	switch {
	case len(d.Images) == 0:
		add("images", "at least one image is required")
	case len(d.Images) > MaxImages:
		add("images", fmt.Sprintf("at most %d images are allowed, got %d", MaxImages, len(d.Images)))
	}
	names := make(map[string]int, len(d.Images))
	for i, img := range d.Images {
		field := fmt.Sprintf("images[%d]", i)
		if blank(img.URI) {
			add(field+".uri", "image URI is required")
		}
		if blank(img.Name) {
			add(field+".name", "image name is required")
		} else if first, dup := names[img.Name]; dup {
			add(field+".name", fmt.Sprintf("image %q is already selected as images[%d]", img.Name, first))
		} else {
			names[img.Name] = i
		}
		if blank(img.Type) {
			add(field+".type", "image type is required")
		}
	}

	if blank(d.ItemName) {
		add("item_name", "item name is required")
	}
	if blank(d.ItemDescription) {
		add("item_description", "item description is required")
	} else if n := utf8.RuneCountInString(d.ItemDescription); n > MaxDescriptionLength {
		add("item_description", fmt.Sprintf("item description must be at most %d characters, got %d", MaxDescriptionLength, n))
	}
	if blank(d.Category) {
		add("category", "please select a category")
	}
	if blank(d.Brand) {
		add("brand", "please select a brand")
	}
	if blank(d.Condition) {
		add("condition", "please select a condition")
	}
	if blank(d.Size) {
		add("size", "please select a size")
	}

	switch {
	case d.Price == nil:
		add("price", "price is required")
	case *d.Price <= 0:
		add("price", "price must be a positive number")
	}

	return errs
}

// Rules bounds the colour field; it mirrors the picker configuration.
type Rules struct {
	MaxColors      int
	ExclusiveColor string
}

// ValidateAgainst runs Validate and then checks picker fields against the
// registry's catalogs. Blank fields are reported once, by Validate.
func (d *Draft) ValidateAgainst(r *catalog.Registry, rules Rules) ([]FieldError, error) {
	errs := d.Validate()

	checks := []struct {
		field, catalog, value string
	}{
		{"brand", "brands", d.Brand},
		{"condition", "conditions", d.Condition},
		{"size", "sizes", d.Size},
	}
	for _, c := range checks {
		if blank(c.value) {
			continue
		}
		cat, err := r.Get(c.catalog)
		if err != nil {
			return nil, err
		}
		if _, ok := cat.Lookup(c.value); !ok {
			errs = append(errs, FieldError{Field: c.field,
				Message: fmt.Sprintf("%q is not a known %s", c.value, strings.ToLower(cat.Title))})
		}
	}

	if !blank(d.Category) {
		cat, err := r.Get("categories")
		if err != nil {
			return nil, err
		}
		// Leaf labels repeat across branches, so ids are accepted too.
		_, byID := cat.ByID(strings.TrimSpace(d.Category))
		_, byLabel := cat.Lookup(d.Category)
		if !byID && !byLabel {
			errs = append(errs, FieldError{Field: "category",
				Message: fmt.Sprintf("%q is not a known category", d.Category)})
		}
	}

	if len(d.Colors) > 0 {
		colors, err := r.Get("colors")
		if err != nil {
			return nil, err
		}
		for _, c := range d.Colors {
			if _, ok := colors.Lookup(c); !ok {
				errs = append(errs, FieldError{Field: "colors",
					Message: fmt.Sprintf("%q is not a known colour", c)})
			}
		}
		if err := selection.Check(d.Colors, rules.MaxColors, rules.ExclusiveColor); err != nil {
			msg := err.Error()
			if oe, ok := apperrors.As(err); ok {
				msg = oe.Message
			}
			errs = append(errs, FieldError{Field: "colors", Message: msg})
		}
	}

	return errs, nil
}

// AsError folds field errors into a single validation error, or nil.
func AsError(errs []FieldError) error {
	if len(errs) == 0 {
		return nil
	}
	oe := apperrors.New(apperrors.ErrCodeDraftInvalid,
		fmt.Sprintf("draft has %d problem(s)", len(errs)), nil)
	for _, e := range errs {
		oe.WithDetail(e.Field, e.Message)
	}
	return oe.WithSuggestion("Fix the listed fields and run 'optindex validate' again")
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
