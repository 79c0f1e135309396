// ABOUTME: Static site catalog: realms, budgets, interests, and UI copy in English and Dragon.
// ABOUTME: Embedded as YAML so content edits never require touching Go code.

package config

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Option is one selectable choice in the quest form.
type Option struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

// Language is one of the UI languages the site offers.
type Language struct {
	Code string `yaml:"code"`
	Name string `yaml:"name"`
	Flag string `yaml:"flag"`
}

// Copy is the full set of UI strings for one language.
type Copy struct {
	Title   string `yaml:"title"`
	Tagline string `yaml:"tagline"`
	Hero    struct {
		Title       string   `yaml:"title"`
		Description string   `yaml:"description"`
		Icons       []string `yaml:"icons"`
	} `yaml:"hero"`
	Form struct {
		Title                  string `yaml:"title"`
		Description            string `yaml:"description"`
		DestinationLabel       string `yaml:"destination_label"`
		DestinationPlaceholder string `yaml:"destination_placeholder"`
		DaysLabel              string `yaml:"days_label"`
		BudgetLabel            string `yaml:"budget_label"`
		BudgetPlaceholder      string `yaml:"budget_placeholder"`
		InterestsLabel         string `yaml:"interests_label"`
		ProvidersLabel         string `yaml:"providers_label"`
		SubmitButton           string `yaml:"submit_button"`
	} `yaml:"form"`
	Loading struct {
		Title       string   `yaml:"title"`
		Description string   `yaml:"description"`
		Icons       []string `yaml:"icons"`
	} `yaml:"loading"`
	Results struct {
		Title        string `yaml:"title"`
		ModifyButton string `yaml:"modify_button"`
		NewButton    string `yaml:"new_button"`
	} `yaml:"results"`
	ProviderStatus struct {
		Available   string `yaml:"available"`
		Unavailable string `yaml:"unavailable"`
	} `yaml:"provider_status"`
	Footer struct {
		CompanyName string `yaml:"company_name"`
		Tagline     string `yaml:"tagline"`
		Copyright   string `yaml:"copyright"`
		Email       string `yaml:"email"`
		Phone       string `yaml:"phone"`
		Address     string `yaml:"address"`
	} `yaml:"footer"`
}

// Catalog is everything the quest form and site chrome are built from.
type Catalog struct {
	Title     string          `yaml:"title"`
	Tagline   string          `yaml:"tagline"`
	Languages []Language      `yaml:"languages"`
	Copy      map[string]Copy `yaml:"copy"`
	Realms    []Option        `yaml:"realms"`
	Budgets   []Option        `yaml:"budgets"`
	Interests []Option        `yaml:"interests"`
}

var (
	catalogOnce sync.Once
	catalog     *Catalog
	catalogErr  error
)

// LoadCatalog parses the embedded catalog. The parse happens once; later
// calls return the cached result.
func LoadCatalog() (*Catalog, error) {
	catalogOnce.Do(func() {
		var c Catalog
		if err := yaml.Unmarshal(catalogYAML, &c); err != nil {
			catalogErr = fmt.Errorf("parsing embedded catalog: %w", err)
			return
		}
		catalog = &c
	})
	return catalog, catalogErr
}

// CopyFor returns the UI copy for a language code, falling back to
// English for unknown codes.
func (c *Catalog) CopyFor(lang string) Copy {
	if copyFor, ok := c.Copy[lang]; ok {
		return copyFor
	}
	return c.Copy["en"]
}

// ValidRealm reports whether value is one of the catalog realms.
func (c *Catalog) ValidRealm(value string) bool {
	for _, r := range c.Realms {
		if r.Value == value {
			return true
		}
	}
	return false
}
