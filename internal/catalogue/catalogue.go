// Package catalogue holds the read-only tree of sections and documents shown by the bot.
package catalogue

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

//go:embed catalogue.yaml
var defaultCatalogue []byte

var ErrNotFound = errors.New("catalogue: not found")

type Item struct {
	Label   string `yaml:"label"`
	Content string `yaml:"content"`
}

type Section struct {
	Key     string `yaml:"key"`
	Title   string `yaml:"title"`
	Content string `yaml:"content"`
	Items   []Item `yaml:"items"`
}

type document struct {
	TrialSection string     `yaml:"trial_section"`
	InfoSection  string     `yaml:"info_section"`
	Layout       [][]string `yaml:"menu_layout"`
	Sections     []Section  `yaml:"sections"`
}

// Catalogue is immutable after Load and safe for concurrent use.
type Catalogue struct {
	trialSection string
	infoSection  string
	layout       [][]string
	sections     []Section
	index        map[string]int
}

// Load reads the catalogue from path, or the embedded default when path is empty.
func Load(path string) (*Catalogue, error) {
	data := defaultCatalogue
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalogue %s: %w", path, err)
		}
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalogue document.
func Parse(data []byte) (*Catalogue, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalogue: %w", err)
	}

	c := &Catalogue{
		trialSection: doc.TrialSection,
		infoSection:  doc.InfoSection,
		sections:     doc.Sections,
		index:        make(map[string]int, len(doc.Sections)),
	}

	for i, s := range c.sections {
		if s.Key == "" {
			return nil, fmt.Errorf("catalogue: section #%d has no key", i+1)
		}
		if _, dup := c.index[s.Key]; dup {
			return nil, fmt.Errorf("catalogue: duplicate section %q", s.Key)
		}
		if s.Title == "" {
			return nil, fmt.Errorf("catalogue: section %q has no title", s.Key)
		}
		c.index[s.Key] = i

		if s.Key == doc.InfoSection {
			if s.Content == "" {
				return nil, fmt.Errorf("catalogue: info section %q has no content", s.Key)
			}
			continue
		}
		if len(s.Items) == 0 {
			return nil, fmt.Errorf("catalogue: section %q has no items", s.Key)
		}
		for j, it := range s.Items {
			if it.Label == "" {
				return nil, fmt.Errorf("catalogue: section %q item %d has no label", s.Key, j+1)
			}
			if it.Content == "" && s.Content == "" {
				return nil, fmt.Errorf("catalogue: section %q item %d has no content", s.Key, j+1)
			}
		}
	}

	if _, ok := c.index[doc.TrialSection]; !ok {
		return nil, fmt.Errorf("catalogue: trial section %q is not defined", doc.TrialSection)
	}
	if _, ok := c.index[doc.InfoSection]; !ok {
		return nil, fmt.Errorf("catalogue: info section %q is not defined", doc.InfoSection)
	}
	if doc.TrialSection == doc.InfoSection {
		return nil, errors.New("catalogue: trial and info sections must differ")
	}

	if len(doc.Layout) == 0 {
		for _, s := range c.sections {
			c.layout = append(c.layout, []string{s.Key})
		}
	} else {
		for _, row := range doc.Layout {
			for _, key := range row {
				if _, ok := c.index[key]; !ok {
					return nil, fmt.Errorf("catalogue: menu layout references unknown section %q", key)
				}
			}
			if len(row) > 0 {
				c.layout = append(c.layout, row)
			}
		}
	}

	return c, nil
}

func (c *Catalogue) TrialSection() string { return c.trialSection }

func (c *Catalogue) InfoSection() string { return c.infoSection }

// Section returns the section with the given key.
func (c *Catalogue) Section(key string) (Section, error) {
	i, ok := c.index[key]
	if !ok {
		return Section{}, fmt.Errorf("section %q: %w", key, ErrNotFound)
	}
	return c.sections[i], nil
}

// Item returns the leaf at the 1-based index of the section. Items without
// their own content inherit the section's.
func (c *Catalogue) Item(key string, index int) (Item, error) {
	s, err := c.Section(key)
	if err != nil {
		return Item{}, err
	}
	if index < 1 || index > len(s.Items) {
		return Item{}, fmt.Errorf("section %q item %d: %w", key, index, ErrNotFound)
	}

	it := s.Items[index-1]
	if it.Content == "" {
		it.Content = s.Content
	}
	return it, nil
}

// Sections returns every section in declaration order, including ones the
// menu layout does not show.
func (c *Catalogue) Sections() []Section {
	return slices.Clone(c.sections)
}

// Layout returns the main menu rows, each a list of sections.
func (c *Catalogue) Layout() [][]Section {
	rows := make([][]Section, 0, len(c.layout))
	for _, keys := range c.layout {
		row := make([]Section, 0, len(keys))
		for _, k := range keys {
			row = append(row, c.sections[c.index[k]])
		}
		rows = append(rows, row)
	}
	return rows
}
