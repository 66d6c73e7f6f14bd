package achievements

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// Definition is one catalog entry. RequiredValue is the counter threshold the
// achievement refers to (streak days, points); granting is handled elsewhere.
type Definition struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	Icon          string `json:"icon"`
	RequiredValue int    `json:"required_value"`
}

type catalogFile struct {
	Achievements []Definition `json:"achievements"`
}

type Catalog struct {
	mu     sync.RWMutex
	byName map[string]*Definition
	order  []string
}

func NewCatalog() *Catalog {
	return &Catalog{byName: make(map[string]*Definition)}
}

// Defaults returns the built-in catalog used when no file is configured.
func Defaults() *Catalog {
	c := NewCatalog()
	for _, def := range []Definition{
		{Name: "First Commit", Description: "Completed your first daily commitment", Icon: "star", RequiredValue: 1},
		{Name: "Week Warrior", Description: "7 day streak achieved", Icon: "flame", RequiredValue: 7},
		{Name: "Month Master", Description: "30 day streak achieved", Icon: "trophy", RequiredValue: 30},
		{Name: "Century Club", Description: "100 day streak achieved", Icon: "award", RequiredValue: 100},
	} {
		d := def
		c.Register(&d)
	}
	return c
}

func LoadFromFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read achievements catalog: %w", err)
	}

	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse achievements catalog: %w", err)
	}

	catalog := NewCatalog()
	for i := range file.Achievements {
		catalog.Register(&file.Achievements[i])
	}
	return catalog, nil
}

func (c *Catalog) Register(def *Definition) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.byName[def.Name]; !ok {
		c.order = append(c.order, def.Name)
	}
	c.byName[def.Name] = def
}

func (c *Catalog) Get(name string) *Definition {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.byName[name]
}

// All returns definitions in registration order.
func (c *Catalog) All() []*Definition {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make([]*Definition, 0, len(c.order))
	for _, name := range c.order {
		result = append(result, c.byName[name])
	}
	return result
}
