package schedule

import (
	"fmt"
	"time"
)

type Procedure struct {
	Name     string        `json:"name"`
	Duration time.Duration `json:"-"`
	Minutes  int           `json:"duration_minutes"`
}

// Catalog is the read-only procedure -> duration table.
type Catalog struct {
	procedures []Procedure
	byName     map[string]time.Duration
}

func NewCatalog(procs []Procedure) (*Catalog, error) {
	c := &Catalog{byName: make(map[string]time.Duration, len(procs))}
	for _, p := range procs {
		if p.Name == "" {
			return nil, fmt.Errorf("procedure with empty name")
		}
		if p.Duration <= 0 && p.Minutes > 0 {
			p.Duration = time.Duration(p.Minutes) * time.Minute
		}
		if p.Duration <= 0 || p.Duration > time.Duration(dayLength)*time.Second {
			return nil, fmt.Errorf("procedure %q: invalid duration %s", p.Name, p.Duration)
		}
		if _, dup := c.byName[p.Name]; dup {
			return nil, fmt.Errorf("procedure %q declared twice", p.Name)
		}
		p.Minutes = int(p.Duration / time.Minute)
		c.byName[p.Name] = p.Duration
		c.procedures = append(c.procedures, p)
	}
	return c, nil
}

func DefaultCatalog() *Catalog {
	c, _ := NewCatalog([]Procedure{
		{Name: "Процедура 1", Minutes: 180},
		{Name: "Процедура 2", Minutes: 240},
		{Name: "Процедура 3", Minutes: 90},
		{Name: "Процедура 4", Minutes: 30},
		{Name: "Процедура 5", Minutes: 15},
	})
	return c
}

func (c *Catalog) Duration(name string) (time.Duration, bool) {
	d, ok := c.byName[name]
	return d, ok
}

func (c *Catalog) All() []Procedure {
	return append([]Procedure(nil), c.procedures...)
}
