package domain

import "sort"

// Court is a bookable playing field
type Court struct {
	ID   int
	Name string
}

// Courts is the static court catalog of the club
type Courts struct {
	byID  map[int]Court
	order []Court
}

// NewCourts builds the catalog; courts are kept sorted by id
func NewCourts(courts []Court) *Courts {
	c := &Courts{byID: make(map[int]Court, len(courts))}
	for _, court := range courts {
		c.byID[court.ID] = court
	}
	for _, court := range c.byID {
		c.order = append(c.order, court)
	}
	sort.Slice(c.order, func(i, j int) bool { return c.order[i].ID < c.order[j].ID })
	return c
}

// DefaultCourts returns the four club courts
func DefaultCourts() []Court {
	return []Court{
		{ID: 1, Name: "Platz 1"},
		{ID: 2, Name: "Platz 2"},
		{ID: 3, Name: "Platz 3"},
		{ID: 4, Name: "Platz 4"},
	}
}

// Get returns the court with the given id
func (c *Courts) Get(id int) (Court, bool) {
	court, ok := c.byID[id]
	return court, ok
}

// Exists returns true if the id is in the catalog
func (c *Courts) Exists(id int) bool {
	_, ok := c.byID[id]
	return ok
}

// All returns the courts ordered by id
func (c *Courts) All() []Court {
	out := make([]Court, len(c.order))
	copy(out, c.order)
	return out
}
