package domain

// Represents a single location of the instance.
// City 0 is the depot and carries no demand; every other city is a customer
// that must be visited exactly once.
type City struct {
	ID     int
	X      int
	Y      int
	Demand int
}

func (c City) Point() Point { return Point{X: c.X, Y: c.Y} }

// Read-only lookup of cities by id. Ids are contiguous, so the id is the slice index.
type Catalog struct {
	cities []City
}

func NewCatalog(cities []City) *Catalog {
	cp := make([]City, len(cities))
	copy(cp, cities)
	return &Catalog{cities: cp}
}

// Number of cities including the depot.
func (c *Catalog) Len() int { return len(c.cities) }

// Number of customers, i.e. cities other than the depot.
func (c *Catalog) CustomerCount() int {
	if len(c.cities) == 0 {
		return 0
	}
	return len(c.cities) - 1
}

func (c *Catalog) City(id int) City { return c.cities[id] }

func (c *Catalog) Demand(id int) int { return c.cities[id].Demand }

// Return customer ids in ascending order.
func (c *Catalog) Customers() []int {
	out := make([]int, 0, c.CustomerCount())
	for id := 1; id < len(c.cities); id++ {
		out = append(out, id)
	}
	return out
}

// Cities returns a copy of the underlying records.
func (c *Catalog) Cities() []City {
	cp := make([]City, len(c.cities))
	copy(cp, c.cities)
	return cp
}
