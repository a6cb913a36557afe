package routing

import "fmt"

// Instance owns all vertices of a problem and the full N×N arc table.
// It is immutable after construction.
//
// Vertices are stored as [depot, customer_1, ..., customer_n, station_1,
// ..., station_m]; NewInstance rejects any other layout.
type Instance struct {
	vertices []Vertex
	// arcs is the row-major N×N table; Arc(i,j) indexes arcs[i*n+j].
	arcs []Arc

	numCustomers int
	numStations  int
	fleetSize    int
}

// NewInstance validates and assembles an instance from the depot, the
// ordered customers, the ordered stations, the complete N×N arc table
// (row-major over vertex ids) and the fleet size.
//
// Validation (in order):
//  1. depot must have id 0 and IsDepot set (ErrVertexOrdering).
//  2. customers must carry sequential ids 1..n and be plain customers
//     (ErrVertexOrdering).
//  3. stations must carry sequential ids n+1..n+m and IsStation set
//     (ErrVertexOrdering).
//  4. arcs must have exactly N² entries (ErrArcTable).
//  5. fleetSize must be positive (ErrFleetSize).
//
// Complexity: O(N) validation, O(1) space beyond the stored slices.
func NewInstance(depot Vertex, customers, stations []Vertex, arcs []Arc, fleetSize int) (*Instance, error) {
	if !depot.IsDepot || depot.IsStation || depot.ID != 0 {
		return nil, fmt.Errorf("%w: depot must be vertex 0", ErrVertexOrdering)
	}
	n := 1 + len(customers) + len(stations)

	vertices := make([]Vertex, 0, n)
	vertices = append(vertices, depot)
	nextID := VertexID(1)
	for i := range customers {
		if !customers[i].IsCustomer() || customers[i].ID != nextID {
			return nil, fmt.Errorf("%w: a depot or station vertex is at a position where a customer was expected", ErrVertexOrdering)
		}
		vertices = append(vertices, customers[i])
		nextID++
	}
	for i := range stations {
		if !stations[i].IsStation || stations[i].IsDepot || stations[i].ID != nextID {
			return nil, fmt.Errorf("%w: a non-station vertex follows the customer vertices", ErrVertexOrdering)
		}
		vertices = append(vertices, stations[i])
		nextID++
	}

	if len(arcs) != n*n {
		return nil, fmt.Errorf("%w: got %d entries for %d vertices", ErrArcTable, len(arcs), n)
	}
	if fleetSize <= 0 {
		return nil, ErrFleetSize
	}

	return &Instance{
		vertices:     vertices,
		arcs:         arcs,
		numCustomers: len(customers),
		numStations:  len(stations),
		fleetSize:    fleetSize,
	}, nil
}

// NumVertices returns the total vertex count N.
func (inst *Instance) NumVertices() int { return len(inst.vertices) }

// NumCustomers returns the number of customer vertices.
func (inst *Instance) NumCustomers() int { return inst.numCustomers }

// NumStations returns the number of station vertices.
func (inst *Instance) NumStations() int { return inst.numStations }

// FleetSize returns the configured fleet size.
func (inst *Instance) FleetSize() int { return inst.fleetSize }

// Depot returns the depot vertex.
func (inst *Instance) Depot() *Vertex { return &inst.vertices[0] }

// Vertex returns the vertex with the given id. Out-of-range ids are a caller
// contract violation and panic via slice bounds.
func (inst *Instance) Vertex(id VertexID) *Vertex { return &inst.vertices[id] }

// Customer returns the i-th customer (0-based over the customer prefix).
func (inst *Instance) Customer(i int) *Vertex { return &inst.vertices[1+i] }

// Station returns the i-th station (0-based over the station suffix).
func (inst *Instance) Station(i int) *Vertex { return &inst.vertices[1+inst.numCustomers+i] }

// Customers returns a read-only view of the customer vertices.
func (inst *Instance) Customers() []Vertex {
	return inst.vertices[1 : 1+inst.numCustomers]
}

// Stations returns a read-only view of the station vertices.
func (inst *Instance) Stations() []Vertex {
	return inst.vertices[1+inst.numCustomers:]
}

// Arc returns the arc (i,j). Lookup is O(1) on the dense row-major table.
func (inst *Instance) Arc(i, j VertexID) *Arc {
	return &inst.arcs[int(i)*len(inst.vertices)+int(j)]
}
