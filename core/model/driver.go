package model

// Driver represents one mobile unit of the fleet. A driver occupies a single
// zone at any time and carries a remaining shift budget in hours. Once the
// budget reaches zero the driver is out of service for the rest of the run.
type Driver struct {
	// Cluster is the zone the driver currently occupies, in [0, K).
	Cluster int
	// HoursLeft is the remaining active duration. Never negative.
	HoursLeft float64
}

// Active reports whether the driver can still be assigned and earn revenue.
func (d *Driver) Active() bool {
	return d.HoursLeft > 0
}

// Tick consumes dt hours of the driver's shift budget, flooring at zero.
func (d *Driver) Tick(dt float64) {
	d.HoursLeft -= dt
	if d.HoursLeft < 0 {
		d.HoursLeft = 0
	}
}

// Clone returns an independent copy of the driver.
func (d *Driver) Clone() *Driver {
	c := *d
	return &c
}

// CloneFleet deep-copies a driver population so two strategies can mutate
// identical initial states without interacting.
func CloneFleet(drivers []*Driver) []*Driver {
	out := make([]*Driver, len(drivers))
	for i, d := range drivers {
		out[i] = d.Clone()
	}
	return out
}
