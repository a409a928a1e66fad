package config

import "fmt"

// DatasetConfig selects the revenue table source. When Path is empty a
// synthetic table is generated from Zones and Seed.
type DatasetConfig struct {
	// Path is a CSV file in long or wide format. Optional.
	Path string `json:"path"`
	// Zones sets the synthetic table's zone count when Path is empty.
	Zones int `json:"zones"`
	// Seed drives synthetic table generation.
	Seed int64 `json:"seed"`
}

// SetDefaults applies sane defaults.
func (c *DatasetConfig) SetDefaults() {
	if c.Zones == 0 {
		c.Zones = 6
	}
	if c.Seed == 0 {
		c.Seed = 7
	}
}

// Validate checks the section.
func (c DatasetConfig) Validate() error {
	if c.Path == "" && c.Zones <= 0 {
		return fmt.Errorf("dataset: zones must be positive for synthetic data")
	}
	return nil
}
