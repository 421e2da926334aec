package weather

import "context"

// Source names a region and the directory its station files live in.
type Source struct {
	Region string `yaml:"name" json:"name" validate:"required"`
	Dir    string `yaml:"dir" json:"dir" validate:"required"`
}

// Loader builds a Region from station files.
type Loader interface {
	LoadRegion(ctx context.Context, name, dir string) (*Region, error)
}

// Store is the contract the in-memory store (and any future persistent store) must satisfy.
type Store interface {
	SaveRegion(region *Region)
	Region(name string) (*Region, error)
	RegionNames() []string
}
