package catalog

import (
	"context"
	"embed"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"
)

//go:embed data/countries.json data/hotels.json data/meals.json
var defaultData embed.FS

// Load builds the catalog from countries.json, hotels.json and meals.json
// under dir. An empty dir falls back to the embedded sample catalog. The
// three files are independent, so they are read and decoded concurrently.
func Load(ctx context.Context, dir string) (*Catalog, error) {
	cat := &Catalog{}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		return readJSON(dir, "countries.json", &cat.countries)
	})
	g.Go(func() error {
		return readJSON(dir, "hotels.json", &cat.hotels)
	})
	g.Go(func() error {
		return readJSON(dir, "meals.json", &cat.meals)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return cat, nil
}

func readJSON(dir, name string, out any) error {
	var (
		data []byte
		err  error
	)
	if dir == "" {
		data, err = defaultData.ReadFile("data/" + name)
	} else {
		data, err = os.ReadFile(filepath.Join(dir, name))
	}
	if err != nil {
		return errors.Wrapf(err, "catalog: read %s", name)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrapf(err, "catalog: decode %s", name)
	}
	return nil
}
