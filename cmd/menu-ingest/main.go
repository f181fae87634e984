// Command menu-ingest merges raw menu export files into the canonical
// gzipped menu document the storefront loads at startup.
//
// Each input is a menu JSON document (plain or gzipped), typically one export
// per kitchen. Items appearing in more than one export keep their first
// occurrence; a per-file bloom filter flags cross-file duplicates cheaply
// before the exact check confirms them.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/go-faster/errors"
	pgzip "github.com/klauspost/pgzip"
	"golang.org/x/sync/errgroup"

	"github.com/psingh05395/swadhyatra/internal/menu"
)

const bloomFPR = 0.001

// fileMenu holds one decoded export together with a bloom filter over its
// item identifiers.
type fileMenu struct {
	path   string
	menu   *menu.Menu
	filter *bloom.BloomFilter
}

func main() {
	var output string

	flag.StringVar(&output, "output", "menu.json.gz", "path of the merged menu file")
	flag.Parse()

	inputs := flag.Args()
	if len(inputs) == 0 {
		slog.Error("at least one input menu file is required")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, inputs, output); err != nil {
		slog.Error("menu ingest failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("menu ingest completed successfully", slog.String("output", output))
}

func run(ctx context.Context, inputs []string, output string) error {
	for _, path := range inputs {
		if _, err := os.Stat(path); err != nil {
			return errors.Wrapf(err, "check file %s", path)
		}
	}

	slog.Info("decoding exports", slog.Int("files", len(inputs)))

	decoded, err := decodeExports(ctx, inputs)
	if err != nil {
		return errors.Wrap(err, "decode exports")
	}

	merged := mergeExports(decoded)
	if err := menu.Validate(merged); err != nil {
		return errors.Wrap(err, "validate merged menu")
	}

	slog.Info("merged menu",
		slog.Int("items", len(merged.Items)),
		slog.Int("categories", len(merged.Categories)),
	)

	return writeOutput(output, merged)
}

// decodeExports loads all input files concurrently, preserving input order.
func decodeExports(ctx context.Context, inputs []string) ([]fileMenu, error) {
	decoded := make([]fileMenu, len(inputs))

	g, _ := errgroup.WithContext(ctx)
	for i, path := range inputs {
		g.Go(func() error {
			m, err := menu.LoadFile(path)
			if err != nil {
				return errors.Wrapf(err, "load %s", path)
			}

			filter := bloom.NewWithEstimates(uint(max(len(m.Items), 1)), bloomFPR)
			for _, item := range m.Items {
				filter.AddString(item.ID)
			}
			decoded[i] = fileMenu{path: path, menu: m, filter: filter}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return decoded, nil
}

// mergeExports concatenates the exports in argument order, keeping the first
// occurrence of every item and category identifier.
func mergeExports(decoded []fileMenu) *menu.Menu {
	var merged menu.Menu
	seenItems := make(map[string]struct{})
	seenCategories := make(map[string]struct{})
	duplicates := 0

	for i, fm := range decoded {
		for _, item := range fm.menu.Items {
			// Earlier filters say "definitely new" for most items; only
			// bloom hits pay for the exact lookup.
			if anyFilterHas(decoded[:i], item.ID) {
				if _, ok := seenItems[item.ID]; ok {
					duplicates++
					slog.Debug("duplicate item skipped",
						slog.String("id", item.ID),
						slog.String("file", fm.path),
					)
					continue
				}
			}
			seenItems[item.ID] = struct{}{}
			merged.Items = append(merged.Items, item)
		}

		for _, category := range fm.menu.Categories {
			if _, ok := seenCategories[category.ID]; ok {
				continue
			}
			seenCategories[category.ID] = struct{}{}
			merged.Categories = append(merged.Categories, category)
		}
	}

	if duplicates > 0 {
		slog.Info("cross-file duplicates skipped", slog.Int("count", duplicates))
	}
	return &merged
}

func anyFilterHas(earlier []fileMenu, id string) bool {
	for _, fm := range earlier {
		if fm.filter.TestString(id) {
			return true
		}
	}
	return false
}

func writeOutput(path string, m *menu.Menu) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create output file")
	}

	gz := pgzip.NewWriter(f)
	if _, err := gz.Write(menu.Encode(m)); err != nil {
		f.Close()
		return errors.Wrap(err, "write output")
	}
	if err := gz.Close(); err != nil {
		f.Close()
		return errors.Wrap(err, "close gzip writer")
	}
	return errors.Wrap(f.Close(), "close output file")
}
