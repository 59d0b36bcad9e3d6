package feed

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// Export parses the feed read from in and writes its items as csv to out,
// header first. It returns the number of items written.
func Export(in io.Reader, out io.Writer) (int, error) {
	items, err := Parse(in)
	if err != nil {
		return 0, err
	}

	return writeItems(out, items)
}

// ExportFile exports the feed at inPath into a csv file at outPath. The
// output file is only created once the feed parsed successfully.
func ExportFile(inPath, outPath string) (int, error) {
	in, err := os.Open(inPath)
	if err != nil {
		return 0, fmt.Errorf("open feed: %w", err)
	}
	defer in.Close()

	items, err := Parse(in)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", inPath, err)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return 0, fmt.Errorf("create output: %w", err)
	}

	n, err := writeItems(out, items)
	if cerr := out.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("close output: %w", cerr)
	}
	return n, err
}

func writeItems(out io.Writer, items []Item) (int, error) {
	w := csv.NewWriter(out)
	if err := w.Write(Header); err != nil {
		return 0, fmt.Errorf("write header: %w", err)
	}
	for i, it := range items {
		if err := w.Write(it.Values()); err != nil {
			return 0, fmt.Errorf("write item %d: %w", i+1, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return 0, fmt.Errorf("write csv: %w", err)
	}

	return len(items), nil
}
