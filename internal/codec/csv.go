package codec

import (
	"bufio"
	"context"
	"os"
	"strings"

	"github.com/yanun0323/errors"
)

// ScanCSV streams a comma-separated file with a single header line. Each
// record's fields are trimmed of surrounding whitespace before fn is
// invoked. A missing file is an error; fn returning an error aborts the
// scan.
func ScanCSV(ctx context.Context, path string, fn func(fields []string) error) error {
	file, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "open input file")
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	header := true
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := scanner.Text()
		if header {
			header = false
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, ",")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		if err := fn(fields); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "scan input file")
	}
	return nil
}
