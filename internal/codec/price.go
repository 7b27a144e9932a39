// Package codec converts between the text forms used at the pipeline
// boundaries and the internal tick representation. Treasury prices quote as
// PPP-XYz: PPP whole points, XY 32nds (00..31), z 8ths of a 32nd (0..7,
// with '+' standing for 4).
package codec

import (
	"strconv"
	"strings"

	"github.com/yanun0323/errors"

	"main/internal/model"
)

// ParsePrice decodes fractional-32nd text into ticks.
func ParsePrice(s string) (model.Price, error) {
	whole, frac, ok := strings.Cut(s, "-")
	if !ok {
		return 0, errors.Errorf("price %q: missing '-' separator", s)
	}
	if len(frac) != 3 {
		return 0, errors.Errorf("price %q: fraction must be three characters", s)
	}

	points, err := strconv.Atoi(whole)
	if err != nil {
		return 0, errors.Wrap(err, "parse whole points")
	}

	thirtySeconds, err := strconv.Atoi(frac[:2])
	if err != nil {
		return 0, errors.Wrap(err, "parse 32nds")
	}
	if thirtySeconds < 0 || thirtySeconds > 31 {
		return 0, errors.Errorf("price %q: 32nds out of range", s)
	}

	var eighths int
	switch z := frac[2]; {
	case z == '+':
		eighths = 4
	case z >= '0' && z <= '7':
		eighths = int(z - '0')
	default:
		return 0, errors.Errorf("price %q: invalid eighth %q", s, frac[2])
	}

	ticks := points*model.TicksPerPoint + thirtySeconds*model.TicksPer32nd + eighths
	return model.Price(ticks), nil
}

// FormatPrice encodes ticks as fractional-32nd text. Four eighths encode
// as '+', matching the quoting convention.
func FormatPrice(p model.Price) string {
	ticks := int64(p)
	neg := ticks < 0
	if neg {
		ticks = -ticks
	}

	points := ticks / model.TicksPerPoint
	rem := ticks % model.TicksPerPoint
	thirtySeconds := rem / model.TicksPer32nd
	eighths := rem % model.TicksPer32nd

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(strconv.FormatInt(points, 10))
	b.WriteByte('-')
	if thirtySeconds < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.FormatInt(thirtySeconds, 10))
	if eighths == 4 {
		b.WriteByte('+')
	} else {
		b.WriteString(strconv.FormatInt(eighths, 10))
	}
	return b.String()
}
