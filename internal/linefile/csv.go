package linefile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gogpu/ribbon"
)

// decodeCSV reads one point per row. Rows are grouped by the line column
// in order of first appearance; a line is closed when any of its rows says
// so.
func decodeCSV(r io.Reader) ([]ribbon.Polyline, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("csv header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"line", "x", "y"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("csv header lacks %q column", required)
		}
	}

	type group struct {
		points []float32
		closed bool
	}
	var (
		order  []string
		groups = map[string]*group{}
	)

	for row := 2; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv row %d: %w", row, err)
		}
		field := func(name string) (string, bool) {
			i, ok := col[name]
			if !ok || i >= len(rec) {
				return "", false
			}
			return strings.TrimSpace(rec[i]), true
		}

		id, _ := field("line")
		g, ok := groups[id]
		if !ok {
			g = &group{}
			groups[id] = g
			order = append(order, id)
		}

		var xyz [3]float32
		for k, name := range []string{"x", "y", "z"} {
			s, ok := field(name)
			if !ok || (s == "" && name == "z") {
				continue
			}
			v, err := strconv.ParseFloat(s, 32)
			if err != nil {
				return nil, fmt.Errorf("csv row %d column %s: %w", row, name, err)
			}
			xyz[k] = float32(v)
		}
		g.points = append(g.points, xyz[:]...)

		if s, ok := field("closed"); ok && s != "" {
			closed, err := strconv.ParseBool(s)
			if err != nil {
				return nil, fmt.Errorf("csv row %d column closed: %w", row, err)
			}
			g.closed = g.closed || closed
		}
	}

	out := make([]ribbon.Polyline, len(order))
	for i, id := range order {
		out[i] = ribbon.Polyline{Points: groups[id].points, Closed: groups[id].closed}
	}
	return out, nil
}
