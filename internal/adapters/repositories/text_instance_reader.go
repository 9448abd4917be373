package repositories

import (
	"bufio"
	"context"
	"cvrp-route-service/internal/domain"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// TextInstanceReader parses the line format used on stdin:
//
//	N                   number of cities, depot included
//	C                   vehicle capacity
//	index x y demand    N times, depot (index 0) first
type TextInstanceReader struct {
	R io.Reader
}

func NewTextInstanceReader(r io.Reader) *TextInstanceReader {
	return &TextInstanceReader{R: r}
}

func (t *TextInstanceReader) LoadInstance(ctx context.Context) (domain.Instance, error) {
	if t.R == nil {
		return domain.Instance{}, errors.New("read instance: reader is nil")
	}

	sc := bufio.NewScanner(t.R)
	line := 0
	next := func() (string, error) {
		for sc.Scan() {
			line++
			if s := strings.TrimSpace(sc.Text()); s != "" {
				return s, nil
			}
		}
		if err := sc.Err(); err != nil {
			return "", fmt.Errorf("read instance: line %d: %w", line+1, err)
		}
		return "", fmt.Errorf("read instance: line %d: %w", line+1, io.ErrUnexpectedEOF)
	}

	header, err := next()
	if err != nil {
		return domain.Instance{}, err
	}
	n, err := strconv.Atoi(header)
	if err != nil || n < 1 {
		return domain.Instance{}, fmt.Errorf("read instance: line %d: invalid city count %q", line, header)
	}

	capLine, err := next()
	if err != nil {
		return domain.Instance{}, err
	}
	capacity, err := strconv.Atoi(capLine)
	if err != nil {
		return domain.Instance{}, fmt.Errorf("read instance: line %d: invalid capacity %q", line, capLine)
	}

	cities := make([]domain.City, 0, n)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return domain.Instance{}, err
		}

		s, err := next()
		if err != nil {
			return domain.Instance{}, err
		}
		fields := strings.Fields(s)
		if len(fields) != 4 {
			return domain.Instance{}, fmt.Errorf("read instance: line %d: want 4 fields, got %d", line, len(fields))
		}

		var vals [4]int
		for k, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil {
				return domain.Instance{}, fmt.Errorf("read instance: line %d: field %d: %w", line, k+1, err)
			}
			vals[k] = v
		}
		cities = append(cities, domain.City{ID: vals[0], X: vals[1], Y: vals[2], Demand: vals[3]})
	}

	return domain.Instance{Capacity: capacity, Cities: cities}, nil
}
