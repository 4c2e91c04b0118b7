package sweepline

import (
	"fmt"

	"github.com/tdewolff/parse/v2/strconv"
)

func skipCommaWhitespace(path []byte) int {
	i := 0
	for i < len(path) && (path[i] == ' ' || path[i] == ',' || path[i] == '\n' || path[i] == '\r' || path[i] == '\t') {
		i++
	}
	return i
}

func parseNum(path []byte) (float64, int) {
	i := skipCommaWhitespace(path)
	f, n := strconv.ParseFloat(path[i:])
	if n == 0 {
		return 0.0, 0
	}
	return f, i + n
}

// ParseSegments parses SVG path data consisting of the M, L, H, V and Z commands (and their relative variants) into line segments. Each line command adds one segment, zero-length segments are skipped.
func ParseSegments(path []byte) ([]Segment, error) {
	segs := []Segment{}

	var cmd byte
	var pos, start Point
	moved := false
	lineTo := func(i int, p Point) error {
		if !moved {
			return fmt.Errorf("path data at %d: line command without preceding move", i)
		}
		if !pos.Equals(p) {
			s, err := NewSegment(pos, p)
			if err != nil {
				return fmt.Errorf("path data at %d: %w", i, err)
			}
			segs = append(segs, s)
		}
		pos = p
		return nil
	}

	i := 0
	for {
		i += skipCommaWhitespace(path[i:])
		if len(path) <= i {
			break
		}
		if c := path[i] | 0x20; 'a' <= c && c <= 'z' {
			cmd = path[i]
			i++
		} else if cmd == 0 {
			return nil, fmt.Errorf("path data at %d: expected command", i)
		}

		var nums [2]float64
		numArgs := 0
		switch cmd {
		case 'M', 'm', 'L', 'l':
			numArgs = 2
		case 'H', 'h', 'V', 'v':
			numArgs = 1
		}
		for k := 0; k < numArgs; k++ {
			f, n := parseNum(path[i:])
			if n == 0 {
				return nil, fmt.Errorf("path data at %d: expected number", i)
			}
			nums[k] = f
			i += n
		}

		p := pos
		switch cmd {
		case 'M', 'm':
			if cmd == 'm' {
				p = p.Add(Point{nums[0], nums[1]})
			} else {
				p = Point{nums[0], nums[1]}
			}
			pos, start, moved = p, p, true
			cmd -= 'M' - 'L' // subsequent coordinate pairs are line commands
			continue
		case 'L':
			p = Point{nums[0], nums[1]}
		case 'l':
			p = p.Add(Point{nums[0], nums[1]})
		case 'H':
			p.X = nums[0]
		case 'h':
			p.X += nums[0]
		case 'V':
			p.Y = nums[0]
		case 'v':
			p.Y += nums[0]
		case 'Z', 'z':
			p = start
			cmd = 0
		default:
			return nil, fmt.Errorf("path data at %d: unsupported command %q", i-1, cmd)
		}
		if err := lineTo(i, p); err != nil {
			return nil, err
		}
	}
	return segs, nil
}

// MustParseSegments is like ParseSegments but panics on error.
func MustParseSegments(path string) []Segment {
	segs, err := ParseSegments([]byte(path))
	if err != nil {
		panic(err)
	}
	return segs
}
