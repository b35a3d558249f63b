package pajek

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/cognicore/textrank/pkg/textrank/graph"
	"github.com/cognicore/textrank/pkg/textrank/internalerr"
)

// Network is one graph read back from a Pajek file.
type Network struct {
	Name  string
	Graph *graph.Graph
}

// Parse reads a file holding exactly one network.
func Parse(r io.Reader) (*graph.Graph, error) {
	nets, err := ParseAll(r)
	if err != nil {
		return nil, err
	}
	if len(nets) != 1 {
		return nil, fmt.Errorf("expected one network, found %d: %w", len(nets), internalerr.ErrInvalidInput)
	}
	return nets[0].Graph, nil
}

type section int

const (
	sectionNone section = iota
	sectionVertices
	sectionEdges
)

type pending struct {
	name   string
	labels []string
	seen   []bool
	edges  []graph.Edge
	open   bool
}

func (p *pending) finish() (Network, error) {
	for i, ok := range p.seen {
		if !ok {
			return Network{}, fmt.Errorf("network %q: vertex %d missing: %w", p.name, i+1, internalerr.ErrInvalidInput)
		}
	}
	g, err := graph.FromEdges(p.labels, p.edges)
	if err != nil {
		return Network{}, fmt.Errorf("network %q: %w", p.name, err)
	}
	return Network{Name: p.name, Graph: g}, nil
}

// ParseAll reads every network in r. Files without *Network headers
// yield a single unnamed network. Lines starting with '%' are comments.
func ParseAll(r io.Reader) ([]Network, error) {
	var (
		out  []Network
		cur  pending
		sec  = sectionNone
		line int
	)
	flush := func() error {
		if !cur.open {
			return nil
		}
		n, err := cur.finish()
		if err != nil {
			return err
		}
		out = append(out, n)
		cur = pending{}
		return nil
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "%") {
			continue
		}

		if strings.HasPrefix(text, "*") {
			keyword := strings.Fields(text)[0]
			rest := strings.TrimSpace(text[len(keyword):])
			switch strings.ToLower(keyword) {
			case "*network":
				if err := flush(); err != nil {
					return nil, err
				}
				cur = pending{name: strings.TrimSpace(rest), open: true}
				sec = sectionNone
			case "*vertices":
				if cur.open && cur.labels != nil {
					if err := flush(); err != nil {
						return nil, err
					}
				}
				count, _, _ := strings.Cut(rest, " ")
				n, err := strconv.Atoi(count)
				if err != nil || n < 0 {
					return nil, parseErr(line, "bad vertex count %q", rest)
				}
				cur.open = true
				cur.labels = make([]string, n)
				cur.seen = make([]bool, n)
				sec = sectionVertices
			case "*edges", "*arcs":
				if !cur.open {
					return nil, parseErr(line, "%s before *Vertices", keyword)
				}
				sec = sectionEdges
			default:
				return nil, parseErr(line, "unknown section %q", keyword)
			}
			continue
		}

		switch sec {
		case sectionVertices:
			idx, label, err := parseVertex(text, len(cur.labels))
			if err != nil {
				return nil, parseErr(line, "%v", err)
			}
			cur.labels[idx] = label
			cur.seen[idx] = true
		case sectionEdges:
			e, err := parseEdge(text, cur.labels)
			if err != nil {
				return nil, parseErr(line, "%v", err)
			}
			cur.edges = append(cur.edges, e)
		default:
			return nil, parseErr(line, "data outside a section")
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read pajek: %w: %w", internalerr.ErrIO, err)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return out, nil
}

func parseVertex(text string, n int) (int, string, error) {
	cut := strings.IndexFunc(text, unicode.IsSpace)
	if cut < 0 {
		return 0, "", fmt.Errorf("vertex line %q has no label", text)
	}
	num, rest := text[:cut], text[cut:]
	idx, err := strconv.Atoi(num)
	if err != nil || idx < 1 || idx > n {
		return 0, "", fmt.Errorf("vertex index %q out of range 1..%d", num, n)
	}
	rest = strings.TrimSpace(rest)
	label := rest
	if strings.HasPrefix(rest, `"`) {
		end := strings.LastIndex(rest, `"`)
		if end <= 0 {
			return 0, "", fmt.Errorf("unterminated label %q", rest)
		}
		label, err = strconv.Unquote(rest[:end+1])
		if err != nil {
			label = rest[1:end]
		}
	} else if f := strings.Fields(rest); len(f) > 0 {
		label = f[0]
	}
	return idx - 1, label, nil
}

func parseEdge(text string, labels []string) (graph.Edge, error) {
	f := strings.Fields(text)
	if len(f) < 2 {
		return graph.Edge{}, fmt.Errorf("edge line %q needs two endpoints", text)
	}
	ends := [2]string{}
	for k := 0; k < 2; k++ {
		idx, err := strconv.Atoi(f[k])
		if err != nil || idx < 1 || idx > len(labels) {
			return graph.Edge{}, fmt.Errorf("edge endpoint %q out of range 1..%d", f[k], len(labels))
		}
		ends[k] = labels[idx-1]
	}
	w := 1.0
	if len(f) > 2 {
		v, err := strconv.ParseFloat(f[2], 64)
		if err != nil {
			return graph.Edge{}, fmt.Errorf("edge weight %q: %v", f[2], err)
		}
		w = v
	}
	return graph.Edge{U: ends[0], V: ends[1], Weight: w}, nil
}

func parseErr(line int, format string, args ...any) error {
	return fmt.Errorf("pajek line %d: %s: %w", line, fmt.Sprintf(format, args...), internalerr.ErrInvalidInput)
}
