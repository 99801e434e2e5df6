package frame

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ohler55/ojg/jp"
	"k8s.io/apimachinery/pkg/util/json"
	"sigs.k8s.io/yaml"
)

// ColumnSpec is the serialized form of a column in a dataset document.
//
// Data cells are numbers, strings or null (NA). A column with string cells is categorical: if
// Domain is empty the domain is the sorted set of distinct strings, otherwise every string must be
// a level of Domain. Numeric cells of a column with a Domain are taken as codes.
type ColumnSpec struct {
	Name        string   `json:"name"`
	Categorical bool     `json:"categorical,omitempty"`
	Domain      []string `json:"domain,omitempty"`
	Data        []any    `json:"data"`
}

// FrameSpec is the serialized form of a frame in a dataset document.
type FrameSpec struct {
	Columns []ColumnSpec `json:"columns"`
}

// FromSpec builds a frame from its serialized form.
func FromSpec(spec FrameSpec, chunkSize int) (*Frame, error) {
	names := make([]string, len(spec.Columns))
	vecs := make([]*Vec, len(spec.Columns))
	for i, c := range spec.Columns {
		v, err := c.toVec(chunkSize)
		if err != nil {
			return nil, newFrameError(fmt.Sprintf("invalid column %q", c.Name), err)
		}
		names[i] = c.Name
		vecs[i] = v
	}

	return NewFrame(names, vecs)
}

func (c ColumnSpec) toVec(chunkSize int) (*Vec, error) {
	hasStrings := false
	for _, d := range c.Data {
		if _, ok := d.(string); ok {
			hasStrings = true
			break
		}
	}

	domain := c.Domain
	if hasStrings && len(domain) == 0 {
		domain = collectLevels(c.Data)
	}
	if c.Categorical && domain == nil {
		if len(c.Data) > 0 {
			return nil, errors.New("categorical column with numeric data requires a domain")
		}
		domain = []string{}
	}

	index := make(map[string]int, len(domain))
	for i, l := range domain {
		index[l] = i
	}

	data := make([]float64, len(c.Data))
	for i, d := range c.Data {
		switch x := d.(type) {
		case nil:
			data[i] = NA
		case string:
			code, ok := index[x]
			if !ok {
				return nil, fmt.Errorf("level %q not in domain", x)
			}
			data[i] = float64(code)
		case int64:
			data[i] = float64(x)
		case float64:
			data[i] = x
		case int:
			data[i] = float64(x)
		default:
			return nil, fmt.Errorf("unsupported cell %#v at row %d", d, i)
		}
	}

	if len(domain) == 0 && !c.Categorical && !hasStrings {
		domain = nil
	}

	return NewVec(data, domain, chunkSize)
}

func collectLevels(data []any) []string {
	seen := map[string]bool{}
	ret := []string{}
	for _, d := range data {
		if s, ok := d.(string); ok && !seen[s] {
			seen[s] = true
			ret = append(ret, s)
		}
	}
	sort.Strings(ret)
	return ret
}

// LoadFrames parses a JSON or YAML dataset document into named frames. The path is a JSONPath
// selecting the name -> frame map inside the document; an empty path selects the document root.
func LoadFrames(doc []byte, path string, chunkSize int) (map[string]*Frame, error) {
	j, err := yaml.YAMLToJSON(doc)
	if err != nil {
		return nil, newFrameError("failed to parse dataset", err)
	}

	var root any
	if err := json.Unmarshal(j, &root); err != nil {
		return nil, newFrameError("failed to parse dataset", err)
	}

	if path != "" && path != "$" {
		x, err := jp.ParseString(path)
		if err != nil {
			return nil, newFrameError(fmt.Sprintf("invalid JSONPath %q", path), err)
		}
		values := x.Get(root)
		if len(values) == 0 {
			return nil, newFrameError(fmt.Sprintf("JSONPath %q selects nothing", path), nil)
		}
		root = values[0]
	}

	specs, ok := root.(map[string]any)
	if !ok {
		return nil, newFrameError("dataset must be a map of frame name to frame", nil)
	}

	ret := make(map[string]*Frame, len(specs))
	for name, raw := range specs {
		b, err := json.Marshal(raw)
		if err != nil {
			return nil, newFrameError(fmt.Sprintf("invalid frame %q", name), err)
		}

		var spec FrameSpec
		if err := json.Unmarshal(b, &spec); err != nil {
			return nil, newFrameError(fmt.Sprintf("invalid frame %q", name), err)
		}

		f, err := FromSpec(spec, chunkSize)
		if err != nil {
			return nil, newFrameError(fmt.Sprintf("invalid frame %q", name), err)
		}
		ret[name] = f
	}

	return ret, nil
}
