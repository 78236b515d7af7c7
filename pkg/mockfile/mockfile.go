// Package mockfile loads mock definitions from YAML or JSON files, so a
// suite can check its fixtures into the repository instead of building them
// in Go code at every test's top.
package mockfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/utkarshgupta137/httpmock/internal/model"
)

// kv is the file-format shape of a model.KV pair.
type kv struct {
	Name  string `yaml:"name" json:"name"`
	Value string `yaml:"value" json:"value"`
}

func (k kv) toModel() model.KV { return model.KV{Name: k.Name, Value: k.Value} }

func kvsToModel(kvs []kv) []model.KV {
	if len(kvs) == 0 {
		return nil
	}
	out := make([]model.KV, len(kvs))
	for i, k := range kvs {
		out[i] = k.toModel()
	}
	return out
}

// requirements is the file-format shape of a mock's request requirements.
type requirements struct {
	Method           string          `yaml:"method,omitempty" json:"method,omitempty"`
	Path             string          `yaml:"path,omitempty" json:"path,omitempty"`
	PathContains     []string        `yaml:"path_contains,omitempty" json:"path_contains,omitempty"`
	PathMatches      []string        `yaml:"path_matches,omitempty" json:"path_matches,omitempty"`
	Query            []kv            `yaml:"query,omitempty" json:"query,omitempty"`
	Headers          []kv            `yaml:"headers,omitempty" json:"headers,omitempty"`
	Cookies          []kv            `yaml:"cookies,omitempty" json:"cookies,omitempty"`
	BodyEquals       *string         `yaml:"body_equals,omitempty" json:"body_equals,omitempty"`
	BodyContains     []string        `yaml:"body_contains,omitempty" json:"body_contains,omitempty"`
	BodyMatches      []string        `yaml:"body_matches,omitempty" json:"body_matches,omitempty"`
	BodyJSONEquals   json.RawMessage `yaml:"body_json_equals,omitempty" json:"body_json_equals,omitempty"`
	BodyJSONIncludes json.RawMessage `yaml:"body_json_includes,omitempty" json:"body_json_includes,omitempty"`
}

func (r requirements) toModel() model.Requirements {
	return model.Requirements{
		Method:           r.Method,
		Path:             r.Path,
		PathContains:     r.PathContains,
		PathMatches:      r.PathMatches,
		Query:            kvsToModel(r.Query),
		Headers:          kvsToModel(r.Headers),
		Cookies:          kvsToModel(r.Cookies),
		BodyEquals:       r.BodyEquals,
		BodyContains:     r.BodyContains,
		BodyMatches:      r.BodyMatches,
		BodyJSONEquals:   rawOrNil(r.BodyJSONEquals),
		BodyJSONIncludes: rawOrNil(r.BodyJSONIncludes),
	}
}

// rawOrNil treats an explicit JSON/YAML null the same as an omitted field,
// so `body_json_equals: null` in a mock file never registers as a
// requirement that the body be the null literal.
func rawOrNil(m json.RawMessage) json.RawMessage {
	if len(m) == 0 || string(m) == "null" {
		return nil
	}
	return m
}

// response is the file-format shape of a mock's canned response.
type response struct {
	Status  int    `yaml:"status" json:"status"`
	Headers []kv   `yaml:"headers,omitempty" json:"headers,omitempty"`
	Body    string `yaml:"body,omitempty" json:"body,omitempty"`
	DelayMS int64  `yaml:"delay_ms,omitempty" json:"delay_ms,omitempty"`
}

func (r response) toModel() model.Response {
	return model.Response{
		Status:  r.Status,
		Headers: kvsToModel(r.Headers),
		Body:    []byte(r.Body),
		Delay:   time.Duration(r.DelayMS) * time.Millisecond,
	}
}

// entry is a single mock definition as it appears in a mock file.
type entry struct {
	Request  requirements `yaml:"request" json:"request"`
	Response response     `yaml:"response" json:"response"`
}

func (e entry) toModel() model.Definition {
	return model.Definition{Requirements: e.Request.toModel(), Response: e.Response.toModel()}
}

// fileContent is the top-level shape of a mock file: either one definition
// or a list of them, mirroring how a test suite tends to grow a fixture
// file from one mock to many without renaming the top-level key.
type fileContent struct {
	entries []entry
}

func (fc *fileContent) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		var list []entry
		if err := node.Decode(&list); err != nil {
			return err
		}
		fc.entries = list
		return nil
	}
	var single entry
	if err := node.Decode(&single); err != nil {
		return err
	}
	fc.entries = []entry{single}
	return nil
}

func (fc *fileContent) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var list []entry
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		fc.entries = list
		return nil
	}
	var single entry
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	fc.entries = []entry{single}
	return nil
}

// Load parses a single YAML or JSON mock file into one or more Definitions,
// chosen by extension (.json parses as JSON; anything else as YAML).
func Load(path string) ([]model.Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("mockfile: read %s: %w", path, err)
	}

	var fc fileContent
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := fc.UnmarshalJSON(data); err != nil {
			return nil, fmt.Errorf("mockfile: parse %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("mockfile: parse %s: %w", path, err)
		}
	}

	defs := make([]model.Definition, len(fc.entries))
	for i, e := range fc.entries {
		defs[i] = e.toModel()
	}
	return defs, nil
}

// LoadDir loads every .yaml, .yml, and .json file directly inside dir (not
// recursively), in lexical filename order, and concatenates their
// definitions.
func LoadDir(dir string) ([]model.Definition, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("mockfile: read dir %s: %w", dir, err)
	}

	var names []string
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(f.Name()))
		if ext == ".yaml" || ext == ".yml" || ext == ".json" {
			names = append(names, f.Name())
		}
	}
	sort.Strings(names)

	var all []model.Definition
	for _, name := range names {
		defs, err := Load(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		all = append(all, defs...)
	}
	return all, nil
}
