package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// Supported codec names.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// Codec converts a task collection to and from its persisted form.
// Decode returns a *CorruptedStateError for content it cannot interpret.
type Codec interface {
	Name() string
	Encode(tasks []Task) ([]byte, error)
	Decode(data []byte) ([]Task, error)
}

var codecs = map[string]Codec{
	FormatJSON: jsonCodec{},
	FormatYAML: yamlCodec{},
	FormatTOML: tomlCodec{},
}

// CodecFor returns the codec registered under name. Lookup is case-insensitive.
func CodecFor(name string) (Codec, error) {
	c, ok := codecs[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown format %q (expected one of: %s)", name, strings.Join(CodecNames(), ", "))
	}
	return c, nil
}

// CodecNames returns the registered codec names in sorted order.
func CodecNames() []string {
	names := make([]string, 0, len(codecs))
	for name := range codecs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// nonNil keeps empty collections encoding as an empty sequence rather than null.
func nonNil(tasks []Task) []Task {
	if tasks == nil {
		return []Task{}
	}
	return tasks
}

// checkEncodable rejects text that no codec can write back byte for byte.
func checkEncodable(tasks []Task) error {
	for i := range tasks {
		if !utf8.ValidString(tasks[i].ID) {
			return &ValidationError{Field: "id", Message: "must be valid UTF-8"}
		}
		if !utf8.ValidString(tasks[i].Title) {
			return &ValidationError{Field: "title", Message: "must be valid UTF-8"}
		}
	}
	return nil
}

// storedTask mirrors Task with pointer fields so a missing key can be told
// apart from an empty value.
type storedTask struct {
	ID        *string `yaml:"id" toml:"id"`
	Title     *string `yaml:"title" toml:"title"`
	Completed bool    `yaml:"completed" toml:"completed"`
	CreatedAt int64   `yaml:"createdAt" toml:"createdAt"`
}

// fromStored applies the same required fields the JSON schema enforces.
func fromStored(format string, records []storedTask) ([]Task, error) {
	tasks := make([]Task, 0, len(records))
	for i, r := range records {
		if r.ID == nil || *r.ID == "" {
			return nil, &CorruptedStateError{Format: format, Err: fmt.Errorf("task at index %d has no id", i)}
		}
		if r.Title == nil {
			return nil, &CorruptedStateError{Format: format, Err: fmt.Errorf("task at index %d has no title", i)}
		}
		tasks = append(tasks, Task{ID: *r.ID, Title: *r.Title, Completed: r.Completed, CreatedAt: r.CreatedAt})
	}
	return tasks, nil
}

// taskListSchema describes the persisted JSON document. Only id and title are
// required so records written without a completion flag or timestamp still load.
const taskListSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "title"],
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "title": {"type": "string"},
      "completed": {"type": "boolean"},
      "createdAt": {"type": "integer"}
    }
  }
}`

var taskListValidator = jsonschema.MustCompileString("tasks.schema.json", taskListSchema)

type jsonCodec struct{}

func (jsonCodec) Name() string { return FormatJSON }

func (jsonCodec) Encode(tasks []Task) ([]byte, error) {
	if err := checkEncodable(tasks); err != nil {
		return nil, err
	}
	data, err := json.Marshal(nonNil(tasks))
	if err != nil {
		return nil, fmt.Errorf("failed to encode tasks: %w", err)
	}
	return data, nil
}

func (jsonCodec) Decode(data []byte) ([]Task, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, &CorruptedStateError{Format: FormatJSON, Err: err}
	}
	if err := taskListValidator.Validate(doc); err != nil {
		return nil, &CorruptedStateError{Format: FormatJSON, Err: err}
	}

	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, &CorruptedStateError{Format: FormatJSON, Err: err}
	}
	return nonNil(tasks), nil
}

type yamlCodec struct{}

func (yamlCodec) Name() string { return FormatYAML }

func (yamlCodec) Encode(tasks []Task) ([]byte, error) {
	if err := checkEncodable(tasks); err != nil {
		return nil, err
	}
	data, err := yaml.Marshal(nonNil(tasks))
	if err != nil {
		return nil, fmt.Errorf("failed to encode tasks: %w", err)
	}
	return data, nil
}

func (yamlCodec) Decode(data []byte) ([]Task, error) {
	var records []storedTask
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, &CorruptedStateError{Format: FormatYAML, Err: err}
	}
	return fromStored(FormatYAML, records)
}

// tomlDocument wraps the collection because TOML has no top-level arrays.
type tomlDocument struct {
	Tasks []Task `toml:"tasks"`
}

type tomlCodec struct{}

func (tomlCodec) Name() string { return FormatTOML }

func (tomlCodec) Encode(tasks []Task) ([]byte, error) {
	if err := checkEncodable(tasks); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(tomlDocument{Tasks: nonNil(tasks)}); err != nil {
		return nil, fmt.Errorf("failed to encode tasks: %w", err)
	}
	return buf.Bytes(), nil
}

func (tomlCodec) Decode(data []byte) ([]Task, error) {
	var doc struct {
		Tasks []storedTask `toml:"tasks"`
	}
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, &CorruptedStateError{Format: FormatTOML, Err: err}
	}
	// Unknown fields inside a task are tolerated; anything outside the tasks
	// array means this is not a task document.
	var foreign []string
	for _, key := range md.Undecoded() {
		if len(key) > 0 && key[0] != "tasks" {
			foreign = append(foreign, key.String())
		}
	}
	if len(foreign) > 0 {
		return nil, &CorruptedStateError{
			Format: FormatTOML,
			Err:    fmt.Errorf("unexpected keys: %s", strings.Join(foreign, ", ")),
		}
	}
	return fromStored(FormatTOML, doc.Tasks)
}
