package registry

import (
	"encoding/json"
	"fmt"
	"sort"

	liberrors "github.com/lib-shared/lib-shared/internal/errors"
)

// Entry is a shape-checked registry entry for one component.
type Entry struct {
	Name         string   `json:"name" yaml:"name"`
	Title        string   `json:"title" yaml:"title"`
	Description  string   `json:"description,omitempty" yaml:"description,omitempty"`
	Files        []File   `json:"files" yaml:"files"`
	Dependencies []string `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
}

// File is one source file carried by an entry.
type File struct {
	Path    string `json:"path,omitempty" yaml:"path,omitempty"`
	Type    string `json:"type,omitempty" yaml:"type,omitempty"`
	Content string `json:"content" yaml:"-"`
}

// Index is the registry catalogue served as registry.json.
type Index struct {
	Name     string      `json:"name,omitempty" yaml:"name,omitempty"`
	Homepage string      `json:"homepage,omitempty" yaml:"homepage,omitempty"`
	Items    []IndexItem `json:"items" yaml:"items"`
}

// IndexItem describes one component in the index.
type IndexItem struct {
	Name        string `json:"name" yaml:"name"`
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Type        string `json:"type,omitempty" yaml:"type,omitempty"`
}

// ParseEntry checks the structure of a raw entry before any field is trusted.
// title must be a non-empty string, files an array, and every file an object
// with string content. description, path, type and dependencies are optional
// but must have the right type when present.
func ParseEntry(name string, raw []byte) (*Entry, error) {
	var doc map[string]interface{}
	if err := json.Unmarshal(raw, &doc); err != nil || doc == nil {
		return nil, liberrors.ErrRegistryShape(name, "entry is not a JSON object")
	}

	entry := &Entry{Name: name}

	title, ok := doc["title"].(string)
	if !ok || title == "" {
		return nil, liberrors.ErrRegistryShape(name, "title must be a non-empty string")
	}
	entry.Title = title

	if v, present := doc["description"]; present && v != nil {
		desc, ok := v.(string)
		if !ok {
			return nil, liberrors.ErrRegistryShape(name, "description must be a string")
		}
		entry.Description = desc
	}

	files, ok := doc["files"].([]interface{})
	if !ok {
		return nil, liberrors.ErrRegistryShape(name, "files must be an array")
	}
	for i, item := range files {
		file, err := parseFile(name, i, item)
		if err != nil {
			return nil, err
		}
		entry.Files = append(entry.Files, file)
	}

	if v, present := doc["dependencies"]; present && v != nil {
		deps, err := stringList(v)
		if err != nil {
			return nil, liberrors.ErrRegistryShape(name, "dependencies "+err.Error())
		}
		entry.Dependencies = deps
	}

	return entry, nil
}

func parseFile(name string, i int, item interface{}) (File, error) {
	obj, ok := item.(map[string]interface{})
	if !ok {
		return File{}, liberrors.ErrRegistryShape(name, fmt.Sprintf("files[%d] must be an object", i))
	}

	content, ok := obj["content"].(string)
	if !ok {
		return File{}, liberrors.ErrRegistryShape(name, fmt.Sprintf("files[%d].content must be a string", i))
	}

	file := File{Content: content}
	for key, dst := range map[string]*string{"path": &file.Path, "type": &file.Type} {
		v, present := obj[key]
		if !present || v == nil {
			continue
		}
		s, ok := v.(string)
		if !ok {
			return File{}, liberrors.ErrRegistryShape(name, fmt.Sprintf("files[%d].%s must be a string", i, key))
		}
		*dst = s
	}

	return file, nil
}

func stringList(v interface{}) ([]string, error) {
	items, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("must be an array")
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("must only contain strings")
		}
		out = append(out, s)
	}
	return out, nil
}

// ParseIndex decodes registry.json. Items without a name are dropped and the
// rest are sorted by name.
func ParseIndex(raw []byte) (*Index, error) {
	var doc struct {
		Name     string            `json:"name"`
		Homepage string            `json:"homepage"`
		Items    []json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, liberrors.NewRegistryError(liberrors.ErrCodeRegistryShape, "malformed registry index", err)
	}

	index := &Index{Name: doc.Name, Homepage: doc.Homepage, Items: []IndexItem{}}
	for _, rawItem := range doc.Items {
		var item IndexItem
		if err := json.Unmarshal(rawItem, &item); err != nil {
			return nil, liberrors.NewRegistryError(liberrors.ErrCodeRegistryShape, "malformed registry index item", err)
		}
		if item.Name == "" {
			continue
		}
		index.Items = append(index.Items, item)
	}

	sort.Slice(index.Items, func(i, j int) bool {
		return index.Items[i].Name < index.Items[j].Name
	})

	return index, nil
}
