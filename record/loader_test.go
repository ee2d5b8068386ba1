package record

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

const usersYAML = `
- id: u1
  name: alice
  email: alice@example.com
  age: 31
- name: bob
  email: bob@example.com
  age: 42
  tags: [admin, ops]
`

const usersJSON = `[
  {"id": "u1", "name": "alice", "email": "alice@example.com", "age": 31},
  {"name": "bob", "email": "bob@example.com", "age": 42, "score": 9.5, "tags": ["admin", "ops"], "manager": null}
]`

func TestDecodeYAML(t *testing.T) {
	records, err := DecodeYAML([]byte(usersYAML))
	if err != nil {
		t.Fatalf("DecodeYAML() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}

	tests := []struct {
		rec   int
		field string
		want  string
	}{
		{0, "id", "u1"},
		{0, "age", "31"},
		{1, "email", "bob@example.com"},
		{1, "tags", "admin,ops"},
	}
	for _, tt := range tests {
		if got, _ := records[tt.rec].Get(tt.field); got != tt.want {
			t.Errorf("records[%d].Get(%q) = %q, want %q", tt.rec, tt.field, got, tt.want)
		}
	}
}

func TestDecodeJSON(t *testing.T) {
	records, err := DecodeJSON([]byte(usersJSON))
	if err != nil {
		t.Fatalf("DecodeJSON() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}

	bob := records[1]
	if v, ok := bob["age"].(int64); !ok || v != 42 {
		t.Errorf("age = %#v, want int64(42)", bob["age"])
	}
	if v, ok := bob["score"].(float64); !ok || v != 9.5 {
		t.Errorf("score = %#v, want 9.5", bob["score"])
	}
	if !reflect.DeepEqual(bob["tags"], []interface{}{"admin", "ops"}) {
		t.Errorf("tags = %#v", bob["tags"])
	}
	if v, exists := bob["manager"]; !exists || v != nil {
		t.Errorf("manager = %#v, %v; want nil, true", v, exists)
	}

	single, err := DecodeJSON([]byte(`{"name": "carol"}`))
	if err != nil {
		t.Fatalf("DecodeJSON(object) error = %v", err)
	}
	if len(single) != 1 || single[0]["name"] != "carol" {
		t.Errorf("DecodeJSON(object) = %v", single)
	}
}

func TestDecodeInvalid(t *testing.T) {
	tests := []struct {
		name string
		file string
		data string
		want error
	}{
		{name: "json scalar items", file: "r.json", data: `[1, 2]`, want: ErrInvalidRecords},
		{name: "broken json", file: "r.json", data: `[{"a": }]`, want: ErrInvalidRecords},
		{name: "yaml mapping instead of list", file: "r.yaml", data: "name: alice\n", want: ErrInvalidRecords},
		{name: "yaml null item", file: "r.yml", data: "- name: a\n- \n", want: ErrInvalidRecords},
		{name: "unknown extension", file: "r.csv", data: "name\nalice\n", want: ErrUnsupportedFormat},
		{name: "no extension", file: "records", data: "[]", want: ErrUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.data), tt.file)
			if !errors.Is(err, tt.want) {
				t.Errorf("Decode(%s) error = %v, want %v", tt.file, err, tt.want)
			}
		})
	}
}

func TestLoadFileFormats(t *testing.T) {
	dir := t.TempDir()

	gz := func(data []byte) []byte {
		var buf bytes.Buffer
		w := gzip.NewWriter(&buf)
		_, _ = w.Write(data)
		_ = w.Close()
		return buf.Bytes()
	}
	zst := func(data []byte) []byte {
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			t.Fatalf("zstd.NewWriter() error = %v", err)
		}
		defer func() { _ = enc.Close() }()
		return enc.EncodeAll(data, nil)
	}

	files := map[string][]byte{
		"users.yaml":     []byte(usersYAML),
		"users.YML":      []byte(usersYAML),
		"users.json":     []byte(usersJSON),
		"users.json.gz":  gz([]byte(usersJSON)),
		"users.yaml.zst": zst([]byte(usersYAML)),
	}

	for name, data := range files {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := os.WriteFile(path, data, 0644); err != nil {
				t.Fatalf("write: %v", err)
			}
			records, err := LoadFile(path)
			if err != nil {
				t.Fatalf("LoadFile() error = %v", err)
			}
			if len(records) != 2 {
				t.Fatalf("len(records) = %d, want 2", len(records))
			}
			if name, _ := records[1].Get("name"); name != "bob" {
				t.Errorf("records[1].name = %q, want bob", name)
			}
		})
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadFile(missing) error = %v, want os.ErrNotExist", err)
	}
}

func TestSampleUsers(t *testing.T) {
	users := SampleUsers()
	if len(users) != 10 {
		t.Fatalf("len(SampleUsers()) = %d, want 10", len(users))
	}
	seen := make(map[string]bool)
	for _, u := range users {
		if len(u.ID()) != 6 {
			t.Errorf("sample user id %q, want 6 characters", u.ID())
		}
		if seen[u.ID()] {
			t.Errorf("duplicate sample id %q", u.ID())
		}
		seen[u.ID()] = true
		for _, f := range []string{"name", "email", "age"} {
			if _, ok := u.Get(f); !ok {
				t.Errorf("sample user %v lacks %s", u, f)
			}
		}
	}
}

func TestEnsureIDs(t *testing.T) {
	records := []Record{{"id": "keep"}, {"name": "x"}, {"id": nil}, nil}
	EnsureIDs(records)

	if records[0].ID() != "keep" {
		t.Errorf("existing id replaced with %q", records[0].ID())
	}
	for _, i := range []int{1, 2} {
		if id := records[i].ID(); len(id) != 6 || strings.Trim(id, "abcdefghijklmnopqrstuvwxyz0123456789") != "" {
			t.Errorf("records[%d] id = %q, want 6 lowercase alphanumerics", i, id)
		}
	}
}
