package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// PeopleYAML is a small record set used by integration tests
const PeopleYAML = `- id: a1
  name: alice
  email: alice@example.com
  age: 31
- id: b2
  name: bob
  email: bob@example.org
  age: 42
- id: c3
  name: carol
  email: carol@example.com
  age: 27
- id: d4
  name: dave
  email: dave@test.net
  age: 35
`

// WriteRecordFile writes content to name inside dir and returns the path
func WriteRecordFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write record file: %v", err)
	}
	return path
}
