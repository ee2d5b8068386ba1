package record

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/valyala/fastjson"
	"gopkg.in/yaml.v3"
)

//go:embed sample_users.yaml
var sampleUsers []byte

var (
	// ErrUnsupportedFormat is returned for record files whose extension is not recognized
	ErrUnsupportedFormat = errors.New("unsupported record file format")

	// ErrInvalidRecords is returned when a file does not hold a list of records
	ErrInvalidRecords = errors.New("invalid record data")
)

var jsonParsers fastjson.ParserPool

// SampleUsers returns the built-in user records (name, email, age) with
// generated IDs.
func SampleUsers() []Record {
	records, err := DecodeYAML(sampleUsers)
	if err != nil {
		panic(fmt.Sprintf("embedded sample users: %v", err))
	}
	EnsureIDs(records)
	return records
}

// LoadFile reads records from path. The format follows the extension:
// .yaml/.yml or .json, optionally followed by .gz or .zst.
func LoadFile(path string) ([]Record, error) {
	//nolint:gosec // G304: path is supplied by the user on purpose
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open record file: %w", err)
	}
	defer func() { _ = f.Close() }()

	records, err := Decode(f, filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	slog.Debug("loaded record file", "path", path, "records", len(records))
	return records, nil
}

// Decode reads records from r. name is only used to pick the format.
func Decode(r io.Reader, name string) ([]Record, error) {
	name = strings.ToLower(name)

	switch ext := filepath.Ext(name); ext {
	case ".gz":
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		defer func() { _ = zr.Close() }()
		return Decode(zr, strings.TrimSuffix(name, ext))
	case ".zst":
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		defer zr.Close()
		return Decode(zr, strings.TrimSuffix(name, ext))
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}

	switch filepath.Ext(name) {
	case ".yaml", ".yml":
		return DecodeYAML(data)
	case ".json":
		return DecodeJSON(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// DecodeYAML decodes a YAML sequence of mappings
func DecodeYAML(data []byte) ([]Record, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var raw []map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecords, err)
	}

	records := make([]Record, 0, len(raw))
	for i, m := range raw {
		if m == nil {
			return nil, fmt.Errorf("%w: item %d is empty", ErrInvalidRecords, i)
		}
		records = append(records, Record(m))
	}
	return records, nil
}

// DecodeJSON decodes a JSON array of objects. A single top-level object is
// read as one record.
func DecodeJSON(data []byte) ([]Record, error) {
	p := jsonParsers.Get()
	defer jsonParsers.Put(p)

	v, err := p.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecords, err)
	}

	items := []*fastjson.Value{v}
	if v.Type() == fastjson.TypeArray {
		items, _ = v.Array()
	}

	records := make([]Record, 0, len(items))
	for i, item := range items {
		obj, err := item.Object()
		if err != nil {
			return nil, fmt.Errorf("%w: item %d is %s, not an object", ErrInvalidRecords, i, item.Type())
		}
		r := make(Record, obj.Len())
		obj.Visit(func(key []byte, val *fastjson.Value) {
			r[string(key)] = jsonValue(val)
		})
		records = append(records, r)
	}
	return records, nil
}

// jsonValue converts a parsed value to plain Go values. The values are
// copied out because the parser is reused.
func jsonValue(v *fastjson.Value) interface{} {
	switch v.Type() {
	case fastjson.TypeNull:
		return nil
	case fastjson.TypeTrue:
		return true
	case fastjson.TypeFalse:
		return false
	case fastjson.TypeString:
		return string(v.GetStringBytes())
	case fastjson.TypeNumber:
		raw := v.String()
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return n
		}
		return v.GetFloat64()
	case fastjson.TypeArray:
		arr, _ := v.Array()
		out := make([]interface{}, 0, len(arr))
		for _, item := range arr {
			out = append(out, jsonValue(item))
		}
		return out
	case fastjson.TypeObject:
		obj, _ := v.Object()
		out := make(map[string]interface{}, obj.Len())
		obj.Visit(func(key []byte, val *fastjson.Value) {
			out[string(key)] = jsonValue(val)
		})
		return out
	}
	return nil
}
