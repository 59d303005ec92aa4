package myjson_test

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/a2ikm/myjson-ruby/pkg/core/jsonerr"
	"github.com/a2ikm/myjson-ruby/pkg/core/value"
	"github.com/a2ikm/myjson-ruby/pkg/myjson"
	"github.com/a2ikm/myjson-ruby/pkg/parser"
)

var bigEqual = cmp.Comparer(func(x, y *big.Int) bool { return x.Cmp(y) == 0 })

// unicodeEscapes expands each '^' into a backslash-u escape prefix.
func unicodeEscapes(s string) string {
	return strings.ReplaceAll(s, "^", `\`+"u")
}

func TestParseConformance(t *testing.T) {
	tests := []struct {
		src  string
		want any
	}{
		{`1`, big.NewInt(1)},
		{`12`, big.NewInt(12)},
		{` 1`, big.NewInt(1)},
		{`1 `, big.NewInt(1)},
		{` 1 `, big.NewInt(1)},
		{`true`, true},
		{`false`, false},
		{`null`, nil},
		{`"a"`, "a"},
		{`"abc"`, "abc"},
		{`""`, ""},
		{`"\""`, `"`},
		{`"a\"b"`, `a"b`},
		{`"a\\b"`, `a\b`},
		{`"a\\\\b"`, `a\\b`},
		{`"a\/b"`, "a/b"},
		{`"a\bb"`, "a\bb"},
		{`"a\fb"`, "a\fb"},
		{`"a\nb"`, "a\nb"},
		{`"a\rb"`, "a\rb"},
		{`"a\tb"`, "a\tb"},
		{`"a^1234b"`, "a" + string(rune(0x1234)) + "b"},
		{`[]`, []any{}},
		{`[1]`, []any{big.NewInt(1)}},
		{`[1,2]`, []any{big.NewInt(1), big.NewInt(2)}},
		{`[1, 2]`, []any{big.NewInt(1), big.NewInt(2)}},
		{`["a"]`, []any{"a"}},
		{`[[1], 2]`, []any{[]any{big.NewInt(1)}, big.NewInt(2)}},
		{`{}`, map[string]any{}},
		{`{"a":1}`, map[string]any{"a": big.NewInt(1)}},
		{`{"a": 1, "b": "2"}`, map[string]any{"a": big.NewInt(1), "b": "2"}},
		{"{\n\t\"list\": [true, false, null],\r\n\t\"n\": {}\n}", map[string]any{
			"list": []any{true, false, nil},
			"n":    map[string]any{},
		}},
	}

	for _, tt := range tests {
		src := unicodeEscapes(tt.src)
		t.Run(src, func(t *testing.T) {
			got, err := myjson.Parse(src)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got.Native(), bigEqual); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", src, diff)
			}
		})
	}
}

func TestParseLargeInteger(t *testing.T) {
	got, err := myjson.Parse("184467440737095516160")
	require.NoError(t, err)

	want, _ := new(big.Int).SetString("184467440737095516160", 10)
	assert.Equal(t, 0, want.Cmp(got.BigInt()))
	_, fits := got.Int64()
	assert.False(t, fits)
}

func TestParseIdempotent(t *testing.T) {
	src := `{"a": [1, {"b": null}], "c": "d\ne"}`

	first, err := myjson.Parse(src)
	require.NoError(t, err)
	second, err := myjson.Parse(src)
	require.NoError(t, err)

	assert.True(t, first.Equal(second))

	// Mutating one tree must not be visible through the other.
	first.Object().Set("a", value.Null())
	a, _ := second.Object().Get("a")
	assert.Equal(t, value.TypeArray, a.Type)
}

func TestParseFailures(t *testing.T) {
	tests := []struct {
		src  string
		kind error
	}{
		{"", jsonerr.ErrNoValue},
		{"   ", jsonerr.ErrNoValue},
		{"{", jsonerr.ErrUnexpectedToken},
		{"tru", jsonerr.ErrUnknownKeyword},
		{"nil", jsonerr.ErrUnknownKeyword},
		{"#", jsonerr.ErrUnexpectedCharacter},
		{"1.2", jsonerr.ErrUnexpectedCharacter},
		{"12E3", jsonerr.ErrUnexpectedCharacter},
		{"12e3", jsonerr.ErrUnexpectedToken},
		{"-1", jsonerr.ErrUnexpectedCharacter},
		{`"abc`, jsonerr.ErrUnexpectedCharacter},
		{`["abc]`, jsonerr.ErrUnexpectedCharacter},
		{`[1, 2`, jsonerr.ErrUnexpectedToken},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, err := myjson.Parse(tt.src)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind), "got %v", err)

			var jerr *jsonerr.Error
			assert.True(t, errors.As(err, &jerr))
		})
	}
}

func TestParseBytesWithOptions(t *testing.T) {
	_, err := myjson.ParseBytes([]byte("[[1]]"), parser.WithConfig(parser.Config{MaxDepth: 1}))
	assert.True(t, errors.Is(err, jsonerr.ErrUnexpectedToken))

	got, err := myjson.ParseBytes([]byte(`{"k": "v"}`))
	require.NoError(t, err)
	v, ok := got.Object().Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", v.Str())
}

func TestParseConcurrent(t *testing.T) {
	docs := []string{
		unicodeEscapes(`{"k\\ey": "a\nb\tc\"d", "u": "^1234^d83d^de00x", "list": ["\/", "\b\f\r", 123]}`),
		unicodeEscapes(`[["^00e9\\"], {"n": null, "t": true, "f": false}, "plain", "esc\"aped"]`),
		`{"deep": {"deeper": {"deepest": ["a\\b", "c\nd", 18446744073709551616]}}}`,
	}

	baseline := make([]value.Value, len(docs))
	for i, doc := range docs {
		v, err := myjson.Parse(doc)
		require.NoError(t, err)
		baseline[i] = v
	}

	const (
		workers = 16
		rounds  = 200
	)

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			for r := 0; r < rounds; r++ {
				i := (w + r) % len(docs)
				got, err := myjson.Parse(docs[i])
				if err != nil {
					return err
				}
				if !got.Equal(baseline[i]) {
					return fmt.Errorf("worker %d round %d: document %d parsed differently", w, r, i)
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}

func FuzzParse(f *testing.F) {
	// Add some valid seed corpus
	f.Add(`{"a": [1, 2, {"b": null}], "c": "x\ny"}`)
	f.Add(`[[], {}, true, false, "\"", 0]`)
	f.Add(unicodeEscapes(`"^d83d^de00"`))
	f.Add(`{"a": `)

	f.Fuzz(func(t *testing.T, src string) {
		first, err := myjson.Parse(src)
		if err != nil {
			var jerr *jsonerr.Error
			if !errors.As(err, &jerr) {
				t.Fatalf("Parse(%q) returned foreign error %v", src, err)
			}
			return
		}

		second, err := myjson.Parse(src)
		if err != nil {
			t.Fatalf("second Parse(%q) failed: %v", src, err)
		}
		if !first.Equal(second) {
			t.Fatalf("Parse(%q) is not deterministic", src)
		}
	})
}
