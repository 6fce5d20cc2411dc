package template

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type account struct {
	Name    string `json:"name"`
	Email   string
	Profile *profile `json:"profile,omitempty"`
	secret  string
}

type profile struct {
	Plan string `json:"plan"`
}

func TestLookup(t *testing.T) {
	ctx := map[string]any{
		"name":   "Ada",
		"nilval": nil,
		"user": map[string]any{
			"name": "Grace",
			"address": map[string]any{
				"city": "Arlington",
			},
		},
		"labels":  map[string]string{"env": "prod"},
		"counts":  map[string]int{"open": 2},
		"items":   []any{"first", map[string]any{"id": 7}},
		"account": account{Name: "acct", Email: "a@example.com", Profile: &profile{Plan: "pro"}, secret: "x"},
		"ptr":     &account{Name: "via pointer"},
		"nilptr":  (*account)(nil),
	}

	tests := []struct {
		path   string
		want   any
		wantOK bool
	}{
		{path: "name", want: "Ada", wantOK: true},
		{path: "  name  ", want: "Ada", wantOK: true},
		{path: "nilval", want: nil, wantOK: true},
		{path: "missing", wantOK: false},
		{path: "", wantOK: false},
		{path: "user.name", want: "Grace", wantOK: true},
		{path: "user.address.city", want: "Arlington", wantOK: true},
		{path: "user.address.zip", wantOK: false},
		{path: "user.name.first", wantOK: false},
		{path: "nilval.x", wantOK: false},
		{path: "labels.env", want: "prod", wantOK: true},
		{path: "counts.open", want: 2, wantOK: true},
		{path: "items.0", want: "first", wantOK: true},
		{path: "items.1.id", want: 7, wantOK: true},
		{path: "items.2", wantOK: false},
		{path: "items.-1", wantOK: false},
		{path: "account.name", want: "acct", wantOK: true},
		{path: "account.Name", want: "acct", wantOK: true},
		{path: "account.Email", want: "a@example.com", wantOK: true},
		{path: "account.profile.plan", want: "pro", wantOK: true},
		{path: "account.secret", wantOK: false},
		{path: "ptr.name", want: "via pointer", wantOK: true},
		{path: "nilptr.name", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := Lookup(ctx, tt.path)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestLookup_NilContext(t *testing.T) {
	_, ok := Lookup(nil, "a.b")
	assert.False(t, ok)
}

func TestIsTruthy(t *testing.T) {
	var nilPtr *account
	var nilSlice []string

	falsy := map[string]any{
		"nil":          nil,
		"false":        false,
		"zero int":     0,
		"zero int64":   int64(0),
		"zero uint":    uint8(0),
		"zero float":   0.0,
		"NaN":          math.NaN(),
		"empty string": "",
		"empty list":   []any{},
		"nil slice":    nilSlice,
		"empty map":    map[string]any{},
		"empty map2":   map[string]int{},
		"nil pointer":  nilPtr,
		"empty array":  [0]int{},
		"empty struct": struct{}{},
	}
	for name, v := range falsy {
		t.Run("falsy "+name, func(t *testing.T) {
			assert.False(t, IsTruthy(v))
		})
	}

	truthy := map[string]any{
		"true":           true,
		"one":            1,
		"negative":       -1,
		"float":          0.5,
		"float32":        float32(2),
		"string":         "x",
		"space string":   " ",
		"string false":   "false",
		"list":           []any{nil},
		"string slice":   []string{"a"},
		"map":            map[string]any{"k": nil},
		"struct":         account{},
		"pointer":        &account{},
		"named string":   kindName("k"),
		"non-empty arry": [1]int{0},
	}
	for name, v := range truthy {
		t.Run("truthy "+name, func(t *testing.T) {
			assert.True(t, IsTruthy(v))
		})
	}
}

type kindName string

type wrappedErr struct{}

func (*wrappedErr) Error() string { return "wrapped" }

func TestStringify(t *testing.T) {
	tests := []struct {
		name   string
		value  any
		want   string
		wantOK bool
	}{
		{name: "nil", value: nil, want: "", wantOK: false},
		{name: "string", value: "s", want: "s", wantOK: true},
		{name: "int", value: 42, want: "42", wantOK: true},
		{name: "float", value: 3.0, want: "3", wantOK: true},
		{name: "stringer", value: KindIf, want: "if", wantOK: true},
		{name: "string slice", value: []string{"a", "b"}, want: "a,b", wantOK: true},
		{name: "int slice", value: []int{1, 2}, want: "1,2", wantOK: true},
		{name: "nil pointer", value: (*account)(nil), want: "", wantOK: false},
		{name: "nil pointer with value String", value: (*time.Time)(nil), want: "", wantOK: false},
		{name: "nil error", value: error((*wrappedErr)(nil)), want: "", wantOK: false},
		{name: "float integer", value: 1000000.0, want: "1000000", wantOK: true},
		{name: "float large integer", value: 123456789.0, want: "123456789", wantOK: true},
		{name: "float fraction", value: 0.25, want: "0.25", wantOK: true},
		{name: "float32", value: float32(1.5), want: "1.5", wantOK: true},
		{name: "float exponent", value: 1e21, want: "1e+21", wantOK: true},
		{name: "float slice", value: []any{1000000.0, "x"}, want: "1000000,x", wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := stringify(tt.value)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
