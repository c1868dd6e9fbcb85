package condition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate_EmptyExpression(t *testing.T) {
	for _, expr := range []string{"", "   ", "\t\n"} {
		got, err := Evaluate(expr, nil)
		require.NoError(t, err)
		assert.True(t, got, "blank expression must not gate")
	}
}

func TestEvaluate_Comparisons(t *testing.T) {
	facts := map[string]bool{"visa_required": true, "fee_paid": false}

	tests := []struct {
		expr string
		want bool
	}{
		{"visa_required == true", true},
		{"visa_required == false", false},
		{"visa_required != false", true},
		{"fee_paid == false", true},
		{"fee_paid != true", true},
		{"fee_paid == true", false},
		// Absent facts are treated as false before comparing.
		{"missing == true", false},
		{"missing == false", true},
		{"missing != true", true},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := Evaluate(tt.expr, facts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluate_BareFacts(t *testing.T) {
	facts := map[string]bool{"a": true, "b": false}

	tests := []struct {
		expr string
		want bool
	}{
		{"a", true},
		{"b", false},
		{"true", true},
		{"false", false},
		// Absent bare facts are undefined; an undefined result blocks.
		{"ghost", false},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := Evaluate(tt.expr, facts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluate_Combinations(t *testing.T) {
	facts := map[string]bool{"a": true, "b": false}

	tests := []struct {
		expr string
		want bool
	}{
		{"a && b", false},
		{"a || b", true},
		{"b || b", false},
		{"a && a", true},
		{"a == true && b == false", true},
		{"a == false || b == false", true},
		{"(a || b) && a", true},
		{"(a && b) || b", false},
		// Undefined propagates per short-circuit rules.
		{"ghost && b", false}, // false wins over undefined
		{"ghost || a", true},  // true wins over undefined
		{"ghost && a", false}, // undefined result blocks
		{"ghost || b", false},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := Evaluate(tt.expr, facts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluate_FailsOpenOnMalformedExpression(t *testing.T) {
	malformed := []string{
		"a &&",
		"== true",
		"a = true",
		"a == maybe",
		"a ! b",
		"(a || b",
		"a && && b",
		"a # b",
	}

	for _, expr := range malformed {
		t.Run(expr, func(t *testing.T) {
			got, err := Evaluate(expr, map[string]bool{"a": false})
			assert.Error(t, err, "malformed expression should surface a diagnostic")
			assert.True(t, got, "malformed expression must fail open")
		})
	}
}

func TestMustParse(t *testing.T) {
	assert.NoError(t, MustParse(""))
	assert.NoError(t, MustParse("a == true && (b || c)"))
	assert.Error(t, MustParse("a =="))
}
