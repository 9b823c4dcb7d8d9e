package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"systest/internal/domain"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestValidator_Validate(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		actual   string
		match    bool
	}{
		{
			name:     "identical documents",
			expected: "gpgga:\n  latitude: 41.5\n  fix: true\n",
			actual:   "gpgga:\n  latitude: 41.5\n  fix: true\n",
			match:    true,
		},
		{
			name:     "mapping order does not matter",
			expected: "a: 1\nb: 2\nc: [x, y]\n",
			actual:   "c: [x, y]\nb: 2\na: 1\n",
			match:    true,
		},
		{
			name:     "sequence order matters",
			expected: "sentences: [1, 2, 3]\n",
			actual:   "sentences: [3, 2, 1]\n",
			match:    false,
		},
		{
			name:     "different value",
			expected: "gpgga:\n  satellites: 8\n",
			actual:   "gpgga:\n  satellites: 7\n",
			match:    false,
		},
		{
			name:     "missing key",
			expected: "a: 1\nb: 2\n",
			actual:   "a: 1\n",
			match:    false,
		},
		{
			name:     "integer equals float of same value",
			expected: "gpgga:\n  altitude: 12\n  hdop: [1, 2.0]\n",
			actual:   "gpgga:\n  altitude: 12.0\n  hdop: [1.0, 2]\n",
			match:    true,
		},
		{
			name:     "integer differs from float",
			expected: "altitude: 12\n",
			actual:   "altitude: 12.5\n",
			match:    false,
		},
		{
			name:     "number does not equal string",
			expected: "altitude: 12\n",
			actual:   "altitude: \"12\"\n",
			match:    false,
		},
		{
			name:     "both empty",
			expected: "",
			actual:   "",
			match:    true,
		},
	}

	v := NewValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			expected := writeFile(t, dir, "expected.yaml", tt.expected)
			actual := writeFile(t, dir, "actual.yaml", tt.actual)

			outcome, err := v.Validate(expected, actual)
			require.NoError(t, err)
			assert.Equal(t, tt.match, outcome.Match)
			if tt.match {
				assert.Empty(t, outcome.Diff)
			} else {
				assert.NotEmpty(t, outcome.Diff)
				assert.NotNil(t, outcome.Expected)
			}
		})
	}
}

func TestValidator_MissingFiles(t *testing.T) {
	dir := t.TempDir()
	present := writeFile(t, dir, "present.yaml", "a: 1\n")
	missing := filepath.Join(dir, "missing.yaml")

	v := NewValidator()

	_, err := v.Validate(missing, present)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfig)
	assert.Contains(t, err.Error(), "validation file")

	_, err = v.Validate(present, missing)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfig)
	assert.Contains(t, err.Error(), "output file")
}

func TestValidator_MalformedOutput(t *testing.T) {
	dir := t.TempDir()
	expected := writeFile(t, dir, "expected.yaml", "a: 1\n")
	actual := writeFile(t, dir, "actual.yaml", "a: [1, 2\n")

	_, err := NewValidator().Validate(expected, actual)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrConfig)
}

func TestRender(t *testing.T) {
	out := Render(map[string]interface{}{"gpgga": map[string]interface{}{"fix": true}})
	assert.Equal(t, "gpgga:\n    fix: true\n", out)
}
