package blobname

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
)

type NormalizeTestSuite struct {
	suite.Suite
}

func (s *NormalizeTestSuite) TestNormalize() {
	tests := []struct {
		raw      string
		expected string
	}{
		{"path/to/somewhere", "path/to/somewhere"},
		{"path/to/../somewhere", "path/somewhere"},
		{"path/to/../", "path"},
		{`path\to\..\`, "path"},
		{"path/name/", "path/name"},
		{`path\to\somewhere`, "path/to/somewhere"},
		{"some/$/path", "some/path"},
		{"/$/path", "path"},
		{"path/$/", "path"},
		{"some///path", "some/path"},
		{"some//path", "some/path"},
		{`some\\path`, "some/path"},
		{"//$//a//$//", "a"},
		{"some path/some long name & then some.txt", "some_path/some_long_name__then_some.txt"},
		{"...hidden", "hidden"},
		{"trailing.dots...", "trailing.dots"},
		{"../a/b", "a/b"},
		{"a/../../b", "b"},
		{strings.Repeat("a", 1024), strings.Repeat("a", 1024)},
		{strings.Repeat("a/a", 256), strings.Repeat("a/a", 256)},
	}

	for _, tt := range tests {
		got, err := Normalize(tt.raw)
		s.NoError(err, "raw name %q should normalize cleanly", tt.raw)
		s.Equal(tt.expected, got, "raw name %q", tt.raw)
	}
}

func (s *NormalizeTestSuite) TestNormalize_Rejections() {
	rejects := []string{
		"",
		"/",
		"/../",
		"..",
		"///",
		"!!!",
		strings.Repeat("a", 1025),
		strings.Repeat("a/a", 257),
		"$%^&*",
		"./././",
	}

	for _, raw := range rejects {
		_, err := Normalize(raw)
		s.Error(err, "raw name %q should be rejected", raw)

		var nameErr *InvalidNameError
		s.True(errors.As(err, &nameErr), "raw name %q should fail with *InvalidNameError", raw)
	}
}

func (s *NormalizeTestSuite) TestNormalize_Idempotent() {
	raws := []string{
		"//$//a//$//",
		"some path/some long name & then some.txt",
		`path\to\..\somewhere`,
		"path/to/../",
		"a/b/c/d.txt",
		"über/straße.txt",
		" leading and trailing ",
	}

	for _, raw := range raws {
		once, err := Normalize(raw)
		s.NoError(err)
		twice, err := Normalize(once)
		s.NoError(err, "canonical name %q should re-normalize cleanly", once)
		s.Equal(once, twice, "normalization of %q should be idempotent", raw)
	}
}

func (s *NormalizeTestSuite) TestNormalize_UnicodePreserved() {
	got, err := Normalize("documents/résumé (final).pdf")
	s.NoError(err)
	s.Equal("documents/résumé_final.pdf", got)

	got, err = Normalize("数据/文件.txt")
	s.NoError(err)
	s.Equal("数据/文件.txt", got)
}

func (s *NormalizeTestSuite) TestNormalize_SeparatorCanonicalization() {
	fromBackslashes, err := Normalize(`path\to\somewhere`)
	s.NoError(err)
	fromSlashes, err := Normalize("path/to/somewhere")
	s.NoError(err)
	s.Equal(fromSlashes, fromBackslashes)
}

func (s *NormalizeTestSuite) TestNormalize_NeverEscapesRoot() {
	for _, raw := range []string{"../../../etc/passwd", "a/../../..", "..\\..\\x"} {
		got, err := Normalize(raw)
		if err != nil {
			continue
		}
		s.NotContains(got, "..", "raw name %q must not traverse upward", raw)
		s.False(strings.HasPrefix(got, "/"), "raw name %q must not be absolute", raw)
	}
}

func (s *NormalizeTestSuite) TestNormalizeWithLimit() {
	_, err := NormalizeWithLimit(strings.Repeat("a", 101), 100)
	s.Error(err)

	got, err := NormalizeWithLimit(strings.Repeat("a", 100), 100)
	s.NoError(err)
	s.Len(got, 100)

	// limit counts characters, not bytes
	got, err = NormalizeWithLimit(strings.Repeat("ü", 10), 10)
	s.NoError(err)
	s.Equal(strings.Repeat("ü", 10), got)
}

func TestNormalize(t *testing.T) {
	suite.Run(t, new(NormalizeTestSuite))
}
