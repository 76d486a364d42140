package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"jobradar/internal/domain"
)

func TestResumeFilterDefaults(t *testing.T) {
	f := NewResumeFilter(nil)

	cases := []struct {
		name    string
		title   string
		summary string
		want    bool
	}{
		{"in-stack role", "Graduate Software Engineer", "C#, Python and AWS", true},
		{"flutter excluded", "Junior Mobile Developer", "built with Flutter", false},
		{"ios excluded from title", "Graduate iOS Developer", "", false},
		{"php excluded", "Junior Developer", "LAMP stack with PHP", false},
		{"word boundary protects substrings", "Junior Developer", "work on sapling growth models", true},
		{"objective-c excluded", "Graduate Developer", "some Objective-C maintenance", false},
		{"no summary", "Junior Web Developer", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := f.Fits(domain.Listing{Title: tc.title, Summary: tc.summary})
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestResumeFilterBlankTermsFallBack(t *testing.T) {
	// a non-empty list that trims to nothing must not compile to a
	// match-everything pattern
	for _, terms := range [][]string{nil, {}, {""}, {" ", "\t"}} {
		f := NewResumeFilter(terms)
		assert.True(t, f.Fits(domain.Listing{Title: "Graduate Software Engineer"}),
			"terms %q should behave like the defaults", terms)
		assert.False(t, f.Fits(domain.Listing{Title: "Flutter Developer"}),
			"terms %q should behave like the defaults", terms)
	}
}

func TestResumeFilterCustomTerms(t *testing.T) {
	f := NewResumeFilter([]string{"golang"})

	assert.False(t, f.Fits(domain.Listing{Title: "Golang Developer"}))
	// custom list replaces the defaults wholesale
	assert.True(t, f.Fits(domain.Listing{Title: "Flutter Developer"}))
}
