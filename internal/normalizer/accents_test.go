package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "Accented city", input: "São Paulo", expected: "sao paulo"},
		{name: "Upper case", input: "AAA", expected: "aaa"},
		{name: "Cedilla and tilde", input: "CONSULTÓRIO Coração", expected: "consultorio coracao"},
		{name: "Surrounding whitespace", input: "  Raio-X \t\n", expected: "raio-x"},
		{name: "Empty", input: "", expected: ""},
		{name: "Only spaces", input: "   ", expected: ""},
		{name: "Digits untouched", input: "10101012", expected: "10101012"},
		{name: "Inner spacing kept", input: "Consulta  em", expected: "consulta  em"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Normalize(tc.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"São Paulo",
		"Ambulatorial + Hospitalar com Obstetrícia",
		"ÀÉÎÕÜ çñ",
		"  Eletrocardiograma   convencional  ",
		"İstanbul",
		"",
	}

	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestTerms(t *testing.T) {
	assert.Equal(t, []string{"consulta", "em", "consultorio"}, Terms("  Consulta   em\tconsultório "))
	assert.Empty(t, Terms(""))
	assert.Empty(t, Terms(" \t "))
}

func TestContainsAll(t *testing.T) {
	haystack := Normalize("Consulta em consultório")

	assert.True(t, ContainsAll(haystack, Terms("consulta consul")))
	assert.False(t, ContainsAll(haystack, Terms("consulta raio-x")))
	assert.True(t, ContainsAll(haystack, nil))
}

func TestIsDigits(t *testing.T) {
	assert.True(t, IsDigits("0123"))
	assert.False(t, IsDigits(""))
	assert.False(t, IsDigits("12a"))
	assert.False(t, IsDigits("１２")) // fullwidth digits are not ASCII
}
