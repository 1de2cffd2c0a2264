package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidTitle(t *testing.T) {
	valid := []string{
		"Le Petit Prince",
		"1984",
		"L'Étranger",
		"Harry Potter: tome 1 (édition révisée)",
		"Qui a peur de Virginia Woolf?",
		"Vingt-quatre heures, d'une femme",
	}
	for _, s := range valid {
		assert.True(t, ValidTitle(s), "expected valid title: %q", s)
	}

	invalid := []string{
		"",
		"   ",
		"\t\n",
		"Book #1",
		"50% off",
		"a+b",
		"livre_souligné",
		"prix: 10€",
	}
	for _, s := range invalid {
		assert.False(t, ValidTitle(s), "expected invalid title: %q", s)
	}
}

func TestValidPersonName(t *testing.T) {
	valid := []string{
		"Martin",
		"Jean Pierre",
		"Éva",
		"François",
		"Müller",
		"de la Fontaine",
	}
	for _, s := range valid {
		assert.True(t, ValidPersonName(s), "expected valid name: %q", s)
	}

	invalid := []string{
		"",
		"   ",
		"Martin2",
		"O'Brien",
		"Jean-Pierre",
		"M. Dupont",
	}
	for _, s := range invalid {
		assert.False(t, ValidPersonName(s), "expected invalid name: %q", s)
	}
}

func TestValidEmail(t *testing.T) {
	valid := []string{
		"eva@example.com",
		"first.last@example",
		"user+tag@sub.domain.org",
		"a_b-c@x",
	}
	for _, s := range valid {
		assert.True(t, ValidEmail(s), "expected valid email: %q", s)
	}

	invalid := []string{
		"",
		"   ",
		"no-at-sign",
		"@example.com",
		"user@",
		"user name@example.com",
	}
	for _, s := range invalid {
		assert.False(t, ValidEmail(s), "expected invalid email: %q", s)
	}
}

func TestValidPhone(t *testing.T) {
	assert.True(t, ValidPhone("12345678"))
	assert.True(t, ValidPhone("00000000"))

	invalid := []string{
		"",
		"1234567",
		"123456789",
		"1234567a",
		"12 34 56 78",
		"１２３４５６７８", // full-width digits are not ASCII
	}
	for _, s := range invalid {
		assert.False(t, ValidPhone(s), "expected invalid phone: %q", s)
	}
}

func TestValidCopyCount(t *testing.T) {
	assert.True(t, ValidCopyCount(0))
	assert.True(t, ValidCopyCount(3))
	assert.False(t, ValidCopyCount(-1))
}

func TestErrorMessage(t *testing.T) {
	err := NewError("title", "contains unsupported characters")
	assert.Equal(t, "title: contains unsupported characters", err.Error())
}
