package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Yomero3500/RegistroMicroServicio-sub000/internal/model"
)

func TestClassifyESignatureVigente(t *testing.T) {
	c := NewPatternClassifier()

	sig := c.Classify("¿Cuentas con tu E.FIRMA vigente?", "ya tengo mi e.firma vigente")

	assert.Equal(t, 4, sig.Weight())
	satisfied, ok := sig.Hits[model.ReqESignatureValid]
	assert.True(t, ok)
	assert.True(t, satisfied)
}

func TestClassifyNegativeBeatsPositiveSubstring(t *testing.T) {
	c := NewPatternClassifier()

	// "no tengo" contains "tengo"; the negative phrase must win.
	sig := c.Classify("Estado de tu e.firma", "no tengo e.firma, está vencido")

	assert.Equal(t, -4, sig.Weight())
	satisfied, ok := sig.Hits[model.ReqESignatureValid]
	assert.True(t, ok)
	assert.False(t, satisfied)
}

func TestClassifyProgressTiers(t *testing.T) {
	c := NewPatternClassifier()

	cases := []struct {
		text   string
		weight int
	}{
		{"excelente", 3},
		{"aprobado", 2},
		{"bien", 1},
		{"reprobado", -3},
		{"atrasado", -2},
		{"retraso", -1},
	}
	for _, tc := range cases {
		sig := c.Classify("¿Cómo va tu avance en la carrera?", tc.text)
		assert.Equal(t, tc.weight, sig.Weight(), "text %q", tc.text)
	}
}

func TestClassifyNumericRating(t *testing.T) {
	c := NewPatternClassifier()

	cases := []struct {
		text   string
		weight int
	}{
		{"9", 3},
		{"10", 3},
		{"7", 2},
		{"6", 1},
		{"5", -1},
		{"3", -2},
	}
	for _, tc := range cases {
		sig := c.Classify("Califica tu experiencia del 1 al 10", tc.text)
		assert.Equal(t, tc.weight, sig.Weight(), "rating %q", tc.text)
	}

	// Without a rating title the bare number carries no weight.
	sig := c.Classify("¿Tienes algún comentario?", "9")
	assert.Equal(t, 0, sig.Weight())
}

func TestClassifyGenericTokensOnlyWithoutSpecificMatch(t *testing.T) {
	c := NewPatternClassifier()

	assert.Equal(t, 2, c.Classify("¿Tienes algún comentario?", "sí").Weight())
	assert.Equal(t, -2, c.Classify("¿Tienes algún comentario?", "no").Weight())

	// A specific tier word suppresses the generic fallback.
	sig := c.Classify("¿Cómo vas?", "bien")
	assert.Equal(t, 1, sig.Weight())
}

func TestClassifyTermsCompleted(t *testing.T) {
	c := NewPatternClassifier()

	sig := c.Classify("Avance de la carrera", "terminé los 10 cuatrimestres")
	assert.Equal(t, 4, sig.Weight())
	assert.True(t, sig.Hits[model.ReqTermsCompleted])

	// A literal "10" only counts when the title talks about terms.
	sig = c.Classify("¿Cuántos cuatrimestres has cursado?", "10")
	assert.Equal(t, 4, sig.Weight())
	assert.True(t, sig.Hits[model.ReqTermsCompleted])

	sig = c.Classify("¿Cuántas materias llevas?", "10")
	assert.False(t, sig.Hits[model.ReqTermsCompleted])
}

func TestClassifyEnglishOutsideBalance(t *testing.T) {
	c := NewPatternClassifier()

	sig := c.Classify("¿Has acreditado el inglés?", "sí, acreditado")

	satisfied, ok := sig.Hits[model.ReqEnglishAccredited]
	assert.True(t, ok)
	assert.True(t, satisfied)
	// Only the tier word contributes; the requirement itself weighs zero.
	assert.Equal(t, 2, sig.Weight())
}

func TestClassifyWeightClamped(t *testing.T) {
	c := NewPatternClassifier()

	sig := c.Classify("Avance", "excelente sobresaliente excepcional perfecto completado finalizado")
	assert.Equal(t, 10, sig.Weight())

	sig = c.Classify("Avance", "reprobado rechazado suspendido cancelado atrasado pendiente")
	assert.Equal(t, -10, sig.Weight())
}

func TestClassifyEmptyAnswer(t *testing.T) {
	c := NewPatternClassifier()

	sig := c.Classify("¿Cómo vas?", "   ")
	assert.Equal(t, 0, sig.Weight())
	assert.Empty(t, sig.Hits)
}

func TestNumericValue(t *testing.T) {
	v, ok := NumericValue(" 8,5 ")
	assert.True(t, ok)
	assert.Equal(t, 8.5, v)

	_, ok = NumericValue("ocho")
	assert.False(t, ok)
}
