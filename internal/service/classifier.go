package service

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Yomero3500/RegistroMicroServicio-sub000/internal/model"
)

// requirementRule fires when the question title matches the topic
// lexicon and the answer text matches either polarity lexicon. Title
// decides the topic, answer decides the polarity.
type requirementRule struct {
	tag      model.RequirementTag
	topic    []string
	positive []string
	negative []string
	weight   int  // contribution to the point balance when fired
	balance  bool // whether the firing feeds the regularity balance
}

// requirementRules is the ordered, data-driven rule table. New checks
// are added here, not in control flow.
var requirementRules = []requirementRule{
	{
		tag:      model.ReqPaymentsCurrent,
		topic:    []string{"pago", "cuota", "adeudo", "mensualidad", "colegiatura"},
		positive: []string{"al corriente", "pagado completo", "sin adeudo", "liquidado", "cubierto"},
		negative: []string{"debo", "pendiente", "atrasado", "falta pagar"},
		weight:   4,
		balance:  true,
	},
	{
		tag:      model.ReqGraduationFeesPaid,
		topic:    []string{"titulación", "titulacion", "gasto", "costo", "derecho"},
		positive: []string{"cubierto", "pagado", "liquidado", "completo", "realizado"},
		negative: []string{"falta", "pendiente", "no he", "aún no", "todavía no"},
		weight:   4,
		balance:  true,
	},
	{
		tag:      model.ReqESignatureValid,
		topic:    []string{"e.firma", "efirma", "firma electrónica", "fiel"},
		positive: []string{"vigente", "tengo", "tramitado", "actualizado", "válido", "obtuve"},
		negative: []string{"no tengo", "vencido", "sin tramitar", "falta", "pendiente"},
		weight:   4,
		balance:  true,
	},
	{
		tag:      model.ReqEnglishAccredited,
		topic:    []string{"inglés", "ingles", "english", "idioma"},
		positive: []string{"acreditado", "aprobado", "vigente", "válido", "certificado", "completado", "obtuve", "tengo"},
		negative: []string{"no", "pendiente", "falta", "aún no", "todavía no", "sin acreditar", "reprobado"},
		weight:   0,
		balance:  false,
	},
}

// termsCompletedPhrases fire on the answer text alone, no title gate
var termsCompletedPhrases = []string{
	"10 cuatrimestres",
	"diez cuatrimestres",
	"todos los cuatrimestres",
	"completé la carrera",
	"terminé todos",
	"100% de materias",
}

// progressLexicon maps progress keywords to their tier weight.
// Positive weights add to the positive side, negative to the negative.
type weightedKeyword struct {
	keyword string
	weight  int
}

var positiveLexicon = []weightedKeyword{
	{"excelente", 3}, {"sobresaliente", 3}, {"excepcional", 3}, {"perfecto", 3},
	{"completado", 2}, {"finalizado", 2}, {"terminado", 2}, {"aprobado", 2}, {"acreditado", 2}, {"exitoso", 2},
	{"bien", 1}, {"correcto", 1}, {"sin problema", 1}, {"entregado", 1}, {"cumplido", 1},
}

var negativeLexicon = []weightedKeyword{
	{"reprobado", 3}, {"rechazado", 3}, {"suspendido", 3}, {"cancelado", 3},
	{"atrasado", 2}, {"pendiente", 2}, {"incompleto", 2}, {"adeudo", 2},
	{"problema", 1}, {"dificultad", 1}, {"retraso", 1}, {"falta", 1},
}

// Generic exact-match tokens, consulted only when no other rule fired
var affirmativeTokens = map[string]bool{
	"sí": true, "si": true, "yes": true, "claro": true, "por supuesto": true, "afirmativo": true,
}

var negativeTokens = map[string]bool{
	"no": true, "ninguno": true, "ninguna": true, "negativo": true, "nada": true,
}

var ratingTitleKeywords = []string{"califica", "satisf", "evalua", "puntua"}

var bareNumberRe = regexp.MustCompile(`^[0-9]+([.,][0-9]+)?$`)

// PatternClassifier maps (question title, answer text) pairs to
// weighted progress signals and requirement hits. Stateless; safe for
// concurrent use.
type PatternClassifier struct {
	rules []requirementRule
}

// NewPatternClassifier returns a classifier over the default rules
func NewPatternClassifier() *PatternClassifier {
	return &PatternClassifier{rules: requirementRules}
}

// Classify evaluates one answer against the full rule table. Rules are
// independent; a single answer can fire several of them. The net weight
// is read through AnswerSignal.Weight, which clamps to [-10, +10].
func (c *PatternClassifier) Classify(questionTitle, answerText string) model.AnswerSignal {
	title := strings.ToLower(questionTitle)
	text := strings.ToLower(strings.TrimSpace(answerText))

	sig := model.AnswerSignal{Hits: make(map[model.RequirementTag]bool)}
	if text == "" {
		return sig
	}

	specific := false

	for _, rule := range c.rules {
		if !containsAny(title, rule.topic) {
			continue
		}
		// Negative lexicons carry the more specific phrases ("no
		// tengo" vs "tengo"), so polarity checks negatives first.
		if containsAny(text, rule.negative) {
			sig.Hits[rule.tag] = false
			if rule.balance {
				sig.Negative += rule.weight
			}
			specific = true
		} else if containsAny(text, rule.positive) {
			sig.Hits[rule.tag] = true
			if rule.balance {
				sig.Positive += rule.weight
			}
			specific = true
		}
	}

	if c.termsCompleted(title, text) {
		sig.Hits[model.ReqTermsCompleted] = true
		sig.Positive += 4
		specific = true
	}

	for _, kw := range positiveLexicon {
		if strings.Contains(text, kw.keyword) {
			sig.Positive += kw.weight
			specific = true
		}
	}
	for _, kw := range negativeLexicon {
		if strings.Contains(text, kw.keyword) {
			sig.Negative += kw.weight
			specific = true
		}
	}

	if value, ok := parseBareNumber(text); ok && containsAny(title, ratingTitleKeywords) {
		switch {
		case value >= 9:
			sig.Positive += 3
		case value >= 7:
			sig.Positive += 2
		case value >= 6:
			sig.Positive += 1
		case value >= 5:
			sig.Negative += 1
		default:
			sig.Negative += 2
		}
		specific = true
	}

	if !specific {
		if affirmativeTokens[text] {
			sig.Positive += 2
		} else if negativeTokens[text] {
			sig.Negative += 2
		}
	}

	return sig
}

// termsCompleted has no title gate for the phrase list; the literal
// "10" counts only when the title talks about terms.
func (c *PatternClassifier) termsCompleted(title, text string) bool {
	if containsAny(text, termsCompletedPhrases) {
		return true
	}
	if text == "10" && (strings.Contains(title, "cuatrimestre") || strings.Contains(title, "semestre")) {
		return true
	}
	return false
}

// NumericValue extracts the answer as a plain number, used for the
// per-cohort numeric-answer averages.
func NumericValue(answerText string) (float64, bool) {
	return parseBareNumber(strings.ToLower(strings.TrimSpace(answerText)))
}

func parseBareNumber(text string) (float64, bool) {
	if !bareNumberRe.MatchString(text) {
		return 0, false
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(text, ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
