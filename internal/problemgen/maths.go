package problemgen

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Maths topic ids.
const (
	TopicAdd      = "add"
	TopicSub      = "sub"
	TopicMul      = "mul"
	TopicDiv      = "div"
	TopicFraction = "frac"
	TopicDecimal  = "dec"
	TopicPercent  = "pct"
	TopicGeometry = "geom"
	TopicAlgebra  = "alg"
)

// AllTopics lists every maths topic in syllabus order.
var AllTopics = []string{
	TopicAdd, TopicSub, TopicMul, TopicDiv, TopicFraction,
	TopicDecimal, TopicPercent, TopicGeometry, TopicAlgebra,
}

var topicLabels = map[string]string{
	TopicAdd:      "Addition",
	TopicSub:      "Subtraction",
	TopicMul:      "Multiplication",
	TopicDiv:      "Division",
	TopicFraction: "Fractions",
	TopicDecimal:  "Decimals",
	TopicPercent:  "Percent",
	TopicGeometry: "Geometry",
	TopicAlgebra:  "Algebra",
}

// TopicLabel returns the display name of a topic id.
func TopicLabel(id string) string {
	if l, ok := topicLabels[id]; ok {
		return l
	}
	return id
}

// IsTopic reports whether id names a maths topic.
func IsTopic(id string) bool {
	_, ok := topicLabels[id]
	return ok
}

// Syllabus returns the topics taught up to the given grade.
func Syllabus(grade int) []string {
	var n int
	switch {
	case grade <= 2:
		n = 2
	case grade <= 3:
		n = 3
	case grade <= 5:
		n = 4
	case grade <= 6:
		n = 6
	case grade <= 7:
		n = 8
	default:
		n = len(AllTopics)
	}
	return slices.Clone(AllTopics[:n])
}

// MathGenerator builds arithmetic questions locally. Every answer is
// computed from the operands it chose, never parsed back from text.
type MathGenerator struct {
	rng *Rand
}

func NewMathGenerator(rng *Rand) *MathGenerator {
	if rng == nil {
		rng = NewRand()
	}
	return &MathGenerator{rng: rng}
}

func (g *MathGenerator) Generate(_ context.Context, in GenerateInput) (*Question, error) {
	topics := in.Topics
	if len(topics) == 0 {
		topics = Syllabus(in.Grade)
	}
	d := max(1, in.Difficulty)
	topic := Pick(g.rng, topics)

	text, answer := g.build(topic, in.Grade, d)
	return &Question{
		Topic:      topic,
		Text:       text,
		Format:     FormatMultipleChoice,
		Answer:     answer,
		Choices:    BuildOptions(answer, g.rng),
		Difficulty: d,
		Grade:      in.Grade,
	}, nil
}

func (g *MathGenerator) build(topic string, grade, d int) (text, answer string) {
	r := g.rng
	switch topic {
	case TopicSub:
		m := scale(addRange(grade), 0.25, d)
		a, b := r.Int(0, m), r.Int(0, m)
		if b > a {
			a, b = b, a
		}
		return fmt.Sprintf("%d − %d = ?", a, b), strconv.Itoa(a - b)

	case TopicMul:
		maxA := 35
		switch {
		case grade <= 3:
			maxA = 12
		case grade <= 5:
			maxA = 20
		}
		maxA = scale(maxA, 0.2, d)
		a, b := r.Int(2, maxA), r.Int(2, maxA)
		return fmt.Sprintf("%d × %d = ?", a, b), strconv.Itoa(a * b)

	case TopicDiv:
		maxB := 25
		if grade <= 5 {
			maxB = 12
		}
		maxB = scale(maxB, 0.2, d)
		b, q := r.Int(2, maxB), r.Int(2, maxB)
		return fmt.Sprintf("%d ÷ %d = ?", b*q, b), strconv.Itoa(q)

	case TopicFraction:
		den := r.Int(2, clampInt(6+d, 2, 15))
		a, b := r.Int(1, den-1), r.Int(1, den-1)
		return fmt.Sprintf("%d/%d + %d/%d = ? (as fraction)", a, den, b, den), fmt.Sprintf("%d/%d", a+b, den)

	case TopicDecimal:
		places := 2
		if grade <= 6 {
			places = 1
		}
		unit := pow10(places)
		m := clampInt(50+d*20, 50, 500) * unit
		a, b := r.Int(0, m), r.Int(0, m)
		if r.Int(0, 1) == 0 {
			return fmt.Sprintf("%s + %s = ?", fixed(a, places), fixed(b, places)), fixed(a+b, places)
		}
		if b > a {
			a, b = b, a
		}
		return fmt.Sprintf("%s − %s = ?", fixed(a, places), fixed(b, places)), fixed(a-b, places)

	case TopicPercent:
		pct := Pick(r, []int{5, 10, 12, 15, 20, 25, 50})
		base := r.Int(20, clampInt(200+d*50, 50, 1000))
		return fmt.Sprintf("%d%% of %d = ?", pct, base), fixed(pct*base, 2)

	case TopicGeometry:
		top := clampInt(15+d*3, 10, 60)
		a, b := r.Int(2, top), r.Int(2, top)
		if r.Int(0, 1) == 0 {
			return fmt.Sprintf("Area of rectangle: %d × %d = ?", a, b), strconv.Itoa(a * b)
		}
		return fmt.Sprintf("Perimeter of rectangle (L=%d, W=%d) = ?", a, b), strconv.Itoa(2 * (a + b))

	case TopicAlgebra:
		if r.Int(0, 1) == 0 {
			x := r.Int(1, clampInt(10+5*d, 10, 50))
			a := r.Int(1, clampInt(20+5*d, 20, 80))
			return fmt.Sprintf("Solve: x + %d = %d", a, x+a), strconv.Itoa(x)
		}
		x := r.Int(1, clampInt(10+4*d, 10, 40))
		a := r.Int(2, clampInt(12+2*d, 8, 30))
		return fmt.Sprintf("Solve: %dx = %d", a, a*x), strconv.Itoa(x)

	default: // TopicAdd
		m := scale(addRange(grade), 0.25, d)
		a, b := r.Int(0, m), r.Int(0, m)
		return fmt.Sprintf("%d + %d = ?", a, b), strconv.Itoa(a + b)
	}
}

func addRange(grade int) int {
	switch {
	case grade <= 2:
		return 20
	case grade <= 5:
		return 200
	default:
		return 999
	}
}

// scale grows n by step per difficulty tier above 1.
func scale(n int, step float64, d int) int {
	return int(float64(n) * (1 + step*float64(d-1)))
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

func pow10(n int) int {
	p := 1
	for range n {
		p *= 10
	}
	return p
}

// fixed renders v / 10^places with trailing zeros trimmed.
func fixed(v, places int) string {
	unit := pow10(places)
	s := fmt.Sprintf("%d.%0*d", v/unit, places, v%unit)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
