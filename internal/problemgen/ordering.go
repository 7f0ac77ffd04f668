package problemgen

import (
	"context"
	"fmt"
	"strings"
)

// Arrow joins ordered steps for display and mistake review.
const Arrow = " → "

// JoinSteps renders an ordering as a single line.
func JoinSteps(steps []string) string {
	return strings.Join(steps, Arrow)
}

// ArtGenerator asks the player to order the steps of making a picture.
type ArtGenerator struct {
	rng *Rand
}

func NewArtGenerator(rng *Rand) *ArtGenerator {
	if rng == nil {
		rng = NewRand()
	}
	return &ArtGenerator{rng: rng}
}

func (g *ArtGenerator) Generate(_ context.Context, in GenerateInput) (*Question, error) {
	band := artBand(in.Grade)
	steps := Pick(g.rng, band.steps)
	prompt := Pick(g.rng, band.prompts)
	medium := Pick(g.rng, band.mediums)
	return orderingQuestion(g.rng, "art", in.Grade,
		fmt.Sprintf(`Arrange the steps for making: "%s" (%s)`, prompt, medium), steps), nil
}

type artTemplates struct {
	steps   [][]string
	mediums []string
	prompts []string
}

var artBands = []artTemplates{
	{
		steps: [][]string{
			{"Choose subject", "Sketch", "Color", "Finish"},
			{"Pick crayons", "Outline", "Color", "Add details"},
			{"Draw shapes", "Outline", "Color", "Show to teacher"},
		},
		mediums: []string{"Crayons", "Pencil", "Color pencils"},
		prompts: []string{"A sun and clouds", "A happy house", "A fish in water", "A cute cat"},
	},
	{
		steps: [][]string{
			{"Choose subject", "Light sketch", "Outline", "Base colors", "Details", "Finish"},
			{"Reference idea", "Sketch", "Clean outline", "Base color", "Shading", "Highlights"},
			{"Plan composition", "Sketch", "Outline", "Color", "Add texture", "Final touch"},
		},
		mediums: []string{"Color pencils", "Crayons", "Watercolor", "Sketch pen"},
		prompts: []string{"A tree in a park", "A festival scene", "A cartoon character", "A mountain view"},
	},
	{
		steps: [][]string{
			{"Reference", "Thumbnail sketch", "Final sketch", "Line art", "Base colors", "Shading", "Highlights", "Final polish"},
			{"Idea", "Composition", "Sketch", "Outline", "Values (light/dark)", "Color", "Details", "Finish"},
			{"Concept", "Rough sketch", "Clean sketch", "Inking", "Flat colors", "Shadows", "Highlights", "Background"},
			{"Brief", "Moodboard", "Sketch", "Refine", "Base", "Shading", "Highlights", "Export/Finish"},
		},
		mediums: []string{"Pencil", "Watercolor", "Poster colors", "Digital", "Ink", "Acrylic"},
		prompts: []string{"A street scene", "A portrait", "A futuristic robot", "A fantasy landscape", "A still life"},
	},
}

func artBand(grade int) artTemplates {
	switch {
	case grade <= 2:
		return artBands[0]
	case grade <= 5:
		return artBands[1]
	default:
		return artBands[2]
	}
}

// CodeGenerator asks the player to order the lines of a short program.
type CodeGenerator struct {
	rng *Rand
}

func NewCodeGenerator(rng *Rand) *CodeGenerator {
	if rng == nil {
		rng = NewRand()
	}
	return &CodeGenerator{rng: rng}
}

type codePuzzle struct {
	title string
	lines []string
}

var codeBands = [][]codePuzzle{
	{
		{"Print Hello", []string{`print("Hello")`}},
		{"Print two lines", []string{`print("Hi")`, `print("Bye")`}},
		{"Make a simple message", []string{`msg = "Good Morning"`, `print(msg)`}},
	},
	{
		{"Print 1 to 3", []string{`for i in range(1, 4):`, `  print(i)`}},
		{"Print Hello 3 times", []string{`for i in range(3):`, `  print("Hello")`}},
		{"Sum of 1..3", []string{`sum = 0`, `for i in range(1, 4):`, `  sum = sum + i`, `print(sum)`}},
	},
	{
		{"If age >= 18 print Adult else Kid", []string{`age = 18`, `if age >= 18:`, `  print("Adult")`, `else:`, `  print("Kid")`}},
		{"Function add(a,b) then print add(2,3)", []string{`def add(a, b):`, `  return a + b`, `print(add(2, 3))`}},
		{"Check even or odd", []string{`n = 10`, `if n % 2 == 0:`, `  print("Even")`, `else:`, `  print("Odd")`}},
	},
}

func (g *CodeGenerator) Generate(_ context.Context, in GenerateInput) (*Question, error) {
	band := codeBands[2]
	switch {
	case in.Grade <= 3:
		band = codeBands[0]
	case in.Grade <= 6:
		band = codeBands[1]
	}
	p := Pick(g.rng, band)
	return orderingQuestion(g.rng, "code", in.Grade, "Arrange the code: "+p.title, p.lines), nil
}

func orderingQuestion(r *Rand, topic string, grade int, text string, steps []string) *Question {
	return &Question{
		Topic:  topic,
		Text:   text,
		Format: FormatOrdering,
		Answer: JoinSteps(steps),
		Steps:  append([]string(nil), steps...),
		Pieces: shuffled(r, steps),
		Grade:  grade,
	}
}
