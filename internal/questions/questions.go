// Package questions generates randomized multiple-choice maths questions
// covering multiplication tables and a representative slice of the Year 7
// curriculum. Each question kind is an explicit tag mapped to a generator
// function.
package questions

import (
	"fmt"
	"math/rand"
	"strconv"

	"github.com/google/uuid"
)

// Kind tags one question type.
type Kind string

const (
	KindMultiplication  Kind = "multiplication"
	KindAddIntegers     Kind = "add_integers"
	KindSubIntegers     Kind = "subtract_integers"
	KindPrimeComposite  Kind = "prime_or_composite"
	KindHCF             Kind = "highest_common_factor"
	KindLCM             Kind = "lowest_common_multiple"
	KindRoundDecimal    Kind = "round_decimal"
	KindAddFractions    Kind = "add_fractions"
	KindSimplifyFrac    Kind = "simplify_fraction"
	KindPercentOf       Kind = "percent_of"
	KindSquareRoot      Kind = "square_root"
	KindExponent        Kind = "exponent"
	KindUnitRate        Kind = "unit_rate"
	KindOrderOfOps      Kind = "order_of_operations"
)

// Question is one generated multiple-choice item. Options contains the
// answer plus distinct distractors, shuffled. Numeric kinds emit four
// options; prime_or_composite emits its two.
type Question struct {
	ID          uuid.UUID `json:"id"`
	Kind        Kind      `json:"kind"`
	Prompt      string    `json:"prompt"`
	Options     []string  `json:"options"`
	Answer      string    `json:"answer"`
	Explanation string    `json:"explanation,omitempty"`
}

type generator func(rng *rand.Rand) Question

var generators = map[Kind]generator{
	KindMultiplication: genMultiplication,
	KindAddIntegers:    genAddIntegers,
	KindSubIntegers:    genSubIntegers,
	KindPrimeComposite: genPrimeComposite,
	KindHCF:            genHCF,
	KindLCM:            genLCM,
	KindRoundDecimal:   genRoundDecimal,
	KindAddFractions:   genAddFractions,
	KindSimplifyFrac:   genSimplifyFraction,
	KindPercentOf:      genPercentOf,
	KindSquareRoot:     genSquareRoot,
	KindExponent:       genExponent,
	KindUnitRate:       genUnitRate,
	KindOrderOfOps:     genOrderOfOps,
}

// Kinds lists every supported question kind in a stable order.
func Kinds() []Kind {
	return []Kind{
		KindMultiplication, KindAddIntegers, KindSubIntegers,
		KindPrimeComposite, KindHCF, KindLCM, KindRoundDecimal,
		KindAddFractions, KindSimplifyFrac, KindPercentOf,
		KindSquareRoot, KindExponent, KindUnitRate, KindOrderOfOps,
	}
}

// Valid reports whether k names a supported kind.
func Valid(k Kind) bool {
	_, ok := generators[k]
	return ok
}

// Generate produces one question of the given kind.
func Generate(k Kind, rng *rand.Rand) (Question, error) {
	gen, ok := generators[k]
	if !ok {
		return Question{}, fmt.Errorf("unknown question kind %q", k)
	}
	return gen(rng), nil
}

// GenerateQuiz produces count questions. With an empty kind each question
// draws a random kind.
func GenerateQuiz(k Kind, count int, rng *rand.Rand) ([]Question, error) {
	if count < 1 || count > 100 {
		return nil, fmt.Errorf("question count %d out of range", count)
	}
	all := Kinds()
	out := make([]Question, 0, count)
	for i := 0; i < count; i++ {
		kind := k
		if kind == "" {
			kind = all[rng.Intn(len(all))]
		}
		q, err := Generate(kind, rng)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, nil
}

// Table produces count questions from one multiplication table, the
// classic times-tables drill.
func Table(table, count int, rng *rand.Rand) ([]Question, error) {
	if table < 1 || table > 12 {
		return nil, fmt.Errorf("multiplication table %d out of range", table)
	}
	if count < 1 || count > 100 {
		return nil, fmt.Errorf("question count %d out of range", count)
	}
	out := make([]Question, 0, count)
	for i := 0; i < count; i++ {
		multiplier := rng.Intn(12) + 1
		answer := table * multiplier
		out = append(out, newQuestion(KindMultiplication, rng,
			fmt.Sprintf("%d × %d = ?", table, multiplier),
			answer,
			fmt.Sprintf("%d × %d = %d", table, multiplier, answer)))
	}
	return out, nil
}

// newQuestion builds an item with a numeric answer and three nearby
// distinct distractors.
func newQuestion(kind Kind, rng *rand.Rand, prompt string, answer int, explanation string) Question {
	seen := map[int]bool{answer: true}
	options := []string{strconv.Itoa(answer)}
	for len(options) < 4 {
		offset := rng.Intn(10) + 1
		if rng.Intn(2) == 0 {
			offset = -offset
		}
		wrong := answer + offset
		if (answer >= 0 && wrong < 0) || seen[wrong] {
			continue
		}
		seen[wrong] = true
		options = append(options, strconv.Itoa(wrong))
	}
	rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return Question{
		ID:          uuid.New(),
		Kind:        kind,
		Prompt:      prompt,
		Options:     options,
		Answer:      strconv.Itoa(answer),
		Explanation: explanation,
	}
}

func genMultiplication(rng *rand.Rand) Question {
	a := rng.Intn(12) + 1
	b := rng.Intn(12) + 1
	return newQuestion(KindMultiplication, rng,
		fmt.Sprintf("%d × %d = ?", a, b), a*b,
		fmt.Sprintf("%d × %d = %d", a, b, a*b))
}

func genAddIntegers(rng *rand.Rand) Question {
	a := rng.Intn(41) - 20
	b := rng.Intn(41) - 20
	return newQuestion(KindAddIntegers, rng,
		fmt.Sprintf("%d + (%d) = ?", a, b), a+b,
		fmt.Sprintf("%d + (%d) = %d", a, b, a+b))
}

func genSubIntegers(rng *rand.Rand) Question {
	a := rng.Intn(41) - 20
	b := rng.Intn(41) - 20
	return newQuestion(KindSubIntegers, rng,
		fmt.Sprintf("%d - (%d) = ?", a, b), a-b,
		fmt.Sprintf("%d - (%d) = %d", a, b, a-b))
}

func genPrimeComposite(rng *rand.Rand) Question {
	n := rng.Intn(98) + 2
	answer := "composite"
	if isPrime(n) {
		answer = "prime"
	}
	options := []string{"prime", "composite"}
	rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return Question{
		ID:      uuid.New(),
		Kind:    KindPrimeComposite,
		Prompt:  fmt.Sprintf("Is %d prime or composite?", n),
		Options: options,
		Answer:  answer,
	}
}

func genHCF(rng *rand.Rand) Question {
	base := rng.Intn(9) + 2
	a := base * (rng.Intn(6) + 2)
	b := base * (rng.Intn(6) + 2)
	answer := gcd(a, b)
	return newQuestion(KindHCF, rng,
		fmt.Sprintf("What is the highest common factor of %d and %d?", a, b),
		answer,
		fmt.Sprintf("HCF(%d, %d) = %d", a, b, answer))
}

func genLCM(rng *rand.Rand) Question {
	a := rng.Intn(11) + 2
	b := rng.Intn(11) + 2
	answer := a * b / gcd(a, b)
	return newQuestion(KindLCM, rng,
		fmt.Sprintf("What is the lowest common multiple of %d and %d?", a, b),
		answer,
		fmt.Sprintf("LCM(%d, %d) = %d", a, b, answer))
}

func genRoundDecimal(rng *rand.Rand) Question {
	whole := rng.Intn(90) + 10
	tenth := rng.Intn(9) + 1
	value := fmt.Sprintf("%d.%d", whole, tenth)
	answer := whole
	if tenth >= 5 {
		answer++
	}
	return newQuestion(KindRoundDecimal, rng,
		fmt.Sprintf("Round %s to the nearest whole number.", value), answer, "")
}

func genAddFractions(rng *rand.Rand) Question {
	denom := []int{4, 5, 6, 8, 10, 12}[rng.Intn(6)]
	a := rng.Intn(denom-2) + 1
	b := rng.Intn(denom-a) + 1
	answer := a + b
	return newQuestion(KindAddFractions, rng,
		fmt.Sprintf("%d/%d + %d/%d = ?/%d", a, denom, b, denom, denom),
		answer,
		fmt.Sprintf("Same denominator, so add the numerators: %d + %d = %d", a, b, answer))
}

func genSimplifyFraction(rng *rand.Rand) Question {
	factor := rng.Intn(4) + 2
	num := rng.Intn(5) + 1
	den := num + rng.Intn(5) + 1
	prompt := fmt.Sprintf("Simplify %d/%d. What is the numerator in lowest terms?", num*factor, den*factor)
	g := gcd(num, den)
	return newQuestion(KindSimplifyFrac, rng, prompt, num/g,
		fmt.Sprintf("Divide top and bottom by %d", factor*g))
}

func genPercentOf(rng *rand.Rand) Question {
	percent := []int{10, 20, 25, 50, 75}[rng.Intn(5)]
	base := (rng.Intn(20) + 1) * 20
	answer := base * percent / 100
	return newQuestion(KindPercentOf, rng,
		fmt.Sprintf("What is %d%% of %d?", percent, base), answer,
		fmt.Sprintf("%d × %d/100 = %d", base, percent, answer))
}

func genSquareRoot(rng *rand.Rand) Question {
	root := rng.Intn(14) + 2
	return newQuestion(KindSquareRoot, rng,
		fmt.Sprintf("√%d = ?", root*root), root,
		fmt.Sprintf("%d × %d = %d", root, root, root*root))
}

func genExponent(rng *rand.Rand) Question {
	base := rng.Intn(5) + 2
	exp := rng.Intn(3) + 2
	answer := 1
	for i := 0; i < exp; i++ {
		answer *= base
	}
	return newQuestion(KindExponent, rng,
		fmt.Sprintf("%d^%d = ?", base, exp), answer, "")
}

func genUnitRate(rng *rand.Rand) Question {
	unit := rng.Intn(9) + 2
	qty := rng.Intn(8) + 2
	total := unit * qty
	return newQuestion(KindUnitRate, rng,
		fmt.Sprintf("%d items cost $%d in total. What does one item cost?", qty, total),
		unit,
		fmt.Sprintf("$%d ÷ %d = $%d", total, qty, unit))
}

func genOrderOfOps(rng *rand.Rand) Question {
	a := rng.Intn(9) + 1
	b := rng.Intn(9) + 1
	c := rng.Intn(9) + 1
	answer := a + b*c
	return newQuestion(KindOrderOfOps, rng,
		fmt.Sprintf("%d + %d × %d = ?", a, b, c), answer,
		"Multiplication before addition")
}

func isPrime(n int) bool {
	if n < 2 {
		return false
	}
	for i := 2; i*i <= n; i++ {
		if n%i == 0 {
			return false
		}
	}
	return true
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
