// Package textgen produces the motivational flavour text shown by the habit
// tracker: a quote, three habit ideas and a reflection question.
package textgen

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/brk3/habitcal/internal/logger"
	"github.com/brk3/habitcal/pkg/habit"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Op string

const (
	OpQuote      Op = "quote"
	OpIdeas      Op = "ideas"
	OpReflection Op = "reflection"
)

var requestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "habitcal_textgen_requests_total",
		Help: "Text generation requests by prompt and result",
	},
	[]string{"op", "result"},
)

// Generator turns a natural-language prompt into plain text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ErrUnavailable is wrapped when no generator is configured.
var ErrUnavailable = errors.New("text generation is not configured")

// TransportError is returned for any failed generation request.
type TransportError struct {
	Op  Op
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("text generation %s failed: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

type language struct {
	prompts   map[Op]string
	fallbacks map[Op]string
}

var languages = map[string]language{
	"ja": {
		prompts: map[Op]string{
			OpQuote:      "日本語で短いモチベーションの上がる格言を1つ教えて",
			OpIdeas:      "日本語で習慣のアイデアを3つ箇条書きで教えて",
			OpReflection: "日本語で1日の振り返りの質問を1つ出してください",
		},
		fallbacks: map[Op]string{
			OpQuote:      "心に響く言葉を取得できませんでした。後でもう一度お試しください。",
			OpIdeas:      "取得に失敗しました",
			OpReflection: "振り返りのプロンプトを取得できませんでした。後でもう一度お試しください。",
		},
	},
	"en": {
		prompts: map[Op]string{
			OpQuote:      "Give me one short, motivating quote.",
			OpIdeas:      "Suggest three habit ideas as a bulleted list.",
			OpReflection: "Ask me one question to reflect on my day.",
		},
		fallbacks: map[Op]string{
			OpQuote:      "Couldn't fetch an inspiring quote. Please try again later.",
			OpIdeas:      "Couldn't fetch habit ideas.",
			OpReflection: "Couldn't fetch a reflection prompt. Please try again later.",
		},
	},
}

type Inspirer struct {
	gen     Generator
	lang    language
	timeout time.Duration
}

// New builds an Inspirer. gen may be nil, in which case every call fails
// with a TransportError wrapping ErrUnavailable.
func New(gen Generator, lang string, timeout time.Duration) (*Inspirer, error) {
	if lang == "" {
		lang = "ja"
	}
	l, ok := languages[lang]
	if !ok {
		return nil, fmt.Errorf("unsupported language %q", lang)
	}
	return &Inspirer{gen: gen, lang: l, timeout: timeout}, nil
}

// Fallback is the user-facing message shown when op fails.
func (i *Inspirer) Fallback(op Op) string {
	return i.lang.fallbacks[op]
}

func (i *Inspirer) MotivationalQuote(ctx context.Context) (string, error) {
	return i.request(ctx, OpQuote)
}

func (i *Inspirer) ReflectionPrompt(ctx context.Context) (string, error) {
	return i.request(ctx, OpReflection)
}

func (i *Inspirer) HabitSuggestions(ctx context.Context) ([]habit.SuggestedHabit, error) {
	text, err := i.request(ctx, OpIdeas)
	if err != nil {
		return nil, err
	}
	return ParseSuggestions(text), nil
}

func (i *Inspirer) request(ctx context.Context, op Op) (string, error) {
	if i.gen == nil {
		requestsTotal.WithLabelValues(string(op), "unavailable").Inc()
		return "", &TransportError{Op: op, Err: ErrUnavailable}
	}
	if i.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := i.gen.Generate(ctx, i.lang.prompts[op])
	if err != nil {
		logger.ErrorContext(ctx, "Text generation failed", "op", op, "error", err)
		requestsTotal.WithLabelValues(string(op), "error").Inc()
		return "", &TransportError{Op: op, Err: err}
	}
	requestsTotal.WithLabelValues(string(op), "ok").Inc()
	logger.DebugContext(ctx, "Text generated", "op", op, "duration", time.Since(start), "chars", len(text))
	return strings.TrimSpace(text), nil
}

// ParseSuggestions reads a bulleted list: one idea per line with leading
// bullet markers and blank lines dropped.
func ParseSuggestions(text string) []habit.SuggestedHabit {
	out := []habit.SuggestedHabit{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimLeftFunc(line, func(r rune) bool {
			return r == '-' || r == '*' || unicode.IsSpace(r)
		})
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, habit.SuggestedHabit{Name: line})
	}
	return out
}
