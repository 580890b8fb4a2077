package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"

	"github.com/FACorreiaa/go-route-planner/internal/tags"
	"github.com/FACorreiaa/go-route-planner/internal/types"
)

// Generator produces text from a prompt. *generativeAI.AIClient implements it.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error)
}

var _ Service = (*ServiceImpl)(nil)

// Service drives the preference conversation and explains planned routes.
// Both operations always answer: without a model, or when it fails, a
// scripted fallback is used.
type Service interface {
	NextStep(ctx context.Context, known Preferences) Step
	Explain(ctx context.Context, prefs Preferences, stops []types.Stop) string
}

type ServiceImpl struct {
	logger      *slog.Logger
	generator   Generator
	timeout     time.Duration
	defaultCity string
}

// NewServiceImpl builds the assistant. A nil generator always uses the
// scripted fallback.
func NewServiceImpl(generator Generator, timeout time.Duration, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:      logger,
		generator:   generator,
		timeout:     timeout,
		defaultCity: types.DefaultCity,
	}
}

func (s *ServiceImpl) enabled() bool {
	return s.generator != nil
}

func (s *ServiceImpl) generate(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	return s.generator.GenerateContent(ctx, prompt, config)
}

func normalizePrefs(p Preferences) Preferences {
	if p.Tags != nil {
		p.Tags = tags.Normalize(p.Tags).Strings()
	}
	p.City = strings.TrimSpace(p.City)
	return p
}

func (s *ServiceImpl) NextStep(ctx context.Context, known Preferences) Step {
	ctx, span := otel.Tracer("AssistantService").Start(ctx, "NextStep", trace.WithAttributes(
		attribute.Bool("llm.enabled", s.enabled()),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "NextStep"))
	known = normalizePrefs(known)

	if !s.enabled() {
		return s.scriptedStep(known, "")
	}

	payload, err := json.Marshal(map[string]any{"known_prefs": known})
	if err != nil {
		return s.scriptedStep(known, "")
	}
	text, err := s.generate(ctx, string(payload), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(conversationInstruction(), genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.2),
		ResponseMIMEType:  "application/json",
	})
	if err != nil {
		l.WarnContext(ctx, "Model unavailable, using scripted flow", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "model unavailable")
		return s.scriptedStep(known, fmt.Sprintf("LLM недоступен: %v", err))
	}

	step, ok := parseStep(text)
	if !ok {
		l.WarnContext(ctx, "Model answered with an unusable step", slog.String("answer", text))
		return s.scriptedStep(known, "")
	}
	if step.Mode == ModeReady {
		prefs := s.withDefaults(normalizePrefs(*step.Prefs))
		step.Prefs = &prefs
	} else if step.KnownPrefs == nil {
		step.KnownPrefs = &known
	}
	return step
}

// parseStep accepts only well-formed steps: an ask naming a field, or a
// ready step carrying a date.
func parseStep(text string) (Step, bool) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	var step Step
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &step); err != nil {
		return Step{}, false
	}
	switch step.Mode {
	case ModeAsk:
		return step, step.Field != "" && step.Question != ""
	case ModeReady:
		return step, step.Prefs != nil && step.Prefs.Date != ""
	default:
		return Step{}, false
	}
}

func (s *ServiceImpl) withDefaults(p Preferences) Preferences {
	if p.City == "" {
		p.City = s.defaultCity
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.Budget == "" {
		p.Budget = "medium"
	}
	if p.Pace == "" {
		p.Pace = "normal"
	}
	return p
}

// scriptedStep asks for the first missing field of the fixed flow
// date, tags, budget, pace, and reports ready once all are known.
func (s *ServiceImpl) scriptedStep(known Preferences, note string) Step {
	if known.City == "" {
		known.City = s.defaultCity
	}
	for _, f := range scriptedFlow {
		if known.has(f.field) {
			continue
		}
		return Step{
			Mode:       ModeAsk,
			Question:   f.question,
			Field:      f.field,
			Input:      f.input,
			Options:    f.options(),
			KnownPrefs: &known,
			Note:       note,
		}
	}
	prefs := s.withDefaults(known)
	return Step{Mode: ModeReady, Prefs: &prefs, Note: note}
}

func (s *ServiceImpl) Explain(ctx context.Context, prefs Preferences, stops []types.Stop) string {
	ctx, span := otel.Tracer("AssistantService").Start(ctx, "Explain", trace.WithAttributes(
		attribute.Int("stops.count", len(stops)),
		attribute.Bool("llm.enabled", s.enabled()),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "Explain"))
	prefs = normalizePrefs(prefs)

	if !s.enabled() {
		return scriptedExplanation(stops, "")
	}

	payload, err := json.Marshal(map[string]any{"prefs": prefs, "stops": stops})
	if err != nil {
		return scriptedExplanation(stops, err.Error())
	}
	text, err := s.generate(ctx, string(payload), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(explainInstruction, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.2),
	})
	if err != nil {
		l.WarnContext(ctx, "Model unavailable, using scripted explanation", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "model unavailable")
		return scriptedExplanation(stops, err.Error())
	}
	return strings.TrimSpace(text)
}

func scriptedExplanation(stops []types.Stop, failure string) string {
	if len(stops) == 0 {
		return "Маршрут пока пуст — попробуйте выбрать другие интересы."
	}
	first := stops[0].Name
	last := stops[len(stops)-1].Name
	parts := []string{
		fmt.Sprintf("Начнём с %s, чтобы сразу погрузиться в атмосферу города.", first),
		fmt.Sprintf("Далее маршрут ведёт через ещё %d остановок и завершится в %s.", max(len(stops)-2, 0), last),
	}
	if failure != "" {
		parts = append(parts, fmt.Sprintf("(Подсказка LLM недоступна: %s)", failure))
	}
	return strings.Join(parts, " ")
}
