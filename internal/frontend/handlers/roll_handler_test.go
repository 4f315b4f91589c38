package handlers

import (
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/time/rate"

	"github.com/cory-johannsen/dicebot/internal/config"
	"github.com/cory-johannsen/dicebot/internal/frontend/telnet"
	"github.com/cory-johannsen/dicebot/internal/game/dice"
	"github.com/cory-johannsen/dicebot/internal/observability"
)

// fixedSource returns the same Intn value every time.
type fixedSource int

func (f fixedSource) Intn(n int) int { return int(f) % n }

// stubEvaluator records the tokens it receives.
type stubEvaluator struct {
	tokens [][]string
	res    dice.Result
	ok     bool
	err    error
}

func (s *stubEvaluator) Evaluate(tokens []string) (dice.Result, bool, error) {
	s.tokens = append(s.tokens, tokens)
	return s.res, s.ok, s.err
}

func testBotConfig() config.BotConfig {
	return config.BotConfig{
		Prefix:        "!",
		Delimiters:    []string{", ", ",", " "},
		RatePerSecond: 100,
		Burst:         100,
	}
}

func newTestHandler(t *testing.T, ev Evaluator) (*RollHandler, *observability.Metrics) {
	t.Helper()
	m := observability.NewMetrics()
	return NewRollHandler(testBotConfig(), ev, m, zaptest.NewLogger(t)), m
}

func counter(m *observability.Metrics, outcome string) float64 {
	mfs, _ := m.Registry().Gather()
	for _, mf := range mfs {
		if mf.GetName() != "dicebot_evaluations_total" {
			continue
		}
		for _, metric := range mf.GetMetric() {
			for _, lp := range metric.GetLabel() {
				if lp.GetValue() == outcome {
					return metric.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func TestDispatch_Roll(t *testing.T) {
	ev := dice.NewEvaluator(fixedSource(2), zaptest.NewLogger(t))
	h, m := newTestHandler(t, ev)

	reply := h.Dispatch("!roll 2d6, +, 3", h.NewLimiter(), zaptest.NewLogger(t))
	assert.Equal(t, "9 ([3, 3] + [3])", telnet.StripANSI(reply.Text))
	assert.False(t, reply.Quit)
	assert.Equal(t, 1.0, counter(m, observability.OutcomeOK))
}

func TestDispatch_RollAlias(t *testing.T) {
	stub := &stubEvaluator{ok: true, res: dice.Result{Total: 4, Steps: []string{"[4]"}}}
	h, _ := newTestHandler(t, stub)

	reply := h.Dispatch("!R 4", h.NewLimiter(), zaptest.NewLogger(t))
	assert.Equal(t, "4 ([4])", telnet.StripANSI(reply.Text))
	assert.Equal(t, [][]string{{"4"}}, stub.tokens)
}

func TestDispatch_RollEmptyIsSilent(t *testing.T) {
	h, m := newTestHandler(t, dice.NewEvaluator(fixedSource(0), zaptest.NewLogger(t)))

	reply := h.Dispatch("!roll", h.NewLimiter(), zaptest.NewLogger(t))
	assert.Equal(t, Reply{}, reply)
	assert.Equal(t, 1.0, counter(m, observability.OutcomeEmpty))
}

func TestDispatch_RollErrorVerbatim(t *testing.T) {
	h, m := newTestHandler(t, dice.NewEvaluator(fixedSource(0), zaptest.NewLogger(t)))

	reply := h.Dispatch("!roll + 2", h.NewLimiter(), zaptest.NewLogger(t))
	assert.Equal(t, "malformed equation: was expecting a term but instead got: +", telnet.StripANSI(reply.Text))
	assert.Equal(t, 1.0, counter(m, observability.OutcomeError))
}

func TestDispatch_StubError(t *testing.T) {
	stub := &stubEvaluator{err: errors.New("boom")}
	h, _ := newTestHandler(t, stub)

	reply := h.Dispatch("!roll 1", h.NewLimiter(), zaptest.NewLogger(t))
	assert.Equal(t, "boom", telnet.StripANSI(reply.Text))
}

func TestDispatch_ChatIgnored(t *testing.T) {
	stub := &stubEvaluator{}
	h, _ := newTestHandler(t, stub)

	assert.Equal(t, Reply{}, h.Dispatch("roll 2d6", h.NewLimiter(), zaptest.NewLogger(t)))
	assert.Empty(t, stub.tokens)
}

func TestDispatch_Help(t *testing.T) {
	h, _ := newTestHandler(t, &stubEvaluator{})

	reply := h.Dispatch("!help", h.NewLimiter(), zaptest.NewLogger(t))
	assert.Contains(t, reply.Text, "!roll")

	reply = h.Dispatch("!help roll", h.NewLimiter(), zaptest.NewLogger(t))
	assert.Contains(t, reply.Text, "2d6 + 3")
}

func TestDispatch_Quit(t *testing.T) {
	h, _ := newTestHandler(t, &stubEvaluator{})

	reply := h.Dispatch("!exit", h.NewLimiter(), zaptest.NewLogger(t))
	assert.True(t, reply.Quit)
}

func TestDispatch_UnknownCommand(t *testing.T) {
	h, _ := newTestHandler(t, &stubEvaluator{})

	reply := h.Dispatch("!rol 1d6", h.NewLimiter(), zaptest.NewLogger(t))
	assert.Equal(t, `Unknown command "rol". Did you mean !roll?`, telnet.StripANSI(reply.Text))

	reply = h.Dispatch("!frogify", h.NewLimiter(), zaptest.NewLogger(t))
	assert.Equal(t, `Unknown command "frogify".`, telnet.StripANSI(reply.Text))
}

func TestDispatch_RateLimited(t *testing.T) {
	stub := &stubEvaluator{ok: true, res: dice.Result{Total: 1, Steps: []string{"[1]"}}}
	h, m := newTestHandler(t, stub)
	limiter := rate.NewLimiter(rate.Every(time.Hour), 2)

	for i := 0; i < 2; i++ {
		reply := h.Dispatch("!roll 1", limiter, zaptest.NewLogger(t))
		require.Equal(t, "1 ([1])", telnet.StripANSI(reply.Text))
	}
	reply := h.Dispatch("!roll 1", limiter, zaptest.NewLogger(t))
	assert.Contains(t, reply.Text, "Too many commands")
	assert.Len(t, stub.tokens, 2)
	assert.Equal(t, 1.0, counter(m, observability.OutcomeLimited))

	// chat does not consume tokens and is never limited
	assert.Equal(t, Reply{}, h.Dispatch("hello", limiter, zaptest.NewLogger(t)))
}

func TestRenderResult_StripsToFormat(t *testing.T) {
	for _, r := range []dice.Result{
		{Total: 9, Steps: []string{"[4, 2]", "+", "[3]"}},
		{Total: -3, Steps: []string{"[1]", "-", "[4]"}},
		{Total: 3, Steps: []string{"[3]", "+"}},
	} {
		rendered := RenderResult(r)
		assert.Equal(t, r.String(), telnet.StripANSI(rendered))
		assert.True(t, strings.HasPrefix(rendered, telnet.Bold+telnet.Green+strconv.Itoa(r.Total)+telnet.Reset), rendered)
	}
}

func TestMetricsTestutilCompat(t *testing.T) {
	m := observability.NewMetrics()
	m.ObserveEvaluation(observability.OutcomeOK, 1)
	n, err := testutil.GatherAndCount(m.Registry(), "dicebot_evaluations_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
