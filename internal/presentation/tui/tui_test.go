package tui_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"

	"github.com/aretw0/ostia"
	"github.com/aretw0/ostia/internal/presentation/tui"
	"github.com/aretw0/ostia/pkg/domain"
)

func TestReport(t *testing.T) {
	model := &domain.Model{
		ID:             "abc",
		Name:           "plural",
		AlphabetSize:   2,
		InputAlphabet:  []string{"a", "b"},
		OutputAlphabet: []string{"x"},
	}
	stats := ostia.Stats{Samples: 4, PTTStates: 9, RedStates: 2, FoldAttempts: 7, Merges: 6, Promotions: 1, Duration: time.Millisecond}

	got := tui.Report(model, stats)
	assert.Contains(t, got, "# plural")
	assert.Contains(t, got, "Model `abc`")
	assert.Contains(t, got, "| Learned states | 2 |")
	assert.Contains(t, got, "| Merge time | 1ms |")
	assert.Contains(t, got, "**Input alphabet** (2): `a b`")

	got = tui.Report(&domain.Model{AlphabetSize: 3}, ostia.Stats{})
	assert.Contains(t, got, "# transducer")
	assert.Contains(t, got, "**Alphabet size**: 3")
}

func TestResultAndBanner(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, termenv.Ascii, termenv.EnvColorProfile())

	assert.Contains(t, tui.Result("cat", "cats", true), "cat -> ")
	assert.Contains(t, tui.Result("cat", "", false), "undefined")

	var buf bytes.Buffer
	tui.PrintBanner(&buf)
	assert.Contains(t, buf.String(), "___|___/")
}
