package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/speedyapply/internal/dictionary"
	"github.com/jonathan/speedyapply/internal/dom"
)

func firstControl(t *testing.T, markup string) *dom.Element {
	t.Helper()
	doc := dom.MustParse(markup, "https://boards.example.com/apply")
	el := doc.Query("input, select, textarea, [role]")
	require.NotNil(t, el)
	return el
}

func TestIdentify_CanonicalPhrasePerEntry(t *testing.T) {
	m := New()
	for _, entry := range dictionary.Default().Entries() {
		t.Run(entry.Key, func(t *testing.T) {
			el := firstControl(t, `<body><label>`+entry.Phrase+` <input></label></body>`)

			key, ok := m.Identify(el)
			require.True(t, ok)
			assert.Equal(t, entry.Key, key)

			results := m.Score(el)
			require.Len(t, results, 1, "phrase %q crosses into %v", entry.Phrase, results)
			assert.Equal(t, DefaultWeights.Label, results[0].Score)
			assert.Equal(t, []string{SignalLabel}, results[0].Signals)
		})
	}
}

func TestIdentify_NoSignals(t *testing.T) {
	el := firstControl(t, `<body><input></body>`)
	_, ok := New().Identify(el)
	assert.False(t, ok)
	assert.Empty(t, New().Score(el))

	_, ok = New().Identify(nil)
	assert.False(t, ok)
}

func TestIdentify_EscapeOptionsAreNeverScored(t *testing.T) {
	tests := []struct {
		name   string
		markup string
	}{
		{"radio other", `<body><label><input type="radio" name="gender" value="__other_option__"> Other</label></body>`},
		{"checkbox other response", `<body><label for="c">Other response</label><input type="checkbox" id="c" name="email_opt"></body>`},
		{"aria other", `<body><input aria-label="other" name="phone"></body>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := firstControl(t, tt.markup)
			_, ok := New().Identify(el)
			assert.False(t, ok)
			assert.Nil(t, New().Score(el))
		})
	}
}

func TestIsEscapeOption(t *testing.T) {
	assert.True(t, IsEscapeOption("Other"))
	assert.True(t, IsEscapeOption("  OTHER "))
	assert.True(t, IsEscapeOption("Other response"))
	assert.True(t, IsEscapeOption("Your other Response here"))
	assert.False(t, IsEscapeOption("Others"))
	assert.False(t, IsEscapeOption("Mother's maiden name"))
	assert.False(t, IsEscapeOption(""))
}

func TestScore_SignalsAccumulate(t *testing.T) {
	el := firstControl(t, `<body><input id="email" name="email" type="email" placeholder="you@example.com e-mail"></body>`)

	best, ok := New().Best(el)
	require.True(t, ok)
	assert.Equal(t, "personal.email", best.Key)
	// selector + id + name + placeholder; the placeholder is also the label.
	assert.Equal(t, 20+40+40+100+30, best.Score)
	assert.ElementsMatch(t, []string{SignalSelector, SignalID, SignalName, SignalLabel, SignalPlaceholder}, best.Signals)
}

func TestScore_DataAutomationID(t *testing.T) {
	el := firstControl(t, `<body><input data-automation-id="email"></body>`)
	best, ok := New().Best(el)
	require.True(t, ok)
	assert.Equal(t, "personal.email", best.Key)
	assert.Equal(t, 20+50, best.Score)

	el = firstControl(t, `<body><input data-test-id="linkedin-url"></body>`)
	key, ok := New().Identify(el)
	require.True(t, ok)
	assert.Equal(t, "links.linkedin", key)
}

func TestBest_FirstEntryReachingMaximumWins(t *testing.T) {
	d, err := dictionary.New([]dictionary.Row{
		{Key: "a.first", Phrase: "Alpha", Pattern: `alpha`},
		{Key: "b.second", Phrase: "Alpha", Pattern: `alp`},
	})
	require.NoError(t, err)

	el := firstControl(t, `<body><label>Alpha <input></label></body>`)
	key, ok := New(WithDictionary(d)).Identify(el)
	require.True(t, ok)
	assert.Equal(t, "a.first", key)
}

func TestThreshold(t *testing.T) {
	el := firstControl(t, `<body><input name="email"></body>`)

	key, ok := New().Identify(el)
	require.True(t, ok)
	assert.Equal(t, "personal.email", key)

	_, ok = New(WithThreshold(100)).Identify(el)
	assert.False(t, ok)
}

func TestWeights_Sensitivity(t *testing.T) {
	el := firstControl(t, `<body><label>Email <input name="phone"></label></body>`)

	key, ok := New().Identify(el)
	require.True(t, ok)
	assert.Equal(t, "personal.email", key)

	w := DefaultWeights
	w.Label = 10
	key, ok = New(WithWeights(w)).Identify(el)
	require.True(t, ok)
	assert.Equal(t, "personal.phone", key)
}

func TestIdentify_ArrayFieldsShareKey(t *testing.T) {
	doc := dom.MustParse(`<body>
		<div><label for="c1">Company</label><input id="c1"></div>
		<div><label for="c2">Company</label><input id="c2"></div>
	</body>`, "")
	m := New()
	for _, id := range []string{"c1", "c2"} {
		key, ok := m.Identify(doc.ElementByID(id))
		require.True(t, ok)
		assert.Equal(t, "work.company", key)
	}
}
