package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/speedyapply/internal/ai"
	"github.com/jonathan/speedyapply/internal/clock"
	"github.com/jonathan/speedyapply/internal/dom"
	"github.com/jonathan/speedyapply/internal/injector"
	"github.com/jonathan/speedyapply/internal/profile"
	"github.com/jonathan/speedyapply/internal/store"
)

const pageURL = "https://jobs.example.com/apply/42"

var epoch = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func sampleData() profile.Data {
	return profile.Data{
		Personal: profile.Personal{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com"},
		Work: []profile.Work{
			{Company: "Globex", Title: "Engineer"},
			{Company: "Initech", Title: "Intern"},
		},
	}
}

// newStore returns a store holding one active profile with filling enabled
// for jobs.example.com, after mutate has adjusted the state.
func newStore(t *testing.T, mutate func(*store.State)) *store.Store {
	t.Helper()
	s := store.New(store.NewMemory())
	st := store.NewState()
	p := profile.New("Main")
	p.Data = sampleData()
	st.AddProfile(*p)
	st.AutoFillEnabled = true
	st.SetPageEnabled("jobs.example.com", true)
	if mutate != nil {
		mutate(st)
	}
	require.NoError(t, s.Set(context.Background(), st))
	return s
}

func newEngine(s *store.Store, c clock.Clock, opts ...Option) *Engine {
	base := []Option{WithClock(c), WithInjector(injector.New(injector.WithClock(c)))}
	return New(s, append(base, opts...)...)
}

func parse(t *testing.T, markup, url string) *dom.Document {
	t.Helper()
	doc, err := dom.Parse(markup, url)
	require.NoError(t, err)
	return doc
}

const applyForm = `<html><head><title>Backend Engineer - Acme Careers</title></head><body><form>
	<label for="fn">First Name</label><input id="fn">
	<label for="em">Email</label><input id="em" type="email">
	<label for="c1">Company</label><input id="c1">
	<label for="c2">Company</label><input id="c2">
	<label><input id="other" type="radio" name="src"> Other</label>
</form></body></html>`

func TestScanAndFill_FillsFromActiveProfile(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, nil)
	e := newEngine(s, clock.NewVirtual(epoch))
	doc := parse(t, applyForm, pageURL)

	rep, err := e.ScanAndFill(ctx, doc, ScanOptions{})
	require.NoError(t, err)

	assert.True(t, rep.FillActive)
	assert.Equal(t, "jobs.example.com", rep.Domain)
	assert.Equal(t, 4, rep.Matches)
	assert.Equal(t, 4, rep.Filled)
	assert.NotEmpty(t, rep.ProfileID)

	for id, want := range map[string]string{"fn": "Jane", "em": "jane@example.com", "c1": "Globex", "c2": "Initech"} {
		el := doc.ElementByID(id)
		assert.Equal(t, want, el.Value(), id)
		assert.Equal(t, "true", el.Attr(FilledAttr), id)
		assert.Equal(t, FilledBorder, el.Style("border"), id)
	}
	assert.False(t, doc.ElementByID("other").Checked())
	assert.Empty(t, doc.ElementByID("other").Attr(FilledAttr))
}

func TestScanAndFill_ArrayKeysFollowOrderOfEncounter(t *testing.T) {
	s := newStore(t, nil)
	e := newEngine(s, clock.NewVirtual(epoch))
	doc := parse(t, applyForm, pageURL)

	rep, err := e.ScanAndFill(context.Background(), doc, ScanOptions{})
	require.NoError(t, err)

	var indexes []int
	for _, f := range rep.Fields {
		if f.Key == "work.company" {
			indexes = append(indexes, f.Index)
		}
	}
	assert.Equal(t, []int{0, 1}, indexes)
}

func TestScanAndFill_Gating(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*store.State)
		force    bool
		wantFill bool
	}{
		{name: "enabled", wantFill: true},
		{name: "globally disabled", mutate: func(st *store.State) { st.AutoFillEnabled = false }},
		{name: "domain disabled", mutate: func(st *store.State) { st.SetPageEnabled("jobs.example.com", false) }},
		{name: "forced while disabled", mutate: func(st *store.State) { st.AutoFillEnabled = false }, force: true, wantFill: true},
		{name: "no active profile", mutate: func(st *store.State) {
			st.Profiles = nil
			st.ActiveProfileID = ""
		}, force: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEngine(newStore(t, tt.mutate), clock.NewVirtual(epoch))
			doc := parse(t, applyForm, pageURL)

			rep, err := e.ScanAndFill(context.Background(), doc, ScanOptions{Force: tt.force})
			require.NoError(t, err)

			assert.Equal(t, tt.wantFill, rep.FillActive)
			assert.Equal(t, 4, rep.Matches, "matching runs regardless")
			if tt.wantFill {
				assert.Equal(t, "Jane", doc.ElementByID("fn").Value())
			} else {
				assert.Zero(t, rep.Filled)
				assert.Empty(t, doc.ElementByID("fn").Value())
			}
		})
	}
}

func TestScanAndFill_MarkedFieldsRefilledOnlyWhenForced(t *testing.T) {
	ctx := context.Background()
	e := newEngine(newStore(t, nil), clock.NewVirtual(epoch))
	doc := parse(t, `<form><label for="fn">First Name</label><input id="fn" value="Janet" data-speedy-filled="true"></form>`, pageURL)

	rep, err := e.ScanAndFill(ctx, doc, ScanOptions{})
	require.NoError(t, err)
	assert.Zero(t, rep.Filled)
	assert.Equal(t, "already filled", rep.Fields[0].Skipped)
	assert.Equal(t, "Janet", doc.ElementByID("fn").Value())

	rep, err = e.ScanAndFill(ctx, doc, ScanOptions{Force: true})
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Filled)
	assert.Equal(t, "Jane", doc.ElementByID("fn").Value())
}

func TestScanAndFill_MissingValueIsSkipped(t *testing.T) {
	e := newEngine(newStore(t, nil), clock.NewVirtual(epoch))
	doc := parse(t, `<form><label for="ph">Phone</label><input id="ph" type="tel"></form>`, pageURL)

	rep, err := e.ScanAndFill(context.Background(), doc, ScanOptions{})
	require.NoError(t, err)
	require.Len(t, rep.Fields, 1)
	assert.Equal(t, "personal.phone", rep.Fields[0].Key)
	assert.Equal(t, "no profile value", rep.Fields[0].Skipped)
	assert.Empty(t, doc.ElementByID("ph").Attr(FilledAttr))
}

type brokenBackend struct{}

func (brokenBackend) Load(context.Context) ([]byte, error) { return nil, errors.New("context invalidated") }
func (brokenBackend) Save(context.Context, []byte) error { return errors.New("context invalidated") }
func (brokenBackend) Close() error { return nil }

func TestScanAndFill_StoreUnavailableAbortsScan(t *testing.T) {
	e := newEngine(store.New(brokenBackend{}), clock.NewVirtual(epoch))
	doc := parse(t, applyForm, pageURL)

	rep, err := e.ScanAndFill(context.Background(), doc, ScanOptions{Force: true})
	assert.Nil(t, rep)
	assert.ErrorIs(t, err, store.ErrUnavailable)
	var scanErr *ScanError
	require.ErrorAs(t, err, &scanErr)
	assert.Equal(t, pageURL, scanErr.URL)
	assert.Empty(t, doc.ElementByID("fn").Value())
}

func TestScanAndFill_CanceledContext(t *testing.T) {
	e := newEngine(newStore(t, nil), clock.NewVirtual(epoch))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.ScanAndFill(ctx, parse(t, applyForm, pageURL), ScanOptions{})
	assert.Error(t, err)
}

type fakeGenerator struct {
	reply   string
	err     error
	prompts []ai.Prompt
}

func (f *fakeGenerator) Generate(_ context.Context, p ai.Prompt) (string, error) {
	f.prompts = append(f.prompts, p)
	return f.reply, f.err
}

func (f *fakeGenerator) Model() string { return "fake" }
func (f *fakeGenerator) Close() error { return nil }

const aiForm = `<html><head><title>Designer at Initech | Careers</title></head><body>
	<fieldset><legend>About you</legend>
		<label for="fn">First Name</label><input id="fn">
		<label for="color">Favourite colour</label><input id="color" type="text">
		<label for="xy">XY</label><input id="xy" type="text">
	</fieldset>
</body></html>`

func TestScanAndFill_AIFallback(t *testing.T) {
	gen := &fakeGenerator{reply: "```text\nBlue\n```"}
	s := newStore(t, func(st *store.State) { st.UseOllama = true })
	e := newEngine(s, clock.NewVirtual(epoch), WithGenerator(gen))
	doc := parse(t, aiForm, pageURL)

	rep, err := e.ScanAndFill(context.Background(), doc, ScanOptions{})
	require.NoError(t, err)

	require.Len(t, gen.prompts, 1, "short labels are not sent")
	p := gen.prompts[0]
	assert.Contains(t, p.User, `Field Label: "Favourite colour"`)
	assert.Contains(t, p.System, `Company: "Initech"`)
	assert.Contains(t, p.System, `Section: "About you"`)
	assert.Contains(t, p.System, `"firstName":"Jane"`)

	color := doc.ElementByID("color")
	assert.Equal(t, "Blue", color.Value())
	assert.Equal(t, AIBorder, color.Style("border"))
	assert.Equal(t, "true", color.Attr(FilledAttr))
	assert.Equal(t, 1, rep.AIFilled)
	assert.Equal(t, 1, rep.Filled)
}

func TestScanAndFill_AIAnswerNeverSelectsEscapeOption(t *testing.T) {
	gen := &fakeGenerator{reply: "Other"}
	s := newStore(t, func(st *store.State) { st.UseOllama = true })
	e := newEngine(s, clock.NewVirtual(epoch), WithGenerator(gen))
	doc := parse(t, `<html><body><form>
		<label><input id="ad" type="radio" name="heard" value="ad"> Newspaper ad</label>
		<label><input id="other" type="radio" name="heard" value="other"> Other</label>
	</form></body></html>`, pageURL)

	rep, err := e.ScanAndFill(context.Background(), doc, ScanOptions{})
	require.NoError(t, err)

	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0].User, `Available Options: ["Newspaper ad"]`)
	other := doc.ElementByID("other")
	assert.False(t, other.Checked())
	assert.Empty(t, other.Attr(FilledAttr))
	assert.False(t, doc.ElementByID("ad").Checked())
	assert.Zero(t, rep.AIFilled)
}

func TestScanAndFill_AIFallbackOffOrFailing(t *testing.T) {
	t.Run("disabled in store", func(t *testing.T) {
		gen := &fakeGenerator{reply: "Blue"}
		e := newEngine(newStore(t, nil), clock.NewVirtual(epoch), WithGenerator(gen))
		_, err := e.ScanAndFill(context.Background(), parse(t, aiForm, pageURL), ScanOptions{})
		require.NoError(t, err)
		assert.Empty(t, gen.prompts)
	})

	t.Run("generator error", func(t *testing.T) {
		gen := &fakeGenerator{err: errors.New("connection refused")}
		s := newStore(t, func(st *store.State) { st.UseOllama = true })
		e := newEngine(s, clock.NewVirtual(epoch), WithGenerator(gen))
		doc := parse(t, aiForm, pageURL)

		rep, err := e.ScanAndFill(context.Background(), doc, ScanOptions{})
		require.NoError(t, err)
		assert.Zero(t, rep.AIFilled)
		assert.Equal(t, "Jane", doc.ElementByID("fn").Value(), "dictionary fills are unaffected")
		assert.Empty(t, doc.ElementByID("color").Value())
	})
}

func TestAIEligible(t *testing.T) {
	doc := parse(t, `<form>
		<input id="empty" type="text"><input id="full" type="text" value="x">
		<input id="marked" type="text" data-speedy-filled="true">
		<textarea id="ta"></textarea><select id="sel"><option value="">Pick</option></select>
		<input id="r1" type="radio" name="a"><input id="r2" type="radio" name="a">
		<input id="s1" type="radio" name="b"><input id="s2" type="radio" name="b" checked>
		<input id="cb" type="checkbox"><input id="num" type="number">
	</form>`, pageURL)

	tests := []struct {
		id    string
		label string
		force bool
		want  bool
	}{
		{"empty", "Favourite colour", false, true},
		{"empty", "ab", false, false},
		{"full", "Favourite colour", false, false},
		{"marked", "Favourite colour", false, false},
		{"marked", "Favourite colour", true, true},
		{"ta", "Why us?", false, true},
		{"sel", "Country", false, true},
		{"r1", "Yes please", false, true},
		{"s1", "Yes please", false, false},
		{"cb", "I agree", false, false},
		{"num", "Count", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.id+"/"+tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, aiEligible(doc.ElementByID(tt.id), tt.label, tt.force))
		})
	}
}

func TestCollectCandidates(t *testing.T) {
	doc := parse(t, `<body>
		<input id="text">
		<input id="hidden" type="hidden"><input id="file" type="file"><input id="submit" type="submit">
		<input id="hidden-text" style="display:none">
		<input id="hidden-check" type="checkbox" style="display:none">
		<select id="sel"></select><textarea id="ta"></textarea>
		<div id="combo" role="combobox"></div>
		<button id="popup" role="button" aria-haspopup="listbox"></button>
		<div id="wd" data-automation-id="stateDropdown"></div>
		<div id="rich" role="textbox"></div>
		<p id="para"></p>
		<div id="host"><template shadowrootmode="open"><input id="inner"></template></div>
	</body>`, pageURL)

	var ids []string
	for _, el := range CollectCandidates(doc) {
		ids = append(ids, el.ID())
	}
	assert.Equal(t, []string{"text", "hidden-text", "sel", "ta", "combo", "popup", "wd", "rich", "inner"}, ids)
}

func TestCollectCandidates_GoogleFormsListItems(t *testing.T) {
	markup := `<body><div role="listitem"><div role="heading">Name</div><input id="name" type="text"></div>
		<div role="listitem"><input id="hidden" type="hidden"></div></body>`

	doc := parse(t, markup, "https://docs.google.com/forms/d/e/abc/viewform")
	var ids []string
	for _, el := range CollectCandidates(doc) {
		ids = append(ids, el.ID())
	}
	assert.Equal(t, []string{"name"}, ids)
}
