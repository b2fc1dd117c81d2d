package app

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/wilbur182/skim/internal/slots"
)

func plainView(m Model) string {
	return ansi.Strip(m.View())
}

func TestView_RendersArticleRows(t *testing.T) {
	m, _ := testModel(t, testConfig(), 5)
	m = loadBatch(t, m)

	out := plainView(m)
	if !strings.Contains(out, "Article 0") {
		t.Errorf("view missing first article:\n%s", out)
	}
	if !strings.Contains(out, "5 items") && !strings.Contains(out, "6 items") {
		t.Errorf("view missing item count:\n%s", out)
	}
}

func TestView_LoadedSlotShowsSponsorTag(t *testing.T) {
	m, _ := testModel(t, testConfig(), 10)
	m = loadBatch(t, m) // slot 2 loads and settles synchronously

	s, _ := m.controller.Manager().Slot(2)
	if s.Status != slots.StatusLoaded {
		t.Fatalf("slot 2 = %v, want loaded", s.Status)
	}

	out := plainView(m)
	if !strings.Contains(out, "AD") {
		t.Errorf("loaded slot row missing sponsor marker:\n%s", out)
	}
}

func TestView_FailedSlotCollapsesUnderSkip(t *testing.T) {
	cfg := testConfig()
	cfg.Slots.SkipIfNotReady = true
	m, _ := testModel(t, cfg, 10)
	m = loadBatch(t, m)

	// Force slot 2 into Failed via a fresh request that errors.
	mgr := m.controller.Manager()
	mgr.Evict(2)
	load, ok := mgr.RequestLoad(2)
	if !ok {
		t.Fatal("RequestLoad refused")
	}
	mgr.OnLoadSettled(load.Position, load.Generation, nil, errTest)

	out := plainView(m)
	if strings.Contains(out, "sponsor unavailable") {
		t.Errorf("failed slot rendered an error row under skip mode:\n%s", out)
	}
}

func TestView_FailedSlotShowsErrorWithoutSkip(t *testing.T) {
	cfg := testConfig()
	cfg.Slots.SkipIfNotReady = false
	m, _ := testModel(t, cfg, 10)
	m = loadBatch(t, m)

	mgr := m.controller.Manager()
	mgr.Evict(2)
	load, _ := mgr.RequestLoad(2)
	mgr.OnLoadSettled(load.Position, load.Generation, nil, errTest)

	out := plainView(m)
	if !strings.Contains(out, "sponsor unavailable") {
		t.Errorf("failed slot should render an error row:\n%s", out)
	}
}

func TestView_BodyPaneShowsSelectedArticle(t *testing.T) {
	m, _ := testModel(t, testConfig(), 5)
	m = loadBatch(t, m)

	items := m.controller.Items()
	items[0].Article.Body = "Unmistakable body text."

	out := plainView(m)
	if !strings.Contains(out, "Unmistakable body text.") {
		t.Errorf("body pane missing article body:\n%s", out)
	}
}

func TestView_StatusBarShowsResidentCount(t *testing.T) {
	m, _ := testModel(t, testConfig(), 10)
	m = loadBatch(t, m)

	out := plainView(m)
	if !strings.Contains(out, "sponsors 1/3 cached") {
		t.Errorf("status bar missing cache gauge:\n%s", out)
	}
}

var errTest = errFixed("no fill")

type errFixed string

func (e errFixed) Error() string { return string(e) }
