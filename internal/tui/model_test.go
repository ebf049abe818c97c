package tui

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/usercrud/internal/directory"
	"github.com/studiowebux/usercrud/internal/records"
	"github.com/studiowebux/usercrud/internal/types"
)

func TestNew_InitializesDefaultMode(t *testing.T) {
	m, _ := CreateTestModel(t, nil, nil)

	AssertModelField(t, "mode", m.mode, ModeNormal)
	AssertModelField(t, "cursor", m.cursor, 0)
	AssertModelField(t, "form inputs", len(m.formInputs), len(types.FormFields))

	if m.keybinds == nil {
		t.Error("keybinds should default to the built-in registry")
	}
}

func TestView_LoadingThenRows(t *testing.T) {
	m, _ := CreateTestModel(t, testUsers(), nil)

	cmd := m.loadUsers()
	if !strings.Contains(m.View(), "Loading users...") {
		t.Errorf("Expected loading indicator before the load completes:\n%s", m.View())
	}

	m.Update(cmd())

	AssertModelField(t, "loading", m.loading, false)
	AssertModelField(t, "rows", m.controller.Len(), 3)

	view := m.View()
	if strings.Contains(view, "Loading users...") {
		t.Error("Loading indicator should be gone")
	}
	for _, want := range []string{"S.No", "Emily Johnson", "Phoenix", "Loaded 3 users"} {
		if !strings.Contains(view, want) {
			t.Errorf("View missing %q", want)
		}
	}
}

func TestLoad_FailureShowsZeroRows(t *testing.T) {
	m, _ := CreateTestModel(t, nil, errors.New("connection refused"))
	LoadModel(t, m)

	AssertModelField(t, "rows", m.controller.Len(), 0)
	if !strings.Contains(m.errorMsg, "Error fetching data") {
		t.Errorf("Expected fetch error in status bar, got %q", m.errorMsg)
	}

	view := m.View()
	if !strings.Contains(view, "No records") {
		t.Errorf("Expected empty table:\n%s", view)
	}
}

func TestLoad_StaleResultIgnored(t *testing.T) {
	m, _ := CreateTestModel(t, testUsers(), nil)

	first := m.loadUsers()
	second := m.loadUsers()

	// The superseded load arrives with nothing and must not wipe the table
	m.Update(usersLoadedMsg{seq: 1, err: errors.New("context canceled")})
	AssertModelField(t, "still loading", m.loading, true)

	m.Update(second())
	AssertModelField(t, "rows", m.controller.Len(), 3)
	AssertModelField(t, "error", m.errorMsg, "")

	_ = first
}

func TestReload_ReplacesEdits(t *testing.T) {
	m := CreateLoadedModel(t)

	SendKeys(m, Runes("d"), Runes("y"))
	AssertModelField(t, "rows after delete", m.controller.Len(), 2)

	cmd := SendKeys(m, Runes("r"))
	if cmd == nil {
		t.Fatal("Expected reload command")
	}
	m.Update(cmd())
	AssertModelField(t, "rows after reload", m.controller.Len(), 3)
}

const directoryBody = `{"users":[
{"id":1,"firstName":"Emily","lastName":"Johnson","age":28,"address":{"city":"Phoenix"}},
{"id":2,"firstName":"Michael","lastName":"Williams","age":35,"address":{"city":"Houston"}},
{"id":3,"firstName":"Sophia","lastName":"Brown","age":42,"address":{"city":"Washington"}}]}`

func TestReload_WhileLoadingKeepsDirectoryResult(t *testing.T) {
	started := make(chan struct{}, 2)
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started <- struct{}{}
		<-release
		_, _ = w.Write([]byte(directoryBody))
	}))
	defer server.Close()

	client := directory.New(directory.Options{URL: server.URL + "/users", HTTPClient: server.Client()})
	defer client.Close()

	model := New(context.Background(), Options{
		Controller: records.NewController(client, nil),
		Clipboard:  func(string) error { return nil },
	})
	m := &model
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	msgs := make(chan tea.Msg, 2)
	first := m.loadUsers()
	go func() { msgs <- first() }()
	<-started

	// Reload while the first request is still in flight
	second := SendKeys(m, Runes("r"))
	if second == nil {
		t.Fatal("Expected reload command")
	}
	go func() { msgs <- second() }()

	time.Sleep(100 * time.Millisecond)
	close(release)

	for i := 0; i < 2; i++ {
		m.Update(<-msgs)
	}

	AssertModelField(t, "rows", m.controller.Len(), 3)
	AssertModelField(t, "error", m.errorMsg, "")
	AssertModelField(t, "loading", m.loading, false)
}

func TestView_BeforeWindowSize(t *testing.T) {
	m, _ := CreateTestModel(t, nil, nil)
	m.width = 0

	if got := m.View(); got != "Initializing..." {
		t.Errorf("Expected Initializing..., got %q", got)
	}
}

func TestSetStatusMessage_Truncates(t *testing.T) {
	m, _ := CreateTestModel(t, nil, nil)

	cmd := m.setStatusMessage(strings.Repeat("x", 150))
	if len(m.statusMsg) != MaxStatusLength {
		t.Errorf("Expected %d chars, got %d", MaxStatusLength, len(m.statusMsg))
	}
	if !strings.HasSuffix(m.statusMsg, "...") {
		t.Error("Expected ellipsis")
	}
	if cmd == nil {
		t.Error("Expected clear timer")
	}

	m.Update(clearStatusMsg{})
	AssertModelField(t, "statusMsg", m.statusMsg, "")
}

func TestTruncateMessage_KeepsRunesWhole(t *testing.T) {
	msg := "Deleted " + strings.Repeat("é", 150)

	got := truncateMessage(msg)
	if !utf8.ValidString(got) {
		t.Fatalf("Truncated message is not valid UTF-8: %q", got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("Expected ellipsis, got %q", got)
	}
	AssertModelField(t, "runes", utf8.RuneCountInString(got), MaxStatusLength)

	AssertModelField(t, "short message", truncateMessage("Deleted Zoë"), "Deleted Zoë")
}

func TestMode_String(t *testing.T) {
	AssertModelField(t, "normal", ModeNormal.String(), "NORMAL")
	AssertModelField(t, "edit", ModeEdit.String(), "EDIT")
	AssertModelField(t, "confirm", ModeConfirmDelete.String(), "DELETE")
}

func TestQuit(t *testing.T) {
	tests := []struct {
		name  string
		setup []tea.KeyMsg
		key   tea.KeyMsg
	}{
		{"q in normal mode", nil, Runes("q")},
		{"ctrl+c in normal mode", nil, Key(tea.KeyCtrlC)},
		{"ctrl+c while searching", []tea.KeyMsg{Runes("/")}, Key(tea.KeyCtrlC)},
		{"ctrl+c in add form", []tea.KeyMsg{Runes("a")}, Key(tea.KeyCtrlC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := CreateLoadedModel(t)
			SendKeys(m, tt.setup...)

			_, cmd := m.Update(tt.key)
			if cmd == nil {
				t.Fatal("Expected quit command")
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Error("Expected tea.QuitMsg")
			}
		})
	}
}

func TestQuit_NotWhileTyping(t *testing.T) {
	m := CreateLoadedModel(t)
	SendKeys(m, Runes("/"))

	SendKeys(m, Runes("q"))

	// q is typed into the search instead of quitting
	AssertModelField(t, "mode", m.mode, ModeSearch)
	AssertModelField(t, "search", m.searchInput.Value(), "q")
}
