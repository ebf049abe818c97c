package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/usercrud/internal/records"
	"github.com/studiowebux/usercrud/internal/types"
)

// stubSource is a records.Source returning fixed users
type stubSource struct {
	users []types.UserRecord
	err   error
}

func (s *stubSource) Fetch(ctx context.Context) ([]types.UserRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]types.UserRecord, len(s.users))
	copy(out, s.users)
	return out, nil
}

// testUsers is the fixture used by most TUI tests
func testUsers() []types.UserRecord {
	return []types.UserRecord{
		{ID: 1, FirstName: "Emily", LastName: "Johnson", Age: "28", City: "Phoenix"},
		{ID: 2, FirstName: "Michael", LastName: "Williams", Age: "35", City: "Houston"},
		{ID: 3, FirstName: "Sophia", LastName: "Brown", Age: "42", City: "Washington"},
	}
}

// CreateTestModel creates a sized Model whose source returns the given users
// or error. The clipboard writes into the returned slice pointer.
func CreateTestModel(t *testing.T, users []types.UserRecord, err error) (*Model, *[]string) {
	t.Helper()

	var copied []string
	controller := records.NewController(&stubSource{users: users, err: err}, nil)
	m := New(context.Background(), Options{
		Controller: controller,
		Profile:    "test",
		Clipboard: func(s string) error {
			copied = append(copied, s)
			return nil
		},
	})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	return &m, &copied
}

// CreateLoadedModel creates a test model and completes the initial load
func CreateLoadedModel(t *testing.T) *Model {
	t.Helper()

	m, _ := CreateTestModel(t, testUsers(), nil)
	LoadModel(t, m)
	return m
}

// LoadModel runs the load command and feeds its result back to the model
func LoadModel(t *testing.T, m *Model) {
	t.Helper()

	msg := m.loadUsers()()
	if _, ok := msg.(usersLoadedMsg); !ok {
		t.Fatalf("Expected usersLoadedMsg, got %T", msg)
	}
	m.Update(msg)
}

// SendKeys feeds key messages to the model and returns the last command
func SendKeys(m *Model, keys ...tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(k)
	}
	return cmd
}

// Runes builds a key message for typed text
func Runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// Key builds a key message for a special key
func Key(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

// AssertModelField is a generic helper for checking model field values
func AssertModelField[T comparable](t *testing.T, fieldName string, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %v, want %v", fieldName, got, want)
	}
}

// AssertNoError verifies that an error is nil
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
}

// AssertError verifies that an error occurred
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Error("Expected error but got nil")
	}
}
