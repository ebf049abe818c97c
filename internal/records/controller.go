package records

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/studiowebux/usercrud/internal/filter"
	"github.com/studiowebux/usercrud/internal/types"
)

var (
	// ErrEmptyForm is returned by AddRecord when every field is blank
	ErrEmptyForm = errors.New("form is empty")
	// ErrNoSource is returned by Load when the controller has no source
	ErrNoSource = errors.New("no directory source configured")
)

// Source provides the initial collection
type Source interface {
	Fetch(ctx context.Context) ([]types.UserRecord, error)
}

// Controller owns the in-memory record collection and its filtered view.
// The view is always recomputed from (records, searchText).
type Controller struct {
	mu sync.RWMutex

	source Source
	logger *zap.Logger

	records    []types.UserRecord
	view       []int // positions in records
	searchText string
	editIndex  int   // position in view, -1 when not editing
	editID     int   // ID of the record being edited
	form       types.FormState
	nextID     int
}

// NewController creates an empty controller
func NewController(source Source, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		source:    source,
		logger:    logger,
		records:   []types.UserRecord{},
		view:      []int{},
		editIndex: -1,
		nextID:    1,
	}
}

// Load replaces the collection with the source's users. On failure the
// collection and view are emptied and the error is returned after logging.
func (c *Controller) Load(ctx context.Context) error {
	return c.ApplyFetch(c.Fetch(ctx))
}

// Fetch queries the source without touching controller state
func (c *Controller) Fetch(ctx context.Context) ([]types.UserRecord, error) {
	if c.source == nil {
		return nil, ErrNoSource
	}
	return c.source.Fetch(ctx)
}

// ApplyFetch applies the outcome of Fetch with Load semantics
func (c *Controller) ApplyFetch(users []types.UserRecord, err error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.logger.Warn("Error fetching data", zap.Error(err))
		c.replaceLocked(nil)
		return err
	}

	c.replaceLocked(users)
	c.logger.Info("directory loaded", zap.Int("records", len(users)))
	return nil
}

func (c *Controller) replaceLocked(users []types.UserRecord) {
	c.records = make([]types.UserRecord, len(users))
	copy(c.records, users)

	c.nextID = 1
	for _, u := range c.records {
		if u.ID >= c.nextID {
			c.nextID = u.ID + 1
		}
	}

	c.clearEditLocked()
	c.refreshLocked()
}

// Search stores the search text and returns the recomputed view
func (c *Controller) Search(text string) []types.UserRecord {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.searchText = text
	c.refreshLocked()
	return c.viewLocked()
}

// BeginEdit marks the view row at index as edited and loads its values into
// the form. It returns false when index is out of range.
func (c *Controller) BeginEdit(index int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 || index >= len(c.view) {
		return false
	}

	rec := c.records[c.view[index]]
	c.editIndex = index
	c.editID = rec.ID
	c.form = types.FormFromRecord(rec)
	return true
}

// SaveEdit writes the form back into the edited record and leaves edit mode.
// It returns false when no row is being edited.
func (c *Controller) SaveEdit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.editIndex < 0 {
		return false
	}

	pos := c.positionOfLocked(c.editID)
	if pos >= 0 {
		c.records[pos] = c.form.ApplyTo(c.records[pos])
		c.logger.Debug("record saved", zap.Int("id", c.editID))
	}

	c.clearEditLocked()
	c.refreshLocked()
	return pos >= 0
}

// CancelEdit leaves edit mode without writing the form
func (c *Controller) CancelEdit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearEditLocked()
}

// Delete removes the record at the given view position from both the view
// and the collection. It returns false when index is out of range.
func (c *Controller) Delete(index int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 || index >= len(c.view) {
		return false
	}

	pos := c.view[index]
	removed := c.records[pos]
	c.records = append(c.records[:pos], c.records[pos+1:]...)

	if c.editIndex >= 0 && c.editID == removed.ID {
		c.clearEditLocked()
	}

	c.refreshLocked()
	c.logger.Debug("record deleted", zap.Int("id", removed.ID))
	return true
}

// AddRecord appends a record built from form and clears the form state.
// The new ID is one past the highest ID ever seen, so IDs never repeat.
func (c *Controller) AddRecord(form types.FormState) (types.UserRecord, error) {
	if form.IsEmpty() {
		return types.UserRecord{}, ErrEmptyForm
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	rec := form.ApplyTo(types.UserRecord{ID: c.nextID})
	c.nextID++
	c.records = append(c.records, rec)
	c.clearEditLocked()
	c.form = types.FormState{}

	c.refreshLocked()
	c.logger.Debug("record added", zap.Int("id", rec.ID))
	return rec, nil
}

// SetField updates one form field
func (c *Controller) SetField(field types.Field, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form.Set(field, value)
}

// ResetForm clears the form state
func (c *Controller) ResetForm() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form = types.FormState{}
}

// Form returns the current form state
func (c *Controller) Form() types.FormState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.form
}

// SearchText returns the current search text
func (c *Controller) SearchText() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.searchText
}

// EditIndex returns the view position being edited, or -1
func (c *Controller) EditIndex() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.editIndex
}

// View returns a copy of the filtered view
func (c *Controller) View() []types.UserRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.viewLocked()
}

// Records returns a copy of the full collection
func (c *Controller) Records() []types.UserRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]types.UserRecord, len(c.records))
	copy(out, c.records)
	return out
}

// At returns the view row at index
func (c *Controller) At(index int) (types.UserRecord, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if index < 0 || index >= len(c.view) {
		return types.UserRecord{}, false
	}
	return c.records[c.view[index]], true
}

// Len returns the number of rows in the view
func (c *Controller) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.view)
}

// Snapshot returns an immutable copy of the whole state
func (c *Controller) Snapshot() types.Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	records := make([]types.UserRecord, len(c.records))
	copy(records, c.records)

	return types.Snapshot{
		Records:    records,
		View:       c.viewLocked(),
		SearchText: c.searchText,
		EditIndex:  c.editIndex,
		Form:       c.form,
	}
}

func (c *Controller) refreshLocked() {
	c.view = filter.Records(c.records, c.searchText)
	if c.editIndex < 0 {
		return
	}

	// Track the edited record through view changes
	for i, pos := range c.view {
		if c.records[pos].ID == c.editID {
			c.editIndex = i
			return
		}
	}
	c.clearEditLocked()
}

func (c *Controller) viewLocked() []types.UserRecord {
	out := make([]types.UserRecord, len(c.view))
	for i, pos := range c.view {
		out[i] = c.records[pos]
	}
	return out
}

func (c *Controller) positionOfLocked(id int) int {
	for i, rec := range c.records {
		if rec.ID == id {
			return i
		}
	}
	return -1
}

func (c *Controller) clearEditLocked() {
	if c.editIndex >= 0 {
		c.form = types.FormState{}
	}
	c.editIndex = -1
	c.editID = 0
}
