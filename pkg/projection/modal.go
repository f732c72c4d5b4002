package projection

import "github.com/Siddaarth-Babu/mooc/pkg/models"

// ModalState is the state of the student content modal.
type ModalState int

const (
	ModalClosed ModalState = iota
	ModalLoading
	ModalOpen  // opened with items
	ModalEmpty // opened, nothing to show
)

func (s ModalState) String() string {
	switch s {
	case ModalLoading:
		return "loading"
	case ModalOpen:
		return "open"
	case ModalEmpty:
		return "empty"
	}
	return "closed"
}

// ContentModal shows the resolved contents of one subfolder at a time.
// Opening another subfolder replaces the current one; results of an
// earlier open that arrive late are dropped. Not safe for concurrent use;
// it belongs to the UI loop.
type ContentModal struct {
	state     ModalState
	gen       uint64
	subfolder models.ID
	title     string
	items     []models.ResolvedItem
	err       error
}

// Open starts loading sub and returns the token its result must carry.
func (m *ContentModal) Open(sub models.ID, title string) uint64 {
	m.gen++
	m.state = ModalLoading
	m.subfolder = sub
	m.title = title
	m.items = nil
	m.err = nil
	return m.gen
}

// Resolve delivers the result of the open identified by token. It reports
// whether the result was applied. A failed fetch opens the modal empty
// with the error attached.
func (m *ContentModal) Resolve(token uint64, items []models.ResolvedItem, err error) bool {
	if token != m.gen || m.state != ModalLoading {
		return false
	}
	m.err = err
	if err != nil || len(items) == 0 {
		m.state = ModalEmpty
		m.items = nil
		return true
	}
	m.state = ModalOpen
	m.items = items
	return true
}

// Close hides the modal. Pending results are discarded.
func (m *ContentModal) Close() {
	m.gen++
	m.state = ModalClosed
	m.items = nil
	m.err = nil
}

func (m *ContentModal) State() ModalState { return m.state }
func (m *ContentModal) Subfolder() models.ID { return m.subfolder }
func (m *ContentModal) Title() string { return m.title }
func (m *ContentModal) Items() []models.ResolvedItem { return m.items }
func (m *ContentModal) Err() error { return m.err }
