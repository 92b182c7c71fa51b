package workspace

import (
	"context"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/Cyclone1070/wsearch/internal/events"
	"github.com/Cyclone1070/wsearch/internal/service/git"
)

// statusReader reads the git status of a directory.
type statusReader interface {
	Read(ctx context.Context, root string) (*git.Status, error)
}

// Store holds the open workspaces. While it is non-empty exactly one workspace is
// active and its id is always present in the map. Reads return copies.
type Store struct {
	mu         sync.RWMutex
	workspaces map[string]*Workspace
	order      []string
	active     string
	nextID     int

	git statusReader
	bus events.Bus
}

// NewStore creates an empty Store. bus may be nil.
func NewStore(git statusReader, bus events.Bus) *Store {
	if git == nil {
		panic("git is required")
	}
	if bus == nil {
		bus = events.NopBus{}
	}
	return &Store{
		workspaces: make(map[string]*Workspace),
		git:        git,
		bus:        bus,
	}
}

// Create adds a workspace. The first workspace created becomes active.
func (s *Store) Create(name, root string) (Workspace, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Workspace{}, ErrNameRequired
	}
	if strings.TrimSpace(root) == "" {
		return Workspace{}, ErrRootRequired
	}

	s.mu.Lock()
	s.nextID++
	ws := &Workspace{ID: "ws-" + strconv.Itoa(s.nextID), Name: name, Root: root}
	s.workspaces[ws.ID] = ws
	s.order = append(s.order, ws.ID)
	activated := s.active == ""
	if activated {
		s.active = ws.ID
	}
	out := ws.clone()
	s.mu.Unlock()

	if activated {
		s.bus.Publish(events.WorkspaceChanged{ActiveID: out.ID})
	}
	return out, nil
}

// Switch makes id the active workspace.
func (s *Store) Switch(id string) error {
	s.mu.Lock()
	if _, ok := s.workspaces[id]; !ok {
		s.mu.Unlock()
		return &NotFoundError{ID: id}
	}
	changed := s.active != id
	s.active = id
	s.mu.Unlock()

	if changed {
		s.bus.Publish(events.WorkspaceChanged{ActiveID: id})
	}
	return nil
}

// Close removes a workspace. Closing the active one activates the next workspace in
// creation order, or the previous one when it was last. The last workspace cannot be closed.
func (s *Store) Close(id string) error {
	s.mu.Lock()
	if _, ok := s.workspaces[id]; !ok {
		s.mu.Unlock()
		return &NotFoundError{ID: id}
	}
	if len(s.workspaces) == 1 {
		s.mu.Unlock()
		return ErrLastWorkspace
	}

	idx := slices.Index(s.order, id)
	s.order = slices.Delete(s.order, idx, idx+1)
	delete(s.workspaces, id)

	changed := s.active == id
	if changed {
		s.active = s.order[min(idx, len(s.order)-1)]
	}
	active := s.active
	s.mu.Unlock()

	if changed {
		s.bus.Publish(events.WorkspaceChanged{ActiveID: active})
	}
	return nil
}

// Rename changes a workspace's display name.
func (s *Store) Rename(id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	ws, ok := s.workspaces[id]
	if !ok {
		return &NotFoundError{ID: id}
	}
	ws.Name = name
	return nil
}

// Get returns the workspace with id.
func (s *Store) Get(id string) (Workspace, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ws, ok := s.workspaces[id]
	if !ok {
		return Workspace{}, false
	}
	return ws.clone(), true
}

// Active returns the active workspace.
func (s *Store) Active() (Workspace, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.active == "" {
		return Workspace{}, false
	}
	return s.workspaces[s.active].clone(), true
}

// List returns all workspaces in creation order.
func (s *Store) List() []Workspace {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Workspace, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.workspaces[id].clone())
	}
	return out
}

// Len returns the number of workspaces.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.workspaces)
}

// withActive runs fn on the active workspace under the write lock.
func (s *Store) withActive(fn func(ws *Workspace) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == "" {
		return ErrNoActiveWorkspace
	}
	return fn(s.workspaces[s.active])
}

// OpenFile adds path to the active workspace's open files.
func (s *Store) OpenFile(path string) error {
	if strings.TrimSpace(path) == "" {
		return ErrPathRequired
	}
	return s.withActive(func(ws *Workspace) error {
		if !slices.Contains(ws.OpenFiles, path) {
			ws.OpenFiles = append(ws.OpenFiles, path)
		}
		return nil
	})
}

// CloseFile removes path from the open files. If it was current, the most recently
// opened remaining file becomes current.
func (s *Store) CloseFile(path string) error {
	var changed *events.CurrentFileChanged
	err := s.withActive(func(ws *Workspace) error {
		idx := slices.Index(ws.OpenFiles, path)
		if idx < 0 {
			return nil
		}
		ws.OpenFiles = slices.Delete(ws.OpenFiles, idx, idx+1)
		if ws.CurrentFile != path {
			return nil
		}

		ws.CurrentFile = ""
		ws.Cursor = Position{}
		if n := len(ws.OpenFiles); n > 0 {
			ws.CurrentFile = ws.OpenFiles[n-1]
			ws.Cursor = Position{Line: 1, Column: 1}
		}
		changed = &events.CurrentFileChanged{
			WorkspaceID: ws.ID,
			Path:        ws.CurrentFile,
			Line:        ws.Cursor.Line,
			Column:      ws.Cursor.Column,
		}
		return nil
	})
	if err == nil && changed != nil {
		s.bus.Publish(*changed)
	}
	return err
}

// SetCurrentFile makes path the active workspace's current file, opening it if
// needed, with the cursor at 1:1.
func (s *Store) SetCurrentFile(path string) error {
	if strings.TrimSpace(path) == "" {
		return ErrPathRequired
	}
	var event events.CurrentFileChanged
	err := s.withActive(func(ws *Workspace) error {
		if !slices.Contains(ws.OpenFiles, path) {
			ws.OpenFiles = append(ws.OpenFiles, path)
		}
		ws.CurrentFile = path
		ws.Cursor = Position{Line: 1, Column: 1}
		event = events.CurrentFileChanged{WorkspaceID: ws.ID, Path: path, Line: 1, Column: 1}
		return nil
	})
	if err == nil {
		s.bus.Publish(event)
	}
	return err
}

// SetCursor places the cursor in the current file.
func (s *Store) SetCursor(line, column int) error {
	if line < 1 || column < 1 {
		return &InvalidPositionError{Line: line, Column: column}
	}
	var event events.CurrentFileChanged
	err := s.withActive(func(ws *Workspace) error {
		if ws.CurrentFile == "" {
			return ErrNoCurrentFile
		}
		ws.Cursor = Position{Line: line, Column: column}
		event = events.CurrentFileChanged{WorkspaceID: ws.ID, Path: ws.CurrentFile, Line: line, Column: column}
		return nil
	})
	if err == nil {
		s.bus.Publish(event)
	}
	return err
}

// CurrentFile returns the active workspace's current file and cursor.
func (s *Store) CurrentFile() (string, Position, bool) {
	ws, ok := s.Active()
	if !ok || ws.CurrentFile == "" {
		return "", Position{}, false
	}
	return ws.CurrentFile, ws.Cursor, true
}

// RefreshGitStatus reads the git status of the active workspace's root and stores it.
func (s *Store) RefreshGitStatus(ctx context.Context) (*git.Status, error) {
	ws, ok := s.Active()
	if !ok {
		return nil, ErrNoActiveWorkspace
	}

	status, err := s.git.Read(ctx, ws.Root)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// The workspace may have been closed while git was running.
	if current, ok := s.workspaces[ws.ID]; ok {
		current.Git = status
	}
	return status, nil
}
