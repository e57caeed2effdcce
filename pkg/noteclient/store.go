package noteclient

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// DefaultDetailTTL bounds how long a GetNoteByID result is served without a round trip.
const DefaultDetailTTL = 30 * time.Second

// API is the subset of Client the Store drives.
type API interface {
	ListNotes(ctx context.Context) ([]Note, error)
	ListNotesByType(ctx context.Context, noteType NoteType) ([]Note, error)
	GetNote(ctx context.Context, id string) (*Note, error)
	CreateTextNote(ctx context.Context, title string, content *string) (*Note, error)
	CreateAudioNote(ctx context.Context, title string, file File) (*Note, error)
	CreateImageNote(ctx context.Context, title string, content *string, file File) (*Note, error)
	UpdateNote(ctx context.Context, id string, in UpdateInput) (*Note, error)
	DeleteNote(ctx context.Context, id string) (string, error)
}

// State is what views render. Err holds the outcome of the last finished operation.
type State struct {
	Notes   []Note
	Loading bool
	Err     error
}

// Store is the client side cache of notes shared by every view.
type Store struct {
	api API

	mu        sync.Mutex
	notes     []Note
	inFlight  int
	err       error
	fetchSeq  uint64
	listeners map[int]func(State)
	nextID    int

	details *cache.Cache
}

func NewStore(api API, detailTTL time.Duration) *Store {
	if detailTTL <= 0 {
		detailTTL = DefaultDetailTTL
	}
	return &Store{
		api:       api,
		notes:     []Note{},
		listeners: make(map[int]func(State)),
		details:   cache.New(detailTTL, 2*detailTTL),
	}
}

// Snapshot returns a copy that callers may keep.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() State {
	notes := make([]Note, len(s.notes))
	copy(notes, s.notes)
	return State{
		Notes:   notes,
		Loading: s.inFlight > 0,
		Err:     s.err,
	}
}

// Subscribe registers fn for every state transition and returns its unsubscribe func.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// update applies fn under the lock and notifies listeners after releasing it.
func (s *Store) update(fn func()) {
	s.mu.Lock()
	fn()
	state := s.snapshotLocked()
	listeners := make([]func(State), 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(state)
	}
}

func (s *Store) begin() {
	s.update(func() {
		s.inFlight++
		s.err = nil
	})
}

func (s *Store) fail(err error) {
	s.update(func() {
		s.inFlight--
		s.err = err
	})
}

func (s *Store) FetchNotes(ctx context.Context) error {
	return s.fetch(ctx, true, func(ctx context.Context) ([]Note, error) {
		return s.api.ListNotes(ctx)
	})
}

func (s *Store) FetchNotesByType(ctx context.Context, noteType NoteType) error {
	return s.fetch(ctx, false, func(ctx context.Context) ([]Note, error) {
		return s.api.ListNotesByType(ctx, noteType)
	})
}

// fetch replaces the list and refreshes the detail cache from it. A result that lands
// after a newer fetch started is dropped. Only a full list may evict cached details.
func (s *Store) fetch(ctx context.Context, fullList bool, load func(context.Context) ([]Note, error)) error {
	var seq uint64
	s.update(func() {
		s.fetchSeq++
		seq = s.fetchSeq
		s.inFlight++
		s.err = nil
	})

	notes, err := load(ctx)

	s.update(func() {
		s.inFlight--
		if seq != s.fetchSeq {
			return
		}
		if err != nil {
			s.err = err
			return
		}
		if notes == nil {
			notes = []Note{}
		}
		s.notes = notes

		// The list is the newest server view; details must not outlive it
		if fullList {
			s.details.Flush()
		}
		for _, n := range notes {
			s.details.SetDefault(n.ID, n)
		}
	})

	return err
}

// GetNoteByID serves from the detail cache when possible. It never changes the list.
func (s *Store) GetNoteByID(ctx context.Context, id string) (*Note, error) {
	if cached, ok := s.details.Get(id); ok {
		n := cached.(Note)
		return &n, nil
	}

	s.begin()
	note, err := s.api.GetNote(ctx, id)
	if err != nil {
		s.fail(err)
		return nil, err
	}

	s.details.SetDefault(id, *note)
	s.update(func() {
		s.inFlight--
	})
	return note, nil
}

func (s *Store) CreateTextNote(ctx context.Context, title string, content *string) (*Note, error) {
	return s.create(func() (*Note, error) {
		return s.api.CreateTextNote(ctx, title, content)
	})
}

func (s *Store) CreateAudioNote(ctx context.Context, title string, file File) (*Note, error) {
	return s.create(func() (*Note, error) {
		return s.api.CreateAudioNote(ctx, title, file)
	})
}

func (s *Store) CreateImageNote(ctx context.Context, title string, content *string, file File) (*Note, error) {
	return s.create(func() (*Note, error) {
		return s.api.CreateImageNote(ctx, title, content, file)
	})
}

func (s *Store) create(call func() (*Note, error)) (*Note, error) {
	s.begin()
	note, err := call()
	if err != nil {
		s.fail(err)
		return nil, err
	}

	s.details.SetDefault(note.ID, *note)
	s.update(func() {
		s.inFlight--
		s.notes = append([]Note{*note}, s.notes...)
	})
	return note, nil
}

func (s *Store) UpdateNote(ctx context.Context, id string, in UpdateInput) (*Note, error) {
	s.begin()
	note, err := s.api.UpdateNote(ctx, id, in)
	if err != nil {
		s.fail(err)
		return nil, err
	}

	s.details.SetDefault(note.ID, *note)
	s.update(func() {
		s.inFlight--
		for i := range s.notes {
			if s.notes[i].ID == note.ID {
				s.notes[i] = *note
			}
		}
	})
	return note, nil
}

func (s *Store) DeleteNote(ctx context.Context, id string) error {
	s.begin()
	if _, err := s.api.DeleteNote(ctx, id); err != nil {
		s.fail(err)
		return err
	}

	s.details.Delete(id)
	s.update(func() {
		s.inFlight--
		kept := s.notes[:0:0]
		for _, n := range s.notes {
			if n.ID != id {
				kept = append(kept, n)
			}
		}
		s.notes = kept
	})
	return nil
}
