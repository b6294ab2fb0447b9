// Package session tracks per-user conversation state.
//
// Each user cycles through Idle → WaitingBanner → WaitingVideo → Processing
// and back to Idle on any job outcome. The busy flag acts as a single-job
// mutex per user: a second video while one is in flight is always rejected,
// never queued.
package session

import (
	"errors"
	"fmt"
	"sync"
)

// State is one phase of the per-user conversation.
type State int

const (
	// Idle means the user has no conversation in progress.
	Idle State = iota
	// WaitingBanner means the next expected input is the overlay image.
	WaitingBanner
	// WaitingVideo means the banner is stored and a video is expected.
	WaitingVideo
	// Processing means a job is in flight for the user.
	Processing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case WaitingBanner:
		return "waiting_banner"
	case WaitingVideo:
		return "waiting_video"
	case Processing:
		return "processing"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Expected names the input the state is waiting for, for user-facing errors.
func (s State) Expected() string {
	switch s {
	case WaitingBanner:
		return "a banner image"
	case WaitingVideo:
		return "a video"
	default:
		return "the start command"
	}
}

var (
	// ErrBusy reports that the user already has a job in flight.
	ErrBusy = errors.New("a previous video is still processing")
	// ErrNoBanner reports a video arriving with no stored banner.
	ErrNoBanner = errors.New("no banner stored for this session")
)

// WrongStateError reports input that does not match the current state.
type WrongStateError struct {
	Current State
}

func (e *WrongStateError) Error() string {
	return fmt.Sprintf("expecting %s (state %s)", e.Current.Expected(), e.Current)
}

type userSession struct {
	state      State
	bannerPath string
	busy       bool
}

// Store holds one session per user identity, created lazily on first use.
// All transitions for a given user are serialized under the store lock.
type Store struct {
	mu       sync.Mutex
	sessions map[int64]*userSession
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[int64]*userSession)}
}

func (st *Store) get(userID int64) *userSession {
	s, ok := st.sessions[userID]
	if !ok {
		s = &userSession{state: Idle}
		st.sessions[userID] = s
	}
	return s
}

// Begin handles the entry command: the session resets to WaitingBanner and
// any previously stored banner path is returned for the caller to release.
func (st *Store) Begin(userID int64) (staleBanner string) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s := st.get(userID)
	staleBanner = s.bannerPath
	s.bannerPath = ""
	s.state = WaitingBanner
	return staleBanner
}

// AcceptBanner stores the banner path and advances to WaitingVideo. It fails
// with a *WrongStateError unless the session is in WaitingBanner.
func (st *Store) AcceptBanner(userID int64, path string) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	s := st.get(userID)
	if s.state != WaitingBanner {
		return &WrongStateError{Current: s.state}
	}
	s.bannerPath = path
	s.state = WaitingVideo
	return nil
}

// BeginJob accepts a video and moves the session to Processing. It returns
// the stored banner path on success. Rejections are, in order: ErrBusy when
// a job is already in flight, *WrongStateError when the state is not
// WaitingVideo, and ErrNoBanner when no banner path is stored.
func (st *Store) BeginJob(userID int64) (bannerPath string, err error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s := st.get(userID)
	if s.busy {
		return "", ErrBusy
	}
	if s.state != WaitingVideo {
		return "", &WrongStateError{Current: s.state}
	}
	if s.bannerPath == "" {
		return "", ErrNoBanner
	}

	s.state = Processing
	s.busy = true
	return s.bannerPath, nil
}

// FinishJob resets the session to Idle on any job outcome, clears the busy
// flag, and returns the banner path for the caller to release.
func (st *Store) FinishJob(userID int64) (bannerPath string) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s := st.get(userID)
	bannerPath = s.bannerPath
	s.bannerPath = ""
	s.busy = false
	s.state = Idle
	return bannerPath
}

// State reports the current state for the user.
func (st *Store) State(userID int64) State {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.get(userID).state
}

// Busy reports whether the user has a job in flight.
func (st *Store) Busy(userID int64) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.get(userID).busy
}

// BannerPath returns the stored banner path, empty when none.
func (st *Store) BannerPath(userID int64) string {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.get(userID).bannerPath
}
