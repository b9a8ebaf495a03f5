package session

import (
	"context"
	"log"
	"sync"
)

// State is the tuple consumers render from. Loading is true only until the
// very first session resolution; later auth events never re-assert it.
type State struct {
	User    *User
	Session *Session
	Profile *Profile
	Loading bool
}

type task func(ctx context.Context) error

// Store reconciles auth lifecycle events with profile loading. It is an
// injectable object with an explicit lifecycle: New, Init, Subscribe,
// Dispose. All state access is serialized through one mutex; background
// work runs on a single worker so reconciliation failures are observable
// on Errors() instead of vanishing into logs.
type Store struct {
	api      AuthAPI
	profiles ProfileGateway

	mu       sync.Mutex
	state    State
	subs     map[int]chan State
	nextSub  int
	disposed bool

	tasks chan task
	errs  chan error
	done  chan struct{}
	wg    sync.WaitGroup
}

func New(api AuthAPI, profiles ProfileGateway) *Store {
	return &Store{
		api:      api,
		profiles: profiles,
		state:    State{Loading: true},
		subs:     make(map[int]chan State),
		tasks:    make(chan task, 16),
		errs:     make(chan error, 16),
		done:     make(chan struct{}),
	}
}

// Init performs the one-shot initial session fetch, then starts the event
// loop and the background worker. It must be called exactly once.
func (s *Store) Init(ctx context.Context) error {
	sess, err := s.api.GetSession(ctx)
	if err != nil {
		log.Printf("initial session fetch failed: %v", err)
	}

	s.mu.Lock()
	s.applySessionLocked(sess)
	s.state.Loading = false
	s.notifyLocked()
	s.mu.Unlock()

	if sess != nil && sess.User != nil {
		// Initial profile load is best-effort, same as any refetch.
		s.refetchProfile(ctx, sess.User.ID)
	}

	s.wg.Add(2)
	go s.eventLoop()
	go s.workerLoop()

	return err
}

// Subscribe returns a channel carrying state snapshots and a function that
// cancels the subscription. The channel holds only the latest snapshot;
// slow consumers observe coalesced updates, never stale backlog.
func (s *Store) Subscribe() (<-chan State, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan State, 1)
	ch <- s.state
	s.subs[id] = ch

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
	}
}

// Errors exposes failures from background reconciliation tasks.
func (s *Store) Errors() <-chan error {
	return s.errs
}

// State returns the current snapshot.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispose tears the store down. Event callbacks resolving afterwards are
// discarded; subscriber channels are closed.
func (s *Store) Dispose() {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	s.disposed = true
	close(s.done)
	for id, sub := range s.subs {
		delete(s.subs, id)
		close(sub)
	}
	s.mu.Unlock()

	s.wg.Wait()
}

// SignIn delegates to the auth service; state updates arrive through the
// event stream.
func (s *Store) SignIn(ctx context.Context, email, password string) error {
	return s.api.SignIn(ctx, email, password)
}

func (s *Store) SignUp(ctx context.Context, email, password, fullName string) error {
	return s.api.SignUp(ctx, email, password, fullName)
}

func (s *Store) SignInWithGoogle(ctx context.Context, code, redirectURI string) error {
	return s.api.SignInWithGoogle(ctx, code, redirectURI)
}

func (s *Store) ResetPassword(ctx context.Context, email string) error {
	return s.api.ResetPassword(ctx, email)
}

// SignOut is optimistic: the local tuple is cleared before the remote call
// and never restored on remote failure, so the UI reflects the sign-out
// instantly.
func (s *Store) SignOut(ctx context.Context) error {
	s.mu.Lock()
	if !s.disposed {
		s.state.User = nil
		s.state.Session = nil
		s.state.Profile = nil
		s.notifyLocked()
	}
	s.mu.Unlock()

	return s.api.SignOut(ctx)
}

// RefreshProfile re-runs the profile fetch for the current user, used after
// profile edits save.
func (s *Store) RefreshProfile(ctx context.Context) error {
	s.mu.Lock()
	user := s.state.User
	s.mu.Unlock()

	if user == nil {
		return nil
	}

	profile, err := s.profiles.GetProfile(ctx, user.ID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if !s.disposed {
		s.state.Profile = profile
		s.notifyLocked()
	}
	s.mu.Unlock()
	return nil
}

func (s *Store) eventLoop() {
	defer s.wg.Done()
	events := s.api.Events()
	for {
		select {
		case <-s.done:
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			s.handleEvent(ev)
		}
	}
}

func (s *Store) handleEvent(ev Event) {
	ctx := context.Background()

	switch ev.Type {
	case SignedOut:
		s.mu.Lock()
		if !s.disposed {
			s.state.User = nil
			s.state.Session = nil
			s.state.Profile = nil
			s.notifyLocked()
		}
		s.mu.Unlock()

	case TokenRefreshed:
		s.mu.Lock()
		if !s.disposed {
			s.applySessionLocked(ev.Session)
			s.notifyLocked()
		}
		s.mu.Unlock()
		if ev.Session != nil && ev.Session.User != nil {
			s.refetchProfile(ctx, ev.Session.User.ID)
		}

	case SignedIn:
		s.mu.Lock()
		if !s.disposed {
			s.applySessionLocked(ev.Session)
			s.notifyLocked()
		}
		s.mu.Unlock()
		if ev.Session != nil && ev.Session.User != nil {
			user := *ev.Session.User
			// Reconciliation never blocks the sign-in flow; failures land
			// on the error channel.
			s.enqueue(func(ctx context.Context) error {
				return s.reconcileProfile(ctx, &user)
			})
		}

	default:
		s.mu.Lock()
		if !s.disposed {
			s.applySessionLocked(ev.Session)
			if ev.Session == nil || ev.Session.User == nil {
				s.state.Profile = nil
			}
			s.notifyLocked()
		}
		s.mu.Unlock()
		if ev.Session != nil && ev.Session.User != nil {
			s.refetchProfile(ctx, ev.Session.User.ID)
		}
	}
}

// reconcileProfile is the upsert-by-absence sequence run on SIGNED_IN:
// fetch the profile and create one seeded from session metadata when the
// user has none.
func (s *Store) reconcileProfile(ctx context.Context, user *User) error {
	profile, err := s.profiles.GetProfile(ctx, user.ID)
	if err != nil {
		if !IsProfileNotFound(err) {
			return err
		}
		var avatarURL *string
		if user.AvatarURL != "" {
			avatarURL = &user.AvatarURL
		}
		profile, err = s.profiles.CreateProfile(ctx, &Profile{
			UserID:    user.ID,
			Email:     user.Email,
			FullName:  user.FullName,
			AvatarURL: avatarURL,
			Location:  "Mumbai",
		})
		if err != nil {
			return err
		}
	}

	s.mu.Lock()
	if !s.disposed && s.state.User != nil && s.state.User.ID == user.ID {
		s.state.Profile = profile
		s.notifyLocked()
	}
	s.mu.Unlock()
	return nil
}

// refetchProfile loads the profile best-effort; errors are swallowed.
func (s *Store) refetchProfile(ctx context.Context, userID uint) {
	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		log.Printf("profile refetch failed for user %d: %v", userID, err)
		return
	}

	s.mu.Lock()
	if !s.disposed && s.state.User != nil && s.state.User.ID == userID {
		s.state.Profile = profile
		s.notifyLocked()
	}
	s.mu.Unlock()
}

func (s *Store) enqueue(t task) {
	select {
	case s.tasks <- t:
	case <-s.done:
	}
}

func (s *Store) workerLoop() {
	defer s.wg.Done()
	for {
		select {
		case <-s.done:
			return
		case t := <-s.tasks:
			if err := t(context.Background()); err != nil {
				log.Printf("background task failed: %v", err)
				select {
				case s.errs <- err:
				default:
				}
			}
		}
	}
}

func (s *Store) applySessionLocked(sess *Session) {
	s.state.Session = sess
	if sess != nil {
		s.state.User = sess.User
	} else {
		s.state.User = nil
	}
}

// notifyLocked pushes the current snapshot to every subscriber, replacing
// any undelivered previous snapshot. Callers hold s.mu.
func (s *Store) notifyLocked() {
	for _, sub := range s.subs {
		select {
		case sub <- s.state:
		default:
			select {
			case <-sub:
			default:
			}
			sub <- s.state
		}
	}
}
