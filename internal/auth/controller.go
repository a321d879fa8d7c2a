package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/proyectoforocine/forocore/internal/common"
	"github.com/proyectoforocine/forocore/internal/logging"
	"github.com/proyectoforocine/forocore/internal/models"
	"github.com/proyectoforocine/forocore/internal/repository"
	"github.com/proyectoforocine/forocore/internal/repositories/session"
	"github.com/proyectoforocine/forocore/internal/watch"
)

// Controller drives the authentication flows. Each submit runs as its own
// unit of work; overlapping submits are not mutually excluded, the last one
// to complete owns the event slot.
type Controller struct {
	repo     repository.ForumRepository
	sessions session.Repository
	verifier Verifier
	log      logging.Logger

	loginUI        *watch.State[LoginUIState]
	registerUI     *watch.State[RegisterUIState]
	forgotUI       *watch.State[ForgotPasswordUIState]
	event          *watch.State[AuthEvent]
	sessionLoading *watch.State[bool]
	currentUser    *watch.State[*int64]
}

// NewController builds a Controller and starts the session watcher bound to
// ctx. SessionLoading flips false after the first session read resolves, and
// only then; it gates which screen the UI shows at cold start.
func NewController(ctx context.Context, repo repository.ForumRepository, sessions session.Repository, verifier Verifier, log logging.Logger) *Controller {
	c := &Controller{
		repo:           repo,
		sessions:       sessions,
		verifier:       verifier,
		log:            log.With("component", "auth"),
		loginUI:        watch.NewState(LoginUIState{}),
		registerUI:     watch.NewState(RegisterUIState{}),
		forgotUI:       watch.NewState(ForgotPasswordUIState{}),
		event:          watch.NewState(AuthEvent{Kind: EventIdle}),
		sessionLoading: watch.NewState(true),
		currentUser:    watch.NewState[*int64](nil),
	}

	go c.watchSession(ctx)

	return c
}

func (c *Controller) watchSession(ctx context.Context) {
	first := true
	for id := range c.sessions.Observe(ctx) {
		c.currentUser.Set(id)
		if first {
			first = false
			c.sessionLoading.Set(false)
			c.log.Debug(ctx, "session bootstrap resolved", "logged_in", id != nil)
		}
	}
}

// --- observable state ---

func (c *Controller) LoginUI() *watch.State[LoginUIState] { return c.loginUI }

func (c *Controller) RegisterUI() *watch.State[RegisterUIState] { return c.registerUI }

func (c *Controller) ForgotPasswordUI() *watch.State[ForgotPasswordUIState] { return c.forgotUI }

func (c *Controller) Event() *watch.State[AuthEvent] { return c.event }

func (c *Controller) SessionLoading() *watch.State[bool] { return c.sessionLoading }

func (c *Controller) CurrentUserID() *watch.State[*int64] { return c.currentUser }

// ResetAuthEvent acknowledges the event slot back to Idle. Called by the
// consumer after it has reacted to a Success or Error.
func (c *Controller) ResetAuthEvent() {
	c.event.Set(AuthEvent{Kind: EventIdle})
}

// --- field-change handlers ---
// Each revalidates just its own field and clears the operation-level error so
// a stale message never outlives the user's correction.

func (c *Controller) OnLoginEmailChange(email string) {
	c.loginUI.Update(func(s LoginUIState) LoginUIState {
		s.Email = email
		s.EmailError = ""
		if !ValidEmail(email) {
			s.EmailError = "invalid email"
		}
		s.LoginError = ""
		return s
	})
}

func (c *Controller) OnLoginPasswordChange(password string) {
	c.loginUI.Update(func(s LoginUIState) LoginUIState {
		s.Password = password
		s.LoginError = ""
		return s
	})
}

func (c *Controller) OnRegisterUsernameChange(username string) {
	c.registerUI.Update(func(s RegisterUIState) RegisterUIState {
		s.Username = username
		s.RegistrationError = ""
		return s
	})
}

func (c *Controller) OnRegisterEmailChange(email string) {
	c.registerUI.Update(func(s RegisterUIState) RegisterUIState {
		s.Email = email
		s.EmailError = ""
		if !ValidEmail(email) {
			s.EmailError = "invalid email"
		}
		s.RegistrationError = ""
		return s
	})
}

func (c *Controller) OnRegisterPasswordChange(password string) {
	c.registerUI.Update(func(s RegisterUIState) RegisterUIState {
		s.Password = password
		s.PasswordError = ""
		if !ValidPassword(password) {
			s.PasswordError = "minimum 6 characters"
		}
		s.RegistrationError = ""
		return s
	})
}

func (c *Controller) OnForgotPasswordEmailChange(email string) {
	c.forgotUI.Update(func(s ForgotPasswordUIState) ForgotPasswordUIState {
		s.Email = email
		s.FeedbackMessage = ""
		s.IsError = false
		return s
	})
}

// --- operations ---

// SubmitLogin validates the form and checks credentials. A credential
// mismatch is shown inline and resets the event slot to Idle; no Error event
// is emitted for it. Storage faults are surfaced on the event slot and
// returned to the caller.
func (c *Controller) SubmitLogin(ctx context.Context) error {
	st := c.loginUI.Get()
	if !ValidEmail(st.Email) || st.Password == "" {
		c.loginUI.Update(func(s LoginUIState) LoginUIState {
			s.LoginError = "invalid email or password"
			return s
		})
		return nil
	}

	log := c.log.With("op", "login", "op_id", uuid.NewString())
	c.event.Set(AuthEvent{Kind: EventLoading})

	user, err := c.repo.GetUserByEmail(ctx, st.Email)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		log.Error(ctx, "user lookup failed", "error", err)
		c.event.Set(AuthEvent{Kind: EventError, Message: "something went wrong"})
		return err
	}

	if user == nil || !c.verifier.Verify(user.Password, st.Password) {
		// Bad credentials are inline feedback, not a toast.
		c.loginUI.Update(func(s LoginUIState) LoginUIState {
			s.LoginError = "invalid credentials"
			return s
		})
		c.event.Set(AuthEvent{Kind: EventIdle})
		return nil
	}

	if err := c.sessions.Save(ctx, user.ID); err != nil {
		log.Error(ctx, "session write failed", "error", err)
		c.event.Set(AuthEvent{Kind: EventError, Message: "something went wrong"})
		return err
	}

	log.Info(ctx, "login succeeded", "user_id", user.ID)
	c.event.Set(AuthEvent{Kind: EventSuccess, User: user})
	return nil
}

// SubmitRegister validates the form, checks email uniqueness, inserts the
// new account, persists the session, and emits Success. Validation failures
// abort before any store access.
func (c *Controller) SubmitRegister(ctx context.Context) error {
	st := c.registerUI.Get()
	if st.Username == "" || !ValidEmail(st.Email) || !ValidPassword(st.Password) {
		c.registerUI.Update(func(s RegisterUIState) RegisterUIState {
			s.RegistrationError = "check the fields"
			return s
		})
		return nil
	}

	log := c.log.With("op", "register", "op_id", uuid.NewString())
	c.event.Set(AuthEvent{Kind: EventLoading})

	_, err := c.repo.GetUserByEmail(ctx, st.Email)
	switch {
	case err == nil:
		c.event.Set(AuthEvent{Kind: EventError, Message: "email already in use"})
		return nil
	case !errors.Is(err, common.ErrNotFound):
		log.Error(ctx, "uniqueness check failed", "error", err)
		c.event.Set(AuthEvent{Kind: EventError, Message: "something went wrong"})
		return err
	}

	stored, err := c.verifier.Hash(st.Password)
	if err != nil {
		log.Error(ctx, "credential hashing failed", "error", err)
		c.event.Set(AuthEvent{Kind: EventError, Message: "could not complete registration"})
		return err
	}

	user := &models.User{
		Username:     st.Username,
		Email:        st.Email,
		Password:     stored,
		Role:         models.RoleRegistered,
		RegisteredAt: time.Now(),
	}

	id, err := c.repo.InsertUser(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrEmailTaken) {
			// Lost the race against a concurrent registration.
			c.event.Set(AuthEvent{Kind: EventError, Message: "email already in use"})
			return nil
		}
		log.Error(ctx, "user insert failed", "error", err)
		c.event.Set(AuthEvent{Kind: EventError, Message: "could not complete registration"})
		return err
	}
	user.ID = id

	if err := c.sessions.Save(ctx, id); err != nil {
		log.Error(ctx, "session write failed", "error", err)
		c.event.Set(AuthEvent{Kind: EventError, Message: "something went wrong"})
		return err
	}

	log.Info(ctx, "registration succeeded", "user_id", id)
	c.event.Set(AuthEvent{Kind: EventSuccess, User: user})
	return nil
}

// RequestPasswordReset reports, via the form's feedback message, whether the
// email is known. No mail is actually sent and neither the session nor the
// event slot is touched.
func (c *Controller) RequestPasswordReset(ctx context.Context) error {
	st := c.forgotUI.Get()
	if !ValidEmail(st.Email) {
		c.forgotUI.Update(func(s ForgotPasswordUIState) ForgotPasswordUIState {
			s.FeedbackMessage = "invalid email format"
			s.IsError = true
			return s
		})
		return nil
	}

	_, err := c.repo.GetUserByEmail(ctx, st.Email)
	switch {
	case errors.Is(err, common.ErrNotFound):
		c.forgotUI.Update(func(s ForgotPasswordUIState) ForgotPasswordUIState {
			s.FeedbackMessage = "email not found"
			s.IsError = true
			return s
		})
		return nil
	case err != nil:
		c.log.Error(ctx, "reset lookup failed", "error", err)
		return err
	}

	c.forgotUI.Update(func(s ForgotPasswordUIState) ForgotPasswordUIState {
		s.FeedbackMessage = "check your email to recover your password"
		s.IsError = false
		return s
	})
	return nil
}

// Logout clears the session unconditionally. Idempotent; no validation, no
// event.
func (c *Controller) Logout(ctx context.Context) error {
	return c.sessions.Clear(ctx)
}
