// Package profile assembles the profile screen's state: the logged-in user's
// record and the topics they own, merged into one snapshot, plus the locally
// edited preference and dialog state layered on top.
package profile

import (
	"context"

	"github.com/google/uuid"

	"github.com/proyectoforocine/forocore/internal/logging"
	"github.com/proyectoforocine/forocore/internal/models"
	"github.com/proyectoforocine/forocore/internal/repository"
	"github.com/proyectoforocine/forocore/internal/watch"
)

type userAndTopics struct {
	user   *models.User
	topics []models.Topic
}

// Aggregator publishes a ProfileSnapshot that stays consistent under
// concurrent user and topic changes: both halves come from one combined
// emission, never mixed across emissions.
type Aggregator struct {
	repo repository.ForumRepository
	log  logging.Logger

	snapshot *watch.State[models.ProfileSnapshot]
}

func NewAggregator(repo repository.ForumRepository, log logging.Logger) *Aggregator {
	return &Aggregator{
		repo: repo,
		log:  log.With("component", "profile"),
		snapshot: watch.NewState(models.ProfileSnapshot{
			IsLoading: true,
			Prefs:     models.Preferences{Notifications: true},
		}),
	}
}

// Snapshot is the observable profile state.
func (a *Aggregator) Snapshot() *watch.State[models.ProfileSnapshot] {
	return a.snapshot
}

// Load starts following userID's record and owned topics until ctx ends.
// IsLoading drops to false with the first combined value. If the account
// disappears mid-session the aggregator stops updating and the last published
// snapshot stays in place.
func (a *Aggregator) Load(ctx context.Context, userID int64) {
	users := a.repo.ObserveUserByID(ctx, userID)
	topics := a.repo.ObserveTopicsByOwner(ctx, userID)

	combined := watch.CombineLatest(ctx, users, topics,
		func(u *models.User, t []models.Topic) userAndTopics {
			return userAndTopics{user: u, topics: t}
		})

	go func() {
		for pair := range combined {
			if pair.user == nil {
				a.log.Warn(ctx, "profile user no longer exists", "user_id", userID)
				continue
			}
			a.snapshot.Update(func(s models.ProfileSnapshot) models.ProfileSnapshot {
				s.User = pair.user
				s.Topics = pair.topics
				s.IsLoading = false
				return s
			})
		}
	}()
}

// --- preference and dialog state, in-memory only ---

func (a *Aggregator) SetDarkMode(on bool) {
	a.snapshot.Update(func(s models.ProfileSnapshot) models.ProfileSnapshot {
		s.Prefs.DarkMode = on
		return s
	})
}

func (a *Aggregator) SetNotifications(on bool) {
	a.snapshot.Update(func(s models.ProfileSnapshot) models.ProfileSnapshot {
		s.Prefs.Notifications = on
		return s
	})
}

// SetAvatar assigns a fresh local reference token for the chosen avatar and
// closes the picker dialog. The token is never persisted.
func (a *Aggregator) SetAvatar() string {
	ref := uuid.NewString()
	a.snapshot.Update(func(s models.ProfileSnapshot) models.ProfileSnapshot {
		s.Prefs.AvatarRef = ref
		s.ShowAvatarDialog = false
		return s
	})
	return ref
}

func (a *Aggregator) ShowAvatarDialog() {
	a.snapshot.Update(func(s models.ProfileSnapshot) models.ProfileSnapshot {
		s.ShowAvatarDialog = true
		return s
	})
}

func (a *Aggregator) HideAvatarDialog() {
	a.snapshot.Update(func(s models.ProfileSnapshot) models.ProfileSnapshot {
		s.ShowAvatarDialog = false
		return s
	})
}
