package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/proyectoforocine/forocore/internal/common"
	"github.com/proyectoforocine/forocore/internal/models"
)

func (a *App) currentUser(ctx context.Context) (*models.User, error) {
	id := a.ctrl.CurrentUserID().Get()
	if id == nil {
		return nil, common.ErrNotFound
	}
	return a.forum.GetUserByID(ctx, *id)
}

func (a *App) List(ctx context.Context) error {
	topics, err := a.forum.AllTopics(ctx)
	if err != nil {
		fmt.Println("Could not list topics:", err)
		return err
	}
	if len(topics) == 0 {
		fmt.Println("No topics yet.")
		return nil
	}
	for _, t := range topics {
		fmt.Printf("#%d [%s] %s (rating %d)\n", t.ID, t.Category, t.Title, t.Rating)
	}
	return nil
}

func (a *App) NewTopic(ctx context.Context) error {
	user, err := a.currentUser(ctx)
	if err != nil {
		fmt.Println("Log in first.")
		return err
	}

	title, err := GetSimpleText(a.reader, "Topic title", os.Stdout)
	if err != nil {
		return err
	}
	category, err := GetSimpleText(a.reader, "Category", os.Stdout)
	if err != nil {
		return err
	}
	content, err := GetMultiline(a.reader, "Write your post", os.Stdout)
	if err != nil {
		return err
	}

	id, err := a.forum.InsertTopic(ctx, &models.Topic{
		Title:     title,
		Content:   content,
		Category:  category,
		OwnerID:   user.ID,
		CreatedAt: time.Now(),
	})
	if err != nil {
		if errors.Is(err, common.ErrEmptyTitle) {
			fmt.Println("The title cannot be empty.")
			return nil
		}
		fmt.Println("Could not create topic:", err)
		return err
	}

	fmt.Printf("Created topic #%d\n", id)
	return nil
}

func (a *App) DeleteTopic(ctx context.Context, arg string) error {
	user, err := a.currentUser(ctx)
	if err != nil {
		fmt.Println("Log in first.")
		return err
	}

	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		fmt.Println("Usage: deltopic <id>")
		return nil
	}

	topic, err := a.forum.GetTopicByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			fmt.Println("No such topic.")
			return nil
		}
		fmt.Println("Could not load topic:", err)
		return err
	}

	if err := a.forum.DeleteTopic(ctx, topic, user); err != nil {
		if errors.Is(err, common.ErrForbidden) {
			fmt.Println("Only the topic owner or a moderator can delete it.")
			return nil
		}
		fmt.Println("Could not delete topic:", err)
		return err
	}

	fmt.Printf("Deleted topic #%d\n", id)
	return nil
}
