package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/proyectoforocine/forocore/internal/auth"
)

func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := GetPassword(os.Stdout)
	if err != nil {
		return err
	}

	a.ctrl.OnLoginEmailChange(email)
	a.ctrl.OnLoginPasswordChange(password)
	if err := a.ctrl.SubmitLogin(ctx); err != nil {
		fmt.Println("Login failed:", err)
		return err
	}

	ev := a.ctrl.Event().Get()
	switch ev.Kind {
	case auth.EventSuccess:
		fmt.Printf("Welcome back, %s!\n", ev.User.Username)
		a.startProfile(ctx, ev.User.ID)
		a.ctrl.ResetAuthEvent()
	case auth.EventError:
		fmt.Println(ev.Message)
		a.ctrl.ResetAuthEvent()
	default:
		if msg := a.ctrl.LoginUI().Get().LoginError; msg != "" {
			fmt.Println(msg)
		}
	}
	return nil
}

func (a *App) Register(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Choose a username", os.Stdout)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := GetPassword(os.Stdout)
	if err != nil {
		return err
	}

	a.ctrl.OnRegisterUsernameChange(username)
	a.ctrl.OnRegisterEmailChange(email)
	a.ctrl.OnRegisterPasswordChange(password)
	if err := a.ctrl.SubmitRegister(ctx); err != nil {
		fmt.Println("Registration failed:", err)
		return err
	}

	ev := a.ctrl.Event().Get()
	switch ev.Kind {
	case auth.EventSuccess:
		fmt.Printf("Account created. Welcome, %s!\n", ev.User.Username)
		a.startProfile(ctx, ev.User.ID)
		a.ctrl.ResetAuthEvent()
	case auth.EventError:
		fmt.Println(ev.Message)
		a.ctrl.ResetAuthEvent()
	default:
		st := a.ctrl.RegisterUI().Get()
		for _, msg := range []string{st.EmailError, st.PasswordError, st.RegistrationError} {
			if msg != "" {
				fmt.Println(msg)
			}
		}
	}
	return nil
}

func (a *App) ForgotPassword(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter the email of your account", os.Stdout)
	if err != nil {
		return err
	}

	a.ctrl.OnForgotPasswordEmailChange(email)
	if err := a.ctrl.RequestPasswordReset(ctx); err != nil {
		fmt.Println("Request failed:", err)
		return err
	}

	if st := a.ctrl.ForgotPasswordUI().Get(); st.FeedbackMessage != "" {
		fmt.Println(st.FeedbackMessage)
	}
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.ctrl.Logout(ctx); err != nil {
		fmt.Println("Logout failed:", err)
		return err
	}
	if a.profileCancel != nil {
		a.profileCancel()
		a.profileCancel = nil
	}
	fmt.Println("Logged out.")
	return nil
}
