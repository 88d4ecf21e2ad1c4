package cli

import (
	"context"
	"fmt"
	"strings"

	"careerhub/internal/api"
)

// promptRole asks candidate or employer, defaulting to candidate.
func (a *App) promptRole() (api.Role, error) {
	answer, err := promptLine(a.reader, a.out, "Role (candidate/employer) [candidate]")
	if err != nil {
		return "", err
	}
	if strings.EqualFold(answer, string(api.RoleEmployer)) {
		return api.RoleEmployer, nil
	}
	return api.RoleCandidate, nil
}

func (a *App) login(ctx context.Context) {
	role, err := a.promptRole()
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return
	}
	email, err := promptLine(a.reader, a.out, "Email")
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return
	}
	password, err := promptPassword(a.out, "Password")
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return
	}
	defer wipe(password)

	result := a.session.Login(ctx, role, email, string(password))
	if !result.OK {
		a.toasts.Error(result.Message)
		return
	}
	a.toasts.Success("Logged in")
	if err := a.notifications.CatchUp(ctx); err != nil {
		a.log.Warn(ctx, "notification catch-up failed", "error", err)
	}
	if result.IsAdmin {
		fmt.Fprintln(a.out, "Admin commands enabled; see 'help'.")
	}
}

func (a *App) register(ctx context.Context) {
	role, err := a.promptRole()
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return
	}
	name, err := promptLine(a.reader, a.out, "Name")
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return
	}
	email, err := promptLine(a.reader, a.out, "Email")
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return
	}
	req := api.RegisterRequest{Name: name, Email: email}
	if role == api.RoleEmployer {
		company, err := promptLine(a.reader, a.out, "Company name")
		if err != nil {
			fmt.Fprintln(a.out, "Error:", err)
			return
		}
		req.CompanyName = company
	}
	password, err := promptPassword(a.out, "Password")
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return
	}
	defer wipe(password)
	req.Password = string(password)

	result := a.session.Register(ctx, role, req)
	if !result.OK {
		a.toasts.Error(result.Message)
		return
	}
	a.toasts.Success("Account created")
}
